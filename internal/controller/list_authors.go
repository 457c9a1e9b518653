package controller

import (
	"net/http"
	"time"

	"github.com/project/catalog/internal/log"
	"github.com/prometheus/client_golang/prometheus"
)

var ListAuthorsDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
	Name:    "catalog_list_authors_duration_seconds",
	Help:    "Duration of ListAuthors in seconds",
	Buckets: prometheus.DefBuckets,
})

func init() {
	prometheus.MustRegister(ListAuthorsDuration)
}

func (i *implementation) ListAuthors(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	start := time.Now()

	defer func() {
		ListAuthorsDuration.Observe(time.Since(start).Seconds())
	}()

	ctx, span, _ := startSpan(w, r, log.ListAuthors)
	defer span.End()

	i.writeJSON(w, http.StatusOK, i.authorUseCase.Authors(ctx))
}
