package controller

import (
	"net/http"
	"time"

	"github.com/project/catalog/internal/log"
	"github.com/prometheus/client_golang/prometheus"
)

var ListBooksDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
	Name:    "catalog_list_books_duration_seconds",
	Help:    "Duration of ListBooks in seconds",
	Buckets: prometheus.DefBuckets,
})

func init() {
	prometheus.MustRegister(ListBooksDuration)
}

func (i *implementation) ListBooks(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	start := time.Now()

	defer func() {
		ListBooksDuration.Observe(time.Since(start).Seconds())
	}()

	ctx, span, _ := startSpan(w, r, log.ListBooks)
	defer span.End()

	i.writeJSON(w, http.StatusOK, i.booksUseCase.Books(ctx))
}
