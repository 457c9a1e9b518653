package controller

import (
	"net/http"
	"time"

	"github.com/project/catalog/internal/entity"
	"github.com/project/catalog/internal/log"
	"github.com/prometheus/client_golang/prometheus"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var GetAuthorDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
	Name:    "catalog_get_author_duration_seconds",
	Help:    "Duration of GetAuthor in seconds",
	Buckets: prometheus.DefBuckets,
})

func init() {
	prometheus.MustRegister(GetAuthorDuration)
}

func (i *implementation) GetAuthor(w http.ResponseWriter, r *http.Request, params map[string]string) {
	start := time.Now()

	defer func() {
		GetAuthorDuration.Observe(time.Since(start).Seconds())
	}()

	ctx, span, requestID := startSpan(w, r, log.GetAuthor)
	defer span.End()

	id, err := parseID(params)
	if log.ErrorGetAuthor(i.logger, err, "Got invalid request", requestID, id) {
		span.RecordError(err)
		i.writeError(w, status.Error(codes.InvalidArgument, err.Error()))
		return
	}

	author, ok := i.authorUseCase.AuthorByID(ctx, id)
	if !ok {
		i.writeError(w, i.convertErr(entity.ErrAuthorNotFound))
		return
	}

	i.writeJSON(w, http.StatusOK, author)
}
