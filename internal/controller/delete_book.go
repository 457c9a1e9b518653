package controller

import (
	"net/http"
	"time"

	"github.com/project/catalog/internal/entity"
	"github.com/project/catalog/internal/log"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/attribute"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var DeleteBookDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
	Name:    "catalog_delete_book_duration_seconds",
	Help:    "Duration of DeleteBook in seconds",
	Buckets: prometheus.DefBuckets,
})

func init() {
	prometheus.MustRegister(DeleteBookDuration)
}

func (i *implementation) DeleteBook(w http.ResponseWriter, r *http.Request, params map[string]string) {
	start := time.Now()

	defer func() {
		DeleteBookDuration.Observe(time.Since(start).Seconds())
	}()

	ctx, span, requestID := startSpan(w, r, log.DeleteBook)
	defer span.End()

	id, err := parseID(params)
	if log.ErrorDeleteBook(i.logger, err, "Got invalid request", requestID, id) {
		span.RecordError(err)
		i.writeError(w, status.Error(codes.InvalidArgument, err.Error()))
		return
	}
	span.SetAttributes(attribute.Int64("book_id", id))

	deleted, err := i.booksUseCase.DeleteBook(ctx, id)
	switch {
	case err != nil:
		i.writeError(w, i.convertErr(err))
	case !deleted:
		i.writeError(w, i.convertErr(entity.ErrBookNotFound))
	default:
		w.WriteHeader(http.StatusNoContent)
	}
}
