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

var GetBookDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
	Name:    "catalog_get_book_duration_seconds",
	Help:    "Duration of GetBook in seconds",
	Buckets: prometheus.DefBuckets,
})

func init() {
	prometheus.MustRegister(GetBookDuration)
}

func (i *implementation) GetBook(w http.ResponseWriter, r *http.Request, params map[string]string) {
	start := time.Now()

	defer func() {
		GetBookDuration.Observe(time.Since(start).Seconds())
	}()

	ctx, span, requestID := startSpan(w, r, log.GetBook)
	defer span.End()

	id, err := parseID(params)
	if log.ErrorGetBook(i.logger, err, "Got invalid request", requestID, id) {
		span.RecordError(err)
		i.writeError(w, status.Error(codes.InvalidArgument, err.Error()))
		return
	}

	book, ok := i.booksUseCase.BookByID(ctx, id)
	if !ok {
		i.writeError(w, i.convertErr(entity.ErrBookNotFound))
		return
	}

	i.writeJSON(w, http.StatusOK, book)
}
