package controller

import (
	"net/http"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/project/catalog/internal/log"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/attribute"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var CreateBookDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
	Name:    "catalog_create_book_duration_seconds",
	Help:    "Duration of CreateBook in seconds",
	Buckets: prometheus.DefBuckets,
})

func init() {
	prometheus.MustRegister(CreateBookDuration)
}

type createBookRequest struct {
	Title         string `json:"title"`
	PublishedYear int    `json:"publishedYear"`
	AuthorID      int64  `json:"authorId"`
}

func (r createBookRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required, validation.Length(1, maxNameLength)),
		validation.Field(&r.PublishedYear, validation.Min(0)),
		validation.Field(&r.AuthorID, validation.Required, validation.Min(int64(1))),
	)
}

func (i *implementation) CreateBook(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	start := time.Now()

	defer func() {
		CreateBookDuration.Observe(time.Since(start).Seconds())
	}()

	ctx, span, requestID := startSpan(w, r, log.CreateBook)
	defer span.End()

	var req createBookRequest
	if err := decodeRequest(r, &req); log.ErrorCreateBook(i.logger, err, "Got invalid request", requestID, req.Title, req.AuthorID) {
		span.SetAttributes(attribute.String("book_title", req.Title))
		span.RecordError(err)
		i.writeError(w, status.Error(codes.InvalidArgument, err.Error()))
		return
	}

	book, err := i.booksUseCase.CreateBook(ctx, req.Title, req.PublishedYear, req.AuthorID)
	if err != nil {
		i.writeError(w, i.convertErr(err))
		return
	}

	span.SetAttributes(attribute.Int64("book_id", book.ID))
	i.writeJSON(w, http.StatusCreated, book)
}
