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

var CreateAuthorDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
	Name:    "catalog_create_author_duration_seconds",
	Help:    "Duration of CreateAuthor in seconds",
	Buckets: prometheus.DefBuckets,
})

func init() {
	prometheus.MustRegister(CreateAuthorDuration)
}

type createAuthorRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

func (r createAuthorRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.FirstName, validation.Required, validation.Length(1, maxNameLength)),
		validation.Field(&r.LastName, validation.Required, validation.Length(1, maxNameLength)),
	)
}

func (i *implementation) CreateAuthor(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	start := time.Now()

	defer func() {
		CreateAuthorDuration.Observe(time.Since(start).Seconds())
	}()

	ctx, span, requestID := startSpan(w, r, log.CreateAuthor)
	defer span.End()

	var req createAuthorRequest
	if err := decodeRequest(r, &req); log.ErrorCreateAuthor(i.logger, err, "Got invalid request", requestID, req.FirstName, req.LastName) {
		span.RecordError(err)
		i.writeError(w, status.Error(codes.InvalidArgument, err.Error()))
		return
	}

	author, err := i.authorUseCase.CreateAuthor(ctx, req.FirstName, req.LastName)
	if err != nil {
		i.writeError(w, i.convertErr(err))
		return
	}

	span.SetAttributes(attribute.Int64("author_id", author.ID))
	i.writeJSON(w, http.StatusCreated, author)
}
