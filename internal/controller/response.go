package controller

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/grpc-ecosystem/grpc-gateway/v2/runtime"
	"github.com/project/catalog/internal/entity"
	"github.com/project/catalog/pkg/logger"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	maxNameLength  = 512
	requestIDField = "X-Request-Id"
)

var marshaler runtime.Marshaler = &runtime.JSONBuiltin{}

type errorResponse struct {
	Error string `json:"error"`
}

// startSpan opens the handler span and tags the response with a request id:
// the trace id when tracing is on, a random uuid otherwise.
func startSpan(w http.ResponseWriter, r *http.Request, name string) (context.Context, trace.Span, string) {
	ctx, span := tracer.Start(r.Context(), name)

	requestID := uuid.NewString()
	if span.SpanContext().HasTraceID() {
		requestID = span.SpanContext().TraceID().String()
	}
	w.Header().Set(requestIDField, requestID)

	return ctx, span, requestID
}

func parseID(params map[string]string) (int64, error) {
	id, err := strconv.ParseInt(params["id"], 10, 64)
	if err != nil {
		return entity.UnsetID, fmt.Errorf("id: %w", err)
	}
	if err = validation.Validate(id, validation.Required, validation.Min(int64(1))); err != nil {
		return entity.UnsetID, fmt.Errorf("id: %w", err)
	}
	return id, nil
}

func decodeRequest(r *http.Request, req validation.Validatable) error {
	if err := marshaler.NewDecoder(r.Body).Decode(req); err != nil {
		return fmt.Errorf("malformed body: %w", err)
	}
	return req.Validate()
}

func (i *implementation) convertErr(err error) error {
	switch {
	case errors.Is(err, entity.ErrAuthorNotFound), errors.Is(err, entity.ErrBookNotFound):
		return status.Error(codes.NotFound, err.Error())
	default:
		return status.Error(codes.Internal, "internal error")
	}
}

func (i *implementation) writeError(w http.ResponseWriter, err error) {
	st := status.Convert(err)
	i.writeJSON(w, runtime.HTTPStatusFromCode(st.Code()), errorResponse{Error: st.Message()})
}

func (i *implementation) writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", marshaler.ContentType(v))
	w.WriteHeader(code)
	err := marshaler.NewEncoder(w).Encode(v)
	logger.CheckError(err, i.logger, "can not write response", zap.Int("status", code))
}
