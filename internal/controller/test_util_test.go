package controller

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/grpc-ecosystem/grpc-gateway/v2/runtime"
	"github.com/project/catalog/internal/controller/mocks"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

var (
	errInternal = errors.New("internal error")
	tooLongName = strings.Repeat("Too long name", 40)
)

func initTest(t *testing.T) (*runtime.ServeMux, *mocks.MockAuthorUseCase, *mocks.MockBooksUseCase) {
	t.Helper()
	ctrl := gomock.NewController(t)
	authorUseCase := mocks.NewMockAuthorUseCase(ctrl)
	booksUseCase := mocks.NewMockBooksUseCase(ctrl)
	logger, err := zap.NewProduction()
	if err != nil {
		t.Fatal("assertion error: " + err.Error())
	}

	mux := runtime.NewServeMux()
	require.NoError(t, New(logger, booksUseCase, authorUseCase).Register(mux))
	return mux, authorUseCase, booksUseCase
}

func serve(t *testing.T, handler http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	require.NotEmpty(t, rec.Header().Get(requestIDField))
	return rec
}
