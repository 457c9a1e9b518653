package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/project/catalog/internal/usecase/catalog/mocks"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

var errInternal = errors.New("internal error")

func initCatalogTest(t *testing.T) (context.Context, *mocks.MockAuthorStore, *mocks.MockBookStore, *catalogImpl) {
	t.Helper()
	ctrl := gomock.NewController(t)
	authorStore := mocks.NewMockAuthorStore(ctrl)
	bookStore := mocks.NewMockBookStore(ctrl)
	logger, err := zap.NewProduction()
	if err != nil {
		t.Fatal("assertion error: " + err.Error())
	}
	return context.Background(), authorStore, bookStore, New(logger, authorStore, bookStore)
}
