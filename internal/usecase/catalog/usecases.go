package catalog

import (
	"context"

	"github.com/project/catalog/internal/entity"
	"go.uber.org/zap"
)

//go:generate mockgen -source=usecases.go -destination=mocks/stores_mock.go -package=mocks

type (
	AuthorStore interface {
		GetByID(ctx context.Context, id int64) (entity.Author, bool)
		GetAll(ctx context.Context) []entity.Author
		Save(ctx context.Context, author entity.Author) (entity.Author, error)
		DeleteByID(ctx context.Context, id int64) (bool, error)
	}

	BookStore interface {
		GetByID(ctx context.Context, id int64) (entity.Book, bool)
		GetAll(ctx context.Context) []entity.Book
		Save(ctx context.Context, book entity.Book) (entity.Book, error)
		DeleteByID(ctx context.Context, id int64) (bool, error)
	}
)

var _ AuthorUseCase = (*catalogImpl)(nil)
var _ BooksUseCase = (*catalogImpl)(nil)

// catalogImpl keeps every author's book list in step with the books that point
// back at it. The two stores share no transaction, so each mutation writes in a
// fixed order and a crash between writes can leave an orphan book.
type catalogImpl struct {
	logger      *zap.Logger
	authorStore AuthorStore
	bookStore   BookStore
}

func New(
	logger *zap.Logger,
	authorStore AuthorStore,
	bookStore BookStore,
) *catalogImpl {
	return &catalogImpl{
		logger:      logger,
		authorStore: authorStore,
		bookStore:   bookStore,
	}
}
