package controller

import (
	"context"

	"github.com/project/catalog/internal/entity"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

//go:generate mockgen -source=service.go -destination=mocks/usecases_mock.go -package=mocks

type (
	AuthorUseCase interface {
		CreateAuthor(ctx context.Context, firstName, lastName string) (entity.Author, error)
		AuthorByID(ctx context.Context, id int64) (entity.Author, bool)
		Authors(ctx context.Context) []entity.Author
		DeleteAuthor(ctx context.Context, id int64) (bool, error)
	}

	BooksUseCase interface {
		CreateBook(ctx context.Context, title string, year int, authorID int64) (entity.Book, error)
		BookByID(ctx context.Context, id int64) (entity.Book, bool)
		Books(ctx context.Context) []entity.Book
		DeleteBook(ctx context.Context, id int64) (bool, error)
	}
)

var tracer = otel.Tracer("github.com/project/catalog/internal/controller")

type implementation struct {
	logger        *zap.Logger
	booksUseCase  BooksUseCase
	authorUseCase AuthorUseCase
}

func New(
	logger *zap.Logger,
	booksUseCase BooksUseCase,
	authorUseCase AuthorUseCase,
) *implementation {
	return &implementation{
		logger:        logger,
		booksUseCase:  booksUseCase,
		authorUseCase: authorUseCase,
	}
}
