package catalog

import (
	"context"

	"github.com/project/catalog/internal/entity"
)

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
