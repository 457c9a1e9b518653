package catalog

import (
	"context"
	"testing"

	"github.com/project/catalog/internal/entity"
	"github.com/project/catalog/internal/usecase/catalog/mocks"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestCreateBook(t *testing.T) {
	t.Parallel()

	const (
		authorID int64 = 3
		bookID   int64 = 10
	)
	stored := entity.Author{ID: authorID, FirstName: "Joshua", LastName: "Bloch", PublishedBookIDs: []int64{4}}

	tests := []struct {
		name    string
		prepare func(t *testing.T, ctx context.Context, authors *mocks.MockAuthorStore, books *mocks.MockBookStore)
		err     error
	}{
		{
			name: "unknown author creates nothing",
			prepare: func(t *testing.T, ctx context.Context, authors *mocks.MockAuthorStore, _ *mocks.MockBookStore) {
				authors.EXPECT().GetByID(ctx, authorID).Return(entity.Author{}, false)
			},
			err: entity.ErrAuthorNotFound,
		},
		{
			name: "book saved before author",
			prepare: func(t *testing.T, ctx context.Context, authors *mocks.MockAuthorStore, books *mocks.MockBookStore) {
				gomock.InOrder(
					authors.EXPECT().GetByID(ctx, authorID).Return(stored, true),
					books.EXPECT().Save(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, input entity.Book) (entity.Book, error) {
						require.Equal(t, entity.UnsetID, input.ID)
						require.Equal(t, authorID, input.AuthorID())
						require.Empty(t, input.Author.PublishedBookIDs)
						input.ID = bookID
						return input, nil
					}),
					authors.EXPECT().Save(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, input entity.Author) (entity.Author, error) {
						require.Equal(t, []int64{4, bookID}, input.PublishedBookIDs)
						return input, nil
					}),
				)
			},
		},
		{
			name: "failed book save leaves author untouched",
			prepare: func(t *testing.T, ctx context.Context, authors *mocks.MockAuthorStore, books *mocks.MockBookStore) {
				gomock.InOrder(
					authors.EXPECT().GetByID(ctx, authorID).Return(stored, true),
					books.EXPECT().Save(ctx, gomock.Any()).Return(entity.Book{}, errInternal),
				)
			},
			err: errInternal,
		},
		{
			name: "failed author save",
			prepare: func(t *testing.T, ctx context.Context, authors *mocks.MockAuthorStore, books *mocks.MockBookStore) {
				gomock.InOrder(
					authors.EXPECT().GetByID(ctx, authorID).Return(stored, true),
					books.EXPECT().Save(ctx, gomock.Any()).Return(entity.Book{ID: bookID}, nil),
					authors.EXPECT().Save(ctx, gomock.Any()).Return(entity.Author{}, errInternal),
				)
			},
			err: errInternal,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			ctx, authorStore, bookStore, s := initCatalogTest(t)
			test.prepare(t, ctx, authorStore, bookStore)

			book, err := s.CreateBook(ctx, "Effective Java", 2000, authorID)
			require.ErrorIs(t, err, test.err)
			if err != nil {
				require.Empty(t, book)
				return
			}
			require.Equal(t, bookID, book.ID)
			require.Equal(t, "Effective Java", book.Title)
			require.Equal(t, 2000, book.PublishedYear)
		})
	}
}

func TestBookByID(t *testing.T) {
	t.Parallel()
	ctx, _, bookStore, s := initCatalogTest(t)

	stored := entity.FixtureBooks()[0]
	bookStore.EXPECT().GetByID(ctx, stored.ID).Return(stored, true)
	bookStore.EXPECT().GetByID(ctx, int64(99)).Return(entity.Book{}, false)

	book, ok := s.BookByID(ctx, stored.ID)
	require.True(t, ok)
	require.Equal(t, stored, book)

	_, ok = s.BookByID(ctx, 99)
	require.False(t, ok)
}

func TestBooks(t *testing.T) {
	t.Parallel()
	ctx, _, bookStore, s := initCatalogTest(t)

	bookStore.EXPECT().GetAll(ctx).Return([]entity.Book{})
	require.Empty(t, s.Books(ctx))
}

func TestDeleteBook(t *testing.T) {
	t.Parallel()

	const (
		authorID int64 = 3
		bookID   int64 = 10
	)
	author := entity.Author{ID: authorID, FirstName: "Joshua", LastName: "Bloch", PublishedBookIDs: []int64{4, bookID}}
	book := entity.Book{ID: bookID, Title: "Effective Java", PublishedYear: 2000, Author: author.Ref()}

	tests := []struct {
		name    string
		prepare func(t *testing.T, ctx context.Context, authors *mocks.MockAuthorStore, books *mocks.MockBookStore)
		deleted bool
		err     error
	}{
		{
			name: "unknown book",
			prepare: func(t *testing.T, ctx context.Context, _ *mocks.MockAuthorStore, books *mocks.MockBookStore) {
				books.EXPECT().GetByID(ctx, bookID).Return(entity.Book{}, false)
			},
		},
		{
			name: "author updated before book delete",
			prepare: func(t *testing.T, ctx context.Context, authors *mocks.MockAuthorStore, books *mocks.MockBookStore) {
				gomock.InOrder(
					books.EXPECT().GetByID(ctx, bookID).Return(book, true),
					authors.EXPECT().GetByID(ctx, authorID).Return(author, true),
					authors.EXPECT().Save(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, input entity.Author) (entity.Author, error) {
						require.Equal(t, []int64{4}, input.PublishedBookIDs)
						return input, nil
					}),
					books.EXPECT().DeleteByID(ctx, bookID).Return(true, nil),
				)
			},
			deleted: true,
		},
		{
			name: "missing author still deletes book",
			prepare: func(t *testing.T, ctx context.Context, authors *mocks.MockAuthorStore, books *mocks.MockBookStore) {
				gomock.InOrder(
					books.EXPECT().GetByID(ctx, bookID).Return(book, true),
					authors.EXPECT().GetByID(ctx, authorID).Return(entity.Author{}, false),
					books.EXPECT().DeleteByID(ctx, bookID).Return(true, nil),
				)
			},
			deleted: true,
		},
		{
			name: "book without author",
			prepare: func(t *testing.T, ctx context.Context, _ *mocks.MockAuthorStore, books *mocks.MockBookStore) {
				gomock.InOrder(
					books.EXPECT().GetByID(ctx, bookID).Return(entity.Book{ID: bookID, Title: "Anonymous"}, true),
					books.EXPECT().DeleteByID(ctx, bookID).Return(true, nil),
				)
			},
			deleted: true,
		},
		{
			name: "book removed by a concurrent delete",
			prepare: func(t *testing.T, ctx context.Context, _ *mocks.MockAuthorStore, books *mocks.MockBookStore) {
				gomock.InOrder(
					books.EXPECT().GetByID(ctx, bookID).Return(entity.Book{ID: bookID, Title: "Anonymous"}, true),
					books.EXPECT().DeleteByID(ctx, bookID).Return(false, nil),
				)
			},
		},
		{
			name: "failed author update keeps book",
			prepare: func(t *testing.T, ctx context.Context, authors *mocks.MockAuthorStore, books *mocks.MockBookStore) {
				gomock.InOrder(
					books.EXPECT().GetByID(ctx, bookID).Return(book, true),
					authors.EXPECT().GetByID(ctx, authorID).Return(author, true),
					authors.EXPECT().Save(ctx, gomock.Any()).Return(entity.Author{}, errInternal),
				)
			},
			err: errInternal,
		},
		{
			name: "failed book delete",
			prepare: func(t *testing.T, ctx context.Context, authors *mocks.MockAuthorStore, books *mocks.MockBookStore) {
				gomock.InOrder(
					books.EXPECT().GetByID(ctx, bookID).Return(book, true),
					authors.EXPECT().GetByID(ctx, authorID).Return(author, true),
					authors.EXPECT().Save(ctx, gomock.Any()).Return(author, nil),
					books.EXPECT().DeleteByID(ctx, bookID).Return(false, errInternal),
				)
			},
			err: errInternal,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			ctx, authorStore, bookStore, s := initCatalogTest(t)
			test.prepare(t, ctx, authorStore, bookStore)

			deleted, err := s.DeleteBook(ctx, bookID)
			require.ErrorIs(t, err, test.err)
			require.Equal(t, test.deleted, deleted)
		})
	}
}
