package catalog

import (
	"context"
	"fmt"

	"github.com/project/catalog/internal/entity"
	"github.com/project/catalog/internal/log"
	"github.com/samber/lo"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// CreateBook saves the book first so it has an id, then appends that id to the
// author. A failure on the second write leaves the book saved but unlisted.
func (c *catalogImpl) CreateBook(ctx context.Context, title string, year int, authorID int64) (entity.Book, error) {
	span := trace.SpanFromContext(ctx)
	traceID := span.SpanContext().TraceID().String()
	span.SetAttributes(attribute.Int64("author_id", authorID))
	log.InfoCreateBook(c.logger, "Start of create book", traceID, title, authorID)

	author, ok := c.authorStore.GetByID(ctx, authorID)
	if !ok {
		log.ErrorCreateBook(c.logger, entity.ErrAuthorNotFound, "Unknown author", traceID, title, authorID)
		span.RecordError(entity.ErrAuthorNotFound)
		return entity.Book{}, entity.ErrAuthorNotFound
	}

	book, err := c.bookStore.Save(ctx, entity.Book{
		Title:         title,
		PublishedYear: year,
		Author:        author.Ref(),
	})
	if log.ErrorCreateBook(c.logger, err, "Failed save book", traceID, title, authorID) {
		span.RecordError(err)
		return entity.Book{}, err
	}

	author.PublishedBookIDs = append(author.PublishedBookIDs, book.ID)
	if _, err = c.authorStore.Save(ctx, author); err != nil {
		err = fmt.Errorf("book %d saved but not listed by author %d: %w", book.ID, authorID, err)
		log.ErrorCreateBook(c.logger, err, "Failed update author", traceID, title, authorID)
		span.RecordError(err)
		return entity.Book{}, err
	}

	span.SetAttributes(attribute.Int64("book_id", book.ID))
	log.InfoCreateBook(c.logger, "Created the book", traceID, title, authorID, book.ID)
	return book, nil
}

func (c *catalogImpl) BookByID(ctx context.Context, id int64) (entity.Book, bool) {
	span := trace.SpanFromContext(ctx)
	traceID := span.SpanContext().TraceID().String()
	span.SetAttributes(attribute.Int64("book_id", id))

	book, ok := c.bookStore.GetByID(ctx, id)
	if ok {
		log.InfoGetBook(c.logger, "Got the book", traceID, id)
	}
	return book, ok
}

func (c *catalogImpl) Books(ctx context.Context) []entity.Book {
	traceID := trace.SpanFromContext(ctx).SpanContext().TraceID().String()

	books := c.bookStore.GetAll(ctx)
	log.InfoListBooks(c.logger, "Listed books", traceID, len(books))
	return books
}

// DeleteBook unlists the book from its author before deleting the book record.
func (c *catalogImpl) DeleteBook(ctx context.Context, id int64) (bool, error) {
	span := trace.SpanFromContext(ctx)
	traceID := span.SpanContext().TraceID().String()
	span.SetAttributes(attribute.Int64("book_id", id))

	book, ok := c.bookStore.GetByID(ctx, id)
	if !ok {
		return false, nil
	}

	authorID := book.AuthorID()
	if authorID != entity.UnsetID {
		if author, found := c.authorStore.GetByID(ctx, authorID); found {
			author.PublishedBookIDs = lo.Without(author.PublishedBookIDs, id)
			if _, err := c.authorStore.Save(ctx, author); err != nil {
				log.ErrorDeleteBook(c.logger, err, "Failed update author", traceID, id)
				span.RecordError(err)
				return false, err
			}
		}
	}

	deleted, err := c.bookStore.DeleteByID(ctx, id)
	if log.ErrorDeleteBook(c.logger, err, "Failed delete book", traceID, id) {
		span.RecordError(err)
		return false, err
	}

	log.InfoDeleteBook(c.logger, "Deleted the book", traceID, id, authorID)
	return deleted, nil
}
