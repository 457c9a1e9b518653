package catalog

import (
	"context"
	"fmt"

	"github.com/project/catalog/internal/entity"
	"github.com/project/catalog/internal/log"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

func (c *catalogImpl) CreateAuthor(ctx context.Context, firstName, lastName string) (entity.Author, error) {
	span := trace.SpanFromContext(ctx)
	traceID := span.SpanContext().TraceID().String()
	log.InfoCreateAuthor(c.logger, "Start of create author", traceID, firstName, lastName)

	author, err := c.authorStore.Save(ctx, entity.Author{
		FirstName:        firstName,
		LastName:         lastName,
		PublishedBookIDs: []int64{},
	})

	if log.ErrorCreateAuthor(c.logger, err, "Failed create author", traceID, firstName, lastName) {
		span.RecordError(err)
		return entity.Author{}, err
	}

	span.SetAttributes(attribute.Int64("author_id", author.ID))
	log.InfoCreateAuthor(c.logger, "Created the author", traceID, firstName, lastName, author.ID)
	return author, nil
}

func (c *catalogImpl) AuthorByID(ctx context.Context, id int64) (entity.Author, bool) {
	span := trace.SpanFromContext(ctx)
	traceID := span.SpanContext().TraceID().String()
	span.SetAttributes(attribute.Int64("author_id", id))

	author, ok := c.authorStore.GetByID(ctx, id)
	if ok {
		log.InfoGetAuthor(c.logger, "Got the author", traceID, id)
	}
	return author, ok
}

func (c *catalogImpl) Authors(ctx context.Context) []entity.Author {
	traceID := trace.SpanFromContext(ctx).SpanContext().TraceID().String()

	authors := c.authorStore.GetAll(ctx)
	log.InfoListAuthors(c.logger, "Listed authors", traceID, len(authors))
	return authors
}

// DeleteAuthor removes every book the author lists, then the author itself.
// Books that are already gone are skipped. A failed book delete stops the
// cascade before the author record is touched.
func (c *catalogImpl) DeleteAuthor(ctx context.Context, id int64) (bool, error) {
	span := trace.SpanFromContext(ctx)
	traceID := span.SpanContext().TraceID().String()
	span.SetAttributes(attribute.Int64("author_id", id))

	author, ok := c.authorStore.GetByID(ctx, id)
	if !ok {
		return false, nil
	}
	log.InfoDeleteAuthor(c.logger, "Start of delete author", traceID, id, author.PublishedBookIDs...)

	for _, bookID := range author.PublishedBookIDs {
		if _, err := c.bookStore.DeleteByID(ctx, bookID); err != nil {
			err = fmt.Errorf("cascade of author %d stopped at book %d: %w", id, bookID, err)
			log.ErrorDeleteAuthor(c.logger, err, "Failed delete author books", traceID, id)
			span.RecordError(err)
			return false, err
		}
	}

	deleted, err := c.authorStore.DeleteByID(ctx, id)
	if log.ErrorDeleteAuthor(c.logger, err, "Failed delete author", traceID, id) {
		span.RecordError(err)
		return false, err
	}

	log.InfoDeleteAuthor(c.logger, "Deleted the author", traceID, id, author.PublishedBookIDs...)
	return deleted, nil
}
