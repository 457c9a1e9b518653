package repository

import (
	"cmp"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"

	"github.com/project/catalog/internal/entity"
	"github.com/project/catalog/pkg/logger"
	"go.uber.org/zap"
)

// Entity is a record addressed by an allocator-assigned integer id.
type Entity interface {
	GetID() int64
	SetID(id int64)
}

// EntityStore is the CRUD facade over one collection. Reads never fail: missing,
// unreadable and undecodable records are reported as absent and logged.
type EntityStore[T any, PT interface {
	*T
	Entity
}] struct {
	logger     *zap.Logger
	collection string
	backend    Backend
	allocator  *IDAllocator
}

func NewEntityStore[T any, PT interface {
	*T
	Entity
}](l *zap.Logger, collection string, backend Backend, allocator *IDAllocator) *EntityStore[T, PT] {
	return &EntityStore[T, PT]{
		logger:     logger.Named(l, collection),
		collection: collection,
		backend:    backend,
		allocator:  allocator,
	}
}

func (s *EntityStore[T, PT]) GetByID(ctx context.Context, id int64) (T, bool) {
	var zero T

	data, err := s.backend.Read(ctx, id)
	if errors.Is(err, ErrRecordNotFound) {
		return zero, false
	}
	if logger.CheckError(err, s.logger, "can not read record", zap.Int64("id", id)) {
		return zero, false
	}

	value, err := s.decode(data)
	if logger.CheckError(err, s.logger, "can not decode record", zap.Int64("id", id)) {
		return zero, false
	}
	if PT(&value).GetID() == entity.UnsetID {
		PT(&value).SetID(id)
	}

	return value, true
}

// GetAll returns every decodable record ordered by id.
func (s *EntityStore[T, PT]) GetAll(ctx context.Context) []T {
	records, err := s.backend.ReadAll(ctx)
	if logger.CheckError(err, s.logger, "can not enumerate records") {
		return []T{}
	}

	result := make([]T, 0, len(records))
	for _, data := range records {
		value, decodeErr := s.decode(data)
		if logger.CheckWarn(decodeErr, s.logger, "skip undecodable record") {
			continue
		}
		result = append(result, value)
	}

	slices.SortFunc(result, func(a, b T) int {
		return cmp.Compare(PT(&a).GetID(), PT(&b).GetID())
	})
	return result
}

// Save writes the full record, assigning a fresh id to new entities.
func (s *EntityStore[T, PT]) Save(ctx context.Context, value T) (T, error) {
	var zero T

	p := PT(&value)
	if p.GetID() == entity.UnsetID {
		p.SetID(s.allocator.NextID())
	} else {
		s.allocator.Observe(p.GetID())
	}

	data, err := json.Marshal(value)
	if err != nil {
		return zero, fmt.Errorf("can not encode %s %d: %w", s.collection, p.GetID(), err)
	}

	if err = s.backend.Write(ctx, p.GetID(), data); err != nil {
		logger.CheckError(err, s.logger, "can not write record", zap.Int64("id", p.GetID()))
		return zero, fmt.Errorf("can not write %s %d: %w", s.collection, p.GetID(), err)
	}

	logger.MakeDebug(s.logger, "record saved", zap.Int64("id", p.GetID()))
	return value, nil
}

// DeleteByID removes the record and reports whether it existed. Deleting a
// missing record is a no-op returning false.
func (s *EntityStore[T, PT]) DeleteByID(ctx context.Context, id int64) (bool, error) {
	deleted, err := s.backend.Delete(ctx, id)
	if err != nil {
		logger.CheckError(err, s.logger, "can not delete record", zap.Int64("id", id))
		return false, fmt.Errorf("can not delete %s %d: %w", s.collection, id, err)
	}

	logger.MakeDebug(s.logger, "record deleted", zap.Int64("id", id), zap.Bool("existed", deleted))
	return deleted, nil
}

func (s *EntityStore[T, PT]) decode(data []byte) (T, error) {
	var value T
	if err := json.Unmarshal(data, &value); err != nil {
		return value, err
	}
	return value, nil
}
