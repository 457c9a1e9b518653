package repository

import (
	"context"
	"strconv"
	"sync/atomic"

	"github.com/project/catalog/pkg/logger"
	"go.uber.org/zap"
)

const firstID int64 = 1

// IDAllocator hands out strictly increasing ids for one collection.
type IDAllocator struct {
	next atomic.Int64
}

// NewIDAllocator starts after the highest integer key currently persisted in scanner.
// Keys that are not integers are ignored. When the scan fails the counter starts at
// 1 plus the number of keys that could be read, which may reuse an id if the scan
// missed records.
func NewIDAllocator(ctx context.Context, l *zap.Logger, scanner KeyScanner) *IDAllocator {
	a := &IDAllocator{}

	keys, err := scanner.Keys(ctx)
	if logger.CheckError(err, l, "can not scan persisted ids, falling back to record count",
		zap.Int("keys_read", len(keys))) {
		a.next.Store(firstID + int64(len(keys)))
		return a
	}

	highest := int64(0)
	for _, key := range keys {
		id, parseErr := strconv.ParseInt(key, 10, 64)
		if parseErr != nil {
			logger.MakeDebug(l, "skip non numeric key", zap.String("key", key))
			continue
		}
		highest = max(highest, id)
	}

	a.next.Store(highest + 1)
	logger.MakeInfo(l, "id allocator recovered", zap.Int64("next_id", highest+1))
	return a
}

// NewFixedIDAllocator starts at start; used for volatile backends with nothing to scan.
func NewFixedIDAllocator(start int64) *IDAllocator {
	a := &IDAllocator{}
	a.next.Store(max(start, firstID))
	return a
}

func (a *IDAllocator) NextID() int64 {
	return a.next.Add(1) - 1
}

// Observe moves the counter past id so that it is never handed out later.
func (a *IDAllocator) Observe(id int64) {
	for {
		current := a.next.Load()
		if id < current {
			return
		}
		if a.next.CompareAndSwap(current, id+1) {
			return
		}
	}
}
