package repository

import (
	"context"
	"errors"
	"strconv"
)

// ErrRecordNotFound is returned by Backend.Read for ids that have no record.
var ErrRecordNotFound = errors.New("record not found")

type (
	// Backend persists serialized records of a single collection.
	// Delete reports whether a record was removed; a missing record is not an error.
	Backend interface {
		Read(ctx context.Context, id int64) ([]byte, error)
		ReadAll(ctx context.Context) ([][]byte, error)
		Write(ctx context.Context, id int64, data []byte) error
		Delete(ctx context.Context, id int64) (bool, error)
	}

	// KeyScanner lists the raw identifiers of persisted records without decoding them.
	// On failure it may return the identifiers read so far together with the error.
	KeyScanner interface {
		Keys(ctx context.Context) ([]string, error)
	}

	// Pinger is implemented by backends that talk to a remote service.
	Pinger interface {
		Ping(ctx context.Context) error
	}

	// DurableBackend survives restarts, so allocators recover their counter from it.
	DurableBackend interface {
		Backend
		KeyScanner
	}
)

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}
