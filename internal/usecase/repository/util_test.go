package repository

import (
	"context"
	"errors"
)

var errInternal = errors.New("internal error")

type stubScanner struct {
	keys []string
	err  error
}

func (s stubScanner) Keys(context.Context) ([]string, error) {
	return s.keys, s.err
}

// failingBackend fails every operation with errInternal.
type failingBackend struct{}

func (failingBackend) Read(context.Context, int64) ([]byte, error) { return nil, errInternal }
func (failingBackend) ReadAll(context.Context) ([][]byte, error)   { return nil, errInternal }
func (failingBackend) Write(context.Context, int64, []byte) error  { return errInternal }
func (failingBackend) Delete(context.Context, int64) (bool, error) { return false, errInternal }
