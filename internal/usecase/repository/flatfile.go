package repository

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/project/catalog/pkg/logger"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// FileExtension is appended to the record id to form its file name.
const FileExtension = ".json"

var (
	_ DurableBackend = (*FlatFileBackend)(nil)

	ErrEmptyLocation = errors.New("storage location is empty")
)

// FlatFileBackend stores every record as <id>.json inside one working directory.
type FlatFileBackend struct {
	logger *zap.Logger
	fs     afero.Fs
	dir    string
}

// NewFlatFileBackend creates dir when it does not exist. Failing to do so is fatal for
// the caller: the collection can not be served without its working directory.
func NewFlatFileBackend(l *zap.Logger, fs afero.Fs, dir string) (*FlatFileBackend, error) {
	if dir == "" {
		return nil, ErrEmptyLocation
	}
	dir = filepath.Clean(dir)

	exists, err := afero.DirExists(fs, dir)
	if err != nil {
		return nil, fmt.Errorf("can not stat working directory %s: %w", dir, err)
	}
	if !exists {
		if err = fs.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("can not create working directory %s: %w", dir, err)
		}
		logger.MakeInfo(l, "working directory created", zap.String("dir", dir))
	}

	return &FlatFileBackend{
		logger: l,
		fs:     fs,
		dir:    dir,
	}, nil
}

func (f *FlatFileBackend) Dir() string {
	return f.dir
}

func (f *FlatFileBackend) path(id int64) string {
	return filepath.Join(f.dir, formatID(id)+FileExtension)
}

func (f *FlatFileBackend) Read(_ context.Context, id int64) ([]byte, error) {
	data, err := f.readFile(f.path(id))
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrRecordNotFound
	}
	return data, err
}

func (f *FlatFileBackend) ReadAll(_ context.Context) ([][]byte, error) {
	names, err := f.recordFiles()
	if errors.Is(err, os.ErrNotExist) {
		return [][]byte{}, nil
	}
	if err != nil {
		return nil, err
	}

	result := make([][]byte, 0, len(names))
	for _, name := range names {
		data, readErr := f.readFile(filepath.Join(f.dir, name))
		if logger.CheckWarn(readErr, f.logger, "skip unreadable record file", zap.String("file", name)) {
			continue
		}
		result = append(result, data)
	}
	return result, nil
}

func (f *FlatFileBackend) Write(_ context.Context, id int64, data []byte) (err error) {
	file, err := f.fs.OpenFile(f.path(id), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, file.Close())
	}()

	_, err = file.Write(data)
	return err
}

func (f *FlatFileBackend) Delete(_ context.Context, id int64) (bool, error) {
	err := f.fs.Remove(f.path(id))
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Keys returns record file names without the extension.
func (f *FlatFileBackend) Keys(_ context.Context) ([]string, error) {
	names, err := f.recordFiles()
	if err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(names))
	for _, name := range names {
		keys = append(keys, strings.TrimSuffix(name, FileExtension))
	}
	return keys, nil
}

func (f *FlatFileBackend) recordFiles() ([]string, error) {
	entries, err := afero.ReadDir(f.fs, f.dir)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), FileExtension) {
			continue
		}
		names = append(names, entry.Name())
	}
	return names, nil
}

func (f *FlatFileBackend) readFile(path string) (_ []byte, err error) {
	file, err := f.fs.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		err = errors.Join(err, file.Close())
	}()

	return io.ReadAll(file)
}
