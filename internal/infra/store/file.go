package store

import (
	"context"
	"errors"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"

	"github.com/itsyanis/1Day1Quote/internal/domain"
)

type FileStore struct {
	dir string
}

func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, domain.Persistence("file store init", err)
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) path(key string) string {
	return filepath.Join(s.dir, url.PathEscape(key)+".json")
}

func (s *FileStore) Get(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, domain.Persistence("file get "+key, err)
	}
	b, err := os.ReadFile(s.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, domain.Persistence("file get "+key, err)
	}
	return string(b), true, nil
}

func (s *FileStore) Set(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return domain.Persistence("file set "+key, err)
	}
	tmp, err := os.CreateTemp(s.dir, ".tmp-*")
	if err != nil {
		return domain.Persistence("file set "+key, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.WriteString(value); err != nil {
		tmp.Close()
		return domain.Persistence("file set "+key, err)
	}
	if err := tmp.Close(); err != nil {
		return domain.Persistence("file set "+key, err)
	}
	if err := os.Rename(tmp.Name(), s.path(key)); err != nil {
		return domain.Persistence("file set "+key, err)
	}
	return nil
}

func (s *FileStore) Delete(ctx context.Context, keys ...string) error {
	for _, k := range keys {
		err := os.Remove(s.path(k))
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return domain.Persistence("file delete "+k, err)
		}
	}
	return nil
}
