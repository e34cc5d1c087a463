package store

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/itsyanis/1Day1Quote/internal/domain"
)

func ClientID(dir string) (uuid.UUID, error) {
	path := filepath.Join(dir, "client-id")
	b, err := os.ReadFile(path)
	if err == nil {
		if id, perr := uuid.Parse(strings.TrimSpace(string(b))); perr == nil {
			return id, nil
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return uuid.Nil, domain.Persistence("read client id", err)
	}

	id := uuid.New()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return uuid.Nil, domain.Persistence("write client id", err)
	}
	if err := os.WriteFile(path, []byte(id.String()+"\n"), 0o644); err != nil {
		return uuid.Nil, domain.Persistence("write client id", err)
	}
	return id, nil
}
