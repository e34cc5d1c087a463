package config

import (
	"fmt"
	"path/filepath"

	"github.com/itsyanis/1Day1Quote/internal/domain"
	"github.com/itsyanis/1Day1Quote/internal/infra/store"
)

func OpenStore(cfg StoreConfig) (domain.KVStore, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Backend {
	case "memory":
		return store.NewMemoryStore(), noop, nil
	case "file":
		id, err := store.ClientID(cfg.Dir)
		if err != nil {
			return nil, noop, err
		}
		fs, err := store.NewFileStore(filepath.Join(cfg.Dir, id.String()))
		if err != nil {
			return nil, noop, err
		}
		return fs, noop, nil
	case "redis":
		id, err := store.ClientID(cfg.Dir)
		if err != nil {
			return nil, noop, err
		}
		rs := store.NewRedisStore(cfg.Redis, "quotes:"+id.String())
		return rs, rs.Close, nil
	default:
		return nil, noop, fmt.Errorf("unknown store backend %q", cfg.Backend)
	}
}
