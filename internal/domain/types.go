package domain

import (
	"context"
)

type QuoteSource interface {
	Random(ctx context.Context) (map[string]any, error)
	Name() string
}

type AuthorSource interface {
	Lookup(ctx context.Context, name string) (AuthorRecord, error)
	Name() string
}

type KVStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, keys ...string) error
}

type PageMeta struct {
	Title       string            `json:"title"`
	Lang        string            `json:"lang"`
	Description string            `json:"description"`
	Image       string            `json:"image"`
	Tags        map[string]string `json:"tags"`
}

type MetadataInjector interface {
	Inject(meta PageMeta) error
}
