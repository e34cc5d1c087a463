package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/itsyanis/1Day1Quote/internal/domain"
	"github.com/itsyanis/1Day1Quote/internal/validate"
)

type Slot string

const (
	QuotesSlot  Slot = "cachedQuotes"
	AuthorsSlot Slot = "cachedAuthors"
	ImagesSlot  Slot = "cachedImages"
)

var Slots = []Slot{QuotesSlot, AuthorsSlot, ImagesSlot}

type Caches struct {
	store domain.KVStore
	log   *slog.Logger

	quotesMu sync.Mutex
	quotes   []domain.Quote
	shown    map[string]struct{}

	authorsMu sync.RWMutex
	authors   map[string]domain.AuthorInfo

	imagesMu sync.RWMutex
	images   map[string]string
}

func Open(ctx context.Context, store domain.KVStore, log *slog.Logger) *Caches {
	if log == nil {
		log = slog.Default()
	}
	c := &Caches{
		store:   store,
		log:     log.With("component", "cache"),
		shown:   make(map[string]struct{}),
		authors: make(map[string]domain.AuthorInfo),
		images:  make(map[string]string),
	}
	c.Reload(ctx)
	return c
}

func (c *Caches) Reload(ctx context.Context) {
	var quotes []domain.Quote
	if !c.load(ctx, QuotesSlot, &quotes) {
		quotes = nil
	}
	authors := make(map[string]domain.AuthorInfo)
	if !c.load(ctx, AuthorsSlot, &authors) || authors == nil {
		authors = make(map[string]domain.AuthorInfo)
	}
	images := make(map[string]string)
	if !c.load(ctx, ImagesSlot, &images) || images == nil {
		images = make(map[string]string)
	}

	c.quotesMu.Lock()
	c.quotes = sanitizeQuotes(quotes, c.log)
	c.quotesMu.Unlock()

	c.authorsMu.Lock()
	c.authors = authors
	c.authorsMu.Unlock()

	c.imagesMu.Lock()
	c.images = images
	c.imagesMu.Unlock()
}

func (c *Caches) load(ctx context.Context, slot Slot, v any) bool {
	raw, ok, err := c.store.Get(ctx, string(slot))
	if err != nil {
		c.log.Warn("cache load failed", "slot", slot, "error", err)
		return false
	}
	if !ok || raw == "" {
		return false
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		c.log.Warn("cache slot corrupt, starting empty", "slot", slot,
			"error", domain.Persistence("decode "+string(slot), err))
		return false
	}
	return true
}

// save must be called with the slot's lock held.
func (c *Caches) save(ctx context.Context, slot Slot, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		c.log.Error("cache encode failed", "slot", slot, "error", err)
		return
	}
	if err := c.store.Set(ctx, string(slot), string(b)); err != nil {
		c.log.Warn("cache save failed", "slot", slot, "error", err)
	}
}

func sanitizeQuotes(in []domain.Quote, log *slog.Logger) []domain.Quote {
	out := make([]domain.Quote, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, q := range in {
		if err := validate.CheckQuote(q); err != nil {
			log.Warn("dropping cached quote", "author", q.Author, "error", err)
			continue
		}
		if _, dup := seen[q.Text]; dup {
			continue
		}
		seen[q.Text] = struct{}{}
		out = append(out, q)
	}
	return out
}

func (c *Caches) Len() int {
	c.quotesMu.Lock()
	defer c.quotesMu.Unlock()
	return len(c.quotes)
}

func (c *Caches) Quotes() []domain.Quote {
	c.quotesMu.Lock()
	defer c.quotesMu.Unlock()
	return append([]domain.Quote(nil), c.quotes...)
}

// Pop removes and returns the most recently pushed quote.
func (c *Caches) Pop(ctx context.Context) (domain.Quote, bool) {
	c.quotesMu.Lock()
	defer c.quotesMu.Unlock()
	if len(c.quotes) == 0 {
		return domain.Quote{}, false
	}
	q := c.quotes[len(c.quotes)-1]
	c.quotes = c.quotes[:len(c.quotes)-1]
	c.save(ctx, QuotesSlot, c.quotes)
	return q, true
}

// MarkShown keeps q's text out of the queue from now on.
func (c *Caches) MarkShown(q domain.Quote) {
	c.quotesMu.Lock()
	c.shown[q.Text] = struct{}{}
	c.quotesMu.Unlock()
}

func (c *Caches) Push(ctx context.Context, qs ...domain.Quote) []domain.Quote {
	c.quotesMu.Lock()
	defer c.quotesMu.Unlock()

	seen := make(map[string]struct{}, len(c.quotes)+len(c.shown)+len(qs))
	for text := range c.shown {
		seen[text] = struct{}{}
	}
	for _, q := range c.quotes {
		seen[q.Text] = struct{}{}
	}
	var accepted []domain.Quote
	for _, q := range qs {
		if _, dup := seen[q.Text]; dup {
			continue
		}
		seen[q.Text] = struct{}{}
		accepted = append(accepted, q)
	}
	if len(accepted) == 0 {
		return nil
	}
	c.quotes = append(c.quotes, accepted...)
	c.save(ctx, QuotesSlot, c.quotes)
	return accepted
}

func (c *Caches) Author(name string) (domain.AuthorInfo, bool) {
	c.authorsMu.RLock()
	defer c.authorsMu.RUnlock()
	info, ok := c.authors[name]
	return info, ok
}

func (c *Caches) PutAuthor(ctx context.Context, name string, info domain.AuthorInfo) {
	c.authorsMu.Lock()
	c.authors[name] = info
	c.save(ctx, AuthorsSlot, c.authors)
	c.authorsMu.Unlock()

	c.PutImage(ctx, name, info.ImageURL)
}

func (c *Caches) Image(name string) (string, bool) {
	c.imagesMu.RLock()
	defer c.imagesMu.RUnlock()
	url, ok := c.images[name]
	return url, ok
}

func (c *Caches) PutImage(ctx context.Context, name, url string) {
	c.imagesMu.Lock()
	defer c.imagesMu.Unlock()
	if cur, ok := c.images[name]; ok && cur == url {
		return
	}
	c.images[name] = url
	c.save(ctx, ImagesSlot, c.images)
}

func (c *Caches) Reset(ctx context.Context) error {
	c.quotesMu.Lock()
	c.quotes = nil
	c.shown = make(map[string]struct{})
	c.quotesMu.Unlock()

	c.authorsMu.Lock()
	c.authors = make(map[string]domain.AuthorInfo)
	c.authorsMu.Unlock()

	c.imagesMu.Lock()
	c.images = make(map[string]string)
	c.imagesMu.Unlock()

	keys := make([]string, len(Slots))
	for i, s := range Slots {
		keys[i] = string(s)
	}
	return c.store.Delete(ctx, keys...)
}
