package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/itsyanis/1Day1Quote/internal/cache"
	"github.com/itsyanis/1Day1Quote/internal/domain"
	"github.com/itsyanis/1Day1Quote/internal/infra/store"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

var errDown = errors.New("connection refused")

type scriptedQuotes struct {
	calls atomic.Int32
	delay time.Duration
	next  func(call int) (map[string]any, error)
}

func (s *scriptedQuotes) Name() string { return "scripted" }
func (s *scriptedQuotes) Random(ctx context.Context) (map[string]any, error) {
	n := int(s.calls.Add(1))
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return s.next(n)
}

func rec(text, author string) map[string]any {
	return map[string]any{"quote": text, "author": author}
}

// fixedQuotes returns the given records in order, cycling when exhausted.
func fixedQuotes(recs ...map[string]any) *scriptedQuotes {
	return &scriptedQuotes{next: func(call int) (map[string]any, error) {
		return recs[(call-1)%len(recs)], nil
	}}
}

func failingQuotes() *scriptedQuotes {
	return &scriptedQuotes{next: func(int) (map[string]any, error) { return nil, errDown }}
}

type fakeAuthors struct {
	mu      sync.Mutex
	calls   map[string]int
	records map[string]domain.AuthorRecord
	err     error
	delay   time.Duration
}

func newFakeAuthors(records map[string]domain.AuthorRecord) *fakeAuthors {
	return &fakeAuthors{calls: make(map[string]int), records: records}
}

func (f *fakeAuthors) Name() string { return "fake-authors" }
func (f *fakeAuthors) Lookup(ctx context.Context, name string) (domain.AuthorRecord, error) {
	f.mu.Lock()
	f.calls[name]++
	f.mu.Unlock()
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return domain.AuthorRecord{}, ctx.Err()
		}
	}
	if f.err != nil {
		return domain.AuthorRecord{}, f.err
	}
	r, ok := f.records[name]
	if !ok {
		return domain.AuthorRecord{}, domain.NotFound("lookup author", "no page for %q", name)
	}
	return r, nil
}

func (f *fakeAuthors) callsFor(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

func (f *fakeAuthors) total() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		n += c
	}
	return n
}

func newCaches(t *testing.T) *cache.Caches {
	t.Helper()
	return cache.Open(context.Background(), store.NewMemoryStore(), discard)
}

func testSettings() Settings {
	s := DefaultSettings()
	s.SourceTimeout = time.Second
	return s
}
