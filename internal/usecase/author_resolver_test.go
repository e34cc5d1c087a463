package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/itsyanis/1Day1Quote/internal/domain"
)

func TestResolveAuthorHitsNetworkOnce(t *testing.T) {
	authors := newFakeAuthors(map[string]domain.AuthorRecord{
		"Ada Lovelace": {Title: "Ada Lovelace", Extract: "Mathematician.", ImageURL: "https://upload.wikimedia.org/ada.jpg"},
	})
	r := NewAuthorResolver(authors, newCaches(t), testSettings(), discard)

	first := r.Resolve(context.Background(), "Ada Lovelace")
	second := r.Resolve(context.Background(), "Ada Lovelace")

	if authors.callsFor("Ada Lovelace") != 1 {
		t.Errorf("expected 1 network call, got %d", authors.callsFor("Ada Lovelace"))
	}
	if first != second {
		t.Errorf("cached value differs: %+v vs %+v", first, second)
	}
	if first.Bio != "Mathematician." || first.ImageURL != "https://upload.wikimedia.org/ada.jpg" {
		t.Errorf("unexpected info %+v", first)
	}
}

func TestResolveAuthorConcurrentCallsCollapse(t *testing.T) {
	authors := newFakeAuthors(map[string]domain.AuthorRecord{"Seneca": {Title: "Seneca"}})
	authors.delay = 50 * time.Millisecond
	r := NewAuthorResolver(authors, newCaches(t), testSettings(), discard)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.Resolve(context.Background(), "Seneca")
		}()
	}
	wg.Wait()

	if n := authors.callsFor("Seneca"); n != 1 {
		t.Errorf("expected 1 network call, got %d", n)
	}
}

func TestResolveAuthorFallbacks(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		caches := newCaches(t)
		r := NewAuthorResolver(newFakeAuthors(nil), caches, testSettings(), discard)
		if got := r.Resolve(context.Background(), "Nobody"); got != domain.FallbackAuthorInfo() {
			t.Errorf("expected fallback, got %+v", got)
		}
		if _, ok := caches.Author("Nobody"); ok {
			t.Error("fallback must not be cached")
		}
	})

	t.Run("network error", func(t *testing.T) {
		authors := newFakeAuthors(nil)
		authors.err = errDown
		r := NewAuthorResolver(authors, newCaches(t), testSettings(), discard)
		if got := r.Resolve(context.Background(), "Plato"); got != domain.FallbackAuthorInfo() {
			t.Errorf("expected fallback, got %+v", got)
		}
	})

	t.Run("timeout", func(t *testing.T) {
		authors := newFakeAuthors(map[string]domain.AuthorRecord{"Slow": {Title: "Slow"}})
		authors.delay = 200 * time.Millisecond
		s := testSettings()
		s.SourceTimeout = 20 * time.Millisecond
		r := NewAuthorResolver(authors, newCaches(t), s, discard)

		start := time.Now()
		got := r.Resolve(context.Background(), "Slow")
		if got != domain.FallbackAuthorInfo() {
			t.Errorf("expected fallback, got %+v", got)
		}
		if time.Since(start) > 150*time.Millisecond {
			t.Errorf("timeout not honored, took %v", time.Since(start))
		}
	})

	t.Run("empty name", func(t *testing.T) {
		authors := newFakeAuthors(nil)
		r := NewAuthorResolver(authors, newCaches(t), testSettings(), discard)
		if got := r.Resolve(context.Background(), ""); got != domain.FallbackAuthorInfo() {
			t.Errorf("expected fallback, got %+v", got)
		}
		if authors.total() != 0 {
			t.Error("empty name should not reach the network")
		}
	})
}

func TestResolveAuthorNormalizesPortrait(t *testing.T) {
	authors := newFakeAuthors(map[string]domain.AuthorRecord{
		"Thumb":    {Title: "Thumb", ImageURL: "https://upload.wikimedia.org/thumb/a/ab/T.jpg/640px-T.jpg", Extract: "  bio  "},
		"Insecure": {Title: "Insecure", ImageURL: "http://example.org/i.png"},
		"Svg":      {Title: "Svg", ImageURL: "https://example.org/i.svg", Extract: "x"},
	})
	caches := newCaches(t)
	r := NewAuthorResolver(authors, caches, testSettings(), discard)
	ctx := context.Background()

	thumb := r.Resolve(ctx, "Thumb")
	if thumb.ImageURL != "https://upload.wikimedia.org/thumb/a/ab/T.jpg/200px-T.jpg" || thumb.Bio != "bio" {
		t.Errorf("unexpected info %+v", thumb)
	}
	insecure := r.Resolve(ctx, "Insecure")
	if insecure.ImageURL != domain.DefaultAvatar || insecure.Bio != domain.PlaceholderBio {
		t.Errorf("unexpected info %+v", insecure)
	}
	if svg := r.Resolve(ctx, "Svg"); svg.ImageURL != domain.DefaultAvatar {
		t.Errorf("unexpected image %q", svg.ImageURL)
	}
	if url, ok := caches.Image("Thumb"); !ok || url != thumb.ImageURL {
		t.Errorf("image map not updated: %q", url)
	}
}

func TestResolveAuthorPrefersCacheWithoutExpiry(t *testing.T) {
	caches := newCaches(t)
	caches.PutAuthor(context.Background(), "Cached", domain.AuthorInfo{ImageURL: "https://x.org/c.png", Bio: "old"})
	authors := newFakeAuthors(map[string]domain.AuthorRecord{"Cached": {Title: "Cached", Extract: "new"}})
	r := NewAuthorResolver(authors, caches, testSettings(), discard)

	if got := r.Resolve(context.Background(), "Cached"); got.Bio != "old" {
		t.Errorf("expected cached bio, got %q", got.Bio)
	}
	if authors.total() != 0 {
		t.Error("cache hit must not reach the network")
	}
}

func TestResolveAuthorSharedLookupSurvivesCallerCancel(t *testing.T) {
	authors := newFakeAuthors(map[string]domain.AuthorRecord{
		"Marcus": {Title: "Marcus", Extract: "Emperor.", ImageURL: "https://x.org/m.jpg"},
	})
	authors.delay = 50 * time.Millisecond
	caches := newCaches(t)
	r := NewAuthorResolver(authors, caches, testSettings(), discard)

	short, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	var wg sync.WaitGroup
	var impatient, patient domain.AuthorInfo
	wg.Add(2)
	go func() {
		defer wg.Done()
		impatient = r.Resolve(short, "Marcus")
	}()
	time.Sleep(5 * time.Millisecond)
	go func() {
		defer wg.Done()
		patient = r.Resolve(context.Background(), "Marcus")
	}()
	wg.Wait()

	if impatient != domain.FallbackAuthorInfo() {
		t.Errorf("expected fallback for the expired caller, got %+v", impatient)
	}
	if patient.Bio != "Emperor." || patient.ImageURL != "https://x.org/m.jpg" {
		t.Errorf("background caller got %+v", patient)
	}
	if n := authors.callsFor("Marcus"); n != 1 {
		t.Errorf("expected 1 lookup, got %d", n)
	}
	if _, ok := caches.Author("Marcus"); !ok {
		t.Error("completed lookup not cached")
	}
}
