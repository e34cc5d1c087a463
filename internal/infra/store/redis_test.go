package store

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"

	"github.com/itsyanis/1Day1Quote/internal/domain"
)

func newRedisStore(t *testing.T, prefix string) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rs := NewRedisStore(RedisConfig{Addr: mr.Addr()}, prefix)
	t.Cleanup(func() { rs.Close() })
	return rs, mr
}

func TestRedisStoreRoundTrip(t *testing.T) {
	rs, mr := newRedisStore(t, "quotes:abc")
	ctx := context.Background()

	if _, ok, err := rs.Get(ctx, "cachedQuotes"); err != nil || ok {
		t.Fatalf("expected missing key, got ok=%v err=%v", ok, err)
	}
	if err := rs.Set(ctx, "cachedQuotes", `[{"quote":"a","author":"b"}]`); err != nil {
		t.Fatal(err)
	}
	if !mr.Exists("quotes:abc:cachedQuotes") {
		t.Error("key not stored under the scope prefix")
	}
	v, ok, err := rs.Get(ctx, "cachedQuotes")
	if err != nil || !ok || v != `[{"quote":"a","author":"b"}]` {
		t.Fatalf("unexpected get %q ok=%v err=%v", v, ok, err)
	}

	if err := rs.Delete(ctx, "cachedQuotes", "cachedAuthors"); err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := rs.Get(ctx, "cachedQuotes"); ok {
		t.Error("key still present after Delete")
	}
}

func TestRedisStoreCorruptPayload(t *testing.T) {
	rs, mr := newRedisStore(t, "quotes:abc")
	if err := mr.Set("quotes:abc:cachedAuthors", "not gzip"); err != nil {
		t.Fatal(err)
	}

	_, ok, err := rs.Get(context.Background(), "cachedAuthors")
	if ok || !domain.IsPersistence(err) {
		t.Errorf("expected persistence error, got ok=%v err=%v", ok, err)
	}
}

func TestRedisStoreUnreachable(t *testing.T) {
	rs, mr := newRedisStore(t, "quotes:abc")
	mr.Close()

	if err := rs.Set(context.Background(), "cachedQuotes", "[]"); !domain.IsPersistence(err) {
		t.Errorf("expected persistence error, got %v", err)
	}
}

func TestRedisDeleteOlderThanPurgesWholeScopes(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	active := NewRedisStore(RedisConfig{Addr: mr.Addr()}, "quotes:active")
	stale := NewRedisStore(RedisConfig{Addr: mr.Addr()}, "quotes:stale")
	cleaner := NewRedisStore(RedisConfig{Addr: mr.Addr()}, "")
	defer active.Close()
	defer stale.Close()
	defer cleaner.Close()

	old := float64(time.Now().Add(-40 * 24 * time.Hour).Unix())

	// The active client wrote its authors long ago and its quotes today.
	if err := active.Set(ctx, "cachedAuthors", `{"A":{"imageUrl":"/default-avatar.png","bio":"b"}}`); err != nil {
		t.Fatal(err)
	}
	if _, err := mr.ZAdd(touchedKey, old, "quotes:active"); err != nil {
		t.Fatal(err)
	}
	if err := active.Set(ctx, "cachedQuotes", "[]"); err != nil {
		t.Fatal(err)
	}

	for _, slot := range []string{"cachedQuotes", "cachedAuthors", "cachedImages"} {
		if err := stale.Set(ctx, slot, "{}"); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := mr.ZAdd(touchedKey, old, "quotes:stale"); err != nil {
		t.Fatal(err)
	}

	n, err := cleaner.DeleteOlderThan(ctx, 30*24*time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	if n != 3 {
		t.Errorf("expected 3 keys removed, got %d", n)
	}
	for _, slot := range []string{"cachedQuotes", "cachedAuthors", "cachedImages"} {
		if mr.Exists("quotes:stale:" + slot) {
			t.Errorf("stale slot %s survived", slot)
		}
	}
	if !mr.Exists("quotes:active:cachedAuthors") || !mr.Exists("quotes:active:cachedQuotes") {
		t.Error("active client lost a slot")
	}

	members, err := mr.ZMembers(touchedKey)
	if err != nil {
		t.Fatal(err)
	}
	if len(members) != 1 || members[0] != "quotes:active" {
		t.Errorf("unexpected touched scopes %v", members)
	}

	if n, err := cleaner.DeleteOlderThan(ctx, 30*24*time.Hour); err != nil || n != 0 {
		t.Errorf("second purge removed %d, err=%v", n, err)
	}
}
