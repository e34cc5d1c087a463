package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/itsyanis/1Day1Quote/internal/cache"
	"github.com/itsyanis/1Day1Quote/internal/config"
	"github.com/itsyanis/1Day1Quote/internal/infra/store"
)

// With the redis backend, drops every client scope untouched for -older-than.
// Otherwise resets the local client's slots.
func main() {
	configPath := flag.String("config", os.Getenv("QUOTE_CONFIG"), "path to a YAML config file")
	olderThan := flag.Duration("older-than", 30*24*time.Hour, "age after which redis scopes are deleted")
	flag.Parse()

	log.Println("Starting cache cleanup...")

	n, err := run(*configPath, *olderThan)
	if err != nil {
		log.Fatalf("Cleanup failed: %v", err)
	}
	log.Printf("Cache cleanup completed successfully, %d keys removed.", n)
}

func run(configPath string, olderThan time.Duration) (int, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return 0, err
	}
	ctx := context.Background()

	if cfg.Store.Backend == "redis" {
		rs := store.NewRedisStore(cfg.Store.Redis, "")
		defer rs.Close()
		return rs.DeleteOlderThan(ctx, olderThan)
	}

	kv, closeStore, err := config.OpenStore(cfg.Store)
	if err != nil {
		return 0, err
	}
	defer closeStore()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.Level()}))
	if err := cache.Open(ctx, kv, logger).Reset(ctx); err != nil {
		return 0, err
	}
	return len(cache.Slots), nil
}
