package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/itsyanis/1Day1Quote/internal/cache"
	"github.com/itsyanis/1Day1Quote/internal/config"
	"github.com/itsyanis/1Day1Quote/internal/domain"
	"github.com/itsyanis/1Day1Quote/internal/infra/sources"
	"github.com/itsyanis/1Day1Quote/internal/transport/eventbus"
	"github.com/itsyanis/1Day1Quote/internal/transport/httpapi"
	"github.com/itsyanis/1Day1Quote/internal/usecase"
)

func main() {
	configPath := flag.String("config", os.Getenv("QUOTE_CONFIG"), "path to a YAML config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.Level()}))
	slog.SetDefault(logger)

	kv, closeStore, err := config.OpenStore(cfg.Store)
	if err != nil {
		return fmt.Errorf("store: %w", err)
	}
	defer closeStore()

	ctx := context.Background()
	caches := cache.Open(ctx, kv, logger)

	var quotes domain.QuoteSource
	if cfg.QuoteSource.APIKey == "" && cfg.QuoteSource.URL == sources.DefaultQuoteURL {
		log.Printf("no quote API key configured, serving built-in quotes")
		quotes = sources.StaticQuoteSource{
			Delay:       20 * time.Millisecond,
			TextField:   cfg.Fields.Text,
			AuthorField: cfg.Fields.Author,
		}
	} else {
		quotes = sources.NewHTTPQuoteSource(cfg.QuoteSource)
	}
	authors := sources.NewWikipediaSource(cfg.WikipediaURL)

	uc := usecase.NewQuoteService(cfg.Settings(), caches, quotes, authors, logger)
	doc := httpapi.NewDocumentMeta()

	events := make(chan []byte, 16)
	consumer := eventbus.NewEventBusConsumer(uc, doc, httpapi.PageMetaFor, logger)
	go func() {
		if err := consumer.Consume(ctx, events); err != nil {
			logger.Error("event consumer stopped", "error", err)
		}
	}()

	mountCtx, cancel := context.WithTimeout(ctx, 2*cfg.SourceTimeout)
	uc.Mount(mountCtx)
	cancel()
	if err := doc.Inject(httpapi.PageMetaFor(uc.State(), "")); err != nil {
		logger.Warn("metadata injection failed", "error", err)
	}

	if cfg.PreloadEvery > 0 {
		go func() {
			ticker := time.NewTicker(cfg.PreloadEvery)
			defer ticker.Stop()
			for range ticker.C {
				select {
				case events <- []byte(`{"action":"preload"}`):
				default:
					logger.Warn("event queue full, skipping scheduled preload")
				}
			}
		}()
	}

	handler := httpapi.QuoteHandler(uc, doc, 2*cfg.SourceTimeout)
	http.HandleFunc("/quote", handler)
	http.HandleFunc("/quote/", handler)

	log.Printf("listening on %s", cfg.Addr)
	return http.ListenAndServe(cfg.Addr, nil)
}
