package usecase

import (
	"context"
	"log/slog"

	"github.com/itsyanis/1Day1Quote/internal/cache"
	"github.com/itsyanis/1Day1Quote/internal/domain"
)

type QuoteUseCase interface {
	FetchQuote(ctx context.Context)
	ToggleAuthorInfo()
	State() domain.UIState
	Preload(ctx context.Context) int
	// Mount loads the first quote and then tops the cache up.
	Mount(ctx context.Context)
}

type quoteService struct {
	*QuoteRetriever
	prefetcher *Prefetcher
}

func NewQuoteService(s Settings, caches *cache.Caches, quotes domain.QuoteSource, authors domain.AuthorSource, log *slog.Logger) QuoteUseCase {
	resolver := NewAuthorResolver(authors, caches, s, log)
	prefetcher := NewPrefetcher(quotes, resolver, caches, s, log)
	return &quoteService{
		QuoteRetriever: NewQuoteRetriever(quotes, resolver, prefetcher, caches, s, log),
		prefetcher:     prefetcher,
	}
}

func (s *quoteService) Preload(ctx context.Context) int {
	return s.prefetcher.Preload(ctx)
}

func (s *quoteService) Mount(ctx context.Context) {
	s.FetchQuote(ctx)
	s.Preload(ctx)
}
