package usecase

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/itsyanis/1Day1Quote/internal/cache"
	"github.com/itsyanis/1Day1Quote/internal/domain"
	"github.com/itsyanis/1Day1Quote/internal/validate"
)

type QuoteRetriever struct {
	source       domain.QuoteSource
	resolver     *AuthorResolver
	prefetcher   *Prefetcher
	caches       *cache.Caches
	fields       validate.Fields
	timeout      time.Duration
	lowWater     int
	storeFetched bool
	log          *slog.Logger

	mu    sync.RWMutex
	state domain.UIState
}

func NewQuoteRetriever(src domain.QuoteSource, resolver *AuthorResolver, prefetcher *Prefetcher, caches *cache.Caches, s Settings, log *slog.Logger) *QuoteRetriever {
	s = s.withDefaults()
	if log == nil {
		log = slog.Default()
	}
	return &QuoteRetriever{
		source:       src,
		resolver:     resolver,
		prefetcher:   prefetcher,
		caches:       caches,
		fields:       s.Fields,
		timeout:      s.SourceTimeout,
		lowWater:     s.LowWaterMark,
		storeFetched: s.StoreFetched,
		log:          log.With("component", "quote_retriever"),
		state:        domain.UIState{CurrentQuote: domain.LoadingMessage},
	}
}

func (r *QuoteRetriever) FetchQuote(ctx context.Context) {
	q, err := r.next(ctx)
	if err != nil {
		r.log.Error("error retrieving the quote", "kind", domain.KindOf(err), "error", err)
		r.setState(domain.ErrorState())
		return
	}
	if r.storeFetched {
		r.caches.MarkShown(q)
	}

	info := r.resolver.Resolve(ctx, q.Author)
	r.setState(domain.UIState{
		CurrentQuote:  q.Text,
		CurrentAuthor: q.Author,
		CurrentImage:  info.ImageURL,
		CurrentBio:    info.Bio,
	})

	if r.prefetcher != nil && r.caches.Len() < r.lowWater {
		r.prefetcher.Preload(ctx)
	}
}

func (r *QuoteRetriever) next(ctx context.Context) (domain.Quote, error) {
	if q, ok := r.caches.Pop(ctx); ok {
		return q, nil
	}
	return fetchQuote(ctx, r.source, r.timeout, r.fields)
}

func (r *QuoteRetriever) ToggleAuthorInfo() {
	r.mu.Lock()
	r.state.ShowAuthorInfo = !r.state.ShowAuthorInfo
	r.mu.Unlock()
}

func (r *QuoteRetriever) State() domain.UIState {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.state
}

func (r *QuoteRetriever) setState(s domain.UIState) {
	r.mu.Lock()
	r.state = s
	r.mu.Unlock()
}
