package usecase

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/itsyanis/1Day1Quote/internal/cache"
	"github.com/itsyanis/1Day1Quote/internal/domain"
	"github.com/itsyanis/1Day1Quote/internal/validate"
)

type Prefetcher struct {
	source   domain.QuoteSource
	resolver *AuthorResolver
	caches   *cache.Caches
	fields   validate.Fields
	timeout  time.Duration
	batch    int
	target   int
	log      *slog.Logger
}

func NewPrefetcher(src domain.QuoteSource, resolver *AuthorResolver, caches *cache.Caches, s Settings, log *slog.Logger) *Prefetcher {
	s = s.withDefaults()
	if log == nil {
		log = slog.Default()
	}
	return &Prefetcher{
		source:   src,
		resolver: resolver,
		caches:   caches,
		fields:   s.Fields,
		timeout:  s.SourceTimeout,
		batch:    s.BatchSize,
		target:   s.TargetSize,
		log:      log.With("component", "prefetcher"),
	}
}

func (p *Prefetcher) Preload(ctx context.Context) int {
	if p.caches.Len() >= p.target {
		return 0
	}
	log := p.log.With("batch", uuid.NewString())

	results := make([]domain.Quote, p.batch)
	ok := make([]bool, p.batch)
	var wg sync.WaitGroup

	for i := 0; i < p.batch; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			q, err := fetchQuote(ctx, p.source, p.timeout, p.fields)
			if err != nil {
				log.Warn("preload request failed", "source", p.source.Name(), "kind", domain.KindOf(err), "error", err)
				return
			}
			results[i], ok[i] = q, true
		}(i)
	}

	wg.Wait()

	fetched := make([]domain.Quote, 0, p.batch)
	for i, q := range results {
		if ok[i] {
			fetched = append(fetched, q)
		}
	}
	if len(fetched) == 0 {
		log.Warn("preload fetched nothing", "requested", p.batch)
		return 0
	}

	accepted := p.caches.Push(ctx, fetched...)
	p.resolveAuthors(ctx, accepted)

	log.Info("preload done", "requested", p.batch, "fetched", len(fetched), "added", len(accepted), "cached", p.caches.Len())
	return len(accepted)
}

func (p *Prefetcher) resolveAuthors(ctx context.Context, quotes []domain.Quote) {
	seen := make(map[string]struct{}, len(quotes))
	var wg sync.WaitGroup
	for _, q := range quotes {
		if _, dup := seen[q.Author]; dup {
			continue
		}
		seen[q.Author] = struct{}{}
		if _, cached := p.caches.Author(q.Author); cached {
			continue
		}
		wg.Add(1)
		go func(name string) {
			defer wg.Done()
			p.resolver.Resolve(ctx, name)
		}(q.Author)
	}
	wg.Wait()
}
