package usecase

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/itsyanis/1Day1Quote/internal/cache"
	"github.com/itsyanis/1Day1Quote/internal/domain"
	"github.com/itsyanis/1Day1Quote/internal/validate"
)

type AuthorResolver struct {
	source  domain.AuthorSource
	caches  *cache.Caches
	timeout time.Duration
	width   int
	log     *slog.Logger

	inflight singleflight.Group
}

func NewAuthorResolver(src domain.AuthorSource, caches *cache.Caches, s Settings, log *slog.Logger) *AuthorResolver {
	s = s.withDefaults()
	if log == nil {
		log = slog.Default()
	}
	return &AuthorResolver{
		source:  src,
		caches:  caches,
		timeout: s.SourceTimeout,
		width:   s.PortraitWidth,
		log:     log.With("component", "author_resolver"),
	}
}

// Resolve never fails. Any error is logged and replaced by the fallback info.
func (r *AuthorResolver) Resolve(ctx context.Context, name string) domain.AuthorInfo {
	info, err := r.lookup(ctx, name)
	if err != nil {
		r.log.Warn("author info unavailable", "author", name, "kind", domain.KindOf(err), "error", err)
		return domain.FallbackAuthorInfo()
	}
	return info
}

func (r *AuthorResolver) lookup(ctx context.Context, name string) (domain.AuthorInfo, error) {
	if info, ok := r.caches.Author(name); ok {
		return info, nil
	}
	if strings.TrimSpace(name) == "" {
		return domain.AuthorInfo{}, domain.NotFound("resolve author", "empty author name")
	}

	// The lookup outlives its callers; each caller waits on its own ctx.
	fctx := context.WithoutCancel(ctx)
	ch := r.inflight.DoChan(name, func() (any, error) {
		if info, ok := r.caches.Author(name); ok {
			return info, nil
		}

		sctx, cancel := context.WithTimeout(fctx, r.timeout)
		defer cancel()

		rec, err := r.source.Lookup(sctx, name)
		if err != nil {
			return nil, asSourceError("lookup author "+name, err)
		}

		info := domain.AuthorInfo{
			ImageURL: validate.ResizeImage(validate.ImageURL(rec.ImageURL), r.width),
			Bio:      strings.TrimSpace(rec.Extract),
		}
		if info.Bio == "" {
			info.Bio = domain.PlaceholderBio
		}
		r.caches.PutAuthor(fctx, name, info)
		return info, nil
	})

	select {
	case <-ctx.Done():
		return domain.AuthorInfo{}, domain.Network("resolve author "+name, ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return domain.AuthorInfo{}, res.Err
		}
		return res.Val.(domain.AuthorInfo), nil
	}
}
