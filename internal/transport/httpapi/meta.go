package httpapi

import (
	"sync"

	"github.com/itsyanis/1Day1Quote/internal/domain"
)

var _ domain.MetadataInjector = (*DocumentMeta)(nil)

type DocumentMeta struct {
	mu   sync.RWMutex
	meta domain.PageMeta
}

func NewDocumentMeta() *DocumentMeta {
	return &DocumentMeta{meta: BuildPageMeta("", "", "", "")}
}

func (d *DocumentMeta) Inject(meta domain.PageMeta) error {
	d.mu.Lock()
	d.meta = meta
	d.mu.Unlock()
	return nil
}

func (d *DocumentMeta) Current() domain.PageMeta {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.meta
}

func PageMetaFor(s domain.UIState, lang string) domain.PageMeta {
	var title, desc, image string
	if s.CurrentAuthor != "" && s.CurrentQuote != domain.RetryMessage {
		title = "Quote by " + s.CurrentAuthor + " - 1Day1Quote"
		desc = s.CurrentQuote
		if s.CurrentImage != "" && s.CurrentImage != domain.DefaultAvatar {
			image = s.CurrentImage
		}
	}
	return BuildPageMeta(title, desc, image, lang)
}

func BuildPageMeta(title, description, image, lang string) domain.PageMeta {
	or := func(v, def string) string {
		if v == "" {
			return def
		}
		return v
	}
	if lang == "" {
		lang = "en"
	}
	return domain.PageMeta{
		Title:       or(title, "1Day1Quote - Inspiring Quote of the Day"),
		Lang:        lang,
		Description: or(description, "Discover a new inspiring quote every day."),
		Image:       or(image, "/default-image.jpg"),
		Tags: map[string]string{
			"og:title":            or(title, "1Day1Quote - Inspiring Quotes"),
			"og:description":      or(description, "Find daily inspiration with a new quote."),
			"og:image":            or(image, "/default-image.jpg"),
			"og:type":             "website",
			"twitter:card":        "summary_large_image",
			"twitter:title":       or(title, "1Day1Quote - Inspiring Quotes"),
			"twitter:description": or(description, "Get inspired with a new quote every day."),
			"twitter:image":       or(image, "/default-image.jpg"),
		},
	}
}
