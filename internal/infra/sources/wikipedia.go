package sources

import (
	"context"
	"encoding/json"
	"net/url"
	"strings"

	"github.com/itsyanis/1Day1Quote/internal/domain"
)

const DefaultWikipediaURL = "https://en.wikipedia.org/w/api.php"

type wikiResponse struct {
	Query *struct {
		Pages []wikiPage `json:"pages"`
	} `json:"query"`
}

type wikiPage struct {
	Title    string `json:"title"`
	Missing  bool   `json:"missing"`
	Invalid  bool   `json:"invalid"`
	Extract  string `json:"extract"`
	Original *struct {
		Source string `json:"source"`
	} `json:"original"`
}

type WikipediaSource struct {
	endpoint string
	d        httpDoer
}

func NewWikipediaSource(endpoint string, opts ...Option) *WikipediaSource {
	if strings.TrimSpace(endpoint) == "" {
		endpoint = DefaultWikipediaURL
	}
	return &WikipediaSource{endpoint: endpoint, d: newDoer(opts)}
}

func (w *WikipediaSource) Name() string { return "wikipedia" }

func (w *WikipediaSource) Lookup(ctx context.Context, name string) (domain.AuthorRecord, error) {
	q := url.Values{}
	q.Set("action", "query")
	q.Set("format", "json")
	q.Set("formatversion", "2")
	q.Set("prop", "pageimages|pageterms|extracts")
	q.Set("piprop", "original")
	q.Set("exintro", "true")
	q.Set("explaintext", "true")
	q.Set("titles", name)
	q.Set("origin", "*")

	raw, err := w.d.get(ctx, "lookup author", w.endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return domain.AuthorRecord{}, err
	}

	var resp wikiResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return domain.AuthorRecord{}, domain.InvalidData("lookup author", "decode response: %v", err)
	}
	if resp.Query == nil || len(resp.Query.Pages) == 0 {
		return domain.AuthorRecord{}, domain.NotFound("lookup author", "no page for %q", name)
	}
	page := resp.Query.Pages[0]
	if page.Title == "" || page.Missing || page.Invalid {
		return domain.AuthorRecord{}, domain.NotFound("lookup author", "no page for %q", name)
	}

	rec := domain.AuthorRecord{Title: page.Title, Extract: page.Extract}
	if page.Original != nil {
		rec.ImageURL = page.Original.Source
	}
	return rec, nil
}
