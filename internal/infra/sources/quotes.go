package sources

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/itsyanis/1Day1Quote/internal/domain"
)

const DefaultQuoteURL = "https://api.api-ninjas.com/v1/quotes"

type QuoteConfig struct {
	Name         string `yaml:"name"`
	URL          string `yaml:"url"`
	APIKey       string `yaml:"api_key"`
	APIKeyHeader string `yaml:"api_key_header"`
}

type HTTPQuoteSource struct {
	cfg QuoteConfig
	d   httpDoer
}

func NewHTTPQuoteSource(cfg QuoteConfig, opts ...Option) *HTTPQuoteSource {
	if strings.TrimSpace(cfg.URL) == "" {
		cfg.URL = DefaultQuoteURL
	}
	if cfg.APIKeyHeader == "" {
		cfg.APIKeyHeader = "X-Api-Key"
	}
	if cfg.Name == "" {
		cfg.Name = "quotes-http"
	}
	return &HTTPQuoteSource{cfg: cfg, d: newDoer(opts)}
}

func (s *HTTPQuoteSource) Name() string { return s.cfg.Name }

func (s *HTTPQuoteSource) Random(ctx context.Context) (map[string]any, error) {
	header := http.Header{}
	if key := strings.TrimSpace(s.cfg.APIKey); key != "" {
		header.Set(s.cfg.APIKeyHeader, key)
	}
	raw, err := s.d.get(ctx, "fetch quote", s.cfg.URL, header)
	if err != nil {
		return nil, err
	}

	var payload any
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, domain.InvalidData("fetch quote", "decode response: %v", err)
	}
	switch v := payload.(type) {
	case map[string]any:
		return v, nil
	case []any:
		if len(v) == 0 {
			return nil, domain.InvalidData("fetch quote", "empty quote list")
		}
		if rec, ok := v[0].(map[string]any); ok {
			return rec, nil
		}
	}
	return nil, domain.InvalidData("fetch quote", "unexpected payload shape")
}
