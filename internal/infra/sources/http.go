package sources

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/itsyanis/1Day1Quote/internal/domain"
)

const (
	defaultHTTPTimeout  = 10 * time.Second
	maxResponseBodySize = 1 << 20
	userAgentProduct    = "1day1quote"
	userAgentVersion    = "1.0"
)

type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	b := strings.Builder{}
	b.WriteString("source API error (status=")
	b.WriteString(strconv.Itoa(e.StatusCode))
	b.WriteString(")")
	if m := strings.TrimSpace(e.Body); m != "" {
		if len(m) > 200 {
			m = m[:200]
		}
		b.WriteString(": ")
		b.WriteString(m)
	}
	return b.String()
}

type Option func(*httpDoer)

func WithHTTPClient(hc *http.Client) Option {
	return func(d *httpDoer) { d.http = hc }
}

func WithUserAgent(ua string) Option {
	return func(d *httpDoer) { d.userAgent = ua }
}

type httpDoer struct {
	http      *http.Client
	userAgent string
}

func newDoer(opts []Option) httpDoer {
	d := httpDoer{
		http:      &http.Client{Timeout: defaultHTTPTimeout},
		userAgent: fmt.Sprintf("%s/%s (Go%s)", userAgentProduct, userAgentVersion, strings.TrimPrefix(runtime.Version(), "go")),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&d)
		}
	}
	if d.http == nil {
		d.http = &http.Client{Timeout: defaultHTTPTimeout}
	}
	return d
}

func (d httpDoer) get(ctx context.Context, op, url string, header http.Header) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, domain.Network(op, fmt.Errorf("build request: %w", err))
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	req.Header.Set("Accept", "application/json")
	if ua := strings.TrimSpace(d.userAgent); ua != "" {
		req.Header.Set("User-Agent", ua)
	}

	resp, err := d.http.Do(req)
	if err != nil {
		return nil, domain.Network(op, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBodySize))
	if err != nil {
		return nil, domain.Network(op, fmt.Errorf("read response: %w", err))
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, domain.Network(op, &APIError{StatusCode: resp.StatusCode, Body: string(raw)})
	}
	return raw, nil
}
