package sources

import (
	"context"
	"math/rand"
	"time"

	"github.com/itsyanis/1Day1Quote/internal/domain"
)

type StaticQuoteSource struct {
	Delay       time.Duration
	TextField   string
	AuthorField string
}

var builtinQuotes = []domain.Quote{
	{Text: "Life is what happens when you're busy making other plans.", Author: "John Lennon"},
	{Text: "The greatest glory in living lies not in never falling, but in rising every time we fall.", Author: "Nelson Mandela"},
	{Text: "The way to get started is to quit talking and begin doing.", Author: "Walt Disney"},
	{Text: "Imagination is more important than knowledge.", Author: "Albert Einstein"},
	{Text: "Simplicity is the ultimate sophistication.", Author: "Leonardo da Vinci"},
	{Text: "Well done is better than well said.", Author: "Benjamin Franklin"},
}

func (s StaticQuoteSource) Name() string { return "static" }

func (s StaticQuoteSource) Random(ctx context.Context) (map[string]any, error) {
	select {
	case <-time.After(s.Delay):
		q := builtinQuotes[rand.Intn(len(builtinQuotes))]
		text, author := s.TextField, s.AuthorField
		if text == "" {
			text = "quote"
		}
		if author == "" {
			author = "author"
		}
		return map[string]any{text: q.Text, author: q.Author}, nil
	case <-ctx.Done():
		return nil, domain.Network("fetch quote", ctx.Err())
	}
}
