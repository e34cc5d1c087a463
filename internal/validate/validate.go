package validate

import (
	"regexp"
	"strings"

	"github.com/itsyanis/1Day1Quote/internal/domain"
)

var htmlTag = regexp.MustCompile(`<[^>]*>`)

var imageExtensions = []string{".jpg", ".jpeg", ".png", ".gif"}

type Fields struct {
	Text   string `yaml:"text"`
	Author string `yaml:"author"`
}

var DefaultFields = Fields{Text: "quote", Author: "author"}

func Quote(raw map[string]any, f Fields) (domain.Quote, error) {
	if raw == nil {
		return domain.Quote{}, domain.InvalidData("validate quote", "empty payload")
	}
	text, ok := raw[f.Text].(string)
	if !ok {
		return domain.Quote{}, domain.InvalidData("validate quote", "field %q is not a string", f.Text)
	}
	author, ok := raw[f.Author].(string)
	if !ok {
		return domain.Quote{}, domain.InvalidData("validate quote", "field %q is not a string", f.Author)
	}
	q := domain.Quote{Text: text, Author: author}
	if err := CheckQuote(q); err != nil {
		return domain.Quote{}, err
	}
	return q, nil
}

func CheckQuote(q domain.Quote) error {
	if htmlTag.MatchString(q.Text) || htmlTag.MatchString(q.Author) {
		return domain.InvalidData("validate quote", "quote contains HTML markup")
	}
	return nil
}

func ImageURL(url string) string {
	if url == "" || !strings.HasPrefix(url, "https://") {
		return domain.DefaultAvatar
	}
	for _, ext := range imageExtensions {
		if strings.HasSuffix(url, ext) {
			return url
		}
	}
	return domain.DefaultAvatar
}
