package pdf

import (
	"errors"
	"fmt"
	"strings"

	"offr-io/go_backend/internal/domain/quote"
)

type Generator interface {
	Generate(q quote.Quote) ([]byte, error)
}

type Document struct {
	Filename string
	Content  []byte
}

var ErrEmptyDocument = errors.New("pdf: generator returned no content")

// Render runs g and pairs the output with the suggested download name.
func Render(g Generator, q quote.Quote) (Document, error) {
	content, err := g.Generate(q)
	if err != nil {
		return Document{}, fmt.Errorf("render %s: %w", q.QuoteNumber, err)
	}
	if len(content) == 0 {
		return Document{}, ErrEmptyDocument
	}
	return Document{Filename: Filename(q), Content: content}, nil
}

// Filename suggests a download name. Characters outside [A-Za-z0-9_-] are
// replaced so the name is safe inside a Content-Disposition header.
func Filename(q quote.Quote) string {
	number := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, strings.TrimSpace(q.QuoteNumber))
	if number == "" {
		return "devis.pdf"
	}
	return "devis-" + number + ".pdf"
}
