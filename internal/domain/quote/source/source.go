package source

import (
	"context"

	"offr-io/go_backend/internal/domain/quote"
)

// Source turns a free-text job description into unpriced quote lines.
type Source interface {
	Items(ctx context.Context, description, language string) ([]quote.RawItem, error)
}
