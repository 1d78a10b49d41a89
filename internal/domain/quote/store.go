package quote

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Summary holds the denormalized columns of a saved quote. Only these fields
// are queried; the full Quote travels as an opaque payload.
type Summary struct {
	ID          uuid.UUID       `json:"id"`
	OwnerID     string          `json:"ownerId"`
	QuoteNumber string          `json:"quoteNumber"`
	ClientName  string          `json:"clientName"`
	Date        string          `json:"date"`
	Total       decimal.Decimal `json:"total"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

type Envelope struct {
	Summary Summary `json:"summary"`
	Payload Quote   `json:"payload"`
}

// Store persists quotes per owner. Edits are full replacements of the payload.
type Store interface {
	Save(ctx context.Context, ownerID string, q Quote) (Summary, error)
	List(ctx context.Context, ownerID string) ([]Summary, error)
	Get(ctx context.Context, ownerID string, id uuid.UUID) (Envelope, error)
	Replace(ctx context.Context, ownerID string, id uuid.UUID, q Quote) (Summary, error)
	Delete(ctx context.Context, ownerID string, id uuid.UUID) error
}

// Summarize derives the summary columns of q. Identity and timestamps are left
// to the store.
func Summarize(ownerID string, q Quote) Summary {
	client := q.Client.Name
	if blank(client) {
		client = "Unknown"
	}
	return Summary{
		OwnerID:     ownerID,
		QuoteNumber: q.QuoteNumber,
		ClientName:  client,
		Date:        q.Date,
		Total:       q.Total,
	}
}
