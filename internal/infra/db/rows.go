// Package db holds the row mapping shared by the quote stores.
package db

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"offr-io/go_backend/internal/domain/quote"
)

const QuotesTable = "quotes"

// SummaryColumns is the select list for a summary scan, in ScanSummary order.
var SummaryColumns = []string{
	"id", "owner_id", "quote_number", "client_name", "quote_date", "total_cents", "created_at", "updated_at",
}

// Row is a quote flattened into its stored columns.
type Row struct {
	Summary    quote.Summary
	TotalCents int64
	Payload    []byte
}

// NewRow stamps a fresh summary for q.
func NewRow(ownerID string, id uuid.UUID, q quote.Quote, now time.Time) (Row, error) {
	payload, err := json.Marshal(q)
	if err != nil {
		return Row{}, fmt.Errorf("encoding quote payload: %w", err)
	}
	s := quote.Summarize(ownerID, q)
	s.ID = id
	s.CreatedAt = now
	s.UpdatedAt = now
	return Row{Summary: s, TotalCents: ToCents(q.Total), Payload: payload}, nil
}

func DecodePayload(b []byte) (quote.Quote, error) {
	var q quote.Quote
	if err := json.Unmarshal(b, &q); err != nil {
		return quote.Quote{}, fmt.Errorf("decoding quote payload: %w", err)
	}
	return q, nil
}

// ToCents rounds half away from zero to whole cents.
func ToCents(d decimal.Decimal) int64 {
	return d.Shift(2).Round(0).IntPart()
}

func FromCents(c int64) decimal.Decimal {
	return decimal.New(c, -2)
}
