package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"offr-io/go_backend/internal/domain/quote"
	"offr-io/go_backend/internal/infra/db"
)

// timeLayout is fixed width so that text ordering matches time ordering.
const timeLayout = "2006-01-02T15:04:05.000000Z"

var builder = sq.StatementBuilder.PlaceholderFormat(sq.Question)

type QuoteStore struct {
	db  *sql.DB
	now func() time.Time
}

func NewQuoteStore(d *sql.DB) *QuoteStore {
	return &QuoteStore{db: d, now: func() time.Time { return time.Now().UTC().Truncate(time.Microsecond) }}
}

var _ quote.Store = (*QuoteStore)(nil)

func (s *QuoteStore) Save(ctx context.Context, ownerID string, q quote.Quote) (quote.Summary, error) {
	row, err := db.NewRow(ownerID, uuid.New(), q, s.now())
	if err != nil {
		return quote.Summary{}, err
	}
	sum := row.Summary

	_, err = builder.Insert(db.QuotesTable).
		SetMap(map[string]any{
			"id":           sum.ID.String(),
			"owner_id":     ownerID,
			"quote_number": sum.QuoteNumber,
			"client_name":  sum.ClientName,
			"quote_date":   sum.Date,
			"total_cents":  row.TotalCents,
			"payload":      string(row.Payload),
			"created_at":   sum.CreatedAt.Format(timeLayout),
			"updated_at":   sum.UpdatedAt.Format(timeLayout),
		}).
		RunWith(s.db).
		ExecContext(ctx)
	if err != nil {
		return quote.Summary{}, fmt.Errorf("inserting quote: %w", err)
	}
	return sum, nil
}

func (s *QuoteStore) List(ctx context.Context, ownerID string) ([]quote.Summary, error) {
	rows, err := builder.Select(db.SummaryColumns...).
		From(db.QuotesTable).
		Where(sq.Eq{"owner_id": ownerID}).
		OrderBy("created_at DESC", "rowid DESC").
		RunWith(s.db).
		QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing quotes: %w", err)
	}
	defer rows.Close()

	out := []quote.Summary{}
	for rows.Next() {
		sum, _, err := scan(rows, false)
		if err != nil {
			return nil, err
		}
		out = append(out, sum)
	}
	return out, rows.Err()
}

func (s *QuoteStore) Get(ctx context.Context, ownerID string, id uuid.UUID) (quote.Envelope, error) {
	row := builder.Select(append(db.SummaryColumns, "payload")...).
		From(db.QuotesTable).
		Where(sq.Eq{"id": id.String(), "owner_id": ownerID}).
		RunWith(s.db).
		QueryRowContext(ctx)

	sum, payload, err := scan(row, true)
	if err != nil {
		return quote.Envelope{}, err
	}
	q, err := db.DecodePayload(payload)
	if err != nil {
		return quote.Envelope{}, err
	}
	return quote.Envelope{Summary: sum, Payload: q}, nil
}

func (s *QuoteStore) Replace(ctx context.Context, ownerID string, id uuid.UUID, q quote.Quote) (quote.Summary, error) {
	row, err := db.NewRow(ownerID, id, q, s.now())
	if err != nil {
		return quote.Summary{}, err
	}
	sum := row.Summary

	var created string
	err = builder.Update(db.QuotesTable).
		SetMap(map[string]any{
			"quote_number": sum.QuoteNumber,
			"client_name":  sum.ClientName,
			"quote_date":   sum.Date,
			"total_cents":  row.TotalCents,
			"payload":      string(row.Payload),
			"updated_at":   sum.UpdatedAt.Format(timeLayout),
		}).
		Where(sq.Eq{"id": id.String(), "owner_id": ownerID}).
		Suffix("RETURNING created_at").
		RunWith(s.db).
		QueryRowContext(ctx).
		Scan(&created)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return quote.Summary{}, quote.ErrNotFound
		}
		return quote.Summary{}, fmt.Errorf("updating quote: %w", err)
	}
	if sum.CreatedAt, err = time.Parse(timeLayout, created); err != nil {
		return quote.Summary{}, fmt.Errorf("parsing created_at: %w", err)
	}
	return sum, nil
}

func (s *QuoteStore) Delete(ctx context.Context, ownerID string, id uuid.UUID) error {
	res, err := builder.Delete(db.QuotesTable).
		Where(sq.Eq{"id": id.String(), "owner_id": ownerID}).
		RunWith(s.db).
		ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("deleting quote: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting affected rows: %w", err)
	}
	if n == 0 {
		return quote.ErrNotFound
	}
	return nil
}

func scan(row sq.RowScanner, withPayload bool) (quote.Summary, []byte, error) {
	var (
		sum              quote.Summary
		id               string
		cents            int64
		created, updated string
		payload          string
	)
	dest := []any{&id, &sum.OwnerID, &sum.QuoteNumber, &sum.ClientName, &sum.Date, &cents, &created, &updated}
	if withPayload {
		dest = append(dest, &payload)
	}
	if err := row.Scan(dest...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return quote.Summary{}, nil, quote.ErrNotFound
		}
		return quote.Summary{}, nil, fmt.Errorf("scanning quote: %w", err)
	}

	var err error
	if sum.ID, err = uuid.Parse(id); err != nil {
		return quote.Summary{}, nil, fmt.Errorf("parsing quote id: %w", err)
	}
	if sum.CreatedAt, err = time.Parse(timeLayout, created); err != nil {
		return quote.Summary{}, nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if sum.UpdatedAt, err = time.Parse(timeLayout, updated); err != nil {
		return quote.Summary{}, nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	sum.Total = db.FromCents(cents)
	return sum, []byte(payload), nil
}
