package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"offr-io/go_backend/internal/domain/quote"
	"offr-io/go_backend/internal/infra/db"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type QuoteStore struct {
	db  *DB
	now func() time.Time
}

func NewQuoteStore(d *DB) *QuoteStore {
	return &QuoteStore{db: d, now: func() time.Time { return time.Now().UTC().Truncate(time.Microsecond) }}
}

var _ quote.Store = (*QuoteStore)(nil)

func (s *QuoteStore) Save(ctx context.Context, ownerID string, q quote.Quote) (quote.Summary, error) {
	row, err := db.NewRow(ownerID, uuid.New(), q, s.now())
	if err != nil {
		return quote.Summary{}, err
	}
	sum := row.Summary

	query, args, err := psql.Insert(db.QuotesTable).
		SetMap(map[string]any{
			"id":           sum.ID.String(),
			"owner_id":     ownerID,
			"quote_number": sum.QuoteNumber,
			"client_name":  sum.ClientName,
			"quote_date":   sum.Date,
			"total_cents":  row.TotalCents,
			"payload":      string(row.Payload),
			"created_at":   sum.CreatedAt,
			"updated_at":   sum.UpdatedAt,
		}).
		ToSql()
	if err != nil {
		return quote.Summary{}, fmt.Errorf("building insert: %w", err)
	}
	if _, err := s.db.Pool.Exec(ctx, query, args...); err != nil {
		return quote.Summary{}, fmt.Errorf("inserting quote: %w", err)
	}
	return sum, nil
}

func (s *QuoteStore) List(ctx context.Context, ownerID string) ([]quote.Summary, error) {
	query, args, err := psql.Select(selectColumns()...).
		From(db.QuotesTable).
		Where(sq.Eq{"owner_id": ownerID}).
		OrderBy("created_at DESC", "seq DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building select: %w", err)
	}

	rows, err := s.db.Pool.Query(ctx, query, args...)
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
	query, args, err := psql.Select(append(selectColumns(), "payload")...).
		From(db.QuotesTable).
		Where(sq.Eq{"id": id.String(), "owner_id": ownerID}).
		ToSql()
	if err != nil {
		return quote.Envelope{}, fmt.Errorf("building select: %w", err)
	}

	sum, payload, err := scan(s.db.Pool.QueryRow(ctx, query, args...), true)
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

	query, args, err := psql.Update(db.QuotesTable).
		SetMap(map[string]any{
			"quote_number": sum.QuoteNumber,
			"client_name":  sum.ClientName,
			"quote_date":   sum.Date,
			"total_cents":  row.TotalCents,
			"payload":      string(row.Payload),
			"updated_at":   sum.UpdatedAt,
		}).
		Where(sq.Eq{"id": id.String(), "owner_id": ownerID}).
		Suffix("RETURNING created_at").
		ToSql()
	if err != nil {
		return quote.Summary{}, fmt.Errorf("building update: %w", err)
	}

	if err := s.db.Pool.QueryRow(ctx, query, args...).Scan(&sum.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return quote.Summary{}, quote.ErrNotFound
		}
		return quote.Summary{}, fmt.Errorf("updating quote: %w", err)
	}
	sum.CreatedAt = sum.CreatedAt.UTC()
	return sum, nil
}

func (s *QuoteStore) Delete(ctx context.Context, ownerID string, id uuid.UUID) error {
	query, args, err := psql.Delete(db.QuotesTable).
		Where(sq.Eq{"id": id.String(), "owner_id": ownerID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("building delete: %w", err)
	}

	tag, err := s.db.Pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("deleting quote: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return quote.ErrNotFound
	}
	return nil
}

func selectColumns() []string {
	cols := make([]string, len(db.SummaryColumns))
	copy(cols, db.SummaryColumns)
	cols[0] = "id::text"
	return cols
}

func scan(row pgx.Row, withPayload bool) (quote.Summary, []byte, error) {
	var (
		sum     quote.Summary
		id      string
		cents   int64
		payload []byte
	)
	dest := []any{&id, &sum.OwnerID, &sum.QuoteNumber, &sum.ClientName, &sum.Date, &cents, &sum.CreatedAt, &sum.UpdatedAt}
	if withPayload {
		dest = append(dest, &payload)
	}
	if err := row.Scan(dest...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return quote.Summary{}, nil, quote.ErrNotFound
		}
		return quote.Summary{}, nil, fmt.Errorf("scanning quote: %w", err)
	}

	parsed, err := uuid.Parse(id)
	if err != nil {
		return quote.Summary{}, nil, fmt.Errorf("parsing quote id: %w", err)
	}
	sum.ID = parsed
	sum.Total = db.FromCents(cents)
	sum.CreatedAt = sum.CreatedAt.UTC()
	sum.UpdatedAt = sum.UpdatedAt.UTC()
	return sum, payload, nil
}
