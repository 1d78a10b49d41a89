package testutil

import (
	"context"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"offr-io/go_backend/internal/domain/quote"
	"offr-io/go_backend/internal/infra/db/sqlite"
)

// NewTestStore returns a quote store over an in-memory SQLite database that
// is closed when the test completes.
func NewTestStore(t *testing.T) *sqlite.QuoteStore {
	t.Helper()
	database, err := sqlite.Open(sqlite.MemoryPath)
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		database.Close()
	})
	return sqlite.NewQuoteStore(database)
}

// RunStoreContract checks the behaviour every quote.Store must share.
func RunStoreContract(t *testing.T, newStore func(t *testing.T) quote.Store) {
	ctx := context.Background()

	t.Run("round trip", func(t *testing.T) {
		s := newStore(t)
		q := NewTestQuote()

		sum, err := s.Save(ctx, "owner-a", q)
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, sum.ID)
		assert.Equal(t, "DEV-2026-0042", sum.QuoteNumber)
		assert.Equal(t, "Mme Leroy", sum.ClientName)
		assert.Equal(t, "738", sum.Total.String())

		env, err := s.Get(ctx, "owner-a", sum.ID)
		require.NoError(t, err)
		assert.Equal(t, sum.ID, env.Summary.ID)
		assert.True(t, sum.CreatedAt.Equal(env.Summary.CreatedAt))
		assert.True(t, q.Total.Equal(env.Payload.Total), spew.Sdump(env.Payload))
		require.Len(t, env.Payload.Items, len(q.Items))
		assert.True(t, q.Items[1].Total.Equal(env.Payload.Items[1].Total))
		assert.Equal(t, q.Artisan, env.Payload.Artisan)
		assert.Equal(t, q.Client, env.Payload.Client)
	})

	t.Run("unknown client name", func(t *testing.T) {
		s := newStore(t)
		q := NewTestQuote()
		q.Client.Name = ""

		sum, err := s.Save(ctx, "owner-a", q)
		require.NoError(t, err)
		assert.Equal(t, "Unknown", sum.ClientName)
	})

	t.Run("owner isolation", func(t *testing.T) {
		s := newStore(t)
		sum, err := s.Save(ctx, "owner-a", NewTestQuote())
		require.NoError(t, err)

		_, err = s.Get(ctx, "owner-b", sum.ID)
		assert.ErrorIs(t, err, quote.ErrNotFound)

		list, err := s.List(ctx, "owner-b")
		require.NoError(t, err)
		assert.Empty(t, list)

		assert.ErrorIs(t, s.Delete(ctx, "owner-b", sum.ID), quote.ErrNotFound)
		_, err = s.Replace(ctx, "owner-b", sum.ID, NewTestQuote())
		assert.ErrorIs(t, err, quote.ErrNotFound)
	})

	t.Run("list newest first", func(t *testing.T) {
		s := newStore(t)
		var ids []uuid.UUID
		for _, name := range []string{"First", "Second", "Third"} {
			sum, err := s.Save(ctx, "owner-a", NewTestQuote(WithClient(name, "somewhere")))
			require.NoError(t, err)
			ids = append(ids, sum.ID)
		}

		list, err := s.List(ctx, "owner-a")
		require.NoError(t, err)
		require.Len(t, list, 3, spew.Sdump(list))
		assert.Equal(t, []uuid.UUID{ids[2], ids[1], ids[0]}, []uuid.UUID{list[0].ID, list[1].ID, list[2].ID})
		assert.Equal(t, "Third", list[0].ClientName)
	})

	t.Run("replace", func(t *testing.T) {
		s := newStore(t)
		sum, err := s.Save(ctx, "owner-a", NewTestQuote())
		require.NoError(t, err)

		edited := NewTestQuote(WithClient("M. Martin", "1 rue Haute"), WithItems(Raw("Tap", "2", "10.00", "unit")))
		updated, err := s.Replace(ctx, "owner-a", sum.ID, edited)
		require.NoError(t, err)
		assert.Equal(t, sum.ID, updated.ID)
		assert.Equal(t, "M. Martin", updated.ClientName)
		assert.Equal(t, "24", updated.Total.String())
		assert.True(t, sum.CreatedAt.Equal(updated.CreatedAt))

		env, err := s.Get(ctx, "owner-a", sum.ID)
		require.NoError(t, err)
		require.Len(t, env.Payload.Items, 1)
		assert.Equal(t, "Tap", env.Payload.Items[0].Description)
		assert.Equal(t, "M. Martin", env.Summary.ClientName)
	})

	t.Run("delete", func(t *testing.T) {
		s := newStore(t)
		sum, err := s.Save(ctx, "owner-a", NewTestQuote())
		require.NoError(t, err)

		require.NoError(t, s.Delete(ctx, "owner-a", sum.ID))
		_, err = s.Get(ctx, "owner-a", sum.ID)
		assert.ErrorIs(t, err, quote.ErrNotFound)
		assert.ErrorIs(t, s.Delete(ctx, "owner-a", sum.ID), quote.ErrNotFound)
	})

	t.Run("missing id", func(t *testing.T) {
		s := newStore(t)
		_, err := s.Get(ctx, "owner-a", uuid.New())
		assert.ErrorIs(t, err, quote.ErrNotFound)
	})
}
