package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"offr-io/go_backend/internal/app/config"
	apphttp "offr-io/go_backend/internal/app/http"
	"offr-io/go_backend/internal/app/http/handlers"
	"offr-io/go_backend/internal/domain/quote"
	"offr-io/go_backend/internal/domain/quote/pdf/gofpdf"
	"offr-io/go_backend/internal/domain/quote/source"
	"offr-io/go_backend/internal/testutil"
)

const token = "test-token"

type failingSource struct{ err error }

func (f failingSource) Items(context.Context, string, string) ([]quote.RawItem, error) {
	return nil, f.err
}

func newServer(t *testing.T, src source.Source) http.Handler {
	t.Helper()
	cfg := config.Config{InternalToken: token, CORSAllowOrigin: "*"}
	h := handlers.New(cfg, testutil.NewTestStore(t), src, testutil.NewTestAssembler(), gofpdf.New())
	return apphttp.NewRouter(cfg, h)
}

func do(t *testing.T, srv http.Handler, method, path, owner string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if s, ok := body.(string); ok {
			buf.WriteString(s)
		} else {
			require.NoError(t, json.NewEncoder(&buf).Encode(body))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Internal-Token", token)
	if owner != "" {
		req.Header.Set("X-Owner-ID", owner)
	}
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func errorBody(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var out map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out["error"]
}

func TestHealth(t *testing.T) {
	srv := newServer(t, source.Mock{})

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestV1_RequiresToken(t *testing.T) {
	srv := newServer(t, source.Mock{})

	req := httptest.NewRequest(http.MethodPost, "/v1/quotes/generate", bytes.NewBufferString(`{}`))
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGenerate_FromSource(t *testing.T) {
	srv := newServer(t, source.Mock{})

	rec := do(t, srv, http.MethodPost, "/v1/quotes/generate", "", map[string]any{
		"description": "replace the water heater",
		"language":    "fr",
		"clientInfo":  map[string]string{"name": "Mme Leroy"},
	})

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var q quote.Quote
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &q))
	assert.Len(t, q.Items, 7)
	assert.Equal(t, "DEV-2026-0042", q.QuoteNumber)
	assert.Equal(t, "05/03/2026", q.Date)
	assert.Equal(t, "Mme Leroy", q.Client.Name)
	assert.Equal(t, "Votre nom", q.Artisan.Name)
	assert.True(t, q.Total.Equal(decimal.NewFromInt(1080)), spew.Sdump(q))
}

func TestGenerate_FromBodyItems(t *testing.T) {
	srv := newServer(t, failingSource{err: errors.New("must not be called")})

	rec := do(t, srv, http.MethodPost, "/v1/quotes/generate", "", `{
		"items": [{"description":"Tap","quantity":2,"unit":"unit","unitPrice":"10.005"}],
		"taxRatePercent": 10
	}`)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var q quote.Quote
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &q))
	assert.Equal(t, "20.01", q.Subtotal.StringFixed(2))
	assert.Equal(t, "2.00", q.TVA.StringFixed(2))
	assert.Equal(t, "22.01", q.Total.StringFixed(2))
	assert.Equal(t, "10", q.TVARate.String())
}

func TestGenerate_BadRequests(t *testing.T) {
	srv := newServer(t, source.Mock{})

	rec := do(t, srv, http.MethodPost, "/v1/quotes/generate", "", `{"description": "  "}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "description is required", errorBody(t, rec))

	rec = do(t, srv, http.MethodPost, "/v1/quotes/generate", "", `{not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, srv, http.MethodPost, "/v1/quotes/generate", "", `{
		"items": [{"description":"Tap","quantity":1,"unit":"unit","unitPrice":100}],
		"taxRatePercent": -50
	}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "tax rate must not be negative", errorBody(t, rec))
}

func TestGenerate_SourceFailures(t *testing.T) {
	srv := newServer(t, failingSource{err: errors.New("upstream down")})
	rec := do(t, srv, http.MethodPost, "/v1/quotes/generate", "", `{"description":"leak"}`)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Equal(t, "failed to generate quote items", errorBody(t, rec))

	srv = newServer(t, failingSource{err: &quote.ValidationError{Msg: "description is required"}})
	rec = do(t, srv, http.MethodPost, "/v1/quotes/generate", "", `{"description":"leak"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPDF(t *testing.T) {
	srv := newServer(t, source.Mock{})

	rec := do(t, srv, http.MethodPost, "/v1/quotes/pdf", "", testutil.NewTestQuote())

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="devis-DEV-2026-0042.pdf"`, rec.Header().Get("Content-Disposition"))
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF-")))
}

func TestPDF_NoItems(t *testing.T) {
	srv := newServer(t, source.Mock{})
	q := testutil.NewTestQuote()
	q.Items = nil

	rec := do(t, srv, http.MethodPost, "/v1/quotes/pdf", "", q)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSavedQuotes_Lifecycle(t *testing.T) {
	srv := newServer(t, source.Mock{})

	rec := do(t, srv, http.MethodPost, "/v1/quotes", "owner-a", testutil.NewTestQuote())
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var sum quote.Summary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &sum))
	assert.Equal(t, "Mme Leroy", sum.ClientName)
	path := "/v1/quotes/" + sum.ID.String()

	rec = do(t, srv, http.MethodGet, "/v1/quotes", "owner-a", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var list struct {
		Quotes []quote.Summary `json:"quotes"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list.Quotes, 1)

	rec = do(t, srv, http.MethodGet, path, "owner-a", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var env quote.Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.Equal(t, "DEV-2026-0042", env.Payload.QuoteNumber)

	edited := testutil.NewTestQuote(testutil.WithClient("M. Martin", "1 rue Haute"))
	rec = do(t, srv, http.MethodPut, path, "owner-a", edited)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &sum))
	assert.Equal(t, "M. Martin", sum.ClientName)

	rec = do(t, srv, http.MethodGet, path+"/pdf", "owner-a", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))

	rec = do(t, srv, http.MethodDelete, path, "owner-a", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(t, srv, http.MethodGet, path, "owner-a", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, quote.ErrNotFound.Error(), errorBody(t, rec))
}

func TestSavedQuotes_OwnerScoping(t *testing.T) {
	srv := newServer(t, source.Mock{})

	rec := do(t, srv, http.MethodPost, "/v1/quotes", "owner-a", testutil.NewTestQuote())
	require.Equal(t, http.StatusCreated, rec.Code)
	var sum quote.Summary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &sum))
	path := "/v1/quotes/" + sum.ID.String()

	assert.Equal(t, http.StatusUnauthorized, do(t, srv, http.MethodGet, "/v1/quotes", "", nil).Code)
	assert.Equal(t, http.StatusNotFound, do(t, srv, http.MethodGet, path, "owner-b", nil).Code)
	assert.Equal(t, http.StatusNotFound, do(t, srv, http.MethodGet, path+"/pdf", "owner-b", nil).Code)
	assert.Equal(t, http.StatusNotFound, do(t, srv, http.MethodPut, path, "owner-b", testutil.NewTestQuote()).Code)
	assert.Equal(t, http.StatusNotFound, do(t, srv, http.MethodDelete, path, "owner-b", nil).Code)
}

func TestSavedQuotes_InvalidID(t *testing.T) {
	srv := newServer(t, source.Mock{})

	rec := do(t, srv, http.MethodGet, "/v1/quotes/not-a-uuid", "owner-a", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, srv, http.MethodDelete, "/v1/quotes/"+uuid.NewString(), "owner-a", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
