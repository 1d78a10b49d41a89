package gofpdf

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"offr-io/go_backend/internal/domain/quote"
	"offr-io/go_backend/internal/domain/quote/pdf"
	"offr-io/go_backend/internal/testutil"
)

func TestGenerate_ProducesPDF(t *testing.T) {
	q := testutil.NewTestQuote()

	out, err := New().Generate(q)

	require.NoError(t, err)
	require.NotEmpty(t, out)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
}

func TestGenerate_BothLanguages(t *testing.T) {
	for _, lang := range []string{quote.LangEN, quote.LangFR, ""} {
		q := testutil.NewTestQuote(testutil.WithLanguage(lang))

		out, err := New(WithCompression(false)).Generate(q)

		require.NoError(t, err, "lang=%q", lang)
		title := labelsFor(lang).title
		assert.Contains(t, string(out), "("+title+")", "lang=%q", lang)
	}
}

func TestGenerate_TruncatesLongDescriptions(t *testing.T) {
	long := "Complete replacement of the bathroom drainage network including all fittings"
	q := testutil.NewTestQuote(testutil.WithItems(
		testutil.Raw(long, "1", "980.00", "flat rate"),
		testutil.Raw("Labor", "2", "55.00", "hour"),
	))

	out, err := New(WithCompression(false)).Generate(q)
	require.NoError(t, err)

	body := string(out)
	assert.Contains(t, body, "("+long[:MaxDescription]+"...)")
	assert.NotContains(t, body, long)
	assert.Contains(t, body, "(Labor)")
}

func TestGenerate_MoneyAndTotals(t *testing.T) {
	q := testutil.NewTestQuote()

	out, err := New(WithCompression(false)).Generate(q)
	require.NoError(t, err)

	body := string(out)
	// cp1252 maps the euro sign to 0x80.
	for _, amount := range []string{"450.00", "165.00", "615.00", "123.00", "738.00"} {
		assert.Contains(t, body, "("+amount+"\x80)", amount)
	}
	assert.Contains(t, body, "(VAT \\(20%\\):)")
}

func TestGenerate_OptionalPartyLines(t *testing.T) {
	q := testutil.NewTestQuote(testutil.WithArtisan(quote.PartialArtisan{
		Name:  "Marc Dupont",
		Siret: "12345678900012",
	}))

	out, err := New(WithCompression(false)).Generate(q)
	require.NoError(t, err)
	assert.Contains(t, string(out), "(SIRET: 12345678900012)")
	assert.Contains(t, string(out), "(Your Company)")

	q.Artisan.Siret = ""
	q.Artisan.Company = ""
	out, err = New(WithCompression(false)).Generate(q)
	require.NoError(t, err)
	assert.NotContains(t, string(out), "SIRET")
	assert.Contains(t, string(out), "(Marc Dupont)")
}

func TestGenerate_OverflowDoesNotFail(t *testing.T) {
	items := make([]quote.RawItem, 0, 80)
	for i := 0; i < 80; i++ {
		items = append(items, testutil.Raw(fmt.Sprintf("Line %d", i), "1", "10", "unit"))
	}
	q := testutil.NewTestQuote(testutil.WithItems(items...))
	q.Notes = strings.Repeat("Long note text that keeps going. ", 200)

	out, err := New().Generate(q)

	require.NoError(t, err)
	assert.NotEmpty(t, out)
}

func TestGenerate_EmptyQuoteValue(t *testing.T) {
	out, err := New().Generate(quote.Quote{})

	require.NoError(t, err)
	assert.NotEmpty(t, out)
}

func TestRender_Document(t *testing.T) {
	q := testutil.NewTestQuote()

	doc, err := pdf.Render(New(), q)

	require.NoError(t, err)
	assert.Equal(t, "devis-DEV-2026-0042.pdf", doc.Filename)
	assert.NotEmpty(t, doc.Content)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 45))
	assert.Equal(t, strings.Repeat("a", 45), Truncate(strings.Repeat("a", 45), 45))
	assert.Equal(t, strings.Repeat("a", 45)+"...", Truncate(strings.Repeat("a", 46), 45))
	assert.Equal(t, "Chauffe-eau é...", Truncate("Chauffe-eau électrique", 13))
}

func TestFit_KeepsDescriptionInsideColumn(t *testing.T) {
	doc := gofpdf.New("P", "mm", "A4", "")
	doc.SetFont("Helvetica", "", 9)
	measure := doc.GetStringWidth

	wide := strings.Repeat("W", 60)
	out := Fit(wide, MaxDescription, descriptionWidth, measure)

	assert.True(t, strings.HasSuffix(out, "..."), out)
	assert.LessOrEqual(t, measure(out), descriptionWidth)
	assert.Greater(t, len(out), len("..."))
	assert.Less(t, len([]rune(out)), MaxDescription+3)

	narrow := strings.Repeat("i", 60)
	assert.Equal(t, Truncate(narrow, MaxDescription), Fit(narrow, MaxDescription, descriptionWidth, measure))
	assert.Equal(t, "Labor", Fit("Labor", MaxDescription, descriptionWidth, measure))
}

func TestGenerate_WideDescriptionIsCut(t *testing.T) {
	wide := strings.Repeat("W", 60)
	q := testutil.NewTestQuote(testutil.WithItems(testutil.Raw(wide, "1", "10", "unit")))

	out, err := New(WithCompression(false)).Generate(q)
	require.NoError(t, err)

	assert.NotContains(t, string(out), "("+wide[:MaxDescription]+"...)")
	assert.Contains(t, string(out), "WWW...)")
}

func TestWrap(t *testing.T) {
	measure := func(s string) float64 { return float64(len(s)) }

	lines := Wrap("one two three four\nfive", 9, measure)
	assert.Equal(t, []string{"one two", "three", "four", "five"}, lines)

	lines = Wrap("supercalifragilistic word", 5, measure)
	assert.Equal(t, []string{"supercalifragilistic", "word"}, lines)
}

func TestMoney(t *testing.T) {
	assert.Equal(t, "738.00€", Money(decimal.RequireFromString("738")))
	assert.Equal(t, "0.13€", Money(decimal.RequireFromString("0.125").Round(2)))
	assert.Equal(t, "-5.50€", Money(decimal.RequireFromString("-5.5")))
}
