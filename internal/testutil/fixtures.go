package testutil

import (
	"time"

	"github.com/shopspring/decimal"

	"offr-io/go_backend/internal/domain/quote"
)

// FixedTime is the issue instant of every fixture quote.
var FixedTime = time.Date(2026, time.March, 5, 10, 30, 0, 0, time.UTC)

// FixedClock yields quote number DEV-2026-0042.
func FixedClock() quote.Clock {
	return quote.FixedClock{At: FixedTime, Digits: "0042"}
}

func NewTestAssembler() *quote.Assembler {
	return quote.NewAssembler(FixedClock(), quote.DefaultOptions())
}

func Raw(desc, qty, price, unit string) quote.RawItem {
	return quote.RawItem{
		Description: desc,
		Quantity:    decimal.RequireFromString(qty),
		Unit:        unit,
		UnitPrice:   decimal.RequireFromString(price),
	}
}

// WaterHeaterItems totals 615.00 before tax.
func WaterHeaterItems() []quote.RawItem {
	return []quote.RawItem{
		Raw("Water heater", "1", "450.00", "unit"),
		Raw("Labor", "3", "55.00", "hour"),
	}
}

type RequestOption func(*quote.Request)

func WithItems(items ...quote.RawItem) RequestOption {
	return func(r *quote.Request) { r.Items = items }
}

func WithClient(name, address string) RequestOption {
	return func(r *quote.Request) {
		r.Client = &quote.PartialClient{Name: name, Address: address}
	}
}

func WithArtisan(a quote.PartialArtisan) RequestOption {
	return func(r *quote.Request) { r.Artisan = &a }
}

func WithLanguage(lang string) RequestOption {
	return func(r *quote.Request) { r.Language = lang }
}

// NewTestQuote assembles a quote with the fixed clock. It panics on invalid
// options since fixtures are expected to be well formed.
func NewTestQuote(opts ...RequestOption) quote.Quote {
	req := quote.Request{
		Description: "replace the water heater",
		Items:       WaterHeaterItems(),
		Client:      &quote.PartialClient{Name: "Mme Leroy", Address: "8 avenue Foch, Lyon"},
	}
	for _, o := range opts {
		o(&req)
	}
	q, err := NewTestAssembler().Assemble(req)
	if err != nil {
		panic(err)
	}
	return q
}
