package source

import (
	"context"

	"github.com/shopspring/decimal"

	"offr-io/go_backend/internal/domain/quote"
)

// Mock ignores the description and returns a fixed water heater job.
type Mock struct{}

func (Mock) Items(_ context.Context, _ string, language string) ([]quote.RawItem, error) {
	set := mockEN
	if quote.NormalizeLanguage(language) == quote.LangFR {
		set = mockFR
	}
	out := make([]quote.RawItem, len(set))
	copy(out, set)
	return out, nil
}

func line(desc string, qty int64, unit string, price string) quote.RawItem {
	return quote.RawItem{
		Description: desc,
		Quantity:    decimal.NewFromInt(qty),
		Unit:        unit,
		UnitPrice:   decimal.RequireFromString(price),
	}
}

var mockEN = []quote.RawItem{
	line("200L electric water heater - vertical installation", 1, "unit", "450.00"),
	line("Safety kit (pressure relief valve + drain + reducer)", 1, "unit", "55.00"),
	line("Thermostatic bathroom mixer tap", 1, "unit", "120.00"),
	line("Stainless steel connection hoses", 2, "unit", "15.00"),
	line("Labor - installation and connection work", 3, "hour", "55.00"),
	line("Travel and commissioning", 1, "flat rate", "50.00"),
	line("Disposal of old equipment", 1, "flat rate", "30.00"),
}

var mockFR = []quote.RawItem{
	line("Chauffe-eau électrique 200L - installation verticale", 1, "unité", "450.00"),
	line("Kit de sécurité (groupe de sécurité + vidange + réducteur)", 1, "unité", "55.00"),
	line("Mitigeur thermostatique pour salle de bain", 1, "unité", "120.00"),
	line("Flexibles de raccordement en inox", 2, "unité", "15.00"),
	line("Main-d'œuvre - travaux d'installation et de raccordement", 3, "heure", "55.00"),
	line("Déplacement et mise en service", 1, "forfait", "50.00"),
	line("Enlèvement de l'ancien équipement", 1, "forfait", "30.00"),
}
