package quote

import (
	"strings"

	"github.com/shopspring/decimal"
)

type Quote struct {
	QuoteNumber string `json:"quoteNumber"`
	Date        string `json:"date"`
	ValidUntil  string `json:"validUntil"`
	Language    string `json:"language,omitempty"`

	Artisan Artisan `json:"artisan"`
	Client  Client  `json:"client"`
	Items   []Item  `json:"items"`

	Subtotal decimal.Decimal `json:"subtotal"`
	TVARate  decimal.Decimal `json:"tvaRate"`
	TVA      decimal.Decimal `json:"tva"`
	Total    decimal.Decimal `json:"total"`
	Notes    string          `json:"notes,omitempty"`
}

// Item is one priced line. Total is derived by the Assembler.
type Item struct {
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	Unit        string          `json:"unit"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Total       decimal.Decimal `json:"total"`
}

// RawItem is a line as supplied by a caller or an item source, before pricing.
type RawItem struct {
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	Unit        string          `json:"unit"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
}

type Artisan struct {
	Name    string `json:"name"`
	Company string `json:"company"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Siret   string `json:"siret,omitempty"`
}

type Client struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone,omitempty"`
	Email   string `json:"email,omitempty"`
}

type PartialArtisan struct {
	Name    string `json:"name,omitempty"`
	Company string `json:"company,omitempty"`
	Address string `json:"address,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Email   string `json:"email,omitempty"`
	Siret   string `json:"siret,omitempty"`
}

type PartialClient struct {
	Name    string `json:"name,omitempty"`
	Address string `json:"address,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Email   string `json:"email,omitempty"`
}

// Request is the input of Assemble.
type Request struct {
	Description    string           `json:"description"`
	Language       string           `json:"language,omitempty"`
	Artisan        *PartialArtisan  `json:"artisanInfo,omitempty"`
	Client         *PartialClient   `json:"clientInfo,omitempty"`
	Items          []RawItem        `json:"items,omitempty"`
	TaxRatePercent *decimal.Decimal `json:"taxRatePercent,omitempty"`
}

const (
	LangEN = "en"
	LangFR = "fr"
)

// NormalizeLanguage maps anything that is not French to English.
func NormalizeLanguage(lang string) string {
	if strings.EqualFold(strings.TrimSpace(lang), LangFR) {
		return LangFR
	}
	return LangEN
}
