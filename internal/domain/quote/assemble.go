package quote

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	numberPrefix = "DEV"
	numberDigits = 4
	validityDays = 30
)

var (
	DefaultTaxRate = decimal.NewFromInt(20)
	hundred        = decimal.NewFromInt(100)
)

type Options struct {
	// TaxRatePercent applies when the request does not carry its own rate.
	TaxRatePercent decimal.Decimal
	// StrictParties rejects missing party names and addresses instead of
	// filling placeholders.
	StrictParties bool
	// RejectNegative rejects negative quantities and unit prices.
	RejectNegative bool
}

func DefaultOptions() Options {
	return Options{TaxRatePercent: DefaultTaxRate}
}

// Assembler turns raw lines and party overrides into a computed Quote.
// It holds no mutable state and is safe for concurrent use.
type Assembler struct {
	clock Clock
	opts  Options
}

func NewAssembler(clock Clock, opts Options) *Assembler {
	if clock == nil {
		clock = SystemClock()
	}
	return &Assembler{clock: clock, opts: opts}
}

func (a *Assembler) Assemble(req Request) (Quote, error) {
	if len(req.Items) == 0 {
		return Quote{}, ErrNoItems
	}
	lang := NormalizeLanguage(req.Language)

	items := make([]Item, 0, len(req.Items))
	subtotal := decimal.Zero
	for i, raw := range req.Items {
		if a.opts.RejectNegative {
			if raw.Quantity.IsNegative() {
				return Quote{}, invalid(fmt.Sprintf("item %d: quantity must not be negative", i+1))
			}
			if raw.UnitPrice.IsNegative() {
				return Quote{}, invalid(fmt.Sprintf("item %d: unit price must not be negative", i+1))
			}
		}
		it := PriceItem(raw)
		subtotal = subtotal.Add(it.Total)
		items = append(items, it)
	}

	rate := a.opts.TaxRatePercent
	if req.TaxRatePercent != nil {
		rate = *req.TaxRatePercent
	}
	if rate.IsNegative() {
		return Quote{}, invalid("tax rate must not be negative")
	}
	tva := subtotal.Mul(rate).Div(hundred).Round(2)

	artisan, client, err := a.parties(req.Artisan, req.Client, lang)
	if err != nil {
		return Quote{}, err
	}

	now := a.clock.Now()
	return Quote{
		QuoteNumber: fmt.Sprintf("%s-%d-%s", numberPrefix, now.Year(), a.clock.RandomDigits(numberDigits)),
		Date:        FormatDate(now, lang),
		ValidUntil:  FormatDate(now.AddDate(0, 0, validityDays), lang),
		Language:    lang,
		Artisan:     artisan,
		Client:      client,
		Items:       items,
		Subtotal:    subtotal,
		TVARate:     rate,
		TVA:         tva,
		Total:       subtotal.Add(tva),
		Notes:       defaultsFor(lang).notes,
	}, nil
}

// PriceItem copies a raw line and derives its total, rounded half away from zero.
func PriceItem(raw RawItem) Item {
	return Item{
		Description: raw.Description,
		Quantity:    raw.Quantity,
		Unit:        raw.Unit,
		UnitPrice:   raw.UnitPrice,
		Total:       raw.Quantity.Mul(raw.UnitPrice).Round(2),
	}
}

func (a *Assembler) parties(pa *PartialArtisan, pc *PartialClient, lang string) (Artisan, Client, error) {
	if pa == nil {
		pa = &PartialArtisan{}
	}
	if pc == nil {
		pc = &PartialClient{}
	}
	if a.opts.StrictParties {
		var missing []string
		if blank(pa.Name) {
			missing = append(missing, "artisan name")
		}
		if blank(pa.Address) {
			missing = append(missing, "artisan address")
		}
		if blank(pc.Name) {
			missing = append(missing, "client name")
		}
		if blank(pc.Address) {
			missing = append(missing, "client address")
		}
		if len(missing) > 0 {
			return Artisan{}, Client{}, invalid("missing " + strings.Join(missing, ", "))
		}
	}

	d := defaultsFor(lang)
	artisan := Artisan{
		Name:    orDefault(pa.Name, d.artisanName),
		Company: orDefault(pa.Company, d.artisanCompany),
		Address: orDefault(pa.Address, d.artisanAddress),
		Phone:   orDefault(pa.Phone, d.artisanPhone),
		Email:   orDefault(pa.Email, d.artisanEmail),
		Siret:   strings.TrimSpace(pa.Siret),
	}
	client := Client{
		Name:    orDefault(pc.Name, d.clientName),
		Address: orDefault(pc.Address, d.clientAddress),
		Phone:   strings.TrimSpace(pc.Phone),
		Email:   strings.TrimSpace(pc.Email),
	}
	return artisan, client, nil
}

// FormatDate renders a short date the way the quote language expects it.
func FormatDate(t time.Time, lang string) string {
	if NormalizeLanguage(lang) == LangFR {
		return t.Format("02/01/2006")
	}
	return t.Format("1/2/2006")
}

type placeholders struct {
	artisanName    string
	artisanCompany string
	artisanAddress string
	artisanPhone   string
	artisanEmail   string
	clientName     string
	clientAddress  string
	notes          string
}

func defaultsFor(lang string) placeholders {
	if lang == LangFR {
		return placeholders{
			artisanName:    "Votre nom",
			artisanCompany: "Votre entreprise",
			artisanAddress: "Votre adresse",
			artisanPhone:   "+33 X XX XX XX XX",
			artisanEmail:   "votre@email.fr",
			clientName:     "Nom du client",
			clientAddress:  "Adresse du client",
			notes:          "Devis généré automatiquement. Merci de votre confiance.",
		}
	}
	return placeholders{
		artisanName:    "Your Name",
		artisanCompany: "Your Company",
		artisanAddress: "Your Address",
		artisanPhone:   "+1 XXX XXX XXXX",
		artisanEmail:   "your@email.com",
		clientName:     "Client Name",
		clientAddress:  "Client Address",
		notes:          "Quote generated automatically. Thank you for your trust.",
	}
}

func blank(s string) bool { return strings.TrimSpace(s) == "" }

func orDefault(v, def string) string {
	if v = strings.TrimSpace(v); v != "" {
		return v
	}
	return def
}
