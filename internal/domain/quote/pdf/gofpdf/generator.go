package gofpdf

import (
	"bytes"
	"fmt"
	"log"
	"path/filepath"
	"strings"

	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"

	"offr-io/go_backend/internal/domain/quote"
)

const (
	pageWidth    = 210.0
	marginLeft   = 20.0
	tableWidth   = 170.0
	clientX      = 120.0
	colQty       = 130.0
	colUnitPrice = 150.0
	colTotal     = 175.0
	totalsLabelX = 140.0
	footerY      = 280.0
	rowHeight    = 7.0
	noteLeading  = 4.0

	// MaxDescription is the column budget of the description cell, in characters.
	MaxDescription = 45
	// descriptionWidth keeps a description clear of the quantity column.
	descriptionWidth = colQty - (marginLeft + 2) - 2
	currency       = "€"
)

type rgb struct{ r, g, b int }

var (
	primary   = rgb{37, 99, 235}
	darkGray  = rgb{55, 65, 81}
	lightGray = rgb{107, 114, 128}
	rowShade  = rgb{249, 250, 251}
	white     = rgb{255, 255, 255}
)

type Generator struct {
	fontDir  string
	compress bool
}

type Option func(*Generator)

// WithFontDir loads DejaVuSans.ttf and DejaVuSans-Bold.ttf from dir instead of
// the built-in Helvetica.
func WithFontDir(dir string) Option {
	return func(g *Generator) { g.fontDir = dir }
}

func WithCompression(on bool) Option {
	return func(g *Generator) { g.compress = on }
}

func New(opts ...Option) *Generator {
	g := &Generator{compress: true}
	for _, o := range opts {
		o(g)
	}
	return g
}

func (g *Generator) Generate(q quote.Quote) ([]byte, error) {
	l := labelsFor(q.Language)

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetCompression(g.compress)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetTitle(l.title+" "+q.QuoteNumber, true)

	family, tr := g.loadFonts(pdf)
	if err := pdf.Error(); err != nil {
		return nil, err
	}
	pdf.AddPage()

	p := &page{pdf: pdf, tr: tr, family: family}
	y := p.titleBlock(q, l, 20)
	y = p.partyBlock(q, l, y+15)
	y = p.itemTable(q, l, y+20)
	y = p.totalsBlock(q, l, y+5)
	p.notes(q, l, y)
	p.footer(l)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		log.Printf("quote pdf: output failed number=%s: %v", q.QuoteNumber, err)
		return nil, err
	}
	return buf.Bytes(), nil
}

func (g *Generator) loadFonts(pdf *gofpdf.Fpdf) (string, func(string) string) {
	if g.fontDir == "" {
		return "Helvetica", pdf.UnicodeTranslatorFromDescriptor("")
	}
	regularFont := filepath.Join(g.fontDir, "DejaVuSans.ttf")
	boldFont := filepath.Join(g.fontDir, "DejaVuSans-Bold.ttf")
	log.Printf("quote pdf: load fonts regular=%s bold=%s", regularFont, boldFont)
	pdf.AddUTF8Font("DejaVu", "", regularFont)
	pdf.AddUTF8Font("DejaVu", "B", boldFont)
	return "DejaVu", func(s string) string { return s }
}

// page draws on a single A4 sheet. Every method takes the baseline to start
// from and returns the baseline of the last line it drew.
type page struct {
	pdf    *gofpdf.Fpdf
	tr     func(string) string
	family string
}

func (p *page) font(style string, size float64, c rgb) {
	p.pdf.SetFont(p.family, style, size)
	p.pdf.SetTextColor(c.r, c.g, c.b)
}

func (p *page) text(x, y float64, s string) {
	p.pdf.Text(x, y, p.tr(s))
}

// width measures s as it will be drawn in the current font.
func (p *page) width(s string) float64 {
	return p.pdf.GetStringWidth(p.tr(s))
}

func (p *page) fill(x, y, w, h float64, c rgb) {
	p.pdf.SetFillColor(c.r, c.g, c.b)
	p.pdf.Rect(x, y, w, h, "F")
}

func (p *page) titleBlock(q quote.Quote, l labels, y float64) float64 {
	p.font("B", 24, primary)
	p.text(marginLeft, y, l.title)

	y += 10
	p.font("", 10, lightGray)
	p.text(marginLeft, y, fmt.Sprintf(l.number, q.QuoteNumber))
	y += 5
	p.text(marginLeft, y, fmt.Sprintf(l.date, q.Date))
	y += 5
	p.text(marginLeft, y, fmt.Sprintf(l.validUntil, q.ValidUntil))
	return y
}

func (p *page) partyBlock(q quote.Quote, l labels, top float64) float64 {
	issuer := firstNonEmpty(q.Artisan.Company, q.Artisan.Name)
	left := p.column(marginLeft, top, l.issuer, []string{
		issuer,
		q.Artisan.Address,
		prefixed(l.phone, q.Artisan.Phone),
		prefixed(l.email, q.Artisan.Email),
		prefixed(l.siret, q.Artisan.Siret),
	})
	right := p.column(clientX, top, l.recipient, []string{
		q.Client.Name,
		q.Client.Address,
		prefixed(l.phone, q.Client.Phone),
		prefixed(l.email, q.Client.Email),
	})
	if right > left {
		return right
	}
	return left
}

func (p *page) column(x, y float64, heading string, lines []string) float64 {
	p.font("", 12, darkGray)
	p.text(x, y, heading)
	y += 7
	p.font("", 10, darkGray)
	first := true
	for _, line := range lines {
		if line == "" {
			continue
		}
		if !first {
			y += 5
		}
		p.text(x, y, line)
		first = false
	}
	return y
}

func (p *page) itemTable(q quote.Quote, l labels, y float64) float64 {
	p.fill(marginLeft, y-5, tableWidth, 8, primary)
	p.font("", 11, white)
	p.text(marginLeft+2, y, l.colDescription)
	p.text(colQty, y, l.colQty)
	p.text(colUnitPrice, y, l.colUnitPrice)
	p.text(colTotal, y, l.colTotal)
	y += 8

	p.font("", 9, darkGray)
	for i, it := range q.Items {
		if i%2 == 0 {
			p.fill(marginLeft, y-5, tableWidth, rowHeight, rowShade)
		}
		p.text(marginLeft+2, y, Fit(it.Description, MaxDescription, descriptionWidth, p.width))
		p.text(colQty, y, strings.TrimSpace(it.Quantity.String()+" "+it.Unit))
		p.text(colUnitPrice, y, Money(it.UnitPrice))
		p.text(colTotal, y, Money(it.Total))
		y += rowHeight
	}
	return y
}

func (p *page) totalsBlock(q quote.Quote, l labels, y float64) float64 {
	p.font("", 10, darkGray)
	p.text(totalsLabelX, y, l.subtotal)
	p.text(colTotal, y, Money(q.Subtotal))

	y += 6
	p.text(totalsLabelX, y, fmt.Sprintf(l.tax, q.TVARate.String()))
	p.text(colTotal, y, Money(q.TVA))

	y += 8
	p.font("B", 12, primary)
	p.text(totalsLabelX, y, l.total)
	p.font("B", 14, primary)
	p.text(colTotal, y, Money(q.Total))
	return y
}

func (p *page) notes(q quote.Quote, l labels, y float64) {
	if strings.TrimSpace(q.Notes) == "" {
		return
	}
	y += 15
	p.font("", 9, lightGray)
	p.text(marginLeft, y, l.notes)
	y += 5
	p.font("", 9, darkGray)
	for _, line := range Wrap(p.tr(q.Notes), tableWidth, p.pdf.GetStringWidth) {
		p.pdf.Text(marginLeft, y, line)
		y += noteLeading
	}
}

func (p *page) footer(l labels) {
	p.font("", 8, lightGray)
	s := p.tr(l.footer)
	p.pdf.Text((pageWidth-p.pdf.GetStringWidth(s))/2, footerY, s)
}

// Money prints an amount with two decimals and a trailing currency symbol.
func Money(d decimal.Decimal) string {
	return d.StringFixed(2) + currency
}

// Truncate keeps the first max characters of s and marks the cut with "...".
func Truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max]) + "..."
}

// Fit truncates s to max characters and then keeps cutting until the result,
// ellipsis included, is no wider than width.
func Fit(s string, max int, width float64, measure func(string) float64) string {
	out := Truncate(s, max)
	if measure(out) <= width {
		return out
	}
	r := []rune(s)
	if len(r) > max {
		r = r[:max]
	}
	for len(r) > 0 && measure(string(r)+"...") > width {
		r = r[:len(r)-1]
	}
	return string(r) + "..."
}

// Wrap breaks text into lines no wider than width as reported by measure.
// Explicit newlines are kept; a single word wider than width gets its own line.
func Wrap(text string, width float64, measure func(string) float64) []string {
	var lines []string
	for _, para := range strings.Split(text, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		line := words[0]
		for _, w := range words[1:] {
			candidate := line + " " + w
			if measure(candidate) > width {
				lines = append(lines, line)
				line = w
				continue
			}
			line = candidate
		}
		lines = append(lines, line)
	}
	return lines
}

func prefixed(label, v string) string {
	if strings.TrimSpace(v) == "" {
		return ""
	}
	return label + v
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
