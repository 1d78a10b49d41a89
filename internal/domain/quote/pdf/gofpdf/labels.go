package gofpdf

import "offr-io/go_backend/internal/domain/quote"

type labels struct {
	title      string
	number     string
	date       string
	validUntil string

	issuer    string
	recipient string
	phone     string
	email     string
	siret     string

	colDescription string
	colQty         string
	colUnitPrice   string
	colTotal       string

	subtotal string
	tax      string
	total    string
	notes    string
	footer   string
}

var labelSets = map[string]labels{
	quote.LangFR: {
		title:          "DEVIS",
		number:         "N° %s",
		date:           "Date : %s",
		validUntil:     "Valable jusqu'au : %s",
		issuer:         "ARTISAN",
		recipient:      "CLIENT",
		phone:          "Tél : ",
		email:          "Email : ",
		siret:          "SIRET : ",
		colDescription: "Description",
		colQty:         "Qté",
		colUnitPrice:   "P.U. HT",
		colTotal:       "Total HT",
		subtotal:       "Sous-total HT :",
		tax:            "TVA (%s%%) :",
		total:          "TOTAL TTC :",
		notes:          "Notes :",
		footer:         `Devis généré automatiquement - À retourner signé avec la mention "Bon pour accord"`,
	},
	quote.LangEN: {
		title:          "QUOTE",
		number:         "No. %s",
		date:           "Date: %s",
		validUntil:     "Valid until: %s",
		issuer:         "CONTRACTOR",
		recipient:      "CLIENT",
		phone:          "Phone: ",
		email:          "Email: ",
		siret:          "SIRET: ",
		colDescription: "Description",
		colQty:         "Qty",
		colUnitPrice:   "Unit price",
		colTotal:       "Total",
		subtotal:       "Subtotal:",
		tax:            "VAT (%s%%):",
		total:          "TOTAL:",
		notes:          "Notes:",
		footer:         `Quote generated automatically - Return signed with the mention "Approved"`,
	},
}

func labelsFor(lang string) labels {
	return labelSets[quote.NormalizeLanguage(lang)]
}
