package openai

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"offr-io/go_backend/internal/domain/quote"
)

var ErrNoItemsGenerated = errors.New("no quote items generated")

// Completer is the part of Client the item source needs.
type Completer interface {
	CompleteJSON(ctx context.Context, system, user string) (string, error)
}

// ItemSource asks the model for quote lines matching a job description.
type ItemSource struct {
	client Completer
}

func NewItemSource(client Completer) *ItemSource {
	return &ItemSource{client: client}
}

type itemsPayload struct {
	Items []quote.RawItem `json:"items"`
}

func (s *ItemSource) Items(ctx context.Context, description, language string) ([]quote.RawItem, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, &quote.ValidationError{Msg: "description is required"}
	}

	system, user := prompt(description, quote.NormalizeLanguage(language))
	raw, err := s.client.CompleteJSON(ctx, system, user)
	if err != nil {
		return nil, fmt.Errorf("generating items: %w", err)
	}

	out, err := ExtractJSON[itemsPayload](raw)
	if err != nil {
		log.Printf("openai items parse failed: %v raw=%q", err, truncateLog(raw))
		return nil, fmt.Errorf("parsing items: %w", err)
	}

	items := out.Items[:0]
	for _, it := range out.Items {
		it.Description = strings.TrimSpace(it.Description)
		if it.Description == "" {
			continue
		}
		items = append(items, it)
	}
	if len(items) == 0 {
		return nil, ErrNoItemsGenerated
	}
	return items, nil
}

func prompt(description, lang string) (string, string) {
	if lang == quote.LangFR {
		return systemFR, fmt.Sprintf(userFR, description)
	}
	return systemEN, fmt.Sprintf(userEN, description)
}

const systemFR = `Tu es un expert en plomberie qui génère des devis détaillés et précis. Tu réponds uniquement en JSON valide.`

const userFR = `À partir de la description suivante d'une intervention, génère une liste détaillée de lignes de devis au format JSON.

Description: "%s"

Pour chaque ligne, fournis:
- description: description détaillée de la prestation ou pièce
- quantity: quantité (nombre)
- unit: unité (ex: "unité", "m", "m²", "heure")
- unitPrice: prix unitaire HT en euros (prix réalistes pour un plombier en France)

Fournis au moins 2 à 4 lignes: les pièces et fournitures nécessaires, puis la main d'œuvre.

Réponds UNIQUEMENT avec un objet JSON valide au format:
{"items": [{"description": "...", "quantity": 1, "unit": "unité", "unitPrice": 150.00}]}`

const systemEN = `You are a plumbing expert who writes detailed and accurate quotes. You answer with valid JSON only.`

const userEN = `From the following job description, produce a detailed list of quote lines as JSON.

Description: "%s"

For each line provide:
- description: detailed description of the service or part
- quantity: quantity (number)
- unit: unit (e.g. "unit", "m", "hour", "flat rate")
- unitPrice: unit price before tax in euros (realistic prices for a plumber in France)

Provide at least 2 to 4 lines: the parts and supplies needed, then the labor.

Answer ONLY with a valid JSON object in the format:
{"items": [{"description": "...", "quantity": 1, "unit": "unit", "unitPrice": 150.00}]}`

func truncateLog(s string) string {
	const max = 300
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
