package cli

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"offr-io/go_backend/internal/domain/quote"
)

// amount keeps YAML and JSON numbers exact by parsing their source text.
type amount struct{ decimal.Decimal }

func (a *amount) UnmarshalYAML(n *yaml.Node) error {
	d, err := decimal.NewFromString(n.Value)
	if err != nil {
		return fmt.Errorf("line %d: invalid number %q", n.Line, n.Value)
	}
	a.Decimal = d
	return nil
}

type jobItem struct {
	Description string `yaml:"description"`
	Quantity    amount `yaml:"quantity"`
	Unit        string `yaml:"unit"`
	UnitPrice   amount `yaml:"unitPrice"`
}

type jobParty struct {
	Name    string `yaml:"name"`
	Company string `yaml:"company"`
	Address string `yaml:"address"`
	Phone   string `yaml:"phone"`
	Email   string `yaml:"email"`
	Siret   string `yaml:"siret"`
}

// jobFile is the CLI input. JSON is valid YAML, so both formats decode here.
type jobFile struct {
	Description    string    `yaml:"description"`
	Language       string    `yaml:"language"`
	Artisan        *jobParty `yaml:"artisan"`
	Client         *jobParty `yaml:"client"`
	Items          []jobItem `yaml:"items"`
	TaxRatePercent *amount   `yaml:"taxRatePercent"`
}

func readJobFile(path string) (jobFile, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return jobFile{}, fmt.Errorf("reading job file: %w", err)
	}
	var job jobFile
	if err := yaml.Unmarshal(b, &job); err != nil {
		return jobFile{}, fmt.Errorf("parsing job file %s: %w", path, err)
	}
	return job, nil
}

func (j jobFile) request() quote.Request {
	req := quote.Request{
		Description: j.Description,
		Language:    j.Language,
	}
	if j.Artisan != nil {
		req.Artisan = &quote.PartialArtisan{
			Name:    j.Artisan.Name,
			Company: j.Artisan.Company,
			Address: j.Artisan.Address,
			Phone:   j.Artisan.Phone,
			Email:   j.Artisan.Email,
			Siret:   j.Artisan.Siret,
		}
	}
	if j.Client != nil {
		req.Client = &quote.PartialClient{
			Name:    j.Client.Name,
			Address: j.Client.Address,
			Phone:   j.Client.Phone,
			Email:   j.Client.Email,
		}
	}
	for _, it := range j.Items {
		req.Items = append(req.Items, quote.RawItem{
			Description: it.Description,
			Quantity:    it.Quantity.Decimal,
			Unit:        it.Unit,
			UnitPrice:   it.UnitPrice.Decimal,
		})
	}
	if j.TaxRatePercent != nil {
		rate := j.TaxRatePercent.Decimal
		req.TaxRatePercent = &rate
	}
	return req
}
