package cli

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/pflag"

	"offr-io/go_backend/internal/app/config"
)

// quoteFlags are the assembly settings a command line may override.
type quoteFlags struct {
	source         string
	taxRate        string
	strictParties  bool
	rejectNegative bool
	fontDir        string
}

func (f *quoteFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&f.source, "source", "", "item source when the job has no items (mock|openai)")
	fs.StringVar(&f.taxRate, "tax-rate", "", "VAT rate in percent (default from TAX_RATE_PERCENT)")
	fs.BoolVar(&f.strictParties, "strict", false, "reject missing artisan or client details instead of using placeholders")
	fs.BoolVar(&f.rejectNegative, "reject-negative", false, "reject negative quantities and unit prices")
	fs.StringVar(&f.fontDir, "font-dir", "", "directory holding DejaVuSans.ttf and DejaVuSans-Bold.ttf")
}

// apply copies the flags the user set onto cfg.
func (f *quoteFlags) apply(fs *pflag.FlagSet, cfg *config.Config) error {
	if fs.Changed("source") {
		cfg.ItemSource = f.source
	}
	if fs.Changed("tax-rate") {
		rate, err := decimal.NewFromString(f.taxRate)
		if err != nil {
			return fmt.Errorf("invalid --tax-rate %q: %w", f.taxRate, err)
		}
		cfg.TaxRatePercent = rate
	}
	if fs.Changed("strict") {
		cfg.StrictParties = f.strictParties
	}
	if fs.Changed("reject-negative") {
		cfg.RejectNegative = f.rejectNegative
	}
	if fs.Changed("font-dir") {
		cfg.PDFFontDir = f.fontDir
	}
	return cfg.Validate()
}
