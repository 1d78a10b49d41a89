package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"offr-io/go_backend/internal/app"
	"offr-io/go_backend/internal/domain/quote"
	"offr-io/go_backend/internal/domain/quote/pdf"
)

func newQuoteCmd(a *App) *cobra.Command {
	var out, lang string
	var asJSON bool
	var qf quoteFlags

	cmd := &cobra.Command{
		Use:   "quote <job-file>",
		Short: "Assemble a quote from a YAML or JSON job file and write its PDF",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.LoadConfig()
			if err != nil {
				return err
			}
			if err := qf.apply(cmd.Flags(), &cfg); err != nil {
				return err
			}

			job, err := readJobFile(args[0])
			if err != nil {
				return err
			}
			req := job.request()
			if cmd.Flags().Changed("lang") {
				req.Language = lang
			}

			if len(req.Items) == 0 {
				if strings.TrimSpace(req.Description) == "" {
					return fmt.Errorf("job file has neither items nor a description")
				}
				items, err := app.NewSource(cfg).Items(cmd.Context(), req.Description, req.Language)
				if err != nil {
					return fmt.Errorf("generating items: %w", err)
				}
				req.Items = items
			}

			q, err := quote.NewAssembler(a.Clock, app.AssemblerOptions(cfg)).Assemble(req)
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(q)
			}
			return writeDocument(cmd, app.NewPDF(cfg), q, out)
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", `output file (default devis-<number>.pdf, "-" for stdout)`)
	cmd.Flags().StringVar(&lang, "lang", "", "quote language (en|fr), overrides the job file")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the assembled quote as JSON instead of writing a PDF")
	qf.register(cmd.Flags())

	return cmd
}

func newRenderCmd(a *App) *cobra.Command {
	var out, fontDir string

	cmd := &cobra.Command{
		Use:   "render <quote.json>",
		Short: "Write the PDF of an assembled quote",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.LoadConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("font-dir") {
				cfg.PDFFontDir = fontDir
			}

			b, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading quote: %w", err)
			}
			var q quote.Quote
			if err := json.Unmarshal(b, &q); err != nil {
				return fmt.Errorf("parsing quote %s: %w", args[0], err)
			}
			if len(q.Items) == 0 {
				return fmt.Errorf("invalid quote data: at least one item required")
			}
			return writeDocument(cmd, app.NewPDF(cfg), q, out)
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", `output file (default devis-<number>.pdf, "-" for stdout)`)
	cmd.Flags().StringVar(&fontDir, "font-dir", "", "directory holding DejaVuSans.ttf and DejaVuSans-Bold.ttf")

	return cmd
}

func writeDocument(cmd *cobra.Command, gen pdf.Generator, q quote.Quote, out string) error {
	doc, err := pdf.Render(gen, q)
	if err != nil {
		return err
	}

	if out == "-" {
		w := cmd.OutOrStdout()
		if isTerminal(w) {
			return fmt.Errorf("refusing to write PDF to a terminal; redirect stdout or use --out")
		}
		_, err := w.Write(doc.Content)
		return err
	}

	if out == "" {
		out = doc.Filename
	}
	if err := os.WriteFile(out, doc.Content, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", out, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%s, total %s)\n", out, q.QuoteNumber, q.Total.StringFixed(2))
	return nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
