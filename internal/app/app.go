package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"offr-io/go_backend/internal/app/config"
	apphttp "offr-io/go_backend/internal/app/http"
	"offr-io/go_backend/internal/app/http/handlers"
	"offr-io/go_backend/internal/domain/quote"
	"offr-io/go_backend/internal/domain/quote/pdf/gofpdf"
	"offr-io/go_backend/internal/domain/quote/source"
	"offr-io/go_backend/internal/infra/db/postgres"
	"offr-io/go_backend/internal/infra/db/sqlite"
	"offr-io/go_backend/internal/infra/openai"
)

func AssemblerOptions(cfg config.Config) quote.Options {
	return quote.Options{
		TaxRatePercent: cfg.TaxRatePercent,
		StrictParties:  cfg.StrictParties,
		RejectNegative: cfg.RejectNegative,
	}
}

func NewAssembler(cfg config.Config) *quote.Assembler {
	return quote.NewAssembler(quote.SystemClock(), AssemblerOptions(cfg))
}

func NewPDF(cfg config.Config) *gofpdf.Generator {
	return gofpdf.New(gofpdf.WithFontDir(cfg.PDFFontDir))
}

func NewSource(cfg config.Config) source.Source {
	if cfg.ItemSource != config.SourceOpenAI {
		return source.Mock{}
	}
	oc := openai.DefaultConfig()
	oc.BaseURL = cfg.OpenAIBaseURL
	oc.APIKey = cfg.OpenAIAPIKey
	oc.Model = cfg.OpenAIModel
	oc.Timeout = cfg.OpenAITimeout
	oc.MaxRetries = cfg.OpenAIMaxRetries
	return openai.NewItemSource(openai.New(oc, nil))
}

// OpenStore uses PostgreSQL when DATABASE_URL is set and SQLite otherwise.
// The returned func releases the connection.
func OpenStore(ctx context.Context, cfg config.Config) (quote.Store, func(), error) {
	if cfg.DatabaseURL != "" {
		db, err := postgres.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("postgres: %w", err)
		}
		if err := db.Migrate(ctx); err != nil {
			db.Close()
			return nil, nil, fmt.Errorf("postgres migrate: %w", err)
		}
		log.Printf("store: postgres")
		return postgres.NewQuoteStore(db), db.Close, nil
	}

	db, err := sqlite.Open(cfg.SQLitePath)
	if err != nil {
		return nil, nil, fmt.Errorf("sqlite: %w", err)
	}
	log.Printf("store: sqlite path=%s", cfg.SQLitePath)
	return sqlite.NewQuoteStore(db), func() { db.Close() }, nil
}

// Run serves the HTTP API until ctx is cancelled.
func Run(ctx context.Context, cfg config.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	store, closeStore, err := OpenStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	if cfg.InternalToken == "" {
		log.Printf("warning: INTERNAL_TOKEN is empty, /v1 is not protected")
	}

	h := handlers.New(cfg, store, NewSource(cfg), NewAssembler(cfg), NewPDF(cfg))
	router := apphttp.NewRouter(cfg, h)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("listening on %s source=%s", cfg.HTTPAddr, cfg.ItemSource)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Printf("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
