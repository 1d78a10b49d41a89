package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	SourceMock   = "mock"
	SourceOpenAI = "openai"
)

type Config struct {
	HTTPAddr        string
	DatabaseURL     string
	SQLitePath      string
	InternalToken   string
	CORSAllowOrigin string

	ItemSource       string
	OpenAIBaseURL    string
	OpenAIAPIKey     string
	OpenAIModel      string
	OpenAITimeout    time.Duration
	OpenAIMaxRetries int

	TaxRatePercent decimal.Decimal
	StrictParties  bool
	RejectNegative bool
	PDFFontDir     string
}

// Load reads the configuration from the environment.
func Load() (Config, error) {
	var errs []string
	cfg := Config{
		HTTPAddr:        env("HTTP_ADDR", ":8080"),
		DatabaseURL:     env("DATABASE_URL", ""),
		SQLitePath:      env("SQLITE_PATH", "data/offr.db"),
		InternalToken:   env("INTERNAL_TOKEN", ""),
		CORSAllowOrigin: env("CORS_ALLOW_ORIGIN", "*"),
		ItemSource:      strings.ToLower(env("ITEM_SOURCE", SourceMock)),
		OpenAIBaseURL:   env("OPENAI_BASE_URL", "https://api.openai.com"),
		OpenAIAPIKey:    env("OPENAI_API_KEY", ""),
		OpenAIModel:     env("OPENAI_MODEL", "gpt-4o-mini"),
		PDFFontDir:      env("PDF_FONT_DIR", ""),
	}

	ms, err := envInt("OPENAI_TIMEOUT_MS", 30000)
	if err != nil {
		errs = append(errs, err.Error())
	}
	cfg.OpenAITimeout = time.Duration(ms) * time.Millisecond
	if cfg.OpenAIMaxRetries, err = envInt("OPENAI_MAX_RETRIES", 1); err != nil {
		errs = append(errs, err.Error())
	}
	if cfg.TaxRatePercent, err = envDecimal("TAX_RATE_PERCENT", decimal.NewFromInt(20)); err != nil {
		errs = append(errs, err.Error())
	}
	if cfg.StrictParties, err = envBool("QUOTE_STRICT_PARTIES", false); err != nil {
		errs = append(errs, err.Error())
	}
	if cfg.RejectNegative, err = envBool("QUOTE_REJECT_NEGATIVE", false); err != nil {
		errs = append(errs, err.Error())
	}

	if err := cfg.Validate(); err != nil {
		errs = append(errs, err.Error())
	}
	if len(errs) > 0 {
		return Config{}, fmt.Errorf("invalid config: %s", strings.Join(errs, "; "))
	}
	return cfg, nil
}

// Validate checks the cross-field rules. Flags may change fields after Load,
// so callers re-run it before use.
func (c Config) Validate() error {
	switch c.ItemSource {
	case SourceMock:
	case SourceOpenAI:
		if c.OpenAIAPIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY is required when ITEM_SOURCE=%s", SourceOpenAI)
		}
	default:
		return fmt.Errorf("ITEM_SOURCE must be %q or %q, got %q", SourceMock, SourceOpenAI, c.ItemSource)
	}
	if c.TaxRatePercent.IsNegative() {
		return fmt.Errorf("TAX_RATE_PERCENT must not be negative")
	}
	if c.OpenAIMaxRetries < 0 {
		return fmt.Errorf("OPENAI_MAX_RETRIES must not be negative")
	}
	return nil
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func envInt(k string, def int) (int, error) {
	v := os.Getenv(k)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return def, fmt.Errorf("%s: not an integer: %q", k, v)
	}
	return n, nil
}

func envBool(k string, def bool) (bool, error) {
	v := os.Getenv(k)
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(strings.TrimSpace(v))
	if err != nil {
		return def, fmt.Errorf("%s: not a boolean: %q", k, v)
	}
	return b, nil
}

func envDecimal(k string, def decimal.Decimal) (decimal.Decimal, error) {
	v := os.Getenv(k)
	if v == "" {
		return def, nil
	}
	d, err := decimal.NewFromString(strings.TrimSpace(v))
	if err != nil {
		return def, fmt.Errorf("%s: not a number: %q", k, v)
	}
	return d, nil
}
