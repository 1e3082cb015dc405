package internal

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// Environment variables read after the optional .env file is loaded
const (
	EnvStore    = "EXPENSE_TRACKER_STORE"
	EnvCurrency = "EXPENSE_TRACKER_CURRENCY"
	EnvSymbol   = "EXPENSE_TRACKER_SYMBOL"
	EnvLocale   = "EXPENSE_TRACKER_LOCALE"
)

type Config struct {
	// Store is the path of the expenses file
	Store string `yaml:"store,omitempty"`

	// Currency is an ISO 4217 code used to pick the display glyph
	Currency string `yaml:"currency,omitempty"`

	// Symbol overrides the glyph derived from Currency
	Symbol string `yaml:"symbol,omitempty"`

	// Locale is a BCP 47 tag (e.g. "en-IN") controlling digit grouping
	Locale string `yaml:"locale,omitempty"`
}

// DefaultConfigPath returns the default config file path (~/.expense-tracker/config.yaml)
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".expense-tracker", "config.yaml")
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	if cfg.Locale != "" {
		if _, err := language.Parse(cfg.Locale); err != nil {
			return nil, fmt.Errorf("invalid locale %q: %w", cfg.Locale, err)
		}
	}

	return &cfg, nil
}

// LoadConfigOrDefault loads path if given (it must exist), otherwise the default
// config file if it exists, otherwise an empty config
func LoadConfigOrDefault(path string) (*Config, error) {
	if path != "" {
		return LoadConfig(path)
	}
	defaultPath := DefaultConfigPath()
	if defaultPath == "" {
		return &Config{}, nil
	}
	cfg, err := LoadConfig(defaultPath)
	if errors.Is(err, fs.ErrNotExist) {
		return &Config{}, nil
	}
	return cfg, err
}

func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	// Create parent directories if they don't exist
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating directory %s: %w", dir, err)
		}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// LoadDotEnv loads .env from the working directory when it exists.
// Variables already set in the environment win over the file.
func LoadDotEnv() error {
	err := godotenv.Load()
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("loading .env: %w", err)
	}
	return nil
}

// Overrides are values given explicitly on the command line
type Overrides struct {
	Store    string
	Currency string
}

// Settings are the resolved values an invocation runs with
type Settings struct {
	StorePath string
	Currency  CurrencyOptions
}

// ResolveSettings merges flag > environment > config file > default
func ResolveSettings(cfg *Config, flags Overrides, getenv func(string) string) (Settings, error) {
	if cfg == nil {
		cfg = &Config{}
	}
	if getenv == nil {
		getenv = os.Getenv
	}

	s := Settings{
		StorePath: firstNonEmpty(flags.Store, getenv(EnvStore), cfg.Store, DefaultStorePath),
		Currency: CurrencyOptions{
			Code:   firstNonEmpty(flags.Currency, getenv(EnvCurrency), cfg.Currency),
			Symbol: firstNonEmpty(getenv(EnvSymbol), cfg.Symbol),
			Locale: language.Und,
		},
	}

	if locale := firstNonEmpty(getenv(EnvLocale), cfg.Locale); locale != "" {
		tag, err := language.Parse(locale)
		if err != nil {
			return Settings{}, fmt.Errorf("%w: locale %q: %v", ErrInvalidArgument, locale, err)
		}
		s.Currency.Locale = tag
	}

	return s, nil
}

// GenerateConfigTemplate creates a config with the built-in defaults filled in
func GenerateConfigTemplate() *Config {
	return &Config{
		Store:    DefaultStorePath,
		Currency: DefaultCurrency,
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
