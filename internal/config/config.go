package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/dotcommander/papereval/internal/balance"
	"github.com/dotcommander/papereval/internal/cue"
	"github.com/dotcommander/papereval/internal/scoring"
	"github.com/dotcommander/papereval/internal/types"
)

// DefaultPatterns are the batch discovery globs, relative to Root.
var DefaultPatterns = []string{
	"**/*.eval.json",
	"**/*.eval.yaml",
	"**/*.eval.yml",
}

// WeightOverrides are keyed dimension, family, metric key.
type WeightOverrides map[string]map[string]map[string]float64

// Config represents the papereval configuration
type Config struct {
	Root      string          `mapstructure:"root"`
	Patterns  []string        `mapstructure:"patterns"`
	Format    string          `mapstructure:"format"`
	Output    string          `mapstructure:"output"`
	Quiet     bool            `mapstructure:"quiet"`
	Verbose   bool            `mapstructure:"verbose"`
	Store     string          `mapstructure:"store"`
	Expertise int             `mapstructure:"expertise"`
	Balance   BalanceConfig   `mapstructure:"balance"`
	Weights   WeightOverrides `mapstructure:"weights"`

	// Tables are the built-in weight tables with Weights applied.
	Tables scoring.Tables `mapstructure:"-"`
}

// BalanceConfig contains the balanced-score settings
type BalanceConfig struct {
	Clamp         bool `mapstructure:"clamp"`
	DefaultRating int  `mapstructure:"defaultRating"`
}

// Calculator returns the balanced-score calculator for this configuration.
func (c *Config) Calculator() balance.Calculator {
	return balance.Calculator{Clamp: c.Balance.Clamp, DefaultRating: c.Balance.DefaultRating}
}

// LoadConfig loads configuration from various sources
func LoadConfig(rootPath string) (*Config, error) {
	viper.SetDefault("root", ".")
	viper.SetDefault("patterns", DefaultPatterns)
	viper.SetDefault("format", types.FormatConsole)
	viper.SetDefault("quiet", false)
	viper.SetDefault("verbose", false)
	viper.SetDefault("store", "")
	viper.SetDefault("expertise", balance.MinRating)
	viper.SetDefault("balance.clamp", true)
	viper.SetDefault("balance.defaultRating", balance.DefaultRating)

	// Config file locations
	configPaths := []string{".paperevalrc.json", ".paperevalrc.yaml", ".paperevalrc.yml"}
	for _, path := range configPaths {
		viper.SetConfigFile(path)
		if err := viper.ReadInConfig(); err == nil {
			break
		}
	}

	// Environment variables: PAPEREVAL_FORMAT, PAPEREVAL_BALANCE_CLAMP, ...
	viper.SetEnvPrefix("PAPEREVAL")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if rootPath != "" {
		config.Root = rootPath
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	tables, err := BuildTables(config.Weights)
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	config.Tables = tables

	return &config, nil
}

// validateConfig validates the configuration
func validateConfig(config *Config) error {
	switch config.Format {
	case types.FormatConsole, types.FormatJSON, types.FormatMarkdown:
	default:
		return fmt.Errorf("invalid format: %s. Must be 'console', 'json', or 'markdown'", config.Format)
	}

	if config.Format != types.FormatConsole && config.Output == "" {
		return fmt.Errorf("output file is required when format is not 'console'")
	}

	if config.Balance.DefaultRating < balance.MinRating || config.Balance.DefaultRating > balance.MaxRating {
		return fmt.Errorf("balance.defaultRating must be between %d and %d, got %d",
			balance.MinRating, balance.MaxRating, config.Balance.DefaultRating)
	}

	if config.Expertise < balance.MinRating || config.Expertise > balance.MaxRating {
		return fmt.Errorf("expertise must be between %d and %d, got %d",
			balance.MinRating, balance.MaxRating, config.Expertise)
	}

	if len(config.Patterns) == 0 {
		return fmt.Errorf("at least one discovery pattern is required")
	}

	return nil
}

// BuildTables checks overrides against the weights schema and applies them
// to the built-in tables. Every overridden table must still sum to 1.0.
func BuildTables(overrides WeightOverrides) (scoring.Tables, error) {
	if len(overrides) == 0 {
		return scoring.DefaultTables(), nil
	}

	validator := cue.NewValidator()
	if err := validator.LoadSchemas(); err != nil {
		return nil, err
	}
	errs, err := validator.ValidateWeights(overrides.asMap())
	if err != nil {
		return nil, fmt.Errorf("weights: %w", err)
	}
	if len(errs) > 0 {
		msgs := make([]string, len(errs))
		for i, e := range errs {
			msgs[i] = e.String()
		}
		return nil, fmt.Errorf("weights: %s", strings.Join(msgs, "; "))
	}

	tables, err := scoring.DefaultTables().WithOverrides(overrides)
	if err != nil {
		return nil, fmt.Errorf("weights: %w", err)
	}
	return tables, nil
}

func (w WeightOverrides) asMap() map[string]any {
	out := make(map[string]any, len(w))
	for dimension, families := range w {
		fm := make(map[string]any, len(families))
		for family, weights := range families {
			km := make(map[string]any, len(weights))
			for key, value := range weights {
				km[key] = value
			}
			fm[family] = km
		}
		out[dimension] = fm
	}
	return out
}
