package main

import (
	"errors"
	"fmt"
	"math/big"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/joho/godotenv"

	"github.com/zephyrtronium/exptree"
)

var ErrNegativeMaxDepth = errors.New("max_depth must not be negative")

// Config holds the settings of a calculator session.
type Config struct {
	// Prompt is printed before reading each line.
	Prompt string `yaml:"prompt"`
	// Sentinel is the line that ends the session.
	Sentinel string `yaml:"sentinel"`
	// Precision is the precision of calculations in bits.
	Precision uint `yaml:"precision"`
	// Constants binds pi and e.
	Constants bool `yaml:"constants"`
	// Digits is the number of significant digits printed for values. A
	// negative count prints every digit the precision supports.
	Digits int `yaml:"digits"`
	// MaxDepth limits expression nesting; 0 means no limit.
	MaxDepth int `yaml:"max_depth"`
	// Variables maps names to expressions giving their values.
	Variables map[string]string `yaml:"variables"`
}

func getDefaultConfig() *Config {
	return &Config{
		Prompt:    "give an expression: ",
		Sentinel:  "!",
		Precision: 64,
		Digits:    6,
		MaxDepth:  10,
	}
}

// LoadConfig reads the configuration file at configPath. A missing file gives
// the default configuration, and so do keys missing from the file.
func LoadConfig(configPath string) (*Config, error) {
	_, err := os.Stat(configPath)
	if os.IsNotExist(err) {
		return getDefaultConfig(), nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Strict mode rejects unknown fields.
	config := getDefaultConfig()
	err = yaml.UnmarshalWithOptions(data, config, yaml.Strict())
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	applyDefaults(config)
	return config, nil
}

func validateConfig(config *Config) error {
	if config.MaxDepth < 0 {
		return ErrNegativeMaxDepth
	}
	return nil
}

func applyDefaults(config *Config) {
	def := getDefaultConfig()
	if config.Prompt == "" {
		config.Prompt = def.Prompt
	}
	if config.Sentinel == "" {
		config.Sentinel = def.Sentinel
	}
	if config.Precision == 0 {
		config.Precision = def.Precision
	}
	if config.Digits == 0 {
		config.Digits = def.Digits
	}
}

// NewContext creates the evaluation context the configuration describes.
// Variable values are evaluated independently of each other, with the
// constants bound if they are enabled.
func (config *Config) NewContext() (*exptree.Context, error) {
	opts := []exptree.ContextOption{exptree.Prec(config.Precision)}
	if config.Constants {
		opts = append(opts, exptree.Constants())
	}
	base := exptree.NewContext(opts...)
	vars := make(map[string]*big.Float, len(config.Variables))
	for name, src := range config.Variables {
		n, err := exptree.ParseString(src, config.ParseOptions()...)
		if err != nil {
			return nil, fmt.Errorf("setting %s: %w", name, err)
		}
		v, err := evaluate(base, n)
		if err != nil {
			return nil, fmt.Errorf("setting %s: %w", name, err)
		}
		vars[name] = v
	}
	return exptree.NewContext(append(opts, exptree.SetVars(vars))...), nil
}

// ParseOptions returns the parsing options the configuration describes.
func (config *Config) ParseOptions() []exptree.ParseOption {
	return []exptree.ParseOption{exptree.MaxDepth(config.MaxDepth)}
}

func loadEnvFiles() error {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			return fmt.Errorf("failed to load .env file: %w", err)
		}
	}
	return nil
}
