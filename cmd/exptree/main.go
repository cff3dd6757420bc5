package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fatih/color"
)

// CLI represents the command-line interface. Flags left unset keep the values
// from the configuration file.
type CLI struct {
	Config    string   `help:"Configuration file path" default:"exptree.yaml" env:"EXPTREE_CONFIG"`
	Prompt    string   `help:"Prompt printed before each line" env:"EXPTREE_PROMPT"`
	Sentinel  string   `help:"Line that ends the session" env:"EXPTREE_SENTINEL"`
	Prec      uint     `help:"Precision of calculations in bits" short:"p" env:"EXPTREE_PREC"`
	Digits    int      `help:"Significant digits printed for values (-1 for all)" short:"d"`
	Given     []string `help:"name=value variable definition (any number of times)" sep:"none"`
	Constants bool     `help:"Bind the constants pi and e"`
	MaxDepth  int      `help:"Maximum expression nesting (default 10)" name:"max-depth"`
	NoColor   bool     `help:"Disable colored output"`
	Verbose   bool     `help:"Log parser decisions" short:"v"`
	Exprs     []string `arg:"" optional:"" help:"Expressions to evaluate instead of reading standard input"`
}

// apply overrides configuration values with the flags that were set.
func (cli *CLI) apply(config *Config) error {
	if cli.Prompt != "" {
		config.Prompt = cli.Prompt
	}
	if cli.Sentinel != "" {
		config.Sentinel = cli.Sentinel
	}
	if cli.Prec != 0 {
		config.Precision = cli.Prec
	}
	if cli.Digits != 0 {
		config.Digits = cli.Digits
	}
	if cli.Constants {
		config.Constants = true
	}
	if cli.MaxDepth < 0 {
		return ErrNegativeMaxDepth
	}
	if cli.MaxDepth != 0 {
		config.MaxDepth = cli.MaxDepth
	}
	for _, s := range cli.Given {
		d := strings.SplitN(s, "=", 2)
		if len(d) != 2 {
			return fmt.Errorf(`variable definitions must be "name=value", not %q`, s)
		}
		if config.Variables == nil {
			config.Variables = make(map[string]string)
		}
		config.Variables[strings.TrimSpace(d[0])] = strings.TrimSpace(d[1])
	}
	return nil
}

// Run runs the calculator and returns the process exit code.
func (cli *CLI) Run(in io.Reader, out, errs io.Writer) (int, error) {
	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(errs, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	if cli.NoColor {
		color.NoColor = true
	}

	config, err := LoadConfig(cli.Config)
	if err != nil {
		return 1, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cli.apply(config); err != nil {
		return 1, err
	}
	logger.Debug("configuration loaded", slog.String("path", cli.Config), slog.Uint64("precision", uint64(config.Precision)))

	session, err := NewSession(config, out, logger)
	if err != nil {
		return 1, err
	}
	if len(cli.Exprs) > 0 {
		if session.EvalAll(cli.Exprs) > 0 {
			return 1, nil
		}
		return 0, nil
	}
	if err := session.Run(in); err != nil {
		return 1, err
	}
	return 0, nil
}

func main() {
	// Environment files come first so that they can supply flag values.
	if err := loadEnvFiles(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	var cli CLI
	kong.Parse(&cli,
		kong.Name("exptree"),
		kong.Description("Parse arithmetic expressions into trees and evaluate them."),
		kong.UsageOnError(),
	)
	code, err := cli.Run(os.Stdin, os.Stdout, os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	os.Exit(code)
}
