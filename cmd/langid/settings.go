package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/npillmayer/schuko/tracing"
	"github.com/spf13/cobra"

	"github.com/npillmayer/langid"
	"github.com/npillmayer/langid/builtin"
	"github.com/npillmayer/langid/internal/config"
	"github.com/npillmayer/langid/model"
)

func tracer() tracing.Trace {
	return tracing.Select("langid")
}

// loadSettings merges the configuration file with the flags given to cmd.
func loadSettings(cmd *cobra.Command) (config.Config, error) {
	flags := cmd.Flags()
	verbose, _ := flags.GetCount("verbose")
	setupTracing(verbose)
	path, _ := flags.GetString("config")
	cfg, file, err := config.Resolve(path)
	if err != nil {
		return cfg, err
	}
	if file != "" {
		tracer().Debugf("settings read from %s", file)
	}
	if flags.Changed("model") {
		cfg.Model, _ = flags.GetString("model")
	}
	if flags.Changed("languages") {
		cfg.Languages, _ = flags.GetStringSlice("languages")
	}
	if flags.Changed("color") {
		cfg.Color, _ = flags.GetString("color")
	}
	if flags.Changed("format") {
		cfg.Format, _ = flags.GetString("format")
	}
	if flags.Lookup("jobs") != nil && flags.Changed("jobs") {
		cfg.Jobs, _ = flags.GetInt("jobs")
	}
	if flags.Lookup("top") != nil && flags.Changed("top") {
		cfg.Top, _ = flags.GetInt("top")
	}
	return cfg, cfg.Validate()
}

func setupTracing(verbosity int) {
	switch {
	case verbosity >= 2:
		tracer().SetTraceLevel(tracing.LevelDebug)
	case verbosity == 1:
		tracer().SetTraceLevel(tracing.LevelInfo)
	default:
		tracer().SetTraceLevel(tracing.LevelError)
	}
}

func loadModel(path string) (*model.Model, error) {
	if path == "" {
		return builtin.Model(), nil
	}
	return langid.LoadModel(path)
}

func openIdentifier(cfg config.Config) (*langid.Identifier, error) {
	m, err := loadModel(cfg.Model)
	if err != nil {
		return nil, err
	}
	id := langid.New(m)
	if err := id.SetLanguages(cfg.Languages...); err != nil {
		return nil, err
	}
	return id, nil
}

// inputText joins the arguments, or reads standard input if there are none.
func inputText(args []string, stdin io.Reader) ([]byte, error) {
	if len(args) > 0 {
		return []byte(strings.Join(args, " ")), nil
	}
	text, err := io.ReadAll(stdin)
	if err != nil {
		return nil, fmt.Errorf("reading standard input: %w", err)
	}
	return text, nil
}

func useColor(mode string) bool {
	return mode == "always" || (mode == "auto" && isTerminal(os.Stdout))
}
