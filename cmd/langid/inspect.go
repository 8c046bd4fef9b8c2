package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [model]",
	Short: "Print the cardinalities and languages of a model",
	Long: `Inspect loads a model, the built-in one if no file is given, and
prints its size and languages. --dump prints the statistics as a Go value.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInspect,
}

func init() {
	inspectCmd.Flags().Bool("dump", false, "dump model statistics")
}

type inspection struct {
	States        int      `json:"states"`
	Features      int      `json:"features"`
	Languages     []string `json:"languages"`
	OutputEntries int      `json:"output_entries"`
	Emitting      float64  `json:"emitting_ratio"`
	MaxOutputs    int      `json:"max_outputs"`
}

func runInspect(cmd *cobra.Command, args []string) error {
	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	path := cfg.Model
	if len(args) == 1 {
		path = args[0]
	}
	m, err := loadModel(path)
	if err != nil {
		return err
	}
	stats := m.Stats()
	out := cmd.OutOrStdout()
	if dump, _ := cmd.Flags().GetBool("dump"); dump {
		_, err := fmt.Fprint(out, spew.Sdump(stats))
		return err
	}
	info := inspection{
		States:        stats.States,
		Features:      stats.Features,
		Languages:     m.Labels(),
		OutputEntries: stats.OutputEntries,
		Emitting:      stats.EmittingRatio(),
		MaxOutputs:    stats.MaxOutputs,
	}
	if cfg.Format == "json" {
		return json.NewEncoder(out).Encode(info)
	}
	if path == "" {
		path = "built-in"
	}
	_, err = fmt.Fprintf(out, "model      %s\nstates     %d\nfeatures   %d\noutputs    %d (%.1f%% of states emit, at most %d)\nlanguages  %d: %s\n",
		path, info.States, info.Features, info.OutputEntries, 100*info.Emitting, info.MaxOutputs,
		len(info.Languages), strings.Join(info.Languages, " "))
	return err
}
