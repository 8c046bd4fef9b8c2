package main

import (
	"github.com/spf13/cobra"
)

var classifyCmd = &cobra.Command{
	Use:   "classify [text...]",
	Short: "Print the most probable language of a text",
	Long: `Classify prints the most probable language of the text given as
arguments, or of standard input if there are no arguments.`,
	RunE: runClassify,
}

var rankCmd = &cobra.Command{
	Use:   "rank [text...]",
	Short: "Print the most probable languages of a text, best first",
	RunE:  runRank,
}

func init() {
	rankCmd.Flags().IntP("top", "n", 5, "number of languages to print, 0 for all")
}

func runClassify(cmd *cobra.Command, args []string) error {
	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	id, err := openIdentifier(cfg)
	if err != nil {
		return err
	}
	defer id.Close()
	text, err := inputText(args, cmd.InOrStdin())
	if err != nil {
		return err
	}
	p := newPrinter(cmd.OutOrStdout(), cfg.Format, useColor(cfg.Color))
	return p.result(id.Classify(text))
}

func runRank(cmd *cobra.Command, args []string) error {
	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	id, err := openIdentifier(cfg)
	if err != nil {
		return err
	}
	defer id.Close()
	text, err := inputText(args, cmd.InOrStdin())
	if err != nil {
		return err
	}
	ranking := id.Rank(text)
	if cfg.Top > 0 && cfg.Top < len(ranking) {
		ranking = ranking[:cfg.Top]
	}
	p := newPrinter(cmd.OutOrStdout(), cfg.Format, useColor(cfg.Color))
	return p.ranking(ranking)
}
