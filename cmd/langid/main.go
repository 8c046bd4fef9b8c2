// Command langid identifies the language of texts from the command line.
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var rootCmd = &cobra.Command{
	Use:   "langid",
	Short: "Identify the natural language of texts",
	Long: `langid scores the byte n-grams of a text against a Naive Bayes
language model and reports the most probable languages.

Without --model the built-in model is used. Settings are read from
langid.toml in the working directory, or from the file given by --config;
flags override file settings.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(classifyCmd)
	rootCmd.AddCommand(rankCmd)
	rootCmd.AddCommand(batchCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(compileCmd)

	rootCmd.PersistentFlags().String("config", "", "configuration file (default ./langid.toml if present)")
	rootCmd.PersistentFlags().StringP("model", "m", "", "model file, protobuf or msgpack (default built-in)")
	rootCmd.PersistentFlags().StringSliceP("languages", "l", nil, "restrict to these languages")
	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|always|never)")
	rootCmd.PersistentFlags().String("format", "text", "output format (text|json)")
	rootCmd.PersistentFlags().CountP("verbose", "v", "trace model loading, repeat for debug output")
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
