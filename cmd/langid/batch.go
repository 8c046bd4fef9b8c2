package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/npillmayer/langid"
)

var batchCmd = &cobra.Command{
	Use:   "batch [file]",
	Short: "Classify every line of a file",
	Long: `Batch classifies each line of the given file, or of standard input,
and prints line number, language and confidence. Lines are classified
concurrently; the output keeps input order.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBatch,
}

func init() {
	batchCmd.Flags().IntP("jobs", "j", 0, "concurrent classifications (0 = GOMAXPROCS)")
}

// maxLine bounds the length of a single input line.
const maxLine = 1 << 20

func runBatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	m, err := loadModel(cfg.Model)
	if err != nil {
		return err
	}
	pool, err := langid.NewPool(m, cfg.Languages...)
	if err != nil {
		return err
	}
	in := cmd.InOrStdin()
	if len(args) == 1 {
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}
	lines, err := readLines(in)
	if err != nil {
		return err
	}
	tracer().Infof("classifying %d lines with %d jobs", len(lines), cfg.Jobs)
	results, err := pool.ClassifyAll(cmd.Context(), lines, cfg.Jobs)
	if err != nil {
		return err
	}
	p := newPrinter(cmd.OutOrStdout(), cfg.Format, useColor(cfg.Color))
	for i, lc := range results {
		if err := p.line(i+1, lc); err != nil {
			return err
		}
	}
	return nil
}

func readLines(r io.Reader) ([][]byte, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxLine)
	var lines [][]byte
	for scanner.Scan() {
		lines = append(lines, append([]byte(nil), scanner.Bytes()...))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}
	return lines, nil
}
