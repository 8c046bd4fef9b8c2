package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/npillmayer/langid/langidmp"
	"github.com/npillmayer/langid/langidpb"
	"github.com/npillmayer/langid/model"
	"github.com/npillmayer/langid/table"
)

var convertCmd = &cobra.Command{
	Use:   "convert input output",
	Short: "Convert a model between protobuf and msgpack",
	Long: `Convert reads a model in either format and writes it in the format
given by --to, or, by default, the one suggested by the extension of the
output file (.msgpack or .mp for msgpack, protobuf otherwise).`,
	Args: cobra.ExactArgs(2),
	RunE: runConvert,
}

var compileCmd = &cobra.Command{
	Use:   "compile table output",
	Short: "Compile a feature table into a model file",
	Long: `Compile reads a plain text feature table, listing languages, priors
and n-gram probabilities, builds the automaton and writes the model.`,
	Args: cobra.ExactArgs(2),
	RunE: runCompile,
}

func init() {
	convertCmd.Flags().String("to", "", "output encoding (protobuf|msgpack)")
	compileCmd.Flags().String("to", "", "output encoding (protobuf|msgpack)")
}

func runConvert(cmd *cobra.Command, args []string) error {
	if _, err := loadSettings(cmd); err != nil {
		return err
	}
	m, err := loadModel(args[0])
	if err != nil {
		return err
	}
	to, _ := cmd.Flags().GetString("to")
	return writeModel(args[1], m, to)
}

func runCompile(cmd *cobra.Command, args []string) error {
	if _, err := loadSettings(cmd); err != nil {
		return err
	}
	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()
	m, err := table.Compile(f)
	if err != nil {
		return fmt.Errorf("%s: %w", args[0], err)
	}
	to, _ := cmd.Flags().GetString("to")
	return writeModel(args[1], m, to)
}

func encoding(path, to string) (string, error) {
	switch to {
	case "protobuf", "msgpack":
		return to, nil
	case "":
		switch strings.ToLower(filepath.Ext(path)) {
		case ".msgpack", ".mp":
			return "msgpack", nil
		}
		return "protobuf", nil
	}
	return "", fmt.Errorf("unknown model encoding %q", to)
}

func writeModel(path string, m *model.Model, to string) error {
	enc, err := encoding(path, to)
	if err != nil {
		return err
	}
	var data []byte
	if enc == "msgpack" {
		if data, err = langidmp.Encode(m); err != nil {
			return err
		}
	} else {
		data = langidpb.Encode(m)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return err
	}
	tracer().Infof("wrote %s model %v to %s", enc, m, path)
	return nil
}
