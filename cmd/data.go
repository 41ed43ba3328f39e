package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/samsaffron/term-diff/internal/structdiff"
	"github.com/samsaffron/term-diff/internal/ui"
)

var dataFlags = &RenderFlags{}

var dataCmd = &cobra.Command{
	Use:   "data OLD NEW",
	Short: "Structural diff for JSON or YAML documents",
	Long: `Compares two JSON or YAML documents by structure rather than by line.
Changes are reported per value under its path, so reordered keys and
reformatted documents produce no noise.

Examples:
  term-diff data old.json new.json
  term-diff data config.yaml config.new.yaml
  kubectl get deploy web -o yaml | term-diff data deployed.yaml -`,
	Args: cobra.ExactArgs(2),
	RunE: runData,
}

func init() {
	AddRenderFlags(dataCmd, dataFlags)
	rootCmd.AddCommand(dataCmd)
}

func runData(cmd *cobra.Command, args []string) error {
	oldRaw, newRaw, err := readOperands(args[0], args[1])
	if err != nil {
		return err
	}
	cfg := loadConfig(cmd, dataFlags)

	var oldVal, newVal any
	if err := yaml.Unmarshal([]byte(oldRaw), &oldVal); err != nil {
		return fmt.Errorf("parsing %s: %w", args[0], err)
	}
	if err := yaml.Unmarshal([]byte(newRaw), &newVal); err != nil {
		return fmt.Errorf("parsing %s: %w", args[1], err)
	}

	width := cfg.Render.Width
	if width <= 0 {
		width = ui.TerminalWidth()
	}
	rows := structdiff.Walk(oldVal, newVal, structdiff.Options{
		Width:  width,
		Styler: stylerFor(cfg),
	})
	for _, row := range rows {
		fmt.Println(row)
	}
	return nil
}
