package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/samsaffron/term-diff/internal/render"
	"github.com/samsaffron/term-diff/internal/ui"
	"github.com/samsaffron/term-diff/internal/update"
)

// Version is set at build time via -ldflags "-X".
var Version = "dev"

var (
	rootFlags  = &RenderFlags{}
	rootFormat string
	debugLogs  bool
)

func init() {
	update.SetupUpdateChecks(rootCmd, Version)
	cobra.OnInitialize(setupLogging)
	rootCmd.PersistentFlags().BoolVar(&debugLogs, "debug", false, "Enable debug logging")
	rootCmd.Flags().StringVarP(&rootFormat, "format", "f", "pretty", "Output format: pretty or unified")
	AddRenderFlags(rootCmd, rootFlags)
}

var rootCmd = &cobra.Command{
	Use:   "term-diff OLD NEW",
	Short: "Readable, bounded diffs for the terminal",
	Long: `term-diff compares two files and prints a compact, bounded view of
what changed: context lines around each change, character level
highlights inside replaced lines, and hard row budgets so a huge diff
never floods the terminal.

Examples:
  term-diff old.go new.go               # compact view
  term-diff old.go new.go -f unified    # classic unified view
  cat new.txt | term-diff old.txt -     # one side from stdin

  term-diff data old.json new.json      # structural diff for JSON/YAML
  term-diff dir before/ after/          # compare two directory trees
  term-diff watch old.cfg new.cfg       # re-render when either file changes`,
	Args:              cobra.ExactArgs(2),
	RunE:              runDiff,
	SilenceUsage:      true,
	Version:           Version,
	CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func setupLogging() {
	level := slog.LevelWarn
	if debugLogs {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

func runDiff(cmd *cobra.Command, args []string) error {
	if rootFormat != "pretty" && rootFormat != "unified" {
		return fmt.Errorf("unknown format %q (expected pretty or unified)", rootFormat)
	}

	oldPath, newPath := args[0], args[1]
	oldContent, newContent, err := readOperands(oldPath, newPath)
	if err != nil {
		return err
	}
	cfg := loadConfig(cmd, rootFlags)

	// Highlighting keys off the file name; prefer the side that has one.
	hlPath := newPath
	if hlPath == "-" {
		hlPath = oldPath
	}

	if rootFormat == "unified" {
		ui.PrintUnifiedDiff(os.Stdout, hlPath, oldContent, newContent, cfg.ColorsEnabled(), cfg.Render.Highlight)
		return nil
	}

	opts := renderOptions(cfg, stylerFor(cfg), displayFor(cfg, hlPath))
	rows, err := render.Text(oldContent, newContent, opts)
	if err != nil {
		return err
	}
	slog.Debug("rendered diff", "rows", len(rows), "width", opts.Width)
	for _, row := range rows {
		fmt.Println(row)
	}
	return nil
}
