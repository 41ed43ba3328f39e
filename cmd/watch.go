package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/samsaffron/term-diff/internal/config"
	"github.com/samsaffron/term-diff/internal/render"
	"github.com/samsaffron/term-diff/internal/signal"
	"github.com/samsaffron/term-diff/internal/ui"
	"github.com/samsaffron/term-diff/internal/watch"
)

var (
	watchFlags    = &RenderFlags{}
	watchDebounce time.Duration
)

var watchCmd = &cobra.Command{
	Use:   "watch OLD NEW",
	Short: "Re-render the diff whenever either file changes",
	Long: `Renders the diff between two files and keeps it on screen, redrawing
in place whenever either file is written. Editors that replace files on
save are handled. Press Ctrl-C to stop.

Examples:
  term-diff watch config.yaml config.new.yaml
  term-diff watch old.go new.go --debounce 1s`,
	Args: cobra.ExactArgs(2),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", watch.DefaultDebounce, "Quiet period after a change before redrawing")
	AddRenderFlags(watchCmd, watchFlags)
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	oldPath, newPath := args[0], args[1]
	if oldPath == "-" || newPath == "-" {
		return errors.New("watch needs two file paths, stdin cannot be watched")
	}
	cfg := loadConfig(cmd, watchFlags)

	ctx, cancel := signal.NotifyContext(cmd.Context())
	defer cancel()

	w, err := watch.New(watchDebounce, oldPath, newPath)
	if err != nil {
		return err
	}
	changes, err := w.Start()
	if err != nil {
		return err
	}
	defer w.Stop()

	width := cfg.Render.Width
	if width <= 0 {
		width = ui.TerminalWidth()
	}
	fw := ui.NewFrameWriter(os.Stdout, width)

	if err := drawWatchFrame(fw, cfg, oldPath, newPath); err != nil {
		return err
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-changes:
			// A save can briefly leave the file missing or half written;
			// keep the previous frame and wait for the next event.
			if err := drawWatchFrame(fw, cfg, oldPath, newPath); err != nil {
				slog.Warn("skipping frame", "error", err)
			}
		}
	}
}

func drawWatchFrame(fw *ui.FrameWriter, cfg *config.Config, oldPath, newPath string) error {
	oldData, err := os.ReadFile(oldPath)
	if err != nil {
		return err
	}
	newData, err := os.ReadFile(newPath)
	if err != nil {
		return err
	}

	opts := renderOptions(cfg, stylerFor(cfg), displayFor(cfg, newPath))
	rows, err := render.Text(string(oldData), string(newData), opts)
	if err != nil {
		return err
	}

	colors := cfg.ColorsEnabled()
	styles := ui.DefaultStyles()

	var b strings.Builder
	header := fmt.Sprintf("%s -> %s  %s", oldPath, newPath, time.Now().Format("15:04:05"))
	if colors {
		header = styles.Header.Render(header)
	}
	b.WriteString(header)
	b.WriteByte('\n')

	if len(rows) == 0 {
		idle := "files are identical"
		if colors {
			idle = styles.Muted.Render(idle)
		}
		b.WriteString(idle)
		b.WriteByte('\n')
	} else {
		for _, row := range rows {
			b.WriteString(row)
			b.WriteByte('\n')
		}
	}
	return fw.WriteFrame(b.String())
}
