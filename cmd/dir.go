package cmd

import (
	"bytes"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"unicode/utf8"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/charmbracelet/x/ansi"
	"github.com/spf13/cobra"

	"github.com/samsaffron/term-diff/internal/render"
	"github.com/samsaffron/term-diff/internal/ui"
)

var (
	dirFlags   = &RenderFlags{}
	dirInclude []string
	dirExclude []string
)

var dirCmd = &cobra.Command{
	Use:   "dir OLD NEW",
	Short: "Compare two directory trees",
	Long: `Walks two directory trees, diffs every file present on both sides and
lists files present on only one. Filters are glob patterns with **
support, matched against paths relative to the tree roots.

Examples:
  term-diff dir before/ after/
  term-diff dir a/ b/ --include '**/*.go'
  term-diff dir a/ b/ --exclude 'vendor/**' --exclude '**/*.lock'`,
	Args: cobra.ExactArgs(2),
	RunE: runDir,
}

func init() {
	dirCmd.Flags().StringArrayVar(&dirInclude, "include", nil, "Only compare files matching this glob (repeatable)")
	dirCmd.Flags().StringArrayVar(&dirExclude, "exclude", nil, "Skip files matching this glob (repeatable)")
	AddRenderFlags(dirCmd, dirFlags)
	rootCmd.AddCommand(dirCmd)
}

func runDir(cmd *cobra.Command, args []string) error {
	oldRoot, newRoot := args[0], args[1]
	cfg := loadConfig(cmd, dirFlags)

	oldFiles, err := listFiles(oldRoot)
	if err != nil {
		return err
	}
	newFiles, err := listFiles(newRoot)
	if err != nil {
		return err
	}
	slog.Debug("listed trees", "old", len(oldFiles), "new", len(newFiles))

	width := cfg.Render.Width
	if width <= 0 {
		width = ui.TerminalWidth()
	}
	styler := stylerFor(cfg)
	styles := ui.DefaultStyles()
	colors := cfg.ColorsEnabled()
	header := func(text string) string {
		if colors {
			return styles.Header.Render(text)
		}
		return text
	}
	muted := func(text string) string {
		if colors {
			return styles.Muted.Render(text)
		}
		return text
	}

	var onlyOld, onlyNew []string
	printed := false
	for _, rel := range sortedUnion(oldFiles, newFiles) {
		inOld, inNew := oldFiles[rel], newFiles[rel]
		if inOld && !inNew {
			onlyOld = append(onlyOld, rel)
			continue
		}
		if inNew && !inOld {
			onlyNew = append(onlyNew, rel)
			continue
		}

		oldData, err := os.ReadFile(filepath.Join(oldRoot, filepath.FromSlash(rel)))
		if err != nil {
			slog.Warn("skipping unreadable file", "path", rel, "error", err)
			continue
		}
		newData, err := os.ReadFile(filepath.Join(newRoot, filepath.FromSlash(rel)))
		if err != nil {
			slog.Warn("skipping unreadable file", "path", rel, "error", err)
			continue
		}
		if bytes.Equal(oldData, newData) {
			continue
		}

		if printed {
			fmt.Println()
		}
		printed = true
		fmt.Println(header(ansi.Truncate(rel, width, "...")))

		if !utf8.Valid(oldData) || !utf8.Valid(newData) {
			fmt.Println(muted("binary files differ"))
			continue
		}

		opts := renderOptions(cfg, styler, displayFor(cfg, rel))
		rows, err := render.Text(string(oldData), string(newData), opts)
		if err != nil {
			return err
		}
		for _, row := range rows {
			fmt.Println(row)
		}
	}

	if len(onlyOld) > 0 {
		if printed {
			fmt.Println()
		}
		printed = true
		fmt.Println(header("only in " + oldRoot + ":"))
		for _, rel := range onlyOld {
			fmt.Println("  " + rel)
		}
	}
	if len(onlyNew) > 0 {
		if printed {
			fmt.Println()
		}
		fmt.Println(header("only in " + newRoot + ":"))
		for _, rel := range onlyNew {
			fmt.Println("  " + rel)
		}
	}
	return nil
}

// listFiles returns the filter-matching files under root, keyed by
// slash-separated path relative to root.
func listFiles(root string) (map[string]bool, error) {
	files := make(map[string]bool)
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if matchFilters(rel) {
			files[rel] = true
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", root, err)
	}
	return files, nil
}

// matchFilters applies excludes first; an empty include list matches
// everything.
func matchFilters(rel string) bool {
	for _, pattern := range dirExclude {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return false
		}
	}
	if len(dirInclude) == 0 {
		return true
	}
	for _, pattern := range dirInclude {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
	}
	return false
}

func sortedUnion(a, b map[string]bool) []string {
	paths := make([]string, 0, len(a)+len(b))
	for p := range a {
		paths = append(paths, p)
	}
	for p := range b {
		if !a[p] {
			paths = append(paths, p)
		}
	}
	sort.Strings(paths)
	return paths
}
