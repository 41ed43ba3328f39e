// Package render turns a line level change stream into a bounded list of
// finished display rows: context windows around each change, styled change
// rows, and gap and truncation markers. The whole render is one pass over the
// stream with per-call state, so a renderer is as share-safe as its inputs.
package render

import (
	"fmt"
	"strings"

	"github.com/samsaffron/term-diff/internal/diff"
)

// Render walks a change stream over the old text and returns the finished
// rows in order. Equal inputs yield no rows. The only error is a change
// stream that does not describe oldLines; truncation by the row budgets is
// reported in-band as marker rows.
func Render(oldLines []string, changes []diff.Change, opts Options) ([]string, error) {
	r := &renderer{
		lines:     oldLines,
		opts:      opts.normalized(),
		pw:        prefixWidth(len(oldLines)),
		lastShown: -1,
		pending:   -1,
	}
	if err := r.run(changes); err != nil {
		return nil, err
	}
	return r.chunks, nil
}

// Text renders the diff between two texts in one call.
func Text(oldText, newText string, opts Options) ([]string, error) {
	return Render(diff.SplitLines(oldText), diff.Lines(oldText, newText), opts)
}

type renderer struct {
	lines  []string
	opts   Options
	pw     int // prefix column width
	chunks []string

	line      int // current position in the old text
	lastShown int // last old line written out, -1 before any
	pending   int // start of a deferred post-context window, -1 when none

	total   int
	perLine int
	halted  bool

	// marker is the style a budget marker inherits from the change kind in
	// progress; nil outside styled change rows.
	marker func(string) string
}

func (r *renderer) run(changes []diff.Change) error {
	for _, c := range changes {
		if r.halted {
			return nil
		}
		switch c.Op {
		case diff.OpEqual:
			if c.Lines < 0 || r.line+c.Lines > len(r.lines) {
				return fmt.Errorf("%w: equal run of %d lines at line %d", diff.ErrInvalidStream, c.Lines, r.line+1)
			}
			r.line += c.Lines
		case diff.OpDelete:
			if err := r.checkLine(c); err != nil {
				return err
			}
			r.removed(c.Line)
		case diff.OpInsert:
			r.added(c.Text)
		case diff.OpReplace:
			if err := r.checkLine(c); err != nil {
				return err
			}
			if err := diff.ValidateSpans(r.lines[c.Line], c.Spans); err != nil {
				return fmt.Errorf("line %d: %w", c.Line+1, err)
			}
			r.replaced(c.Line, c.Spans)
		default:
			return fmt.Errorf("%w: unknown op %d", diff.ErrInvalidStream, int(c.Op))
		}
	}
	if !r.halted {
		r.finish()
	}
	return nil
}

func (r *renderer) checkLine(c diff.Change) error {
	if c.Line != r.line {
		return fmt.Errorf("%w: %s at line %d, stream position is %d", diff.ErrInvalidStream, c.Op, c.Line+1, r.line+1)
	}
	if c.Line >= len(r.lines) {
		return fmt.Errorf("%w: line %d beyond input of %d lines", diff.ErrInvalidStream, c.Line+1, len(r.lines))
	}
	return nil
}

// removed emits one styled row for a deleted line and defers its post-context.
func (r *renderer) removed(line int) {
	if !r.window(line) {
		return
	}
	r.marker = r.opts.Styler.Removed
	r.push(r.row(line+1, r.lines[line], r.opts.Styler.Removed))
	r.marker = nil
	r.lastShown = line
	r.pending = line + 1
	r.line = line + 1
}

// added emits one styled, prefix-less row for an inserted line. The position
// in the old text does not advance; the insertion has no line there.
func (r *renderer) added(text string) {
	if !r.window(r.line) {
		return
	}
	r.marker = r.opts.Styler.Added
	r.push(r.row(0, text, r.opts.Styler.Added))
	r.marker = nil
	r.pending = r.line
}

// replaced emits the merged span entries of a changed line, each wrapped to
// width with continuation rows indented under the body column. The per line
// budget bounds the rows one line may spend.
func (r *renderer) replaced(line int, spans []diff.Span) {
	if !r.window(line) {
		return
	}
	r.perLine = 0
	for i, text := range r.entries([]rune(r.lines[line]), spans) {
		num := 0
		if i == 0 {
			num = line + 1
		}
		wrapped := Wrap(r.prefix(num)+text, r.pw, r.opts.Width)
		stop := false
		for _, row := range strings.Split(wrapped, "\n") {
			if !r.pushEntry(row) {
				stop = true
				break
			}
		}
		if stop {
			break
		}
	}
	r.lastShown = line
	r.pending = line + 1
	r.line = line + 1
}

// push appends one finished row unless the global ceiling is already met, in
// which case a single truncation marker ends the whole render. The emitted
// row count can therefore reach MaxRows+1 but never beyond.
func (r *renderer) push(row string) bool {
	if r.halted {
		return false
	}
	if r.total >= r.opts.MaxRows {
		r.chunks = append(r.chunks, r.markerRow(r.marker))
		r.halted = true
		return false
	}
	r.chunks = append(r.chunks, row)
	r.total++
	return true
}

// pushEntry is push with the per line ceiling checked behind the global one:
// its marker closes only the current line's output and rendering carries on
// with the next record.
func (r *renderer) pushEntry(row string) bool {
	if r.halted {
		return false
	}
	if r.total >= r.opts.MaxRows {
		r.chunks = append(r.chunks, r.markerRow(r.marker))
		r.halted = true
		return false
	}
	if r.perLine >= r.opts.MaxRowsPerLine {
		r.chunks = append(r.chunks, r.markerRow(r.marker))
		r.total++
		return false
	}
	r.chunks = append(r.chunks, row)
	r.total++
	r.perLine++
	return true
}
