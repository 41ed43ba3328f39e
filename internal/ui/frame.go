package ui

import (
	"io"
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// FrameWriter redraws a block of output in place. Each frame replaces the
// previous one by moving the cursor up over it and erasing to the end of
// the screen, the way live progress output does.
type FrameWriter struct {
	output    io.Writer
	width     int
	prevLines int
}

// NewFrameWriter creates a frame writer for a terminal of the given width.
// The width is used to count how many rows a frame occupies once long
// lines wrap.
func NewFrameWriter(output io.Writer, width int) *FrameWriter {
	return &FrameWriter{
		output: output,
		width:  width,
	}
}

// WriteFrame erases the previous frame and writes this one in its place.
// A trailing newline is added when the frame lacks one so the cursor
// always rests on the line after the frame.
func (fw *FrameWriter) WriteFrame(frame string) error {
	if err := fw.clearLines(fw.prevLines); err != nil {
		return err
	}
	if frame != "" && !strings.HasSuffix(frame, "\n") {
		frame += "\n"
	}
	if _, err := io.WriteString(fw.output, frame); err != nil {
		return err
	}
	fw.prevLines = fw.countLines(frame)
	return nil
}

// clearLines moves the cursor up n lines and clears from cursor to end of
// screen.
func (fw *FrameWriter) clearLines(n int) error {
	if n <= 0 {
		return nil
	}

	// Move cursor up n lines
	seq := ansi.CursorUp(n)
	// Move to beginning of line
	seq += ansi.CursorHorizontalAbsolute(1)
	// Erase from cursor to end of screen (mode 0)
	seq += ansi.EraseDisplay(0)

	_, err := io.WriteString(fw.output, seq)
	return err
}

// countLines calculates how many terminal lines the rendered string
// occupies, accounting for line wrapping at the terminal width and for
// ANSI escape sequences.
func (fw *FrameWriter) countLines(rendered string) int {
	if len(rendered) == 0 {
		return 0
	}

	lines := strings.Split(rendered, "\n")
	totalLines := 0

	for i, line := range lines {
		// Don't count the trailing empty string after final newline
		if i == len(lines)-1 && line == "" {
			continue
		}

		// Display width of the line, ignoring ANSI sequences
		lineWidth := ansi.StringWidth(line)

		if lineWidth == 0 {
			// Empty line still takes one line
			totalLines++
		} else if fw.width > 0 {
			wrappedLines := (lineWidth + fw.width - 1) / fw.width
			if wrappedLines == 0 {
				wrappedLines = 1
			}
			totalLines += wrappedLines
		} else {
			// No width specified, assume no wrapping
			totalLines++
		}
	}

	return totalLines
}
