package render

import (
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
)

// Ellipsis marks elided output: hidden line ranges, truncated rows, clipped
// span context.
const Ellipsis = "..."

const (
	escChar  = '\x1b'
	tabWidth = 8
	ansiOff  = "\x1b[0m"
)

// cellWidth returns the display cells r occupies when written at column col.
// Tabs advance to the next tab stop.
func cellWidth(col int, r rune) int {
	if r == '\t' {
		return tabWidth - col%tabWidth
	}
	w := runewidth.RuneWidth(r)
	if w < 0 {
		return 0
	}
	return w
}

// Width returns the display width of s in terminal cells. Escape sequences,
// ESC through their terminating 'm', take no width.
func Width(s string) int {
	col := 0
	esc := false
	for _, r := range s {
		if esc {
			if r == 'm' {
				esc = false
			}
			continue
		}
		if r == escChar {
			esc = true
			continue
		}
		col += cellWidth(col, r)
	}
	return col
}

// Truncate shortens s to at most width display cells, ending with an ellipsis
// when anything was cut. The cut never lands inside an escape sequence; a cut
// that drops the tail of styled text closes the open style first.
func Truncate(s string, width int) string {
	// Byte length over-estimates cells except for tabs, which expand.
	if len(s) <= width && !strings.ContainsRune(s, '\t') {
		return s
	}
	if Width(s) <= width {
		return s
	}
	keep := width - len(Ellipsis)
	if keep < 0 {
		keep = 0
	}
	cut := cutCells(s, keep)
	if strings.ContainsRune(cut, escChar) {
		cut += ansiOff
	}
	return cut + Ellipsis
}

// cutCells returns the longest prefix of s spanning at most width cells.
// Completed escape sequences ride along for free; a sequence is never split.
func cutCells(s string, width int) string {
	col := 0
	esc := false
	end := 0
	for i, r := range s {
		if esc {
			if r == 'm' {
				esc = false
				end = i + 1
			}
			continue
		}
		if r == escChar {
			esc = true
			continue
		}
		w := cellWidth(col, r)
		if col+w > width {
			break
		}
		col += w
		end = i + utf8.RuneLen(r)
	}
	return s[:end]
}
