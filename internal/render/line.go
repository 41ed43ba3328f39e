package render

import (
	"fmt"
	"strconv"
	"strings"
)

// prefixWidth sizes the position column: room for the largest line number
// plus one separating space, never narrower than 4 cells.
func prefixWidth(lineCount int) int {
	w := len(strconv.Itoa(lineCount)) + 1
	if w < 4 {
		w = 4
	}
	return w
}

// prefix renders the left aligned position column. num is 1-based; anything
// below 1 renders blank, the prefix of a pure addition.
func (r *renderer) prefix(num int) string {
	if num <= 0 {
		return strings.Repeat(" ", r.pw)
	}
	return fmt.Sprintf("%-*d", r.pw, num)
}

// row renders one logical line as a single display row: position prefix, body
// truncated to the width budget, optional style over the whole row. The prefix
// rides inside the truncation so tab stops in the body land on their true
// columns.
func (r *renderer) row(num int, body string, style func(string) string) string {
	out := Truncate(r.prefix(num)+body, r.opts.Width)
	if style != nil {
		out = style(out)
	}
	return out
}

// markerRow is the shared gap and truncation marker: an ellipsis in the body
// column. style carries the change kind in progress when a budget trips;
// plain gap markers take the muted marker style.
func (r *renderer) markerRow(style func(string) string) string {
	out := strings.Repeat(" ", r.pw) + Ellipsis
	if style == nil {
		style = r.opts.Styler.Marker
	}
	if style != nil {
		out = style(out)
	}
	return out
}
