package render

import "strings"

// Wrap splits text into physical rows of at most width display cells, joined
// with newlines. Every row after the first starts with indent spaces and its
// budget shrinks by the same amount. Embedded newlines force a break and are
// consumed. Escape sequences take no width and are never split across a
// boundary, and a text that fills its final row exactly gains no empty
// trailing row.
func Wrap(text string, indent, width int) string {
	// Byte length over-estimates cells except for tabs, which expand.
	if width <= 0 || (len(text) <= width && !strings.ContainsRune(text, '\t')) {
		return text
	}
	if indent < 0 {
		indent = 0
	}
	if indent >= width {
		indent = width - 1
	}

	pad := strings.Repeat(" ", indent)
	var b strings.Builder
	b.Grow(len(text) + len(text)/width*(indent+1))

	limit := width // row budget; continuation rows get width-indent
	base := 0      // screen column the row's budget starts at
	col := 0
	esc := false
	for _, r := range text {
		if esc {
			b.WriteRune(r)
			if r == 'm' {
				esc = false
			}
			continue
		}
		switch {
		case r == escChar:
			esc = true
			b.WriteRune(r)
		case r == '\n':
			b.WriteByte('\n')
			b.WriteString(pad)
			limit = width - indent
			base = indent
			col = 0
		default:
			w := cellWidth(base+col, r)
			if col+w > limit && col > 0 {
				b.WriteByte('\n')
				b.WriteString(pad)
				limit = width - indent
				base = indent
				col = 0
				w = cellWidth(base, r)
			}
			b.WriteRune(r)
			col += w
		}
	}
	return b.String()
}
