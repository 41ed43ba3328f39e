package render

import (
	"strings"
	"unicode/utf8"

	"github.com/samsaffron/term-diff/internal/diff"
)

// entries merges the changed spans of one replaced line into display texts.
// Each entry is a run of nearby highlighted spans with up to ContextRunes of
// unchanged text on either side; spans separated by more than twice that much
// unchanged text start a new entry. Positions are rune offsets into the old
// line, which both versions of an equal run share.
func (r *renderer) entries(old []rune, spans []diff.Span) []string {
	ctx := r.opts.ContextRunes
	st := r.opts.Styler

	var out []string
	var buf strings.Builder
	open := false
	end := 0 // one past the old line column of the last merged span
	col := 0 // current old line column
	for _, s := range spans {
		if s.Op == diff.OpEqual {
			col += s.Len
			continue
		}

		var hl string
		width := 0
		switch s.Op {
		case diff.OpDelete:
			hl = st.removed(r.clipSpan(s.Old))
			width = utf8.RuneCountInString(s.Old)
		case diff.OpInsert:
			hl = st.added(r.clipSpan(s.New))
		case diff.OpReplace:
			hl = st.removed(r.clipSpan(s.Old)) + st.added(r.clipSpan(s.New))
			width = utf8.RuneCountInString(s.Old)
		}

		switch {
		case !open:
			r.openEntry(&buf, old, col)
			open = true
		case col-end <= 2*ctx:
			buf.WriteString(string(old[end:col]))
		default:
			out = append(out, r.closeEntry(&buf, old, end))
			r.openEntry(&buf, old, col)
		}
		buf.WriteString(hl)
		end = col + width
		col = end
	}
	if open {
		out = append(out, r.closeEntry(&buf, old, end))
	}
	return out
}

// openEntry starts an entry with up to ContextRunes of leading context before
// the span at column col, marking context clipped at a non-zero offset.
func (r *renderer) openEntry(buf *strings.Builder, old []rune, col int) {
	lead := col - r.opts.ContextRunes
	if lead < 0 {
		lead = 0
	}
	if lead > 0 {
		buf.WriteString(Ellipsis)
	}
	buf.WriteString(string(old[lead:col]))
}

// closeEntry appends trailing context after column end and drains the buffer.
func (r *renderer) closeEntry(buf *strings.Builder, old []rune, end int) string {
	tail := end + r.opts.ContextRunes
	if tail > len(old) {
		tail = len(old)
	}
	buf.WriteString(string(old[end:tail]))
	if tail < len(old) {
		buf.WriteString(Ellipsis)
	}
	s := buf.String()
	buf.Reset()
	return s
}

// clipSpan bounds one highlighted span's text at MaxSpanRunes runes.
func (r *renderer) clipSpan(s string) string {
	runes := []rune(s)
	if len(runes) <= r.opts.MaxSpanRunes {
		return s
	}
	return string(runes[:r.opts.MaxSpanRunes]) + Ellipsis
}
