package ui

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// Highlighter handles syntax highlighting for diff display
type Highlighter struct {
	lexer chroma.Lexer
	style *chroma.Style
}

// NewHighlighter creates a highlighter for the given file path.
// Returns nil if the language is not recognized; a nil Highlighter
// passes lines through unchanged.
func NewHighlighter(filePath string) *Highlighter {
	lexer := lexers.Match(filePath)
	if lexer == nil {
		return nil
	}
	lexer = chroma.Coalesce(lexer)

	// Use monokai theme - good contrast on dark backgrounds
	style := styles.Get("monokai")
	if style == nil {
		style = styles.Fallback
	}

	return &Highlighter{
		lexer: lexer,
		style: style,
	}
}

// HighlightLine applies syntax highlighting to a line without a background
// color. Each token resets its own styling, so the result composes with
// whole-row diff styles.
func (h *Highlighter) HighlightLine(line string) string {
	return h.highlight(line, nil)
}

// HighlightLineWithBg applies syntax highlighting to a line with a specific
// background color. bg is an RGB array [r, g, b] for true color background.
func (h *Highlighter) HighlightLineWithBg(line string, bg [3]int) string {
	return h.highlight(line, &bg)
}

func (h *Highlighter) highlight(line string, bg *[3]int) string {
	if h == nil {
		return line
	}

	iterator, err := h.lexer.Tokenise(nil, line)
	if err != nil {
		return line
	}

	var buf strings.Builder
	if err := formatTokens(&buf, iterator, h.style, bg); err != nil {
		return line
	}
	return buf.String()
}

// formatTokens writes ANSI-styled tokens. With a background, every token
// carries the background code and a single reset ends the line; without
// one, each styled token closes itself.
func formatTokens(w io.Writer, iterator chroma.Iterator, style *chroma.Style, bg *[3]int) error {
	for token := iterator(); token != chroma.EOF; token = iterator() {
		// Skip newlines - lexers may produce trailing newline tokens
		// which would create phantom lines when printed per row
		value := strings.TrimRight(token.Value, "\n")
		if value == "" {
			continue
		}

		entry := style.Get(token.Type)

		var codes []string

		if bg != nil {
			codes = append(codes, fmt.Sprintf("48;2;%d;%d;%d", bg[0], bg[1], bg[2]))
		}
		if entry.Colour.IsSet() {
			codes = append(codes, fmt.Sprintf("38;2;%d;%d;%d", entry.Colour.Red(), entry.Colour.Green(), entry.Colour.Blue()))
		}
		if entry.Bold == chroma.Yes {
			codes = append(codes, "1")
		}
		if entry.Italic == chroma.Yes {
			codes = append(codes, "3")
		}
		if entry.Underline == chroma.Yes {
			codes = append(codes, "4")
		}

		switch {
		case bg != nil:
			fmt.Fprintf(w, "\x1b[%sm%s", strings.Join(codes, ";"), value)
		case len(codes) > 0:
			fmt.Fprintf(w, "\x1b[%sm%s\x1b[0m", strings.Join(codes, ";"), value)
		default:
			fmt.Fprint(w, value)
		}
	}

	if bg != nil {
		fmt.Fprint(w, "\x1b[0m")
	}
	return nil
}

// ANSI escape code pattern for stripping/measuring
var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// StripANSI removes all ANSI escape codes from a string
func StripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}
