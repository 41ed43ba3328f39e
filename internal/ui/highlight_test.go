package ui

import (
	"strings"
	"testing"
)

func TestNewHighlighterRecognizesLanguages(t *testing.T) {
	if NewHighlighter("main.go") == nil {
		t.Error("expected a highlighter for .go files")
	}
	if NewHighlighter("data.bin.zzz") != nil {
		t.Error("expected nil highlighter for unknown extension")
	}
}

func TestHighlightLinePreservesText(t *testing.T) {
	h := NewHighlighter("main.go")
	if h == nil {
		t.Fatal("no highlighter for .go")
	}

	line := "package main"
	got := h.HighlightLine(line)
	if StripANSI(got) != line {
		t.Errorf("highlighting altered text: %q", StripANSI(got))
	}
	if !strings.Contains(got, "\x1b[") {
		t.Errorf("expected ANSI codes in highlighted go source: %q", got)
	}
}

func TestHighlightLineNilPassthrough(t *testing.T) {
	var h *Highlighter
	if got := h.HighlightLine("unchanged"); got != "unchanged" {
		t.Errorf("nil highlighter altered text: %q", got)
	}
	if got := h.HighlightLineWithBg("unchanged", [3]int{1, 2, 3}); got != "unchanged" {
		t.Errorf("nil highlighter altered text: %q", got)
	}
}

func TestHighlightLineWithBgSetsBackground(t *testing.T) {
	h := NewHighlighter("main.go")
	if h == nil {
		t.Fatal("no highlighter for .go")
	}

	got := h.HighlightLineWithBg("x := 1", [3]int{10, 20, 30})
	if !strings.Contains(got, "48;2;10;20;30") {
		t.Errorf("missing background code: %q", got)
	}
	if !strings.HasSuffix(got, "\x1b[0m") {
		t.Errorf("background line should end with a reset: %q", got)
	}
	if StripANSI(got) != "x := 1" {
		t.Errorf("highlighting altered text: %q", StripANSI(got))
	}
}

func TestStripANSI(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"plain", "plain"},
		{"\x1b[31mred\x1b[0m", "red"},
		{"\x1b[38;2;1;2;3mtruecolor\x1b[0m tail", "truecolor tail"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := StripANSI(tt.input); got != tt.expected {
			t.Errorf("StripANSI(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}
