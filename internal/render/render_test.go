package render

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/samsaffron/term-diff/internal/diff"
)

// eight one-letter lines, the fixture most window tests run against
const alpha = "a\nb\nc\nd\ne\nf\ng\nh\n"

func replaceLine(t *testing.T, text string, n int, repl string) string {
	t.Helper()
	lines := diff.SplitLines(text)
	if n < 1 || n > len(lines) {
		t.Fatalf("no line %d in %q", n, text)
	}
	lines[n-1] = repl
	return strings.Join(lines, "\n") + "\n"
}

func renderTexts(t *testing.T, oldText, newText string, opts Options) []string {
	t.Helper()
	rows, err := Text(oldText, newText, opts)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	return rows
}

func TestRenderEqualInputs(t *testing.T) {
	rows := renderTexts(t, alpha, alpha, Options{})
	if len(rows) != 0 {
		t.Fatalf("equal inputs produced %d rows: %q", len(rows), rows)
	}
}

func TestRenderContextWindows(t *testing.T) {
	tests := []struct {
		name string
		line int // 1-based changed line of alpha
		want []string
	}{
		{
			name: "mid text clips to context and hides the head",
			line: 5,
			want: []string{
				"    ...",
				"2   b",
				"3   c",
				"4   d",
				"5   e",
				"    ex",
				"6   f",
				"7   g",
				"8   h",
			},
		},
		{
			name: "near start keeps every leading line",
			line: 3,
			want: []string{
				"1   a",
				"2   b",
				"3   c",
				"    cx",
				"4   d",
				"5   e",
				"6   f",
				"    ...",
			},
		},
		{
			name: "at start emits no leading context",
			line: 1,
			want: []string{
				"1   a",
				"    ax",
				"2   b",
				"3   c",
				"4   d",
				"    ...",
			},
		},
		{
			name: "post window stops after exactly contextLines rows",
			line: 4,
			want: []string{
				"1   a",
				"2   b",
				"3   c",
				"4   d",
				"    dx",
				"5   e",
				"6   f",
				"7   g",
			},
		},
		{
			name: "at end emits no trailing context",
			line: 8,
			want: []string{
				"    ...",
				"5   e",
				"6   f",
				"7   g",
				"8   h",
				"    hx",
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			oldLine := string(rune('a' + tt.line - 1))
			newText := replaceLine(t, alpha, tt.line, oldLine+"x")
			rows := renderTexts(t, alpha, newText, Options{ContextLines: 3})
			if d := cmp.Diff(tt.want, rows); d != "" {
				t.Errorf("rows mismatch (-want +got):\n%s", d)
			}
		})
	}
}

func TestRenderAdjacentChangesShareOneWindow(t *testing.T) {
	newText := replaceLine(t, replaceLine(t, alpha, 1, "az"), 2, "bz")
	rows := renderTexts(t, alpha, newText, Options{ContextLines: 3})
	want := []string{
		"1   a",
		"2   b",
		"    az",
		"    bz",
		"3   c",
		"4   d",
		"5   e",
		"    ...",
	}
	if d := cmp.Diff(want, rows); d != "" {
		t.Errorf("rows mismatch (-want +got):\n%s", d)
	}
}

func TestRenderGapBetweenDistantChanges(t *testing.T) {
	var oldLines []string
	for i := 0; i < 20; i++ {
		oldLines = append(oldLines, strings.Repeat(string(rune('a'+i%26)), 3))
	}
	oldText := strings.Join(oldLines, "\n") + "\n"
	newText := replaceLine(t, replaceLine(t, oldText, 2, "first change"), 18, "second change")

	rows := renderTexts(t, oldText, newText, Options{ContextLines: 2})
	joined := strings.Join(rows, "\n")
	if got := strings.Count(joined, Ellipsis); got != 1 {
		t.Fatalf("want exactly 1 gap marker between the windows, got %d in:\n%s", got, joined)
	}

	// No line of the old text may be emitted twice.
	seen := map[string]bool{}
	for _, row := range rows {
		num := strings.TrimSpace(row[:4])
		if num == "" || num == Ellipsis {
			continue
		}
		if seen[num] {
			t.Errorf("line %s emitted twice:\n%s", num, joined)
		}
		seen[num] = true
	}
}

func TestRenderReplaceShowsCharSpans(t *testing.T) {
	oldText := "func doSomething(x int) {\n"
	newText := "func doSomething(y int) {\n"
	st := Styler{
		Removed: func(s string) string { return "-" + s + "-" },
		Added:   func(s string) string { return "+" + s + "+" },
	}
	rows := renderTexts(t, oldText, newText, Options{Styler: st})
	want := []string{"1   func doSomething(-x-+y+ int) {"}
	if d := cmp.Diff(want, rows); d != "" {
		t.Errorf("rows mismatch (-want +got):\n%s", d)
	}
}

func TestRenderStyledRows(t *testing.T) {
	newText := replaceLine(t, alpha, 1, "az")
	st := Styler{
		Removed: func(s string) string { return "R<" + s + ">" },
		Added:   func(s string) string { return "A<" + s + ">" },
		Marker:  func(s string) string { return "M<" + s + ">" },
	}
	rows := renderTexts(t, alpha, newText, Options{ContextLines: 1, Styler: st})
	want := []string{
		"R<1   a>",
		"A<    az>",
		"2   b",
		"M<    ...>",
	}
	if d := cmp.Diff(want, rows); d != "" {
		t.Errorf("rows mismatch (-want +got):\n%s", d)
	}
}

func TestRenderWidePrefixColumn(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < 12000; i++ {
		sb.WriteString("x\n")
	}
	oldText := sb.String()
	newText := "y\n" + oldText[len("x\n"):]

	rows := renderTexts(t, oldText, newText, Options{})
	if len(rows) == 0 {
		t.Fatal("no rows")
	}
	// 12000 needs five digits, plus one separating space.
	if got := rows[0][:6]; got != "1     " {
		t.Errorf("prefix column = %q, want %q", got, "1     ")
	}
}

func TestRenderLongBodiesTruncate(t *testing.T) {
	oldText := strings.Repeat("a", 200) + "\n"
	newText := "zz qq ww\n"
	rows := renderTexts(t, oldText, newText, Options{Width: 30})
	for _, row := range rows {
		if w := Width(row); w > 30 {
			t.Errorf("row %q spans %d cells, budget is 30", row, w)
		}
	}
	if !strings.HasSuffix(rows[0], Ellipsis) {
		t.Errorf("removed row %q not truncated", rows[0])
	}
}

func TestRenderDisplayHookContextOnly(t *testing.T) {
	newText := replaceLine(t, alpha, 2, "bz")
	opts := Options{
		ContextLines: 1,
		Display:      func(_ int, body string) string { return strings.ToUpper(body) },
	}
	rows := renderTexts(t, alpha, newText, opts)
	want := []string{
		"1   A",
		"2   b",
		"    bz",
		"3   C",
		"    ...",
	}
	if d := cmp.Diff(want, rows); d != "" {
		t.Errorf("rows mismatch (-want +got):\n%s", d)
	}
}

func TestRenderInvalidStream(t *testing.T) {
	lines := []string{"aa", "bb", "cc"}
	tests := []struct {
		name    string
		changes []diff.Change
	}{
		{
			name:    "change out of order",
			changes: []diff.Change{{Op: diff.OpDelete, Line: 2}},
		},
		{
			name:    "change beyond input",
			changes: []diff.Change{{Op: diff.OpEqual, Lines: 3}, {Op: diff.OpDelete, Line: 3}},
		},
		{
			name:    "negative equal run",
			changes: []diff.Change{{Op: diff.OpEqual, Lines: -1}},
		},
		{
			name: "replace sub-diff not covering its line",
			changes: []diff.Change{{Op: diff.OpReplace, Line: 0, Spans: []diff.Span{
				{Op: diff.OpEqual, Len: 1},
			}}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Render(lines, tt.changes, Options{})
			if !errors.Is(err, diff.ErrInvalidStream) {
				t.Fatalf("err = %v, want ErrInvalidStream", err)
			}
		})
	}
}
