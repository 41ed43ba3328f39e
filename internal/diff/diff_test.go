package diff

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestSplitLines(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"empty", "", nil},
		{"single line no newline", "a", []string{"a"}},
		{"single line with newline", "a\n", []string{"a"}},
		{"trailing newline", "a\nb\n", []string{"a", "b"}},
		{"no trailing newline", "a\nb", []string{"a", "b"}},
		{"blank line kept", "a\n\nb\n", []string{"a", "", "b"}},
		{"only newline", "\n", []string{""}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, SplitLines(tt.text))
		})
	}
}

func TestLinesEqualTexts(t *testing.T) {
	text := "a\nb\nc\n"
	changes := Lines(text, text)
	require.Equal(t, []Change{{Op: OpEqual, Lines: 3}}, changes)
}

func TestLinesDelete(t *testing.T) {
	changes := Lines("a\nb\nc\n", "a\nc\n")
	require.Equal(t, []Change{
		{Op: OpEqual, Lines: 1},
		{Op: OpDelete, Line: 1},
		{Op: OpEqual, Lines: 1},
	}, changes)
}

func TestLinesInsert(t *testing.T) {
	changes := Lines("a\nc\n", "a\nb\nc\n")
	require.Equal(t, []Change{
		{Op: OpEqual, Lines: 1},
		{Op: OpInsert, Text: "b"},
		{Op: OpEqual, Lines: 1},
	}, changes)
}

func TestLinesDissimilarPairStaysDeleteInsert(t *testing.T) {
	// "e" and "ex" share no word, so the pair must not collapse into a
	// replace record.
	changes := Lines("a\nb\nc\nd\ne\nf\ng\nh\n", "a\nb\nc\nd\nex\nf\ng\nh\n")
	require.Equal(t, []Change{
		{Op: OpEqual, Lines: 4},
		{Op: OpDelete, Line: 4},
		{Op: OpInsert, Text: "ex"},
		{Op: OpEqual, Lines: 3},
	}, changes)
}

func TestLinesSimilarPairBecomesReplace(t *testing.T) {
	oldText := "func doSomething(x int) {\n"
	newText := "func doSomething(y int) {\n"
	changes := Lines(oldText, newText)
	require.Len(t, changes, 1)
	require.Equal(t, OpReplace, changes[0].Op)
	require.Equal(t, 0, changes[0].Line)
	require.NotEmpty(t, changes[0].Spans)
	require.NoError(t, ValidateSpans("func doSomething(x int) {", changes[0].Spans))
}

func TestLinesUnevenRun(t *testing.T) {
	// Two removed lines against one unrelated added line: deletes first,
	// then the insert.
	changes := Lines("one two\nthree four\n", "zzz qqq\n")
	require.Equal(t, []Change{
		{Op: OpDelete, Line: 0},
		{Op: OpDelete, Line: 1},
		{Op: OpInsert, Text: "zzz qqq"},
	}, changes)
}

func TestCharsCoversOldLine(t *testing.T) {
	tests := []struct {
		name     string
		old, new string
	}{
		{"suffix added", "e", "ex"},
		{"word swapped", "func doSomething(x int) {", "func doSomething(y int) {"},
		{"prefix removed", "hello world", "world"},
		{"rewritten", "alpha", "omega"},
		{"empty old", "", "something"},
		{"empty new", "something", ""},
		{"unicode", "héllo wörld", "héllo wørld"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, ValidateSpans(tt.old, Chars(tt.old, tt.new)))
		})
	}
}

func TestSimilar(t *testing.T) {
	tests := []struct {
		name     string
		old, new string
		want     bool
	}{
		{"similar lines", "func doSomething(x int) {", "func doSomething(y int) {", true},
		{"completely different", "func old() {", "type NewStruct struct {", false},
		{"same line", "return nil", "return nil", true},
		{"empty lines", "", "", false},
		{"small change in comment", "// This is a comment about foo", "// This is a comment about bar", true},
		{"short unrelated", "e", "ex", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, similar(tt.old, tt.new))
		})
	}
}

func TestValidate(t *testing.T) {
	lines := []string{"aa", "bb", "cc"}
	tests := []struct {
		name    string
		changes []Change
		wantErr bool
	}{
		{
			name:    "well formed",
			changes: []Change{{Op: OpEqual, Lines: 1}, {Op: OpDelete, Line: 1}, {Op: OpEqual, Lines: 1}},
		},
		{
			name:    "insert needs no position",
			changes: []Change{{Op: OpInsert, Text: "zz"}, {Op: OpEqual, Lines: 3}},
		},
		{
			name:    "delete out of order",
			changes: []Change{{Op: OpDelete, Line: 2}},
			wantErr: true,
		},
		{
			name:    "delete beyond input",
			changes: []Change{{Op: OpEqual, Lines: 3}, {Op: OpDelete, Line: 3}},
			wantErr: true,
		},
		{
			name:    "equal run overshoots",
			changes: []Change{{Op: OpEqual, Lines: 4}},
			wantErr: true,
		},
		{
			name:    "non-positive equal run",
			changes: []Change{{Op: OpEqual, Lines: 0}},
			wantErr: true,
		},
		{
			name: "replace covering its line",
			changes: []Change{{Op: OpReplace, Line: 0, Spans: []Span{
				{Op: OpEqual, Len: 1},
				{Op: OpReplace, Old: "a", New: "zz"},
			}}},
		},
		{
			name: "replace not covering its line",
			changes: []Change{{Op: OpReplace, Line: 0, Spans: []Span{
				{Op: OpEqual, Len: 1},
			}}},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(lines, tt.changes)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidStream)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestLinesAlwaysValidates(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		gen := rapid.SliceOfN(rapid.SampledFrom([]string{
			"alpha", "beta beta", "gamma delta", "x", "", "tab\there", "alpha beta",
		}), 0, 12)
		oldLines := gen.Draw(t, "old")
		newLines := gen.Draw(t, "new")
		oldText := join(oldLines)
		newText := join(newLines)

		changes := Lines(oldText, newText)
		if err := Validate(SplitLines(oldText), changes); err != nil {
			t.Fatalf("stream does not validate: %v", err)
		}
	})
}

func join(lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}
