package diff

import (
	"strings"
	"unicode/utf8"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// Lines computes the line level change stream between two texts.
//
// Each run of removed and inserted lines is paired index-wise. A pair that
// still shares most of its words becomes a single OpReplace with a character
// level sub-diff; anything less similar stays a plain delete plus insert,
// which reads better than one unrecognizably rewritten line.
func Lines(oldText, newText string) []Change {
	dmp := diffmatchpatch.New()
	oldRunes, newRunes, lineArray := dmp.DiffLinesToRunes(oldText, newText)
	diffs := dmp.DiffMainRunes([]rune(oldRunes), []rune(newRunes), false)
	diffs = dmp.DiffCleanupMerge(diffs)

	var changes []Change
	line := 0
	for i := 0; i < len(diffs); i++ {
		d := diffs[i]
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			n := utf8.RuneCountInString(d.Text)
			if n == 0 {
				continue
			}
			changes = append(changes, Change{Op: OpEqual, Lines: n})
			line += n
		case diffmatchpatch.DiffDelete:
			del := decodeLines(d.Text, lineArray)
			var ins []string
			if i+1 < len(diffs) && diffs[i+1].Type == diffmatchpatch.DiffInsert {
				ins = decodeLines(diffs[i+1].Text, lineArray)
				i++
			}
			changes = append(changes, pairRun(del, ins, line)...)
			line += len(del)
		case diffmatchpatch.DiffInsert:
			ins := decodeLines(d.Text, lineArray)
			if i+1 < len(diffs) && diffs[i+1].Type == diffmatchpatch.DiffDelete {
				del := decodeLines(diffs[i+1].Text, lineArray)
				i++
				changes = append(changes, pairRun(del, ins, line)...)
				line += len(del)
				continue
			}
			for _, text := range ins {
				changes = append(changes, Change{Op: OpInsert, Text: text})
			}
		}
	}
	return changes
}

// pairRun turns one run of removed and inserted lines into change records.
// Inserts are held back until the run's deletes and replaces are out, so the
// stream stays in old text order.
func pairRun(del, ins []string, line int) []Change {
	out := make([]Change, 0, len(del)+len(ins))
	var adds []Change
	for j, oldLine := range del {
		if j < len(ins) && similar(oldLine, ins[j]) {
			out = append(out, Change{Op: OpReplace, Line: line + j, Spans: Chars(oldLine, ins[j])})
			continue
		}
		out = append(out, Change{Op: OpDelete, Line: line + j})
		if j < len(ins) {
			adds = append(adds, Change{Op: OpInsert, Text: ins[j]})
		}
	}
	if len(ins) > len(del) {
		for _, text := range ins[len(del):] {
			adds = append(adds, Change{Op: OpInsert, Text: text})
		}
	}
	return append(out, adds...)
}

// Chars computes the character level sub-diff of one replaced line. Adjacent
// delete and insert runs collapse into a single replace span.
func Chars(oldLine, newLine string) []Span {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(oldLine, newLine, false)
	diffs = dmp.DiffCleanupSemantic(diffs)

	var spans []Span
	for i := 0; i < len(diffs); i++ {
		d := diffs[i]
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			if n := utf8.RuneCountInString(d.Text); n > 0 {
				spans = append(spans, Span{Op: OpEqual, Len: n})
			}
		case diffmatchpatch.DiffDelete:
			if i+1 < len(diffs) && diffs[i+1].Type == diffmatchpatch.DiffInsert {
				spans = append(spans, Span{Op: OpReplace, Old: d.Text, New: diffs[i+1].Text})
				i++
				continue
			}
			spans = append(spans, Span{Op: OpDelete, Old: d.Text})
		case diffmatchpatch.DiffInsert:
			if i+1 < len(diffs) && diffs[i+1].Type == diffmatchpatch.DiffDelete {
				spans = append(spans, Span{Op: OpReplace, Old: diffs[i+1].Text, New: d.Text})
				i++
				continue
			}
			spans = append(spans, Span{Op: OpInsert, New: d.Text})
		}
	}
	return spans
}

// similar reports whether two lines share at least half the words of the
// longer one.
func similar(oldLine, newLine string) bool {
	oldWords := strings.Fields(oldLine)
	newWords := strings.Fields(newLine)
	if len(oldWords) == 0 || len(newWords) == 0 {
		return false
	}
	counts := make(map[string]int, len(oldWords))
	for _, w := range oldWords {
		counts[w]++
	}
	common := 0
	for _, w := range newWords {
		if counts[w] > 0 {
			counts[w]--
			common++
		}
	}
	longest := max(len(oldWords), len(newWords))
	return common*2 >= longest
}

// decodeLines maps a rune-encoded diff text back to line contents.
func decodeLines(encoded string, lineArray []string) []string {
	out := make([]string, 0, utf8.RuneCountInString(encoded))
	for _, r := range encoded {
		out = append(out, strings.TrimSuffix(lineArray[r], "\n"))
	}
	return out
}
