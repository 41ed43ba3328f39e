package diff

import (
	"fmt"
	"strings"
)

// Op classifies a change record, at line or character granularity.
type Op int

const (
	OpEqual Op = iota
	OpInsert
	OpDelete
	OpReplace
)

func (o Op) String() string {
	switch o {
	case OpEqual:
		return "equal"
	case OpInsert:
		return "insert"
	case OpDelete:
		return "delete"
	case OpReplace:
		return "replace"
	}
	return fmt.Sprintf("Op(%d)", int(o))
}

// Change is one record of a line level change stream. A stream describes the
// old text in strictly increasing line order and is consumed exactly once,
// front to back.
//
//   - OpEqual: Lines unchanged lines, advancing the position in the old text.
//   - OpDelete: the line at Line was removed.
//   - OpInsert: Text was inserted. An insertion has no position of its own in
//     the old text; it sits wherever the stream has advanced to.
//   - OpReplace: the line at Line changed in place and Spans carries its
//     character level sub-diff.
type Change struct {
	Op    Op
	Lines int    // OpEqual: number of unchanged lines
	Line  int    // OpDelete, OpReplace: zero-based line in the old text
	Text  string // OpInsert: the inserted line
	Spans []Span // OpReplace: ordered sub-diff covering the old line
}

// Span is one record of the character level stream inside a replaced line.
// Equal spans carry only a length: the unchanged run reads the same in both
// lines, so the renderer slices it out of the old one.
type Span struct {
	Op  Op
	Len int    // OpEqual: length of the common run, in runes
	Old string // OpDelete, OpReplace: text removed from the old line
	New string // OpInsert, OpReplace: text added in the new line
}

// SplitLines splits text into lines without the empty trailing element a
// final newline would otherwise produce, so an N line file yields N lines.
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
