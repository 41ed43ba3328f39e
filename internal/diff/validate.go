package diff

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

// ErrInvalidStream reports a change stream that does not describe its old
// text: records out of order or out of range, or a replace sub-diff that does
// not cover its line. This is the only fatal condition in the pipeline;
// everything else degrades to markers in the output.
var ErrInvalidStream = errors.New("change stream does not match input")

// Validate walks a change stream against the old text it claims to describe
// and returns the first inconsistency found.
func Validate(oldLines []string, changes []Change) error {
	line := 0
	for _, c := range changes {
		switch c.Op {
		case OpEqual:
			if c.Lines <= 0 {
				return fmt.Errorf("%w: equal run of %d lines at line %d", ErrInvalidStream, c.Lines, line+1)
			}
			line += c.Lines
		case OpInsert:
			// no position in the old text
		case OpDelete, OpReplace:
			if c.Line != line {
				return fmt.Errorf("%w: %s at line %d, stream position is %d", ErrInvalidStream, c.Op, c.Line+1, line+1)
			}
			if c.Line >= len(oldLines) {
				return fmt.Errorf("%w: line %d beyond input of %d lines", ErrInvalidStream, c.Line+1, len(oldLines))
			}
			if c.Op == OpReplace {
				if err := ValidateSpans(oldLines[c.Line], c.Spans); err != nil {
					return fmt.Errorf("line %d: %w", c.Line+1, err)
				}
			}
			line++
		default:
			return fmt.Errorf("%w: unknown op %d", ErrInvalidStream, int(c.Op))
		}
	}
	if line > len(oldLines) {
		return fmt.Errorf("%w: stream covers %d lines, input has %d", ErrInvalidStream, line, len(oldLines))
	}
	return nil
}

// ValidateSpans checks that a replace sub-diff reconstructs its old line:
// equal lengths plus removed text must cover it exactly, in runes.
func ValidateSpans(oldLine string, spans []Span) error {
	covered := 0
	for _, s := range spans {
		switch s.Op {
		case OpEqual:
			covered += s.Len
		case OpDelete, OpReplace:
			covered += utf8.RuneCountInString(s.Old)
		case OpInsert:
			// zero width in the old line
		}
	}
	if want := utf8.RuneCountInString(oldLine); covered != want {
		return fmt.Errorf("%w: spans cover %d of %d chars", ErrInvalidStream, covered, want)
	}
	return nil
}
