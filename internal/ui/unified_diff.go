package ui

import (
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	diff "github.com/shogoki/gotextdiff"
)

// Background tints for changed lines, composed under syntax colors
var (
	diffAddBg    = [3]int{30, 60, 30} // dark green tint
	diffRemoveBg = [3]int{60, 30, 30} // dark red tint
)

// Regex to parse hunk header: @@ -start,count +start,count @@
var hunkRe = regexp.MustCompile(`^@@ -(\d+)(?:,\d+)? \+(\d+)(?:,\d+)? @@`)

// PrintUnifiedDiff writes a unified diff between old and new content.
// Line numbers track the new file; deleted lines show the position the
// text held before removal. With colors enabled, changed lines get a
// background tint; with highlight also enabled, recognized languages
// are syntax highlighted.
func PrintUnifiedDiff(w io.Writer, filePath, oldContent, newContent string, colors, highlight bool) {
	if oldContent == newContent {
		return
	}

	// Generate unified diff using gotextdiff
	diffBytes := diff.Diff(filePath, []byte(oldContent), filePath, []byte(newContent))
	if len(diffBytes) == 0 {
		return
	}
	diffText := string(diffBytes)

	var highlighter *Highlighter
	if colors && highlight {
		highlighter = NewHighlighter(filePath)
	}

	// Calculate line number width based on file sizes
	oldLines := strings.Count(oldContent, "\n") + 1
	newLines := strings.Count(newContent, "\n") + 1
	maxLine := oldLines
	if newLines > maxLine {
		maxLine = newLines
	}
	lineNumWidth := len(strconv.Itoa(maxLine))
	if lineNumWidth < 3 {
		lineNumWidth = 3
	}

	// Track current line numbers
	var oldLineNum, newLineNum int
	var deletionOffset int // Tracks position within a deletion block
	hunkCount := 0

	for _, line := range strings.Split(diffText, "\n") {
		// Skip the "diff" line and --- / +++ headers
		if strings.HasPrefix(line, "diff ") ||
			strings.HasPrefix(line, "--- ") ||
			strings.HasPrefix(line, "+++ ") {
			continue
		}

		if len(line) == 0 {
			continue
		}

		prefix := line[0]
		content := ""
		if len(line) > 1 {
			content = line[1:]
		}

		switch prefix {
		case '@':
			// Parse hunk header to get starting line numbers
			if matches := hunkRe.FindStringSubmatch(line); matches != nil {
				oldLineNum, _ = strconv.Atoi(matches[1])
				newLineNum, _ = strconv.Atoi(matches[2])
			}
			// Show "..." separator between hunks (not before first one)
			if hunkCount > 0 {
				sep := strings.Repeat(" ", lineNumWidth) + "  ..."
				if colors {
					fmt.Fprintf(w, "\x1b[38;2;100;100;100m%s\x1b[0m\n", sep)
				} else {
					fmt.Fprintln(w, sep)
				}
			}
			hunkCount++

		case '-':
			// Removed line - red tint, show virtual new file position
			if colors {
				highlighted := fmt.Sprintf("\x1b[48;2;%d;%d;%dm%s\x1b[0m", diffRemoveBg[0], diffRemoveBg[1], diffRemoveBg[2], content)
				if highlighter != nil {
					highlighted = highlighter.HighlightLineWithBg(content, diffRemoveBg)
				}
				fmt.Fprintf(w, "\x1b[38;2;160;80;80m%*d- \x1b[0m%s\n", lineNumWidth, newLineNum+deletionOffset, highlighted)
			} else {
				fmt.Fprintf(w, "%*d- %s\n", lineNumWidth, newLineNum+deletionOffset, content)
			}
			oldLineNum++
			deletionOffset++

		case '+':
			// Added line - green tint with new line number
			deletionOffset = 0 // Reset deletion offset when we see additions
			if colors {
				highlighted := fmt.Sprintf("\x1b[48;2;%d;%d;%dm%s\x1b[0m", diffAddBg[0], diffAddBg[1], diffAddBg[2], content)
				if highlighter != nil {
					highlighted = highlighter.HighlightLineWithBg(content, diffAddBg)
				}
				fmt.Fprintf(w, "\x1b[38;2;80;160;80m%*d+ \x1b[0m%s\n", lineNumWidth, newLineNum, highlighted)
			} else {
				fmt.Fprintf(w, "%*d+ %s\n", lineNumWidth, newLineNum, content)
			}
			newLineNum++

		case ' ':
			// Context line - no background, line number in grey
			deletionOffset = 0 // Reset deletion offset when we see context
			if colors {
				fmt.Fprintf(w, "\x1b[38;2;100;100;100m%*d  \x1b[0m%s\n", lineNumWidth, newLineNum, highlighter.HighlightLine(content))
			} else {
				fmt.Fprintf(w, "%*d  %s\n", lineNumWidth, newLineNum, content)
			}
			oldLineNum++
			newLineNum++

		default:
			// Unknown prefix - just print as-is
			fmt.Fprintln(w, line)
		}
	}
}
