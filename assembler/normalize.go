package assembler

import "strings"

// CommentMarker starts a comment that runs to the end of the line.
const CommentMarker = "//"

// Line is one label or instruction with comments and surrounding
// whitespace removed. Number is the 1-based line in the source text.
type Line struct {
	Number int
	Text   string
}

// Normalize strips comments and blank lines from src, keeping the order of
// what remains.
func Normalize(src string) []Line {
	var lines []Line
	for i, raw := range strings.Split(strings.ReplaceAll(src, "\r\n", "\n"), "\n") {
		if idx := strings.Index(raw, CommentMarker); idx != -1 {
			raw = raw[:idx]
		}
		text := strings.TrimSpace(raw)
		if text == "" {
			continue
		}
		lines = append(lines, Line{Number: i + 1, Text: text})
	}
	return lines
}
