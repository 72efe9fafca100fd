package analyzer

import (
	"strings"
)

// preprocessor turns raw lines into their stripped form: tabs expanded,
// string and character literal contents replaced by equal-width filler
// (delimiters kept so brace and keyword scanning is unaffected), trailing
// line comments truncated and block comment spans blanked. It carries the
// only cross-line lexical state: whether a block comment is open.
type preprocessor struct {
	syntax         Syntax
	tabWidth       int
	inBlockComment bool
}

func newPreprocessor(syntax Syntax, tabWidth int) *preprocessor {
	if syntax.LineComment == "" && syntax.BlockOpen == "" {
		syntax = CLike()
	}
	if tabWidth <= 0 {
		tabWidth = 4
	}
	return &preprocessor{syntax: syntax, tabWidth: tabWidth}
}

// strip produces the stripped form of one raw line and advances the
// block-comment state for subsequent lines.
func (p *preprocessor) strip(raw string) string {
	line := []rune(expandTabs(raw, p.tabWidth))
	out := make([]rune, 0, len(line))
	i := 0

	if p.inBlockComment {
		idx := indexOfMarker(line, 0, p.syntax.BlockClose)
		if idx < 0 {
			// Whole line consumed by the comment
			return ""
		}
		// Blank everything through the closing marker; code after it on the
		// same line is still scanned below.
		end := idx + len([]rune(p.syntax.BlockClose))
		for j := 0; j < end; j++ {
			out = append(out, ' ')
		}
		i = end
		p.inBlockComment = false
	}

	for i < len(line) {
		c := line[i]

		if c == '"' || c == '\'' {
			out = append(out, c)
			i++
			for i < len(line) {
				if line[i] == '\\' && i+1 < len(line) {
					out = append(out, ' ', ' ')
					i += 2
					continue
				}
				if line[i] == c {
					out = append(out, c)
					i++
					break
				}
				out = append(out, ' ')
				i++
			}
			continue
		}

		if markerAt(line, i, p.syntax.LineComment) {
			// Trailing single-line comment: truncate at the marker
			break
		}

		if markerAt(line, i, p.syntax.BlockOpen) {
			closeIdx := indexOfMarker(line, i+len([]rune(p.syntax.BlockOpen)), p.syntax.BlockClose)
			if closeIdx < 0 {
				p.inBlockComment = true
				break
			}
			end := closeIdx + len([]rune(p.syntax.BlockClose))
			for ; i < end; i++ {
				out = append(out, ' ')
			}
			continue
		}

		out = append(out, c)
		i++
	}

	return string(out)
}

// expandTabs replaces each tab character with a fixed-width space run
func expandTabs(s string, width int) string {
	if !strings.ContainsRune(s, '\t') {
		return s
	}
	return strings.ReplaceAll(s, "\t", strings.Repeat(" ", width))
}

// markerAt reports whether marker starts at position i of line
func markerAt(line []rune, i int, marker string) bool {
	if marker == "" {
		return false
	}
	m := []rune(marker)
	if i+len(m) > len(line) {
		return false
	}
	for j, r := range m {
		if line[i+j] != r {
			return false
		}
	}
	return true
}

// indexOfMarker returns the rune index of the first occurrence of marker at
// or after position from, or -1 when absent.
func indexOfMarker(line []rune, from int, marker string) int {
	if marker == "" {
		return -1
	}
	for i := from; i < len(line); i++ {
		if markerAt(line, i, marker) {
			return i
		}
	}
	return -1
}

// leadingWidth counts the leading space columns of a stripped line
func leadingWidth(s string) int {
	n := 0
	for _, r := range s {
		if r != ' ' {
			break
		}
		n++
	}
	return n
}
