package analyzer

import (
	"strings"
)

// inferIndentUnit determines the indentation unit from the first indented
// block of the file: find the first line containing an opening brace, skip
// any blank lines after it, and take the leading width of the next non-blank
// line. This assumes the first block uses exactly one unit; files whose first
// block is atypical will mis-infer, which is a documented limitation of the
// heuristic (callers can supply Options.IndentUnit to override).
//
// Returns zero when the file contains no opening brace at all, which
// disables checking for the file.
func inferIndentUnit(lines []SourceLine) int {
	for i := range lines {
		if !strings.Contains(lines[i].Stripped, "{") {
			continue
		}
		for j := i + 1; j < len(lines); j++ {
			if strings.TrimSpace(lines[j].Stripped) == "" {
				continue
			}
			return leadingWidth(lines[j].Stripped)
		}
		return 0
	}
	return 0
}
