// Package analyzer implements a heuristic indentation-conformance analyzer.
// It performs a single stateful pass over the lines of a source file, infers
// the indentation unit the author actually used, tracks expected nesting depth
// through braced and un-braced control blocks, and reports deviations as
// coalesced per-run problems. It is deliberately lexical and best-effort: no
// grammar is parsed and malformed input degrades accuracy, never correctness.
package analyzer

import (
	"fmt"
)

// Direction classifies an indentation deviation
type Direction string

const (
	// DirectionNone means the line matched its expected indentation
	DirectionNone Direction = "none"
	// DirectionOver means the line was indented deeper than expected
	DirectionOver Direction = "over"
	// DirectionUnder means the line was indented shallower than expected
	DirectionUnder Direction = "under"
)

// Label returns the short human-readable label for the direction
func (d Direction) Label() string {
	switch d {
	case DirectionOver:
		return "Over-indent"
	case DirectionUnder:
		return "Under-indent"
	default:
		return ""
	}
}

// SourceLine is an immutable view over one line of input. Stripped is the
// derived form used for structural scanning: tabs expanded, string literal
// contents masked, comment spans blanked. Raw is never modified.
type SourceLine struct {
	Index    int    `json:"index"`
	Raw      string `json:"raw"`
	Stripped string `json:"stripped"`
}

// Problem is one reported deviation. It anchors a maximal contiguous run of
// same-direction violations at the run's first line. The four structural
// fields (Direction, LineIndex, DetectedWidth, ExpectedWidth) are the stable
// contract for consumers; Message wording is presentation discretion.
type Problem struct {
	Direction     Direction `json:"direction"`
	LineIndex     int       `json:"line_index"`
	DetectedWidth int       `json:"detected_width"`
	ExpectedWidth int       `json:"expected_width"`
	Message       string    `json:"message"`
}

// newProblem builds a problem record for the first line of a violation run
func newProblem(dir Direction, lineIndex, detected, expected int) Problem {
	return Problem{
		Direction:     dir,
		LineIndex:     lineIndex,
		DetectedWidth: detected,
		ExpectedWidth: expected,
		Message:       fmt.Sprintf("%s: line indented to column %d, expected %d", dir.Label(), detected, expected),
	}
}

// LineMark is the per-line highlight exposed to the presentation layer.
// For over-indented lines the range spans from the expected column to the
// first non-space character; for under-indented lines it covers the whole
// detected prefix. RunStart is true only on the first line of a new run.
type LineMark struct {
	LineIndex int       `json:"line_index"`
	StartCol  int       `json:"start_col"`
	EndCol    int       `json:"end_col"`
	Direction Direction `json:"direction"`
	RunStart  bool      `json:"run_start"`
}

// Result is the outcome of analyzing one file
type Result struct {
	// IndentUnit is the unit that was inferred (or supplied). Zero means no
	// unit could be determined and checking was disabled for the file.
	IndentUnit int        `json:"indent_unit"`
	Problems   []Problem  `json:"problems"`
	Marks      []LineMark `json:"marks"`
}

// Syntax describes the lexical markers of the language being analyzed.
// The analyzer itself is language-agnostic; callers supply a Syntax per file
// (see the language package) or fall back to CLike.
type Syntax struct {
	LineComment string   // e.g. "//"
	BlockOpen   string   // e.g. "/*"
	BlockClose  string   // e.g. "*/"
	Annotations []string // line prefixes excluded from checking, e.g. "@"
}

// CLike returns the default syntax shared by C, Java, Go, JavaScript and
// most brace-delimited languages.
func CLike() Syntax {
	return Syntax{
		LineComment: "//",
		BlockOpen:   "/*",
		BlockClose:  "*/",
		Annotations: []string{"@"},
	}
}

// Options configures an analyzer instance
type Options struct {
	// TabWidth is the number of spaces a tab character expands to
	TabWidth int

	// IndentUnit overrides unit inference when positive. Zero means infer
	// from the first indented block of the file.
	IndentUnit int

	// Syntax holds the comment and annotation markers for the file's
	// language. The zero value falls back to CLike.
	Syntax Syntax
}

// DefaultOptions returns analyzer options with C-like syntax and 4-column tabs
func DefaultOptions() Options {
	return Options{
		TabWidth: 4,
		Syntax:   CLike(),
	}
}
