package analyzer

import (
	"strings"

	"github.com/tildaslashalef/indentwise/internal/loggy"
)

// Analyzer runs the indentation conformance scan. It is stateless across
// invocations: each Analyze call owns its preprocessor and scan state, so
// one Analyzer may serve concurrent callers and re-running the same input
// always yields the same result.
type Analyzer struct {
	opts   Options
	logger *loggy.Logger
}

// New creates an analyzer with the given options
func New(opts Options, logger *loggy.Logger) *Analyzer {
	if opts.TabWidth <= 0 {
		opts.TabWidth = 4
	}
	if opts.Syntax.LineComment == "" && opts.Syntax.BlockOpen == "" {
		opts.Syntax = CLike()
	}
	if logger == nil {
		logger = loggy.NewNoopLogger()
	}
	return &Analyzer{opts: opts, logger: logger}
}

// Analyze scans the ordered line sequence of one source file and returns the
// coalesced indentation problems plus per-line highlight marks. It never
// fails: files without a determinable indentation unit, unterminated block
// comments and unbalanced braces all degrade to fewer (or best-effort)
// reports, never to an error.
func (a *Analyzer) Analyze(lines []string) *Result {
	pre := newPreprocessor(a.opts.Syntax, a.opts.TabWidth)

	src := make([]SourceLine, len(lines))
	for i, raw := range lines {
		src[i] = SourceLine{Index: i, Raw: raw, Stripped: pre.strip(raw)}
	}

	unit := a.opts.IndentUnit
	if unit <= 0 {
		unit = inferIndentUnit(src)
	}

	res := &Result{IndentUnit: unit}
	if unit <= 0 {
		// No indented block to calibrate against; checking is disabled
		// rather than guessing.
		a.logger.Debug("no indentation unit found, skipping file", "lines", len(lines))
		return res
	}

	st := newScanState(unit)
	for i := range src {
		if a.excluded(&src[i]) {
			continue
		}
		st.advance(&src[i], res)
	}

	a.logger.Debug("analysis complete",
		"lines", len(lines),
		"unit", unit,
		"problems", len(res.Problems),
	)

	return res
}

// excluded reports whether a line is content-free for the scan: blank after
// stripping, a comment-only line, or an annotation. Such lines carry no
// braces by definition, so they are skipped for depth bookkeeping as well as
// for violation evaluation.
func (a *Analyzer) excluded(ln *SourceLine) bool {
	if strings.TrimSpace(ln.Stripped) == "" {
		return true
	}
	rawTrim := strings.TrimSpace(ln.Raw)
	if a.opts.Syntax.LineComment != "" && strings.HasPrefix(rawTrim, a.opts.Syntax.LineComment) {
		return true
	}
	for _, prefix := range a.opts.Syntax.Annotations {
		if prefix != "" && strings.HasPrefix(rawTrim, prefix) {
			return true
		}
	}
	return false
}
