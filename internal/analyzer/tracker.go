package analyzer

import (
	"regexp"
	"strings"
)

var (
	// Control keywords that may govern an un-braced single-statement body.
	// The optional leading brace covers "} else"-style lines whose dedent has
	// already been applied before classification.
	reControlHeader = regexp.MustCompile(`^\}?\s*(if|for|while|do|else)\b`)

	// Declarations whose parameter or field list wraps across lines and ends
	// in a closing paren; these would otherwise be misread as unterminated
	// statements.
	reAccessDecl = regexp.MustCompile(`^(public|private|protected|internal|static|final|abstract|override)\b.*\)$`)
)

// scanState is the single mutable object threaded through one analysis pass.
// One instance is owned exclusively by one Analyze invocation; nothing is
// shared across runs.
type scanState struct {
	// pendingStack saves pendingContinuation per opened brace or wrapped
	// statement so nested un-braced contexts restore correctly on close
	pendingStack []int

	// pendingContinuation counts currently-open un-braced control bodies at
	// the current depth
	pendingContinuation int

	// awaiting is true when the previous line opened a statement not yet
	// closed by ';', '{' or '}'
	awaiting bool

	// expected is the target indentation width for normal lines
	expected int

	// contTarget is the minimum indentation for continuation lines
	contTarget int

	// unit is the indentation unit, fixed before the scan starts
	unit int

	// lastDir coalesces consecutive same-direction violations into one run
	lastDir Direction
}

func newScanState(unit int) *scanState {
	return &scanState{unit: unit, lastDir: DirectionNone}
}

func (s *scanState) push() {
	s.pendingStack = append(s.pendingStack, s.pendingContinuation)
	s.pendingContinuation = 0
}

// pop restores the enclosing pending-continuation context and returns the
// restored value. Popping an empty stack is tolerated: unbalanced braces
// degrade accuracy, never crash.
func (s *scanState) pop() int {
	if len(s.pendingStack) == 0 {
		s.pendingContinuation = 0
		return 0
	}
	v := s.pendingStack[len(s.pendingStack)-1]
	s.pendingStack = s.pendingStack[:len(s.pendingStack)-1]
	s.pendingContinuation = v
	return v
}

func (s *scanState) dedent(units int) {
	s.expected -= units * s.unit
	if s.expected < 0 {
		s.expected = 0
	}
}

// advance runs the per-line transition for one content line and reports the
// evaluation outcome. The order is load-bearing: the leading-brace dedent and
// continuation resolution must precede evaluation, and brace bookkeeping must
// precede statement classification so that a pending count restored by a
// closing brace is folded back into the expected width on the same line.
func (s *scanState) advance(ln *SourceLine, res *Result) {
	trimmed := strings.TrimSpace(ln.Stripped)
	detected := leadingWidth(ln.Stripped)

	// 1. A leading closing brace dedents to the level of its opener before
	// this line is evaluated.
	leadingClose := strings.HasPrefix(trimmed, "}")
	if leadingClose {
		s.dedent(1)
	}

	// 2. An opening brace alone resolves an Allman-style block opener: the
	// braced block replaces the un-braced continuation that announced it.
	if s.awaiting && strings.HasPrefix(trimmed, "{") {
		s.awaiting = false
		if s.pendingContinuation > 0 {
			s.pendingContinuation--
		}
	}

	// 3. A pending un-braced control body sits one level deeper than its
	// governing statement, evaluated one line at a time.
	if s.pendingContinuation > 0 && !strings.HasPrefix(trimmed, "{") {
		s.expected += s.unit
		s.awaiting = false
	}

	// 4. Evaluate. Continuation lines only need to be at least as deep as
	// the target; extra alignment is allowed.
	target := s.expected
	var compliant bool
	if s.awaiting {
		target = s.contTarget
		compliant = detected >= target
	} else {
		compliant = detected == target
	}
	s.report(ln.Index, detected, target, compliant, res)

	// 5. A multi-line continuation must never appear to de-indent partway
	// through.
	if s.awaiting && s.expected > s.contTarget {
		s.contTarget = s.expected
	}

	// 6. Brace bookkeeping for subsequent lines. The leading closing brace
	// was already applied in step 1, so it is excluded from the net here
	// (which also yields the correct +1 net for "} else {" lines). Pushes
	// and pops follow the braces' textual order.
	opens := strings.Count(ln.Stripped, "{")
	closes := strings.Count(ln.Stripped, "}")
	if opens > 0 || closes > 0 {
		for _, c := range trimmed {
			switch c {
			case '{':
				s.push()
			case '}':
				s.pop()
			}
		}
		net := opens - closes
		if leadingClose {
			net++
		}
		if net >= 0 {
			s.expected += net * s.unit
		} else {
			s.dedent(-net)
		}
	}

	// 7. Classify statement termination for the next line.
	s.classify(trimmed)
}

// classify decides whether the next line continues this one. Check order is
// first-match-wins: control-keyword headers take precedence over generic
// unterminated statements.
func (s *scanState) classify(trimmed string) {
	if trimmed == "" {
		return
	}
	last := trimmed[len(trimmed)-1]
	terminated := last == ';' || last == '{' || last == '}'

	opens := strings.Count(trimmed, "{")
	closes := strings.Count(trimmed, "}")

	switch {
	case reControlHeader.MatchString(trimmed) && last != '{' && last != ';' && parensBalanced(trimmed):
		// Inline blocks like "if (x) { y(); }" are self-contained and open
		// nothing for the next line.
		if opens > 0 && opens == closes {
			return
		}
		s.awaiting = true
		s.pendingContinuation++

	case !s.awaiting && !terminated && !reAccessDecl.MatchString(trimmed):
		// Generic wrapped statement: the next line is a continuation.
		s.awaiting = true
		s.push()
		s.contTarget = s.expected

	case s.awaiting && terminated:
		// The continuation closes here, unless an un-braced body is still
		// open at this depth.
		if s.pendingContinuation == 0 {
			s.awaiting = false
		}
		if restored := s.pop(); restored > 0 {
			// The body's extra depth no longer applies once it has closed
			s.dedent(restored)
		}
		s.pendingContinuation = 0

	case !s.awaiting && s.pendingContinuation > 0:
		// This line was the un-braced body's sole statement
		s.dedent(s.pendingContinuation)
		s.pendingContinuation = 0
	}
}

// parensBalanced reports whether the line's parentheses are balanced or
// absent; an unbalanced header is a wrapped condition, not a complete one.
func parensBalanced(s string) bool {
	return strings.Count(s, "(") == strings.Count(s, ")")
}
