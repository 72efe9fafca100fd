package report

import (
	"testing"

	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/stretchr/testify/assert"

	"github.com/tildaslashalef/indentwise/internal/analyzer"
	"github.com/tildaslashalef/indentwise/internal/checker"
	"github.com/tildaslashalef/indentwise/internal/workspace"
)

func sampleReport(problems int, unit int) *checker.FileReport {
	result := &analyzer.Result{IndentUnit: unit}
	for i := 0; i < problems; i++ {
		result.Problems = append(result.Problems, analyzer.Problem{
			Direction:     analyzer.DirectionOver,
			LineIndex:     i,
			DetectedWidth: 8,
			ExpectedWidth: 4,
			Message:       "Over-indent: line indented to column 8, expected 4",
		})
	}

	return &checker.FileReport{
		File:   &workspace.File{Path: "src/Main.java", Language: "Java"},
		Run:    &checker.Run{IndentUnit: unit, LineCount: 10, ProblemCount: problems},
		Result: result,
	}
}

func TestSummaryRows(t *testing.T) {
	reports := []*checker.FileReport{
		sampleReport(2, 4),
		sampleReport(0, 0), // skipped, no unit inferred
	}

	rows := SummaryRows(reports)
	assert.Len(t, rows, 2)
	assert.Equal(t, []string{"src/Main.java", "Java", "4", "10", "2"}, rows[0])
	assert.Equal(t, "-", rows[1][2], "skipped files show no unit")
	assert.Equal(t, "skipped", rows[1][4])
}

func TestFormatProblem(t *testing.T) {
	p := analyzer.Problem{
		Direction:     analyzer.DirectionUnder,
		LineIndex:     6,
		DetectedWidth: 2,
		ExpectedWidth: 4,
		Message:       "Under-indent: line indented to column 2, expected 4",
	}

	out := text.StripEscape(FormatProblem("src/Main.java", p))
	assert.Contains(t, out, "src/Main.java:7", "location uses 1-based line numbers")
	assert.Contains(t, out, "Under-indent")
}

func TestFormatMarkedLine(t *testing.T) {
	line := "        int x;"

	over := analyzer.LineMark{LineIndex: 0, StartCol: 4, EndCol: 8, Direction: analyzer.DirectionOver}
	assert.Equal(t, line, text.StripEscape(FormatMarkedLine(line, over)), "highlighting preserves content")

	none := analyzer.LineMark{LineIndex: 0, StartCol: 8, EndCol: 8, Direction: analyzer.DirectionNone}
	assert.Equal(t, line, FormatMarkedLine(line, none), "compliant lines are untouched")

	short := analyzer.LineMark{LineIndex: 0, StartCol: 0, EndCol: 99, Direction: analyzer.DirectionUnder}
	assert.Equal(t, line, text.StripEscape(FormatMarkedLine(line, short)), "ranges are clamped to the line")
}

func TestExpandTabs(t *testing.T) {
	assert.Equal(t, "        x", ExpandTabs("\t\tx", 4))
	assert.Equal(t, "    x", ExpandTabs("\tx", 0), "zero width falls back to 4")
	assert.Equal(t, "x", ExpandTabs("x", 4))
}

func TestProblemSummaryLine(t *testing.T) {
	reports := []*checker.FileReport{
		sampleReport(2, 4),
		sampleReport(1, 4),
		sampleReport(0, 0),
	}

	assert.Equal(t, "2 file(s) checked, 1 skipped, 3 problem(s)", ProblemSummaryLine(reports))
}
