// Package report renders indentation check results for the terminal.
package report

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/tildaslashalef/indentwise/internal/analyzer"
	"github.com/tildaslashalef/indentwise/internal/checker"
	"github.com/tildaslashalef/indentwise/internal/utils"
)

// ContextLines is the number of surrounding lines shown around each problem
const ContextLines = 2

// PrintSummary prints a table summarizing all checked files
func PrintSummary(reports []*checker.FileReport) {
	if len(reports) == 0 {
		utils.PrintInfo("No files checked")
		return
	}

	opts := utils.DefaultTableOptions()
	opts.Title = "Indentation Check"
	utils.PrintTable(
		[]string{"File", "Language", "Unit", "Lines", "Problems"},
		SummaryRows(reports),
		opts,
	)

	total := 0
	for _, r := range reports {
		total += r.Run.ProblemCount
	}
	if total == 0 {
		utils.PrintSuccess("No indentation problems found")
	} else {
		utils.PrintWarning(fmt.Sprintf("%d indentation problem(s) found", total))
	}
}

// SummaryRows builds the table rows for a set of file reports
func SummaryRows(reports []*checker.FileReport) [][]string {
	rows := make([][]string, 0, len(reports))
	for _, r := range reports {
		unit := strconv.Itoa(r.Run.IndentUnit)
		problems := strconv.Itoa(r.Run.ProblemCount)
		if r.Skipped() {
			unit = "-"
			problems = "skipped"
		}
		rows = append(rows, []string{
			r.File.Path,
			r.File.Language,
			unit,
			strconv.Itoa(r.Run.LineCount),
			problems,
		})
	}
	return rows
}

// PrintFileReport prints the problems of one file with surrounding context.
// tabWidth must match the width the file was analyzed with, because the
// highlighted column ranges refer to tab-expanded lines.
func PrintFileReport(report *checker.FileReport, tabWidth int) {
	if report.Skipped() {
		utils.PrintInfo(fmt.Sprintf("%s: skipped, indent unit could not be determined", report.File.Path))
		return
	}

	if len(report.Result.Problems) == 0 {
		utils.PrintSuccess(fmt.Sprintf("%s: indent unit %d, no problems", report.File.Path, report.Result.IndentUnit))
		return
	}

	utils.PrintSubHeading(fmt.Sprintf("%s (indent unit %d)", report.File.Path, report.Result.IndentUnit))

	marks := marksByLine(report.Result.Marks)
	for _, problem := range report.Result.Problems {
		utils.PrintDivider()
		fmt.Println(FormatProblem(report.File.Path, problem))
		printContext(report.Lines, marks, problem.LineIndex, tabWidth)
	}
}

// ExpandTabs replaces each tab with a fixed number of spaces so rendered
// columns line up with the analyzed ones
func ExpandTabs(line string, tabWidth int) string {
	if tabWidth <= 0 {
		tabWidth = 4
	}
	return strings.ReplaceAll(line, "\t", strings.Repeat(" ", tabWidth))
}

// FormatProblem formats a problem as a single location line
func FormatProblem(path string, p analyzer.Problem) string {
	colors := directionColors(p.Direction)
	location := fmt.Sprintf("%s:%d", path, p.LineIndex+1)
	return fmt.Sprintf("%s %s", utils.Theme.Subtle.Sprint(location), colors.Sprint(p.Message))
}

// FormatMarkedLine renders a source line with its highlighted indent range.
// The [start, end) column range of the leading whitespace is drawn with a
// background color so the wrong portion of the indent is visible.
func FormatMarkedLine(line string, mark analyzer.LineMark) string {
	if mark.Direction == analyzer.DirectionNone || mark.EndCol <= mark.StartCol {
		return line
	}

	expanded := []rune(line)
	start := mark.StartCol
	end := mark.EndCol
	if start > len(expanded) {
		start = len(expanded)
	}
	if end > len(expanded) {
		end = len(expanded)
	}

	colors := directionHighlight(mark.Direction)
	return string(expanded[:start]) +
		colors.Sprint(string(expanded[start:end])) +
		string(expanded[end:])
}

// printContext prints the lines around one problem, gutter-numbered, with
// the evaluated indent ranges highlighted
func printContext(lines []string, marks map[int]analyzer.LineMark, lineIndex, tabWidth int) {
	start := lineIndex - ContextLines
	if start < 0 {
		start = 0
	}
	end := lineIndex + ContextLines
	if end > len(lines)-1 {
		end = len(lines) - 1
	}

	for i := start; i <= end; i++ {
		gutter := fmt.Sprintf("%5d | ", i+1)
		rendered := ExpandTabs(lines[i], tabWidth)
		if mark, ok := marks[i]; ok {
			rendered = FormatMarkedLine(rendered, mark)
		}
		if i == lineIndex {
			fmt.Println(utils.Theme.Important.Sprint(gutter) + rendered)
		} else {
			fmt.Println(utils.Theme.Subtle.Sprint(gutter) + rendered)
		}
	}
}

// marksByLine indexes line marks by their line number
func marksByLine(marks []analyzer.LineMark) map[int]analyzer.LineMark {
	byLine := make(map[int]analyzer.LineMark, len(marks))
	for _, m := range marks {
		byLine[m.LineIndex] = m
	}
	return byLine
}

// directionColors returns the message colors for a problem direction
func directionColors(dir analyzer.Direction) text.Colors {
	switch dir {
	case analyzer.DirectionOver:
		return utils.Theme.Warning
	case analyzer.DirectionUnder:
		return utils.Theme.Error
	default:
		return utils.Theme.Subtle
	}
}

// directionHighlight returns the background colors for a marked indent range
func directionHighlight(dir analyzer.Direction) text.Colors {
	switch dir {
	case analyzer.DirectionOver:
		return text.Colors{text.BgYellow, text.FgBlack}
	case analyzer.DirectionUnder:
		return text.Colors{text.BgRed, text.FgBlack}
	default:
		return text.Colors{}
	}
}

// PrintRunHistory prints a table of past runs for a workspace
func PrintRunHistory(runs []*checker.Run, filePathsByID map[string]string) {
	if len(runs) == 0 {
		utils.PrintInfo("No runs recorded")
		return
	}

	rows := make([][]string, 0, len(runs))
	for _, run := range runs {
		path := filePathsByID[run.FileID]
		if path == "" {
			path = run.FileID
		}
		rows = append(rows, []string{
			run.ID,
			path,
			strconv.Itoa(run.IndentUnit),
			strconv.Itoa(run.LineCount),
			strconv.Itoa(run.ProblemCount),
			run.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}

	opts := utils.DefaultTableOptions()
	opts.Title = "Run History"
	utils.PrintTable(
		[]string{"Run", "File", "Unit", "Lines", "Problems", "Checked At"},
		rows,
		opts,
	)
}

// ProblemSummaryLine builds the one-line totals footer for a check
func ProblemSummaryLine(reports []*checker.FileReport) string {
	files := 0
	problems := 0
	skipped := 0
	for _, r := range reports {
		if r.Skipped() {
			skipped++
			continue
		}
		files++
		problems += r.Run.ProblemCount
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%d file(s) checked", files)
	if skipped > 0 {
		fmt.Fprintf(&b, ", %d skipped", skipped)
	}
	fmt.Fprintf(&b, ", %d problem(s)", problems)
	return b.String()
}
