package check

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
	"github.com/tildaslashalef/indentwise/internal/analyzer"
	"github.com/tildaslashalef/indentwise/internal/checker"
	"github.com/tildaslashalef/indentwise/internal/loggy"
)

// contextLines is the number of surrounding lines shown around a problem
const contextLines = 3

// View renders the UI based on the model's current state.
func (m Model) View() string {
	if !m.ready {
		return "Initializing...\n"
	}

	var mainContent string
	var footer string

	switch m.status {
	case StatusInitializing, StatusWorkspaceInit:
		mainContent = m.renderInitializingView()
	case StatusReady:
		mainContent = m.renderReadyView()
	case StatusChecking:
		mainContent = m.renderCheckingView()
	case StatusViewingResults:
		mainContent = m.renderResultsView()
	case StatusError:
		mainContent = m.renderErrorView()
	default:
		mainContent = "Unknown status"
	}

	if m.showHelp {
		footer = m.help.View(Keys)
	} else {
		footer = m.help.ShortHelpView(Keys.ShortHelp())
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		mainContent,
		footer,
	)
}

// renderInitializingView displays the initial loading state.
func (m Model) renderInitializingView() string {
	statusLine := m.styles.StatusText.Render("Initializing...")
	spinner := m.spinner.View()
	return lipgloss.JoinVertical(lipgloss.Center,
		renderBanner(m.styles),
		"\n",
		spinner+" "+statusLine,
	)
}

// renderReadyView displays the state when ready for user action.
func (m Model) renderReadyView() string {
	var b strings.Builder

	b.WriteString(renderBanner(m.styles))
	b.WriteString("\n\n")
	if m.workspace != nil {
		b.WriteString(m.styles.Title.Render(fmt.Sprintf("Workspace: %s", m.workspace.Name)))
		b.WriteString("\n")
		b.WriteString(m.styles.Subtle.Render(m.workspace.Path))
		b.WriteString("\n\n")
	}
	b.WriteString(m.styles.Paragraph.Render("Press 'c' to check indentation based on your options."))
	b.WriteString("\n")
	b.WriteString(m.styles.Paragraph.Render("Press '?' for help, 'q' to quit."))

	return lipgloss.Place(m.width, m.height,
		lipgloss.Center, lipgloss.Center,
		b.String(),
	)
}

// renderCheckingView displays progress while files are analyzed.
func (m Model) renderCheckingView() string {
	status := m.styles.StatusText.Render(m.statusMessage)
	spinner := m.spinner.View()

	content := lipgloss.JoinVertical(lipgloss.Center,
		renderBanner(m.styles),
		"\n",
		spinner+" "+status,
	)

	return lipgloss.Place(m.width, m.height,
		lipgloss.Center, lipgloss.Center,
		content,
	)
}

// renderResultsView displays the browsable check results.
func (m Model) renderResultsView() string {
	header := m.getResultsHeaderInfo()
	body := m.viewport.View()
	footer := m.getResultsFooterInfo()

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		body,
		footer,
	)
}

// renderErrorView displays an error message.
func (m Model) renderErrorView() string {
	errorTitle := m.styles.Error.Render("Error")
	errorBody := m.styles.Paragraph.Render(m.errorMsg)
	quitMsg := m.styles.Subtle.Render("Press 'q' to quit.")

	content := lipgloss.JoinVertical(lipgloss.Center,
		errorTitle,
		"\n",
		errorBody,
		"\n",
		quitMsg,
	)

	return lipgloss.Place(m.width, m.height,
		lipgloss.Center, lipgloss.Center,
		content,
	)
}

// renderBanner renders the application title/banner.
func renderBanner(styles Styles) string {
	banner := `
 ___ _  _ ___  ___ _  _ _____ __      _____ ___ ___
|_ _| \| |   \| __| \| |_   _|\ \    / /_ _/ __| __|
 | || .' | |) | _|| .' | | |   \ \/\/ / | |\__ \ _|
|___|_|\_|___/|___|_|\_| |_|    \_/\_/ |___|___/___|
`

	return styles.Banner.Render(banner)
}

// getResultsHeaderInfo renders the top section of the results view.
func (m Model) getResultsHeaderInfo() string {
	if m.workspace == nil {
		return m.styles.Header.Render("Check Results")
	}

	wsInfo := fmt.Sprintf("Workspace: %s (%s)", m.workspace.Name, m.styles.Subtle.Render(m.workspace.Path))
	problemCount := ""
	if len(m.entries) > 0 {
		problemCount = fmt.Sprintf("Problem: %d/%d", m.currentEntry+1, len(m.entries))
	} else {
		problemCount = "No problems found"
	}

	left := m.styles.Header.Render(wsInfo)
	right := m.styles.Header.Render(problemCount)

	spacerWidth := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if spacerWidth < 0 {
		spacerWidth = 0
	}
	spacer := lipgloss.NewStyle().Width(spacerWidth).Render("")

	return lipgloss.JoinHorizontal(lipgloss.Left, left, spacer, right)
}

// renderResultContent prepares the detailed content for the viewport.
func (m Model) renderResultContent() string {
	if m.showSummary || len(m.entries) == 0 {
		return m.renderSummaryContent()
	}

	if m.currentEntry < 0 || m.currentEntry >= len(m.entries) {
		return m.styles.Error.Render("Error: Invalid problem index.")
	}

	entry := m.entries[m.currentEntry]
	problem := entry.problem

	var sb strings.Builder

	// Problem title
	dirStyle := m.directionStyle(problem.Direction)
	title := fmt.Sprintf("[%s] %s", strings.ToUpper(problem.Direction.Label()), problem.Message)
	sb.WriteString(dirStyle.Render(title))
	sb.WriteString("\n\n")

	// File location
	location := fmt.Sprintf("File: %s:%d", m.styles.Subtle.Render(entry.report.File.Path), problem.LineIndex+1)
	sb.WriteString(location)
	sb.WriteString("\n")
	sb.WriteString(m.styles.Subtle.Render(fmt.Sprintf("Indent unit: %d, detected width: %d, expected: %d",
		entry.report.Result.IndentUnit, problem.DetectedWidth, problem.ExpectedWidth)))
	sb.WriteString("\n\n")

	// Surrounding code with the evaluated indent range highlighted
	sb.WriteString(m.styles.CodeBlock.Render(m.renderProblemContext(entry)))
	sb.WriteString("\n")

	return sb.String()
}

// renderProblemContext renders the lines around the problem with gutter
// numbers and highlighted indent ranges.
func (m Model) renderProblemContext(entry problemEntry) string {
	lines := entry.report.Lines
	lineIndex := entry.problem.LineIndex

	marks := make(map[int]analyzer.LineMark, len(entry.report.Result.Marks))
	for _, mark := range entry.report.Result.Marks {
		marks[mark.LineIndex] = mark
	}

	start := lineIndex - contextLines
	if start < 0 {
		start = 0
	}
	end := lineIndex + contextLines
	if end > len(lines)-1 {
		end = len(lines) - 1
	}

	tabWidth := m.app.Config.Analyzer.TabWidth
	if tabWidth <= 0 {
		tabWidth = 4
	}

	var sb strings.Builder
	for i := start; i <= end; i++ {
		gutter := fmt.Sprintf("%5d │ ", i+1)
		line := strings.ReplaceAll(lines[i], "\t", strings.Repeat(" ", tabWidth))
		if mark, ok := marks[i]; ok && mark.Direction != analyzer.DirectionNone {
			line = m.highlightIndent(line, mark)
		}
		if i == lineIndex {
			sb.WriteString(m.styles.GutterActive.Render(gutter))
		} else {
			sb.WriteString(m.styles.Gutter.Render(gutter))
		}
		sb.WriteString(line)
		if i < end {
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

// highlightIndent styles the evaluated [start, end) indent columns of a line
func (m Model) highlightIndent(line string, mark analyzer.LineMark) string {
	runes := []rune(line)
	start := mark.StartCol
	end := mark.EndCol
	if start > len(runes) {
		start = len(runes)
	}
	if end > len(runes) {
		end = len(runes)
	}
	if end <= start {
		return line
	}

	style := m.styles.OverHighlight
	if mark.Direction == analyzer.DirectionUnder {
		style = m.styles.UnderHighlight
	}

	return string(runes[:start]) + style.Render(string(runes[start:end])) + string(runes[end:])
}

// renderSummaryContent renders the per-file summary as markdown.
func (m Model) renderSummaryContent() string {
	md := summaryMarkdown(m.reports, m.skippedFiles)

	if m.renderer != nil {
		rendered, err := m.renderer.Render(md)
		if err == nil {
			return rendered
		}
		loggy.Warn("Failed to render summary markdown", "error", err)
	}
	return wordwrap.String(md, m.viewport.Width-2)
}

// summaryMarkdown builds a markdown table summarizing the checked files
func summaryMarkdown(reports []*checker.FileReport, skipped int) string {
	var sb strings.Builder
	sb.WriteString("# Indentation Check Summary\n\n")

	if len(reports) == 0 {
		sb.WriteString("No analyzable files were checked.\n")
		return sb.String()
	}

	sb.WriteString("| File | Language | Unit | Lines | Problems |\n")
	sb.WriteString("| --- | --- | --- | --- | --- |\n")

	total := 0
	for _, r := range reports {
		unit := fmt.Sprintf("%d", r.Run.IndentUnit)
		problems := fmt.Sprintf("%d", r.Run.ProblemCount)
		if r.Skipped() {
			unit = "-"
			problems = "skipped"
		} else {
			total += r.Run.ProblemCount
		}
		sb.WriteString(fmt.Sprintf("| %s | %s | %s | %d | %s |\n",
			r.File.Path, r.File.Language, unit, r.Run.LineCount, problems))
	}

	sb.WriteString("\n")
	if total == 0 {
		sb.WriteString("**No indentation problems found.**\n")
	} else {
		sb.WriteString(fmt.Sprintf("**%d problem(s) found.**\n", total))
	}
	if skipped > 0 {
		sb.WriteString(fmt.Sprintf("\n%d file(s) were skipped.\n", skipped))
	}

	return sb.String()
}

// getResultsFooterInfo renders the bottom help line for the results view.
func (m Model) getResultsFooterInfo() string {
	if len(m.entries) == 0 {
		return m.styles.Subtle.Render("Press 'q' to quit.")
	}

	navText := fmt.Sprintf("'%s'/'%s' to navigate", Keys.PrevProblem.Keys()[0], Keys.NextProblem.Keys()[0])
	summaryText := fmt.Sprintf(" | '%s' for summary", Keys.Summary.Keys()[0])
	yankText := fmt.Sprintf(" | '%s' to copy location", Keys.Yank.Keys()[0])
	scrollHint := " | Use arrows/j/k/pgup/pgdn to scroll"

	hints := m.styles.Subtle.Render(navText + summaryText + yankText + scrollHint)
	if m.statusMessage != "" {
		return lipgloss.JoinVertical(lipgloss.Left,
			m.styles.StatusText.Render(m.statusMessage),
			hints,
		)
	}
	return hints
}

// directionStyle returns the style for a problem direction
func (m Model) directionStyle(dir analyzer.Direction) lipgloss.Style {
	switch dir {
	case analyzer.DirectionOver:
		return m.styles.OverIndent
	case analyzer.DirectionUnder:
		return m.styles.UnderIndent
	default:
		return m.styles.Subtle
	}
}
