package check

import (
	"context"
	"path/filepath"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/glamour"
	"github.com/tildaslashalef/indentwise/internal/analyzer"
	"github.com/tildaslashalef/indentwise/internal/app"
	"github.com/tildaslashalef/indentwise/internal/checker"
	"github.com/tildaslashalef/indentwise/internal/workspace"
)

// problemEntry points at one problem inside one file report so the browser
// can navigate a flat list across files
type problemEntry struct {
	report  *checker.FileReport
	problem analyzer.Problem
}

// Model represents the TUI model state
type Model struct {
	app          *app.App
	ctx          context.Context
	cancel       context.CancelFunc
	status       Status
	width        int
	height       int
	workspace    *workspace.Workspace
	checkOptions CheckOptions
	reports      []*checker.FileReport
	entries      []problemEntry
	currentEntry int
	pathsToCheck []string
	currentFile  int
	totalFiles   int
	skippedFiles int

	statusMessage string
	errorMsg      string
	styles        Styles
	showSummary   bool

	// Components from bubbletea/bubbles
	viewport viewport.Model
	spinner  spinner.Model
	help     help.Model
	showHelp bool

	// Markdown rendering
	renderer *glamour.TermRenderer

	// Viewport readiness flag
	ready bool
}

// NewModel creates a new TUI model with initial state
func NewModel(application *app.App) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot

	h := help.New()
	h.ShowAll = false

	styles := DefaultStyles()
	s.Style = styles.Spinner

	r, _ := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)

	ctx, cancel := context.WithCancel(context.Background())

	vp := viewport.New(10, 10)
	vp.Style = styles.Paragraph

	return Model{
		app:      application,
		ctx:      ctx,
		cancel:   cancel,
		status:   StatusInitializing,
		spinner:  s,
		help:     h,
		showHelp: false,
		styles:   styles,
		renderer: r,
		viewport: vp,
		ready:    false,
	}
}

// SetCheckOptions updates the check options in the model.
// It also ensures the absolute path is resolved.
func (m *Model) SetCheckOptions(options CheckOptions) {
	if options.AbsPath == "" && options.TargetDir != "" {
		absPath, err := filepath.Abs(options.TargetDir)
		if err == nil {
			options.AbsPath = absPath
		} else {
			options.AbsPath = options.TargetDir
		}
	}
	m.checkOptions = options
}

// flattenProblems builds the navigable problem list from the file reports
func flattenProblems(reports []*checker.FileReport) []problemEntry {
	var entries []problemEntry
	for _, report := range reports {
		if report.Skipped() {
			continue
		}
		for _, p := range report.Result.Problems {
			entries = append(entries, problemEntry{report: report, problem: p})
		}
	}
	return entries
}
