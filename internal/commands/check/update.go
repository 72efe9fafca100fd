package check

import (
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/tildaslashalef/indentwise/internal/loggy"
	"github.com/tildaslashalef/indentwise/internal/utils"
)

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	var cmds []tea.Cmd

	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

		// Leave space for header and footer
		verticalPadding := 10
		m.viewport.Width = msg.Width
		m.viewport.Height = msg.Height - verticalPadding
		m.ready = true
		loggy.Debug("Window resized", "width", m.width, "height", m.height)
		if m.status == StatusViewingResults {
			m.viewport.SetContent(m.renderResultContent())
		}
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, Keys.Quit):
			loggy.Info("Quit key pressed, shutting down TUI")
			if m.cancel != nil {
				m.cancel()
			}
			return m, tea.Quit

		case key.Matches(msg, Keys.Help):
			m.showHelp = !m.showHelp
			return m, nil

		case key.Matches(msg, Keys.StartCheck) && m.status == StatusReady:
			loggy.Info("Start check key pressed")
			m.status = StatusChecking
			m.statusMessage = "Resolving files to check..."
			cmds = append(cmds, m.spinner.Tick, prepareCheckData(m))
			return m, tea.Batch(cmds...)

		case key.Matches(msg, Keys.NextProblem) && m.status == StatusViewingResults:
			if len(m.entries) > 0 {
				m.currentEntry = (m.currentEntry + 1) % len(m.entries)
				m.showSummary = false
				m.viewport.SetContent(m.renderResultContent())
				m.viewport.GotoTop()
			}
			return m, nil

		case key.Matches(msg, Keys.PrevProblem) && m.status == StatusViewingResults:
			if len(m.entries) > 0 {
				m.currentEntry = (m.currentEntry - 1 + len(m.entries)) % len(m.entries)
				m.showSummary = false
				m.viewport.SetContent(m.renderResultContent())
				m.viewport.GotoTop()
			}
			return m, nil

		case key.Matches(msg, Keys.Yank) && m.status == StatusViewingResults:
			if !m.showSummary && m.currentEntry >= 0 && m.currentEntry < len(m.entries) {
				entry := m.entries[m.currentEntry]
				location := fmt.Sprintf("%s:%d", entry.report.File.Path, entry.problem.LineIndex+1)
				if err := utils.CopyToClipboard(location); err != nil {
					m.statusMessage = fmt.Sprintf("Failed to copy location: %v", err)
				} else {
					m.statusMessage = fmt.Sprintf("Copied %s to clipboard", location)
				}
			}
			return m, nil

		case key.Matches(msg, Keys.Summary) && m.status == StatusViewingResults:
			m.showSummary = !m.showSummary
			m.viewport.SetContent(m.renderResultContent())
			m.viewport.GotoTop()
			return m, nil

		// Viewport scrolling keys
		default:
			if m.status == StatusViewingResults {
				m.viewport, cmd = m.viewport.Update(msg)
				cmds = append(cmds, cmd)
			}
		}

	case statusChangeMsg:
		loggy.Debug("Received status change message", "new_status", msg.newStatus, "error", msg.error)
		m.status = msg.newStatus
		if msg.error != nil {
			m.status = StatusError
			m.errorMsg = msg.error.Error()
			loggy.Error("Status changed to error", "error", msg.error)
		} else {
			m.errorMsg = ""
		}
		m.statusMessage = getDefaultStatusMessage(m.status)
		return m, nil

	case workspaceMsg:
		if msg.error != nil {
			m.status = StatusError
			m.errorMsg = msg.error.Error()
			loggy.Error("Failed to get/create workspace", "error", msg.error)
		} else {
			m.workspace = msg.workspace
			m.status = StatusReady
			m.statusMessage = fmt.Sprintf("Workspace '%s' ready.", m.workspace.Name)
			loggy.Info("Workspace ready", "id", m.workspace.ID, "name", m.workspace.Name)
		}
		return m, nil

	case checkSetupMsg:
		loggy.Debug("Received check setup message", "files_count", msg.totalFiles)
		m.pathsToCheck = msg.paths
		m.totalFiles = msg.totalFiles
		m.currentFile = 0
		m.skippedFiles = 0
		m.reports = nil
		m.entries = nil
		m.status = StatusChecking
		m.statusMessage = fmt.Sprintf("Checking %d files...", m.totalFiles)
		if m.totalFiles > 0 {
			cmds = append(cmds, checkNextFile(m, 0))
		} else {
			m.status = StatusReady
			m.statusMessage = "No files found to check."
		}
		return m, tea.Batch(cmds...)

	case fileCheckedMsg:
		m.currentFile = msg.progressCurrent
		switch {
		case msg.error != nil:
			loggy.Warn("Error checking file", "file_index", m.currentFile, "error", msg.error)
			m.statusMessage = fmt.Sprintf("Error checking file %d/%d: %v", m.currentFile, msg.progressTotal, msg.error)
		case msg.skipped:
			m.skippedFiles++
			m.statusMessage = fmt.Sprintf("Skipped file %d/%d", m.currentFile, msg.progressTotal)
		case msg.report != nil:
			m.reports = append(m.reports, msg.report)
			m.statusMessage = fmt.Sprintf("Checked file %d/%d: %s (%d problems)",
				m.currentFile, msg.progressTotal,
				filepath.Base(msg.report.File.Path), msg.report.Run.ProblemCount)
		}

		if m.currentFile >= msg.progressTotal {
			m.entries = flattenProblems(m.reports)
			m.currentEntry = 0
			m.showSummary = len(m.entries) == 0
			m.status = StatusViewingResults
			if len(m.entries) == 0 {
				m.statusMessage = "Check complete: no indentation problems found!"
			} else {
				m.statusMessage = fmt.Sprintf("Check complete: %d problems found. Displaying problem 1/%d.", len(m.entries), len(m.entries))
			}
			loggy.Info("Check complete", "files", len(m.reports), "skipped", m.skippedFiles, "problems", len(m.entries))
			m.viewport.SetContent(m.renderResultContent())
			m.viewport.GotoTop()
		} else {
			cmds = append(cmds, checkNextFile(m, m.currentFile))
		}
		return m, tea.Batch(cmds...)

	case spinner.TickMsg:
		if m.status < StatusReady || m.status == StatusChecking {
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		} else {
			return m, nil
		}
	}

	m.help, cmd = m.help.Update(msg)
	cmds = append(cmds, cmd)

	if m.status == StatusViewingResults {
		if _, ok := msg.(tea.KeyMsg); !ok {
			m.viewport, cmd = m.viewport.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	return m, tea.Batch(cmds...)
}

// getDefaultStatusMessage returns a default status message for a state
func getDefaultStatusMessage(status Status) string {
	switch status {
	case StatusInitializing:
		return "Initializing..."
	case StatusWorkspaceInit:
		return "Initializing workspace..."
	case StatusReady:
		return "Ready. Press 'c' to start a check or '?' for help."
	case StatusChecking:
		return "Checking files..."
	case StatusViewingResults:
		return "Viewing check results. Use n/p to navigate problems."
	case StatusError:
		return "An error occurred. Press 'q' to quit."
	default:
		return ""
	}
}
