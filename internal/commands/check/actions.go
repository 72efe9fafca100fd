package check

import (
	"errors"
	"fmt"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/tildaslashalef/indentwise/internal/checker"
	"github.com/tildaslashalef/indentwise/internal/git"
	"github.com/tildaslashalef/indentwise/internal/loggy"
	"github.com/tildaslashalef/indentwise/internal/workspace"
)

// getOrCreateWorkspace gets or creates the workspace based on check options.
// It returns a command that will send a workspaceMsg.
func getOrCreateWorkspace(m Model) tea.Cmd {
	return func() tea.Msg {
		absPath := m.checkOptions.AbsPath
		if absPath == "" {
			absPath, _ = filepath.Abs(m.checkOptions.TargetDir)
		}

		loggy.Debug("Attempting to get or create workspace", "path", absPath)

		ws, err := m.app.Workspace.GetWorkspaceByPath(m.ctx, absPath)
		if err != nil {
			if !errors.Is(err, workspace.ErrWorkspaceNotFound) {
				loggy.Error("Error accessing workspace", "error", err)
				return workspaceMsg{error: fmt.Errorf("error accessing workspace: %w", err)}
			}

			dirName := filepath.Base(absPath)
			loggy.Info("Workspace not found, creating new one", "dir_name", dirName, "path", absPath)

			ws, err = m.app.Workspace.CreateWorkspace(m.ctx, absPath, dirName, "")
			if err != nil {
				loggy.Error("Failed to create workspace", "path", absPath, "error", err)
				return workspaceMsg{error: fmt.Errorf("failed to create workspace: %w", err)}
			}
			loggy.Info("Created new workspace", "name", ws.Name, "id", ws.ID)
		} else {
			loggy.Info("Using existing workspace", "name", ws.Name, "id", ws.ID)
		}

		m.app.Config.Analyzer.IndentUnit = m.app.Settings.EffectiveIndentUnit(m.ctx, ws.ID, m.checkOptions.IndentUnit)

		return workspaceMsg{workspace: ws}
	}
}

// prepareCheckData resolves the list of files to analyze based on the check
// options. It returns a command that sends a checkSetupMsg.
func prepareCheckData(m Model) tea.Cmd {
	return func() tea.Msg {
		if m.workspace == nil {
			return statusChangeMsg{error: fmt.Errorf("workspace not initialized for check prep")}
		}

		opts := m.checkOptions
		absPath := opts.AbsPath

		if (opts.Staged && (opts.CommitHash != "" || opts.Branch != "")) ||
			(opts.CommitHash != "" && opts.Branch != "") {
			return statusChangeMsg{error: fmt.Errorf("invalid check options: select only one of staged, commit, or branch")}
		}

		// Explicit paths take priority over git modes
		if len(opts.Paths) > 0 {
			return checkSetupMsg{
				paths:      opts.Paths,
				totalFiles: len(opts.Paths),
			}
		}

		if !m.app.Git.HasGitRepo(absPath) {
			return statusChangeMsg{error: fmt.Errorf("no Git repository found in %s (required for staged/commit/branch checks)", absPath)}
		}

		if err := m.app.Git.InitRepo(absPath); err != nil {
			return statusChangeMsg{error: fmt.Errorf("failed to open git repository: %w", err)}
		}

		req := git.DiffRequest{RepoPath: absPath}
		switch {
		case opts.CommitHash != "":
			req.DiffType = git.DiffTypeCommit
			req.CommitID = opts.CommitHash
		case opts.Branch != "":
			req.DiffType = git.DiffTypeBranch
			req.BranchOne = opts.BaseBranch
			req.BranchTwo = opts.Branch
		default:
			req.DiffType = git.DiffTypeStaged
		}

		diff, err := m.app.Git.GetDiff(req)
		if err != nil {
			loggy.Error("Failed to get diff", "type", req.DiffType, "error", err)
			return statusChangeMsg{error: fmt.Errorf("failed to get changes: %w", err)}
		}

		paths := diff.FilePaths()
		if len(paths) == 0 {
			return statusChangeMsg{error: fmt.Errorf("no changed files found - check your selection (staged files, commit hash, or branch names)")}
		}

		loggy.Debug("Resolved files for check", "count", len(paths), "type", req.DiffType)

		return checkSetupMsg{
			paths:          paths,
			totalFiles:     len(paths),
			commitHash:     opts.CommitHash,
			branchName:     opts.Branch,
			baseBranchName: opts.BaseBranch,
		}
	}
}

// checkNextFile analyzes a single file at the given index.
// It returns a command that sends a fileCheckedMsg.
func checkNextFile(m Model, currentIndex int) tea.Cmd {
	return func() tea.Msg {
		if m.workspace == nil {
			return statusChangeMsg{error: fmt.Errorf("workspace not initialized for file check")}
		}

		if currentIndex < 0 || currentIndex >= len(m.pathsToCheck) {
			loggy.Error("Invalid index for file check", "index", currentIndex, "total", len(m.pathsToCheck))
			return statusChangeMsg{newStatus: StatusViewingResults}
		}

		path := m.pathsToCheck[currentIndex]

		report, err := m.app.Checker.CheckFile(m.ctx, m.workspace, path)
		if err != nil {
			if errors.Is(err, checker.ErrFileSkipped) {
				loggy.Debug("Skipped non-analyzable file", "path", path)
				return fileCheckedMsg{
					skipped:         true,
					progressCurrent: currentIndex + 1,
					progressTotal:   m.totalFiles,
				}
			}
			loggy.Warn("Failed to check file", "path", path, "error", err)
			return fileCheckedMsg{
				progressCurrent: currentIndex + 1,
				progressTotal:   m.totalFiles,
				error:           fmt.Errorf("failed checking %s: %w", path, err),
			}
		}

		return fileCheckedMsg{
			report:          report,
			progressCurrent: currentIndex + 1,
			progressTotal:   m.totalFiles,
		}
	}
}
