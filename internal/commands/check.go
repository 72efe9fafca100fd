package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jedib0t/go-pretty/v6/progress"
	"github.com/urfave/cli/v2"

	"github.com/tildaslashalef/indentwise/internal/app"
	"github.com/tildaslashalef/indentwise/internal/checker"
	"github.com/tildaslashalef/indentwise/internal/commands/check"
	"github.com/tildaslashalef/indentwise/internal/git"
	"github.com/tildaslashalef/indentwise/internal/loggy"
	"github.com/tildaslashalef/indentwise/internal/report"
	"github.com/tildaslashalef/indentwise/internal/utils"
	"github.com/tildaslashalef/indentwise/internal/workspace"
)

// CheckCommand returns the CLI command for checking indentation
func CheckCommand() *cli.Command {
	return &cli.Command{
		Name:      "check",
		Usage:     "Check indentation conformance of source files",
		ArgsUsage: "[paths...]",
		Description: "Analyzes source files for over- and under-indented lines. " +
			"Pass explicit file paths, or use --staged, --commit or --branch to " +
			"check the files changed in git.",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "staged",
				Aliases: []string{"s"},
				Usage:   "Check files with staged changes",
			},
			&cli.StringFlag{
				Name:  "commit",
				Usage: "Check files changed in the given commit",
			},
			&cli.StringFlag{
				Name:  "branch",
				Usage: "Check files changed on the given branch",
			},
			&cli.StringFlag{
				Name:  "base-branch",
				Usage: "Base branch to compare against (with --branch)",
				Value: "main",
			},
			&cli.IntFlag{
				Name:    "unit",
				Aliases: []string{"u"},
				Usage:   "Override the indentation unit instead of inferring it",
			},
			&cli.BoolFlag{
				Name:    "tui",
				Aliases: []string{"t"},
				Usage:   "Browse results in the interactive TUI",
			},
		},
		Action: checkAction,
	}
}

func checkAction(c *cli.Context) error {
	application, err := app.FromContext(c)
	if err != nil {
		return err
	}

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current working directory: %w", err)
	}

	unit := c.Int("unit")
	paths := c.Args().Slice()
	staged := c.Bool("staged")
	commitHash := c.String("commit")
	branch := c.String("branch")
	baseBranch := c.String("base-branch")

	if c.Bool("tui") {
		tuiService := check.NewService(application)
		return tuiService.RunWithOptions(c.Context, check.CheckOptions{
			TargetDir:  cwd,
			AbsPath:    cwd,
			Paths:      paths,
			Staged:     staged,
			CommitHash: commitHash,
			Branch:     branch,
			BaseBranch: baseBranch,
			IndentUnit: unit,
		})
	}

	ctx := c.Context

	ws, err := getOrCreateWorkspace(ctx, application, cwd)
	if err != nil {
		return err
	}

	// --unit beats the persisted workspace override, which beats the global
	// configuration
	application.Config.Analyzer.IndentUnit = application.Settings.EffectiveIndentUnit(ctx, ws.ID, unit)

	if len(paths) == 0 {
		paths, err = resolveChangedFiles(application, cwd, staged, commitHash, branch, baseBranch)
		if err != nil {
			return err
		}
	}

	if len(paths) == 0 {
		utils.PrintInfo("No files to check")
		return nil
	}

	reports := checkWithProgress(ctx, application, ws, paths)

	report.PrintSummary(reports)
	for _, r := range reports {
		if !r.Skipped() && r.Run.ProblemCount > 0 {
			report.PrintFileReport(r, application.Config.Analyzer.TabWidth)
		}
	}
	fmt.Println(report.ProblemSummaryLine(reports))

	if hasProblems(reports) {
		return cli.Exit("", 1)
	}
	return nil
}

// getOrCreateWorkspace resolves the workspace for a directory, creating it
// on first use
func getOrCreateWorkspace(ctx context.Context, application *app.App, dir string) (*workspace.Workspace, error) {
	ws, err := application.Workspace.GetWorkspaceByPath(ctx, dir)
	if err == nil {
		return ws, nil
	}
	if !errors.Is(err, workspace.ErrWorkspaceNotFound) {
		return nil, fmt.Errorf("failed to get workspace: %w", err)
	}

	name := filepath.Base(dir)
	loggy.Info("Creating workspace for directory", "path", dir, "name", name)

	ws, err = application.Workspace.CreateWorkspace(ctx, dir, name, "")
	if err != nil {
		return nil, fmt.Errorf("failed to create workspace: %w", err)
	}
	return ws, nil
}

// checkWithProgress analyzes the given paths one at a time behind a progress
// tracker. Skipped and failed files are logged and omitted, matching
// Checker.CheckFiles.
func checkWithProgress(ctx context.Context, application *app.App, ws *workspace.Workspace, paths []string) []*checker.FileReport {
	pw := utils.CreateProgressWriter()
	tracker := utils.CreateProgressTracker(fmt.Sprintf("Checking %d file(s)", len(paths)), int64(len(paths)))
	utils.RenderProgressTrackers(pw, []*progress.Tracker{tracker})

	reports := make([]*checker.FileReport, 0, len(paths))
	for _, path := range paths {
		r, err := application.Checker.CheckFile(ctx, ws, path)
		tracker.Increment(1)
		if err != nil {
			if !errors.Is(err, checker.ErrFileSkipped) {
				loggy.Warn("Error checking file", "path", path, "error", err)
			}
			continue
		}
		reports = append(reports, r)
	}

	tracker.MarkAsDone()
	for pw.IsRenderInProgress() {
		time.Sleep(time.Millisecond * 20)
	}

	return reports
}

// resolveChangedFiles determines the files to check from the git working tree
func resolveChangedFiles(application *app.App, absPath string, staged bool, commitHash, branch, baseBranch string) ([]string, error) {
	if (staged && (commitHash != "" || branch != "")) || (commitHash != "" && branch != "") {
		return nil, fmt.Errorf("select only one of --staged, --commit, or --branch")
	}

	if !application.Git.HasGitRepo(absPath) {
		return nil, fmt.Errorf("no Git repository found in %s (pass file paths or run inside a repository)", absPath)
	}

	if err := application.Git.InitRepo(absPath); err != nil {
		return nil, fmt.Errorf("failed to open git repository: %w", err)
	}

	req := git.DiffRequest{RepoPath: absPath}
	switch {
	case commitHash != "":
		req.DiffType = git.DiffTypeCommit
		req.CommitID = commitHash
	case branch != "":
		req.DiffType = git.DiffTypeBranch
		req.BranchOne = baseBranch
		req.BranchTwo = branch
	default:
		req.DiffType = git.DiffTypeStaged
	}

	diff, err := application.Git.GetDiff(req)
	if err != nil {
		return nil, fmt.Errorf("failed to get changes: %w", err)
	}

	return diff.FilePaths(), nil
}

// hasProblems reports whether any checked file has at least one problem
func hasProblems(reports []*checker.FileReport) bool {
	for _, r := range reports {
		if !r.Skipped() && r.Run.ProblemCount > 0 {
			return true
		}
	}
	return false
}
