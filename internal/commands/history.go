package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/tildaslashalef/indentwise/internal/app"
	"github.com/tildaslashalef/indentwise/internal/report"
	"github.com/tildaslashalef/indentwise/internal/utils"
)

// HistoryCommand returns the command for browsing past check runs
func HistoryCommand() *cli.Command {
	return &cli.Command{
		Name:      "history",
		Usage:     "Show past check runs of a workspace",
		ArgsUsage: "[workspace-name]",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "limit",
				Aliases: []string{"n"},
				Usage:   "Maximum number of runs to show",
				Value:   20,
			},
			&cli.StringFlag{
				Name:  "run",
				Usage: "Show the problems recorded for a specific run ID",
			},
		},
		Action: historyAction,
	}
}

func historyAction(c *cli.Context) error {
	application, err := app.FromContext(c)
	if err != nil {
		return err
	}

	ctx := c.Context

	if runID := c.String("run"); runID != "" {
		return showRunProblems(c, application, runID)
	}

	ws, err := findWorkspace(c, application)
	if err != nil {
		return err
	}

	limit := c.Int("limit")
	if limit <= 0 {
		limit = 20
	}

	runs, err := application.Checker.GetRunsByWorkspace(ctx, ws.ID, limit, 0)
	if err != nil {
		return fmt.Errorf("failed to get runs: %w", err)
	}

	files, err := application.Workspace.ListFiles(ctx, ws.ID)
	if err != nil {
		return fmt.Errorf("failed to list files: %w", err)
	}

	filePathsByID := make(map[string]string, len(files))
	for _, f := range files {
		filePathsByID[f.ID] = f.Path
	}

	utils.PrintHeading("History for " + ws.Name)
	report.PrintRunHistory(runs, filePathsByID)

	return nil
}

// showRunProblems prints the persisted problems of a single run
func showRunProblems(c *cli.Context, application *app.App, runID string) error {
	ctx := c.Context

	run, err := application.Checker.GetRun(ctx, runID)
	if err != nil {
		return fmt.Errorf("failed to get run %s: %w", runID, err)
	}

	file, err := application.Workspace.GetFile(ctx, run.FileID)
	filePath := run.FileID
	if err == nil {
		filePath = file.Path
	}

	utils.PrintHeading("Run " + run.ID)
	utils.PrintKeyValue("File", filePath)
	utils.PrintKeyValue("Indent unit", strconv.Itoa(run.IndentUnit))
	utils.PrintKeyValue("Lines", strconv.Itoa(run.LineCount))
	utils.PrintKeyValue("Checked at", run.CreatedAt.Format("2006-01-02 15:04:05"))

	problems, err := application.Checker.GetProblemsByRun(ctx, run.ID)
	if err != nil {
		return fmt.Errorf("failed to get problems: %w", err)
	}

	if len(problems) == 0 {
		utils.PrintSuccess("No problems recorded for this run")
		return nil
	}

	rows := make([][]string, 0, len(problems))
	for _, p := range problems {
		rows = append(rows, []string{
			strconv.Itoa(p.LineIndex + 1),
			strings.ToUpper(p.Direction.Label()),
			strconv.Itoa(p.DetectedWidth),
			strconv.Itoa(p.ExpectedWidth),
			p.Message,
		})
	}

	opts := utils.DefaultTableOptions()
	opts.Title = "Problems"
	utils.PrintTable([]string{"Line", "Direction", "Detected", "Expected", "Message"}, rows, opts)

	return nil
}
