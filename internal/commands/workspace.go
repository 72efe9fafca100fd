package commands

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/tildaslashalef/indentwise/internal/app"
	"github.com/tildaslashalef/indentwise/internal/utils"
	"github.com/tildaslashalef/indentwise/internal/workspace"
)

// WorkspaceCommand returns the workspace management command
func WorkspaceCommand() *cli.Command {
	return &cli.Command{
		Name:    "workspace",
		Aliases: []string{"ws"},
		Usage:   "Manage tracked workspaces",
		Subcommands: []*cli.Command{
			{
				Name:   "list",
				Usage:  "List all workspaces",
				Action: workspaceListAction,
			},
			{
				Name:      "show",
				Usage:     "Show details of a workspace",
				ArgsUsage: "[name]",
				Action:    workspaceShowAction,
			},
			{
				Name:      "files",
				Usage:     "List the tracked files of a workspace",
				ArgsUsage: "[name]",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "tree",
						Usage: "Group files by directory",
					},
				},
				Action: workspaceFilesAction,
			},
			{
				Name:      "set-unit",
				Usage:     "Set the indent unit used when checking a workspace (0 clears the override)",
				ArgsUsage: "<unit> [name]",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "global",
						Usage: "Persist the unit as the global default instead",
					},
				},
				Action: workspaceSetUnitAction,
			},
			{
				Name:      "delete",
				Usage:     "Delete a workspace and its recorded runs",
				ArgsUsage: "[name]",
				Action:    workspaceDeleteAction,
			},
		},
	}
}

func workspaceListAction(c *cli.Context) error {
	application, err := app.FromContext(c)
	if err != nil {
		return err
	}

	workspaces, err := application.Workspace.ListWorkspaces(c.Context)
	if err != nil {
		return fmt.Errorf("failed to list workspaces: %w", err)
	}

	if len(workspaces) == 0 {
		utils.PrintInfo("No workspaces found")
		return nil
	}

	rows := make([][]string, 0, len(workspaces))
	for _, ws := range workspaces {
		rows = append(rows, []string{
			ws.ID,
			ws.Name,
			ws.Path,
			ws.CreatedAt.Format("2006-01-02"),
		})
	}

	opts := utils.DefaultTableOptions()
	opts.Title = "Workspaces"
	utils.PrintTable([]string{"ID", "Name", "Path", "Created"}, rows, opts)

	return nil
}

func workspaceShowAction(c *cli.Context) error {
	application, err := app.FromContext(c)
	if err != nil {
		return err
	}

	ws, err := findWorkspace(c, application)
	if err != nil {
		return err
	}

	utils.PrintHeading("Workspace: " + ws.Name)
	utils.PrintKeyValue("ID", ws.ID)
	utils.PrintKeyValue("Path", ws.Path)
	if ws.Description != "" {
		utils.PrintKeyValue("Description", ws.Description)
	}
	utils.PrintKeyValue("Created", ws.CreatedAt.Format("2006-01-02 15:04:05"))

	if ws.HasGitRepo() {
		utils.PrintKeyValue("Git", "yes")
	} else {
		utils.PrintKeyValue("Git", "no")
	}

	if unit, err := application.Settings.WorkspaceIndentUnit(c.Context, ws.ID); err == nil && unit > 0 {
		utils.PrintKeyValue("Indent unit", strconv.Itoa(unit))
	}

	files, err := application.Workspace.ListFiles(c.Context, ws.ID)
	if err == nil {
		utils.PrintKeyValue("Tracked files", strconv.Itoa(len(files)))
	}

	return nil
}

func workspaceFilesAction(c *cli.Context) error {
	application, err := app.FromContext(c)
	if err != nil {
		return err
	}

	ws, err := findWorkspace(c, application)
	if err != nil {
		return err
	}

	files, err := application.Workspace.ListFiles(c.Context, ws.ID)
	if err != nil {
		return fmt.Errorf("failed to list files: %w", err)
	}

	if len(files) == 0 {
		utils.PrintInfo("No files tracked yet - run a check first")
		return nil
	}

	if c.Bool("tree") {
		byDir := make(map[string][]string)
		for _, f := range files {
			byDir[f.Directory()] = append(byDir[f.Directory()], f.Filename())
		}
		utils.PrintHeading("Files in " + ws.Name)
		utils.RenderNestedList(byDir)
		return nil
	}

	rows := make([][]string, 0, len(files))
	for _, f := range files {
		rows = append(rows, []string{
			f.Path,
			f.Language,
			strconv.Itoa(f.LineCount),
			f.UpdatedAt.Format("2006-01-02 15:04:05"),
		})
	}

	opts := utils.DefaultTableOptions()
	opts.Title = "Files in " + ws.Name
	utils.PrintTable([]string{"Path", "Language", "Lines", "Last Checked"}, rows, opts)

	return nil
}

func workspaceDeleteAction(c *cli.Context) error {
	application, err := app.FromContext(c)
	if err != nil {
		return err
	}

	ws, err := findWorkspace(c, application)
	if err != nil {
		return err
	}

	if err := application.Workspace.DeleteWorkspace(c.Context, ws.ID); err != nil {
		return fmt.Errorf("failed to delete workspace: %w", err)
	}

	utils.PrintSuccess("Deleted workspace " + ws.Name)
	return nil
}

// workspaceSetUnitAction persists or clears an indent-unit override
func workspaceSetUnitAction(c *cli.Context) error {
	application, err := app.FromContext(c)
	if err != nil {
		return err
	}

	if c.Args().Len() == 0 {
		return fmt.Errorf("missing unit argument")
	}
	unit, err := strconv.Atoi(c.Args().Get(0))
	if err != nil || unit < 0 {
		return fmt.Errorf("invalid unit %q: expected a non-negative number", c.Args().Get(0))
	}

	ctx := c.Context

	if c.Bool("global") {
		application.Config.Analyzer.IndentUnit = unit
		if err := application.Settings.SaveAnalyzerSettings(ctx); err != nil {
			return fmt.Errorf("failed to save analyzer settings: %w", err)
		}
		utils.PrintSuccess(fmt.Sprintf("Global indent unit set to %d", unit))
		return nil
	}

	ws, err := lookupWorkspace(c, application, c.Args().Get(1))
	if err != nil {
		return err
	}

	if unit == 0 {
		if err := application.Settings.ClearWorkspaceIndentUnit(ctx, ws.ID); err != nil {
			return fmt.Errorf("failed to clear indent unit: %w", err)
		}
		utils.PrintSuccess("Cleared indent unit override for " + ws.Name)
		return nil
	}

	if err := application.Settings.SetWorkspaceIndentUnit(ctx, ws.ID, unit); err != nil {
		return fmt.Errorf("failed to set indent unit: %w", err)
	}
	utils.PrintSuccess(fmt.Sprintf("Indent unit for %s set to %d", ws.Name, unit))
	return nil
}

// findWorkspace resolves a workspace from the name argument, falling back to
// the workspace of the current directory
func findWorkspace(c *cli.Context, application *app.App) (*workspace.Workspace, error) {
	return lookupWorkspace(c, application, c.Args().First())
}

// lookupWorkspace resolves a workspace by (partial) name, falling back to
// the workspace of the current directory when name is empty
func lookupWorkspace(c *cli.Context, application *app.App, name string) (*workspace.Workspace, error) {
	ctx := c.Context

	if name == "" {
		currentDir, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}

		ws, err := application.Workspace.GetWorkspaceByPath(ctx, currentDir)
		if err != nil {
			return nil, fmt.Errorf("no workspace for current directory (run a check first or pass a name): %w", err)
		}
		return ws, nil
	}

	workspaces, err := application.Workspace.ListWorkspaces(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list workspaces: %w", err)
	}

	var partial *workspace.Workspace
	for _, ws := range workspaces {
		if ws.Name == name {
			return ws, nil
		}
		if partial == nil && strings.Contains(strings.ToLower(ws.Name), strings.ToLower(name)) {
			partial = ws
		}
	}

	if partial != nil {
		return partial, nil
	}
	return nil, fmt.Errorf("no workspace found with name: %s", name)
}
