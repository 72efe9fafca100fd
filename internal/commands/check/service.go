// Package check implements the interactive indentation check TUI.
package check

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/tildaslashalef/indentwise/internal/app"
)

// Service is the main service for the TUI
type Service struct {
	app *app.App
}

// NewService creates a new TUI service
func NewService(application *app.App) *Service {
	return &Service{
		app: application,
	}
}

// Run starts the TUI with default options (staged changes, current directory)
func (s *Service) Run(ctx context.Context) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current working directory: %w", err)
	}

	return s.RunWithOptions(ctx, CheckOptions{
		TargetDir: cwd,
		AbsPath:   cwd,
	})
}

// RunWithOptions starts the TUI with specific options
func (s *Service) RunWithOptions(ctx context.Context, options CheckOptions) error {
	// Default to staged changes when no paths and no other mode is given
	if len(options.Paths) == 0 && options.CommitHash == "" && options.Branch == "" {
		options.Staged = true
	}

	model := NewModel(s.app)
	model.SetCheckOptions(options)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
