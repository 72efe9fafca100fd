// Package workspace provides workspace and file management for the
// Indentwise application
package workspace

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/tildaslashalef/indentwise/internal/ulid"
)

// Workspace represents a directory of source files to be analyzed
type Workspace struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Path        string    `json:"path"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// New creates a new workspace with the given path and name
func New(path string, name string) (*Workspace, error) {
	id := ulid.WorkspaceID()

	// Normalize path to absolute path
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("getting absolute path: %w", err)
	}

	if _, err := os.Stat(absPath); err != nil {
		return nil, fmt.Errorf("checking workspace path: %w", err)
	}

	now := time.Now()

	return &Workspace{
		ID:        id,
		Name:      name,
		Path:      absPath,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// HasGitRepo checks if the workspace path contains a Git repository
func (w *Workspace) HasGitRepo() bool {
	gitDir := filepath.Join(w.Path, ".git")
	_, err := os.Stat(gitDir)
	return err == nil
}

// SetDescription sets the description for the workspace
func (w *Workspace) SetDescription(description string) {
	w.Description = description
	w.UpdatedAt = time.Now()
}
