package workspace

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/tildaslashalef/indentwise/internal/config"
	"github.com/tildaslashalef/indentwise/internal/loggy"
	"github.com/tildaslashalef/indentwise/internal/utils"
)

// Service provides workspace management operations
type Service struct {
	repo   Repository
	logger *loggy.Logger
}

// NewService creates a new workspace service
func NewService(db *sql.DB, logger *loggy.Logger) *Service {
	return &Service{
		repo:   NewSQLRepository(db, logger),
		logger: logger,
	}
}

// NewServiceWithRepository creates a service with a custom repository implementation (for testing)
func NewServiceWithRepository(repo Repository, logger *loggy.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// GetRepository returns the repository implementation
func (s *Service) GetRepository() Repository {
	return s.repo
}

// CreateWorkspace creates a new workspace
func (s *Service) CreateWorkspace(ctx context.Context, path, name, description string) (*Workspace, error) {
	// Normalize path to absolute path
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path: %w", err)
	}

	// Check if workspace already exists for this path
	existingWorkspace, err := s.repo.GetWorkspaceByPath(ctx, absPath)
	if err != nil && !errors.Is(err, ErrWorkspaceNotFound) {
		return nil, fmt.Errorf("failed to check for existing workspace: %w", err)
	}

	if existingWorkspace != nil {
		return nil, ErrWorkspaceAlreadyExists
	}

	if name == "" {
		name = workspaceNameFor(absPath)
	}

	ws, err := New(absPath, name)
	if err != nil {
		return nil, fmt.Errorf("failed to create workspace: %w", err)
	}

	if description != "" {
		ws.SetDescription(description)
	}

	if err := s.repo.CreateWorkspace(ctx, ws); err != nil {
		return nil, fmt.Errorf("failed to save workspace: %w", err)
	}

	s.logger.Info("Created new workspace",
		"id", ws.ID,
		"name", ws.Name,
		"path", ws.Path,
	)

	return ws, nil
}

// GetWorkspace retrieves a workspace by ID
func (s *Service) GetWorkspace(ctx context.Context, id string) (*Workspace, error) {
	ws, err := s.repo.GetWorkspaceByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get workspace: %w", err)
	}
	return ws, nil
}

// GetWorkspaceByPath retrieves a workspace by path
func (s *Service) GetWorkspaceByPath(ctx context.Context, path string) (*Workspace, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path: %w", err)
	}

	ws, err := s.repo.GetWorkspaceByPath(ctx, absPath)
	if err != nil {
		return nil, fmt.Errorf("failed to get workspace: %w", err)
	}
	return ws, nil
}

// ListWorkspaces returns all workspaces
func (s *Service) ListWorkspaces(ctx context.Context) ([]*Workspace, error) {
	workspaces, err := s.repo.ListWorkspaces(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list workspaces: %w", err)
	}
	return workspaces, nil
}

// UpdateWorkspace updates an existing workspace
func (s *Service) UpdateWorkspace(ctx context.Context, workspace *Workspace) error {
	if err := s.repo.UpdateWorkspace(ctx, workspace); err != nil {
		return fmt.Errorf("failed to update workspace: %w", err)
	}

	s.logger.Info("Updated workspace", "id", workspace.ID, "name", workspace.Name)
	return nil
}

// DeleteWorkspace deletes a workspace by ID
func (s *Service) DeleteWorkspace(ctx context.Context, id string) error {
	if err := s.repo.DeleteWorkspace(ctx, id); err != nil {
		return fmt.Errorf("failed to delete workspace: %w", err)
	}

	s.logger.Info("Deleted workspace", "id", id)
	return nil
}

// GetCurrentWorkspace retrieves or creates a workspace for the current directory
func (s *Service) GetCurrentWorkspace(ctx context.Context, cfg *config.Config) (*Workspace, error) {
	currentDir, err := filepath.Abs(".")
	if err != nil {
		return nil, fmt.Errorf("failed to get current directory: %w", err)
	}

	workspace, err := s.repo.GetWorkspaceByPath(ctx, currentDir)
	if err != nil {
		if !errors.Is(err, ErrWorkspaceNotFound) {
			return nil, fmt.Errorf("failed to check for workspace: %w", err)
		}

		// If workspace doesn't exist and auto-create is enabled, create it
		if cfg.Workspace.AutoCreate {
			s.logger.Info("No workspace found for current directory, creating one", "path", currentDir)

			workspace, err = s.CreateWorkspace(ctx, currentDir, workspaceNameFor(currentDir), "")
			if err != nil {
				return nil, fmt.Errorf("failed to create workspace: %w", err)
			}

			return workspace, nil
		}

		return nil, fmt.Errorf("no workspace found for directory %s (auto-create disabled)", currentDir)
	}

	s.logger.Info("Using workspace", "id", workspace.ID, "name", workspace.Name)
	return workspace, nil
}

// TrackFile gets or creates the file record for a workspace-relative path and
// refreshes its language and line count.
func (s *Service) TrackFile(ctx context.Context, workspaceID, filePath, language string, lineCount int) (*File, error) {
	file, err := s.repo.GetFileByPath(ctx, workspaceID, filePath)
	if err != nil {
		if !errors.Is(err, ErrFileNotFound) {
			return nil, fmt.Errorf("getting file: %w", err)
		}

		file = NewFile(workspaceID, filePath, language)
		file.LineCount = lineCount
		if err := s.repo.SaveFile(ctx, file); err != nil {
			return nil, fmt.Errorf("saving file: %w", err)
		}
		return file, nil
	}

	file.Language = language
	file.LineCount = lineCount
	if err := s.repo.UpdateFile(ctx, file); err != nil {
		return nil, fmt.Errorf("updating file: %w", err)
	}

	return file, nil
}

// GetFile gets a file by its ID
func (s *Service) GetFile(ctx context.Context, fileID string) (*File, error) {
	return s.repo.GetFileByID(ctx, fileID)
}

// GetFileByPath gets a file by its path within a workspace
func (s *Service) GetFileByPath(ctx context.Context, workspaceID, filePath string) (*File, error) {
	return s.repo.GetFileByPath(ctx, workspaceID, filePath)
}

// ListFiles lists all files in a workspace
func (s *Service) ListFiles(ctx context.Context, workspaceID string) ([]*File, error) {
	return s.repo.GetFilesByWorkspaceID(ctx, workspaceID)
}

// DeleteFile deletes a file and its analysis history
func (s *Service) DeleteFile(ctx context.Context, fileID string) error {
	return s.repo.DeleteFile(ctx, fileID)
}

// workspaceNameFor derives a workspace name from its directory, falling back
// to a generated name when the directory yields nothing usable.
func workspaceNameFor(path string) string {
	name := utils.SanitizeWorkspaceName(filepath.Base(path))
	if name == "" {
		name = utils.GenerateWorkspaceName()
	}
	return name
}
