package workspace

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/tildaslashalef/indentwise/internal/loggy"
)

var (
	// ErrWorkspaceNotFound is returned when a workspace is not found
	ErrWorkspaceNotFound = errors.New("workspace not found")

	// ErrWorkspaceAlreadyExists is returned when a workspace already exists with the same path
	ErrWorkspaceAlreadyExists = errors.New("workspace already exists")

	// ErrFileNotFound is returned when a file is not found
	ErrFileNotFound = errors.New("file not found")
)

// PaginationParams defines parameters for paginated queries
type PaginationParams struct {
	Page  int
	Limit int
}

// NewPaginationParams creates a new PaginationParams instance with default values
func NewPaginationParams(page, limit int) PaginationParams {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 10 // Default to 10 items per page
	}
	if limit > 100 {
		limit = 100 // Cap at 100 items per page
	}
	return PaginationParams{
		Page:  page,
		Limit: limit,
	}
}

// Repository defines the interface for workspace persistence operations
type Repository interface {
	// Workspace operations
	CreateWorkspace(ctx context.Context, workspace *Workspace) error
	GetWorkspaceByID(ctx context.Context, id string) (*Workspace, error)
	GetWorkspaceByPath(ctx context.Context, path string) (*Workspace, error)
	ListWorkspaces(ctx context.Context) ([]*Workspace, error)
	ListWorkspacesWithPagination(ctx context.Context, params PaginationParams) ([]*Workspace, error)
	UpdateWorkspace(ctx context.Context, workspace *Workspace) error
	DeleteWorkspace(ctx context.Context, id string) error
	FindWorkspacesByName(ctx context.Context, searchTerm string) ([]*Workspace, error)

	// File operations
	SaveFile(ctx context.Context, file *File) error
	GetFileByID(ctx context.Context, fileID string) (*File, error)
	GetFileByPath(ctx context.Context, workspaceID, filePath string) (*File, error)
	GetFilesByWorkspaceID(ctx context.Context, workspaceID string) ([]*File, error)
	UpdateFile(ctx context.Context, file *File) error
	DeleteFile(ctx context.Context, fileID string) error
}

// SQLRepository implements Repository using SQLite database
type SQLRepository struct {
	db      *sql.DB
	logger  *loggy.Logger
	builder sq.StatementBuilderType
}

// NewSQLRepository creates a new workspace SQL repository
func NewSQLRepository(db *sql.DB, logger *loggy.Logger) Repository {
	return &SQLRepository{
		db:      db,
		logger:  logger,
		builder: sq.StatementBuilder.PlaceholderFormat(sq.Question),
	}
}

// CreateWorkspace saves a new workspace to the database
func (r *SQLRepository) CreateWorkspace(ctx context.Context, workspace *Workspace) error {
	// Check if a workspace with the same path already exists
	existing, err := r.GetWorkspaceByPath(ctx, workspace.Path)
	if err != nil && !errors.Is(err, ErrWorkspaceNotFound) {
		return fmt.Errorf("checking for existing workspace: %w", err)
	}

	if existing != nil {
		return ErrWorkspaceAlreadyExists
	}

	now := time.Now()
	if workspace.CreatedAt.IsZero() {
		workspace.CreatedAt = now
	}
	if workspace.UpdatedAt.IsZero() {
		workspace.UpdatedAt = now
	}

	query, args, err := r.builder.
		Insert("workspaces").
		Columns(
			"id",
			"name",
			"path",
			"description",
			"created_at",
			"updated_at",
		).
		Values(
			workspace.ID,
			workspace.Name,
			workspace.Path,
			workspace.Description,
			workspace.CreatedAt,
			workspace.UpdatedAt,
		).
		ToSql()

	if err != nil {
		return fmt.Errorf("building insert query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("inserting workspace: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("no rows affected when creating workspace")
	}

	r.logger.Info("Created workspace", "id", workspace.ID, "name", workspace.Name, "path", workspace.Path)
	return nil
}

// GetWorkspaceByID retrieves a workspace by its ID
func (r *SQLRepository) GetWorkspaceByID(ctx context.Context, id string) (*Workspace, error) {
	query, args, err := r.builder.
		Select(
			"id",
			"name",
			"path",
			"description",
			"created_at",
			"updated_at",
		).
		From("workspaces").
		Where(sq.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("building select query: %w", err)
	}

	row := r.db.QueryRowContext(ctx, query, args...)
	workspace, err := scanWorkspace(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrWorkspaceNotFound
		}
		return nil, fmt.Errorf("scanning workspace: %w", err)
	}

	return workspace, nil
}

// GetWorkspaceByPath retrieves a workspace by its path
func (r *SQLRepository) GetWorkspaceByPath(ctx context.Context, path string) (*Workspace, error) {
	// Normalize path to absolute path
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("getting absolute path: %w", err)
	}

	query, args, err := r.builder.
		Select(
			"id",
			"name",
			"path",
			"description",
			"created_at",
			"updated_at",
		).
		From("workspaces").
		Where(sq.Eq{"path": absPath}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("building select query: %w", err)
	}

	row := r.db.QueryRowContext(ctx, query, args...)
	workspace, err := scanWorkspace(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrWorkspaceNotFound
		}
		return nil, fmt.Errorf("scanning workspace: %w", err)
	}

	return workspace, nil
}

// ListWorkspaces returns all workspaces
func (r *SQLRepository) ListWorkspaces(ctx context.Context) ([]*Workspace, error) {
	query, args, err := r.builder.
		Select(
			"id",
			"name",
			"path",
			"description",
			"created_at",
			"updated_at",
		).
		From("workspaces").
		OrderBy("updated_at DESC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("building select query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying for workspaces: %w", err)
	}
	defer rows.Close()

	var workspaces []*Workspace
	for rows.Next() {
		workspace, err := scanWorkspaceFromRows(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning workspace: %w", err)
		}
		workspaces = append(workspaces, workspace)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating rows: %w", err)
	}

	return workspaces, nil
}

// ListWorkspacesWithPagination returns workspaces with pagination
func (r *SQLRepository) ListWorkspacesWithPagination(ctx context.Context, params PaginationParams) ([]*Workspace, error) {
	query := r.builder.
		Select(
			"id",
			"name",
			"path",
			"description",
			"created_at",
			"updated_at",
		).
		From("workspaces").
		OrderBy("updated_at DESC")

	if params.Limit > 0 {
		query = query.Limit(uint64(params.Limit))
		if params.Page > 0 {
			offset := uint64((params.Page - 1) * params.Limit)
			query = query.Offset(offset)
		}
	}

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("building paginated query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("executing paginated query: %w", err)
	}
	defer rows.Close()

	var workspaces []*Workspace
	for rows.Next() {
		workspace, err := scanWorkspaceFromRows(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning workspace: %w", err)
		}
		workspaces = append(workspaces, workspace)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating rows: %w", err)
	}

	return workspaces, nil
}

// UpdateWorkspace updates an existing workspace
func (r *SQLRepository) UpdateWorkspace(ctx context.Context, workspace *Workspace) error {
	// Ensure timestamp is in UTC format
	updatedAt := workspace.UpdatedAt.UTC().Format(time.RFC3339)

	query, args, err := r.builder.
		Update("workspaces").
		Set("name", workspace.Name).
		Set("path", workspace.Path).
		Set("description", workspace.Description).
		Set("updated_at", updatedAt).
		Where(sq.Eq{"id": workspace.ID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("building update query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("updating workspace: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrWorkspaceNotFound
	}

	r.logger.Info("Updated workspace", "id", workspace.ID, "name", workspace.Name)
	return nil
}

// DeleteWorkspace deletes a workspace and all associated data by its ID
func (r *SQLRepository) DeleteWorkspace(ctx context.Context, id string) error {
	// Start a transaction to ensure atomicity
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	query, args, err := r.builder.
		Delete("workspaces").
		Where(sq.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("building delete query: %w", err)
	}

	result, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("deleting workspace: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrWorkspaceNotFound
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	r.logger.Info("Deleted workspace and all associated data",
		"id", id,
		"cascade_deleted", "files, runs, problems")
	return nil
}

// FindWorkspacesByName searches for workspaces with names containing the search term
func (r *SQLRepository) FindWorkspacesByName(ctx context.Context, searchTerm string) ([]*Workspace, error) {
	query, args, err := r.builder.
		Select(
			"id",
			"name",
			"path",
			"description",
			"created_at",
			"updated_at",
		).
		From("workspaces").
		Where(sq.Like{"name": "%" + searchTerm + "%"}).
		OrderBy("updated_at DESC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("building search query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("searching for workspaces: %w", err)
	}
	defer rows.Close()

	var workspaces []*Workspace
	for rows.Next() {
		workspace, err := scanWorkspaceFromRows(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning workspace: %w", err)
		}
		workspaces = append(workspaces, workspace)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating rows: %w", err)
	}

	return workspaces, nil
}

// SaveFile inserts a new file record
func (r *SQLRepository) SaveFile(ctx context.Context, file *File) error {
	now := time.Now()
	if file.CreatedAt.IsZero() {
		file.CreatedAt = now
	}
	if file.UpdatedAt.IsZero() {
		file.UpdatedAt = now
	}

	query, args, err := r.builder.
		Insert("files").
		Columns(
			"id",
			"workspace_id",
			"path",
			"language",
			"line_count",
			"created_at",
			"updated_at",
		).
		Values(
			file.ID,
			file.WorkspaceID,
			file.Path,
			file.Language,
			file.LineCount,
			file.CreatedAt,
			file.UpdatedAt,
		).
		ToSql()

	if err != nil {
		return fmt.Errorf("building insert query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("inserting file: %w", err)
	}

	r.logger.Debug("Saved file", "id", file.ID, "path", file.Path)
	return nil
}

// GetFileByID retrieves a file by its ID
func (r *SQLRepository) GetFileByID(ctx context.Context, fileID string) (*File, error) {
	query, args, err := r.builder.
		Select(
			"id",
			"workspace_id",
			"path",
			"language",
			"line_count",
			"created_at",
			"updated_at",
		).
		From("files").
		Where(sq.Eq{"id": fileID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("building select query: %w", err)
	}

	row := r.db.QueryRowContext(ctx, query, args...)
	file, err := scanFile(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrFileNotFound
		}
		return nil, fmt.Errorf("scanning file: %w", err)
	}

	return file, nil
}

// GetFileByPath retrieves a file by its workspace-relative path
func (r *SQLRepository) GetFileByPath(ctx context.Context, workspaceID, filePath string) (*File, error) {
	query, args, err := r.builder.
		Select(
			"id",
			"workspace_id",
			"path",
			"language",
			"line_count",
			"created_at",
			"updated_at",
		).
		From("files").
		Where(sq.Eq{"workspace_id": workspaceID, "path": filePath}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("building select query: %w", err)
	}

	row := r.db.QueryRowContext(ctx, query, args...)
	file, err := scanFile(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrFileNotFound
		}
		return nil, fmt.Errorf("scanning file: %w", err)
	}

	return file, nil
}

// GetFilesByWorkspaceID retrieves all files for a workspace
func (r *SQLRepository) GetFilesByWorkspaceID(ctx context.Context, workspaceID string) ([]*File, error) {
	query, args, err := r.builder.
		Select(
			"id",
			"workspace_id",
			"path",
			"language",
			"line_count",
			"created_at",
			"updated_at",
		).
		From("files").
		Where(sq.Eq{"workspace_id": workspaceID}).
		OrderBy("path ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("building select query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying for files: %w", err)
	}
	defer rows.Close()

	var files []*File
	for rows.Next() {
		file, err := scanFileFromRows(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning file: %w", err)
		}
		files = append(files, file)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating rows: %w", err)
	}

	return files, nil
}

// UpdateFile updates an existing file record
func (r *SQLRepository) UpdateFile(ctx context.Context, file *File) error {
	file.UpdatedAt = time.Now()

	query, args, err := r.builder.
		Update("files").
		Set("language", file.Language).
		Set("line_count", file.LineCount).
		Set("updated_at", file.UpdatedAt.UTC().Format(time.RFC3339)).
		Where(sq.Eq{"id": file.ID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("building update query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("updating file: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrFileNotFound
	}

	return nil
}

// DeleteFile deletes a file and its runs by ID
func (r *SQLRepository) DeleteFile(ctx context.Context, fileID string) error {
	query, args, err := r.builder.
		Delete("files").
		Where(sq.Eq{"id": fileID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("building delete query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("deleting file: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrFileNotFound
	}

	return nil
}

// Private helper functions

// scanWorkspace scans a workspace from a row
func scanWorkspace(row *sql.Row) (*Workspace, error) {
	var workspace Workspace
	var createdAtStr, updatedAtStr string

	err := row.Scan(
		&workspace.ID,
		&workspace.Name,
		&workspace.Path,
		&workspace.Description,
		&createdAtStr,
		&updatedAtStr,
	)
	if err != nil {
		return nil, err
	}

	workspace.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}

	workspace.UpdatedAt, err = time.Parse(time.RFC3339, updatedAtStr)
	if err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}

	return &workspace, nil
}

// scanWorkspaceFromRows scans a workspace from a rows object
func scanWorkspaceFromRows(rows *sql.Rows) (*Workspace, error) {
	var workspace Workspace
	var createdAtStr, updatedAtStr string

	err := rows.Scan(
		&workspace.ID,
		&workspace.Name,
		&workspace.Path,
		&workspace.Description,
		&createdAtStr,
		&updatedAtStr,
	)
	if err != nil {
		return nil, err
	}

	workspace.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}

	workspace.UpdatedAt, err = time.Parse(time.RFC3339, updatedAtStr)
	if err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}

	return &workspace, nil
}

// scanFile scans a file from a row
func scanFile(row *sql.Row) (*File, error) {
	var file File
	var createdAtStr, updatedAtStr string

	err := row.Scan(
		&file.ID,
		&file.WorkspaceID,
		&file.Path,
		&file.Language,
		&file.LineCount,
		&createdAtStr,
		&updatedAtStr,
	)
	if err != nil {
		return nil, err
	}

	file.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}

	file.UpdatedAt, err = time.Parse(time.RFC3339, updatedAtStr)
	if err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}

	return &file, nil
}

// scanFileFromRows scans a file from a rows object
func scanFileFromRows(rows *sql.Rows) (*File, error) {
	var file File
	var createdAtStr, updatedAtStr string

	err := rows.Scan(
		&file.ID,
		&file.WorkspaceID,
		&file.Path,
		&file.Language,
		&file.LineCount,
		&createdAtStr,
		&updatedAtStr,
	)
	if err != nil {
		return nil, err
	}

	file.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}

	file.UpdatedAt, err = time.Parse(time.RFC3339, updatedAtStr)
	if err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}

	return &file, nil
}
