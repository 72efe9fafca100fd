package workspace

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	sq "github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tildaslashalef/indentwise/internal/loggy"
)

// testSQLRepository is a wrapper around SQLRepository for testing
type testSQLRepository struct {
	*SQLRepository
}

// NewTestSQLRepository creates a new test repository instance
func NewTestSQLRepository(db *sql.DB) *testSQLRepository {
	logger := loggy.NewNoopLogger()

	return &testSQLRepository{
		SQLRepository: &SQLRepository{
			db:      db,
			logger:  logger,
			builder: sq.StatementBuilder.PlaceholderFormat(sq.Question),
		},
	}
}

func TestWorkspaceRepository(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err, "Failed to create mock database")
	defer db.Close()

	repo := NewTestSQLRepository(db)

	sampleWorkspace := &Workspace{
		ID:          "ws-123456",
		Name:        "test-workspace",
		Path:        "/path/to/workspace",
		Description: "Test description",
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	t.Run("CreateWorkspace", func(t *testing.T) {
		mock.ExpectQuery("SELECT .+ FROM workspaces WHERE path = ?").
			WithArgs(sampleWorkspace.Path).
			WillReturnError(sql.ErrNoRows)

		mock.ExpectExec("INSERT INTO workspaces").
			WithArgs(
				sampleWorkspace.ID,
				sampleWorkspace.Name,
				sampleWorkspace.Path,
				sampleWorkspace.Description,
				sqlmock.AnyArg(),
				sqlmock.AnyArg(),
			).
			WillReturnResult(sqlmock.NewResult(1, 1))

		err := repo.CreateWorkspace(context.Background(), sampleWorkspace)
		assert.NoError(t, err, "CreateWorkspace should not return an error")

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("GetWorkspaceByID", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{
			"id", "name", "path", "description", "created_at", "updated_at",
		}).AddRow(
			sampleWorkspace.ID,
			sampleWorkspace.Name,
			sampleWorkspace.Path,
			sampleWorkspace.Description,
			sampleWorkspace.CreatedAt.Format(time.RFC3339),
			sampleWorkspace.UpdatedAt.Format(time.RFC3339),
		)

		mock.ExpectQuery("SELECT .+ FROM workspaces WHERE id = ?").
			WithArgs(sampleWorkspace.ID).
			WillReturnRows(rows)

		workspace, err := repo.GetWorkspaceByID(context.Background(), sampleWorkspace.ID)
		assert.NoError(t, err, "GetWorkspaceByID should not return an error")
		assert.NotNil(t, workspace, "Workspace should not be nil")
		assert.Equal(t, sampleWorkspace.ID, workspace.ID, "Workspace ID should match")
		assert.Equal(t, sampleWorkspace.Name, workspace.Name, "Workspace name should match")

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("GetWorkspaceByIDNotFound", func(t *testing.T) {
		mock.ExpectQuery("SELECT .+ FROM workspaces WHERE id = ?").
			WithArgs("ws-missing").
			WillReturnError(sql.ErrNoRows)

		workspace, err := repo.GetWorkspaceByID(context.Background(), "ws-missing")
		assert.ErrorIs(t, err, ErrWorkspaceNotFound)
		assert.Nil(t, workspace)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("GetWorkspaceByPath", func(t *testing.T) {
		mock.ExpectQuery("SELECT .+ FROM workspaces WHERE path = ?").
			WithArgs(sampleWorkspace.Path).
			WillReturnRows(sqlmock.NewRows([]string{
				"id", "name", "path", "description", "created_at", "updated_at",
			}).AddRow(
				sampleWorkspace.ID,
				sampleWorkspace.Name,
				sampleWorkspace.Path,
				sampleWorkspace.Description,
				sampleWorkspace.CreatedAt.Format(time.RFC3339),
				sampleWorkspace.UpdatedAt.Format(time.RFC3339),
			))

		workspace, err := repo.GetWorkspaceByPath(context.Background(), sampleWorkspace.Path)
		assert.NoError(t, err, "GetWorkspaceByPath should not return an error")
		assert.NotNil(t, workspace, "Workspace should not be nil")
		assert.Equal(t, sampleWorkspace.Path, workspace.Path, "Workspace path should match")

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("ListWorkspaces", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{
			"id", "name", "path", "description", "created_at", "updated_at",
		}).AddRow(
			sampleWorkspace.ID,
			sampleWorkspace.Name,
			sampleWorkspace.Path,
			sampleWorkspace.Description,
			sampleWorkspace.CreatedAt.Format(time.RFC3339),
			sampleWorkspace.UpdatedAt.Format(time.RFC3339),
		)

		mock.ExpectQuery("SELECT .+ FROM workspaces").
			WillReturnRows(rows)

		workspaces, err := repo.ListWorkspaces(context.Background())
		assert.NoError(t, err, "ListWorkspaces should not return an error")
		assert.Len(t, workspaces, 1, "Should return one workspace")
		assert.Equal(t, sampleWorkspace.ID, workspaces[0].ID, "Workspace ID should match")

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("ListWorkspacesWithPagination", func(t *testing.T) {
		paginationParams := PaginationParams{
			Page:  1,
			Limit: 10,
		}

		rows := sqlmock.NewRows([]string{
			"id", "name", "path", "description", "created_at", "updated_at",
		}).AddRow(
			sampleWorkspace.ID,
			sampleWorkspace.Name,
			sampleWorkspace.Path,
			sampleWorkspace.Description,
			sampleWorkspace.CreatedAt.Format(time.RFC3339),
			sampleWorkspace.UpdatedAt.Format(time.RFC3339),
		)

		mock.ExpectQuery("SELECT .+ FROM workspaces .+ LIMIT .+ OFFSET .+").
			WillReturnRows(rows)

		workspaces, err := repo.ListWorkspacesWithPagination(context.Background(), paginationParams)
		assert.NoError(t, err, "ListWorkspacesWithPagination should not return an error")
		assert.Len(t, workspaces, 1, "Should return one workspace")

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("UpdateWorkspace", func(t *testing.T) {
		mock.ExpectExec("UPDATE workspaces SET").
			WithArgs(
				sampleWorkspace.Name,
				sampleWorkspace.Path,
				sampleWorkspace.Description,
				sqlmock.AnyArg(),
				sampleWorkspace.ID,
			).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.UpdateWorkspace(context.Background(), sampleWorkspace)
		assert.NoError(t, err, "UpdateWorkspace should not return an error")

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("DeleteWorkspace", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec("DELETE FROM workspaces WHERE id = ?").
			WithArgs(sampleWorkspace.ID).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := repo.DeleteWorkspace(context.Background(), sampleWorkspace.ID)
		assert.NoError(t, err, "DeleteWorkspace should not return an error")

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("FindWorkspacesByName", func(t *testing.T) {
		searchTerm := "test"

		rows := sqlmock.NewRows([]string{
			"id", "name", "path", "description", "created_at", "updated_at",
		}).AddRow(
			sampleWorkspace.ID,
			sampleWorkspace.Name,
			sampleWorkspace.Path,
			sampleWorkspace.Description,
			sampleWorkspace.CreatedAt.Format(time.RFC3339),
			sampleWorkspace.UpdatedAt.Format(time.RFC3339),
		)

		mock.ExpectQuery("SELECT .+ FROM workspaces WHERE name LIKE ?").
			WithArgs("%" + searchTerm + "%").
			WillReturnRows(rows)

		workspaces, err := repo.FindWorkspacesByName(context.Background(), searchTerm)
		assert.NoError(t, err, "FindWorkspacesByName should not return an error")
		assert.Len(t, workspaces, 1, "Should return one workspace")
		assert.Equal(t, sampleWorkspace.Name, workspaces[0].Name, "Workspace name should match")

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestFileRepository(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err, "Failed to create mock database")
	defer db.Close()

	repo := NewTestSQLRepository(db)

	sampleFile := &File{
		ID:          "file-abc123",
		WorkspaceID: "ws-123456",
		Path:        "src/main.c",
		Language:    "C",
		LineCount:   120,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	t.Run("SaveFile", func(t *testing.T) {
		mock.ExpectExec("INSERT INTO files").
			WithArgs(
				sampleFile.ID,
				sampleFile.WorkspaceID,
				sampleFile.Path,
				sampleFile.Language,
				sampleFile.LineCount,
				sqlmock.AnyArg(),
				sqlmock.AnyArg(),
			).
			WillReturnResult(sqlmock.NewResult(1, 1))

		err := repo.SaveFile(context.Background(), sampleFile)
		assert.NoError(t, err, "SaveFile should not return an error")

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("GetFileByPath", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{
			"id", "workspace_id", "path", "language", "line_count", "created_at", "updated_at",
		}).AddRow(
			sampleFile.ID,
			sampleFile.WorkspaceID,
			sampleFile.Path,
			sampleFile.Language,
			sampleFile.LineCount,
			sampleFile.CreatedAt.Format(time.RFC3339),
			sampleFile.UpdatedAt.Format(time.RFC3339),
		)

		mock.ExpectQuery("SELECT .+ FROM files WHERE").
			WillReturnRows(rows)

		file, err := repo.GetFileByPath(context.Background(), sampleFile.WorkspaceID, sampleFile.Path)
		assert.NoError(t, err, "GetFileByPath should not return an error")
		assert.NotNil(t, file, "File should not be nil")
		assert.Equal(t, sampleFile.ID, file.ID, "File ID should match")
		assert.Equal(t, sampleFile.Language, file.Language, "File language should match")

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("GetFileByPathNotFound", func(t *testing.T) {
		mock.ExpectQuery("SELECT .+ FROM files WHERE").
			WillReturnError(sql.ErrNoRows)

		file, err := repo.GetFileByPath(context.Background(), sampleFile.WorkspaceID, "missing.c")
		assert.ErrorIs(t, err, ErrFileNotFound)
		assert.Nil(t, file)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("GetFilesByWorkspaceID", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{
			"id", "workspace_id", "path", "language", "line_count", "created_at", "updated_at",
		}).AddRow(
			sampleFile.ID,
			sampleFile.WorkspaceID,
			sampleFile.Path,
			sampleFile.Language,
			sampleFile.LineCount,
			sampleFile.CreatedAt.Format(time.RFC3339),
			sampleFile.UpdatedAt.Format(time.RFC3339),
		)

		mock.ExpectQuery("SELECT .+ FROM files WHERE workspace_id = ?").
			WithArgs(sampleFile.WorkspaceID).
			WillReturnRows(rows)

		files, err := repo.GetFilesByWorkspaceID(context.Background(), sampleFile.WorkspaceID)
		assert.NoError(t, err, "GetFilesByWorkspaceID should not return an error")
		assert.Len(t, files, 1, "Should return one file")

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("UpdateFile", func(t *testing.T) {
		mock.ExpectExec("UPDATE files SET").
			WithArgs(
				sampleFile.Language,
				sampleFile.LineCount,
				sqlmock.AnyArg(),
				sampleFile.ID,
			).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.UpdateFile(context.Background(), sampleFile)
		assert.NoError(t, err, "UpdateFile should not return an error")

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("DeleteFile", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM files WHERE id = ?").
			WithArgs(sampleFile.ID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.DeleteFile(context.Background(), sampleFile.ID)
		assert.NoError(t, err, "DeleteFile should not return an error")

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
