package checker

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tildaslashalef/indentwise/internal/analyzer"
	"github.com/tildaslashalef/indentwise/internal/loggy"
)

func newTestRepository(t *testing.T) (*SQLRepository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err, "Failed to create mock database")

	repo := NewSQLRepository(db, loggy.NewNoopLogger())
	return repo, mock, func() { db.Close() }
}

func TestCreateRun(t *testing.T) {
	repo, mock, closeDB := newTestRepository(t)
	defer closeDB()

	run := NewRun("ws-1", "file-1")
	run.IndentUnit = 4
	run.LineCount = 100
	run.ProblemCount = 2

	mock.ExpectExec("INSERT INTO runs").
		WithArgs(
			sqlmock.AnyArg(),
			run.WorkspaceID,
			run.FileID,
			run.IndentUnit,
			run.LineCount,
			run.ProblemCount,
			sqlmock.AnyArg(),
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := repo.CreateRun(context.Background(), run)
	assert.NoError(t, err)
	assert.NotEmpty(t, run.ID, "repository should assign an ID")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetRun(t *testing.T) {
	repo, mock, closeDB := newTestRepository(t)
	defer closeDB()

	now := time.Now()
	rows := sqlmock.NewRows([]string{
		"id", "workspace_id", "file_id", "indent_unit", "line_count", "problem_count", "created_at",
	}).AddRow("run-1", "ws-1", "file-1", 4, 100, 2, now)

	mock.ExpectQuery("SELECT .+ FROM runs WHERE id = ?").
		WithArgs("run-1").
		WillReturnRows(rows)

	run, err := repo.GetRun(context.Background(), "run-1")
	require.NoError(t, err)
	assert.Equal(t, "run-1", run.ID)
	assert.Equal(t, 4, run.IndentUnit)
	assert.Equal(t, 2, run.ProblemCount)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetRunNotFound(t *testing.T) {
	repo, mock, closeDB := newTestRepository(t)
	defer closeDB()

	mock.ExpectQuery("SELECT .+ FROM runs WHERE id = ?").
		WithArgs("run-missing").
		WillReturnError(sql.ErrNoRows)

	run, err := repo.GetRun(context.Background(), "run-missing")
	assert.ErrorIs(t, err, ErrRunNotFound)
	assert.Nil(t, run)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetRunsByWorkspace(t *testing.T) {
	repo, mock, closeDB := newTestRepository(t)
	defer closeDB()

	now := time.Now()
	rows := sqlmock.NewRows([]string{
		"id", "workspace_id", "file_id", "indent_unit", "line_count", "problem_count", "created_at",
	}).
		AddRow("run-2", "ws-1", "file-1", 4, 120, 0, now).
		AddRow("run-1", "ws-1", "file-1", 4, 100, 2, now.Add(-time.Hour))

	mock.ExpectQuery("SELECT .+ FROM runs WHERE workspace_id = .+ ORDER BY created_at DESC").
		WithArgs("ws-1").
		WillReturnRows(rows)

	runs, err := repo.GetRunsByWorkspace(context.Background(), "ws-1", 0, 0)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "run-2", runs[0].ID, "newest run comes first")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetLatestRunByFile(t *testing.T) {
	repo, mock, closeDB := newTestRepository(t)
	defer closeDB()

	now := time.Now()
	rows := sqlmock.NewRows([]string{
		"id", "workspace_id", "file_id", "indent_unit", "line_count", "problem_count", "created_at",
	}).AddRow("run-9", "ws-1", "file-1", 2, 80, 1, now)

	mock.ExpectQuery("SELECT .+ FROM runs WHERE file_id = .+ LIMIT 1").
		WithArgs("file-1").
		WillReturnRows(rows)

	run, err := repo.GetLatestRunByFile(context.Background(), "file-1")
	require.NoError(t, err)
	assert.Equal(t, "run-9", run.ID)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateProblem(t *testing.T) {
	repo, mock, closeDB := newTestRepository(t)
	defer closeDB()

	problem := &Problem{
		RunID:         "run-1",
		Direction:     analyzer.DirectionOver,
		LineIndex:     7,
		DetectedWidth: 8,
		ExpectedWidth: 4,
		Message:       "Over-indent: line indented to column 8, expected 4",
	}

	mock.ExpectExec("INSERT INTO problems").
		WithArgs(
			sqlmock.AnyArg(),
			problem.RunID,
			problem.Direction,
			problem.LineIndex,
			problem.DetectedWidth,
			problem.ExpectedWidth,
			problem.Message,
			sqlmock.AnyArg(),
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := repo.CreateProblem(context.Background(), problem)
	assert.NoError(t, err)
	assert.NotEmpty(t, problem.ID, "repository should assign an ID")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetProblemsByRun(t *testing.T) {
	repo, mock, closeDB := newTestRepository(t)
	defer closeDB()

	now := time.Now()
	rows := sqlmock.NewRows([]string{
		"id", "run_id", "direction", "line_index", "detected_width", "expected_width", "message", "created_at",
	}).
		AddRow("prob-1", "run-1", "over", 3, 8, 4, "Over-indent: line indented to column 8, expected 4", now).
		AddRow("prob-2", "run-1", "under", 9, 2, 4, "Under-indent: line indented to column 2, expected 4", now)

	mock.ExpectQuery("SELECT .+ FROM problems WHERE run_id = .+ ORDER BY line_index ASC").
		WithArgs("run-1").
		WillReturnRows(rows)

	problems, err := repo.GetProblemsByRun(context.Background(), "run-1")
	require.NoError(t, err)
	require.Len(t, problems, 2)
	assert.Equal(t, analyzer.DirectionOver, problems[0].Direction)
	assert.Equal(t, 3, problems[0].LineIndex)
	assert.Equal(t, analyzer.DirectionUnder, problems[1].Direction)

	assert.NoError(t, mock.ExpectationsWereMet())
}
