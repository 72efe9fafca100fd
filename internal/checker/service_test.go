package checker

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/tildaslashalef/indentwise/internal/config"
	"github.com/tildaslashalef/indentwise/internal/loggy"
	"github.com/tildaslashalef/indentwise/internal/workspace"
)

// MockRepository is a mock implementation of the Repository interface
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) CreateRun(ctx context.Context, run *Run) error {
	args := m.Called(ctx, run)
	return args.Error(0)
}

func (m *MockRepository) GetRun(ctx context.Context, id string) (*Run, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Run), args.Error(1)
}

func (m *MockRepository) GetRunsByWorkspace(ctx context.Context, workspaceID string, limit, offset int) ([]*Run, error) {
	args := m.Called(ctx, workspaceID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Run), args.Error(1)
}

func (m *MockRepository) GetRunsByFile(ctx context.Context, fileID string) ([]*Run, error) {
	args := m.Called(ctx, fileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Run), args.Error(1)
}

func (m *MockRepository) GetLatestRunByFile(ctx context.Context, fileID string) (*Run, error) {
	args := m.Called(ctx, fileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Run), args.Error(1)
}

func (m *MockRepository) CreateProblem(ctx context.Context, problem *Problem) error {
	args := m.Called(ctx, problem)
	return args.Error(0)
}

func (m *MockRepository) GetProblemsByRun(ctx context.Context, runID string) ([]*Problem, error) {
	args := m.Called(ctx, runID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Problem), args.Error(1)
}

func testConfig() *config.Config {
	return &config.Config{
		Analyzer: config.AnalyzerConfig{
			TabWidth:    4,
			MaxFileSize: 1 << 20,
		},
	}
}

// newCheckEnv builds a checker service with a mocked run repository and a
// workspace service backed by sqlmock.
func newCheckEnv(t *testing.T) (*Service, *MockRepository, sqlmock.Sqlmock, func()) {
	db, dbMock, err := sqlmock.New()
	require.NoError(t, err)

	logger := loggy.NewNoopLogger()
	wsService := workspace.NewService(db, logger)

	repo := new(MockRepository)
	svc := NewServiceWithRepository(repo, wsService, testConfig(), logger)

	return svc, repo, dbMock, func() { db.Close() }
}

func writeTestFile(t *testing.T, dir, name, content string) string {
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestCheckFileCompliant(t *testing.T) {
	svc, repo, dbMock, closeDB := newCheckEnv(t)
	defer closeDB()

	dir := t.TempDir()
	writeTestFile(t, dir, "Main.java", "class A {\n    int x;\n}\n")
	ws := &workspace.Workspace{ID: "ws-1", Name: "test", Path: dir}

	// TrackFile: no existing record, then insert
	dbMock.ExpectQuery("SELECT .+ FROM files").WillReturnError(sql.ErrNoRows)
	dbMock.ExpectExec("INSERT INTO files").WillReturnResult(sqlmock.NewResult(1, 1))

	repo.On("CreateRun", mock.Anything, mock.AnythingOfType("*checker.Run")).Return(nil)

	report, err := svc.CheckFile(context.Background(), ws, "Main.java")
	require.NoError(t, err)
	require.NotNil(t, report)

	assert.Equal(t, 4, report.Run.IndentUnit, "unit inferred from the first block")
	assert.Equal(t, 3, report.Run.LineCount)
	assert.Equal(t, 0, report.Run.ProblemCount)
	assert.Equal(t, "Main.java", report.File.Path)
	assert.False(t, report.Skipped())

	repo.AssertExpectations(t)
	repo.AssertNotCalled(t, "CreateProblem", mock.Anything, mock.Anything)
	assert.NoError(t, dbMock.ExpectationsWereMet())
}

func TestCheckFilePersistsProblems(t *testing.T) {
	svc, repo, dbMock, closeDB := newCheckEnv(t)
	defer closeDB()

	dir := t.TempDir()
	writeTestFile(t, dir, "Main.java", "class A {\n    int x;\n        int y;\n}\n")
	ws := &workspace.Workspace{ID: "ws-1", Name: "test", Path: dir}

	dbMock.ExpectQuery("SELECT .+ FROM files").WillReturnError(sql.ErrNoRows)
	dbMock.ExpectExec("INSERT INTO files").WillReturnResult(sqlmock.NewResult(1, 1))

	repo.On("CreateRun", mock.Anything, mock.AnythingOfType("*checker.Run")).Return(nil)
	repo.On("CreateProblem", mock.Anything, mock.AnythingOfType("*checker.Problem")).Return(nil).Once()

	report, err := svc.CheckFile(context.Background(), ws, "Main.java")
	require.NoError(t, err)
	assert.Equal(t, 1, report.Run.ProblemCount)

	repo.AssertExpectations(t)
	assert.NoError(t, dbMock.ExpectationsWereMet())
}

func TestCheckFileSkipsDocumentation(t *testing.T) {
	svc, repo, _, closeDB := newCheckEnv(t)
	defer closeDB()

	dir := t.TempDir()
	writeTestFile(t, dir, "README.md", "# Title\n\nSome prose.\n")
	ws := &workspace.Workspace{ID: "ws-1", Name: "test", Path: dir}

	report, err := svc.CheckFile(context.Background(), ws, "README.md")
	assert.ErrorIs(t, err, ErrFileSkipped)
	assert.Nil(t, report)

	repo.AssertNotCalled(t, "CreateRun", mock.Anything, mock.Anything)
}

func TestCheckFileTooLarge(t *testing.T) {
	svc, _, _, closeDB := newCheckEnv(t)
	defer closeDB()

	svc.config.Analyzer.MaxFileSize = 8

	dir := t.TempDir()
	writeTestFile(t, dir, "Main.java", "class A {\n    int x;\n}\n")
	ws := &workspace.Workspace{ID: "ws-1", Name: "test", Path: dir}

	report, err := svc.CheckFile(context.Background(), ws, "Main.java")
	assert.ErrorIs(t, err, ErrFileTooLarge)
	assert.Nil(t, report)
}

func TestCheckFilesSkipsFailures(t *testing.T) {
	svc, repo, dbMock, closeDB := newCheckEnv(t)
	defer closeDB()

	dir := t.TempDir()
	writeTestFile(t, dir, "Main.java", "class A {\n    int x;\n}\n")
	writeTestFile(t, dir, "README.md", "# docs\n")
	ws := &workspace.Workspace{ID: "ws-1", Name: "test", Path: dir}

	dbMock.ExpectQuery("SELECT .+ FROM files").WillReturnError(sql.ErrNoRows)
	dbMock.ExpectExec("INSERT INTO files").WillReturnResult(sqlmock.NewResult(1, 1))

	repo.On("CreateRun", mock.Anything, mock.AnythingOfType("*checker.Run")).Return(nil)

	reports, err := svc.CheckFiles(context.Background(), ws, []string{"Main.java", "README.md", "missing.c"})
	require.NoError(t, err)
	assert.Len(t, reports, 1, "only the analyzable file yields a report")

	repo.AssertExpectations(t)
}

func TestSplitLines(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		expected []string
	}{
		{
			name:     "trailing newline dropped",
			content:  "a\nb\n",
			expected: []string{"a", "b"},
		},
		{
			name:     "no trailing newline",
			content:  "a\nb",
			expected: []string{"a", "b"},
		},
		{
			name:     "crlf endings",
			content:  "a\r\nb\r\n",
			expected: []string{"a", "b"},
		},
		{
			name:     "interior blank lines kept",
			content:  "a\n\nb\n",
			expected: []string{"a", "", "b"},
		},
		{
			name:     "empty content",
			content:  "",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SplitLines(tt.content))
		})
	}
}
