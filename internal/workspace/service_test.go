package workspace

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/tildaslashalef/indentwise/internal/loggy"
)

// MockRepository is a mock implementation of the Repository interface
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) CreateWorkspace(ctx context.Context, workspace *Workspace) error {
	args := m.Called(ctx, workspace)
	return args.Error(0)
}

func (m *MockRepository) GetWorkspaceByID(ctx context.Context, id string) (*Workspace, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Workspace), args.Error(1)
}

func (m *MockRepository) GetWorkspaceByPath(ctx context.Context, path string) (*Workspace, error) {
	args := m.Called(ctx, path)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Workspace), args.Error(1)
}

func (m *MockRepository) ListWorkspaces(ctx context.Context) ([]*Workspace, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Workspace), args.Error(1)
}

func (m *MockRepository) ListWorkspacesWithPagination(ctx context.Context, params PaginationParams) ([]*Workspace, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Workspace), args.Error(1)
}

func (m *MockRepository) UpdateWorkspace(ctx context.Context, workspace *Workspace) error {
	args := m.Called(ctx, workspace)
	return args.Error(0)
}

func (m *MockRepository) DeleteWorkspace(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRepository) FindWorkspacesByName(ctx context.Context, searchTerm string) ([]*Workspace, error) {
	args := m.Called(ctx, searchTerm)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Workspace), args.Error(1)
}

func (m *MockRepository) SaveFile(ctx context.Context, file *File) error {
	args := m.Called(ctx, file)
	return args.Error(0)
}

func (m *MockRepository) GetFileByID(ctx context.Context, fileID string) (*File, error) {
	args := m.Called(ctx, fileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*File), args.Error(1)
}

func (m *MockRepository) GetFileByPath(ctx context.Context, workspaceID, filePath string) (*File, error) {
	args := m.Called(ctx, workspaceID, filePath)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*File), args.Error(1)
}

func (m *MockRepository) GetFilesByWorkspaceID(ctx context.Context, workspaceID string) ([]*File, error) {
	args := m.Called(ctx, workspaceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*File), args.Error(1)
}

func (m *MockRepository) UpdateFile(ctx context.Context, file *File) error {
	args := m.Called(ctx, file)
	return args.Error(0)
}

func (m *MockRepository) DeleteFile(ctx context.Context, fileID string) error {
	args := m.Called(ctx, fileID)
	return args.Error(0)
}

func newTestService(repo Repository) *Service {
	return NewServiceWithRepository(repo, loggy.NewNoopLogger())
}

func TestServiceCreateWorkspace(t *testing.T) {
	repo := new(MockRepository)
	svc := newTestService(repo)
	ctx := context.Background()

	dir := t.TempDir()

	repo.On("GetWorkspaceByPath", ctx, dir).Return(nil, ErrWorkspaceNotFound)
	repo.On("CreateWorkspace", ctx, mock.AnythingOfType("*workspace.Workspace")).Return(nil)

	ws, err := svc.CreateWorkspace(ctx, dir, "my-project", "a description")
	require.NoError(t, err)
	assert.Equal(t, "my-project", ws.Name)
	assert.Equal(t, dir, ws.Path)
	assert.Equal(t, "a description", ws.Description)
	assert.NotEmpty(t, ws.ID)

	repo.AssertExpectations(t)
}

func TestServiceCreateWorkspaceAlreadyExists(t *testing.T) {
	repo := new(MockRepository)
	svc := newTestService(repo)
	ctx := context.Background()

	dir := t.TempDir()
	existing := &Workspace{ID: "ws-1", Name: "existing", Path: dir}

	repo.On("GetWorkspaceByPath", ctx, dir).Return(existing, nil)

	ws, err := svc.CreateWorkspace(ctx, dir, "other", "")
	assert.ErrorIs(t, err, ErrWorkspaceAlreadyExists)
	assert.Nil(t, ws)

	repo.AssertExpectations(t)
}

func TestServiceCreateWorkspaceDerivesName(t *testing.T) {
	repo := new(MockRepository)
	svc := newTestService(repo)
	ctx := context.Background()

	dir := t.TempDir()

	repo.On("GetWorkspaceByPath", ctx, dir).Return(nil, ErrWorkspaceNotFound)
	repo.On("CreateWorkspace", ctx, mock.AnythingOfType("*workspace.Workspace")).Return(nil)

	ws, err := svc.CreateWorkspace(ctx, dir, "", "")
	require.NoError(t, err)
	assert.NotEmpty(t, ws.Name, "name should be derived from the directory")

	repo.AssertExpectations(t)
}

func TestServiceTrackFileCreatesRecord(t *testing.T) {
	repo := new(MockRepository)
	svc := newTestService(repo)
	ctx := context.Background()

	repo.On("GetFileByPath", ctx, "ws-1", "src/main.c").Return(nil, ErrFileNotFound)
	repo.On("SaveFile", ctx, mock.AnythingOfType("*workspace.File")).Return(nil)

	file, err := svc.TrackFile(ctx, "ws-1", "src/main.c", "C", 42)
	require.NoError(t, err)
	assert.Equal(t, "ws-1", file.WorkspaceID)
	assert.Equal(t, "src/main.c", file.Path)
	assert.Equal(t, "C", file.Language)
	assert.Equal(t, 42, file.LineCount)

	repo.AssertExpectations(t)
}

func TestServiceTrackFileUpdatesExisting(t *testing.T) {
	repo := new(MockRepository)
	svc := newTestService(repo)
	ctx := context.Background()

	existing := &File{ID: "file-1", WorkspaceID: "ws-1", Path: "src/main.c", Language: "C", LineCount: 10}

	repo.On("GetFileByPath", ctx, "ws-1", "src/main.c").Return(existing, nil)
	repo.On("UpdateFile", ctx, existing).Return(nil)

	file, err := svc.TrackFile(ctx, "ws-1", "src/main.c", "C", 55)
	require.NoError(t, err)
	assert.Equal(t, "file-1", file.ID)
	assert.Equal(t, 55, file.LineCount)

	repo.AssertExpectations(t)
}

func TestServiceDeleteWorkspace(t *testing.T) {
	repo := new(MockRepository)
	svc := newTestService(repo)
	ctx := context.Background()

	repo.On("DeleteWorkspace", ctx, "ws-1").Return(nil)

	err := svc.DeleteWorkspace(ctx, "ws-1")
	assert.NoError(t, err)

	repo.AssertExpectations(t)
}
