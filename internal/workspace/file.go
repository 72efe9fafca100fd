package workspace

import (
	"path/filepath"
	"time"

	"github.com/tildaslashalef/indentwise/internal/ulid"
)

// File represents a tracked source file in a workspace
type File struct {
	ID          string    `json:"id"`           // Unique identifier for the file
	WorkspaceID string    `json:"workspace_id"` // Workspace the file belongs to
	Path        string    `json:"path"`         // Path relative to the workspace root
	Language    string    `json:"language"`     // Programming language of the file
	LineCount   int       `json:"line_count"`   // Number of lines at the last analysis
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewFile creates a new file record
func NewFile(workspaceID, path, language string) *File {
	now := time.Now()
	return &File{
		ID:          ulid.FileID(),
		WorkspaceID: workspaceID,
		Path:        path,
		Language:    language,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Filename returns just the filename portion of the path
func (f *File) Filename() string {
	return filepath.Base(f.Path)
}

// Extension returns the file extension
func (f *File) Extension() string {
	return filepath.Ext(f.Path)
}

// Directory returns the directory portion of the path
func (f *File) Directory() string {
	return filepath.Dir(f.Path)
}
