// Package checker orchestrates indentation analysis over workspace files and
// persists the results as runs and problems.
package checker

import (
	"time"

	"github.com/tildaslashalef/indentwise/internal/analyzer"
	"github.com/tildaslashalef/indentwise/internal/workspace"
)

// CheckType represents the source of the files being checked
type CheckType string

const (
	// CheckTypePaths represents a check of explicitly given paths
	CheckTypePaths CheckType = "paths"
	// CheckTypeStaged represents a check of staged changes
	CheckTypeStaged CheckType = "staged"
	// CheckTypeCommit represents a check of changes in a commit
	CheckTypeCommit CheckType = "commit"
	// CheckTypeBranch represents a check of differences between branches
	CheckTypeBranch CheckType = "branch"
)

// Run represents one analysis of one file at a point in time
type Run struct {
	ID           string    `json:"id"`
	WorkspaceID  string    `json:"workspace_id"`
	FileID       string    `json:"file_id"`
	IndentUnit   int       `json:"indent_unit"`
	LineCount    int       `json:"line_count"`
	ProblemCount int       `json:"problem_count"`
	CreatedAt    time.Time `json:"created_at"`
}

// NewRun creates a new run instance
func NewRun(workspaceID, fileID string) *Run {
	return &Run{
		ID:          "", // Will be set by the repository
		WorkspaceID: workspaceID,
		FileID:      fileID,
		CreatedAt:   time.Now(),
	}
}

// Problem is the persisted form of one analyzer problem
type Problem struct {
	ID            string             `json:"id"`
	RunID         string             `json:"run_id"`
	Direction     analyzer.Direction `json:"direction"`
	LineIndex     int                `json:"line_index"`
	DetectedWidth int                `json:"detected_width"`
	ExpectedWidth int                `json:"expected_width"`
	Message       string             `json:"message"`
	CreatedAt     time.Time          `json:"created_at"`
}

// ProblemsFromResult converts analyzer problems to their persisted form
func ProblemsFromResult(runID string, res *analyzer.Result) []*Problem {
	if res == nil || len(res.Problems) == 0 {
		return []*Problem{}
	}

	problems := make([]*Problem, 0, len(res.Problems))
	for _, p := range res.Problems {
		problems = append(problems, &Problem{
			RunID:         runID,
			Direction:     p.Direction,
			LineIndex:     p.LineIndex,
			DetectedWidth: p.DetectedWidth,
			ExpectedWidth: p.ExpectedWidth,
			Message:       p.Message,
			CreatedAt:     time.Now(),
		})
	}
	return problems
}

// FileReport bundles everything the presentation layer needs for one
// checked file: the tracked file record, the persisted run, the raw lines
// and the full analyzer result with per-line marks.
type FileReport struct {
	File   *workspace.File  `json:"file"`
	Run    *Run             `json:"run"`
	Lines  []string         `json:"-"`
	Result *analyzer.Result `json:"result"`
}

// Skipped reports whether analysis was disabled for the file because no
// indentation unit could be determined.
func (fr *FileReport) Skipped() bool {
	return fr.Result == nil || fr.Result.IndentUnit <= 0
}
