package check

import (
	"github.com/tildaslashalef/indentwise/internal/checker"
	"github.com/tildaslashalef/indentwise/internal/workspace"
)

// statusChangeMsg is a message for status changes
type statusChangeMsg struct {
	newStatus Status
	error     error
}

// workspaceMsg is a message for when the workspace is loaded
type workspaceMsg struct {
	workspace *workspace.Workspace
	error     error
}

// checkSetupMsg carries the resolved list of files to analyze
type checkSetupMsg struct {
	paths          []string
	totalFiles     int
	commitHash     string
	branchName     string
	baseBranchName string
}

// fileCheckedMsg is a message for when one file has been analyzed
type fileCheckedMsg struct {
	report          *checker.FileReport
	skipped         bool
	progressCurrent int
	progressTotal   int
	error           error
}
