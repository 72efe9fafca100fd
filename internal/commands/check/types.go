package check

// Status represents the current status of the TUI
type Status int

const (
	// StatusInitializing is the initial status
	StatusInitializing Status = iota
	// StatusWorkspaceInit is the status when the workspace is being initialized
	StatusWorkspaceInit
	// StatusReady is the status when the TUI is ready for user input
	StatusReady
	// StatusChecking is the status when files are being analyzed
	StatusChecking
	// StatusViewingResults is the status when browsing check results
	StatusViewingResults
	// StatusError is the status when an error occurred
	StatusError
)

// CheckOptions contains options for performing an indentation check
type CheckOptions struct {
	TargetDir   string
	AbsPath     string
	Paths       []string
	Staged      bool
	CommitHash  string
	Branch      string
	BaseBranch  string
	WorkspaceID string
	IndentUnit  int
}
