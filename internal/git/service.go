// Package git provides Git integration for the Indentwise application
package git

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"
	"github.com/tildaslashalef/indentwise/internal/loggy"
)

// Service provides Git operations
type Service struct {
	logger *loggy.Logger
	repo   *git.Repository
}

// NewService creates a new Git service
func NewService(logger *loggy.Logger) *Service {
	return &Service{
		logger: logger,
	}
}

// InitRepo initializes the git repository for the service
func (s *Service) InitRepo(repoPath string) error {
	repo, err := git.PlainOpen(repoPath)
	if err != nil {
		return fmt.Errorf("opening git repo: %w", err)
	}

	s.repo = repo
	return nil
}

// ensureRepo ensures the repository is initialized before performing operations
func (s *Service) ensureRepo() error {
	if s.repo == nil {
		return fmt.Errorf("git repository not initialized")
	}
	return nil
}

// HasGitRepo checks if the provided path contains a valid Git repository
func (s *Service) HasGitRepo(path string) bool {
	_, err := git.PlainOpen(path)
	if err != nil {
		s.logger.Debug("Not a valid Git repository", "path", path, "error", err)
		return false
	}

	return true
}

// GetDiff retrieves a diff based on the request parameters
func (s *Service) GetDiff(req DiffRequest) (*DiffResult, error) {
	if err := s.ensureRepo(); err != nil {
		return nil, err
	}

	switch req.DiffType {
	case DiffTypeStaged:
		return s.getStagedDiff()
	case DiffTypeCommit:
		return s.getCommitDiff(req.CommitID)
	case DiffTypeBranch:
		return s.getBranchDiff(req.BranchOne, req.BranchTwo)
	default:
		return nil, fmt.Errorf("unsupported diff type: %s", req.DiffType)
	}
}

// getStagedDiff retrieves staged changes in the repository
func (s *Service) getStagedDiff() (*DiffResult, error) {
	worktree, err := s.repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("getting worktree: %w", err)
	}

	status, err := worktree.Status()
	if err != nil {
		return nil, fmt.Errorf("getting worktree status: %w", err)
	}

	s.logger.Debug("Worktree status retrieved", "status_length", len(status))

	if len(status) == 0 {
		return &DiffResult{
			Files: []ChangedFile{},
		}, nil
	}

	var files []ChangedFile
	for filePath, fileStatus := range status {
		// Only include staged files
		if fileStatus.Staging == git.Unmodified || fileStatus.Staging == git.Untracked {
			continue
		}

		changeType := getChangeType(fileStatus.Staging)
		s.logger.Debug("Found staged file",
			"path", filePath,
			"change_type", changeType)

		files = append(files, ChangedFile{
			Path:       filePath,
			ChangeType: changeType,
		})
	}

	return &DiffResult{
		Files: files,
	}, nil
}

// getCommitDiff retrieves changes in a specific commit
func (s *Service) getCommitDiff(commitID string) (*DiffResult, error) {
	hash := plumbing.NewHash(commitID)
	commit, err := s.repo.CommitObject(hash)
	if err != nil {
		return nil, fmt.Errorf("getting commit object: %w", err)
	}

	s.logger.Debug("Processing commit",
		"hash", commitID,
		"author", commit.Author.Name)

	parentCommit, err := s.getParentCommit(commit)
	if err != nil {
		return nil, fmt.Errorf("getting parent commit: %w", err)
	}

	changes, err := s.getCommitChanges(commit, parentCommit)
	if err != nil {
		return nil, fmt.Errorf("getting commit changes: %w", err)
	}

	files := s.processChanges(changes)

	commitInfo := &Commit{
		Hash:      commit.Hash.String(),
		Author:    commit.Author.Name,
		Email:     commit.Author.Email,
		Message:   commit.Message,
		Timestamp: commit.Author.When,
	}

	return &DiffResult{
		Files:      files,
		CommitInfo: commitInfo,
	}, nil
}

// getParentCommit returns the parent commit of the given commit
func (s *Service) getParentCommit(commit *object.Commit) (*object.Commit, error) {
	if commit.NumParents() == 0 {
		// For first commit, compare with empty tree
		return nil, nil
	}

	parent, err := commit.Parent(0)
	if err != nil {
		return nil, fmt.Errorf("getting parent commit: %w", err)
	}

	return parent, nil
}

// getChangesFromEmptyTree gets changes by comparing an empty tree with the given commit
func getChangesFromEmptyTree(commit *object.Commit) (object.Changes, error) {
	commitTree, err := commit.Tree()
	if err != nil {
		return nil, fmt.Errorf("getting commit tree: %w", err)
	}

	// For initial commits, diff empty -> commit so new files appear as
	// insertions rather than deletions
	emptyTree := &object.Tree{}
	changes, err := emptyTree.Diff(commitTree)
	if err != nil {
		return nil, fmt.Errorf("getting diff with empty tree: %w", err)
	}

	return changes, nil
}

// getCommitChanges retrieves the changes between a commit and its parent
func (s *Service) getCommitChanges(commit, parentCommit *object.Commit) (object.Changes, error) {
	if parentCommit == nil {
		return getChangesFromEmptyTree(commit)
	}

	currentTree, err := commit.Tree()
	if err != nil {
		return nil, fmt.Errorf("getting current tree: %w", err)
	}

	parentTree, err := parentCommit.Tree()
	if err != nil {
		return nil, fmt.Errorf("getting parent tree: %w", err)
	}

	changes, err := parentTree.Diff(currentTree)
	if err != nil {
		return nil, fmt.Errorf("getting changes: %w", err)
	}

	return changes, nil
}

// getBranchDiff retrieves changes between two branches
func (s *Service) getBranchDiff(branch1, branch2 string) (*DiffResult, error) {
	branch1Ref, err := s.repo.Reference(plumbing.NewBranchReferenceName(branch1), true)
	if err != nil {
		return nil, fmt.Errorf("getting reference for branch1: %w", err)
	}

	branch2Ref, err := s.repo.Reference(plumbing.NewBranchReferenceName(branch2), true)
	if err != nil {
		return nil, fmt.Errorf("getting reference for branch2: %w", err)
	}

	branch1Commit, err := s.repo.CommitObject(branch1Ref.Hash())
	if err != nil {
		return nil, fmt.Errorf("getting commit for branch1: %w", err)
	}

	branch2Commit, err := s.repo.CommitObject(branch2Ref.Hash())
	if err != nil {
		return nil, fmt.Errorf("getting commit for branch2: %w", err)
	}

	branch1Tree, err := branch1Commit.Tree()
	if err != nil {
		return nil, fmt.Errorf("getting branch1 tree: %w", err)
	}

	branch2Tree, err := branch2Commit.Tree()
	if err != nil {
		return nil, fmt.Errorf("getting branch2 tree: %w", err)
	}

	changes, err := branch1Tree.Diff(branch2Tree)
	if err != nil {
		return nil, fmt.Errorf("getting diff: %w", err)
	}

	return &DiffResult{
		Files: s.processChanges(changes),
	}, nil
}

// processChanges converts go-git Changes to our ChangedFile model
func (s *Service) processChanges(changes object.Changes) []ChangedFile {
	files := make([]ChangedFile, 0, len(changes))

	for _, change := range changes {
		fromName := ""
		if change.From.Name != "" {
			fromName = filepath.Clean(change.From.Name)
		}

		toName := ""
		if change.To.Name != "" {
			toName = filepath.Clean(change.To.Name)
		}

		path := toName
		if path == "" {
			path = fromName
		}

		changeType := getChangeTypeFromChange(change)
		s.logger.Debug("Found change",
			"path", path,
			"old_path", fromName,
			"change_type", changeType)

		files = append(files, ChangedFile{
			Path:       path,
			OldPath:    fromName,
			ChangeType: changeType,
		})
	}

	return files
}

// getChangeTypeFromChange determines the type of change from a git object.Change
func getChangeTypeFromChange(change *object.Change) ChangeType {
	// If From is empty (zero hash) and To exists, it's an addition
	if change.From.TreeEntry.Hash.IsZero() && !change.To.TreeEntry.Hash.IsZero() {
		return ChangeTypeAdded
	}

	// If To is empty (zero hash) and From exists, it's a deletion
	if !change.From.TreeEntry.Hash.IsZero() && change.To.TreeEntry.Hash.IsZero() {
		return ChangeTypeDeleted
	}

	return ChangeTypeModified
}

// getChangeType converts go-git StatusCode to our ChangeType
func getChangeType(code git.StatusCode) ChangeType {
	switch code {
	case git.Added:
		return ChangeTypeAdded
	case git.Modified, git.UpdatedButUnmerged:
		return ChangeTypeModified
	case git.Deleted:
		return ChangeTypeDeleted
	case git.Renamed:
		return ChangeTypeRenamed
	default:
		return ChangeTypeModified
	}
}

// ListBranches returns a list of all branches in the repository
func (s *Service) ListBranches() ([]string, error) {
	if err := s.ensureRepo(); err != nil {
		return nil, err
	}

	branches := []string{}

	branchIter, err := s.repo.Branches()
	if err != nil {
		return nil, fmt.Errorf("getting branches: %w", err)
	}

	err = branchIter.ForEach(func(ref *plumbing.Reference) error {
		name := strings.TrimPrefix(ref.Name().String(), "refs/heads/")
		branches = append(branches, name)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("iterating branches: %w", err)
	}

	return branches, nil
}

// ListCommits returns a list of commits in the repository, newest first
func (s *Service) ListCommits(limit int) ([]*Commit, error) {
	if err := s.ensureRepo(); err != nil {
		return nil, err
	}

	headRef, err := s.repo.Head()
	if err != nil {
		return nil, fmt.Errorf("getting HEAD: %w", err)
	}

	commit, err := s.repo.CommitObject(headRef.Hash())
	if err != nil {
		return nil, fmt.Errorf("getting HEAD commit: %w", err)
	}

	commitIter := object.NewCommitIterCTime(commit, nil, nil)
	defer commitIter.Close()

	var commits []*Commit
	count := 0

	err = commitIter.ForEach(func(c *object.Commit) error {
		if limit > 0 && count >= limit {
			return storer.ErrStop
		}

		commits = append(commits, &Commit{
			Hash:      c.Hash.String(),
			Author:    c.Author.Name,
			Email:     c.Author.Email,
			Message:   c.Message,
			Timestamp: c.Author.When,
		})

		count++
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("iterating commits: %w", err)
	}

	return commits, nil
}
