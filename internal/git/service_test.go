package git

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tildaslashalef/indentwise/internal/loggy"
)

// Helper function to set up a temporary Git repository
func setupTempGitRepo(t *testing.T) string {
	tempDir, err := os.MkdirTemp("", "git_test_*")
	require.NoError(t, err, "Failed to create temporary directory")

	cmd := exec.Command("git", "init")
	cmd.Dir = tempDir
	err = cmd.Run()
	require.NoError(t, err, "Failed to initialize Git repository")

	cmd = exec.Command("git", "config", "user.name", "Test User")
	cmd.Dir = tempDir
	err = cmd.Run()
	require.NoError(t, err, "Failed to set Git user name")

	cmd = exec.Command("git", "config", "user.email", "test@example.com")
	cmd.Dir = tempDir
	err = cmd.Run()
	require.NoError(t, err, "Failed to set Git user email")

	// Create initial commit so we have a default branch
	createFile(t, tempDir, "README.md", "# Test Repository\n")
	stageFile(t, tempDir, "README.md")
	commitChanges(t, tempDir, "Initial commit")

	return tempDir
}

// Helper function to create a file in the repository
func createFile(t *testing.T, repoPath, filename, content string) {
	filePath := filepath.Join(repoPath, filename)
	err := os.WriteFile(filePath, []byte(content), 0644)
	require.NoError(t, err, "Failed to create file")
}

// Helper function to stage a file
func stageFile(t *testing.T, repoPath, filename string) {
	cmd := exec.Command("git", "add", filename)
	cmd.Dir = repoPath
	err := cmd.Run()
	require.NoError(t, err, "Failed to stage file")
}

// Helper function to commit changes
func commitChanges(t *testing.T, repoPath, message string) string {
	cmd := exec.Command("git", "commit", "-m", message)
	cmd.Dir = repoPath
	err := cmd.Run()
	require.NoError(t, err, "Failed to commit changes")

	cmd = exec.Command("git", "rev-parse", "HEAD")
	cmd.Dir = repoPath
	out, err := cmd.Output()
	require.NoError(t, err, "Failed to get commit hash")
	return strings.TrimSpace(string(out))
}

// Helper function to create a branch
func createBranch(t *testing.T, repoPath, branchName string) {
	cmd := exec.Command("git", "branch", branchName)
	cmd.Dir = repoPath
	err := cmd.Run()
	require.NoError(t, err, "Failed to create branch")
}

// Helper function to switch to a branch
func switchBranch(t *testing.T, repoPath, branchName string) {
	cmd := exec.Command("git", "checkout", branchName)
	cmd.Dir = repoPath
	err := cmd.Run()
	require.NoError(t, err, "Failed to switch to branch")
}

// Helper function to get current branch
func getCurrentBranch(t *testing.T, repoPath string) string {
	cmd := exec.Command("git", "rev-parse", "--abbrev-ref", "HEAD")
	cmd.Dir = repoPath
	out, err := cmd.Output()
	require.NoError(t, err, "Failed to get current branch")
	return strings.TrimSpace(string(out))
}

func TestGitService(t *testing.T) {
	logger := loggy.NewNoopLogger()
	service := NewService(logger)

	t.Run("GetDiff_StagedChanges", func(t *testing.T) {
		repoPath := setupTempGitRepo(t)
		defer os.RemoveAll(repoPath)

		err := service.InitRepo(repoPath)
		require.NoError(t, err, "InitRepo should not return an error")

		createFile(t, repoPath, "Main.java", "class Main {\n    int x;\n}\n")
		stageFile(t, repoPath, "Main.java")

		req := DiffRequest{
			RepoPath: repoPath,
			DiffType: DiffTypeStaged,
		}

		diff, err := service.GetDiff(req)
		require.NoError(t, err, "GetDiff should not return an error")
		require.NotNil(t, diff, "Diff should not be nil")

		foundMainJava := false
		for _, file := range diff.Files {
			if file.Path == "Main.java" {
				foundMainJava = true
				assert.Equal(t, ChangeTypeAdded, file.ChangeType, "Change type should be added")
				break
			}
		}
		assert.True(t, foundMainJava, "Should find Main.java in changed files")
		assert.Contains(t, diff.FilePaths(), "Main.java")
	})

	t.Run("GetDiff_StagedIgnoresUntracked", func(t *testing.T) {
		repoPath := setupTempGitRepo(t)
		defer os.RemoveAll(repoPath)

		err := service.InitRepo(repoPath)
		require.NoError(t, err, "InitRepo should not return an error")

		// Created but never staged
		createFile(t, repoPath, "scratch.c", "int main() { return 0; }\n")

		diff, err := service.GetDiff(DiffRequest{RepoPath: repoPath, DiffType: DiffTypeStaged})
		require.NoError(t, err, "GetDiff should not return an error")
		assert.NotContains(t, diff.FilePaths(), "scratch.c", "Untracked files should not appear as staged")
	})

	t.Run("GetDiff_CommitChanges", func(t *testing.T) {
		repoPath := setupTempGitRepo(t)
		defer os.RemoveAll(repoPath)

		err := service.InitRepo(repoPath)
		require.NoError(t, err, "InitRepo should not return an error")

		createFile(t, repoPath, "Main.java", "class Main {\n    int x;\n}\n")
		stageFile(t, repoPath, "Main.java")
		commitChanges(t, repoPath, "Add Main.java")

		createFile(t, repoPath, "Main.java", "class Main {\n    int x;\n    int y;\n}\n")
		stageFile(t, repoPath, "Main.java")
		commitHash := commitChanges(t, repoPath, "Add second field")

		req := DiffRequest{
			RepoPath: repoPath,
			DiffType: DiffTypeCommit,
			CommitID: commitHash,
		}

		diff, err := service.GetDiff(req)
		require.NoError(t, err, "GetDiff should not return an error")
		require.NotNil(t, diff, "Diff should not be nil")

		assert.Len(t, diff.Files, 1, "Should have one changed file")
		assert.Equal(t, "Main.java", diff.Files[0].Path, "Changed file path should match")
		assert.Equal(t, ChangeTypeModified, diff.Files[0].ChangeType, "Change type should be modified")

		require.NotNil(t, diff.CommitInfo, "Commit info should not be nil")
		assert.Equal(t, commitHash, diff.CommitInfo.Hash, "Commit hash should match")
		assert.Equal(t, "Test User", diff.CommitInfo.Author, "Commit author should match")
		assert.Equal(t, "Add second field", strings.TrimSpace(diff.CommitInfo.Message), "Commit message should match")
	})

	t.Run("GetDiff_BranchComparison", func(t *testing.T) {
		repoPath := setupTempGitRepo(t)
		defer os.RemoveAll(repoPath)

		err := service.InitRepo(repoPath)
		require.NoError(t, err, "InitRepo should not return an error")

		createBranch(t, repoPath, "feature")
		mainBranch := getCurrentBranch(t, repoPath)

		switchBranch(t, repoPath, "feature")
		createFile(t, repoPath, "feature.c", "int feature() { return 1; }\n")
		stageFile(t, repoPath, "feature.c")
		commitChanges(t, repoPath, "Add feature file")

		switchBranch(t, repoPath, mainBranch)
		createFile(t, repoPath, "main.c", "int main() { return 0; }\n")
		stageFile(t, repoPath, "main.c")
		commitChanges(t, repoPath, "Add main file")

		req := DiffRequest{
			RepoPath:  repoPath,
			DiffType:  DiffTypeBranch,
			BranchOne: mainBranch,
			BranchTwo: "feature",
		}

		diff, err := service.GetDiff(req)
		require.NoError(t, err, "GetDiff should not return an error")
		require.NotNil(t, diff, "Diff should not be nil")

		foundMainC := false
		for _, file := range diff.Files {
			if file.Path == "main.c" {
				foundMainC = true
				break
			}
		}
		assert.True(t, foundMainC, "Should find main.c in the branch comparison")
	})

	t.Run("FilePaths_ExcludesDeleted", func(t *testing.T) {
		result := &DiffResult{
			Files: []ChangedFile{
				{Path: "a.c", ChangeType: ChangeTypeModified},
				{Path: "b.c", ChangeType: ChangeTypeDeleted},
				{Path: "c.c", ChangeType: ChangeTypeAdded},
			},
		}
		assert.Equal(t, []string{"a.c", "c.c"}, result.FilePaths())
	})

	t.Run("ListBranches", func(t *testing.T) {
		repoPath := setupTempGitRepo(t)
		defer os.RemoveAll(repoPath)

		err := service.InitRepo(repoPath)
		require.NoError(t, err, "InitRepo should not return an error")

		mainBranch := getCurrentBranch(t, repoPath)
		createBranch(t, repoPath, "feature1")
		createBranch(t, repoPath, "feature2")

		branches, err := service.ListBranches()
		require.NoError(t, err, "ListBranches should not return an error")

		assert.GreaterOrEqual(t, len(branches), 3, "Should have at least three branches")
		assert.Contains(t, branches, mainBranch, "Should include main branch")
		assert.Contains(t, branches, "feature1", "Should include feature1 branch")
		assert.Contains(t, branches, "feature2", "Should include feature2 branch")
	})

	t.Run("ListCommits", func(t *testing.T) {
		repoPath := setupTempGitRepo(t)
		defer os.RemoveAll(repoPath)

		err := service.InitRepo(repoPath)
		require.NoError(t, err, "InitRepo should not return an error")

		createFile(t, repoPath, "file1.c", "int one() { return 1; }\n")
		stageFile(t, repoPath, "file1.c")
		commitChanges(t, repoPath, "Add file1")

		createFile(t, repoPath, "file2.c", "int two() { return 2; }\n")
		stageFile(t, repoPath, "file2.c")
		commit2 := commitChanges(t, repoPath, "Add file2")

		commits, err := service.ListCommits(2)
		require.NoError(t, err, "ListCommits should not return an error")

		assert.Len(t, commits, 2, "Should have two commits")
		hashes := []string{commits[0].Hash, commits[1].Hash}
		assert.Contains(t, hashes, commit2, "Latest commit should be listed")
		assert.Equal(t, "Test User", commits[0].Author, "Commit author should match")
	})

	t.Run("InitRepo_NonExistentRepo", func(t *testing.T) {
		err := service.InitRepo("/path/that/does/not/exist")
		assert.Error(t, err, "InitRepo should return an error for non-existent repository")
	})

	t.Run("GetDiff_RequiresInit", func(t *testing.T) {
		fresh := NewService(logger)
		_, err := fresh.GetDiff(DiffRequest{DiffType: DiffTypeStaged})
		assert.Error(t, err, "GetDiff should fail before InitRepo")
	})
}
