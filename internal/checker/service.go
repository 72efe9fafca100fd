package checker

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tildaslashalef/indentwise/internal/analyzer"
	"github.com/tildaslashalef/indentwise/internal/config"
	"github.com/tildaslashalef/indentwise/internal/language"
	"github.com/tildaslashalef/indentwise/internal/loggy"
	"github.com/tildaslashalef/indentwise/internal/workspace"
)

var (
	// ErrFileSkipped is returned when a file is not analyzable (binary,
	// vendored, documentation or unsupported content)
	ErrFileSkipped = errors.New("file skipped")

	// ErrFileTooLarge is returned when a file exceeds the configured size limit
	ErrFileTooLarge = errors.New("file exceeds maximum size")
)

// Service provides indentation checking functionality
type Service struct {
	repo             Repository
	workspaceService *workspace.Service
	detector         *language.Detector
	config           *config.Config
	logger           *loggy.Logger
}

// NewService creates a new checker service
func NewService(
	db *sql.DB,
	workspaceService *workspace.Service,
	cfg *config.Config,
	logger *loggy.Logger,
) *Service {
	return &Service{
		repo:             NewSQLRepository(db, logger),
		workspaceService: workspaceService,
		detector:         language.NewDetector(logger),
		config:           cfg,
		logger:           logger,
	}
}

// NewServiceWithRepository creates a service with a custom repository implementation (for testing)
func NewServiceWithRepository(
	repo Repository,
	workspaceService *workspace.Service,
	cfg *config.Config,
	logger *loggy.Logger,
) *Service {
	return &Service{
		repo:             repo,
		workspaceService: workspaceService,
		detector:         language.NewDetector(logger),
		config:           cfg,
		logger:           logger,
	}
}

// CheckFile analyzes one workspace-relative file, records the run and its
// problems, and returns the full report.
func (s *Service) CheckFile(ctx context.Context, ws *workspace.Workspace, filePath string) (*FileReport, error) {
	absPath := filePath
	if !filepath.IsAbs(absPath) {
		absPath = filepath.Join(ws.Path, filePath)
	}
	relPath, err := filepath.Rel(ws.Path, absPath)
	if err != nil {
		relPath = filePath
	}

	if !s.detector.IsAnalyzable(absPath) {
		s.logger.Debug("Skipping non-analyzable file", "path", relPath)
		return nil, ErrFileSkipped
	}

	lines, err := s.readLines(absPath)
	if err != nil {
		return nil, err
	}

	lang, err := s.detector.DetectLanguage(absPath)
	if err != nil {
		return nil, fmt.Errorf("detecting language: %w", err)
	}

	opts := analyzer.Options{
		TabWidth:   s.config.Analyzer.TabWidth,
		IndentUnit: s.config.Analyzer.IndentUnit,
		Syntax:     language.SyntaxFor(lang),
	}
	result := analyzer.New(opts, s.logger).Analyze(lines)

	file, err := s.workspaceService.TrackFile(ctx, ws.ID, relPath, lang, len(lines))
	if err != nil {
		return nil, fmt.Errorf("tracking file: %w", err)
	}

	run := NewRun(ws.ID, file.ID)
	run.IndentUnit = result.IndentUnit
	run.LineCount = len(lines)
	run.ProblemCount = len(result.Problems)

	if err := s.repo.CreateRun(ctx, run); err != nil {
		return nil, fmt.Errorf("creating run: %w", err)
	}

	for _, problem := range ProblemsFromResult(run.ID, result) {
		if err := s.repo.CreateProblem(ctx, problem); err != nil {
			s.logger.Error("Failed to save problem",
				"error", err,
				"run_id", run.ID,
				"line", problem.LineIndex)
		}
	}

	s.logger.Info("Checked file",
		"path", relPath,
		"language", lang,
		"unit", result.IndentUnit,
		"problems", len(result.Problems),
	)

	return &FileReport{
		File:   file,
		Run:    run,
		Lines:  lines,
		Result: result,
	}, nil
}

// CheckFiles analyzes multiple files and returns a report per analyzable
// file. Files that are skipped or fail are logged and omitted.
func (s *Service) CheckFiles(ctx context.Context, ws *workspace.Workspace, filePaths []string) ([]*FileReport, error) {
	reports := make([]*FileReport, 0, len(filePaths))

	for _, filePath := range filePaths {
		report, err := s.CheckFile(ctx, ws, filePath)
		if err != nil {
			if errors.Is(err, ErrFileSkipped) {
				continue
			}
			s.logger.Warn("Error checking file", "path", filePath, "error", err)
			continue
		}
		reports = append(reports, report)
	}

	return reports, nil
}

// GetRun retrieves a run by ID
func (s *Service) GetRun(ctx context.Context, id string) (*Run, error) {
	return s.repo.GetRun(ctx, id)
}

// GetRunsByWorkspace retrieves runs for a workspace, newest first
func (s *Service) GetRunsByWorkspace(ctx context.Context, workspaceID string, limit, offset int) ([]*Run, error) {
	return s.repo.GetRunsByWorkspace(ctx, workspaceID, limit, offset)
}

// GetRunsByFile retrieves runs for a file, newest first
func (s *Service) GetRunsByFile(ctx context.Context, fileID string) ([]*Run, error) {
	return s.repo.GetRunsByFile(ctx, fileID)
}

// GetLatestRunByFile retrieves the most recent run for a file
func (s *Service) GetLatestRunByFile(ctx context.Context, fileID string) (*Run, error) {
	return s.repo.GetLatestRunByFile(ctx, fileID)
}

// GetProblemsByRun retrieves problems for a run ordered by line
func (s *Service) GetProblemsByRun(ctx context.Context, runID string) ([]*Problem, error) {
	return s.repo.GetProblemsByRun(ctx, runID)
}

// readLines reads a file and splits it into lines, rejecting files over the
// configured size limit.
func (s *Service) readLines(absPath string) ([]string, error) {
	info, err := os.Stat(absPath)
	if err != nil {
		return nil, fmt.Errorf("accessing file: %w", err)
	}

	if max := s.config.Analyzer.MaxFileSize; max > 0 && info.Size() > max {
		return nil, fmt.Errorf("%w: %s (%d bytes)", ErrFileTooLarge, absPath, info.Size())
	}

	data, err := os.ReadFile(absPath)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}

	return SplitLines(string(data)), nil
}

// SplitLines splits file content into lines, tolerating CRLF endings and a
// trailing newline.
func SplitLines(content string) []string {
	if content == "" {
		return nil
	}

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}

	// A trailing newline produces one empty phantom line
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}

	return lines
}
