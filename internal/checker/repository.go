package checker

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/tildaslashalef/indentwise/internal/loggy"
	"github.com/tildaslashalef/indentwise/internal/ulid"
)

// ErrRunNotFound is returned when a run is not found
var ErrRunNotFound = errors.New("run not found")

// Repository defines operations for managing runs and problems in the database
type Repository interface {
	// CreateRun creates a new run
	CreateRun(ctx context.Context, run *Run) error

	// GetRun retrieves a run by ID
	GetRun(ctx context.Context, id string) (*Run, error)

	// GetRunsByWorkspace retrieves runs for a workspace, newest first
	GetRunsByWorkspace(ctx context.Context, workspaceID string, limit, offset int) ([]*Run, error)

	// GetRunsByFile retrieves runs for a file, newest first
	GetRunsByFile(ctx context.Context, fileID string) ([]*Run, error)

	// GetLatestRunByFile retrieves the most recent run for a file
	GetLatestRunByFile(ctx context.Context, fileID string) (*Run, error)

	// CreateProblem creates a new problem
	CreateProblem(ctx context.Context, problem *Problem) error

	// GetProblemsByRun retrieves problems for a run ordered by line
	GetProblemsByRun(ctx context.Context, runID string) ([]*Problem, error)
}

// SQLRepository implements the Repository interface using a SQL database
type SQLRepository struct {
	db     *sql.DB
	logger *loggy.Logger
}

// NewSQLRepository creates a new SQL repository
func NewSQLRepository(db *sql.DB, logger *loggy.Logger) *SQLRepository {
	return &SQLRepository{
		db:     db,
		logger: logger,
	}
}

// CreateRun creates a new run
func (r *SQLRepository) CreateRun(ctx context.Context, run *Run) error {
	if run.ID == "" {
		run.ID = ulid.RunID()
	}

	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now()
	}

	q := squirrel.Insert("runs").
		Columns("id", "workspace_id", "file_id", "indent_unit", "line_count", "problem_count", "created_at").
		Values(run.ID, run.WorkspaceID, run.FileID, run.IndentUnit, run.LineCount, run.ProblemCount, run.CreatedAt)

	query, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("building create run query: %w", err)
	}

	_, err = r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("executing create run query: %w", err)
	}

	return nil
}

// GetRun retrieves a run by ID
func (r *SQLRepository) GetRun(ctx context.Context, id string) (*Run, error) {
	q := squirrel.Select("id", "workspace_id", "file_id", "indent_unit", "line_count", "problem_count", "created_at").
		From("runs").
		Where(squirrel.Eq{"id": id})

	query, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("building get run query: %w", err)
	}

	row := r.db.QueryRowContext(ctx, query, args...)
	run, err := scanRun(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRunNotFound
		}
		return nil, fmt.Errorf("executing get run query: %w", err)
	}

	return run, nil
}

// GetRunsByWorkspace retrieves runs for a workspace, newest first
func (r *SQLRepository) GetRunsByWorkspace(ctx context.Context, workspaceID string, limit, offset int) ([]*Run, error) {
	q := squirrel.Select("id", "workspace_id", "file_id", "indent_unit", "line_count", "problem_count", "created_at").
		From("runs").
		Where(squirrel.Eq{"workspace_id": workspaceID}).
		OrderBy("created_at DESC")

	if limit > 0 {
		q = q.Limit(uint64(limit))
		if offset > 0 {
			q = q.Offset(uint64(offset))
		}
	}

	query, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("building runs by workspace query: %w", err)
	}

	return r.queryRuns(ctx, query, args)
}

// GetRunsByFile retrieves runs for a file, newest first
func (r *SQLRepository) GetRunsByFile(ctx context.Context, fileID string) ([]*Run, error) {
	q := squirrel.Select("id", "workspace_id", "file_id", "indent_unit", "line_count", "problem_count", "created_at").
		From("runs").
		Where(squirrel.Eq{"file_id": fileID}).
		OrderBy("created_at DESC")

	query, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("building runs by file query: %w", err)
	}

	return r.queryRuns(ctx, query, args)
}

// GetLatestRunByFile retrieves the most recent run for a file
func (r *SQLRepository) GetLatestRunByFile(ctx context.Context, fileID string) (*Run, error) {
	q := squirrel.Select("id", "workspace_id", "file_id", "indent_unit", "line_count", "problem_count", "created_at").
		From("runs").
		Where(squirrel.Eq{"file_id": fileID}).
		OrderBy("created_at DESC").
		Limit(1)

	query, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("building latest run query: %w", err)
	}

	row := r.db.QueryRowContext(ctx, query, args...)
	run, err := scanRun(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRunNotFound
		}
		return nil, fmt.Errorf("executing latest run query: %w", err)
	}

	return run, nil
}

// CreateProblem creates a new problem
func (r *SQLRepository) CreateProblem(ctx context.Context, problem *Problem) error {
	if problem.ID == "" {
		problem.ID = ulid.ProblemID()
	}

	if problem.CreatedAt.IsZero() {
		problem.CreatedAt = time.Now()
	}

	q := squirrel.Insert("problems").
		Columns("id", "run_id", "direction", "line_index", "detected_width", "expected_width", "message", "created_at").
		Values(problem.ID, problem.RunID, problem.Direction, problem.LineIndex, problem.DetectedWidth, problem.ExpectedWidth, problem.Message, problem.CreatedAt)

	query, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("building create problem query: %w", err)
	}

	_, err = r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("executing create problem query: %w", err)
	}

	return nil
}

// GetProblemsByRun retrieves problems for a run ordered by line
func (r *SQLRepository) GetProblemsByRun(ctx context.Context, runID string) ([]*Problem, error) {
	q := squirrel.Select("id", "run_id", "direction", "line_index", "detected_width", "expected_width", "message", "created_at").
		From("problems").
		Where(squirrel.Eq{"run_id": runID}).
		OrderBy("line_index ASC")

	query, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("building problems by run query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("executing problems by run query: %w", err)
	}
	defer rows.Close()

	var problems []*Problem
	for rows.Next() {
		var p Problem
		err := rows.Scan(
			&p.ID,
			&p.RunID,
			&p.Direction,
			&p.LineIndex,
			&p.DetectedWidth,
			&p.ExpectedWidth,
			&p.Message,
			&p.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning problem row: %w", err)
		}
		problems = append(problems, &p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating problem rows: %w", err)
	}

	return problems, nil
}

// queryRuns executes a runs query and scans the result set
func (r *SQLRepository) queryRuns(ctx context.Context, query string, args []interface{}) ([]*Run, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("executing runs query: %w", err)
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		var run Run
		err := rows.Scan(
			&run.ID,
			&run.WorkspaceID,
			&run.FileID,
			&run.IndentUnit,
			&run.LineCount,
			&run.ProblemCount,
			&run.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning run row: %w", err)
		}
		runs = append(runs, &run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating run rows: %w", err)
	}

	return runs, nil
}

// scanRun scans a run from a row
func scanRun(row *sql.Row) (*Run, error) {
	var run Run
	err := row.Scan(
		&run.ID,
		&run.WorkspaceID,
		&run.FileID,
		&run.IndentUnit,
		&run.LineCount,
		&run.ProblemCount,
		&run.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &run, nil
}
