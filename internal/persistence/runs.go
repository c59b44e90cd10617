package persistence

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// SaveRun persists a run and its task results in one transaction and
// returns the new run ID.
func (s *SQLiteStore) SaveRun(ctx context.Context, record *RunRecord, tasks []*TaskRecord) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		INSERT INTO runs (started_at, ended_at, total_tasks, successful, failed, blocked, total_execution_time, summary)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		record.StartedAt.UTC().Format(time.RFC3339),
		record.EndedAt.UTC().Format(time.RFC3339),
		record.TotalTasks,
		record.Successful,
		record.Failed,
		record.Blocked,
		record.TotalExecutionTime,
		record.Summary,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get run id: %w", err)
	}

	for _, task := range tasks {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO task_results (run_id, task_id, name, role, success, error, execution_time)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			runID, task.TaskID, task.Name, task.Role, task.Success, task.Error, task.ExecutionTime,
		)
		if err != nil {
			return 0, fmt.Errorf("failed to insert task result: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit run: %w", err)
	}
	return runID, nil
}

// GetRun returns a single run by ID.
func (s *SQLiteStore) GetRun(ctx context.Context, runID int64) (*RunRecord, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, started_at, ended_at, total_tasks, successful, failed, blocked, total_execution_time, summary
		FROM runs WHERE id = ?`, runID)

	record, err := scanRun(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("run not found: %d", runID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	return record, nil
}

// ListRuns returns the most recent runs, newest first. A limit of 0 or
// less means no limit.
func (s *SQLiteStore) ListRuns(ctx context.Context, limit int) ([]*RunRecord, error) {
	query := `
		SELECT id, started_at, ended_at, total_tasks, successful, failed, blocked, total_execution_time, summary
		FROM runs ORDER BY id DESC`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var records []*RunRecord
	for rows.Next() {
		record, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

// TaskResults returns the task results for a run in insertion order.
func (s *SQLiteStore) TaskResults(ctx context.Context, runID int64) ([]*TaskRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT run_id, task_id, name, role, success, error, execution_time
		FROM task_results WHERE run_id = ? ORDER BY id`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to list task results: %w", err)
	}
	defer rows.Close()

	var records []*TaskRecord
	for rows.Next() {
		var record TaskRecord
		var taskErr sql.NullString
		if err := rows.Scan(&record.RunID, &record.TaskID, &record.Name, &record.Role,
			&record.Success, &taskErr, &record.ExecutionTime); err != nil {
			return nil, fmt.Errorf("failed to scan task result: %w", err)
		}
		record.Error = taskErr.String
		records = append(records, &record)
	}
	return records, rows.Err()
}

// scanner covers both sql.Row and sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (*RunRecord, error) {
	var record RunRecord
	var startedAt, endedAt string
	if err := row.Scan(&record.ID, &startedAt, &endedAt, &record.TotalTasks,
		&record.Successful, &record.Failed, &record.Blocked,
		&record.TotalExecutionTime, &record.Summary); err != nil {
		return nil, err
	}

	var err error
	if record.StartedAt, err = time.Parse(time.RFC3339, startedAt); err != nil {
		return nil, fmt.Errorf("invalid started_at: %w", err)
	}
	if record.EndedAt, err = time.Parse(time.RFC3339, endedAt); err != nil {
		return nil, fmt.Errorf("invalid ended_at: %w", err)
	}
	return &record, nil
}
