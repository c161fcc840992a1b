package jobstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

const jobColumns = "id, project, output_path, status, phase, progress, current_frame, total_frames, last_batch, warnings_json, error_message, created_at, updated_at"

// Create inserts a new running job.
func (s *Store) Create(ctx context.Context, id, project, outputPath string) (*Job, error) {
	now := time.Now().UTC()
	job := &Job{
		ID:         id,
		Project:    project,
		OutputPath: outputPath,
		Status:     StatusRunning,
		Phase:      "preparing",
		LastBatch:  -1,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	_, err := s.execWithRetry(ctx,
		`INSERT INTO export_jobs (id, project, output_path, status, phase, last_batch, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		job.ID, job.Project, job.OutputPath, string(job.Status), job.Phase, job.LastBatch,
		formatTime(job.CreatedAt), formatTime(job.UpdatedAt))
	if err != nil {
		return nil, fmt.Errorf("create job: %w", err)
	}
	return job, nil
}

// Get fetches one job by ID.
func (s *Store) Get(ctx context.Context, id string) (*Job, error) {
	row := s.db.QueryRowContext(ensureContext(ctx),
		"SELECT "+jobColumns+" FROM export_jobs WHERE id = ?", id)
	job, err := scanJob(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return job, err
}

// List returns jobs newest first, up to limit (0 = all).
func (s *Store) List(ctx context.Context, limit int) ([]*Job, error) {
	query := "SELECT " + jobColumns + " FROM export_jobs ORDER BY created_at DESC"
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ensureContext(ctx), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	defer rows.Close()

	var jobs []*Job
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}
	return jobs, rows.Err()
}

// UpdateProgress records the job's current phase and position.
func (s *Store) UpdateProgress(ctx context.Context, id, phase string, progress float64, currentFrame, totalFrames int) error {
	_, err := s.execWithRetry(ctx,
		`UPDATE export_jobs SET phase = ?, progress = ?, current_frame = ?, total_frames = ?, updated_at = ?
		 WHERE id = ?`,
		phase, progress, currentFrame, totalFrames, formatTime(time.Now().UTC()), id)
	if err != nil {
		return fmt.Errorf("update progress: %w", err)
	}
	return nil
}

// MarkBatch acknowledges a fully staged frame batch for resumability.
func (s *Store) MarkBatch(ctx context.Context, id string, batch int) error {
	_, err := s.execWithRetry(ctx,
		"UPDATE export_jobs SET last_batch = ?, updated_at = ? WHERE id = ?",
		batch, formatTime(time.Now().UTC()), id)
	if err != nil {
		return fmt.Errorf("mark batch: %w", err)
	}
	return nil
}

// AppendWarning attaches one degraded-clip warning to the job.
func (s *Store) AppendWarning(ctx context.Context, id, warning string) error {
	job, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	warnings := append(job.Warnings, warning)
	raw, err := json.Marshal(warnings)
	if err != nil {
		return fmt.Errorf("encode warnings: %w", err)
	}
	_, err = s.execWithRetry(ctx,
		"UPDATE export_jobs SET warnings_json = ?, updated_at = ? WHERE id = ?",
		string(raw), formatTime(time.Now().UTC()), id)
	if err != nil {
		return fmt.Errorf("append warning: %w", err)
	}
	return nil
}

// Finish moves the job to a terminal status. message is stored for failures.
func (s *Store) Finish(ctx context.Context, id string, status Status, message string) error {
	if !status.Terminal() {
		return fmt.Errorf("finish with non-terminal status %q", status)
	}
	var (
		res sql.Result
		err error
	)
	switch status {
	case StatusComplete:
		res, err = s.execWithRetry(ctx,
			"UPDATE export_jobs SET status = ?, phase = 'complete', progress = 100, error_message = '', updated_at = ? WHERE id = ?",
			string(status), formatTime(time.Now().UTC()), id)
	case StatusFailed:
		res, err = s.execWithRetry(ctx,
			"UPDATE export_jobs SET status = ?, phase = 'error', error_message = ?, updated_at = ? WHERE id = ?",
			string(status), message, formatTime(time.Now().UTC()), id)
	default: // canceled keeps its last phase
		res, err = s.execWithRetry(ctx,
			"UPDATE export_jobs SET status = ?, error_message = ?, updated_at = ? WHERE id = ?",
			string(status), message, formatTime(time.Now().UTC()), id)
	}
	if err != nil {
		return fmt.Errorf("finish job: %w", err)
	}
	affected, err := res.RowsAffected()
	if err == nil && affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Prune removes terminal jobs older than the cutoff and returns the count.
func (s *Store) Prune(ctx context.Context, olderThan time.Time) (int64, error) {
	res, err := s.execWithRetry(ctx,
		"DELETE FROM export_jobs WHERE status != ? AND updated_at < ?",
		string(StatusRunning), formatTime(olderThan.UTC()))
	if err != nil {
		return 0, fmt.Errorf("prune jobs: %w", err)
	}
	return res.RowsAffected()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanJob(row rowScanner) (*Job, error) {
	var (
		job          Job
		status       string
		warningsJSON string
		createdAt    string
		updatedAt    string
	)
	err := row.Scan(&job.ID, &job.Project, &job.OutputPath, &status, &job.Phase,
		&job.Progress, &job.CurrentFrame, &job.TotalFrames, &job.LastBatch,
		&warningsJSON, &job.ErrorMessage, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}
	job.Status = Status(status)
	if warningsJSON != "" && warningsJSON != "[]" {
		if err := json.Unmarshal([]byte(warningsJSON), &job.Warnings); err != nil {
			return nil, fmt.Errorf("decode warnings: %w", err)
		}
	}
	if job.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if job.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	return &job, nil
}

func formatTime(t time.Time) string {
	return t.Format(time.RFC3339Nano)
}

func parseTime(raw string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse stored time %q: %w", raw, err)
	}
	return t, nil
}
