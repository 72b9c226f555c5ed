package queue

import (
	"context"
	"fmt"
	"time"
)

// Clear removes every job from the queue and returns the number deleted.
func (s *Store) Clear(ctx context.Context) (int64, error) {
	res, err := s.execWithRetry(ctx, `DELETE FROM render_jobs`)
	if err != nil {
		return 0, fmt.Errorf("clear queue: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("clear queue: %w", err)
	}
	return affected, nil
}

// ClearCompleted removes completed jobs only.
func (s *Store) ClearCompleted(ctx context.Context) (int64, error) {
	res, err := s.execWithRetry(ctx, `DELETE FROM render_jobs WHERE status = ?`, StatusCompleted)
	if err != nil {
		return 0, fmt.Errorf("clear completed: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("clear completed: %w", err)
	}
	return affected, nil
}

// RetryFailed returns failed and review jobs to pending, clearing their error
// state.
func (s *Store) RetryFailed(ctx context.Context) (int64, error) {
	timestamp := time.Now().UTC().Format(time.RFC3339Nano)
	res, err := s.execWithRetry(
		ctx,
		`UPDATE render_jobs SET status = ?, error_message = '', progress_stage = '',
            progress_percent = 0, updated_at = ?
         WHERE status IN (?, ?)`,
		StatusPending,
		timestamp,
		StatusFailed,
		StatusReview,
	)
	if err != nil {
		return 0, fmt.Errorf("retry failed: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("retry failed: %w", err)
	}
	return affected, nil
}

// ResetStuckRendering returns rendering jobs to pending. Used at run startup
// to recover jobs abandoned by an interrupted runner.
func (s *Store) ResetStuckRendering(ctx context.Context) (int64, error) {
	timestamp := time.Now().UTC().Format(time.RFC3339Nano)
	res, err := s.execWithRetry(
		ctx,
		`UPDATE render_jobs SET status = ?, run_id = '', updated_at = ? WHERE status = ?`,
		StatusPending,
		timestamp,
		StatusRendering,
	)
	if err != nil {
		return 0, fmt.Errorf("reset rendering: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("reset rendering: %w", err)
	}
	return affected, nil
}

// Summary aggregates job counts per status.
func (s *Store) Summary(ctx context.Context) (Stats, error) {
	rows, err := s.db.QueryContext(ensureContext(ctx), `SELECT status, COUNT(1) FROM render_jobs GROUP BY status`)
	if err != nil {
		return Stats{}, fmt.Errorf("queue summary: %w", err)
	}
	defer rows.Close()

	var stats Stats
	for rows.Next() {
		var (
			status string
			count  int
		)
		if err := rows.Scan(&status, &count); err != nil {
			return Stats{}, fmt.Errorf("queue summary: %w", err)
		}
		stats.Total += count
		switch Status(status) {
		case StatusPending:
			stats.Pending = count
		case StatusRendering:
			stats.Rendering = count
		case StatusCompleted:
			stats.Completed = count
		case StatusFailed:
			stats.Failed = count
		case StatusReview:
			stats.Review = count
		}
	}
	if err := rows.Err(); err != nil {
		return Stats{}, fmt.Errorf("queue summary: %w", err)
	}
	return stats, nil
}
