package queue

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

const itemColumns = `id, input_path, output_path, quote_file, theme, random_count,
    overlay_text, start_seconds, duration_seconds,
    intro_text, outro_text, status, error_message, progress_stage, progress_percent,
    run_id, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem(row rowScanner) (*Item, error) {
	var (
		item      Item
		status    string
		createdAt string
		updatedAt string
	)
	err := row.Scan(
		&item.ID,
		&item.InputPath,
		&item.OutputPath,
		&item.QuoteFile,
		&item.Theme,
		&item.RandomCount,
		&item.OverlayText,
		&item.StartSeconds,
		&item.DurationSeconds,
		&item.IntroText,
		&item.OutroText,
		&status,
		&item.ErrorMessage,
		&item.ProgressStage,
		&item.ProgressPercent,
		&item.RunID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}
	item.Status = Status(status)
	item.CreatedAt = parseTimestamp(createdAt)
	item.UpdatedAt = parseTimestamp(updatedAt)
	return &item, nil
}

func parseTimestamp(value string) time.Time {
	parsed, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}
	}
	return parsed
}

// Add inserts a new pending render job and returns the stored record.
func (s *Store) Add(ctx context.Context, item *Item) (*Item, error) {
	if item == nil {
		return nil, errors.New("item is nil")
	}
	if strings.TrimSpace(item.InputPath) == "" {
		return nil, errors.New("input path required")
	}
	timestamp := time.Now().UTC().Format(time.RFC3339Nano)

	res, err := s.execWithRetry(
		ctx,
		`INSERT INTO render_jobs (
            input_path, output_path, quote_file, theme, random_count,
            overlay_text, start_seconds, duration_seconds,
            intro_text, outro_text, status, created_at, updated_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		item.InputPath,
		item.OutputPath,
		item.QuoteFile,
		item.Theme,
		item.RandomCount,
		item.OverlayText,
		item.StartSeconds,
		item.DurationSeconds,
		item.IntroText,
		item.OutroText,
		StatusPending,
		timestamp,
		timestamp,
	)
	if err != nil {
		return nil, fmt.Errorf("insert job: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(ctx, id)
}

// GetByID fetches a render job by identifier. A missing job returns nil, nil.
func (s *Store) GetByID(ctx context.Context, id int64) (*Item, error) {
	row := s.db.QueryRowContext(ensureContext(ctx), `SELECT `+itemColumns+` FROM render_jobs WHERE id = ?`, id)
	item, err := scanItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get job: %w", err)
	}
	return item, nil
}

// List returns jobs ordered by identifier, optionally filtered by status.
func (s *Store) List(ctx context.Context, statuses ...Status) ([]*Item, error) {
	query := `SELECT ` + itemColumns + ` FROM render_jobs`
	args := make([]any, 0, len(statuses))
	if len(statuses) > 0 {
		placeholders := make([]string, len(statuses))
		for i, status := range statuses {
			placeholders[i] = "?"
			args = append(args, string(status))
		}
		query += ` WHERE status IN (` + strings.Join(placeholders, ", ") + `)`
	}
	query += ` ORDER BY id`

	rows, err := s.db.QueryContext(ensureContext(ctx), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	defer rows.Close()

	var items []*Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan job: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	return items, nil
}

// NextPending claims the oldest pending job for the given run, marking it
// rendering in the same statement so concurrent runners cannot double-claim.
func (s *Store) NextPending(ctx context.Context, runID string) (*Item, error) {
	ctx = ensureContext(ctx)
	timestamp := time.Now().UTC().Format(time.RFC3339Nano)

	res, err := s.execWithRetry(
		ctx,
		`UPDATE render_jobs SET status = ?, run_id = ?, updated_at = ?
         WHERE id = (SELECT id FROM render_jobs WHERE status = ? ORDER BY id LIMIT 1)`,
		StatusRendering,
		runID,
		timestamp,
		StatusPending,
	)
	if err != nil {
		return nil, fmt.Errorf("claim job: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("claim job: %w", err)
	}
	if affected == 0 {
		return nil, nil
	}

	row := s.db.QueryRowContext(
		ctx,
		`SELECT `+itemColumns+` FROM render_jobs WHERE status = ? AND run_id = ? ORDER BY updated_at DESC LIMIT 1`,
		StatusRendering,
		runID,
	)
	item, err := scanItem(row)
	if err != nil {
		return nil, fmt.Errorf("claim job: %w", err)
	}
	return item, nil
}

// Update persists changes to an existing render job.
func (s *Store) Update(ctx context.Context, item *Item) error {
	if item == nil {
		return errors.New("item is nil")
	}
	if _, ok := statusSet[item.Status]; !ok {
		return fmt.Errorf("unknown status %q", item.Status)
	}
	item.UpdatedAt = time.Now().UTC()

	res, err := s.execWithRetry(
		ctx,
		`UPDATE render_jobs SET
            input_path = ?, output_path = ?, quote_file = ?, theme = ?, random_count = ?,
            overlay_text = ?, start_seconds = ?, duration_seconds = ?,
            intro_text = ?, outro_text = ?, status = ?, error_message = ?,
            progress_stage = ?, progress_percent = ?, run_id = ?, updated_at = ?
         WHERE id = ?`,
		item.InputPath,
		item.OutputPath,
		item.QuoteFile,
		item.Theme,
		item.RandomCount,
		item.OverlayText,
		item.StartSeconds,
		item.DurationSeconds,
		item.IntroText,
		item.OutroText,
		item.Status,
		item.ErrorMessage,
		item.ProgressStage,
		item.ProgressPercent,
		item.RunID,
		item.UpdatedAt.Format(time.RFC3339Nano),
		item.ID,
	)
	if err != nil {
		return fmt.Errorf("update job: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update job: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("job %d not found", item.ID)
	}
	return nil
}

// Remove deletes a single job.
func (s *Store) Remove(ctx context.Context, id int64) error {
	res, err := s.execWithRetry(ctx, `DELETE FROM render_jobs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("remove job: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("remove job: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("job %d not found", id)
	}
	return nil
}
