package batch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"versecut/internal/config"
	"versecut/internal/queue"
	"versecut/internal/quotes"
	"versecut/internal/render"
	"versecut/internal/services"
)

// ErrAlreadyRunning is returned when another queue run holds the lock.
var ErrAlreadyRunning = errors.New("another versecut queue run is in progress")

// jobRenderer covers the render entry point the runner drives.
type jobRenderer interface {
	Render(ctx context.Context, req render.Request) (*render.Result, error)
}

// Report summarizes a finished queue run.
type Report struct {
	RunID     string
	Processed int
	Completed int
	Failed    int
	Review    int
}

// Runner drains pending render jobs from the queue. A file lock under the
// work directory keeps concurrent runs from claiming the same jobs.
type Runner struct {
	cfg      *config.Config
	store    *queue.Store
	renderer jobRenderer
	logger   *slog.Logger
	lock     *flock.Flock
}

// NewRunner constructs a Runner over the given store and render service.
func NewRunner(cfg *config.Config, store *queue.Store, renderer jobRenderer, logger *slog.Logger) *Runner {
	lockPath := filepath.Join(cfg.Paths.WorkDir, "versecut.lock")
	return &Runner{
		cfg:      cfg,
		store:    store,
		renderer: renderer,
		logger:   logger.With("component", "queue"),
		lock:     flock.New(lockPath),
	}
}

// Run processes pending jobs until the queue is empty or the context is
// canceled. Jobs stuck in rendering from an interrupted run are reset first.
func (r *Runner) Run(ctx context.Context) (Report, error) {
	if err := r.cfg.EnsureDirectories(); err != nil {
		return Report{}, fmt.Errorf("ensure directories: %w", err)
	}
	ok, err := r.lock.TryLock()
	if err != nil {
		return Report{}, fmt.Errorf("acquire queue lock: %w", err)
	}
	if !ok {
		return Report{}, ErrAlreadyRunning
	}
	defer func() {
		if unlockErr := r.lock.Unlock(); unlockErr != nil {
			r.logger.Warn("failed to release queue lock", slog.Any("error", unlockErr))
		}
	}()

	report := Report{RunID: uuid.NewString()}
	r.logger.Info("queue run started", slog.String("run_id", report.RunID))

	reset, err := r.store.ResetStuckRendering(ctx)
	if err != nil {
		return report, fmt.Errorf("reset stuck jobs: %w", err)
	}
	if reset > 0 {
		r.logger.Warn("reset interrupted jobs to pending", slog.Int64("count", reset))
	}

	for {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		item, err := r.store.NextPending(ctx, report.RunID)
		if err != nil {
			return report, fmt.Errorf("claim next job: %w", err)
		}
		if item == nil {
			break
		}
		report.Processed++
		r.process(ctx, item, &report)
	}

	r.logger.Info("queue run finished",
		slog.String("run_id", report.RunID),
		slog.Int("processed", report.Processed),
		slog.Int("completed", report.Completed),
		slog.Int("failed", report.Failed),
		slog.Int("review", report.Review))
	return report, nil
}

func (r *Runner) process(ctx context.Context, item *queue.Item, report *Report) {
	logger := r.logger.With(slog.Int64("job_id", item.ID), slog.String("input", item.InputPath))
	logger.Info("rendering job")

	req, err := r.buildRequest(item)
	if err == nil {
		req.Progress = func(stage string, percent float64) {
			item.ProgressStage = stage
			item.ProgressPercent = percent
			if updateErr := r.store.Update(ctx, item); updateErr != nil {
				logger.Warn("failed to persist progress", slog.Any("error", updateErr))
			}
		}
		_, err = r.renderer.Render(ctx, req)
	}

	if err != nil {
		item.Status = services.FailureStatus(err)
		item.ErrorMessage = err.Error()
		switch item.Status {
		case queue.StatusReview:
			report.Review++
		default:
			report.Failed++
		}
		logger.Error("job failed", slog.String("status", string(item.Status)), slog.Any("error", err))
	} else {
		item.Status = queue.StatusCompleted
		item.ErrorMessage = ""
		item.ProgressStage = "done"
		item.ProgressPercent = 100
		report.Completed++
		logger.Info("job completed", slog.String("output", item.OutputPath))
	}

	if updateErr := r.store.Update(ctx, item); updateErr != nil {
		logger.Error("failed to persist job result", slog.Any("error", updateErr))
	}
}

// buildRequest resolves the job's quote source into overlay text. Themes and
// random picks resolve at render time so queued jobs see catalog updates.
func (r *Runner) buildRequest(item *queue.Item) (render.Request, error) {
	req := render.Request{
		Input:  item.InputPath,
		Output: item.OutputPath,
		Intro:  item.IntroText,
		Outro:  item.OutroText,
	}
	if strings.TrimSpace(item.OverlayText) != "" {
		req.Texts = append(req.Texts, render.TimedText{
			Text:     item.OverlayText,
			Start:    item.StartSeconds,
			Duration: item.DurationSeconds,
		})
	}

	switch {
	case strings.TrimSpace(item.QuoteFile) != "":
		list, err := quotes.ReadFile(item.QuoteFile)
		if err != nil {
			return req, services.Wrap(services.ErrNotFound, "queue", "quote-file", item.QuoteFile, err)
		}
		req.Quotes = list
	case strings.TrimSpace(item.Theme) != "":
		matches := quotes.ByTheme(item.Theme)
		if len(matches) == 0 {
			return req, services.Wrap(services.ErrValidation, "queue", "theme", fmt.Sprintf("no quotes match %q", item.Theme), nil)
		}
		req.Quotes = quoteStrings(matches)
	case item.RandomCount > 0:
		req.Quotes = quoteStrings(quotes.Sample(item.RandomCount))
	}
	return req, nil
}

func quoteStrings(list []quotes.Quote) []string {
	out := make([]string, 0, len(list))
	for _, q := range list {
		out = append(out, q.String())
	}
	return out
}
