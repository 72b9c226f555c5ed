package batch

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"versecut/internal/queue"
	"versecut/internal/render"
	"versecut/internal/services"
	"versecut/internal/testsupport"
)

type fakeJobRenderer struct {
	requests []render.Request
	fail     map[string]error
}

func (f *fakeJobRenderer) Render(ctx context.Context, req render.Request) (*render.Result, error) {
	f.requests = append(f.requests, req)
	if err, ok := f.fail[req.Input]; ok {
		return nil, err
	}
	if req.Progress != nil {
		req.Progress("rendering", 50)
	}
	return &render.Result{OutputPath: req.Output, Overlays: len(req.Quotes)}, nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRunDrainsQueue(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	fake := &fakeJobRenderer{}
	runner := NewRunner(cfg, store, fake, discardLogger())

	ctx := context.Background()
	testsupport.AddJob(t, store, "/videos/a.mp4", "/videos/a_out.mp4")
	testsupport.AddJob(t, store, "/videos/b.mp4", "/videos/b_out.mp4")

	report, err := runner.Run(ctx)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if report.Processed != 2 || report.Completed != 2 {
		t.Fatalf("unexpected report: %#v", report)
	}
	if report.RunID == "" {
		t.Fatal("expected run ID")
	}

	stats, err := store.Summary(ctx)
	if err != nil {
		t.Fatalf("Summary failed: %v", err)
	}
	if stats.Completed != 2 || stats.Pending != 0 {
		t.Fatalf("queue not drained: %#v", stats)
	}
}

func TestRunClassifiesFailures(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	fake := &fakeJobRenderer{fail: map[string]error{
		"/videos/bad.mp4":     services.Wrap(services.ErrExternalTool, "render", "burn", "ffmpeg failed", nil),
		"/videos/invalid.mp4": services.Wrap(services.ErrValidation, "render", "overlay", "past the video end", nil),
	}}
	runner := NewRunner(cfg, store, fake, discardLogger())

	ctx := context.Background()
	bad := testsupport.AddJob(t, store, "/videos/bad.mp4", "/videos/bad_out.mp4")
	invalid := testsupport.AddJob(t, store, "/videos/invalid.mp4", "/videos/invalid_out.mp4")

	report, err := runner.Run(ctx)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if report.Failed != 1 || report.Review != 1 {
		t.Fatalf("unexpected report: %#v", report)
	}

	badItem, err := store.GetByID(ctx, bad.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if badItem.Status != queue.StatusFailed || badItem.ErrorMessage == "" {
		t.Fatalf("unexpected failed item: %#v", badItem)
	}

	invalidItem, err := store.GetByID(ctx, invalid.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if invalidItem.Status != queue.StatusReview {
		t.Fatalf("expected review status: %#v", invalidItem)
	}
}

func TestRunResolvesQuoteSources(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	fake := &fakeJobRenderer{}
	runner := NewRunner(cfg, store, fake, discardLogger())

	ctx := context.Background()
	quoteFile := filepath.Join(t.TempDir(), "quotes.txt")
	testsupport.WriteFile(t, quoteFile, "first quote\nsecond quote\n")

	if _, err := store.Add(ctx, &queue.Item{
		InputPath:  "/videos/a.mp4",
		OutputPath: "/videos/a_out.mp4",
		QuoteFile:  quoteFile,
	}); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if _, err := store.Add(ctx, &queue.Item{
		InputPath:  "/videos/b.mp4",
		OutputPath: "/videos/b_out.mp4",
		Theme:      "love",
	}); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if _, err := store.Add(ctx, &queue.Item{
		InputPath:   "/videos/c.mp4",
		OutputPath:  "/videos/c_out.mp4",
		RandomCount: 3,
	}); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	report, err := runner.Run(ctx)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if report.Completed != 3 {
		t.Fatalf("unexpected report: %#v", report)
	}
	if len(fake.requests) != 3 {
		t.Fatalf("expected 3 render requests, got %d", len(fake.requests))
	}
	if len(fake.requests[0].Quotes) != 2 {
		t.Fatalf("quote file not resolved: %#v", fake.requests[0].Quotes)
	}
	if len(fake.requests[1].Quotes) == 0 {
		t.Fatal("theme resolved to no quotes")
	}
	if len(fake.requests[2].Quotes) != 3 {
		t.Fatalf("random count not resolved: %#v", fake.requests[2].Quotes)
	}
}

func TestRunCarriesTimedOverlayText(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	fake := &fakeJobRenderer{}
	runner := NewRunner(cfg, store, fake, discardLogger())

	ctx := context.Background()
	if _, err := store.Add(ctx, &queue.Item{
		InputPath:       "/videos/a.mp4",
		OutputPath:      "/videos/a_out.mp4",
		OverlayText:     "Subscribe below",
		StartSeconds:    5,
		DurationSeconds: 10,
	}); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	if _, err := runner.Run(ctx); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(fake.requests) != 1 {
		t.Fatalf("expected 1 render request, got %d", len(fake.requests))
	}
	texts := fake.requests[0].Texts
	if len(texts) != 1 || texts[0].Text != "Subscribe below" || texts[0].Start != 5 || texts[0].Duration != 10 {
		t.Fatalf("overlay text not carried: %#v", texts)
	}
}

func TestRunSendsMissingQuoteFileToReview(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	runner := NewRunner(cfg, store, &fakeJobRenderer{}, discardLogger())

	ctx := context.Background()
	item, err := store.Add(ctx, &queue.Item{
		InputPath:  "/videos/a.mp4",
		OutputPath: "/videos/a_out.mp4",
		QuoteFile:  "/nonexistent/quotes.txt",
	})
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	report, err := runner.Run(ctx)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if report.Review != 1 {
		t.Fatalf("unexpected report: %#v", report)
	}
	fetched, err := store.GetByID(ctx, item.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if fetched.Status != queue.StatusReview {
		t.Fatalf("expected review status: %#v", fetched)
	}
}

func TestRunRefusesSecondConcurrentRun(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	first := NewRunner(cfg, store, &fakeJobRenderer{}, discardLogger())

	if err := first.cfg.EnsureDirectories(); err != nil {
		t.Fatalf("ensure directories: %v", err)
	}
	ok, err := first.lock.TryLock()
	if err != nil || !ok {
		t.Fatalf("could not take lock: %v", err)
	}
	defer first.lock.Unlock()

	second := NewRunner(cfg, store, &fakeJobRenderer{}, discardLogger())
	if _, err := second.Run(context.Background()); !errors.Is(err, ErrAlreadyRunning) {
		t.Fatalf("expected ErrAlreadyRunning, got %v", err)
	}
}
