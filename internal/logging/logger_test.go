package logging

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestConsoleHandlerFormatsComponentPrefix(t *testing.T) {
	var buf strings.Builder
	lvl := new(slog.LevelVar)
	handler := newConsoleHandler(writerAdapter{&buf}, lvl)
	logger := slog.New(handler).With(slog.String("component", "render"))

	logger.Info("starting job", slog.Int("overlays", 3), slog.String("input", "clip one.mp4"))

	line := buf.String()
	if !strings.Contains(line, "INFO render: starting job") {
		t.Fatalf("unexpected line: %q", line)
	}
	if !strings.Contains(line, "overlays=3") {
		t.Fatalf("missing int attr: %q", line)
	}
	if !strings.Contains(line, `input="clip one.mp4"`) {
		t.Fatalf("missing quoted attr: %q", line)
	}
	if strings.Contains(line, "component=") {
		t.Fatalf("component should not appear as attr: %q", line)
	}
}

func TestConsoleHandlerLevelFiltering(t *testing.T) {
	var buf strings.Builder
	lvl := new(slog.LevelVar)
	lvl.Set(slog.LevelWarn)
	logger := slog.New(newConsoleHandler(writerAdapter{&buf}, lvl))

	logger.Info("ignored")
	logger.Warn("kept")

	out := buf.String()
	if strings.Contains(out, "ignored") {
		t.Fatalf("info line should be filtered: %q", out)
	}
	if !strings.Contains(out, "WARN kept") {
		t.Fatalf("warn line missing: %q", out)
	}
}

func TestNewWritesToFile(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "nested", "versecut.log")

	logger, err := New(Options{Level: "debug", Format: "json", OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Debug("hello", slog.Duration("took", 2*time.Second))

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(data), `"msg":"hello"`) {
		t.Fatalf("unexpected log contents: %s", data)
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := New(Options{Format: "yaml"}); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

type writerAdapter struct {
	b *strings.Builder
}

func (w writerAdapter) Write(p []byte) (int, error) {
	return w.b.Write(p)
}
