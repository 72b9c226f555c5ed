package main

import (
	"path/filepath"
	"testing"

	"versecut/internal/testsupport"
)

func TestQueueAddListRemove(t *testing.T) {
	configPath := writeTestConfig(t)
	video := filepath.Join(t.TempDir(), "sermon.mp4")
	testsupport.WriteFile(t, video, "video")

	out, _, err := runCLI(t, []string{"queue", "add", video, "--theme", "peace"}, configPath)
	if err != nil {
		t.Fatalf("queue add: %v", err)
	}
	requireContains(t, out, "Queued render job #1")

	out, _, err = runCLI(t, []string{"queue", "list"}, configPath)
	if err != nil {
		t.Fatalf("queue list: %v", err)
	}
	requireContains(t, out, "sermon.mp4")
	requireContains(t, out, "pending")
	requireContains(t, out, "theme: peace")

	out, _, err = runCLI(t, []string{"queue", "remove", "1"}, configPath)
	if err != nil {
		t.Fatalf("queue remove: %v", err)
	}
	requireContains(t, out, "Removed job #1")

	out, _, err = runCLI(t, []string{"queue", "list"}, configPath)
	if err != nil {
		t.Fatalf("queue list: %v", err)
	}
	requireContains(t, out, "Queue is empty.")
}

func TestQueueAddRejectsMissingVideo(t *testing.T) {
	configPath := writeTestConfig(t)
	_, _, err := runCLI(t, []string{"queue", "add", "/nonexistent/video.mp4"}, configPath)
	if err == nil {
		t.Fatal("expected error for missing video")
	}
}

func TestQueueListRejectsUnknownStatus(t *testing.T) {
	configPath := writeTestConfig(t)
	_, _, err := runCLI(t, []string{"queue", "list", "--status", "bogus"}, configPath)
	if err == nil {
		t.Fatal("expected error for unknown status")
	}
}

func TestQueueClear(t *testing.T) {
	configPath := writeTestConfig(t)
	video := filepath.Join(t.TempDir(), "a.mp4")
	testsupport.WriteFile(t, video, "video")

	if _, _, err := runCLI(t, []string{"queue", "add", video}, configPath); err != nil {
		t.Fatalf("queue add: %v", err)
	}
	out, _, err := runCLI(t, []string{"queue", "clear"}, configPath)
	if err != nil {
		t.Fatalf("queue clear: %v", err)
	}
	requireContains(t, out, "Deleted 1 jobs")
}

func TestQueueStats(t *testing.T) {
	configPath := writeTestConfig(t)
	video := filepath.Join(t.TempDir(), "a.mp4")
	testsupport.WriteFile(t, video, "video")

	if _, _, err := runCLI(t, []string{"queue", "add", video}, configPath); err != nil {
		t.Fatalf("queue add: %v", err)
	}
	out, _, err := runCLI(t, []string{"queue", "stats"}, configPath)
	if err != nil {
		t.Fatalf("queue stats: %v", err)
	}
	requireContains(t, out, "Pending")
	requireContains(t, out, "Total")
}
