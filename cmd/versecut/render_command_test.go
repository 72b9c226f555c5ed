package main

import (
	"path/filepath"
	"strings"
	"testing"

	"versecut/internal/config"
	"versecut/internal/overlay"
)

func TestStyleFromFlags(t *testing.T) {
	style, err := styleFromFlags(&renderFlags{fontSize: 60, fontColor: "yellow", position: "top"})
	if err != nil {
		t.Fatalf("styleFromFlags failed: %v", err)
	}
	if style.FontSize != 60 || style.FontColor != "yellow" || style.Position != overlay.PositionTop {
		t.Fatalf("unexpected style: %#v", style)
	}

	if _, err := styleFromFlags(&renderFlags{position: "sideways"}); err == nil {
		t.Fatal("expected error for unknown position")
	}
}

func TestStyleFromFlagsCarriesNoFade(t *testing.T) {
	style, err := styleFromFlags(&renderFlags{noFade: true})
	if err != nil {
		t.Fatalf("styleFromFlags failed: %v", err)
	}
	if !style.NoFade {
		t.Fatal("expected NoFade to be carried into the style")
	}
	if style.FadeSeconds != 0 {
		t.Fatalf("unexpected fade: %.1f", style.FadeSeconds)
	}
}

func TestDefaultOutputPath(t *testing.T) {
	cfg := config.Default()
	cfg.Paths.OutputDir = ""
	got := defaultOutputPath(&cfg, "/videos/sermon.mp4")
	if got != "/videos/sermon_quotes.mp4" {
		t.Fatalf("unexpected default output: %s", got)
	}

	cfg.Paths.OutputDir = "/renders"
	got = defaultOutputPath(&cfg, "/videos/sermon.mp4")
	if got != filepath.Join("/renders", "sermon_quotes.mp4") {
		t.Fatalf("unexpected output dir path: %s", got)
	}
}

func TestRenderWarnsOnMissingQuoteFile(t *testing.T) {
	configPath := writeTestConfig(t)

	// The input video does not exist, so the command fails fast, but flag
	// parsing and validation paths are still exercised.
	_, _, err := runCLI(t, []string{"render", "/nonexistent/video.mp4", "--quote-file", "/nonexistent/quotes.txt"}, configPath)
	if err == nil || !strings.Contains(err.Error(), "video does not exist") {
		t.Fatalf("expected missing video error, got %v", err)
	}
}

func TestRenderRejectsBadPosition(t *testing.T) {
	configPath := writeTestConfig(t)
	video := writeTestConfig(t) // any existing file works for flag validation order

	_, _, err := runCLI(t, []string{"render", video, "--position", "sideways"}, configPath)
	if err == nil || !strings.Contains(err.Error(), "unknown position") {
		t.Fatalf("expected position error, got %v", err)
	}
}
