package deps

import (
	"context"
	"os/exec"
	"testing"
)

func TestCheckBinaries(t *testing.T) {
	results := CheckBinaries(context.Background(), []Requirement{
		{Name: "Shell", Command: "sh", Description: "always present"},
		{Name: "Missing", Command: "definitely-not-a-real-binary"},
		{Name: "Unset", Command: "  "},
	})
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	if !results[0].Available {
		t.Fatalf("sh should be available: %#v", results[0])
	}
	if results[1].Available || results[1].Detail == "" {
		t.Fatalf("missing binary should report detail: %#v", results[1])
	}
	if results[2].Available || results[2].Detail != "command not configured" {
		t.Fatalf("unset command should be flagged: %#v", results[2])
	}
}

func TestCheckBinariesProbesVersion(t *testing.T) {
	restore := commandContext
	commandContext = func(ctx context.Context, name string, args ...string) *exec.Cmd {
		return exec.CommandContext(ctx, "sh", "-c", `printf 'ffmpeg version 7.1 Copyright (c) 2000-2024\nbuilt with gcc\n'`)
	}
	defer func() { commandContext = restore }()

	results := CheckBinaries(context.Background(), []Requirement{
		{Name: "FFmpeg", Command: "sh"},
	})
	if !results[0].Available {
		t.Fatalf("expected available: %#v", results[0])
	}
	if results[0].Version != "ffmpeg version 7.1 Copyright (c) 2000-2024" {
		t.Fatalf("unexpected version line: %q", results[0].Version)
	}
}

func TestProbeVersionToleratesFailure(t *testing.T) {
	restore := commandContext
	commandContext = func(ctx context.Context, name string, args ...string) *exec.Cmd {
		return exec.CommandContext(ctx, "sh", "-c", "exit 1")
	}
	defer func() { commandContext = restore }()

	if got := probeVersion(context.Background(), "sh"); got != "" {
		t.Fatalf("expected empty version on failure, got %q", got)
	}
}
