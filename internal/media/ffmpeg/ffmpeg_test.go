package ffmpeg

import (
	"context"
	"os/exec"
	"slices"
	"strings"
	"testing"

	"versecut/internal/overlay"
)

// interceptCommands swaps the exec hook so renders record their argument list
// instead of launching ffmpeg.
func interceptCommands(t *testing.T) *[][]string {
	t.Helper()
	var calls [][]string
	original := commandContext
	commandContext = func(ctx context.Context, name string, args ...string) *exec.Cmd {
		calls = append(calls, append([]string{name}, args...))
		return exec.CommandContext(ctx, "true")
	}
	t.Cleanup(func() { commandContext = original })
	return &calls
}

func TestCopyUsesStreamCopy(t *testing.T) {
	calls := interceptCommands(t)
	r := NewRenderer(EncodeSettings{Codec: "libx264", AudioCodec: "aac", Preset: "medium", CRF: 20})

	if err := r.Copy(context.Background(), "/tmp/in.mp4", "/tmp/out.mp4"); err != nil {
		t.Fatalf("Copy failed: %v", err)
	}
	if len(*calls) != 1 {
		t.Fatalf("expected one invocation, got %d", len(*calls))
	}
	args := (*calls)[0]
	if args[0] != "ffmpeg" {
		t.Fatalf("unexpected binary: %s", args[0])
	}
	if !hasFlag(args, "-c", "copy") {
		t.Fatalf("missing -c copy: %v", args)
	}
	if !slices.Contains(args, "/tmp/out.mp4") {
		t.Fatalf("missing output path: %v", args)
	}
}

func TestBurnAppliesFiltersAndEncodeSettings(t *testing.T) {
	calls := interceptCommands(t)
	r := NewRenderer(EncodeSettings{Codec: "libx264", AudioCodec: "aac", Preset: "fast", CRF: 23, Threads: 2}, WithBinary("/opt/bin/ffmpeg"))

	plan := &overlay.Plan{
		Duration: 60,
		Style:    overlay.Style{FontSize: 50, FontColor: "white", Position: overlay.PositionBottom},
	}
	if err := plan.Add("Blessed are the peacemakers", 20, 5); err != nil {
		t.Fatal(err)
	}
	if err := r.Burn(context.Background(), "/tmp/in.mp4", "/tmp/out.mp4", plan); err != nil {
		t.Fatalf("Burn failed: %v", err)
	}

	args := (*calls)[0]
	if args[0] != "/opt/bin/ffmpeg" {
		t.Fatalf("binary override ignored: %s", args[0])
	}
	if !hasFlag(args, "-c:v", "libx264") || !hasFlag(args, "-preset", "fast") || !hasFlag(args, "-crf", "23") {
		t.Fatalf("encode settings missing: %v", args)
	}
	if !hasFlag(args, "-threads", "2") {
		t.Fatalf("threads missing: %v", args)
	}
	vf := flagValue(args, "-vf")
	if !strings.Contains(vf, "drawtext=") || !strings.Contains(vf, "between(t,20,25)") {
		t.Fatalf("overlay filter missing: %q", vf)
	}
}

func TestRenderTitleBuildsLavfiInputs(t *testing.T) {
	calls := interceptCommands(t)
	r := NewRenderer(EncodeSettings{Codec: "libx264", AudioCodec: "aac", Preset: "medium", CRF: 20})

	title := overlay.Title{Text: "Intro", Duration: 5, FontSize: 70, Background: "black", FadeSeconds: 1}
	spec := TitleSpec{Width: 1280, Height: 720, FrameRate: 30, WithAudio: true}
	if err := r.RenderTitle(context.Background(), title, overlay.Style{FontColor: "white"}, spec, "/tmp/intro.mp4"); err != nil {
		t.Fatalf("RenderTitle failed: %v", err)
	}

	joined := strings.Join((*calls)[0], " ")
	if !strings.Contains(joined, "color=c=black:s=1280x720") {
		t.Fatalf("color source missing: %s", joined)
	}
	if !strings.Contains(joined, "anullsrc=") {
		t.Fatalf("silent audio source missing: %s", joined)
	}
}

func TestRenderTitleRejectsBadSpec(t *testing.T) {
	r := NewRenderer(EncodeSettings{})
	title := overlay.Title{Text: "Intro", Duration: 5}
	err := r.RenderTitle(context.Background(), title, overlay.Style{}, TitleSpec{}, "/tmp/out.mp4")
	if err == nil {
		t.Fatal("expected error for zero dimensions")
	}
	title.Duration = 0
	err = r.RenderTitle(context.Background(), title, overlay.Style{}, TitleSpec{Width: 1, Height: 1}, "/tmp/out.mp4")
	if err == nil {
		t.Fatal("expected error for zero duration")
	}
}

func TestConcatFilesUsesConcatDemuxer(t *testing.T) {
	calls := interceptCommands(t)
	r := NewRenderer(EncodeSettings{})

	err := r.ConcatFiles(context.Background(), []string{"/tmp/a.mp4", "/tmp/b.mp4"}, "/tmp/joined.mp4")
	if err != nil {
		t.Fatalf("ConcatFiles failed: %v", err)
	}
	args := (*calls)[0]
	if !hasFlag(args, "-f", "concat") || !hasFlag(args, "-safe", "0") {
		t.Fatalf("concat demuxer flags missing: %v", args)
	}
	if !hasFlag(args, "-c", "copy") {
		t.Fatalf("stream copy missing: %v", args)
	}

	if err := r.ConcatFiles(context.Background(), []string{"/tmp/a.mp4"}, "/tmp/out.mp4"); err == nil {
		t.Fatal("expected error for single segment")
	}
}

func hasFlag(args []string, flag, value string) bool {
	for i := 0; i < len(args)-1; i++ {
		if args[i] == flag && args[i+1] == value {
			return true
		}
	}
	return false
}

func flagValue(args []string, flag string) string {
	for i := 0; i < len(args)-1; i++ {
		if args[i] == flag {
			return args[i+1]
		}
	}
	return ""
}
