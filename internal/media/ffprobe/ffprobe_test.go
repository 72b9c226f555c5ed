package ffprobe

import (
	"context"
	"math"
	"os/exec"
	"testing"
)

func TestResultHelpers(t *testing.T) {
	result := Result{
		Streams: []Stream{
			{CodecType: "video", Width: 1920, Height: 1080, AvgFrameRate: "30000/1001"},
			{CodecType: "audio"},
			{CodecType: "audio"},
		},
		Format: Format{
			Duration: "123.45",
			Size:     "1000",
		},
	}
	if _, ok := result.VideoStream(); !ok {
		t.Fatal("expected a video stream")
	}
	if result.AudioStreamCount() != 2 {
		t.Fatalf("expected 2 audio streams, got %d", result.AudioStreamCount())
	}
	if !result.HasAudio() {
		t.Fatal("expected HasAudio to be true")
	}
	if result.DurationSeconds() != 123.45 {
		t.Fatalf("unexpected duration: %v", result.DurationSeconds())
	}
	if result.SizeBytes() != 1000 {
		t.Fatalf("unexpected size: %d", result.SizeBytes())
	}
	width, height := result.Dimensions()
	if width != 1920 || height != 1080 {
		t.Fatalf("unexpected dimensions: %dx%d", width, height)
	}
	if rate := result.FrameRate(); math.Abs(rate-29.97) > 0.01 {
		t.Fatalf("unexpected frame rate: %v", rate)
	}
}

func TestResultHelpersHandleInvalidNumbers(t *testing.T) {
	result := Result{
		Streams: []Stream{
			{CodecType: "video", AvgFrameRate: "0/0"},
		},
		Format: Format{
			Duration: "bad",
			Size:     "-1",
		},
	}
	if result.DurationSeconds() != 0 {
		t.Fatalf("expected duration 0, got %v", result.DurationSeconds())
	}
	if result.SizeBytes() != 0 {
		t.Fatalf("expected size 0, got %d", result.SizeBytes())
	}
	if result.FrameRate() != 0 {
		t.Fatalf("expected frame rate 0, got %v", result.FrameRate())
	}
	if result.HasAudio() {
		t.Fatal("expected no audio")
	}
}

func TestInspectParsesOutput(t *testing.T) {
	payload := `{"streams":[{"index":0,"codec_type":"video","width":640,"height":360}],"format":{"duration":"10.0","nb_streams":1}}`
	original := commandContext
	commandContext = func(ctx context.Context, name string, args ...string) *exec.Cmd {
		return exec.CommandContext(ctx, "sh", "-c", "printf '%s' '"+payload+"'")
	}
	defer func() { commandContext = original }()

	result, err := Inspect(context.Background(), "ffprobe", "/tmp/sample.mp4")
	if err != nil {
		t.Fatalf("Inspect failed: %v", err)
	}
	if result.DurationSeconds() != 10 {
		t.Fatalf("unexpected duration: %v", result.DurationSeconds())
	}
	width, height := result.Dimensions()
	if width != 640 || height != 360 {
		t.Fatalf("unexpected dimensions: %dx%d", width, height)
	}
}

func TestInspectRejectsEmptyPath(t *testing.T) {
	if _, err := Inspect(context.Background(), "ffprobe", "  "); err == nil {
		t.Fatal("expected error for empty path")
	}
}
