package ffmpeg

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	ffmpeg "github.com/u2takey/ffmpeg-go"

	"versecut/internal/overlay"
)

var commandContext = exec.CommandContext

// EncodeSettings carries the codec parameters used for every encode.
type EncodeSettings struct {
	Codec      string
	AudioCodec string
	Preset     string
	CRF        int
	Threads    int
}

// TitleSpec describes the canvas a title card is rendered onto. It is taken
// from the probed source video so concatenated segments match.
type TitleSpec struct {
	Width     int
	Height    int
	FrameRate float64
	WithAudio bool
}

// Option configures the renderer.
type Option func(*Renderer)

// WithBinary overrides the default ffmpeg binary name.
func WithBinary(binary string) Option {
	return func(r *Renderer) {
		if binary != "" {
			r.binary = binary
		}
	}
}

// Renderer invokes ffmpeg to burn overlays, render title cards, and join
// segments.
type Renderer struct {
	binary   string
	settings EncodeSettings
}

// NewRenderer constructs a Renderer with the given encode settings.
func NewRenderer(settings EncodeSettings, opts ...Option) *Renderer {
	r := &Renderer{binary: "ffmpeg", settings: settings}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Renderer) encodeKwArgs() ffmpeg.KwArgs {
	kw := ffmpeg.KwArgs{
		"c:v":     r.settings.Codec,
		"preset":  r.settings.Preset,
		"crf":     r.settings.CRF,
		"pix_fmt": "yuv420p",
		"c:a":     r.settings.AudioCodec,
		"b:a":     "192k",
	}
	if r.settings.Threads > 0 {
		kw["threads"] = r.settings.Threads
	}
	return kw
}

// Copy remuxes the input into the output without re-encoding.
func (r *Renderer) Copy(ctx context.Context, input, output string) error {
	stream := ffmpeg.Input(input).Output(output, ffmpeg.KwArgs{"c": "copy"})
	return r.run(ctx, stream)
}

// Burn re-encodes the input with the plan's overlays drawn onto it. A plan
// with no overlays degrades to a plain re-encode so the segment still matches
// any title cards it is concatenated with.
func (r *Renderer) Burn(ctx context.Context, input, output string, plan *overlay.Plan) error {
	kw := r.encodeKwArgs()
	if len(plan.Overlays) > 0 {
		kw["vf"] = overlayFilterChain(plan)
	}
	stream := ffmpeg.Input(input).Output(output, kw)
	return r.run(ctx, stream)
}

// RenderTitle produces a standalone title card segment from a solid color
// source, sized to spec so it can be concatenated with the main video.
func (r *Renderer) RenderTitle(ctx context.Context, title overlay.Title, style overlay.Style, spec TitleSpec, output string) error {
	if title.Duration <= 0 {
		return errors.New("title duration must be positive")
	}
	if spec.Width <= 0 || spec.Height <= 0 {
		return errors.New("title dimensions unknown")
	}
	rate := spec.FrameRate
	if rate <= 0 {
		rate = 30
	}

	background := strings.TrimSpace(title.Background)
	if background == "" {
		background = "black"
	}
	duration := formatSeconds(title.Duration)

	source := fmt.Sprintf("color=c=%s:s=%dx%d:r=%s:d=%s", background, spec.Width, spec.Height, formatSeconds(rate), duration)
	video := ffmpeg.Input(source, ffmpeg.KwArgs{"f": "lavfi"})

	kw := r.encodeKwArgs()
	kw["vf"] = titleFilterChain(title, style)
	kw["t"] = duration

	var stream *ffmpeg.Stream
	if spec.WithAudio {
		silence := fmt.Sprintf("anullsrc=channel_layout=stereo:sample_rate=48000:d=%s", duration)
		audio := ffmpeg.Input(silence, ffmpeg.KwArgs{"f": "lavfi"})
		stream = ffmpeg.Output([]*ffmpeg.Stream{video, audio}, output, kw)
	} else {
		delete(kw, "c:a")
		delete(kw, "b:a")
		stream = video.Output(output, kw)
	}
	return r.run(ctx, stream)
}

// ConcatFiles joins pre-encoded segments with the concat demuxer. Segments
// must share codecs and parameters; the joined streams are copied, not
// re-encoded.
func (r *Renderer) ConcatFiles(ctx context.Context, segments []string, output string) error {
	if len(segments) < 2 {
		return errors.New("concat requires at least two segments")
	}

	list, err := os.CreateTemp("", "versecut-concat-*.txt")
	if err != nil {
		return fmt.Errorf("concat list: %w", err)
	}
	defer os.Remove(list.Name())

	for _, segment := range segments {
		escaped := strings.ReplaceAll(segment, `'`, `'\''`)
		if _, err := fmt.Fprintf(list, "file '%s'\n", escaped); err != nil {
			list.Close()
			return fmt.Errorf("concat list: %w", err)
		}
	}
	if err := list.Close(); err != nil {
		return fmt.Errorf("concat list: %w", err)
	}

	stream := ffmpeg.Input(list.Name(), ffmpeg.KwArgs{"f": "concat", "safe": "0"}).
		Output(output, ffmpeg.KwArgs{"c": "copy"})
	return r.run(ctx, stream)
}

// run compiles the ffmpeg-go stream into an argument list and executes it
// through the configured binary with context cancellation.
func (r *Renderer) run(ctx context.Context, stream *ffmpeg.Stream) error {
	compiled := stream.OverWriteOutput().Compile()
	args := compiled.Args
	if len(args) < 2 {
		return errors.New("empty ffmpeg invocation")
	}

	cmd := commandContext(ctx, r.binary, args[1:]...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("%s: %w: %s", r.binary, err, tail(string(output)))
	}
	return nil
}

// tail keeps the end of ffmpeg's output, where the actual error lives.
func tail(output string) string {
	trimmed := strings.TrimSpace(output)
	const limit = 400
	if len(trimmed) <= limit {
		return trimmed
	}
	return "..." + trimmed[len(trimmed)-limit:]
}
