package render

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"versecut/internal/config"
	"versecut/internal/media/ffmpeg"
	"versecut/internal/media/ffprobe"
	"versecut/internal/overlay"
	"versecut/internal/services"
	"versecut/internal/textutil"
)

// TimedText is an explicitly placed overlay from the command line.
type TimedText struct {
	Text     string
	Start    float64
	Duration float64
}

// Request describes one render: the source video, the output path, and the
// overlays and title cards to apply. Quotes are distributed evenly across the
// video; Texts keep their explicit timing.
type Request struct {
	Input        string
	Output       string
	Texts        []TimedText
	Quotes       []string
	Intro        string
	Outro        string
	Style        overlay.Style
	QuoteSeconds float64

	// Progress, when set, receives stage updates as the render advances.
	Progress func(stage string, percent float64)
}

// Result summarizes a finished render.
type Result struct {
	OutputPath string
	Copied     bool
	Overlays   int
	Duration   float64
}

// mediaRenderer covers the ffmpeg operations the service drives.
type mediaRenderer interface {
	Copy(ctx context.Context, input, output string) error
	Burn(ctx context.Context, input, output string, plan *overlay.Plan) error
	RenderTitle(ctx context.Context, title overlay.Title, style overlay.Style, spec ffmpeg.TitleSpec, output string) error
	ConcatFiles(ctx context.Context, segments []string, output string) error
}

// Service renders videos according to Requests.
type Service struct {
	cfg      *config.Config
	logger   *slog.Logger
	renderer mediaRenderer
	probe    func(ctx context.Context, binary, path string) (ffprobe.Result, error)
}

// New constructs a Service from configuration.
func New(cfg *config.Config, logger *slog.Logger) *Service {
	settings := ffmpeg.EncodeSettings{
		Codec:      cfg.Render.Codec,
		AudioCodec: cfg.Render.AudioCodec,
		Preset:     cfg.Render.Preset,
		CRF:        cfg.Render.CRF,
		Threads:    cfg.Render.Threads,
	}
	return &Service{
		cfg:      cfg,
		logger:   logger.With("component", "render"),
		renderer: ffmpeg.NewRenderer(settings, ffmpeg.WithBinary(cfg.FFmpegBinary())),
		probe:    ffprobe.Inspect,
	}
}

// Render probes the input, builds the overlay plan, and drives ffmpeg. When
// the request carries no edits the source is stream copied instead of
// re-encoded.
func (s *Service) Render(ctx context.Context, req Request) (*Result, error) {
	if req.Input == "" {
		return nil, services.Wrap(services.ErrValidation, "render", "request", "input path required", nil)
	}
	if req.Output == "" {
		return nil, services.Wrap(services.ErrValidation, "render", "request", "output path required", nil)
	}
	if _, err := os.Stat(req.Input); err != nil {
		return nil, services.Wrap(services.ErrNotFound, "render", "request", "input video", err)
	}

	report := func(stage string, percent float64) {
		if req.Progress != nil {
			req.Progress(stage, percent)
		}
	}

	report("probing", 0)
	probed, err := s.probe(ctx, s.cfg.FFprobeBinary(), req.Input)
	if err != nil {
		return nil, services.Wrap(services.ErrExternalTool, "render", "probe", "inspect input", err)
	}
	duration := probed.DurationSeconds()
	if duration <= 0 {
		return nil, services.Wrap(services.ErrExternalTool, "render", "probe", "could not determine video duration", nil)
	}
	s.logger.Info("probed input",
		slog.String("input", req.Input),
		slog.Float64("duration_seconds", duration),
		slog.Int("audio_streams", probed.AudioStreamCount()))

	plan, err := s.buildPlan(req, duration)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(filepath.Dir(req.Output), 0o755); err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "render", "output", "create output directory", err)
	}

	result := &Result{OutputPath: req.Output, Overlays: len(plan.Overlays), Duration: duration}

	if plan.IsCopy() {
		s.logger.Warn("no edits requested, copying input to output", slog.String("output", req.Output))
		report("copying", 50)
		if err := s.renderer.Copy(ctx, req.Input, req.Output); err != nil {
			return nil, services.Wrap(services.ErrExternalTool, "render", "copy", "stream copy", err)
		}
		result.Copied = true
		report("done", 100)
		return result, nil
	}

	if plan.Intro == nil && plan.Outro == nil {
		s.logger.Info("burning overlays", slog.Int("overlays", len(plan.Overlays)))
		report("rendering", 25)
		if err := s.renderer.Burn(ctx, req.Input, req.Output, plan); err != nil {
			return nil, services.Wrap(services.ErrExternalTool, "render", "burn", "apply overlays", err)
		}
		report("done", 100)
		return result, nil
	}

	if err := s.renderWithTitles(ctx, req, plan, probed, report); err != nil {
		return nil, err
	}
	report("done", 100)
	return result, nil
}

func (s *Service) buildPlan(req Request, duration float64) (*overlay.Plan, error) {
	plan := &overlay.Plan{Duration: duration, Style: s.applyStyleDefaults(req.Style)}

	lineWidth := s.cfg.Render.LineWidth
	for _, text := range req.Texts {
		if err := plan.Add(textutil.Wrap(text.Text, lineWidth), text.Start, text.Duration); err != nil {
			return nil, services.Wrap(services.ErrValidation, "render", "overlay", "", err)
		}
	}

	quoteSeconds := req.QuoteSeconds
	if quoteSeconds <= 0 {
		quoteSeconds = s.cfg.Render.QuoteSeconds
	}
	wrapped := make([]string, 0, len(req.Quotes))
	for _, quote := range req.Quotes {
		wrapped = append(wrapped, textutil.Wrap(quote, lineWidth))
	}
	if err := plan.Distribute(wrapped, quoteSeconds); err != nil {
		return nil, services.Wrap(services.ErrValidation, "render", "quotes", "", err)
	}

	if req.Intro != "" {
		plan.Intro = s.newTitle(req.Intro, lineWidth)
	}
	if req.Outro != "" {
		plan.Outro = s.newTitle(req.Outro, lineWidth)
	}
	return plan, nil
}

func (s *Service) applyStyleDefaults(style overlay.Style) overlay.Style {
	render := s.cfg.Render
	if style.FontSize <= 0 {
		style.FontSize = render.FontSize
	}
	if style.FontColor == "" {
		style.FontColor = render.FontColor
	}
	if style.BoxColor == "" {
		style.BoxColor = render.BoxColor
	}
	if style.Position == "" {
		if position, ok := overlay.ParsePosition(render.Position); ok {
			style.Position = position
		} else {
			style.Position = overlay.PositionBottom
		}
	}
	if style.NoFade {
		style.FadeSeconds = 0
	} else if style.FadeSeconds <= 0 {
		style.FadeSeconds = render.FadeSeconds
	}
	if style.FontFile == "" {
		style.FontFile = render.FontFile
	}
	return style
}

func (s *Service) newTitle(text string, lineWidth int) *overlay.Title {
	titles := s.cfg.Titles
	return &overlay.Title{
		Text:        textutil.Wrap(text, lineWidth),
		Duration:    titles.Seconds,
		FontSize:    titles.FontSize,
		Background:  titles.Background,
		FadeSeconds: titles.FadeSeconds,
	}
}

// renderWithTitles renders the main video and each title card as separate
// segments sharing codec settings, then joins them with a stream copy concat.
func (s *Service) renderWithTitles(ctx context.Context, req Request, plan *overlay.Plan, probed ffprobe.Result, report func(string, float64)) error {
	width, height := probed.Dimensions()
	if width <= 0 || height <= 0 {
		return services.Wrap(services.ErrValidation, "render", "titles", "input has no video stream", nil)
	}
	spec := ffmpeg.TitleSpec{
		Width:     width,
		Height:    height,
		FrameRate: probed.FrameRate(),
		WithAudio: probed.HasAudio(),
	}

	if err := s.cfg.EnsureDirectories(); err != nil {
		return services.Wrap(services.ErrConfiguration, "render", "staging", "ensure work directory", err)
	}
	staging, err := os.MkdirTemp(s.cfg.Paths.WorkDir, "render-*")
	if err != nil {
		return services.Wrap(services.ErrConfiguration, "render", "staging", "create staging directory", err)
	}
	defer os.RemoveAll(staging)

	ext := filepath.Ext(req.Output)
	if ext == "" {
		ext = ".mp4"
	}

	var segments []string
	if plan.Intro != nil {
		path := filepath.Join(staging, "intro"+ext)
		s.logger.Info("rendering intro card", slog.String("text", plan.Intro.Text))
		report("intro", 10)
		if err := s.renderer.RenderTitle(ctx, *plan.Intro, plan.Style, spec, path); err != nil {
			return services.Wrap(services.ErrExternalTool, "render", "intro", "render title card", err)
		}
		segments = append(segments, path)
	}

	main := filepath.Join(staging, "main"+ext)
	s.logger.Info("burning overlays", slog.Int("overlays", len(plan.Overlays)))
	report("rendering", 40)
	if err := s.renderer.Burn(ctx, req.Input, main, plan); err != nil {
		return services.Wrap(services.ErrExternalTool, "render", "burn", "apply overlays", err)
	}
	segments = append(segments, main)

	if plan.Outro != nil {
		path := filepath.Join(staging, "outro"+ext)
		s.logger.Info("rendering outro card", slog.String("text", plan.Outro.Text))
		report("outro", 80)
		if err := s.renderer.RenderTitle(ctx, *plan.Outro, plan.Style, spec, path); err != nil {
			return services.Wrap(services.ErrExternalTool, "render", "outro", "render title card", err)
		}
		segments = append(segments, path)
	}

	report("joining", 90)
	if err := s.renderer.ConcatFiles(ctx, segments, req.Output); err != nil {
		return services.Wrap(services.ErrExternalTool, "render", "concat", fmt.Sprintf("join %d segments", len(segments)), err)
	}
	return nil
}
