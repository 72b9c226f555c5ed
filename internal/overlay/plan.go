package overlay

import (
	"errors"
	"fmt"
	"strings"
)

// Position describes the vertical placement of overlay text.
type Position string

const (
	PositionTop    Position = "top"
	PositionCenter Position = "center"
	PositionBottom Position = "bottom"
)

// ParsePosition converts a string into a known Position.
func ParsePosition(value string) (Position, bool) {
	normalized := Position(strings.ToLower(strings.TrimSpace(value)))
	switch normalized {
	case PositionTop, PositionCenter, PositionBottom:
		return normalized, true
	}
	return "", false
}

// Style controls how overlay text is drawn. A zero FadeSeconds means "use the
// configured default"; NoFade requests a hard cut even when a default exists.
type Style struct {
	FontFile    string
	FontSize    int
	FontColor   string
	BoxColor    string // "transparent" or empty disables the box
	Position    Position
	FadeSeconds float64
	NoFade      bool
}

// Overlay is a quote rendered onto a frame range: text shown from Start for
// Duration seconds.
type Overlay struct {
	Text     string
	Start    float64
	Duration float64
}

// End returns the time the overlay disappears.
func (o Overlay) End() float64 {
	return o.Start + o.Duration
}

// Title is an intro or outro card shown before or after the main video.
type Title struct {
	Text        string
	Duration    float64
	FontSize    int
	Background  string
	FadeSeconds float64
}

// Plan is the full set of edits applied to one video.
type Plan struct {
	Duration float64 // probed duration of the source video, in seconds
	Overlays []Overlay
	Style    Style
	Intro    *Title
	Outro    *Title
}

// IsCopy reports whether the plan performs no edits, in which case the source
// is copied instead of re-encoded.
func (p *Plan) IsCopy() bool {
	return len(p.Overlays) == 0 && p.Intro == nil && p.Outro == nil
}

// Add appends a timed overlay after normalizing and validating it against the
// video duration. A zero duration extends the overlay to the end of the video.
func (p *Plan) Add(text string, start, duration float64) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return errors.New("overlay text is empty")
	}
	if start < 0 {
		return fmt.Errorf("overlay start %.2fs is negative", start)
	}
	if duration < 0 {
		return fmt.Errorf("overlay duration %.2fs is negative", duration)
	}
	if p.Duration > 0 && start >= p.Duration {
		return fmt.Errorf("overlay start %.2fs is at or past the video end (%.2fs)", start, p.Duration)
	}
	if duration == 0 {
		duration = p.Duration - start
	}
	if p.Duration > 0 && start+duration > p.Duration {
		duration = p.Duration - start
	}
	p.Overlays = append(p.Overlays, Overlay{Text: text, Start: start, Duration: duration})
	return nil
}

// Distribute spaces the given quotes evenly across the video: with N quotes,
// quote i starts at duration/(N+1) * (i+1) and is shown for quoteSeconds,
// clamped to the video end. An empty list is a no-op.
func (p *Plan) Distribute(list []string, quoteSeconds float64) error {
	if len(list) == 0 {
		return nil
	}
	if p.Duration <= 0 {
		return errors.New("video duration unknown; cannot distribute quotes")
	}
	if quoteSeconds <= 0 {
		return errors.New("quote duration must be positive")
	}

	interval := p.Duration / float64(len(list)+1)
	for idx, text := range list {
		start := interval * float64(idx+1)
		if err := p.Add(text, start, quoteSeconds); err != nil {
			return fmt.Errorf("quote %d: %w", idx+1, err)
		}
	}
	return nil
}
