package config

import (
	"errors"
	"fmt"
)

var allowedPositions = map[string]struct{}{
	"top":    {},
	"center": {},
	"bottom": {},
}

var allowedPresets = map[string]struct{}{
	"ultrafast": {},
	"superfast": {},
	"veryfast":  {},
	"faster":    {},
	"fast":      {},
	"medium":    {},
	"slow":      {},
	"slower":    {},
	"veryslow":  {},
	"placebo":   {},
}

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateRender(); err != nil {
		return err
	}
	if err := c.validateTitles(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateRender() error {
	if c.Render.FontSize <= 0 {
		return errors.New("render.font_size must be positive")
	}
	if c.Render.FontColor == "" {
		return errors.New("render.font_color must be set")
	}
	if _, ok := allowedPositions[c.Render.Position]; !ok {
		return fmt.Errorf("render.position must be one of top, center, bottom (got %q)", c.Render.Position)
	}
	if c.Render.FadeSeconds < 0 {
		return errors.New("render.fade_seconds must be >= 0")
	}
	if c.Render.QuoteSeconds <= 0 {
		return errors.New("render.quote_seconds must be positive")
	}
	if c.Render.LineWidth <= 0 {
		return errors.New("render.line_width must be positive")
	}
	if _, ok := allowedPresets[c.Render.Preset]; !ok {
		return fmt.Errorf("render.preset %q is not a known x264 preset", c.Render.Preset)
	}
	if c.Render.CRF < 0 || c.Render.CRF > 51 {
		return errors.New("render.crf must be between 0 and 51")
	}
	if c.Render.Threads < 0 {
		return errors.New("render.threads must be >= 0")
	}
	return nil
}

func (c *Config) validateTitles() error {
	if c.Titles.Seconds <= 0 {
		return errors.New("titles.seconds must be positive")
	}
	if c.Titles.FontSize <= 0 {
		return errors.New("titles.font_size must be positive")
	}
	if c.Titles.Background == "" {
		return errors.New("titles.background must be set")
	}
	if c.Titles.FadeSeconds < 0 {
		return errors.New("titles.fade_seconds must be >= 0")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json (got %q)", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error (got %q)", c.Logging.Level)
	}
	return nil
}
