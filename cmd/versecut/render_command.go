package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"versecut/internal/config"
	"versecut/internal/overlay"
	"versecut/internal/quotes"
	"versecut/internal/render"
)

type renderFlags struct {
	text         string
	start        float64
	duration     float64
	quoteFile    string
	theme        string
	random       int
	intro        string
	outro        string
	fontSize     int
	fontColor    string
	boxColor     string
	position     string
	fadeSeconds  float64
	noFade       bool
	quoteSeconds float64
}

func newRenderCommand(ctx *commandContext) *cobra.Command {
	flags := &renderFlags{}

	cmd := &cobra.Command{
		Use:   "render <video> [output]",
		Short: "Render quote overlays and title cards onto a video",
		Long: `Render burns text onto a video with ffmpeg. A single overlay is placed
with --text/--start-time/--duration; quotes from --quote-file, --theme, or
--random are spread evenly across the video. Without any edits the input is
copied. When output is omitted it defaults to <name>_quotes<ext> in the
configured output directory.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			input, err := filepath.Abs(args[0])
			if err != nil {
				return fmt.Errorf("resolve path: %w", err)
			}
			if _, err := os.Stat(input); err != nil {
				if errors.Is(err, os.ErrNotExist) {
					return fmt.Errorf("video does not exist: %s", input)
				}
				return fmt.Errorf("inspect video: %w", err)
			}

			// --fade 0 means a hard cut; an untouched flag keeps the
			// configured default.
			flags.noFade = cmd.Flags().Changed("fade") && flags.fadeSeconds == 0

			style, err := styleFromFlags(flags)
			if err != nil {
				return err
			}

			req := render.Request{
				Input:        input,
				Intro:        flags.intro,
				Outro:        flags.outro,
				Style:        style,
				QuoteSeconds: flags.quoteSeconds,
			}
			if len(args) > 1 {
				req.Output = args[1]
			} else {
				req.Output = defaultOutputPath(cfg, input)
			}
			if strings.TrimSpace(flags.text) != "" {
				req.Texts = append(req.Texts, render.TimedText{
					Text:     flags.text,
					Start:    flags.start,
					Duration: flags.duration,
				})
			}
			req.Quotes = gatherQuotes(cmd, flags)

			svc := render.New(cfg, logger)
			result, err := svc.Render(cmd.Context(), req)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if result.Copied {
				fmt.Fprintf(out, "No edits requested; copied input to %s\n", result.OutputPath)
				return nil
			}
			fmt.Fprintf(out, "Rendered %s (%d overlays, %.1fs video)\n", result.OutputPath, result.Overlays, result.Duration)
			return nil
		},
	}

	cmd.Flags().StringVarP(&flags.text, "text", "t", "", "Overlay text to display")
	cmd.Flags().Float64VarP(&flags.start, "start-time", "s", 0, "Overlay start time in seconds")
	cmd.Flags().Float64VarP(&flags.duration, "duration", "d", 0, "Overlay duration in seconds (0 runs to the end)")
	cmd.Flags().StringVarP(&flags.quoteFile, "quote-file", "q", "", "File with one quote per line, distributed across the video")
	cmd.Flags().StringVar(&flags.theme, "theme", "", "Distribute catalog quotes matching this theme")
	cmd.Flags().IntVar(&flags.random, "random", 0, "Distribute this many random catalog quotes")
	cmd.Flags().StringVar(&flags.intro, "intro", "", "Intro title card text")
	cmd.Flags().StringVar(&flags.outro, "outro", "", "Outro title card text")
	cmd.Flags().IntVar(&flags.fontSize, "font-size", 0, "Overlay font size")
	cmd.Flags().StringVar(&flags.fontColor, "font-color", "", "Overlay font color")
	cmd.Flags().StringVar(&flags.boxColor, "bg-color", "", "Background box color behind the text (transparent disables)")
	cmd.Flags().StringVar(&flags.position, "position", "", "Overlay position: top, center, or bottom")
	cmd.Flags().Float64Var(&flags.fadeSeconds, "fade", 0, "Fade in/out duration in seconds (0 disables fading)")
	cmd.Flags().Float64Var(&flags.quoteSeconds, "quote-seconds", 0, "Seconds each distributed quote stays on screen")

	return cmd
}

// styleFromFlags builds a partial style; unset fields fall back to config
// defaults inside the render service.
func styleFromFlags(flags *renderFlags) (overlay.Style, error) {
	style := overlay.Style{
		FontSize:    flags.fontSize,
		FontColor:   flags.fontColor,
		BoxColor:    flags.boxColor,
		FadeSeconds: flags.fadeSeconds,
		NoFade:      flags.noFade,
	}
	if trimmed := strings.TrimSpace(flags.position); trimmed != "" {
		position, ok := overlay.ParsePosition(trimmed)
		if !ok {
			return style, fmt.Errorf("unknown position %q (expected top, center, or bottom)", trimmed)
		}
		style.Position = position
	}
	return style, nil
}

// gatherQuotes resolves the quote source flags. A missing quote file or an
// unmatched theme warns and continues so the render still produces output.
func gatherQuotes(cmd *cobra.Command, flags *renderFlags) []string {
	errOut := cmd.ErrOrStderr()
	var list []string

	if path := strings.TrimSpace(flags.quoteFile); path != "" {
		fromFile, err := quotes.ReadFile(path)
		if err != nil {
			fmt.Fprintf(errOut, "Warning: quote file %s could not be read (%v); continuing without it\n", path, err)
		} else {
			list = append(list, fromFile...)
		}
	}
	if theme := strings.TrimSpace(flags.theme); theme != "" {
		matches := quotes.ByTheme(theme)
		if len(matches) == 0 {
			fmt.Fprintf(errOut, "Warning: no quotes match theme %q; continuing without them\n", theme)
		}
		for _, q := range matches {
			list = append(list, q.String())
		}
	}
	if flags.random > 0 {
		for _, q := range quotes.Sample(flags.random) {
			list = append(list, q.String())
		}
	}
	return list
}

func defaultOutputPath(cfg *config.Config, input string) string {
	base := filepath.Base(input)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	if ext == "" {
		ext = ".mp4"
	}
	name := stem + "_quotes" + ext
	if strings.TrimSpace(cfg.Paths.OutputDir) != "" {
		return filepath.Join(cfg.Paths.OutputDir, name)
	}
	return filepath.Join(filepath.Dir(input), name)
}
