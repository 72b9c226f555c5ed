package config

const (
	defaultWorkDir      = "~/.local/share/versecut"
	defaultLogDir       = "~/.local/share/versecut/logs"
	defaultFontSize     = 50
	defaultFontColor    = "white"
	defaultBoxColor     = "transparent"
	defaultPosition     = "bottom"
	defaultFadeSeconds  = 0.5
	defaultQuoteSeconds = 5.0
	defaultLineWidth    = 40
	defaultCodec        = "libx264"
	defaultAudioCodec   = "aac"
	defaultPreset       = "medium"
	defaultCRF          = 20
	defaultThreads      = 4
	defaultTitleSeconds = 5.0
	defaultTitleSize    = 70
	defaultTitleBG      = "black"
	defaultTitleFade    = 1.0
	defaultLogFormat    = "console"
	defaultLogLevel     = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			WorkDir: defaultWorkDir,
			LogDir:  defaultLogDir,
		},
		Render: Render{
			FontSize:     defaultFontSize,
			FontColor:    defaultFontColor,
			BoxColor:     defaultBoxColor,
			Position:     defaultPosition,
			FadeSeconds:  defaultFadeSeconds,
			QuoteSeconds: defaultQuoteSeconds,
			LineWidth:    defaultLineWidth,
			Codec:        defaultCodec,
			AudioCodec:   defaultAudioCodec,
			Preset:       defaultPreset,
			CRF:          defaultCRF,
			Threads:      defaultThreads,
		},
		Titles: Titles{
			Seconds:     defaultTitleSeconds,
			FontSize:    defaultTitleSize,
			Background:  defaultTitleBG,
			FadeSeconds: defaultTitleFade,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
