// Package config loads, validates, and normalizes versecut configuration.
//
// Configuration lives in a TOML file resolved from an explicit --config path,
// ~/.config/versecut/config.toml, or a versecut.toml in the working directory.
// Missing files fall back to Default() so the tool runs without any setup.
// All path fields are tilde-expanded and made absolute during Load.
package config
