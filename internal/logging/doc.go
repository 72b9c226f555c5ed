// Package logging builds slog loggers with console and JSON handlers.
//
// The console handler emits "TIMESTAMP LEVEL component: message key=value"
// lines; a "component" attribute becomes the message prefix instead of a
// key=value pair. Output can fan out to stderr and a log file simultaneously.
package logging
