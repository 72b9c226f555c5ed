// Package quotes holds the built-in catalog of teachings and helpers for
// selecting them by theme, plus quote-file reading and writing.
//
// Theme selection is a case-insensitive substring match against the rendered
// "text - reference" form, so "matthew" and "love" are both valid themes.
package quotes
