// Package ffprobe wraps the ffprobe binary for media inspection.
//
// Inspect shells out with JSON output enabled and decodes the format and
// stream sections. Helpers expose the values the renderer needs: duration,
// dimensions, frame rate, and audio presence.
package ffprobe
