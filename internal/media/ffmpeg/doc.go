// Package ffmpeg drives the ffmpeg binary for rendering.
//
// Filter graphs are assembled as drawtext chains (timed overlays with fade
// expressions, centered title cards over lavfi color sources) and compiled to
// argument lists with ffmpeg-go. Execution goes through exec.CommandContext so
// renders honor cancellation and tests can intercept the invocation.
package ffmpeg
