// Package overlay models the edits applied to a video: timed text overlays,
// intro/outro title cards, and the styling shared between them.
//
// A Plan is built against the probed video duration so placement errors
// (overlays starting past the end, durations running long) surface before
// ffmpeg is invoked. Overlays that run past the end are clamped; overlays
// that start past the end are rejected.
package overlay
