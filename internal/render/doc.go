// Package render orchestrates a full render: probe the input, build the
// overlay plan against the probed duration, then burn overlays and title
// cards through ffmpeg. Errors are classified with the services sentinels so
// the queue runner can decide between retry and review.
package render
