// Package textutil provides text layout helpers for overlay rendering.
//
// ffmpeg's drawtext filter does not wrap text, so quote text is wrapped to a
// configured column width before it reaches the filtergraph.
package textutil
