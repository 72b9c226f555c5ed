// Command versecut is a CLI for burning quote overlays and title cards onto
// video with ffmpeg. It ships a built-in scripture quote catalog, reads quote
// files, and keeps a SQLite-backed batch queue for unattended renders.
package main
