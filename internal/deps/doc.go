// Package deps verifies the external binaries versecut shells out to.
package deps
