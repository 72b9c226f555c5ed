// Package batch drains the render queue under a file lock so only one run
// processes jobs at a time.
package batch
