// Package services holds the error classification shared by the render
// pipeline and the queue runner.
package services
