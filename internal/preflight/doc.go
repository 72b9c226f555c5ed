// Package preflight runs environment checks surfaced by the status command:
// external binaries and directory permissions.
package preflight
