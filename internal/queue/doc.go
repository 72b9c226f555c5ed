// Package queue persists render jobs in SQLite.
//
// Jobs move pending -> rendering -> completed, with failed and review as
// terminal error states. NextPending claims atomically so a runner restarted
// alongside a live one cannot process the same job twice.
package queue
