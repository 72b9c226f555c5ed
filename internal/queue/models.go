package queue

import (
	"strings"
	"time"
)

// Status represents the lifecycle of a render job.
type Status string

const (
	StatusPending   Status = "pending"
	StatusRendering Status = "rendering"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
	StatusReview    Status = "review"
)

var allStatuses = []Status{
	StatusPending,
	StatusRendering,
	StatusCompleted,
	StatusFailed,
	StatusReview,
}

var statusSet = func() map[Status]struct{} {
	set := make(map[Status]struct{}, len(allStatuses))
	for _, status := range allStatuses {
		set[status] = struct{}{}
	}
	return set
}()

// ParseStatus validates a user-supplied status string.
func ParseStatus(value string) (Status, bool) {
	status := Status(strings.ToLower(strings.TrimSpace(value)))
	_, ok := statusSet[status]
	return status, ok
}

// Item represents a render job persisted in SQLite.
//
// Exactly one quote source is expected per job: QuoteFile, Theme, or
// RandomCount. The runner turns the source into overlay text at render time so
// a queued theme picks up catalog changes. OverlayText is an explicitly timed
// single overlay and may be combined with a quote source.
type Item struct {
	ID              int64
	InputPath       string
	OutputPath      string
	QuoteFile       string
	Theme           string
	RandomCount     int
	OverlayText     string
	StartSeconds    float64
	DurationSeconds float64
	IntroText       string
	OutroText       string
	Status          Status
	ErrorMessage    string
	ProgressStage   string
	ProgressPercent float64
	RunID           string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Stats aggregates job counts per status.
type Stats struct {
	Total     int
	Pending   int
	Rendering int
	Completed int
	Failed    int
	Review    int
}
