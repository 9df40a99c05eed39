package history

import "time"

// Session statuses.
const (
	StatusRunning     = "running"
	StatusCompleted   = "completed"
	StatusInterrupted = "interrupted"
)

// Session is one countdown run, finished or not.
type Session struct {
	ID        int64
	Duration  int64 // planned seconds
	Remaining int64 // seconds left when the run stopped
	Resumed   bool
	Status    string // running, completed, interrupted
	StartedAt time.Time
	EndedAt   *time.Time
}

type Setting struct {
	Key   string
	Value string
}

// DailyStat aggregates one day of sessions.
type DailyStat struct {
	Date         string
	Completed    int
	Interrupted  int
	FocusSeconds int64
}
