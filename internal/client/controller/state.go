package controller

import "github.com/dmitrijs2005/newscheck/internal/client/models"

// Status tracks the lifecycle of the active analysis:
// Idle → Pending → Succeeded|Failed, back to Pending on the next submission.
type Status int

const (
	StatusIdle Status = iota
	StatusPending
	StatusSucceeded
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusSucceeded:
		return "succeeded"
	case StatusFailed:
		return "failed"
	default:
		return "idle"
	}
}

// ActiveAnalysis is the transient display state: the in-progress or most
// recent submission, or a historical record pulled in via expansion. There is
// at most one.
type ActiveAnalysis struct {
	Text   string
	Result *models.AnalysisFull
	Status Status
}

// Pending reports whether a submission is in flight.
func (a ActiveAnalysis) Pending() bool {
	return a.Status == StatusPending
}
