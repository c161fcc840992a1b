package jobstore

import "time"

// Status represents the lifecycle of an export job.
type Status string

const (
	StatusRunning  Status = "running"
	StatusComplete Status = "complete"
	StatusFailed   Status = "failed"
	StatusCanceled Status = "canceled"
)

// Terminal reports whether the job can no longer change.
func (s Status) Terminal() bool {
	return s == StatusComplete || s == StatusFailed || s == StatusCanceled
}

// Job is one export session's persisted state.
type Job struct {
	ID           string
	Project      string
	OutputPath   string
	Status       Status
	Phase        string
	Progress     float64
	CurrentFrame int
	TotalFrames  int
	LastBatch    int // index of the last fully staged batch, -1 before any
	Warnings     []string
	ErrorMessage string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
