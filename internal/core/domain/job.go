package domain

import (
	"errors"
	"time"
)

// JobStatus represents the lifecycle state of a walk job.
type JobStatus string

const (
	StatusPosted    JobStatus = "posted"
	StatusAccepted  JobStatus = "accepted"
	StatusCompleted JobStatus = "completed"
	StatusPaid      JobStatus = "paid"
	StatusOverdue   JobStatus = "overdue"
)

// validTransitions defines the allowed state machine transitions.
// A posted job whose deadline elapses before acceptance moves to overdue,
// from where a walker may still accept it. Paid is terminal.
var validTransitions = map[JobStatus][]JobStatus{
	StatusPosted:    {StatusAccepted, StatusOverdue},
	StatusOverdue:   {StatusAccepted},
	StatusAccepted:  {StatusCompleted},
	StatusCompleted: {StatusPaid},
}

var ErrJobNotFound = errors.New("job not found")
var ErrJobConflict = errors.New("job is not in a compatible state")

// CanTransitionTo reports whether a transition from current status to next is valid.
func (s JobStatus) CanTransitionTo(next JobStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsValid reports whether s is a known status value.
func (s JobStatus) IsValid() bool {
	switch s {
	case StatusPosted, StatusAccepted, StatusCompleted, StatusPaid, StatusOverdue:
		return true
	}
	return false
}

// Acceptable reports whether a walker may accept a job in this state.
func (s JobStatus) Acceptable() bool {
	return s == StatusPosted || s == StatusOverdue
}

// Deletable reports whether a job in this state may still be removed.
// Once accepted, a job can only be progressed.
func (s JobStatus) Deletable() bool {
	return s == StatusPosted || s == StatusOverdue
}

// Coordinates represents a geographic point.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Job is the central workflow aggregate. WalkerID is empty until a walker
// accepts the job, and non-empty in every state from accepted onward.
// Deadline is a unix timestamp in seconds; zero means no deadline.
type Job struct {
	ID        string      `json:"id"`
	OwnerID   string      `json:"owner_id"`
	DogID     string      `json:"dog_id"`
	WalkerID  string      `json:"walker_id,omitempty"`
	Status    JobStatus   `json:"status"`
	Pay       float64     `json:"pay"`
	Location  Coordinates `json:"location"`
	Deadline  int64       `json:"deadline,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
}
