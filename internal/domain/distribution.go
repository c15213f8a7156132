package domain

import (
	"time"

	"github.com/google/uuid"
)

const (
	MinPriority = 0
	MaxPriority = 10
)

// SystemActorID is the reserved actor recorded for transitions made by the
// escalation scheduler rather than by a person.
var SystemActorID = uuid.Nil

// Distribution is one assignment of a document to a department (and
// optionally a user) for action.
type Distribution struct {
	ID              uuid.UUID
	DocumentID      uuid.UUID
	DepartmentID    uuid.UUID
	AssignedUserID  *uuid.UUID
	Status          DistributionStatus
	Priority        int
	DueAt           *time.Time
	EscalationCount int
	CreatedAt       time.Time
	LastUpdateAt    time.Time
}

// DistributionLogEntry is an immutable record of a single transition.
// OldStatus is empty for the creation entry.
type DistributionLogEntry struct {
	ID             int64
	DistributionID uuid.UUID
	OldStatus      DistributionStatus
	NewStatus      DistributionStatus
	OldPriority    int
	NewPriority    int
	Note           string
	ActorID        uuid.UUID
	CreatedAt      time.Time
}

// IsSystem reports whether the entry was written by the scheduler.
func (e DistributionLogEntry) IsSystem() bool { return e.ActorID == SystemActorID }

// DistributionUpdate carries the mutable columns written by a transition.
type DistributionUpdate struct {
	Status          DistributionStatus
	Priority        int
	AssignedUserID  *uuid.UUID
	EscalationCount int
	UpdatedAt       time.Time
}

// ClampPriority bounds p to [MinPriority, MaxPriority].
func ClampPriority(p int) int {
	return min(max(p, MinPriority), MaxPriority)
}
