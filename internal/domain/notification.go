package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/google/uuid"
)

// Notification is an in-app message addressed to one user.
type Notification struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Title     string
	Body      string
	Link      *string
	Severity  NotificationSeverity
	Status    NotificationStatus
	DedupeKey *string
	CreatedAt time.Time
	ReadAt    *time.Time
}

// NotificationDedupeKey fingerprints the (title, body, link) content of a
// notification. Together with the recipient it identifies a duplicate.
func NotificationDedupeKey(title, body string, link *string) string {
	h := sha256.New()
	h.Write([]byte(title))
	h.Write([]byte{0})
	h.Write([]byte(body))
	h.Write([]byte{0})
	if link != nil {
		h.Write([]byte{1})
		h.Write([]byte(*link))
	}
	return hex.EncodeToString(h.Sum(nil))
}

// AuditEvent is one append-only entry of the document audit trail.
type AuditEvent struct {
	ID          uuid.UUID
	UserID      *uuid.UUID
	DocumentID  *uuid.UUID
	ActionType  AuditActionType
	Description string
	SourceIP    *string
	CreatedAt   time.Time
}

// User is the slice of the directory the routing core needs.
type User struct {
	ID           uuid.UUID
	DepartmentID *uuid.UUID
	FullName     string
	Role         UserRole
	IsActive     bool
}
