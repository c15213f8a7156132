package routing

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/correspondence-backend/internal/domain"
)

const maxNoteLength = 4000

// Command is a manual change to a distribution. It is one of SetStatus,
// Assign or AddNote.
type Command interface {
	Validate() error
	auditAction() domain.AuditActionType
}

// SetStatus moves a distribution to Status. A reason is required.
type SetStatus struct {
	Status domain.DistributionStatus
	Note   string
}

// Assign hands a distribution to a member of its department. Status is kept.
type Assign struct {
	UserID uuid.UUID
	Note   string
}

// AddNote records a comment without changing the distribution.
type AddNote struct {
	Note string
}

func (c SetStatus) Validate() error {
	var errs []domain.FieldError
	if !c.Status.IsValid() {
		errs = append(errs, domain.FieldError{Field: "status", Message: fmt.Sprintf("unknown status %q", c.Status)})
	}
	errs = append(errs, checkNote(c.Note, true)...)
	return fieldErrors(errs)
}

func (c Assign) Validate() error {
	var errs []domain.FieldError
	if c.UserID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "user_id", Message: "required"})
	}
	errs = append(errs, checkNote(c.Note, false)...)
	return fieldErrors(errs)
}

func (c AddNote) Validate() error {
	return fieldErrors(checkNote(c.Note, true))
}

func (SetStatus) auditAction() domain.AuditActionType { return domain.AuditDistributionStatus }
func (Assign) auditAction() domain.AuditActionType    { return domain.AuditDistributionAssigned }
func (AddNote) auditAction() domain.AuditActionType   { return domain.AuditDistributionNote }

// checkNote rejects notes that would be mistaken for scheduler markers.
func checkNote(note string, required bool) []domain.FieldError {
	note = strings.TrimSpace(note)
	switch {
	case note == "" && required:
		return []domain.FieldError{{Field: "note", Message: "required"}}
	case len(note) > maxNoteLength:
		return []domain.FieldError{{Field: "note", Message: fmt.Sprintf("max %d characters", maxNoteLength)}}
	case strings.HasPrefix(note, domain.EscalationMarkerPrefix):
		return []domain.FieldError{{Field: "note", Message: "reserved prefix " + domain.EscalationMarkerPrefix}}
	}
	return nil
}

func fieldErrors(errs []domain.FieldError) error {
	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}
