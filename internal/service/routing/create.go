package routing

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/correspondence-backend/internal/domain"
	"github.com/heartmarshall/correspondence-backend/pkg/ctxutil"
)

const defaultCreateNote = "Distribution created"

// CreateDistributionInput routes a document to a department.
type CreateDistributionInput struct {
	DocumentID     uuid.UUID
	DepartmentID   uuid.UUID
	AssignedUserID *uuid.UUID
	Priority       int
	// DueAt is the SLA deadline; nil means the distribution is never escalated.
	DueAt *time.Time
	Note  string
}

// Validate checks all fields and collects all errors.
func (i CreateDistributionInput) Validate() error {
	var errs []domain.FieldError
	if i.DocumentID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "document_id", Message: "required"})
	}
	if i.DepartmentID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "department_id", Message: "required"})
	}
	if i.AssignedUserID != nil && *i.AssignedUserID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "assigned_user_id", Message: "must not be empty"})
	}
	errs = append(errs, checkNote(i.Note, false)...)
	return fieldErrors(errs)
}

// CreateDistribution stores a new OPEN distribution with escalation count 0
// and writes its first log entry and audit event in one transaction.
// Priority is clamped to 0..10.
func (s *Service) CreateDistribution(ctx context.Context, input CreateDistributionInput, actor uuid.UUID) (*domain.Distribution, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	if actor == uuid.Nil {
		return nil, domain.NewValidationError("actor", "required")
	}

	note := strings.TrimSpace(input.Note)
	if note == "" {
		note = defaultCreateNote
	}
	now := s.now().UTC()

	var created *domain.Distribution
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if input.AssignedUserID != nil {
			if err := s.checkAssignee(ctx, *input.AssignedUserID, input.DepartmentID); err != nil {
				return err
			}
		}

		d, err := s.dists.Create(ctx, domain.Distribution{
			ID:              uuid.New(),
			DocumentID:      input.DocumentID,
			DepartmentID:    input.DepartmentID,
			AssignedUserID:  input.AssignedUserID,
			Status:          domain.DistributionStatusOpen,
			Priority:        domain.ClampPriority(input.Priority),
			DueAt:           input.DueAt,
			EscalationCount: 0,
			CreatedAt:       now,
			LastUpdateAt:    now,
		})
		if err != nil {
			return fmt.Errorf("create distribution: %w", err)
		}

		if _, err := s.logs.Append(ctx, domain.DistributionLogEntry{
			DistributionID: d.ID,
			NewStatus:      d.Status,
			OldPriority:    d.Priority,
			NewPriority:    d.Priority,
			Note:           note,
			ActorID:        actor,
			CreatedAt:      now,
		}); err != nil {
			return fmt.Errorf("append distribution log: %w", err)
		}

		if err := s.audit.Log(ctx, domain.AuditEvent{
			UserID:      &actor,
			DocumentID:  &d.DocumentID,
			ActionType:  domain.AuditDistributionCreated,
			Description: fmt.Sprintf("Routed to department %s", d.DepartmentID),
			SourceIP:    ctxutil.SourceIPFromCtx(ctx),
			CreatedAt:   now,
		}); err != nil {
			return fmt.Errorf("audit distribution creation: %w", err)
		}

		created = d
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "distribution created",
		slog.String("distribution_id", created.ID.String()),
		slog.String("document_id", created.DocumentID.String()),
		slog.String("department_id", created.DepartmentID.String()),
		slog.Int("priority", created.Priority),
	)

	return created, nil
}

func (s *Service) checkAssignee(ctx context.Context, userID, departmentID uuid.UUID) error {
	ok, err := s.directory.IsActiveMember(ctx, userID, departmentID)
	if err != nil {
		return fmt.Errorf("check assignee: %w", err)
	}
	if !ok {
		return domain.NewValidationError("user_id", "not an active member of the department")
	}
	return nil
}
