package routing

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/correspondence-backend/internal/domain"
	"github.com/heartmarshall/correspondence-backend/pkg/ctxutil"
)

// UpdateStatus moves a distribution to status, recording note as the reason.
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.DistributionStatus, note string, actor uuid.UUID) (*domain.Distribution, error) {
	return s.Apply(ctx, id, SetStatus{Status: status, Note: note}, actor)
}

// Assign hands a distribution to userID without changing its status.
func (s *Service) Assign(ctx context.Context, id, userID uuid.UUID, note string, actor uuid.UUID) (*domain.Distribution, error) {
	return s.Apply(ctx, id, Assign{UserID: userID, Note: note}, actor)
}

// AddNote appends a comment to a distribution's log.
func (s *Service) AddNote(ctx context.Context, id uuid.UUID, note string, actor uuid.UUID) (*domain.Distribution, error) {
	return s.Apply(ctx, id, AddNote{Note: note}, actor)
}

// Apply validates cmd and executes it against distribution id. The row is
// locked for the duration of the transaction, so concurrent commands on the
// same distribution are serialized and each writes exactly one log entry and
// one audit event. Closed distributions reject every command with
// domain.ErrInvalidTransition.
func (s *Service) Apply(ctx context.Context, id uuid.UUID, cmd Command, actor uuid.UUID) (*domain.Distribution, error) {
	if cmd == nil {
		return nil, domain.NewValidationError("command", "required")
	}
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	if id == uuid.Nil {
		return nil, domain.NewValidationError("id", "required")
	}
	if actor == uuid.Nil {
		return nil, domain.NewValidationError("actor", "required")
	}

	var (
		before *domain.Distribution
		after  *domain.Distribution
	)
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		cur, err := s.dists.GetForUpdate(ctx, id)
		if err != nil {
			return fmt.Errorf("lock distribution: %w", err)
		}
		if cur.Status.IsTerminal() {
			return fmt.Errorf("distribution %s is %s: %w", id, cur.Status, domain.ErrInvalidTransition)
		}

		now := s.now().UTC()
		upd := domain.DistributionUpdate{
			Status:          cur.Status,
			Priority:        cur.Priority,
			AssignedUserID:  cur.AssignedUserID,
			EscalationCount: cur.EscalationCount,
			UpdatedAt:       now,
		}

		var note, description string
		switch c := cmd.(type) {
		case SetStatus:
			upd.Status = c.Status
			note = strings.TrimSpace(c.Note)
			description = fmt.Sprintf("Status changed %s -> %s: %s", cur.Status, c.Status, note)
		case Assign:
			if err := s.checkAssignee(ctx, c.UserID, cur.DepartmentID); err != nil {
				return err
			}
			upd.AssignedUserID = &c.UserID
			note = assignNote(c)
			description = fmt.Sprintf("Assigned to user %s", c.UserID)
		case AddNote:
			note = strings.TrimSpace(c.Note)
			description = "Note added: " + note
		default:
			return domain.NewValidationError("command", fmt.Sprintf("unsupported command %T", cmd))
		}

		updated, err := s.dists.Update(ctx, id, upd)
		if err != nil {
			return fmt.Errorf("update distribution: %w", err)
		}

		if _, err := s.logs.Append(ctx, domain.DistributionLogEntry{
			DistributionID: id,
			OldStatus:      cur.Status,
			NewStatus:      updated.Status,
			OldPriority:    cur.Priority,
			NewPriority:    updated.Priority,
			Note:           note,
			ActorID:        actor,
			CreatedAt:      now,
		}); err != nil {
			return fmt.Errorf("append distribution log: %w", err)
		}

		if err := s.audit.Log(ctx, domain.AuditEvent{
			UserID:      &actor,
			DocumentID:  &cur.DocumentID,
			ActionType:  cmd.auditAction(),
			Description: description,
			SourceIP:    ctxutil.SourceIPFromCtx(ctx),
			CreatedAt:   now,
		}); err != nil {
			return fmt.Errorf("audit distribution change: %w", err)
		}

		before, after = cur, updated
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "distribution changed",
		slog.String("distribution_id", id.String()),
		slog.String("action", cmd.auditAction().String()),
		slog.String("old_status", before.Status.String()),
		slog.String("new_status", after.Status.String()),
		slog.String("actor_id", actor.String()),
	)

	return after, nil
}

func assignNote(c Assign) string {
	note := "Assigned to " + c.UserID.String()
	if n := strings.TrimSpace(c.Note); n != "" {
		note += ": " + n
	}
	return note
}
