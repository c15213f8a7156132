package escalation

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/correspondence-backend/internal/domain"
)

// ScanResult summarizes one scan. Processed counts distributions that
// advanced a level.
type ScanResult struct {
	Scanned   int
	Processed int
	Throttled int
	Skipped   int
	Failed    int
}

type outcome int

const (
	outcomeSkipped outcome = iota
	outcomeThrottled
	outcomeApplied
)

// applied describes a committed level application.
type applied struct {
	dist           domain.Distribution
	level          domain.EscalationLevel
	overdueMinutes int
}

// RunScan examines up to one batch of non-closed distributions whose next
// level is due and advances each by exactly one level. Each distribution is
// handled in its own transaction; a failure is logged and counted and the
// scan moves on. Only a failure to load the policy or the batch aborts the
// scan.
func (s *Service) RunScan(ctx context.Context, now time.Time) (ScanResult, error) {
	now = now.UTC()
	var res ScanResult

	policy, err := s.policy.Get(ctx)
	if err != nil {
		return res, fmt.Errorf("load escalation policy: %w", err)
	}
	if policy.MaxLevel() == 0 {
		s.log.WarnContext(ctx, "escalation policy has no levels, scan skipped")
		return res, nil
	}

	batch, err := s.dists.ListOverdue(ctx, now, policy, s.batchSize)
	if err != nil {
		return res, fmt.Errorf("list overdue distributions: %w", err)
	}

	for _, d := range batch {
		res.Scanned++

		out, app, err := s.escalate(ctx, d, policy, now)
		if err != nil {
			res.Failed++
			s.log.ErrorContext(ctx, "escalation failed",
				slog.String("distribution_id", d.ID.String()),
				slog.String("error", err.Error()),
			)
			continue
		}

		switch out {
		case outcomeApplied:
			res.Processed++
			s.log.InfoContext(ctx, "distribution escalated",
				slog.String("distribution_id", d.ID.String()),
				slog.Int("level", app.level.Level),
				slog.Int("priority", app.dist.Priority),
				slog.Int("overdue_minutes", app.overdueMinutes),
			)
			s.notifyLevel(ctx, app)
		case outcomeThrottled:
			res.Throttled++
		default:
			res.Skipped++
		}
	}

	s.log.InfoContext(ctx, "escalation scan finished",
		slog.Time("now", now),
		slog.Int("scanned", res.Scanned),
		slog.Int("processed", res.Processed),
		slog.Int("throttled", res.Throttled),
		slog.Int("skipped", res.Skipped),
		slog.Int("failed", res.Failed),
	)
	return res, nil
}

// escalate applies the next level to d, if due, in one transaction. The row
// is re-read under lock; if another writer closed it or already advanced its
// escalation count since the batch was listed, nothing is written.
func (s *Service) escalate(ctx context.Context, d domain.Distribution, policy domain.EscalationPolicy, now time.Time) (outcome, *applied, error) {
	if _, ok := NextLevel(policy, d.EscalationCount, OverdueMinutes(d.DueAt, now)); !ok {
		return outcomeSkipped, nil, nil
	}

	out := outcomeSkipped
	var app *applied
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		cur, err := s.dists.GetForUpdate(ctx, d.ID)
		if err != nil {
			return fmt.Errorf("lock distribution: %w", err)
		}
		if cur.Status.IsTerminal() || cur.EscalationCount != d.EscalationCount {
			return nil
		}

		overdue := OverdueMinutes(cur.DueAt, now)
		level, ok := NextLevel(policy, cur.EscalationCount, overdue)
		if !ok {
			return nil
		}

		throttled, err := s.throttled(ctx, cur, level, policy, now)
		if err != nil {
			return err
		}
		if throttled {
			out = outcomeThrottled
			return nil
		}

		assignee := cur.AssignedUserID
		var autoAssigned *uuid.UUID
		if level.AutoReassign && assignee == nil {
			autoAssigned, err = s.pickAssignee(ctx, cur.DepartmentID)
			if err != nil {
				return err
			}
			assignee = autoAssigned
		}

		newPriority := domain.ClampPriority(min(s.priorityCeiling, cur.Priority+level.PriorityBump))
		updated, err := s.dists.Update(ctx, cur.ID, domain.DistributionUpdate{
			Status:          level.StatusOnReach,
			Priority:        newPriority,
			AssignedUserID:  assignee,
			EscalationCount: cur.EscalationCount + 1,
			UpdatedAt:       now,
		})
		if err != nil {
			return fmt.Errorf("update distribution: %w", err)
		}

		if _, err := s.logs.Append(ctx, domain.DistributionLogEntry{
			DistributionID: cur.ID,
			OldStatus:      cur.Status,
			NewStatus:      updated.Status,
			OldPriority:    cur.Priority,
			NewPriority:    updated.Priority,
			Note:           markerNote(level.Level, overdue, cur.Priority, updated.Priority, autoAssigned),
			ActorID:        domain.SystemActorID,
			CreatedAt:      now,
		}); err != nil {
			return fmt.Errorf("append distribution log: %w", err)
		}

		description := fmt.Sprintf("Distribution %s escalated to level %d (overdue %d min, priority %d -> %d)",
			cur.ID, level.Level, overdue, cur.Priority, updated.Priority)
		if err := s.audit.Log(ctx, domain.AuditEvent{
			DocumentID:  &cur.DocumentID,
			ActionType:  domain.AuditDistributionEscalate,
			Description: description,
			CreatedAt:   now,
		}); err != nil {
			return fmt.Errorf("audit escalation: %w", err)
		}

		out = outcomeApplied
		app = &applied{dist: *updated, level: level, overdueMinutes: overdue}
		return nil
	})
	if err != nil {
		return outcomeSkipped, nil, err
	}
	return out, app, nil
}

// throttled reports whether the current level or the next one was applied
// to cur within that level's throttle window.
func (s *Service) throttled(ctx context.Context, cur *domain.Distribution, next domain.EscalationLevel, policy domain.EscalationPolicy, now time.Time) (bool, error) {
	check := []domain.EscalationLevel{next}
	if current, ok := policy.Level(cur.EscalationCount); ok {
		check = append(check, current)
	}

	for _, l := range check {
		if l.ThrottleMinutes <= 0 {
			continue
		}
		at, err := s.logs.LatestMarkerAt(ctx, cur.ID, l.Level)
		if err != nil {
			return false, fmt.Errorf("find %s marker: %w", domain.EscalationMarker(l.Level), err)
		}
		if at != nil && now.Sub(*at) < time.Duration(l.ThrottleMinutes)*time.Minute {
			return true, nil
		}
	}
	return false, nil
}

// pickAssignee prefers an active administrator of the department, then any
// active member. It returns nil when the department has nobody active.
func (s *Service) pickAssignee(ctx context.Context, departmentID uuid.UUID) (*uuid.UUID, error) {
	id, err := s.directory.FindActiveAdminInDepartment(ctx, departmentID)
	if err != nil {
		return nil, fmt.Errorf("find department admin: %w", err)
	}
	if id != nil {
		return id, nil
	}
	id, err = s.directory.FindAnyActiveUserInDepartment(ctx, departmentID)
	if err != nil {
		return nil, fmt.Errorf("find department member: %w", err)
	}
	return id, nil
}

func markerNote(level, overdue, oldPriority, newPriority int, autoAssigned *uuid.UUID) string {
	note := fmt.Sprintf("%s overdue by %d min, priority %d -> %d",
		domain.EscalationMarker(level), overdue, oldPriority, newPriority)
	if autoAssigned != nil {
		note += ", auto-assigned to " + autoAssigned.String()
	}
	return note
}
