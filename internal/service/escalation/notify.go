package escalation

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/correspondence-backend/internal/service/notify"
)

// notifyLevel tells the recipients named by the level about a committed
// escalation. Failures are logged; the escalation stands regardless.
func (s *Service) notifyLevel(ctx context.Context, app *applied) {
	recipients := s.recipients(ctx, app)
	if len(recipients) == 0 {
		return
	}

	if _, err := s.notifier.Notify(ctx, recipients, s.content(app)); err != nil {
		s.log.ErrorContext(ctx, "escalation notification failed",
			slog.String("distribution_id", app.dist.ID.String()),
			slog.Int("level", app.level.Level),
			slog.String("error", err.Error()),
		)
	}
}

func (s *Service) recipients(ctx context.Context, app *applied) []uuid.UUID {
	var ids []uuid.UUID
	if app.level.NotifyAssignee && app.dist.AssignedUserID != nil {
		ids = append(ids, *app.dist.AssignedUserID)
	}
	if app.level.NotifyManager {
		managers, err := s.directory.ListActiveManagers(ctx, app.dist.DepartmentID)
		if err != nil {
			s.log.WarnContext(ctx, "list department managers failed",
				slog.String("department_id", app.dist.DepartmentID.String()),
				slog.String("error", err.Error()),
			)
		}
		ids = append(ids, managers...)
	}
	if app.level.NotifyAdmins {
		admins, err := s.directory.ListActiveAdmins(ctx)
		if err != nil {
			s.log.WarnContext(ctx, "list admins failed", slog.String("error", err.Error()))
		}
		ids = append(ids, admins...)
	}
	return ids
}

// content is identical for every scan that applies the same level to the
// same distribution, so the dispatcher's content guard suppresses repeats.
func (s *Service) content(app *applied) notify.Content {
	c := notify.Content{
		Title:    fmt.Sprintf("Distribution escalated to level %d", app.level.Level),
		Body:     fmt.Sprintf("Distribution %s is overdue and was escalated to level %d. Priority is now %d.", app.dist.ID, app.level.Level, app.dist.Priority),
		Severity: app.level.Severity,
	}
	if s.linkTemplate != "" {
		link := strings.ReplaceAll(s.linkTemplate, "{id}", app.dist.ID.String())
		c.Link = &link
	}
	return c
}
