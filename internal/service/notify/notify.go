package notify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/correspondence-backend/internal/domain"
)

// Content is what a notification says.
type Content struct {
	Title    string
	Body     string
	Link     *string
	Severity domain.NotificationSeverity
	// AllowDuplicate disables the (recipient, title, body, link) guard, so an
	// identical notification is stored again.
	AllowDuplicate bool
}

// Validate checks all fields and collects all errors.
func (c Content) Validate() error {
	var errs []domain.FieldError
	if strings.TrimSpace(c.Title) == "" {
		errs = append(errs, domain.FieldError{Field: "title", Message: "required"})
	}
	if c.Severity != "" && !c.Severity.IsValid() {
		errs = append(errs, domain.FieldError{Field: "severity", Message: fmt.Sprintf("unknown severity %q", c.Severity)})
	}
	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// Payload is the real-time representation of a notification.
type Payload struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Link      *string   `json:"link,omitempty"`
	Severity  string    `json:"severity"`
	CreatedAt time.Time `json:"created_at"`
}

func payloadOf(n domain.Notification) Payload {
	return Payload{
		ID:        n.ID,
		Title:     n.Title,
		Body:      n.Body,
		Link:      n.Link,
		Severity:  n.Severity.String(),
		CreatedAt: n.CreatedAt,
	}
}

// Notify stores a notification for every distinct recipient and pushes each
// one to the real-time transport. A recipient that already holds an
// identical notification gets the existing row back instead of a new one.
//
// Persistence failures for one recipient do not stop the others; the stored
// notifications are returned together with the joined errors. Push failures
// are logged and never returned.
func (s *Service) Notify(ctx context.Context, userIDs []uuid.UUID, c Content) ([]domain.Notification, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	recipients := distinct(userIDs)
	if len(recipients) == 0 {
		return nil, nil
	}

	severity := c.Severity
	if severity == "" {
		severity = domain.SeverityInfo
	}
	var dedupeKey *string
	if !c.AllowDuplicate {
		k := domain.NotificationDedupeKey(c.Title, c.Body, c.Link)
		dedupeKey = &k
	}
	now := s.now().UTC()

	out := make([]domain.Notification, 0, len(recipients))
	var errs []error
	for _, userID := range recipients {
		n, created, err := s.repo.Create(ctx, domain.Notification{
			ID:        uuid.New(),
			UserID:    userID,
			Title:     c.Title,
			Body:      c.Body,
			Link:      c.Link,
			Severity:  severity,
			Status:    domain.NotificationStatusUnread,
			DedupeKey: dedupeKey,
			CreatedAt: now,
		})
		if err != nil {
			errs = append(errs, fmt.Errorf("create notification for %s: %w", userID, err))
			continue
		}
		if !created {
			s.log.DebugContext(ctx, "notification reused",
				slog.String("notification_id", n.ID.String()),
				slog.String("user_id", userID.String()),
			)
		}
		out = append(out, *n)
	}

	for _, n := range out {
		s.push(ctx, n)
	}

	if len(errs) > 0 {
		return out, errors.Join(errs...)
	}
	return out, nil
}

// push relays n best-effort. It is detached from ctx cancellation and
// bounded by the configured push timeout.
func (s *Service) push(ctx context.Context, n domain.Notification) {
	pushCtx := context.WithoutCancel(ctx)
	if s.pushTimeout > 0 {
		var cancel context.CancelFunc
		pushCtx, cancel = context.WithTimeout(pushCtx, s.pushTimeout)
		defer cancel()
	}

	if err := s.pusher.Push(pushCtx, []uuid.UUID{n.UserID}, EventNotificationCreated, payloadOf(n)); err != nil {
		s.log.WarnContext(ctx, "notification push failed",
			slog.String("user_id", n.UserID.String()),
			slog.String("notification_id", n.ID.String()),
			slog.String("event", EventNotificationCreated),
			slog.String("error", err.Error()),
		)
	}
}

func distinct(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if id == uuid.Nil {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
