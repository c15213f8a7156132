package notify

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/correspondence-backend/internal/domain"
)

// MarkRead marks the given notifications of userID as read and returns how
// many actually changed. Ids owned by someone else, unknown ids and already
// read notifications are ignored.
func (s *Service) MarkRead(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) (int, error) {
	if userID == uuid.Nil {
		return 0, domain.NewValidationError("user_id", "required")
	}
	ids = distinct(ids)
	if len(ids) == 0 {
		return 0, nil
	}

	n, err := s.repo.MarkRead(ctx, userID, ids, s.now().UTC())
	if err != nil {
		return 0, fmt.Errorf("mark notifications read: %w", err)
	}

	s.log.DebugContext(ctx, "notifications marked read",
		slog.String("user_id", userID.String()),
		slog.Int("requested", len(ids)),
		slog.Int("updated", n),
	)
	return n, nil
}

// ListUnread returns the newest unread notifications of userID.
// A limit of 0 means DefaultListLimit; it may not exceed MaxListLimit.
func (s *Service) ListUnread(ctx context.Context, userID uuid.UUID, limit int) ([]domain.Notification, error) {
	if userID == uuid.Nil {
		return nil, domain.NewValidationError("user_id", "required")
	}
	switch {
	case limit < 0:
		return nil, domain.NewValidationError("limit", "must be non-negative")
	case limit == 0:
		limit = DefaultListLimit
	case limit > MaxListLimit:
		return nil, domain.NewValidationError("limit", fmt.Sprintf("max %d", MaxListLimit))
	}

	list, err := s.repo.ListUnread(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list unread notifications: %w", err)
	}
	return list, nil
}

// CountUnread returns the number of unread notifications of userID.
func (s *Service) CountUnread(ctx context.Context, userID uuid.UUID) (int, error) {
	n, err := s.repo.CountUnread(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("count unread notifications: %w", err)
	}
	return n, nil
}
