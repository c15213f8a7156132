// Package notify persists in-app notifications and relays them to the
// real-time transport.
package notify

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/correspondence-backend/internal/config"
	"github.com/heartmarshall/correspondence-backend/internal/domain"
)

// EventNotificationCreated is the real-time event name for a new or reused notification.
const EventNotificationCreated = "notification.created"

const (
	DefaultListLimit = 50
	MaxListLimit     = 200
)

type notificationRepo interface {
	Create(ctx context.Context, n domain.Notification) (*domain.Notification, bool, error)
	MarkRead(ctx context.Context, userID uuid.UUID, ids []uuid.UUID, now time.Time) (int, error)
	ListUnread(ctx context.Context, userID uuid.UUID, limit int) ([]domain.Notification, error)
	CountUnread(ctx context.Context, userID uuid.UUID) (int, error)
}

type pusher interface {
	Push(ctx context.Context, userIDs []uuid.UUID, event string, payload any) error
}

// Service is the notification dispatcher.
type Service struct {
	repo        notificationRepo
	pusher      pusher
	pushTimeout time.Duration
	now         func() time.Time
	log         *slog.Logger
}

// NewService creates a new notification Service.
func NewService(
	log *slog.Logger,
	repo notificationRepo,
	pusher pusher,
	cfg config.RealtimeConfig,
) *Service {
	return &Service{
		repo:        repo,
		pusher:      pusher,
		pushTimeout: cfg.PushTimeout,
		now:         time.Now,
		log:         log.With("service", "notify"),
	}
}
