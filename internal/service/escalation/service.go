// Package escalation advances overdue distributions through the escalation
// policy, one level per scan, and notifies the people each level names.
package escalation

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/correspondence-backend/internal/config"
	"github.com/heartmarshall/correspondence-backend/internal/domain"
	"github.com/heartmarshall/correspondence-backend/internal/service/notify"
)

type distributionRepo interface {
	ListOverdue(ctx context.Context, now time.Time, policy domain.EscalationPolicy, limit int) ([]domain.Distribution, error)
	GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.Distribution, error)
	Update(ctx context.Context, id uuid.UUID, upd domain.DistributionUpdate) (*domain.Distribution, error)
}

type logRepo interface {
	Append(ctx context.Context, e domain.DistributionLogEntry) (domain.DistributionLogEntry, error)
	LatestMarkerAt(ctx context.Context, distributionID uuid.UUID, level int) (*time.Time, error)
}

type directory interface {
	FindActiveAdminInDepartment(ctx context.Context, departmentID uuid.UUID) (*uuid.UUID, error)
	FindAnyActiveUserInDepartment(ctx context.Context, departmentID uuid.UUID) (*uuid.UUID, error)
	ListActiveManagers(ctx context.Context, departmentID uuid.UUID) ([]uuid.UUID, error)
	ListActiveAdmins(ctx context.Context) ([]uuid.UUID, error)
}

type auditLogger interface {
	Log(ctx context.Context, e domain.AuditEvent) error
}

type notifier interface {
	Notify(ctx context.Context, userIDs []uuid.UUID, c notify.Content) ([]domain.Notification, error)
}

type policySource interface {
	Get(ctx context.Context) (domain.EscalationPolicy, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service runs escalation scans.
type Service struct {
	dists     distributionRepo
	logs      logRepo
	directory directory
	audit     auditLogger
	notifier  notifier
	policy    policySource
	tx        txManager

	batchSize       int
	priorityCeiling int
	linkTemplate    string

	log *slog.Logger
}

// NewService creates a new escalation Service.
func NewService(
	log *slog.Logger,
	dists distributionRepo,
	logs logRepo,
	directory directory,
	audit auditLogger,
	notifier notifier,
	policy policySource,
	tx txManager,
	cfg config.EscalationConfig,
) *Service {
	ceiling := cfg.PriorityCeiling
	if ceiling <= 0 || ceiling > domain.MaxPriority {
		ceiling = domain.MaxPriority
	}
	return &Service{
		dists:           dists,
		logs:            logs,
		directory:       directory,
		audit:           audit,
		notifier:        notifier,
		policy:          policy,
		tx:              tx,
		batchSize:       max(cfg.BatchSize, 1),
		priorityCeiling: ceiling,
		linkTemplate:    cfg.LinkTemplate,
		log:             log.With("service", "escalation"),
	}
}
