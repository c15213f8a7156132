// Package routing implements the distribution state machine: creating
// distributions and applying manual status, assignment and note commands.
package routing

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/correspondence-backend/internal/domain"
)

type distributionRepo interface {
	Create(ctx context.Context, d domain.Distribution) (*domain.Distribution, error)
	Update(ctx context.Context, id uuid.UUID, upd domain.DistributionUpdate) (*domain.Distribution, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Distribution, error)
	GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.Distribution, error)
	ListByDocument(ctx context.Context, documentID uuid.UUID) ([]domain.Distribution, error)
}

type logRepo interface {
	Append(ctx context.Context, e domain.DistributionLogEntry) (domain.DistributionLogEntry, error)
	History(ctx context.Context, distributionID uuid.UUID) ([]domain.DistributionLogEntry, error)
}

type directory interface {
	IsActiveMember(ctx context.Context, userID, departmentID uuid.UUID) (bool, error)
}

type auditLogger interface {
	Log(ctx context.Context, e domain.AuditEvent) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service is the distribution state machine.
type Service struct {
	dists     distributionRepo
	logs      logRepo
	directory directory
	audit     auditLogger
	tx        txManager
	now       func() time.Time
	log       *slog.Logger
}

// NewService creates a new routing Service.
func NewService(
	log *slog.Logger,
	dists distributionRepo,
	logs logRepo,
	directory directory,
	audit auditLogger,
	tx txManager,
) *Service {
	return &Service{
		dists:     dists,
		logs:      logs,
		directory: directory,
		audit:     audit,
		tx:        tx,
		now:       time.Now,
		log:       log.With("service", "routing"),
	}
}
