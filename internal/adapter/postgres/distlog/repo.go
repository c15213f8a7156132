// Package distlog implements the append-only distribution log using PostgreSQL.
package distlog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	postgres "github.com/heartmarshall/correspondence-backend/internal/adapter/postgres"
	"github.com/heartmarshall/correspondence-backend/internal/domain"
)

const appendSQL = `
INSERT INTO distribution_logs
    (distribution_id, old_status, new_status, old_priority, new_priority, note, actor_id, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING id`

const historySQL = `
SELECT id, distribution_id, old_status, new_status, old_priority, new_priority, note, actor_id, created_at
FROM distribution_logs
WHERE distribution_id = $1
ORDER BY created_at ASC, id ASC`

// A marker matches when the note is exactly the marker or the marker
// followed by a space. "ESC:L1" must not match "ESC:L10".
const latestMarkerSQL = `
SELECT created_at
FROM distribution_logs
WHERE distribution_id = $1
  AND (note = $2 OR note LIKE $2 || ' %')
ORDER BY created_at DESC, id DESC
LIMIT 1`

// Repo provides distribution log persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new distribution log repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// Append writes one log entry and returns it with its assigned id.
func (r *Repo) Append(ctx context.Context, e domain.DistributionLogEntry) (domain.DistributionLogEntry, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	var oldStatus *string
	if e.OldStatus != "" {
		s := string(e.OldStatus)
		oldStatus = &s
	}

	err := q.QueryRow(ctx, appendSQL,
		e.DistributionID, oldStatus, string(e.NewStatus), e.OldPriority, e.NewPriority, e.Note, e.ActorID, e.CreatedAt,
	).Scan(&e.ID)
	if err != nil {
		return domain.DistributionLogEntry{}, postgres.MapError(err, "distribution_log", e.DistributionID)
	}
	return e, nil
}

// History returns every entry of a distribution in chronological order.
func (r *Repo) History(ctx context.Context, distributionID uuid.UUID) ([]domain.DistributionLogEntry, error) {
	var rows []row
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, historySQL, distributionID); err != nil {
		return nil, fmt.Errorf("list distribution_logs: %w", err)
	}

	out := make([]domain.DistributionLogEntry, len(rows))
	for i, rw := range rows {
		out[i] = rw.toDomain()
	}
	return out, nil
}

// LatestMarkerAt returns the time of the most recent entry tagged with the
// escalation marker of level, or nil if the level was never applied.
func (r *Repo) LatestMarkerAt(ctx context.Context, distributionID uuid.UUID, level int) (*time.Time, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	var at time.Time
	err := q.QueryRow(ctx, latestMarkerSQL, distributionID, domain.EscalationMarker(level)).Scan(&at)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, postgres.MapError(err, "distribution_log", distributionID)
	}
	return &at, nil
}

type row struct {
	ID             int64     `db:"id"`
	DistributionID uuid.UUID `db:"distribution_id"`
	OldStatus      *string   `db:"old_status"`
	NewStatus      string    `db:"new_status"`
	OldPriority    int       `db:"old_priority"`
	NewPriority    int       `db:"new_priority"`
	Note           string    `db:"note"`
	ActorID        uuid.UUID `db:"actor_id"`
	CreatedAt      time.Time `db:"created_at"`
}

func (r row) toDomain() domain.DistributionLogEntry {
	e := domain.DistributionLogEntry{
		ID:             r.ID,
		DistributionID: r.DistributionID,
		NewStatus:      domain.DistributionStatus(r.NewStatus),
		OldPriority:    r.OldPriority,
		NewPriority:    r.NewPriority,
		Note:           r.Note,
		ActorID:        r.ActorID,
		CreatedAt:      r.CreatedAt,
	}
	if r.OldStatus != nil {
		e.OldStatus = domain.DistributionStatus(*r.OldStatus)
	}
	return e
}
