// Package escalationlevel stores the escalation policy table.
package escalationlevel

import (
	"context"
	"fmt"

	"github.com/georgysavva/scany/v2/pgxscan"

	postgres "github.com/heartmarshall/correspondence-backend/internal/adapter/postgres"
	"github.com/heartmarshall/correspondence-backend/internal/domain"
)

const listActiveSQL = `
SELECT level, threshold_minutes, priority_bump, status_on_reach, throttle_minutes,
       notify_assignee, notify_manager, notify_admins, auto_reassign, severity
FROM escalation_levels
WHERE is_active
ORDER BY level ASC`

const upsertSQL = `
INSERT INTO escalation_levels
    (level, threshold_minutes, priority_bump, status_on_reach, throttle_minutes,
     notify_assignee, notify_manager, notify_admins, auto_reassign, severity, is_active, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, TRUE, now())
ON CONFLICT (level) DO UPDATE SET
    threshold_minutes = EXCLUDED.threshold_minutes,
    priority_bump     = EXCLUDED.priority_bump,
    status_on_reach   = EXCLUDED.status_on_reach,
    throttle_minutes  = EXCLUDED.throttle_minutes,
    notify_assignee   = EXCLUDED.notify_assignee,
    notify_manager    = EXCLUDED.notify_manager,
    notify_admins     = EXCLUDED.notify_admins,
    auto_reassign     = EXCLUDED.auto_reassign,
    severity          = EXCLUDED.severity,
    is_active         = TRUE,
    updated_at        = now()`

const deactivateAboveSQL = `UPDATE escalation_levels SET is_active = FALSE, updated_at = now() WHERE level > $1 AND is_active`

// Repo provides escalation level persistence backed by PostgreSQL.
type Repo struct {
	db postgres.DB
}

// New creates a new escalation level repository.
func New(db postgres.DB) *Repo {
	return &Repo{db: db}
}

// ListActive returns the active levels ordered by level number.
func (r *Repo) ListActive(ctx context.Context) ([]domain.EscalationLevel, error) {
	var rows []row
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, listActiveSQL); err != nil {
		return nil, fmt.Errorf("list escalation_levels: %w", err)
	}

	out := make([]domain.EscalationLevel, len(rows))
	for i, rw := range rows {
		out[i] = rw.toDomain()
	}
	return out, nil
}

// Replace makes policy the active set of levels: every level is upserted and
// levels above the policy's last one are deactivated, in one transaction.
func (r *Repo) Replace(ctx context.Context, policy domain.EscalationPolicy) error {
	return postgres.NewTxManager(r.db).RunInTx(ctx, func(ctx context.Context) error {
		q := postgres.QuerierFromCtx(ctx, r.db)
		for _, l := range policy.Levels {
			_, err := q.Exec(ctx, upsertSQL,
				l.Level, l.ThresholdMinutes, l.PriorityBump, string(l.StatusOnReach), l.ThrottleMinutes,
				l.NotifyAssignee, l.NotifyManager, l.NotifyAdmins, l.AutoReassign, string(l.Severity),
			)
			if err != nil {
				return postgres.MapError(err, "escalation_level", l.Level)
			}
		}
		if _, err := q.Exec(ctx, deactivateAboveSQL, policy.MaxLevel()); err != nil {
			return fmt.Errorf("deactivate escalation_levels: %w", err)
		}
		return nil
	})
}

type row struct {
	Level            int    `db:"level"`
	ThresholdMinutes int    `db:"threshold_minutes"`
	PriorityBump     int    `db:"priority_bump"`
	StatusOnReach    string `db:"status_on_reach"`
	ThrottleMinutes  int    `db:"throttle_minutes"`
	NotifyAssignee   bool   `db:"notify_assignee"`
	NotifyManager    bool   `db:"notify_manager"`
	NotifyAdmins     bool   `db:"notify_admins"`
	AutoReassign     bool   `db:"auto_reassign"`
	Severity         string `db:"severity"`
}

func (r row) toDomain() domain.EscalationLevel {
	return domain.EscalationLevel{
		Level:            r.Level,
		ThresholdMinutes: r.ThresholdMinutes,
		PriorityBump:     r.PriorityBump,
		StatusOnReach:    domain.DistributionStatus(r.StatusOnReach),
		ThrottleMinutes:  r.ThrottleMinutes,
		NotifyAssignee:   r.NotifyAssignee,
		NotifyManager:    r.NotifyManager,
		NotifyAdmins:     r.NotifyAdmins,
		AutoReassign:     r.AutoReassign,
		Severity:         domain.NotificationSeverity(r.Severity),
	}
}
