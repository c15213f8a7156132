// Package distribution implements the Distribution repository using PostgreSQL.
package distribution

import (
	"context"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"

	postgres "github.com/heartmarshall/correspondence-backend/internal/adapter/postgres"
	"github.com/heartmarshall/correspondence-backend/internal/domain"
)

const table = "distributions"

var columns = []string{
	"id", "document_id", "department_id", "assigned_user_id", "status", "priority",
	"due_at", "escalation_count", "created_at", "last_update_at",
}

// Repo provides distribution persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new distribution repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create inserts a distribution and returns the stored row.
func (r *Repo) Create(ctx context.Context, d domain.Distribution) (*domain.Distribution, error) {
	query := postgres.Builder().
		Insert(table).
		Columns(columns...).
		Values(d.ID, d.DocumentID, d.DepartmentID, d.AssignedUserID, string(d.Status), d.Priority,
			d.DueAt, d.EscalationCount, d.CreatedAt, d.LastUpdateAt).
		Suffix("RETURNING " + strings.Join(columns, ", "))

	return r.getOne(ctx, query, d.ID)
}

// Update writes the mutable columns of a distribution. escalation_count is
// never lowered, whatever the caller passes.
func (r *Repo) Update(ctx context.Context, id uuid.UUID, upd domain.DistributionUpdate) (*domain.Distribution, error) {
	query := postgres.Builder().
		Update(table).
		Set("status", string(upd.Status)).
		Set("priority", upd.Priority).
		Set("assigned_user_id", upd.AssignedUserID).
		Set("escalation_count", sq.Expr("GREATEST(escalation_count, ?)", upd.EscalationCount)).
		Set("last_update_at", upd.UpdatedAt).
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING " + strings.Join(columns, ", "))

	return r.getOne(ctx, query, id)
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByID returns a distribution by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Distribution, error) {
	query := postgres.Builder().Select(columns...).From(table).Where(sq.Eq{"id": id})
	return r.getOne(ctx, query, id)
}

// GetForUpdate returns a distribution and locks its row until the
// surrounding transaction ends.
func (r *Repo) GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.Distribution, error) {
	query := postgres.Builder().Select(columns...).From(table).Where(sq.Eq{"id": id}).Suffix("FOR UPDATE")
	return r.getOne(ctx, query, id)
}

// ListOverdue returns up to limit non-closed distributions that are past
// due and have reached the threshold of their next level, most overdue
// first. Rows already at the policy's top level are never returned, so they
// cannot fill a batch ahead of rows that can still advance.
func (r *Repo) ListOverdue(ctx context.Context, now time.Time, policy domain.EscalationPolicy, limit int) ([]domain.Distribution, error) {
	cutoffs := policy.Cutoffs(now)
	if len(cutoffs) == 0 || limit <= 0 {
		return nil, nil
	}

	statuses := make([]string, len(domain.ActiveDistributionStatuses))
	for i, s := range domain.ActiveDistributionStatuses {
		statuses[i] = string(s)
	}

	eligible := make(sq.Or, len(cutoffs))
	for i, c := range cutoffs {
		eligible[i] = sq.And{
			sq.Eq{"escalation_count": c.Count},
			sq.LtOrEq{"due_at": c.DueBy},
		}
	}

	query := postgres.Builder().
		Select(columns...).
		From(table).
		Where(sq.Eq{"status": statuses}).
		Where(sq.NotEq{"due_at": nil}).
		Where(sq.Lt{"due_at": now}).
		Where(eligible).
		OrderBy("due_at ASC", "id ASC").
		Limit(uint64(limit))

	return r.list(ctx, query, "list overdue distributions")
}

// ListByDocument returns every distribution of a document, oldest first.
func (r *Repo) ListByDocument(ctx context.Context, documentID uuid.UUID) ([]domain.Distribution, error) {
	query := postgres.Builder().
		Select(columns...).
		From(table).
		Where(sq.Eq{"document_id": documentID}).
		OrderBy("created_at ASC", "id ASC")

	return r.list(ctx, query, "list distributions by document")
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

type row struct {
	ID              uuid.UUID  `db:"id"`
	DocumentID      uuid.UUID  `db:"document_id"`
	DepartmentID    uuid.UUID  `db:"department_id"`
	AssignedUserID  *uuid.UUID `db:"assigned_user_id"`
	Status          string     `db:"status"`
	Priority        int        `db:"priority"`
	DueAt           *time.Time `db:"due_at"`
	EscalationCount int        `db:"escalation_count"`
	CreatedAt       time.Time  `db:"created_at"`
	LastUpdateAt    time.Time  `db:"last_update_at"`
}

func (r row) toDomain() domain.Distribution {
	return domain.Distribution{
		ID:              r.ID,
		DocumentID:      r.DocumentID,
		DepartmentID:    r.DepartmentID,
		AssignedUserID:  r.AssignedUserID,
		Status:          domain.DistributionStatus(r.Status),
		Priority:        r.Priority,
		DueAt:           r.DueAt,
		EscalationCount: r.EscalationCount,
		CreatedAt:       r.CreatedAt,
		LastUpdateAt:    r.LastUpdateAt,
	}
}

func (r *Repo) getOne(ctx context.Context, query sq.Sqlizer, id uuid.UUID) (*domain.Distribution, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build distribution query: %w", err)
	}

	var dst row
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &dst, sql, args...); err != nil {
		return nil, postgres.MapError(err, "distribution", id)
	}
	d := dst.toDomain()
	return &d, nil
}

func (r *Repo) list(ctx context.Context, query sq.Sqlizer, what string) ([]domain.Distribution, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build %s query: %w", what, err)
	}

	var rows []row
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("%s: %w", what, err)
	}

	out := make([]domain.Distribution, len(rows))
	for i, rw := range rows {
		out[i] = rw.toDomain()
	}
	return out, nil
}
