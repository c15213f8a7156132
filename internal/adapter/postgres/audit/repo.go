// Package audit implements the Audit repository using PostgreSQL.
// It provides append-only operations for audit log records.
package audit

import (
	"context"
	"fmt"
	"time"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"

	postgres "github.com/heartmarshall/correspondence-backend/internal/adapter/postgres"
	"github.com/heartmarshall/correspondence-backend/internal/domain"
)

const auditColumns = `id, user_id, document_id, action_type, description, source_ip, created_at`

const createSQL = `
INSERT INTO audit_log (` + auditColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING ` + auditColumns

const listByDocumentSQL = `
SELECT ` + auditColumns + `
FROM audit_log
WHERE document_id = $1
ORDER BY created_at DESC, id DESC
LIMIT $2`

// Repo provides audit log persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new audit repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create inserts a new audit event and returns the persisted record.
// A zero ID or CreatedAt is filled in.
func (r *Repo) Create(ctx context.Context, e domain.AuditEvent) (domain.AuditEvent, error) {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}

	var dst row
	err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &dst, createSQL,
		e.ID, e.UserID, e.DocumentID, string(e.ActionType), e.Description, e.SourceIP, e.CreatedAt,
	)
	if err != nil {
		return domain.AuditEvent{}, postgres.MapError(err, "audit_event", e.ID)
	}
	return dst.toDomain(), nil
}

// Log creates an audit event without returning it.
// Satisfies routing.auditLogger, escalation.auditLogger and document.auditStore.
func (r *Repo) Log(ctx context.Context, e domain.AuditEvent) error {
	_, err := r.Create(ctx, e)
	return err
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// ListByDocument returns the newest audit events of a document.
func (r *Repo) ListByDocument(ctx context.Context, documentID uuid.UUID, limit int) ([]domain.AuditEvent, error) {
	var rows []row
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, listByDocumentSQL, documentID, limit); err != nil {
		return nil, fmt.Errorf("list audit events by document: %w", err)
	}

	out := make([]domain.AuditEvent, len(rows))
	for i, rw := range rows {
		out[i] = rw.toDomain()
	}
	return out, nil
}

// ---------------------------------------------------------------------------
// Mapping helpers
// ---------------------------------------------------------------------------

type row struct {
	ID          uuid.UUID  `db:"id"`
	UserID      *uuid.UUID `db:"user_id"`
	DocumentID  *uuid.UUID `db:"document_id"`
	ActionType  string     `db:"action_type"`
	Description string     `db:"description"`
	SourceIP    *string    `db:"source_ip"`
	CreatedAt   time.Time  `db:"created_at"`
}

func (r row) toDomain() domain.AuditEvent {
	return domain.AuditEvent{
		ID:          r.ID,
		UserID:      r.UserID,
		DocumentID:  r.DocumentID,
		ActionType:  domain.AuditActionType(r.ActionType),
		Description: r.Description,
		SourceIP:    r.SourceIP,
		CreatedAt:   r.CreatedAt,
	}
}
