// Package document implements the Document repository using PostgreSQL.
package document

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	postgres "github.com/heartmarshall/correspondence-backend/internal/adapter/postgres"
	"github.com/heartmarshall/correspondence-backend/internal/domain"
)

// NumberConstraint is the unique constraint over (number_scope, reg_number).
const NumberConstraint = "documents_scope_number_key"

const documentColumns = `id, number_scope, reg_number, subject, created_by, created_at`

const createSQL = `
INSERT INTO documents (` + documentColumns + `)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING ` + documentColumns

const getByIDSQL = `SELECT ` + documentColumns + ` FROM documents WHERE id = $1`

const getByNumberSQL = `SELECT ` + documentColumns + ` FROM documents WHERE number_scope = $1 AND reg_number = $2`

// Repo provides document persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new document repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// Create inserts a document. A collision on the registration number is
// reported as *domain.NumberTakenError so the allocator can retry.
func (r *Repo) Create(ctx context.Context, doc domain.Document) (*domain.Document, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	row := q.QueryRow(ctx, createSQL,
		doc.ID, doc.Scope, doc.RegNumber, doc.Subject, doc.CreatedBy, doc.CreatedAt,
	)
	out, err := scanDocument(row)
	if err != nil {
		if postgres.IsUniqueViolation(err, NumberConstraint) {
			return nil, &domain.NumberTakenError{Scope: doc.Scope, Number: doc.RegNumber}
		}
		return nil, postgres.MapError(err, "document", doc.ID)
	}
	return out, nil
}

// GetByID returns a document by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Document, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	out, err := scanDocument(q.QueryRow(ctx, getByIDSQL, id))
	if err != nil {
		return nil, postgres.MapError(err, "document", id)
	}
	return out, nil
}

// GetByNumber returns the document registered under number in scope.
func (r *Repo) GetByNumber(ctx context.Context, scope, number string) (*domain.Document, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	out, err := scanDocument(q.QueryRow(ctx, getByNumberSQL, scope, number))
	if err != nil {
		return nil, postgres.MapError(err, "document", scope+" "+number)
	}
	return out, nil
}

func scanDocument(row pgx.Row) (*domain.Document, error) {
	var d domain.Document
	if err := row.Scan(&d.ID, &d.Scope, &d.RegNumber, &d.Subject, &d.CreatedBy, &d.CreatedAt); err != nil {
		return nil, err
	}
	return &d, nil
}
