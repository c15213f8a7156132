// Package sequence implements storage for per-scope document number counters.
package sequence

import (
	"context"

	postgres "github.com/heartmarshall/correspondence-backend/internal/adapter/postgres"
	"github.com/heartmarshall/correspondence-backend/internal/domain"
)

// maxIssuedSQL yields the highest numeric suffix already issued for a scope
// and year prefix, or 0. $1 = number_scope, $2 = LIKE pattern ("2025/%").
const maxIssuedSQL = `
SELECT COALESCE(MAX(CAST(substring(reg_number FROM '^[0-9]{4}/([0-9]+)$') AS BIGINT)), 0)
FROM documents
WHERE number_scope = $1 AND reg_number LIKE $2`

const bootstrapSQL = `
INSERT INTO number_sequences (scope, last_number, updated_at)
SELECT $3, (` + maxIssuedSQL + `), now()
ON CONFLICT (scope) DO NOTHING`

const resyncSQL = `
UPDATE number_sequences
SET last_number = GREATEST(last_number, (` + maxIssuedSQL + `)),
    updated_at  = now()
WHERE scope = $3`

const incrementSQL = `
UPDATE number_sequences
SET last_number = last_number + 1,
    updated_at  = now()
WHERE scope = $1
RETURNING last_number`

// Repo provides number sequence persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new sequence repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// Bootstrap creates the counter row if it does not exist yet, seeding it with
// the highest number already present in documents.
func (r *Repo) Bootstrap(ctx context.Context, k domain.SequenceRef) error {
	q := postgres.QuerierFromCtx(ctx, r.db)
	if _, err := q.Exec(ctx, bootstrapSQL, k.Scope, k.Prefix+"%", k.Sequence); err != nil {
		return postgres.MapError(err, "number_sequence", k.Sequence)
	}
	return nil
}

// Resync raises the counter to at least the highest number already issued.
func (r *Repo) Resync(ctx context.Context, k domain.SequenceRef) error {
	q := postgres.QuerierFromCtx(ctx, r.db)
	if _, err := q.Exec(ctx, resyncSQL, k.Scope, k.Prefix+"%", k.Sequence); err != nil {
		return postgres.MapError(err, "number_sequence", k.Sequence)
	}
	return nil
}

// Increment advances the counter and returns the new value. The row stays
// locked until the surrounding transaction ends.
func (r *Repo) Increment(ctx context.Context, sequence string) (int64, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	var n int64
	if err := q.QueryRow(ctx, incrementSQL, sequence).Scan(&n); err != nil {
		return 0, postgres.MapError(err, "number_sequence", sequence)
	}
	return n, nil
}
