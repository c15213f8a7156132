// Package directory reads department membership from the users table.
// The directory itself is managed elsewhere; this package only queries it.
package directory

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	postgres "github.com/heartmarshall/correspondence-backend/internal/adapter/postgres"
	"github.com/heartmarshall/correspondence-backend/internal/domain"
)

// Admins win over managers; ties resolve to the longest-standing user.
const findAdminInDepartmentSQL = `
SELECT id FROM users
WHERE department_id = $1 AND is_active AND role IN ($2, $3)
ORDER BY (role = $2) DESC, created_at ASC, id ASC
LIMIT 1`

const findAnyInDepartmentSQL = `
SELECT id FROM users
WHERE department_id = $1 AND is_active
ORDER BY created_at ASC, id ASC
LIMIT 1`

const listManagersSQL = `
SELECT id FROM users
WHERE department_id = $1 AND is_active AND role = $2
ORDER BY created_at ASC, id ASC`

const listAdminsSQL = `
SELECT id FROM users
WHERE is_active AND role = $1
ORDER BY created_at ASC, id ASC`

const isActiveMemberSQL = `
SELECT EXISTS (SELECT 1 FROM users WHERE id = $1 AND is_active AND department_id = $2)`

// Repo provides directory lookups backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new directory repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// FindActiveAdminInDepartment returns an active user holding an
// administrative role in the department, or nil.
func (r *Repo) FindActiveAdminInDepartment(ctx context.Context, departmentID uuid.UUID) (*uuid.UUID, error) {
	return r.findOne(ctx, findAdminInDepartmentSQL, departmentID,
		string(domain.UserRoleAdmin), string(domain.UserRoleManager))
}

// FindAnyActiveUserInDepartment returns any active user of the department, or nil.
func (r *Repo) FindAnyActiveUserInDepartment(ctx context.Context, departmentID uuid.UUID) (*uuid.UUID, error) {
	return r.findOne(ctx, findAnyInDepartmentSQL, departmentID)
}

// ListActiveManagers returns the active managers of a department.
func (r *Repo) ListActiveManagers(ctx context.Context, departmentID uuid.UUID) ([]uuid.UUID, error) {
	return r.listIDs(ctx, listManagersSQL, departmentID, string(domain.UserRoleManager))
}

// ListActiveAdmins returns every active global administrator.
func (r *Repo) ListActiveAdmins(ctx context.Context) ([]uuid.UUID, error) {
	return r.listIDs(ctx, listAdminsSQL, string(domain.UserRoleAdmin))
}

// IsActiveMember reports whether userID is an active member of the department.
func (r *Repo) IsActiveMember(ctx context.Context, userID, departmentID uuid.UUID) (bool, error) {
	var ok bool
	if err := postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, isActiveMemberSQL, userID, departmentID).Scan(&ok); err != nil {
		return false, postgres.MapError(err, "user", userID)
	}
	return ok, nil
}

func (r *Repo) findOne(ctx context.Context, sql string, departmentID uuid.UUID, extra ...any) (*uuid.UUID, error) {
	args := append([]any{departmentID}, extra...)

	var id uuid.UUID
	err := postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, sql, args...).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, postgres.MapError(err, "department", departmentID)
	}
	return &id, nil
}

func (r *Repo) listIDs(ctx context.Context, sql string, args ...any) ([]uuid.UUID, error) {
	rows, err := postgres.QuerierFromCtx(ctx, r.db).Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[uuid.UUID])
	if err != nil {
		return nil, fmt.Errorf("scan users: %w", err)
	}
	return ids, nil
}
