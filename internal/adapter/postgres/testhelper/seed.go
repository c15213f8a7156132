package testhelper

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/correspondence-backend/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// UniqueScope returns a numbering scope no other test uses.
func UniqueScope() string {
	return "TEST" + strings.ToUpper(uuid.New().String()[:8])
}

// SeedDepartment creates a department and returns its id.
func SeedDepartment(t *testing.T, pool *pgxpool.Pool) uuid.UUID {
	t.Helper()

	id := uuid.New()
	_, err := pool.Exec(context.Background(),
		`INSERT INTO departments (id, name) VALUES ($1, $2)`,
		id, "Department "+uniqueSuffix(),
	)
	if err != nil {
		t.Fatalf("testhelper: SeedDepartment: %v", err)
	}
	return id
}

// SeedUser creates an active user with the given role. departmentID may be nil.
func SeedUser(t *testing.T, pool *pgxpool.Pool, departmentID *uuid.UUID, role domain.UserRole) domain.User {
	t.Helper()

	user := domain.User{
		ID:           uuid.New(),
		DepartmentID: departmentID,
		FullName:     "Test User " + uniqueSuffix(),
		Role:         role,
		IsActive:     true,
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO users (id, department_id, full_name, role, is_active)
		 VALUES ($1, $2, $3, $4, $5)`,
		user.ID, user.DepartmentID, user.FullName, string(user.Role), user.IsActive,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedUser: %v", err)
	}
	return user
}

// DeactivateUser marks a user inactive.
func DeactivateUser(t *testing.T, pool *pgxpool.Pool, userID uuid.UUID) {
	t.Helper()

	if _, err := pool.Exec(context.Background(), `UPDATE users SET is_active = FALSE WHERE id = $1`, userID); err != nil {
		t.Fatalf("testhelper: DeactivateUser: %v", err)
	}
}

// SeedDocument creates a document with a unique scope and a fixed number.
func SeedDocument(t *testing.T, pool *pgxpool.Pool) domain.Document {
	t.Helper()
	return SeedDocumentNumbered(t, pool, UniqueScope(), "2025/000001")
}

// SeedDocumentNumbered creates a document carrying the given registration number,
// bypassing the sequence allocator.
func SeedDocumentNumbered(t *testing.T, pool *pgxpool.Pool, scope, regNumber string) domain.Document {
	t.Helper()

	doc := domain.Document{
		ID:        uuid.New(),
		Scope:     scope,
		RegNumber: regNumber,
		Subject:   "Subject " + uniqueSuffix(),
		CreatedBy: uuid.New(),
		CreatedAt: time.Now().UTC().Truncate(time.Microsecond),
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO documents (id, number_scope, reg_number, subject, created_by, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		doc.ID, doc.Scope, doc.RegNumber, doc.Subject, doc.CreatedBy, doc.CreatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedDocumentNumbered: %v", err)
	}
	return doc
}

// DistributionSeed describes a distribution row inserted directly.
type DistributionSeed struct {
	DocumentID      uuid.UUID
	DepartmentID    uuid.UUID
	AssignedUserID  *uuid.UUID
	Status          domain.DistributionStatus
	Priority        int
	DueAt           *time.Time
	EscalationCount int
}

// SeedDistribution inserts a distribution without going through the state
// machine, so tests can start from any status or escalation count.
func SeedDistribution(t *testing.T, pool *pgxpool.Pool, s DistributionSeed) domain.Distribution {
	t.Helper()

	if s.Status == "" {
		s.Status = domain.DistributionStatusOpen
	}
	now := time.Now().UTC().Truncate(time.Microsecond)
	d := domain.Distribution{
		ID:              uuid.New(),
		DocumentID:      s.DocumentID,
		DepartmentID:    s.DepartmentID,
		AssignedUserID:  s.AssignedUserID,
		Status:          s.Status,
		Priority:        s.Priority,
		DueAt:           s.DueAt,
		EscalationCount: s.EscalationCount,
		CreatedAt:       now,
		LastUpdateAt:    now,
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO distributions
		    (id, document_id, department_id, assigned_user_id, status, priority, due_at, escalation_count, created_at, last_update_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		d.ID, d.DocumentID, d.DepartmentID, d.AssignedUserID, string(d.Status), d.Priority,
		d.DueAt, d.EscalationCount, d.CreatedAt, d.LastUpdateAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedDistribution: %v", err)
	}
	return d
}

// SeedLogEntry appends a distribution log entry with an explicit timestamp.
func SeedLogEntry(t *testing.T, pool *pgxpool.Pool, distributionID uuid.UUID, note string, at time.Time) {
	t.Helper()

	_, err := pool.Exec(context.Background(),
		`INSERT INTO distribution_logs
		    (distribution_id, old_status, new_status, old_priority, new_priority, note, actor_id, created_at)
		 VALUES ($1, NULL, 'OPEN', 0, 0, $2, $3, $4)`,
		distributionID, note, domain.SystemActorID, at,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedLogEntry: %v", err)
	}
}

// Fixture is a department with a manager, a staff member and a document,
// the usual starting point for routing tests.
type Fixture struct {
	DepartmentID uuid.UUID
	Manager      domain.User
	Staff        domain.User
	Document     domain.Document
}

// SeedFixture creates a Fixture.
func SeedFixture(t *testing.T, pool *pgxpool.Pool) Fixture {
	t.Helper()

	dept := SeedDepartment(t, pool)
	return Fixture{
		DepartmentID: dept,
		Manager:      SeedUser(t, pool, &dept, domain.UserRoleManager),
		Staff:        SeedUser(t, pool, &dept, domain.UserRoleStaff),
		Document:     SeedDocument(t, pool),
	}
}
