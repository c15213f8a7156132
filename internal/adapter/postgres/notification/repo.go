// Package notification implements the Notification repository using PostgreSQL.
package notification

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"

	postgres "github.com/heartmarshall/correspondence-backend/internal/adapter/postgres"
	"github.com/heartmarshall/correspondence-backend/internal/domain"
)

const table = "notifications"

var columns = []string{
	"id", "user_id", "title", "body", "link", "severity", "status", "dedupe_key", "created_at", "read_at",
}

// Repo provides notification persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new notification repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create inserts a notification. When n.DedupeKey is set and the recipient
// already holds a notification with the same key, the existing row is
// returned with created=false and nothing is written.
func (r *Repo) Create(ctx context.Context, n domain.Notification) (out *domain.Notification, created bool, err error) {
	insert := postgres.Builder().
		Insert(table).
		Columns(columns...).
		Values(n.ID, n.UserID, n.Title, n.Body, n.Link, string(n.Severity), string(n.Status), n.DedupeKey, n.CreatedAt, n.ReadAt)

	if n.DedupeKey == nil {
		out, err = r.getOne(ctx, insert.Suffix("RETURNING "+strings.Join(columns, ", ")), n.ID)
		return out, err == nil, err
	}

	insert = insert.Suffix("ON CONFLICT (user_id, dedupe_key) WHERE dedupe_key IS NOT NULL DO NOTHING RETURNING " +
		strings.Join(columns, ", "))

	out, err = r.getOne(ctx, insert, n.ID)
	if err == nil {
		return out, true, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, false, err
	}

	// Conflict: the row already exists.
	existing := postgres.Builder().
		Select(columns...).
		From(table).
		Where(sq.Eq{"user_id": n.UserID, "dedupe_key": *n.DedupeKey})

	out, err = r.getOne(ctx, existing, n.ID)
	if err != nil {
		return nil, false, err
	}
	return out, false, nil
}

// MarkRead marks the given notifications of userID as read and returns how
// many rows changed. Ids owned by other users or already read are ignored.
func (r *Repo) MarkRead(ctx context.Context, userID uuid.UUID, ids []uuid.UUID, now time.Time) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	query := postgres.Builder().
		Update(table).
		Set("status", string(domain.NotificationStatusRead)).
		Set("read_at", now).
		Where(sq.Eq{"user_id": userID, "id": ids, "status": string(domain.NotificationStatusUnread)})

	sql, args, err := query.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build mark read query: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, sql, args...)
	if err != nil {
		return 0, postgres.MapError(err, "notification", userID)
	}
	return int(tag.RowsAffected()), nil
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// ListUnread returns the newest unread notifications of a user.
func (r *Repo) ListUnread(ctx context.Context, userID uuid.UUID, limit int) ([]domain.Notification, error) {
	query := postgres.Builder().
		Select(columns...).
		From(table).
		Where(sq.Eq{"user_id": userID, "status": string(domain.NotificationStatusUnread)}).
		OrderBy("created_at DESC", "id DESC").
		Limit(uint64(limit))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list unread query: %w", err)
	}

	var rows []row
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("list unread notifications: %w", err)
	}

	out := make([]domain.Notification, len(rows))
	for i, rw := range rows {
		out[i] = rw.toDomain()
	}
	return out, nil
}

// CountUnread returns the number of unread notifications of a user.
func (r *Repo) CountUnread(ctx context.Context, userID uuid.UUID) (int, error) {
	query := postgres.Builder().
		Select("COUNT(*)").
		From(table).
		Where(sq.Eq{"user_id": userID, "status": string(domain.NotificationStatusUnread)})

	sql, args, err := query.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count unread query: %w", err)
	}

	var n int
	if err := postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, sql, args...).Scan(&n); err != nil {
		return 0, postgres.MapError(err, "notification", userID)
	}
	return n, nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

type row struct {
	ID        uuid.UUID  `db:"id"`
	UserID    uuid.UUID  `db:"user_id"`
	Title     string     `db:"title"`
	Body      string     `db:"body"`
	Link      *string    `db:"link"`
	Severity  string     `db:"severity"`
	Status    string     `db:"status"`
	DedupeKey *string    `db:"dedupe_key"`
	CreatedAt time.Time  `db:"created_at"`
	ReadAt    *time.Time `db:"read_at"`
}

func (r row) toDomain() domain.Notification {
	return domain.Notification{
		ID:        r.ID,
		UserID:    r.UserID,
		Title:     r.Title,
		Body:      r.Body,
		Link:      r.Link,
		Severity:  domain.NotificationSeverity(r.Severity),
		Status:    domain.NotificationStatus(r.Status),
		DedupeKey: r.DedupeKey,
		CreatedAt: r.CreatedAt,
		ReadAt:    r.ReadAt,
	}
}

func (r *Repo) getOne(ctx context.Context, query sq.Sqlizer, id uuid.UUID) (*domain.Notification, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build notification query: %w", err)
	}

	var dst row
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &dst, sql, args...); err != nil {
		return nil, postgres.MapError(err, "notification", id)
	}
	n := dst.toDomain()
	return &n, nil
}
