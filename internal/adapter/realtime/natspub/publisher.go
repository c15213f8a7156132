// Package natspub pushes real-time events through NATS subjects.
package natspub

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"

	"github.com/heartmarshall/correspondence-backend/internal/adapter/realtime"
	"github.com/heartmarshall/correspondence-backend/internal/config"
	"github.com/heartmarshall/correspondence-backend/internal/domain"
)

const transportName = "nats"

// Conn is the subset of *nats.Conn the publisher uses.
type Conn interface {
	Publish(subject string, data []byte) error
	FlushWithContext(ctx context.Context) error
	Close()
}

// Publisher publishes one message per recipient on "<prefix>.<user id>".
type Publisher struct {
	conn   Conn
	prefix string
	now    func() time.Time
}

// New creates a Publisher on an existing connection.
func New(conn Conn, prefix string) *Publisher {
	return &Publisher{conn: conn, prefix: prefix, now: time.Now}
}

// Connect dials NATS with reconnect settings from configuration.
func Connect(cfg config.NATSConfig) (*nats.Conn, error) {
	conn, err := nats.Connect(cfg.URL,
		nats.Name(cfg.Name),
		nats.ReconnectWait(cfg.ReconnectWait),
		nats.MaxReconnects(cfg.MaxReconnects),
		nats.Timeout(10*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("connect to nats: %w", err)
	}
	return conn, nil
}

// Subject returns the subject a user's events are published on.
func (p *Publisher) Subject(userID uuid.UUID) string {
	return fmt.Sprintf("%s.%s", p.prefix, userID)
}

// Push publishes event to every recipient.
func (p *Publisher) Push(_ context.Context, userIDs []uuid.UUID, event string, payload any) error {
	var errs []error
	for _, id := range userIDs {
		msg, err := realtime.Encode(id, event, payload, p.now())
		if err != nil {
			return &domain.IntegrationError{Transport: transportName, Err: err}
		}
		if err := p.conn.Publish(p.Subject(id), msg); err != nil {
			errs = append(errs, fmt.Errorf("publish to %s: %w", id, err))
		}
	}
	if len(errs) > 0 {
		return &domain.IntegrationError{Transport: transportName, Err: errors.Join(errs...)}
	}
	return nil
}

// Ping round-trips to the server.
func (p *Publisher) Ping(ctx context.Context) error {
	if err := p.conn.FlushWithContext(ctx); err != nil {
		return &domain.IntegrationError{Transport: transportName, Err: err}
	}
	return nil
}

// Close drops the connection.
func (p *Publisher) Close() error {
	p.conn.Close()
	return nil
}
