// Package redispub pushes real-time events through Redis pub/sub.
package redispub

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/heartmarshall/correspondence-backend/internal/adapter/realtime"
	"github.com/heartmarshall/correspondence-backend/internal/config"
	"github.com/heartmarshall/correspondence-backend/internal/domain"
)

const transportName = "redis"

// Publisher publishes one message per recipient on "<prefix>:<user id>".
type Publisher struct {
	client redis.UniversalClient
	prefix string
	now    func() time.Time
}

// New creates a Publisher on an existing client.
func New(client redis.UniversalClient, prefix string) *Publisher {
	return &Publisher{client: client, prefix: prefix, now: time.Now}
}

// NewClient creates a Redis client from configuration.
func NewClient(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:        cfg.Addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: cfg.DialTimeout,
	})
}

// Channel returns the channel a user's events are published on.
func (p *Publisher) Channel(userID uuid.UUID) string {
	return fmt.Sprintf("%s:%s", p.prefix, userID)
}

// Push publishes event to every recipient. Failures for individual
// recipients do not stop the others; all of them are reported together as a
// *domain.IntegrationError.
func (p *Publisher) Push(ctx context.Context, userIDs []uuid.UUID, event string, payload any) error {
	var errs []error
	for _, id := range userIDs {
		msg, err := realtime.Encode(id, event, payload, p.now())
		if err != nil {
			return &domain.IntegrationError{Transport: transportName, Err: err}
		}
		if err := p.client.Publish(ctx, p.Channel(id), msg).Err(); err != nil {
			errs = append(errs, fmt.Errorf("publish to %s: %w", id, err))
		}
	}
	if len(errs) > 0 {
		return &domain.IntegrationError{Transport: transportName, Err: errors.Join(errs...)}
	}
	return nil
}

// Ping checks the connection.
func (p *Publisher) Ping(ctx context.Context) error {
	if err := p.client.Ping(ctx).Err(); err != nil {
		return &domain.IntegrationError{Transport: transportName, Err: err}
	}
	return nil
}

// Close closes the underlying client.
func (p *Publisher) Close() error {
	return p.client.Close()
}
