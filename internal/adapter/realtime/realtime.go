// Package realtime defines the message envelope pushed to connected clients
// and a log-only pusher used when no broker is configured.
package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// Envelope is the message delivered on a recipient's channel.
type Envelope struct {
	Event   string          `json:"event"`
	UserID  uuid.UUID       `json:"user_id"`
	Payload json.RawMessage `json:"payload"`
	SentAt  time.Time       `json:"sent_at"`
}

// Encode builds the wire form of an envelope for one recipient.
func Encode(userID uuid.UUID, event string, payload any, now time.Time) ([]byte, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal %s payload: %w", event, err)
	}
	return json.Marshal(Envelope{Event: event, UserID: userID, Payload: raw, SentAt: now.UTC()})
}

// LogPusher writes pushes to the log instead of a broker.
type LogPusher struct {
	log *slog.Logger
}

// NewLogPusher creates a LogPusher.
func NewLogPusher(log *slog.Logger) *LogPusher {
	return &LogPusher{log: log.With("transport", "log")}
}

// Push logs one line per recipient. It never fails.
func (p *LogPusher) Push(ctx context.Context, userIDs []uuid.UUID, event string, _ any) error {
	for _, id := range userIDs {
		p.log.DebugContext(ctx, "realtime push",
			slog.String("event", event),
			slog.String("user_id", id.String()),
		)
	}
	return nil
}

// Ping always succeeds.
func (p *LogPusher) Ping(context.Context) error { return nil }
