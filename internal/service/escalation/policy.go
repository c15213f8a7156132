package escalation

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/heartmarshall/correspondence-backend/internal/domain"
)

const policyKey = "active"

type levelSource interface {
	ListActive(ctx context.Context) ([]domain.EscalationLevel, error)
}

// PolicyCache serves the active escalation policy. Levels come from the
// escalation_levels table; when it has no active rows the configured
// fallback policy is used. Loaded policies are kept for ttl, or not cached
// at all when ttl is 0.
type PolicyCache struct {
	src      levelSource
	fallback domain.EscalationPolicy
	cache    *expirable.LRU[string, domain.EscalationPolicy]
	log      *slog.Logger
}

// NewPolicyCache creates a PolicyCache.
func NewPolicyCache(log *slog.Logger, src levelSource, fallback domain.EscalationPolicy, ttl time.Duration) *PolicyCache {
	c := &PolicyCache{
		src:      src,
		fallback: fallback,
		log:      log.With("component", "policy_cache"),
	}
	if ttl > 0 {
		c.cache = expirable.NewLRU[string, domain.EscalationPolicy](1, nil, ttl)
	}
	return c
}

// Get returns the active policy.
func (c *PolicyCache) Get(ctx context.Context) (domain.EscalationPolicy, error) {
	if c.cache != nil {
		if p, ok := c.cache.Get(policyKey); ok {
			return p, nil
		}
	}

	levels, err := c.src.ListActive(ctx)
	if err != nil {
		return domain.EscalationPolicy{}, fmt.Errorf("load escalation levels: %w", err)
	}

	policy := c.fallback
	source := "config"
	if len(levels) > 0 {
		policy, err = domain.NewEscalationPolicy(levels)
		if err != nil {
			return domain.EscalationPolicy{}, fmt.Errorf("escalation levels: %w", err)
		}
		source = "database"
	}

	if c.cache != nil {
		c.cache.Add(policyKey, policy)
	}
	c.log.DebugContext(ctx, "escalation policy loaded",
		slog.String("source", source),
		slog.Int("levels", policy.MaxLevel()),
	)
	return policy, nil
}

// Invalidate drops the cached policy; the next Get reloads it.
func (c *PolicyCache) Invalidate() {
	if c.cache != nil {
		c.cache.Purge()
	}
}
