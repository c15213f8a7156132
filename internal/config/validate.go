package config

import (
	"fmt"
	"strings"

	"github.com/robfig/cron/v3"

	"github.com/heartmarshall/correspondence-backend/internal/domain"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	switch c.Realtime.Driver {
	case RealtimeDriverRedis, RealtimeDriverNATS, RealtimeDriverLog:
	default:
		return fmt.Errorf("realtime.driver must be one of redis, nats, log (got %q)", c.Realtime.Driver)
	}

	if err := c.Escalation.validate(); err != nil {
		return fmt.Errorf("escalation: %w", err)
	}

	if c.Numbering.MaxAttempts < 1 {
		return fmt.Errorf("numbering.max_attempts must be >= 1 (got %d)", c.Numbering.MaxAttempts)
	}
	if strings.TrimSpace(c.Numbering.DefaultScope) == "" {
		return fmt.Errorf("numbering.default_scope is required")
	}

	return nil
}

func (e *EscalationConfig) validate() error {
	if e.BatchSize <= 0 {
		return fmt.Errorf("batch_size must be > 0 (got %d)", e.BatchSize)
	}
	if e.PriorityCeiling < domain.MinPriority+1 || e.PriorityCeiling > domain.MaxPriority {
		return fmt.Errorf("priority_ceiling must be in 1..%d (got %d)", domain.MaxPriority, e.PriorityCeiling)
	}
	if e.PolicyCacheTTL < 0 {
		return fmt.Errorf("policy_cache_ttl must be >= 0 (got %s)", e.PolicyCacheTTL)
	}
	if _, err := cron.ParseStandard(e.Schedule); err != nil {
		return fmt.Errorf("schedule %q: %w", e.Schedule, err)
	}
	if _, err := PolicyFromLevels(e.EffectiveLevels()); err != nil {
		return fmt.Errorf("levels: %w", err)
	}
	return nil
}

// PolicyFromLevels converts YAML level definitions into a validated domain policy.
func PolicyFromLevels(levels []LevelConfig) (domain.EscalationPolicy, error) {
	out := make([]domain.EscalationLevel, 0, len(levels))
	for _, l := range levels {
		sev := domain.NotificationSeverity(strings.ToLower(strings.TrimSpace(l.Severity)))
		if sev != "" && !sev.IsValid() {
			return domain.EscalationPolicy{}, fmt.Errorf("level %d: invalid severity %q", l.Level, l.Severity)
		}
		out = append(out, domain.EscalationLevel{
			Level:            l.Level,
			ThresholdMinutes: l.ThresholdMinutes,
			PriorityBump:     l.PriorityBump,
			StatusOnReach:    domain.DistributionStatus(strings.ToUpper(strings.TrimSpace(l.StatusOnReach))),
			ThrottleMinutes:  l.ThrottleMinutes,
			NotifyAssignee:   l.NotifyAssignee,
			NotifyManager:    l.NotifyManager,
			NotifyAdmins:     l.NotifyAdmins,
			AutoReassign:     l.AutoReassign,
			Severity:         sev,
		})
	}
	return domain.NewEscalationPolicy(out)
}
