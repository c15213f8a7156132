package escalation

import (
	"time"

	"github.com/heartmarshall/correspondence-backend/internal/domain"
)

// OverdueMinutes returns how many whole minutes now is past dueAt.
// It is 0 when there is no deadline or the deadline has not passed.
func OverdueMinutes(dueAt *time.Time, now time.Time) int {
	if dueAt == nil || !now.After(*dueAt) {
		return 0
	}
	return int(now.Sub(*dueAt) / time.Minute)
}

// TargetLevel is the highest level whose threshold the overdue time has
// reached, or 0. A distribution without a deadline is always at level 0.
func TargetLevel(dueAt *time.Time, now time.Time, policy domain.EscalationPolicy) int {
	if dueAt == nil || !now.After(*dueAt) {
		return 0
	}
	overdue := OverdueMinutes(dueAt, now)
	target := 0
	for _, l := range policy.Levels {
		if overdue < l.ThresholdMinutes {
			break
		}
		target = l.Level
	}
	return target
}

// NextLevel returns the only level a scan may apply: current+1, provided it
// exists and its threshold is reached. Escalation never skips levels, even
// when the overdue time already qualifies for a higher one.
func NextLevel(policy domain.EscalationPolicy, current, overdueMinutes int) (domain.EscalationLevel, bool) {
	next, ok := policy.Level(current + 1)
	if !ok || overdueMinutes < next.ThresholdMinutes {
		return domain.EscalationLevel{}, false
	}
	return next, true
}
