package domain

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"
)

// EscalationMarkerPrefix starts every note written by the scheduler when a
// level is applied. The full marker is "ESC:L<n>" followed by a space or the
// end of the note; the throttle check searches log notes for it.
const EscalationMarkerPrefix = "ESC:L"

// EscalationMarker returns the marker for the given level, e.g. "ESC:L2".
func EscalationMarker(level int) string {
	return EscalationMarkerPrefix + strconv.Itoa(level)
}

// ParseEscalationMarker extracts the level from a note that starts with an
// escalation marker.
func ParseEscalationMarker(note string) (int, bool) {
	rest, ok := strings.CutPrefix(note, EscalationMarkerPrefix)
	if !ok {
		return 0, false
	}
	digits := rest
	if i := strings.IndexByte(rest, ' '); i >= 0 {
		digits = rest[:i]
	}
	level, err := strconv.Atoi(digits)
	if err != nil || level <= 0 {
		return 0, false
	}
	return level, true
}

// EscalationLevel is one tier of the escalation policy.
type EscalationLevel struct {
	Level            int
	ThresholdMinutes int
	PriorityBump     int
	StatusOnReach    DistributionStatus
	ThrottleMinutes  int
	NotifyAssignee   bool
	NotifyManager    bool
	NotifyAdmins     bool
	AutoReassign     bool
	Severity         NotificationSeverity
}

// EscalationPolicy is an ordered list of levels 1..N.
type EscalationPolicy struct {
	Levels []EscalationLevel
}

// NewEscalationPolicy sorts the levels by number and validates that they
// form a contiguous 1..N sequence with non-decreasing thresholds.
func NewEscalationPolicy(levels []EscalationLevel) (EscalationPolicy, error) {
	sorted := slices.Clone(levels)
	slices.SortFunc(sorted, func(a, b EscalationLevel) int { return a.Level - b.Level })

	for i, l := range sorted {
		if l.Level != i+1 {
			return EscalationPolicy{}, fmt.Errorf("escalation level %d: levels must be numbered 1..N without gaps", l.Level)
		}
		if l.ThresholdMinutes < 0 {
			return EscalationPolicy{}, fmt.Errorf("escalation level %d: threshold must be >= 0", l.Level)
		}
		if l.ThrottleMinutes < 0 {
			return EscalationPolicy{}, fmt.Errorf("escalation level %d: throttle must be >= 0", l.Level)
		}
		if l.PriorityBump < 0 {
			return EscalationPolicy{}, fmt.Errorf("escalation level %d: priority bump must be >= 0", l.Level)
		}
		if !l.StatusOnReach.IsValid() || l.StatusOnReach.IsTerminal() {
			return EscalationPolicy{}, fmt.Errorf("escalation level %d: invalid status %q", l.Level, l.StatusOnReach)
		}
		if i > 0 && l.ThresholdMinutes < sorted[i-1].ThresholdMinutes {
			return EscalationPolicy{}, fmt.Errorf("escalation level %d: threshold below level %d", l.Level, l.Level-1)
		}
		if sorted[i].Severity == "" {
			sorted[i].Severity = SeverityWarning
		}
	}

	return EscalationPolicy{Levels: sorted}, nil
}

// Level returns the level with the given number.
func (p EscalationPolicy) Level(n int) (EscalationLevel, bool) {
	if n < 1 || n > len(p.Levels) {
		return EscalationLevel{}, false
	}
	return p.Levels[n-1], true
}

// MaxLevel is the number of the last level, 0 for an empty policy.
func (p EscalationPolicy) MaxLevel() int { return len(p.Levels) }

// EscalationCutoff selects distributions that may advance from Count to
// Count+1: those due at or before DueBy.
type EscalationCutoff struct {
	Count int
	DueBy time.Time
}

// Cutoffs returns one cutoff per level as of now. Distributions already at
// the top level match none of them.
func (p EscalationPolicy) Cutoffs(now time.Time) []EscalationCutoff {
	out := make([]EscalationCutoff, len(p.Levels))
	for i, l := range p.Levels {
		out[i] = EscalationCutoff{
			Count: l.Level - 1,
			DueBy: now.Add(-time.Duration(l.ThresholdMinutes) * time.Minute),
		}
	}
	return out
}
