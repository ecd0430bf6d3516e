// Package progress derives performance tiers and achievements from a
// learner's activity snapshot. Nothing here is persisted; a Report is
// recomputed on every read.
package progress

import (
	"context"
	"time"
)

// Snapshot is the read-only activity summary for one learner.
type Snapshot struct {
	TotalNotes    int        `json:"total_notes"`
	TotalQuizzes  int        `json:"total_quizzes"`
	TotalAttempts int        `json:"total_attempts"`
	AverageScore  float64    `json:"average_score"`
	LastActivity  *time.Time `json:"last_activity,omitempty"`
}

// Source loads a learner's snapshot.
type Source interface {
	Progress(ctx context.Context, userID string) (Snapshot, error)
}

// Tier is a performance band for an average score.
type Tier string

const (
	TierExcellent        Tier = "excellent"
	TierGood             Tier = "good"
	TierFair             Tier = "fair"
	TierNeedsImprovement Tier = "needs_improvement"
)

// TierFor maps a score in [0,100] to its tier. Lower bounds are inclusive.
func TierFor(score float64) Tier {
	switch {
	case score >= 80:
		return TierExcellent
	case score >= 60:
		return TierGood
	case score >= 40:
		return TierFair
	default:
		return TierNeedsImprovement
	}
}

// DisplayName returns a human-readable label for the tier.
func (t Tier) DisplayName() string {
	switch t {
	case TierExcellent:
		return "Excellent"
	case TierGood:
		return "Good"
	case TierFair:
		return "Fair"
	case TierNeedsImprovement:
		return "Needs Improvement"
	default:
		return string(t)
	}
}

// Report is the derived view of a snapshot.
type Report struct {
	Snapshot Snapshot
	Tier     Tier
	Unlocked []Achievement

	// HasAttempts is false when no quiz was ever scored; the score panel is
	// hidden in that case.
	HasAttempts bool
}

// Evaluate computes the tier and unlocked achievements for s.
func Evaluate(s Snapshot) Report {
	r := Report{
		Snapshot:    s,
		Tier:        TierFor(s.AverageScore),
		HasAttempts: s.TotalAttempts > 0,
	}
	for _, a := range AllAchievements() {
		if a.Unlocked(s) {
			r.Unlocked = append(r.Unlocked, a)
		}
	}
	return r
}

// IsUnlocked reports whether a is in the report's unlocked set.
func (r Report) IsUnlocked(a Achievement) bool {
	for _, u := range r.Unlocked {
		if u == a {
			return true
		}
	}
	return false
}
