package models

import (
	"math"

	"github.com/google/uuid"
)

// LeaderboardEntry is one ranked row on a challenge page. Every participant
// appears, including those with no logs yet.
type LeaderboardEntry struct {
	UserID  uuid.UUID `json:"userId"`
	Name    string    `json:"name"`
	Total   int       `json:"total"`
	Percent int       `json:"percent"`
	Rank    int       `json:"rank"`
}

// ChallengeSummary is one dashboard row: a challenge plus the viewer's
// standing in it.
type ChallengeSummary struct {
	Challenge     Challenge
	Total         int
	Percent       int
	DaysRemaining int
	Participants  int
}

// ProgressPercent is min(round(total/goal*100), 100), clamped at 0.
// A goal of zero reports no progress rather than dividing.
func ProgressPercent(total, goal int) int {
	if goal <= 0 {
		return 0
	}
	pct := int(math.Round(float64(total) / float64(goal) * 100))
	if pct > 100 {
		return 100
	}
	if pct < 0 {
		return 0
	}
	return pct
}
