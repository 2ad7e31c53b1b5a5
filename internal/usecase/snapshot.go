package usecase

import (
	"strings"
	"time"

	"github.com/riskibarqy/roster-sync/internal/domain/roster"
)

// BuildLastClubGame assembles the snapshot written on the player record.
func BuildLastClubGame(fixture ExternalFixture, trackedTeamID int64, stats PlayerStats) *roster.LastClubGame {
	opponent := strings.TrimSpace(OpponentName(fixture, trackedTeamID))
	if opponent == "" {
		opponent = roster.UnknownOpponent
	}

	out := &roster.LastClubGame{
		Date:        NormalizeMatchDate(fixture.RawDate),
		Opponent:    opponent,
		Competition: strings.TrimSpace(fixture.Competition),
		Minutes:     nonNegative(stats.Minutes),
		Goals:       nonNegative(stats.Goals),
		Assists:     nonNegative(stats.Assists),
	}
	if result, ok := ComputeResult(fixture, trackedTeamID); ok {
		out.Result = result
	}
	return out
}

// nonNegative copies v, dropping negative counts the record schema would reject.
func nonNegative(v *int) *int {
	if v == nil || *v < 0 {
		return nil
	}
	return copyInt(v)
}

// NormalizeMatchDate keeps the calendar date as written by the provider,
// so "2025-11-08T19:00:00+00:00" becomes "2025-11-08".
func NormalizeMatchDate(raw string) string {
	raw = strings.TrimSpace(raw)
	if len(raw) >= len(time.DateOnly) {
		candidate := raw[:len(time.DateOnly)]
		if _, err := time.Parse(time.DateOnly, candidate); err == nil {
			return candidate
		}
	}
	return roster.UnknownDate
}
