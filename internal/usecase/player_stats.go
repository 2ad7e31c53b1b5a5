package usecase

import (
	"context"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/roster-sync/internal/platform/logging"
	"go.opentelemetry.io/otel/attribute"
)

// PlayerStats holds one player's line for a fixture. Nil means unknown; zero means recorded as zero.
type PlayerStats struct {
	Found   bool
	Minutes *int
	Goals   *int
	Assists *int
}

type PlayerStatsExtractor struct {
	provider FootballProvider
	logger   *logging.Logger
}

func NewPlayerStatsExtractor(provider FootballProvider, logger *logging.Logger) *PlayerStatsExtractor {
	if logger == nil {
		logger = logging.Default()
	}
	return &PlayerStatsExtractor{provider: provider, logger: logger}
}

func (e *PlayerStatsExtractor) ExtractStats(ctx context.Context, fixtureID, teamID, playerID int64) (PlayerStats, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerStatsExtractor.ExtractStats",
		attribute.Int64("fixture_id", fixtureID),
		attribute.Int64("team_id", teamID),
		attribute.Int64("player_id", playerID),
	)
	defer span.End()

	blocks, err := e.provider.FixturePlayers(ctx, fixtureID, teamID)
	if err != nil {
		return PlayerStats{}, crerr.Wrapf(err, "fetch fixture players fixture_id=%d team_id=%d", fixtureID, teamID)
	}

	stats := FindPlayerStats(blocks, playerID)
	if !stats.Found {
		e.logger.DebugContext(ctx, "player not in fixture participant list",
			"fixture_id", fixtureID,
			"team_id", teamID,
			"player_id", playerID,
		)
	}
	return stats, nil
}

// FindPlayerStats reads the first team block and the player's first statistics block.
func FindPlayerStats(blocks []ExternalTeamPlayers, playerID int64) PlayerStats {
	if len(blocks) == 0 || playerID <= 0 {
		return PlayerStats{}
	}

	for _, line := range blocks[0].Players {
		if line.PlayerExternalID != playerID {
			continue
		}
		out := PlayerStats{Found: true}
		if len(line.Statistics) == 0 {
			return out
		}
		first := line.Statistics[0]
		out.Minutes = copyInt(first.Minutes)
		out.Goals = copyInt(first.Goals)
		out.Assists = copyInt(first.Assists)
		return out
	}
	return PlayerStats{}
}

func copyInt(v *int) *int {
	if v == nil {
		return nil
	}
	out := *v
	return &out
}
