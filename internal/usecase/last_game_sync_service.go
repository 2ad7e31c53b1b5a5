package usecase

import (
	"context"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/roster-sync/internal/domain/roster"
	"github.com/riskibarqy/roster-sync/internal/platform/logging"
	"go.opentelemetry.io/otel/attribute"
)

const JobUpdateLastGames = "update-last-games"

type LastGameSyncService struct {
	repo      roster.Repository
	fixtures  *FixtureResolver
	extractor *PlayerStatsExtractor
	logger    *logging.Logger
}

func NewLastGameSyncService(
	repo roster.Repository,
	fixtures *FixtureResolver,
	extractor *PlayerStatsExtractor,
	logger *logging.Logger,
) *LastGameSyncService {
	if logger == nil {
		logger = logging.Default()
	}
	return &LastGameSyncService{
		repo:      repo,
		fixtures:  fixtures,
		extractor: extractor,
		logger:    logger,
	}
}

// lastGameAttempt carries one record through the stage chain.
type lastGameAttempt struct {
	record   roster.Record
	stage    Stage
	teamID   int64
	playerID int64
	fixture  ResolvedFixture
	stats    PlayerStats
	snapshot *roster.LastClubGame
}

// Run reads the roster once, enriches records one at a time in file order and writes the roster
// once at the end. Any error aborts before the write.
func (s *LastGameSyncService) Run(ctx context.Context) (RunSummary, error) {
	summary := newRunSummary(JobUpdateLastGames)

	ctx, span := startUsecaseSpan(ctx, "usecase.LastGameSyncService.Run")
	defer span.End()

	s.logger.InfoContext(ctx, "reading roster")
	records, err := s.repo.Load(ctx)
	if err != nil {
		return summary, crerr.Wrap(err, "load roster")
	}

	updated := make([]roster.Record, 0, len(records))
	for _, rec := range records {
		attempt, err := s.process(ctx, rec)
		if err != nil {
			return summary, crerr.Wrapf(err, "update last club game for %s", rec.DisplayName())
		}
		summary.record(attempt.stage)
		updated = append(updated, attempt.record)
	}

	s.logger.InfoContext(ctx, "writing roster", "records", len(updated))
	if err := s.repo.Save(ctx, updated); err != nil {
		return summary, crerr.Wrap(err, "save roster")
	}

	s.logger.InfoContext(ctx, "done updating last club games", summary.LogArgs()...)
	return summary, nil
}

func (s *LastGameSyncService) process(ctx context.Context, rec roster.Record) (lastGameAttempt, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LastGameSyncService.process", attribute.String("player", rec.DisplayName()))
	defer span.End()

	attempt := lastGameAttempt{record: rec, stage: StagePending}
	for !attempt.stage.Terminal() {
		if err := ctx.Err(); err != nil {
			return attempt, err
		}
		next, err := s.step(ctx, &attempt)
		if err != nil {
			return attempt, err
		}
		attempt.stage = next
	}
	span.SetAttributes(attribute.String("stage", string(attempt.stage)))
	return attempt, nil
}

func (s *LastGameSyncService) step(ctx context.Context, a *lastGameAttempt) (Stage, error) {
	switch a.stage {
	case StagePending:
		return s.checkIdentifiers(ctx, a), nil
	case StageIdentifiersKnown:
		return s.findFixture(ctx, a)
	case StageFixtureFound:
		return s.extractStats(ctx, a)
	case StageStatsExtracted:
		return s.merge(ctx, a), nil
	default:
		return a.stage, crerr.Newf("no transition from stage %q", a.stage)
	}
}

func (s *LastGameSyncService) checkIdentifiers(ctx context.Context, a *lastGameAttempt) Stage {
	if !a.record.HasExternalIDs() {
		s.logger.WarnContext(ctx, "skipping player, missing apiPlayerId or apiTeamId", "player", a.record.DisplayName())
		return StageSkippedNoIdentifiers
	}
	a.teamID = *a.record.APITeamID
	a.playerID = *a.record.APIPlayerID
	return StageIdentifiersKnown
}

func (s *LastGameSyncService) findFixture(ctx context.Context, a *lastGameAttempt) (Stage, error) {
	s.logger.InfoContext(ctx, "fetching latest fixture", "player", a.record.DisplayName(), "team_id", a.teamID)

	resolved, ok, err := s.fixtures.ResolveLastFixture(ctx, a.teamID)
	if err != nil {
		return a.stage, err
	}
	if !ok {
		s.logger.WarnContext(ctx, "no recent fixtures found", "player", a.record.DisplayName(), "team_id", a.teamID)
		return StageSkippedNoFixture, nil
	}
	a.fixture = resolved
	return StageFixtureFound, nil
}

func (s *LastGameSyncService) extractStats(ctx context.Context, a *lastGameAttempt) (Stage, error) {
	fixtureID := a.fixture.Fixture.ExternalID
	if fixtureID <= 0 {
		return StageStatsExtracted, nil
	}

	stats, err := s.extractor.ExtractStats(ctx, fixtureID, a.teamID, a.playerID)
	if err != nil {
		return a.stage, err
	}
	if !stats.Found {
		s.logger.WarnContext(ctx, "player not found in fixture, keeping match-level fields only",
			"player", a.record.DisplayName(),
			"fixture_id", fixtureID,
		)
	}
	a.stats = stats
	return StageStatsExtracted, nil
}

func (s *LastGameSyncService) merge(ctx context.Context, a *lastGameAttempt) Stage {
	a.snapshot = BuildLastClubGame(a.fixture.Fixture, a.teamID, a.stats)
	a.record = roster.MergeLastClubGame(a.record, a.snapshot)

	s.logger.InfoContext(ctx, "built last club game",
		"player", a.record.DisplayName(),
		"tier", a.fixture.Tier,
		"date", a.snapshot.Date,
		"opponent", a.snapshot.Opponent,
		"result", a.snapshot.Result,
	)
	return StageMerged
}
