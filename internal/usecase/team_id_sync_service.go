package usecase

import (
	"context"
	"strings"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/roster-sync/internal/domain/roster"
	"github.com/riskibarqy/roster-sync/internal/platform/logging"
	"go.opentelemetry.io/otel/attribute"
)

const JobFetchAPIIDs = "fetch-api-ids"

// TeamIDSyncService backfills apiTeamId from each record's club name.
type TeamIDSyncService struct {
	repo     roster.Repository
	resolver *TeamResolver
	logger   *logging.Logger
}

func NewTeamIDSyncService(repo roster.Repository, resolver *TeamResolver, logger *logging.Logger) *TeamIDSyncService {
	if logger == nil {
		logger = logging.Default()
	}
	return &TeamIDSyncService{repo: repo, resolver: resolver, logger: logger}
}

func (s *TeamIDSyncService) Run(ctx context.Context) (RunSummary, error) {
	summary := newRunSummary(JobFetchAPIIDs)

	ctx, span := startUsecaseSpan(ctx, "usecase.TeamIDSyncService.Run")
	defer span.End()

	s.logger.InfoContext(ctx, "reading roster")
	records, err := s.repo.Load(ctx)
	if err != nil {
		return summary, crerr.Wrap(err, "load roster")
	}

	updated := make([]roster.Record, 0, len(records))
	for _, rec := range records {
		out, stage, err := s.process(ctx, rec)
		if err != nil {
			return summary, crerr.Wrapf(err, "resolve team id for %s", rec.DisplayName())
		}
		summary.record(stage)
		updated = append(updated, out)
	}

	s.logger.InfoContext(ctx, "writing roster with api ids", "records", len(updated))
	if err := s.repo.Save(ctx, updated); err != nil {
		return summary, crerr.Wrap(err, "save roster")
	}

	s.logger.InfoContext(ctx, "done fetching api ids", summary.LogArgs()...)
	return summary, nil
}

func (s *TeamIDSyncService) process(ctx context.Context, rec roster.Record) (roster.Record, Stage, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamIDSyncService.process", attribute.String("player", rec.DisplayName()))
	defer span.End()

	if strings.TrimSpace(rec.ClubTeam) == "" {
		s.logger.WarnContext(ctx, "player has no clubTeam, skipping", "player", rec.DisplayName())
		return rec, StageSkippedNoClub, nil
	}
	if rec.APITeamID != nil && *rec.APITeamID > 0 {
		return rec, StageSkippedAlreadyKnown, nil
	}

	teamID, ok, err := s.resolver.ResolveTeamID(ctx, rec.ClubTeam)
	if err != nil {
		return rec, StagePending, err
	}
	if !ok {
		return rec, StageSkippedTeamNotFound, nil
	}
	return roster.MergeExternalIDs(rec, &teamID), StageMerged, nil
}
