package usecase

import (
	"context"
	"strings"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/roster-sync/internal/domain/roster"
	"github.com/riskibarqy/roster-sync/internal/platform/cache"
	"github.com/riskibarqy/roster-sync/internal/platform/logging"
	"go.opentelemetry.io/otel/attribute"
)

type teamLookup struct {
	team  ExternalTeam
	found bool
}

// TeamResolver maps a curator club name to the provider's team id.
type TeamResolver struct {
	provider  FootballProvider
	overrides roster.TeamNameOverrides
	lookups   *cache.Store[teamLookup]
	logger    *logging.Logger
}

func NewTeamResolver(provider FootballProvider, overrides roster.TeamNameOverrides, logger *logging.Logger) *TeamResolver {
	if logger == nil {
		logger = logging.Default()
	}
	if overrides == nil {
		overrides = roster.DefaultTeamNameOverrides()
	}
	return &TeamResolver{
		provider:  provider,
		overrides: overrides,
		lookups:   cache.NewStore[teamLookup](),
		logger:    logger,
	}
}

// SearchTerm applies the override table.
func (r *TeamResolver) SearchTerm(clubName string) string {
	return r.overrides.SearchTerm(clubName)
}

// ResolveTeamID returns the first search hit. An empty result is reported as not found, not as an error.
func (r *TeamResolver) ResolveTeamID(ctx context.Context, clubName string) (int64, bool, error) {
	clubName = strings.TrimSpace(clubName)
	if clubName == "" {
		return 0, false, crerr.Wrap(ErrInvalidInput, "club name is required")
	}
	search := r.SearchTerm(clubName)

	ctx, span := startUsecaseSpan(ctx, "usecase.TeamResolver.ResolveTeamID", attribute.String("search", search))
	defer span.End()

	lookup, err := r.lookups.GetOrLoad(ctx, search, func(ctx context.Context) (teamLookup, error) {
		teams, err := r.provider.SearchTeams(ctx, search)
		if err != nil {
			return teamLookup{}, crerr.Wrapf(err, "search team %q", search)
		}
		if len(teams) == 0 {
			return teamLookup{}, nil
		}
		return teamLookup{team: teams[0], found: true}, nil
	})
	if err != nil {
		return 0, false, err
	}

	if !lookup.found || lookup.team.ExternalID <= 0 {
		r.logger.WarnContext(ctx, "no team found", "club_team", clubName, "search", search)
		return 0, false, nil
	}

	r.logger.InfoContext(ctx, "team found",
		"club_team", clubName,
		"team_name", lookup.team.Name,
		"team_id", lookup.team.ExternalID,
	)
	return lookup.team.ExternalID, true, nil
}
