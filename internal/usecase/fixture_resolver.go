package usecase

import (
	"context"
	"sort"
	"strconv"

	crerr "github.com/cockroachdb/errors"
	"github.com/jonboulle/clockwork"
	"github.com/riskibarqy/roster-sync/internal/platform/cache"
	"github.com/riskibarqy/roster-sync/internal/platform/logging"
	"go.opentelemetry.io/otel/attribute"
)

// FixtureTier names one strategy of the last-fixture fallback chain.
type FixtureTier string

const (
	TierLastCompleted  FixtureTier = "last_completed"
	TierCurrentSeason  FixtureTier = "current_season"
	TierPreviousSeason FixtureTier = "previous_season"
)

type ResolvedFixture struct {
	Fixture ExternalFixture
	Tier    FixtureTier
}

type fixtureLookup struct {
	resolved ResolvedFixture
	found    bool
}

// FixtureResolver finds a team's most recent fixture, trying the completed-status shortcut first
// and then scanning the current and previous seasons.
type FixtureResolver struct {
	provider FootballProvider
	clock    clockwork.Clock
	lookups  *cache.Store[fixtureLookup]
	logger   *logging.Logger
}

func NewFixtureResolver(provider FootballProvider, clock clockwork.Clock, logger *logging.Logger) *FixtureResolver {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &FixtureResolver{
		provider: provider,
		clock:    clock,
		lookups:  cache.NewStore[fixtureLookup](),
		logger:   logger,
	}
}

func (r *FixtureResolver) ResolveLastFixture(ctx context.Context, teamID int64) (ResolvedFixture, bool, error) {
	if teamID <= 0 {
		return ResolvedFixture{}, false, crerr.Wrap(ErrInvalidInput, "team id must be greater than zero")
	}

	ctx, span := startUsecaseSpan(ctx, "usecase.FixtureResolver.ResolveLastFixture", attribute.Int64("team_id", teamID))
	defer span.End()

	lookup, err := r.lookups.GetOrLoad(ctx, strconv.FormatInt(teamID, 10), func(ctx context.Context) (fixtureLookup, error) {
		return r.resolve(ctx, teamID)
	})
	if err != nil {
		return ResolvedFixture{}, false, err
	}
	if lookup.found {
		span.SetAttributes(attribute.String("tier", string(lookup.resolved.Tier)))
	}
	return lookup.resolved, lookup.found, nil
}

func (r *FixtureResolver) resolve(ctx context.Context, teamID int64) (fixtureLookup, error) {
	completed, err := r.provider.LastCompletedFixtures(ctx, teamID)
	if err != nil {
		return fixtureLookup{}, crerr.Wrapf(err, "fetch last completed fixture team_id=%d", teamID)
	}
	if len(completed) > 0 {
		return found(completed[0], TierLastCompleted), nil
	}

	currentYear := r.clock.Now().Year()
	seasons := []struct {
		year int
		tier FixtureTier
	}{
		{year: currentYear, tier: TierCurrentSeason},
		{year: currentYear - 1, tier: TierPreviousSeason},
	}
	for _, season := range seasons {
		fixtures, err := r.provider.FixturesBySeason(ctx, teamID, season.year)
		if err != nil {
			return fixtureLookup{}, crerr.Wrapf(err, "fetch fixtures team_id=%d season=%d", teamID, season.year)
		}
		if latest, ok := LatestFixture(fixtures); ok {
			return found(latest, season.tier), nil
		}
		r.logger.WarnContext(ctx, "no fixtures for team in season", "team_id", teamID, "season", season.year)
	}

	return fixtureLookup{}, nil
}

func found(fixture ExternalFixture, tier FixtureTier) fixtureLookup {
	return fixtureLookup{resolved: ResolvedFixture{Fixture: fixture, Tier: tier}, found: true}
}

// LatestFixture orders by kickoff, newest first. Ties keep the provider's response order and
// fixtures without a parseable kickoff sort last.
func LatestFixture(fixtures []ExternalFixture) (ExternalFixture, bool) {
	if len(fixtures) == 0 {
		return ExternalFixture{}, false
	}

	sorted := make([]ExternalFixture, len(fixtures))
	copy(sorted, fixtures)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].KickoffAt.After(sorted[j].KickoffAt)
	})
	return sorted[0], true
}
