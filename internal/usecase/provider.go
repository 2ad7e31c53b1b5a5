package usecase

import (
	"context"
	"time"
)

// FootballProvider is the slice of the statistics service the enrichment jobs rely on.
type FootballProvider interface {
	SearchTeams(ctx context.Context, search string) ([]ExternalTeam, error)
	LastCompletedFixtures(ctx context.Context, teamID int64) ([]ExternalFixture, error)
	FixturesBySeason(ctx context.Context, teamID int64, season int) ([]ExternalFixture, error)
	FixturePlayers(ctx context.Context, fixtureID, teamID int64) ([]ExternalTeamPlayers, error)
}

type ExternalTeam struct {
	ExternalID int64
	Name       string
}

// ExternalFixture is read from the provider and discarded within one run.
type ExternalFixture struct {
	ExternalID         int64
	RawDate            string
	KickoffAt          time.Time
	Status             string
	Competition        string
	HomeTeamExternalID int64
	AwayTeamExternalID int64
	HomeTeamName       string
	AwayTeamName       string
	HomeGoals          *int
	AwayGoals          *int
}

type ExternalTeamPlayers struct {
	TeamExternalID int64
	Players        []ExternalPlayerLine
}

type ExternalPlayerLine struct {
	PlayerExternalID int64
	Statistics       []ExternalPlayerStatBlock
}

// ExternalPlayerStatBlock keeps nil for values the provider did not send.
type ExternalPlayerStatBlock struct {
	Minutes *int
	Goals   *int
	Assists *int
}
