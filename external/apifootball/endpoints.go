package apifootball

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/roster-sync/internal/usecase"
)

var _ usecase.FootballProvider = (*Client)(nil)

func (c *Client) SearchTeams(ctx context.Context, search string) ([]usecase.ExternalTeam, error) {
	search = strings.TrimSpace(search)
	if search == "" {
		return nil, crerr.Wrap(usecase.ErrInvalidInput, "team search term is required")
	}

	var out envelope[teamItem]
	if err := c.Get(ctx, "/teams?search="+url.QueryEscape(search), &out); err != nil {
		return nil, err
	}

	teams := make([]usecase.ExternalTeam, 0, len(out.Response))
	for _, item := range out.Response {
		teams = append(teams, usecase.ExternalTeam{
			ExternalID: item.Team.ID,
			Name:       strings.TrimSpace(item.Team.Name),
		})
	}
	return teams, nil
}

// LastCompletedFixtures asks for the single most recent full-time fixture.
func (c *Client) LastCompletedFixtures(ctx context.Context, teamID int64) ([]usecase.ExternalFixture, error) {
	return c.fixtures(ctx, fmt.Sprintf("/fixtures?team=%d&last=1&status=FT", teamID))
}

func (c *Client) FixturesBySeason(ctx context.Context, teamID int64, season int) ([]usecase.ExternalFixture, error) {
	return c.fixtures(ctx, fmt.Sprintf("/fixtures?team=%d&season=%d", teamID, season))
}

func (c *Client) fixtures(ctx context.Context, pathWithQuery string) ([]usecase.ExternalFixture, error) {
	var out envelope[fixtureItem]
	if err := c.Get(ctx, pathWithQuery, &out); err != nil {
		return nil, err
	}

	fixtures := make([]usecase.ExternalFixture, 0, len(out.Response))
	for _, item := range out.Response {
		fixtures = append(fixtures, mapFixture(item))
	}
	return fixtures, nil
}

func (c *Client) FixturePlayers(ctx context.Context, fixtureID, teamID int64) ([]usecase.ExternalTeamPlayers, error) {
	var out envelope[fixturePlayersItem]
	if err := c.Get(ctx, fmt.Sprintf("/fixtures/players?fixture=%d&team=%d", fixtureID, teamID), &out); err != nil {
		return nil, err
	}

	blocks := make([]usecase.ExternalTeamPlayers, 0, len(out.Response))
	for _, item := range out.Response {
		block := usecase.ExternalTeamPlayers{
			TeamExternalID: item.Team.ID,
			Players:        make([]usecase.ExternalPlayerLine, 0, len(item.Players)),
		}
		for _, line := range item.Players {
			stats := make([]usecase.ExternalPlayerStatBlock, 0, len(line.Statistics))
			for _, s := range line.Statistics {
				stats = append(stats, usecase.ExternalPlayerStatBlock{
					Minutes: s.Games.Minutes.Ptr(),
					Goals:   s.Goals.Total.Ptr(),
					Assists: s.Goals.Assists.Ptr(),
				})
			}
			block.Players = append(block.Players, usecase.ExternalPlayerLine{
				PlayerExternalID: line.Player.ID,
				Statistics:       stats,
			})
		}
		blocks = append(blocks, block)
	}
	return blocks, nil
}

func mapFixture(item fixtureItem) usecase.ExternalFixture {
	return usecase.ExternalFixture{
		ExternalID:         item.Fixture.ID,
		RawDate:            item.Fixture.Date,
		KickoffAt:          parseKickoff(item.Fixture.Date),
		Status:             strings.TrimSpace(item.Fixture.Status.Short),
		Competition:        strings.TrimSpace(item.League.Name),
		HomeTeamExternalID: item.Teams.Home.ID,
		HomeTeamName:       strings.TrimSpace(item.Teams.Home.Name),
		AwayTeamExternalID: item.Teams.Away.ID,
		AwayTeamName:       strings.TrimSpace(item.Teams.Away.Name),
		HomeGoals:          item.Goals.Home.Ptr(),
		AwayGoals:          item.Goals.Away.Ptr(),
	}
}

// parseKickoff returns the zero time when the provider date is unusable, which sorts it last.
func parseKickoff(raw string) time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", time.DateOnly} {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return parsed.UTC()
		}
	}
	return time.Time{}
}
