package usecase

import "fmt"

const (
	ResultWin  = "W"
	ResultLoss = "L"
	ResultDraw = "D"
)

// ComputeResult labels the fixture from the tracked team's side, e.g. "W 2-1". Both goal counts
// must be known and non-negative; otherwise the result stays empty.
func ComputeResult(fixture ExternalFixture, trackedTeamID int64) (string, bool) {
	teamGoals, oppGoals := fixture.AwayGoals, fixture.HomeGoals
	if IsHomeTeam(fixture, trackedTeamID) {
		teamGoals, oppGoals = fixture.HomeGoals, fixture.AwayGoals
	}
	if teamGoals == nil || oppGoals == nil || *teamGoals < 0 || *oppGoals < 0 {
		return "", false
	}

	letter := ResultDraw
	switch {
	case *teamGoals > *oppGoals:
		letter = ResultWin
	case *teamGoals < *oppGoals:
		letter = ResultLoss
	}
	return fmt.Sprintf("%s %d-%d", letter, *teamGoals, *oppGoals), true
}

func IsHomeTeam(fixture ExternalFixture, trackedTeamID int64) bool {
	return fixture.HomeTeamExternalID != 0 && fixture.HomeTeamExternalID == trackedTeamID
}

func OpponentName(fixture ExternalFixture, trackedTeamID int64) string {
	if IsHomeTeam(fixture, trackedTeamID) {
		return fixture.AwayTeamName
	}
	return fixture.HomeTeamName
}
