// Command fetch-api-ids backfills apiTeamId on every roster record whose club is known but not yet
// resolved against API-Football.
package main

import (
	"os"

	"github.com/riskibarqy/roster-sync/internal/app"
	"github.com/riskibarqy/roster-sync/internal/usecase"
)

func main() {
	os.Exit(app.Main(usecase.JobFetchAPIIDs, app.FetchAPIIDs))
}
