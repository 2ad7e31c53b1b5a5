// Command update-last-games refreshes lastClubGame for every roster record that carries both
// API-Football ids.
package main

import (
	"os"

	"github.com/riskibarqy/roster-sync/internal/app"
	"github.com/riskibarqy/roster-sync/internal/usecase"
)

func main() {
	os.Exit(app.Main(usecase.JobUpdateLastGames, app.UpdateLastGames))
}
