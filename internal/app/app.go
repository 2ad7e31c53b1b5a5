package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/jonboulle/clockwork"
	"github.com/riskibarqy/roster-sync/external/apifootball"
	"github.com/riskibarqy/roster-sync/internal/config"
	"github.com/riskibarqy/roster-sync/internal/domain/roster"
	"github.com/riskibarqy/roster-sync/internal/infrastructure/repository/jsonfile"
	"github.com/riskibarqy/roster-sync/internal/observability"
	"github.com/riskibarqy/roster-sync/internal/platform/logging"
	"github.com/riskibarqy/roster-sync/internal/usecase"
)

const shutdownTimeout = 5 * time.Second

// App holds the wired jobs for one process run.
type App struct {
	Config       config.Config
	Roster       *jsonfile.RosterRepository
	Provider     *apifootball.Client
	TeamIDSync   *usecase.TeamIDSyncService
	LastGameSync *usecase.LastGameSyncService
}

// JobFunc runs one job against a wired App.
type JobFunc func(ctx context.Context, a *App) (usecase.RunSummary, error)

func New(cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}

	overrides, err := roster.LoadTeamNameOverrides(cfg.TeamOverridesPath)
	if err != nil {
		return nil, crerr.Wrap(err, "load team name overrides")
	}

	repo := jsonfile.NewRosterRepository(cfg.RosterPath, logger.Named("roster"))
	provider := apifootball.NewClient(apifootball.ClientConfig{
		BaseURL:    cfg.APIFootballBaseURL,
		APIKey:     cfg.FootballAPIKey,
		Timeout:    cfg.APIFootballTimeout,
		MaxRetries: cfg.APIFootballMaxRetries,
		Logger:     logger.Named("api-football"),
	})

	return &App{
		Config:     cfg,
		Roster:     repo,
		Provider:   provider,
		TeamIDSync: usecase.NewTeamIDSyncService(repo, usecase.NewTeamResolver(provider, overrides, logger), logger),
		LastGameSync: usecase.NewLastGameSyncService(
			repo,
			usecase.NewFixtureResolver(provider, clockwork.NewRealClock(), logger),
			usecase.NewPlayerStatsExtractor(provider, logger),
			logger,
		),
	}, nil
}

// Main is the entry point shared by the job binaries. It returns the process exit code.
func Main(job string, run JobFunc) int {
	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", job, err)
		return 1
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: load config: %v\n", job, err)
		return 1
	}

	logger := logging.New(cfg.LogFormat, cfg.LogLevel).Named(job)
	logging.SetDefault(logger)
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return Execute(ctx, cfg, logger, job, run)
}

// Execute wires the App, runs the job and flushes telemetry. Any error is logged and mapped to exit code 1.
func Execute(ctx context.Context, cfg config.Config, logger *logging.Logger, job string, run JobFunc) int {
	if logger == nil {
		logger = logging.Default()
	}

	shutdown, err := observability.InitUptrace(cfg, logger)
	if err != nil {
		logger.Error("init uptrace", "error", err)
		return 1
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := shutdown(flushCtx); err != nil {
			logger.Warn("flush telemetry", "error", err)
		}
	}()

	application, err := New(cfg, logger)
	if err != nil {
		logger.Error("build app", "job", job, "error", err)
		return 1
	}

	summary, err := run(ctx, application)
	if err != nil {
		logger.ErrorContext(ctx, "job failed", "job", job, "error", err)
		return 1
	}

	logger.InfoContext(ctx, "job finished", append(summary.LogArgs(), "path", application.Roster.Path())...)
	return 0
}

func FetchAPIIDs(ctx context.Context, a *App) (usecase.RunSummary, error) {
	return a.TeamIDSync.Run(ctx)
}

func UpdateLastGames(ctx context.Context, a *App) (usecase.RunSummary, error) {
	return a.LastGameSync.Run(ctx)
}
