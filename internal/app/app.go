package app

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	"go.opentelemetry.io/otel/attribute"

	"github.com/courtdata/courtsync/internal/config"
	"github.com/courtdata/courtsync/internal/infrastructure/repository/postgres"
	idgen "github.com/courtdata/courtsync/internal/platform/id"
	"github.com/courtdata/courtsync/internal/platform/logging"
	"github.com/courtdata/courtsync/internal/usecase"
)

// App wires repositories and services around a shared database handle.
type App struct {
	Config       config.Config
	Logger       *logging.Logger
	DB           *sqlx.DB
	Resolver     *usecase.ResolverService
	Tracker      *usecase.SyncTrackerService
	Pipeline     *usecase.PipelineService
	Completeness *usecase.CompletenessService
}

func New(cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}

	db, err := otelsqlx.Connect("postgres", cfg.DBURL,
		otelsql.WithAttributes(attribute.String("db.system", "postgresql")),
		otelsql.WithDBName(dbNameFromURL(cfg.DBURL)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	playerRepo := postgres.NewPlayerRepository(db)
	teamRepo := postgres.NewTeamRepository(db)
	gameRepo := postgres.NewGameRepository(db)
	seasonRepo := postgres.NewSeasonRepository(db)
	statsRepo := postgres.NewStatsRepository(db)
	pbpRepo := postgres.NewPBPRepository(db)
	rawRepo := postgres.NewRawDataRepository(db)

	generator := idgen.NewRandomGenerator()

	resolver := usecase.NewResolverService(playerRepo, teamRepo, generator, logger)
	tracker := usecase.NewSyncTrackerService(gameRepo, logger)
	pipeline := usecase.NewPipelineService(
		resolver,
		tracker,
		teamRepo,
		gameRepo,
		seasonRepo,
		statsRepo,
		pbpRepo,
		rawRepo,
		generator,
		logger,
	)
	completeness := usecase.NewCompletenessService(playerRepo, teamRepo, gameRepo, logger)

	return &App{
		Config:       cfg,
		Logger:       logger,
		DB:           db,
		Resolver:     resolver,
		Tracker:      tracker,
		Pipeline:     pipeline,
		Completeness: completeness,
	}, nil
}

func (a *App) Close() error {
	if a == nil || a.DB == nil {
		return nil
	}
	return a.DB.Close()
}
