package app

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"time"

	"lawjobs/internal/analytics"
	"lawjobs/internal/config"
	"lawjobs/internal/database"
	"lawjobs/internal/database/migration"
	dbpostgres "lawjobs/internal/database/postgres"
	"lawjobs/internal/database/seeder"
	"lawjobs/internal/infrastructure/cache"
	"lawjobs/internal/infrastructure/feed"
	"lawjobs/internal/infrastructure/persistence/postgres"
	"lawjobs/internal/pkg/jwt"
	"lawjobs/internal/repository"
	"lawjobs/internal/usecase/importer"
	"lawjobs/internal/ws"
)

const (
	analyticsWorkers = 2
	analyticsQueue   = 1024
)

// Container owns the long-lived dependencies shared by the server and the
// importer.
type Container struct {
	Config config.Config
	Logger *log.Logger

	DB       database.DB
	Cache    *cache.Redis
	Sessions *cache.SessionStore

	Users     *postgres.UserRepository
	Jobs      repository.JobRepository
	Favorites repository.FavoriteRepository

	Tracker  *analytics.Tracker
	Hub      *ws.Hub
	Notifier *ws.Notifier
	JWT      jwt.Service
}

func NewContainer(ctx context.Context, cfg config.Config, logger *log.Logger) (*Container, error) {
	if logger == nil {
		logger = log.New(os.Stdout, "", log.LstdFlags)
	}

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(connectCtx, cfg.Database)
	if err != nil {
		return nil, err
	}

	c := &Container{Config: cfg, Logger: logger, DB: db}

	c.Cache = cache.NewRedis(cfg.Redis, logger)
	c.Sessions = cache.NewSessionStore(c.Cache)
	c.Jobs = repository.NewPostgresJobRepository(db)
	c.Favorites = repository.NewPostgresFavoriteRepository(db)
	c.Hub = ws.NewHub(logger)
	c.Notifier = ws.NewNotifier(c.Cache, c.Hub, logger)
	c.JWT = jwt.NewHMACService(
		cfg.JWT.Issuer,
		cfg.JWT.AccessSecret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessExpiresIn,
		cfg.JWT.RefreshExpiresIn,
	)
	c.Tracker = analytics.NewTracker(repository.NewPostgresAnalyticsEventRepository(db), analyticsWorkers, analyticsQueue, logger)

	return c, nil
}

// Migrate applies pending schema migrations.
func (c *Container) Migrate(ctx context.Context) error {
	n, err := migration.Runner{Logger: c.Logger}.Run(ctx, c.DB.SQLDB())
	if err != nil {
		return err
	}
	c.Logger.Printf("migrations applied: %d", n)
	return nil
}

func (c *Container) Seed(ctx context.Context) error {
	return seeder.Runner{Seeders: seeder.Defaults(), Logger: c.Logger}.Run(ctx, c.DB)
}

// PrepareUsers prepares the user statements. It needs the users table, so
// call it after Migrate.
func (c *Container) PrepareUsers(ctx context.Context) error {
	users, err := postgres.NewUserRepository(ctx, c.DB)
	if err != nil {
		return err
	}
	c.Users = users
	return nil
}

func (c *Container) Importer() *importer.Service {
	cfg := c.Config.Import
	fetcher := feed.Router{
		JSON:     feed.NewJSONClient(&http.Client{Timeout: 30 * time.Second}, c.Logger),
		HTML:     feed.NewHTMLCollector(c.Logger),
		Headless: feed.NewHeadlessCollector(c.Logger),
	}
	return importer.NewService(
		func() ([]feed.Source, error) { return feed.LoadSources(cfg.SourcesFile) },
		fetcher,
		c.Jobs,
		c.Cache,
		c.Notifier,
		importer.Options{Workers: cfg.Workers, RatePerSec: cfg.RatePerSec},
		c.Logger,
	)
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}

	var errs []error
	if c.Tracker != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := c.Tracker.Close(ctx); err != nil {
			errs = append(errs, err)
		}
		cancel()
	}
	if c.Users != nil {
		if err := c.Users.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if err := c.Cache.Close(); err != nil {
		errs = append(errs, err)
	}
	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
