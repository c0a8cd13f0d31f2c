package app

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"lawjobs/internal/config"
	"lawjobs/internal/delivery/http/handler"
	"lawjobs/internal/delivery/http/middleware"
	"lawjobs/internal/delivery/http/routes"
	v1 "lawjobs/internal/delivery/http/routes/v1"
	"lawjobs/internal/usecase"
	"lawjobs/internal/ws"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
)

type App struct {
	Fiber *fiber.App
}

// New builds the HTTP app on top of an initialised container.
func New(c *Container) *App {
	cfg := c.Config
	// Query values outlive the request in analytics events and saved sessions.
	f := fiber.New(fiber.Config{AppName: cfg.App.AppName, Immutable: true})

	registerGlobalMiddleware(f, cfg, c.Logger)
	newRegistry(c).Register(f)

	return &App{Fiber: f}
}

// Bootstrap connects every dependency, applies migrations, starts the
// background workers and returns the app with a cleanup func.
func Bootstrap(ctx context.Context, cfg config.Config, logger *log.Logger) (*App, func() error, error) {
	c, err := NewContainer(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	migCtx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()
	if err := c.Migrate(migCtx); err != nil {
		_ = c.Close()
		return nil, nil, fmt.Errorf("migrate: %w", err)
	}
	if err := c.PrepareUsers(ctx); err != nil {
		_ = c.Close()
		return nil, nil, fmt.Errorf("prepare users: %w", err)
	}

	bgCtx, stop := context.WithCancel(context.Background())
	c.Tracker.Start()
	go c.Hub.Run(bgCtx)
	go func() {
		if err := c.Notifier.Relay(bgCtx); err != nil && bgCtx.Err() == nil {
			c.Logger.Printf("WS relay stopped | error=%v", err)
		}
	}()

	cleanup := func() error {
		stop()
		return c.Close()
	}
	return New(c), cleanup, nil
}

func newRegistry(c *Container) *routes.Registry {
	cfg := c.Config
	authMw := middleware.NewAuthMiddleware(c.JWT)

	boardUC := usecase.NewBoardUsecase(c.Jobs, c.Favorites, c.Cache, c.Sessions, c.Tracker, cfg.Board.DefaultState, c.Logger)
	favoritesUC := usecase.NewFavoritesUsecase(c.Jobs, c.Favorites, c.Cache, c.Notifier, c.Tracker, c.Logger)
	sessionUC := usecase.NewSessionUsecase(c.Sessions, c.Logger)
	authUC := usecase.NewAuthUsecase(c.Users, c.JWT)
	userUC := usecase.NewUserUsecase(c.Users)

	events := ws.NewHandler(c.Hub, authMw, cfg.App.CORSOrigins, c.Logger)

	return routes.NewRegistry(
		handler.NewHealthHandler(c.DB, c.Cache),
		events.HandleEvents,
		v1.Handlers{
			Auth:      handler.NewAuthHandler(authUC),
			Users:     handler.NewUserHandler(userUC),
			Jobs:      handler.NewJobsHandler(boardUC),
			Favorites: handler.NewFavoritesHandler(favoritesUC),
			Session:   handler.NewSessionHandler(sessionUC),
			AuthMw:    authMw,
		},
	)
}

func registerGlobalMiddleware(app *fiber.App, cfg config.Config, logger *log.Logger) {
	if app == nil {
		return
	}

	errMw := middleware.NewErrorMiddleware(logger)
	app.Use(errMw.Middleware())

	accessMw := middleware.NewAccessLogMiddleware(logger, "/health")
	app.Use(accessMw.Middleware())

	corsCfg := cors.Config{
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.HeaderRequestID},
	}
	if len(cfg.App.CORSOrigins) > 0 {
		corsCfg.AllowOrigins = cfg.App.CORSOrigins
		corsCfg.AllowCredentials = true
	}
	app.Use(cors.New(corsCfg))
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
