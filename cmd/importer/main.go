package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"lawjobs/internal/app"
	"lawjobs/internal/config"
	"lawjobs/internal/scheduler"
)

func main() {
	once := flag.Bool("once", false, "run one import and exit")
	watch := flag.Bool("watch", false, "run imports on IMPORT_SCHEDULE until interrupted")
	migrate := flag.Bool("migrate", false, "apply database migrations")
	seed := flag.Bool("seed", false, "insert the demo user and sample jobs")
	flag.Parse()

	if !*once && !*watch && !*migrate && !*seed {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if *watch {
		if err := scheduler.Validate(cfg.Import.Schedule); err != nil {
			log.Fatalf("invalid IMPORT_SCHEDULE %q: %v", cfg.Import.Schedule, err)
		}
	}

	logger := log.New(os.Stdout, "", log.LstdFlags)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	c, err := app.NewContainer(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("failed to init container: %v", err)
	}
	defer func() {
		_ = c.Close()
	}()

	if *migrate {
		migCtx, cancel := context.WithTimeout(ctx, 2*time.Minute)
		err := c.Migrate(migCtx)
		cancel()
		if err != nil {
			log.Fatalf("migration failed: %v", err)
		}
	}

	if *seed {
		if err := c.Seed(ctx); err != nil {
			log.Fatalf("seed failed: %v", err)
		}
	}

	svc := c.Importer()

	switch {
	case *watch:
		s := scheduler.New(svc, cfg.Import.Schedule, logger)
		if err := s.Start(ctx); err != nil {
			log.Fatalf("scheduler failed: %v", err)
		}
		<-ctx.Done()
		s.Stop()
	case *once:
		runCtx, cancel := context.WithTimeout(ctx, 10*time.Minute)
		defer cancel()
		if err := svc.RunOnce(runCtx); err != nil {
			log.Fatalf("import failed: %v", err)
		}
	}
}
