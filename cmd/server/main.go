package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nimbusdesk/nimbusdesk/internal/server"
	"github.com/nimbusdesk/nimbusdesk/modules"
	"github.com/nimbusdesk/nimbusdesk/modules/core/seed"
	"github.com/nimbusdesk/nimbusdesk/pkg/application"
	"github.com/nimbusdesk/nimbusdesk/pkg/cache"
	"github.com/nimbusdesk/nimbusdesk/pkg/composables"
	"github.com/nimbusdesk/nimbusdesk/pkg/configuration"
	"github.com/nimbusdesk/nimbusdesk/pkg/eventbus"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			configuration.Use().Unload()
			log.Println(r)
			debug.PrintStack()
			os.Exit(1)
		}
	}()

	conf := configuration.Use()
	logger := conf.Logger()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()
	pool, err := pgxpool.New(ctx, conf.Database.Opts)
	if err != nil {
		panic(err)
	}

	// Cache backend misconfiguration is a startup error, not a runtime surprise.
	cacheStore, err := cache.NewStore(conf.Cache)
	if err != nil {
		log.Fatalf("failed to create cache store: %v", err)
	}
	logger.Infof("Cache storage: %s", conf.Cache.Storage)

	app := application.New(&application.ApplicationOptions{
		Pool:     pool,
		Cache:    cacheStore,
		EventBus: eventbus.NewEventPublisher(logger),
		Logger:   logger,
	})
	if err := modules.Load(app, modules.BuiltInModules...); err != nil {
		log.Fatalf("failed to load modules: %v", err)
	}

	if err := app.Migrations().Apply(context.Background()); err != nil {
		log.Fatalf("failed to apply migrations: %v", err)
	}

	if !conf.IsMultiWorkspaceEnabled {
		seeder := application.NewSeeder()
		seeder.Register(seed.CreateDefaultWorkspace)
		if err := seeder.Seed(composables.WithPool(context.Background(), pool), app); err != nil {
			log.Fatalf("failed to seed: %v", err)
		}
	}

	options := &server.DefaultOptions{
		Logger:        logger,
		Configuration: conf,
		Application:   app,
		Pool:          pool,
	}
	serverInstance, err := server.Default(options)
	if err != nil {
		log.Fatalf("failed to create server: %v", err)
	}
	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- serverInstance.Start(conf.SocketAddress)
	}()
	log.Printf("Listening on: %s\n", conf.SocketAddress)

	select {
	case err := <-serveErr:
		if err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	case <-runCtx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := serverInstance.Shutdown(shutdownCtx); err != nil {
			logger.WithError(err).Error("server shutdown failed")
		}
		conf.Unload()
	}
}
