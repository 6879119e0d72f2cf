// Package server boots the application: configuration, logging, storage
// backends, the middleware chain, and the HTTP listener.
package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shashiranjanraj/plantnet/app/repositories"
	"github.com/shashiranjanraj/plantnet/app/routes"
	"github.com/shashiranjanraj/plantnet/config"
	"github.com/shashiranjanraj/plantnet/pkg/cache"
	"github.com/shashiranjanraj/plantnet/pkg/database"
	"github.com/shashiranjanraj/plantnet/pkg/logger"
	"github.com/shashiranjanraj/plantnet/pkg/metrics"
	"github.com/shashiranjanraj/plantnet/pkg/middleware"
	"github.com/shashiranjanraj/plantnet/pkg/reqid"
	"github.com/shashiranjanraj/plantnet/pkg/router"
	"github.com/shashiranjanraj/plantnet/pkg/storage"
)

// Start boots every subsystem and serves HTTP until SIGINT/SIGTERM.
func Start() error {
	if err := config.Load(); err != nil {
		return err
	}

	if err := database.Connect(); err != nil {
		return err
	}
	defer database.Disconnect(context.Background())

	if config.LogToMongo() {
		if err := logger.EnableMongoSink(config.MongoURI(), config.DatabaseName(), "logs"); err != nil {
			logger.Warn("mongo log sink disabled", "error", err)
		}
		defer logger.Close()
	}

	// The cache is an optimization; run without it when redis is down.
	if err := cache.Connect(); err != nil {
		logger.Warn("catalog cache disabled", "error", err)
	}

	storage.Connect()

	r := NewRouter()

	srv := &http.Server{
		Addr:              ":" + config.AppPort(),
		Handler:           r.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("plantNet server listening", "addr", srv.Addr, "env", config.AppEnv())
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		logger.Info("shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}

// NewRouter builds the full middleware chain and route table against the
// Mongo-backed repositories.
func NewRouter() *router.Router {
	r := router.New()

	r.Use(metrics.Middleware())
	r.Use(reqid.Middleware())
	r.Use(middleware.Recovery)
	r.Use(middleware.Logger)
	r.Use(middleware.CORS(middleware.DefaultCORSOptions(config.CORSOrigins())))

	db := database.DB()
	api := routes.NewAPI(
		repositories.NewMongoUserRepository(db),
		repositories.NewMongoPlantRepository(db),
		repositories.NewMongoOrderRepository(db),
	)
	api.Register(r)

	return r
}
