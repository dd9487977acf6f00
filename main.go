package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"investmanager/src/api"
	apicontrollers "investmanager/src/api/controllers"
	apihandlers "investmanager/src/api/handlers"
	"investmanager/src/clients/ecos"
	"investmanager/src/config"
	"investmanager/src/database"
	"investmanager/src/repositories"
	"investmanager/src/services"
	"investmanager/src/utils"
	aws_handler "investmanager/src/utils/aws"
	redis_utils "investmanager/src/utils/redis"
	"investmanager/src/worker"
	workercontrollers "investmanager/src/worker/controllers"
	workerhandlers "investmanager/src/worker/handlers"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.LoadConfig("./settings", os.Getenv("ENV"))
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error while loading config:", err)
		os.Exit(1)
	}
	logger := utils.NewLogger(utils.ParseLevel(cfg.Logging.Level), cfg.Logging.File != "", cfg.Logging.File)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	httpServer, cleanup, err := build(ctx, cfg, logger)
	if err != nil {
		logger.WithError(err).Fatal("Couldn't start service")
	}
	defer cleanup()

	errC := make(chan error, 1)
	go func() {
		logger.WithFields(logrus.Fields{"port": cfg.Service.Port, "type": cfg.Service.Type}).Info("Starting server")

		// "ListenAndServe always returns a non-nil error. After Shutdown or Close, the returned error is
		// ErrServerClosed."
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errC <- err
		}
		close(errC)
	}()

	select {
	case err := <-errC:
		if err != nil {
			logger.WithError(err).Error("Error while running")
		}
	case <-ctx.Done():
		logger.Info("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.WithError(err).Error("Graceful shutdown failed")
		}
	}
}

// build wires the resolvers shared by both service types and returns the server for
// the configured one, plus a cleanup func for the resources it opened.
func build(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (*http.Server, func(), error) {
	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	if err := resolveAPIKey(ctx, cfg, logger); err != nil {
		return nil, cleanup, err
	}

	cache, closeCache, err := newRateCache(ctx, cfg)
	if err != nil {
		return nil, cleanup, err
	}
	closers = append(closers, closeCache)

	client := ecos.NewClient(cfg.ExternalClients.ECOS)
	rateService, err := services.NewRateService(client, cache, cfg.ExternalClients.ECOS, cfg.Cache.TTL)
	if err != nil {
		return nil, cleanup, err
	}
	goldService, err := services.NewGoldService(client, cache, rateService, cfg.ExternalClients.ECOS, cfg.Cache.TTL)
	if err != nil {
		return nil, cleanup, err
	}
	portfolioService := services.NewPortfolioService(rateService, goldService, cfg.Valuation)
	location := cfg.Location()

	if cfg.Service.Type == config.WORKER {
		controller := workercontrollers.NewController(services.NewRateWarmer(portfolioService, location), location)
		if err := controller.ScheduleWarming(cfg.Worker.WarmSpec, logger); err != nil {
			return nil, cleanup, fmt.Errorf("invalid warm schedule: %w", err)
		}
		closers = append(closers, controller.StopWarming)

		server := worker.NewServer(workerhandlers.NewHandler(controller), logger)
		return worker.NewHTTPServer(server, cfg.Service), cleanup, nil
	}

	db, err := database.SetupDB(ctx, cfg)
	if err != nil {
		return nil, cleanup, err
	}
	closers = append(closers, db.Close)

	assetService := services.NewAssetService(repositories.NewAssetRepository(db))
	controller := apicontrollers.NewController(assetService, portfolioService, location)
	server := api.NewServer(apihandlers.NewHandler(controller, location), logger, cfg.Service.AllowedOrigins)
	return api.NewHTTPServer(server, cfg.Service), cleanup, nil
}

// resolveAPIKey fills in the statistics service key from Secrets Manager when only
// a secret id is configured.
func resolveAPIKey(ctx context.Context, cfg *config.Config, logger *logrus.Logger) error {
	ecosCfg := &cfg.ExternalClients.ECOS
	if ecosCfg.APIKey != "" || ecosCfg.APIKeySecretID == "" {
		return nil
	}
	handler, err := aws_handler.NewAWSHandler(cfg.AWS.Region)
	if err != nil {
		return fmt.Errorf("failed to create AWS session: %w", err)
	}
	key, err := handler.SecretManager.GetSecretValue(ctx, ecosCfg.APIKeySecretID)
	if err != nil {
		return err
	}
	ecosCfg.APIKey = key
	logger.WithField("secret_id", ecosCfg.APIKeySecretID).Info("Loaded statistics API key from Secrets Manager")
	return nil
}

func newRateCache(ctx context.Context, cfg *config.Config) (services.RateCache, func(), error) {
	if cfg.Cache.Driver == config.RedisCache {
		handler, err := redis_utils.NewRedisHandler(ctx, cfg.Databases.Redis)
		if err != nil {
			return nil, func() {}, err
		}
		return redis_utils.NewRateCache(handler), func() { _ = handler.Close() }, nil
	}
	return utils.NewTTLCache[decimal.Decimal](), func() {}, nil
}
