package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	httpLayer "credimoto/http"
	"credimoto/repository"
	"credimoto/service"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Inicia la API HTTP",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServer(cmd.Context())
	},
}

func runServer(parent context.Context) error {
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	var cache repository.CacheRepository
	if cfg.Redis.Addr != "" {
		redisCache := repository.NewRedisCache(repository.RedisOptions{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisCache.Close()
		if err := redisCache.Ping(ctx); err != nil {
			logger.Warn("redis unavailable, calculations will not be cached until it recovers",
				zap.String("addr", cfg.Redis.Addr), zap.Error(err))
		}
		cache = redisCache
	} else {
		cache = repository.NewMemoryCache()
	}

	var quotes repository.QuoteRepository
	if cfg.Database.DSN != "" {
		db, err := repository.OpenPostgres(cfg.Database.DSN)
		if err != nil {
			return err
		}
		if sqlDB, err := db.DB(); err == nil {
			defer sqlDB.Close()
		}
		gormRepo := repository.NewQuoteRepositoryGorm(db)
		if cfg.Database.AutoMigrate {
			if err := gormRepo.Migrate(); err != nil {
				return fmt.Errorf("migrar cotizaciones: %w", err)
			}
		}
		quotes = gormRepo
	} else {
		logger.Info("no database configured, quotes are kept in memory")
		quotes = repository.NewQuoteRepositoryMemory()
	}

	loanService := service.NewLoanService(cache, cfg.Redis.TTL, logger)
	explainer := service.NewExplanationService(service.ExplanationConfig{
		APIKey:  cfg.AI.APIKey,
		APIURL:  cfg.AI.APIURL,
		Model:   cfg.AI.Model,
		Timeout: cfg.AI.Timeout,
	}, logger)
	termService := service.NewTermRecommendationService(explainer, logger)
	quoteService := service.NewQuoteService(loanService, quotes, logger)

	rateLimiter := httpLayer.NewRateLimiter(cfg.RateLimit.Capacity, cfg.RateLimit.Refill)
	defer rateLimiter.Stop()

	router := httpLayer.NewRouter(httpLayer.RouterConfig{
		Loans:          httpLayer.NewLoanHandler(loanService, logger),
		Terms:          httpLayer.NewTermRecommendationHandler(termService, logger),
		Quotes:         httpLayer.NewQuoteHandler(quoteService, logger),
		RateLimiter:    rateLimiter,
		JWTSecret:      cfg.Auth.JWTSecret,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		Logger:         logger,
	})

	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("API listening", zap.String("addr", cfg.Server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("error starting server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("error during server shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}

	logger.Info("server exited")
	return nil
}
