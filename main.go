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

	"github.com/SinghAdii/Ekta-Janch-kendra-sub001/config"
	"github.com/SinghAdii/Ekta-Janch-kendra-sub001/middleware"
	"github.com/SinghAdii/Ekta-Janch-kendra-sub001/repository"
	"github.com/SinghAdii/Ekta-Janch-kendra-sub001/routes"
	"github.com/SinghAdii/Ekta-Janch-kendra-sub001/service"
	"github.com/SinghAdii/Ekta-Janch-kendra-sub001/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.LoadConfig()
	utils.InitLogger(cfg.Debug)
	utils.SetJWTSecret(cfg.JWTKey)

	if cfg.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	stores, cleanup, err := openStores(ctx, cfg)
	if err != nil {
		utils.Logger.Fatal().Err(err).Str("driver", cfg.StoreDriver).Msg("failed to open stores")
	}
	defer cleanup()

	utils.Logger.Info().Msg("initialising system data")
	if cfg.SeedData {
		if err := repository.SeedData(ctx, stores); err != nil {
			utils.Logger.Error().Err(err).Msg("seed data failed")
		}
	} else if err := repository.InitializeAdminAccount(ctx, stores); err != nil {
		utils.Logger.Error().Err(err).Msg("default admin init failed")
	}

	svc := service.NewServices(stores, cfg.BookingSessionTTL, cfg.OTPResendCooldown)
	service.ScheduleDailyTaskAt(ctx, 6, 0, 0, service.RefreshLowStockAlerts(svc.Alerts))

	router := gin.New()
	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())
	router.Use(middleware.CORS(cfg.CORSOrigins))
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.OperationLoggerMiddleware(svc.Audit))

	routes.RegisterRoutes(router, svc, stores)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		utils.Logger.Info().Int("port", cfg.Port).Str("driver", stores.Driver).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			utils.Logger.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	utils.Logger.Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		utils.Logger.Error().Err(err).Msg("server shutdown failed")
		os.Exit(1)
	}
	utils.Logger.Info().Msg("server stopped")
}

// openStores builds the configured backend; cleanup releases its connections
func openStores(ctx context.Context, cfg *config.Config) (*repository.Stores, func(), error) {
	var stores *repository.Stores
	var closers []func()

	switch cfg.StoreDriver {
	case config.StoreDriverMongo:
		client, db, err := repository.ConnectMongoDB(ctx, cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			return nil, nil, err
		}
		closers = append(closers, func() {
			closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			repository.CloseMongoDB(closeCtx, client)
		})
		if err := repository.InitializeCollections(ctx, db); err != nil {
			utils.Logger.Error().Err(err).Msg("initialise collections failed")
		}
		stores = repository.NewMongoStores(client, db)
	case config.StoreDriverMemory, "":
		stores = repository.NewMemoryStores(cfg.MockLatency)
	default:
		return nil, nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}

	if cfg.RedisAddr != "" {
		client, err := repository.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			for _, c := range closers {
				c()
			}
			return nil, nil, err
		}
		closers = append(closers, func() { _ = client.Close() })
		stores.UseRedis(client)
	}

	return stores, func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}, nil
}
