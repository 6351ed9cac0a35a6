package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"accountapi/internal/account/adapters/cache"
	"accountapi/internal/account/adapters/grpc"
	httpServer "accountapi/internal/account/adapters/http"
	"accountapi/internal/account/adapters/postgres"
	"accountapi/internal/account/adapters/services"
	"accountapi/internal/account/app"
	"accountapi/internal/account/config"
	"accountapi/internal/account/db"
	"accountapi/internal/account/domain/validation"
	"accountapi/internal/account/metrics"
	portcache "accountapi/internal/account/ports/cache"
	"accountapi/pkg/db/redis"
	"accountapi/pkg/logger"
	"accountapi/pkg/shutdown"
)

// Константы для переменных окружения.
const (
	EnvLoggerMode  = "ACCOUNT_LOGGER_MODE"
	EnvLoggerLevel = "ACCOUNT_LOGGER_LEVEL"
	EnvConfigPath  = "ACCOUNT_CONFIG_PATH"
)

// Константы для сообщений об ошибках.
const (
	ErrInitLogger           = "failed to initialize logger"
	ErrSyncLogger           = "failed to sync logger"
	ErrLoadConfig           = "failed to load configuration"
	ErrInitLoggerWithConfig = "failed to initialize logger with configuration settings"
	ErrInitDB               = "failed to initialize database"
	ErrInitValidator        = "failed to initialize validator"
	ErrCreateRedisClient    = "failed to create Redis client, profile cache disabled"
	ErrStartGRPC            = "failed to start gRPC server"
	ErrStartHTTPServer      = "failed to start HTTP server"
)

// Константы для игнорируемых ошибок.
const (
	ErrSyncStderr = "sync /dev/stderr: invalid argument"
	ErrSyncStdout = "sync /dev/stdout: invalid argument"
)

// Константы для сообщений сервиса.
const (
	LogServiceStarted      = "account service started"
	LogServiceShutdownDone = "account service shutdown complete"
	LogInitRepo            = "initializing repositories"
	LogInitServices        = "initializing services"
	LogInitCache           = "initializing profile cache"
	LogInitUseCases        = "initializing use cases"
	LogStartingGRPC        = "starting gRPC health server"
	LogStartingHTTP        = "starting HTTP server"
	LogStoppingHTTP        = "stopping HTTP server"
	LogStoppingGRPC        = "stopping gRPC server"
	LogClosingDB           = "closing database connection"
	LogClosingRedis        = "closing Redis connection"
)

const tokenCleanupInterval = time.Hour

func main() {
	env := logger.Development
	if strings.ToLower(os.Getenv(EnvLoggerMode)) == "production" {
		env = logger.Production
	}

	log, err := logger.NewLogger(env, os.Getenv(EnvLoggerLevel))
	if err != nil {
		panic(ErrInitLogger + ": " + err.Error())
	}

	logger.SetGlobalLogger(log)

	ctx := logger.NewRequestIDContext(context.Background(), "")

	var exitCode int

	func() {
		defer func() {
			if err := log.Sync(); err != nil {
				errMsg := err.Error()
				if strings.Contains(errMsg, ErrSyncStderr) || strings.Contains(errMsg, ErrSyncStdout) {
					return
				}
				if _, writeErr := fmt.Fprintf(os.Stderr, "%s: %v\n", ErrSyncLogger, err); writeErr != nil {
					panic(writeErr)
				}
			}
		}()

		cfg, err := config.Load(ctx, os.Getenv(EnvConfigPath))
		if err != nil {
			log.Error(ctx, ErrLoadConfig, zap.Error(err))
			exitCode = 1
			return
		}

		finalLogger, err := logger.NewLogger(cfg.Logging.GetEnvironment(), cfg.Logging.Level)
		if err != nil {
			log.Error(ctx, ErrInitLoggerWithConfig, zap.Error(err))
			exitCode = 1
			return
		}
		logger.SetGlobalLogger(finalLogger)
		log = finalLogger

		database, err := db.New(ctx, &cfg.Postgres)
		if err != nil {
			log.Error(ctx, ErrInitDB, zap.Error(err))
			exitCode = 1
			return
		}

		log.Info(ctx, LogServiceStarted,
			zap.String("environment", string(cfg.Logging.GetEnvironment())),
			zap.String("log_level", cfg.Logging.Level),
			zap.String("startup_time", time.Now().Format(time.RFC3339)))

		log.Info(ctx, LogInitRepo)
		repoFactory := postgres.NewRepositoryFactory(database.Pool())
		userRepo := repoFactory.UserRepository()
		tokenRepo := repoFactory.TokenRepository()

		log.Info(ctx, LogInitServices)
		serviceFactory := services.NewServiceFactory(
			cfg.JWT.SecretKey,
			cfg.JWT.Issuer,
			cfg.JWT.AccessTokenTTL,
			cfg.JWT.RefreshTokenTTL,
			cfg.JWT.BCryptCost,
		)
		passwordService := serviceFactory.PasswordService()
		tokenService := serviceFactory.TokenService()

		opts, err := cfg.Validation.Options()
		if err != nil {
			log.Error(ctx, ErrInitValidator, zap.Error(err))
			exitCode = 1
			return
		}
		validator, err := validation.New(opts)
		if err != nil {
			log.Error(ctx, ErrInitValidator, zap.Error(err))
			exitCode = 1
			return
		}

		var (
			profileCache portcache.ProfileCache
			redisClient  *redis.Client
		)
		if cfg.Redis.Enabled {
			log.Info(ctx, LogInitCache)
			redisClient, err = redis.NewClient(ctx, cfg.Redis.ClientConfig())
			if err != nil {
				log.Warn(ctx, ErrCreateRedisClient, zap.Error(err))
			} else {
				profileCache = cache.NewProfileCache(redisClient, cfg.Redis.ProfileTTL, nil)
			}
		}

		log.Info(ctx, LogInitUseCases)
		authUseCase := app.NewAuthUseCase(userRepo, tokenRepo, passwordService, tokenService, validator)
		userUseCase := app.NewUserUseCase(userRepo, tokenRepo, profileCache, validator)

		cleanupCtx, stopCleanup := context.WithCancel(ctx)
		go app.RunTokenCleanup(cleanupCtx, tokenRepo, tokenCleanupInterval)

		log.Info(ctx, LogStartingGRPC)
		grpcServer := grpc.New(&cfg.GRPC, database.Ping)
		if err := grpcServer.Start(ctx); err != nil {
			log.Error(ctx, ErrStartGRPC, zap.Error(err))
			stopCleanup()
			database.Close(ctx)
			exitCode = 1
			return
		}

		fiberApp := httpServer.NewApp(fiber.Config{
			ReadTimeout:  cfg.HTTP.ReadTimeout,
			WriteTimeout: cfg.HTTP.WriteTimeout,
			BodyLimit:    cfg.HTTP.BodyLimit,
		})
		httpServer.SetupRouter(fiberApp, httpServer.Dependencies{
			AuthUseCase:  authUseCase,
			UserUseCase:  userUseCase,
			TokenService: tokenService,
			Metrics:      metrics.New(),
		})

		log.Info(ctx, LogStartingHTTP, zap.String("address", cfg.HTTP.GetAddress()))
		go func() {
			if err := fiberApp.Listen(cfg.HTTP.GetAddress(), fiber.ListenConfig{DisableStartupMessage: true}); err != nil {
				log.Error(ctx, ErrStartHTTPServer, zap.Error(err))
			}
		}()

		shutdown.Wait(ctx, cfg.Shutdown.GetTimeout(),
			func(ctx context.Context) error {
				log.Info(ctx, LogStoppingHTTP)
				return fiberApp.ShutdownWithContext(ctx)
			},
			func(ctx context.Context) error {
				log.Info(ctx, LogStoppingGRPC)
				grpcServer.Stop(ctx)
				return nil
			},
		)

		stopCleanup()
		if redisClient != nil {
			log.Info(ctx, LogClosingRedis)
			if err := redisClient.Close(); err != nil {
				log.Warn(ctx, LogClosingRedis, zap.Error(err))
			}
		}
		log.Info(ctx, LogClosingDB)
		database.Close(ctx)

		log.Info(ctx, LogServiceShutdownDone)
	}()

	if exitCode != 0 {
		os.Exit(exitCode)
	}
}
