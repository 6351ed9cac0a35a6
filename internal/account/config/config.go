// Package config содержит конфигурацию сервиса учетных записей.
package config

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	pkgconfig "accountapi/pkg/config"
	"accountapi/pkg/logger"
)

// Константы ошибок и сообщений для конфигурации.
const (
	ServiceName = "account"

	LogConfigLoaded     = "account service configuration loaded"
	ErrFailedLoadConfig = "failed to load configuration"
	ErrInvalidConfig    = "invalid configuration"
)

// ErrEmptySecretKey возвращается, если не задан ключ подписи JWT.
var ErrEmptySecretKey = errors.New("jwt secret key must not be empty")

// Config представляет полную конфигурацию сервиса.
type Config struct {
	Postgres   PostgresConfig   `yaml:"postgres"`
	Logging    LoggingConfig    `yaml:"logging"`
	Shutdown   ShutdownConfig   `yaml:"shutdown"`
	JWT        JWTConfig        `yaml:"jwt"`
	HTTP       HTTPConfig       `yaml:"http"`
	GRPC       GRPCConfig       `yaml:"grpc"`
	Redis      RedisConfig      `yaml:"redis"`
	Validation ValidationConfig `yaml:"validation"`
}

// Load загружает конфигурацию из файла path (если он существует) и переменных окружения.
func Load(ctx context.Context, path string) (*Config, error) {
	cfg, err := pkgconfig.Load[Config](ctx, ServiceName, path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrFailedLoadConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		logger.Log(ctx).Error(ctx, ErrInvalidConfig, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrInvalidConfig, err)
	}

	logger.Log(ctx).Info(ctx, LogConfigLoaded,
		zap.String("postgres_host", cfg.Postgres.Host),
		zap.Int("postgres_port", cfg.Postgres.Port),
		zap.String("http_address", cfg.HTTP.GetAddress()),
		zap.String("grpc_address", cfg.GRPC.GetAddress()),
		zap.Bool("redis_enabled", cfg.Redis.Enabled),
		zap.String("log_level", cfg.Logging.Level),
		zap.String("log_mode", cfg.Logging.Mode),
		zap.String("update_email_profile", cfg.Validation.UpdateEmailProfile),
		zap.Bool("report_all", cfg.Validation.ReportAll),
	)

	return cfg, nil
}

// Validate проверяет согласованность значений.
func (c *Config) Validate() error {
	if c.JWT.SecretKey == "" {
		return ErrEmptySecretKey
	}
	if _, err := c.Validation.Options(); err != nil {
		return err
	}
	return nil
}
