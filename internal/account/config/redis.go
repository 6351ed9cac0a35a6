package config

import (
	"time"

	"accountapi/pkg/db/redis"
)

// RedisConfig представляет конфигурацию кэша профилей.
type RedisConfig struct {
	Enabled      bool          `yaml:"enabled" env:"ACCOUNT_REDIS_ENABLED" env-default:"false"`
	Host         string        `yaml:"host" env:"ACCOUNT_REDIS_HOST" env-default:"localhost"`
	Port         int           `yaml:"port" env:"ACCOUNT_REDIS_PORT" env-default:"6379"`
	Password     string        `yaml:"password" env:"ACCOUNT_REDIS_PASSWORD" env-default:""`
	DB           int           `yaml:"db" env:"ACCOUNT_REDIS_DB" env-default:"0"`
	PoolSize     int           `yaml:"pool_size" env:"ACCOUNT_REDIS_POOL_SIZE" env-default:"10"`
	MinIdle      int           `yaml:"min_idle" env:"ACCOUNT_REDIS_MIN_IDLE" env-default:"2"`
	DialTimeout  time.Duration `yaml:"dial_timeout" env:"ACCOUNT_REDIS_DIAL_TIMEOUT" env-default:"3s"`
	ReadTimeout  time.Duration `yaml:"read_timeout" env:"ACCOUNT_REDIS_READ_TIMEOUT" env-default:"500ms"`
	WriteTimeout time.Duration `yaml:"write_timeout" env:"ACCOUNT_REDIS_WRITE_TIMEOUT" env-default:"500ms"`
	ProfileTTL   time.Duration `yaml:"profile_ttl" env:"ACCOUNT_REDIS_PROFILE_TTL" env-default:"5m"`
}

// ClientConfig возвращает настройки клиента Redis.
func (c *RedisConfig) ClientConfig() *redis.Config {
	return &redis.Config{
		Host:         c.Host,
		Port:         c.Port,
		Password:     c.Password,
		DB:           c.DB,
		PoolSize:     c.PoolSize,
		MinIdle:      c.MinIdle,
		DialTimeout:  c.DialTimeout,
		ReadTimeout:  c.ReadTimeout,
		WriteTimeout: c.WriteTimeout,
	}
}
