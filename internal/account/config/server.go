package config

import (
	"net"
	"strconv"
	"time"
)

// HTTPConfig представляет конфигурацию HTTP сервера.
type HTTPConfig struct {
	Host         string        `yaml:"host" env:"ACCOUNT_HTTP_HOST" env-default:"0.0.0.0"`
	Port         int           `yaml:"port" env:"ACCOUNT_HTTP_PORT" env-default:"8080"`
	ReadTimeout  time.Duration `yaml:"read_timeout" env:"ACCOUNT_HTTP_READ_TIMEOUT" env-default:"5s"`
	WriteTimeout time.Duration `yaml:"write_timeout" env:"ACCOUNT_HTTP_WRITE_TIMEOUT" env-default:"10s"`
	BodyLimit    int           `yaml:"body_limit" env:"ACCOUNT_HTTP_BODY_LIMIT" env-default:"65536"`
}

// GetAddress возвращает адрес HTTP сервера.
func (c *HTTPConfig) GetAddress() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// GRPCConfig конфигурация gRPC сервера проверки состояния.
type GRPCConfig struct {
	Host           string        `yaml:"host" env:"ACCOUNT_GRPC_HOST" env-default:"0.0.0.0"`
	Port           int           `yaml:"port" env:"ACCOUNT_GRPC_PORT" env-default:"50052"`
	HealthInterval time.Duration `yaml:"health_interval" env:"ACCOUNT_GRPC_HEALTH_INTERVAL" env-default:"10s"`
}

// GetAddress возвращает адрес для gRPC сервера.
func (g *GRPCConfig) GetAddress() string {
	return net.JoinHostPort(g.Host, strconv.Itoa(g.Port))
}
