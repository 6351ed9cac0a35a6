package config

import "time"

// JWTConfig содержит настройки для JWT токенов и хэширования паролей.
type JWTConfig struct {
	SecretKey       string        `yaml:"secret_key" env:"ACCOUNT_JWT_SECRET_KEY" env-default:"super-secret-key-change-me-in-production"`
	Issuer          string        `yaml:"issuer" env:"ACCOUNT_JWT_ISSUER" env-default:"account-service"`
	AccessTokenTTL  time.Duration `yaml:"access_token_ttl" env:"ACCOUNT_JWT_ACCESS_TOKEN_TTL" env-default:"15m"`
	RefreshTokenTTL time.Duration `yaml:"refresh_token_ttl" env:"ACCOUNT_JWT_REFRESH_TOKEN_TTL" env-default:"24h"`
	BCryptCost      int           `yaml:"bcrypt_cost" env:"ACCOUNT_JWT_BCRYPT_COST" env-default:"10"`
}
