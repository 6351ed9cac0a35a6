// Package cache содержит кэш профилей пользователей на Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"accountapi/internal/account/domain/entities"
	"accountapi/internal/account/domain/services"
	"accountapi/internal/account/ports/cache"
	"accountapi/internal/account/resilience"
	"accountapi/pkg/db/redis"
	"accountapi/pkg/logger"
)

// Константы для логирования.
const (
	LogMethodGet        = "get"
	LogMethodSet        = "set"
	LogMethodSetAbsent  = "set_if_absent"
	LogMethodInvalidate = "invalidate"

	ErrorFailedToGet        = "failed to get profile from cache"
	ErrorFailedToSet        = "failed to set profile in cache"
	ErrorFailedToInvalidate = "failed to invalidate cached profile"
	ErrorFailedToDecode     = "failed to decode cached profile"
	ErrorFailedToEncode     = "failed to encode profile"
)

// DefaultKeyPrefix - префикс ключей профилей.
const DefaultKeyPrefix = "account:profile:"

// KeyValueStore описывает операции хранилища, которые использует кэш.
// Реализуется *redis.Client из pkg/db/redis.
type KeyValueStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	SetIfAbsent(ctx context.Context, key string, value any, ttl time.Duration) (bool, error)
	Delete(ctx context.Context, keys ...string) error
}

// cachedProfile - сериализуемая форма профиля. Хэш пароля не кэшируется.
type cachedProfile struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ProfileCache реализует cache.ProfileCache поверх Redis.
type ProfileCache struct {
	store  KeyValueStore
	guard  *resilience.Guard
	ttl    time.Duration
	prefix string
}

// NewProfileCache создает кэш профилей с временем жизни записей ttl.
func NewProfileCache(store KeyValueStore, ttl time.Duration, guard *resilience.Guard) cache.ProfileCache {
	if guard == nil {
		guard = resilience.NewGuard("profile-cache",
			resilience.DefaultCircuitBreakerConfig(),
			resilience.DefaultRetryConfig(),
			redis.ErrNotFound,
		)
	}
	return &ProfileCache{
		store:  store,
		guard:  guard,
		ttl:    ttl,
		prefix: DefaultKeyPrefix,
	}
}

// Get получает профиль по идентификатору пользователя.
func (c *ProfileCache) Get(ctx context.Context, userID string) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("method", LogMethodGet), zap.String("user_id", userID))

	var raw string
	err := c.guard.Do(ctx, LogMethodGet, func(ctx context.Context) error {
		var err error
		raw, err = c.store.Get(ctx, c.key(userID))
		return err
	})
	if err != nil {
		if errors.Is(err, redis.ErrNotFound) {
			return nil, services.ErrProfileCacheMiss
		}
		log.Warn(ctx, ErrorFailedToGet, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrorFailedToGet, err)
	}

	var profile cachedProfile
	if err := json.Unmarshal([]byte(raw), &profile); err != nil {
		log.Warn(ctx, ErrorFailedToDecode, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrorFailedToDecode, err)
	}

	return &entities.User{
		ID:        profile.ID,
		Name:      profile.Name,
		Email:     profile.Email,
		Role:      profile.Role,
		CreatedAt: profile.CreatedAt,
		UpdatedAt: profile.UpdatedAt,
	}, nil
}

// Set сохраняет профиль пользователя, заменяя существующую запись.
func (c *ProfileCache) Set(ctx context.Context, user *entities.User) error {
	return c.write(ctx, LogMethodSet, user, func(ctx context.Context, key, data string) error {
		return c.store.Set(ctx, key, data, c.ttl)
	})
}

// SetIfAbsent сохраняет профиль, только если записи еще нет.
func (c *ProfileCache) SetIfAbsent(ctx context.Context, user *entities.User) error {
	return c.write(ctx, LogMethodSetAbsent, user, func(ctx context.Context, key, data string) error {
		_, err := c.store.SetIfAbsent(ctx, key, data, c.ttl)
		return err
	})
}

func (c *ProfileCache) write(
	ctx context.Context,
	method string,
	user *entities.User,
	store func(ctx context.Context, key, data string) error,
) error {
	if user == nil || user.ID == "" {
		return entities.ErrEmptyUserID
	}
	log := logger.Log(ctx).With(zap.String("method", method), zap.String("user_id", user.ID))

	data, err := json.Marshal(cachedProfile{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	})
	if err != nil {
		return fmt.Errorf("%s: %w", ErrorFailedToEncode, err)
	}

	err = c.guard.Do(ctx, method, func(ctx context.Context) error {
		return store(ctx, c.key(user.ID), string(data))
	})
	if err != nil {
		log.Warn(ctx, ErrorFailedToSet, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrorFailedToSet, err)
	}

	return nil
}

// Invalidate удаляет профиль пользователя из кэша.
func (c *ProfileCache) Invalidate(ctx context.Context, userID string) error {
	log := logger.Log(ctx).With(zap.String("method", LogMethodInvalidate), zap.String("user_id", userID))

	err := c.guard.Do(ctx, LogMethodInvalidate, func(ctx context.Context) error {
		return c.store.Delete(ctx, c.key(userID))
	})
	if err != nil {
		log.Warn(ctx, ErrorFailedToInvalidate, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrorFailedToInvalidate, err)
	}

	return nil
}

func (c *ProfileCache) key(userID string) string {
	return c.prefix + userID
}
