package cache

import (
	"context"

	"accountapi/internal/account/domain/entities"
)

// ProfileCache определяет кэш профилей пользователей.
// Get возвращает services.ErrProfileCacheMiss при отсутствии записи.
// Чтение из хранилища заполняет кэш через SetIfAbsent, запись через Set,
// поэтому устаревшее чтение не перезаписывает профиль после обновления.
type ProfileCache interface {
	Get(ctx context.Context, userID string) (*entities.User, error)

	Set(ctx context.Context, user *entities.User) error

	SetIfAbsent(ctx context.Context, user *entities.User) error

	Invalidate(ctx context.Context, userID string) error
}
