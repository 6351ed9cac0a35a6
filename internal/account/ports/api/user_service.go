package api

import (
	"context"

	"accountapi/internal/account/domain/entities"
	"accountapi/internal/account/domain/validation"
)

// UserUseCase определяет основной порт для операций с профилем.
type UserUseCase interface {
	GetUserProfile(ctx context.Context, userID string) (*entities.User, error)

	UpdateProfile(ctx context.Context, userID string, in validation.ProfileUpdateInput) (*entities.User, error)
}
