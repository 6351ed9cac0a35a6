package repositories

import (
	"context"

	"accountapi/internal/account/domain/entities"
)

// UserRepository определяет операции хранения пользователей.
// Email передается в канонической форме.
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) (*entities.User, error)

	FindByID(ctx context.Context, id string) (*entities.User, error)

	FindByEmail(ctx context.Context, email string) (*entities.User, error)

	Update(ctx context.Context, user *entities.User) (*entities.User, error)
}
