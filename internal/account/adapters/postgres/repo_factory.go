// Package postgres реализует репозитории пользователей и refresh-токенов на pgx.
package postgres

import (
	"accountapi/internal/account/ports/repositories"
)

// RepositoryFactory создает репозитории поверх общего пула соединений.
type RepositoryFactory struct {
	userRepo  repositories.UserRepository
	tokenRepo repositories.TokenRepository
}

// NewRepositoryFactory создает новую фабрику репозиториев.
// Принимает *pgxpool.Pool или pgxmock.PgxPoolIface.
func NewRepositoryFactory(pool PgxPoolInterface) *RepositoryFactory {
	return &RepositoryFactory{
		userRepo:  NewUserRepository(pool),
		tokenRepo: NewTokenRepository(pool),
	}
}

// UserRepository возвращает репозиторий пользователей.
func (f *RepositoryFactory) UserRepository() repositories.UserRepository {
	return f.userRepo
}

// TokenRepository возвращает репозиторий токенов.
func (f *RepositoryFactory) TokenRepository() repositories.TokenRepository {
	return f.tokenRepo
}
