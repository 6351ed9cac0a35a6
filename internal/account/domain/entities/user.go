package entities

import (
	"errors"
	"time"
)

// Ошибки домена пользователя.
var (
	ErrEmptyUserID  = errors.New("user ID cannot be empty")
	ErrUserNotFound = errors.New("user not found")
)

// Роли пользователя.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User представляет учетную запись пользователя.
// Email хранится в канонической форме: без пробелов по краям, в нижнем регистре.
type User struct {
	ID           string
	Name         string
	Email        string
	Role         string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
