// Package dto содержит объекты передачи данных HTTP API сервиса учетных записей.
package dto

import (
	"accountapi/internal/account/domain/entities"
	"accountapi/internal/account/domain/services"
	"accountapi/internal/account/domain/validation"
)

// Сообщения ответов.
const (
	MessageRegistered     = "user registered successfully"
	MessageLoggedIn       = "login successful"
	MessageLoggedOut      = "logged out successfully"
	MessageProfileUpdated = "profile updated successfully"
	MessageValidation     = "validation failed"
)

// RegisterRequest содержит данные для регистрации пользователя.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest содержит данные для входа пользователя.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateProfileRequest содержит изменяемые поля профиля.
// Отсутствующее в JSON поле не изменяется.
type UpdateProfileRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
}

// RefreshRequest содержит данные для обновления токенов.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// LogoutRequest содержит данные для выхода пользователя.
type LogoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// UserSummary - краткое представление пользователя.
type UserSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// RegistrationResponse возвращается при успешной регистрации.
type RegistrationResponse struct {
	Message string      `json:"message"`
	User    UserSummary `json:"user"`
}

// LoginResponse возвращается при успешном входе.
type LoginResponse struct {
	UserID       string `json:"user_id"`
	Message      string `json:"message"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}

// TokenResponse возвращается при обновлении токенов.
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}

// MessageResponse - ответ с текстовым сообщением.
type MessageResponse struct {
	Message string `json:"message"`
}

// UserResponse - профиль пользователя.
type UserResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// UserUpdateResponse возвращается при обновлении профиля.
type UserUpdateResponse struct {
	Detail string      `json:"detail"`
	User   UserSummary `json:"user"`
}

// ErrorResponse - тело ответа с ошибкой.
type ErrorResponse struct {
	Error string `json:"error"`
}

// RejectionDetail описывает отказ валидации по одному полю.
type RejectionDetail struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// ValidationErrorResponse - тело ответа 422.
// Field и Reason дублируют первый элемент Details.
type ValidationErrorResponse struct {
	Error   string            `json:"error"`
	Field   string            `json:"field"`
	Reason  string            `json:"reason"`
	Details []RejectionDetail `json:"details"`
}

// NewUserSummary строит UserSummary из сущности.
func NewUserSummary(user *entities.User) UserSummary {
	return UserSummary{ID: user.ID, Name: user.Name, Email: user.Email}
}

// NewUserResponse строит UserResponse из сущности.
func NewUserResponse(user *entities.User) UserResponse {
	return UserResponse{ID: user.ID, Name: user.Name, Email: user.Email, Role: user.Role}
}

// NewLoginResponse строит LoginResponse из пары токенов.
func NewLoginResponse(pair *services.TokenPair) LoginResponse {
	return LoginResponse{
		UserID:       pair.UserID,
		Message:      MessageLoggedIn,
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		TokenType:    tokenType(pair),
	}
}

// NewTokenResponse строит TokenResponse из пары токенов.
func NewTokenResponse(pair *services.TokenPair) TokenResponse {
	return TokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		TokenType:    tokenType(pair),
	}
}

// NewValidationErrorResponse строит тело ответа 422 из отказов валидации.
func NewValidationErrorResponse(rejections validation.Rejections) ValidationErrorResponse {
	first := rejections.First()
	details := make([]RejectionDetail, 0, len(rejections))
	for _, r := range rejections {
		details = append(details, RejectionDetail{Field: string(r.Field), Reason: string(r.Reason)})
	}
	return ValidationErrorResponse{
		Error:   MessageValidation,
		Field:   string(first.Field),
		Reason:  string(first.Reason),
		Details: details,
	}
}

func tokenType(pair *services.TokenPair) string {
	if pair.TokenType == "" {
		return services.TokenTypeBearer
	}
	return pair.TokenType
}
