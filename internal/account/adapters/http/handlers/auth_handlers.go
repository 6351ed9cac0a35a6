// Package handlers содержит HTTP обработчики сервиса учетных записей.
package handlers

import (
	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"accountapi/internal/account/adapters/http/dto"
	"accountapi/internal/account/adapters/http/middleware"
	"accountapi/internal/account/domain/validation"
	"accountapi/internal/account/ports/api"
	"accountapi/pkg/logger"
)

// Константы для логирования.
const (
	LogHandlerRegister      = "auth handler: register"
	LogHandlerLogin         = "auth handler: login"
	LogHandlerRefreshTokens = "auth handler: refresh tokens" // #nosec G101 - not a credential
	LogHandlerLogout        = "auth handler: logout"
)

// AuthHandler содержит HTTP обработчики регистрации и аутентификации.
type AuthHandler struct {
	errorWriter
	authUseCase api.AuthUseCase
}

// NewAuthHandler создает новый экземпляр обработчика авторизации.
// recorder может быть nil.
func NewAuthHandler(authUseCase api.AuthUseCase, recorder RejectionRecorder) *AuthHandler {
	return &AuthHandler{errorWriter: newErrorWriter(recorder), authUseCase: authUseCase}
}

// Register обрабатывает запрос на регистрацию нового пользователя.
func (h *AuthHandler) Register(c fiber.Ctx) error {
	requestCtx := middleware.RequestContext(c)
	log := logger.Log(requestCtx)
	log.Debug(requestCtx, LogHandlerRegister)

	var req dto.RegisterRequest
	if err := c.Bind().JSON(&req); err != nil {
		log.Debug(requestCtx, LogInvalidJSONInput, zap.Error(err))
		return badRequest(c, ErrorInvalidRequest)
	}

	user, err := h.authUseCase.Register(requestCtx, validation.RegistrationInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return h.writeError(requestCtx, c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(dto.RegistrationResponse{
		Message: dto.MessageRegistered,
		User:    dto.NewUserSummary(user),
	})
}

// Login обрабатывает запрос на вход пользователя.
func (h *AuthHandler) Login(c fiber.Ctx) error {
	requestCtx := middleware.RequestContext(c)
	log := logger.Log(requestCtx)
	log.Debug(requestCtx, LogHandlerLogin)

	var req dto.LoginRequest
	if err := c.Bind().JSON(&req); err != nil {
		log.Debug(requestCtx, LogInvalidJSONInput, zap.Error(err))
		return badRequest(c, ErrorInvalidRequest)
	}

	pair, err := h.authUseCase.Login(requestCtx, validation.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return h.writeError(requestCtx, c, err)
	}

	return c.Status(fiber.StatusOK).JSON(dto.NewLoginResponse(pair))
}

// RefreshTokens обрабатывает запрос на обновление токенов.
func (h *AuthHandler) RefreshTokens(c fiber.Ctx) error {
	requestCtx := middleware.RequestContext(c)
	log := logger.Log(requestCtx)
	log.Debug(requestCtx, LogHandlerRefreshTokens)

	var req dto.RefreshRequest
	if err := c.Bind().JSON(&req); err != nil {
		log.Debug(requestCtx, LogInvalidJSONInput, zap.Error(err))
		return badRequest(c, ErrorInvalidRequest)
	}
	if req.RefreshToken == "" {
		return badRequest(c, ErrorRefreshTokenRequired)
	}

	pair, err := h.authUseCase.RefreshTokens(requestCtx, req.RefreshToken)
	if err != nil {
		return h.writeError(requestCtx, c, err)
	}

	return c.Status(fiber.StatusOK).JSON(dto.NewTokenResponse(pair))
}

// Logout обрабатывает запрос на выход пользователя.
func (h *AuthHandler) Logout(c fiber.Ctx) error {
	requestCtx := middleware.RequestContext(c)
	log := logger.Log(requestCtx)
	log.Debug(requestCtx, LogHandlerLogout)

	var req dto.LogoutRequest
	if err := c.Bind().JSON(&req); err != nil {
		log.Debug(requestCtx, LogInvalidJSONInput, zap.Error(err))
		return badRequest(c, ErrorInvalidRequest)
	}
	if req.RefreshToken == "" {
		return badRequest(c, ErrorRefreshTokenRequired)
	}

	if err := h.authUseCase.Logout(requestCtx, req.RefreshToken); err != nil {
		return h.writeError(requestCtx, c, err)
	}

	return c.Status(fiber.StatusOK).JSON(dto.MessageResponse{Message: dto.MessageLoggedOut})
}
