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

const (
	LogHandlerGetProfile    = "user handler: get profile"
	LogHandlerUpdateProfile = "user handler: update profile"
)

// UserHandler содержит HTTP обработчики профиля пользователя.
type UserHandler struct {
	errorWriter
	userUseCase api.UserUseCase
}

// NewUserHandler создает новый экземпляр обработчика профиля.
func NewUserHandler(userUseCase api.UserUseCase, recorder RejectionRecorder) *UserHandler {
	return &UserHandler{errorWriter: newErrorWriter(recorder), userUseCase: userUseCase}
}

// GetProfile возвращает профиль аутентифицированного пользователя.
func (h *UserHandler) GetProfile(c fiber.Ctx) error {
	requestCtx := middleware.RequestContext(c)
	logger.Log(requestCtx).Debug(requestCtx, LogHandlerGetProfile)

	userID, ok := middleware.UserIDFromContext(requestCtx)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: ErrorUnauthorized})
	}

	user, err := h.userUseCase.GetUserProfile(requestCtx, userID)
	if err != nil {
		return h.writeError(requestCtx, c, err)
	}

	return c.Status(fiber.StatusOK).JSON(dto.NewUserResponse(user))
}

// UpdateProfile применяет частичное обновление профиля.
func (h *UserHandler) UpdateProfile(c fiber.Ctx) error {
	requestCtx := middleware.RequestContext(c)
	log := logger.Log(requestCtx)
	log.Debug(requestCtx, LogHandlerUpdateProfile)

	userID, ok := middleware.UserIDFromContext(requestCtx)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: ErrorUnauthorized})
	}

	var req dto.UpdateProfileRequest
	if err := c.Bind().JSON(&req); err != nil {
		log.Debug(requestCtx, LogInvalidJSONInput, zap.Error(err))
		return badRequest(c, ErrorInvalidRequest)
	}

	user, err := h.userUseCase.UpdateProfile(requestCtx, userID, validation.ProfileUpdateInput{
		Name:  req.Name,
		Email: req.Email,
	})
	if err != nil {
		return h.writeError(requestCtx, c, err)
	}

	return c.Status(fiber.StatusOK).JSON(dto.UserUpdateResponse{
		Detail: dto.MessageProfileUpdated,
		User:   dto.NewUserSummary(user),
	})
}
