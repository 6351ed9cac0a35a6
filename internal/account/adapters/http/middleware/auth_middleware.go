package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"accountapi/internal/account/ports/services"
	"accountapi/pkg/logger"
)

// Константы для логирования.
const (
	LogAuthMiddleware = "auth middleware"

	ErrorNoAuthHeader       = "no authorization header provided"
	ErrorInvalidTokenFormat = "invalid token format"
	ErrorInvalidToken       = "invalid or expired access token"
)

const bearerPrefix = "Bearer "

// NewAuthMiddleware создает промежуточное ПО, которое проверяет access-токен
// и кладет идентификатор пользователя в контекст запроса.
func NewAuthMiddleware(tokenService services.TokenService) fiber.Handler {
	return func(c fiber.Ctx) error {
		requestCtx := RequestContext(c)
		log := logger.Log(requestCtx).With(zap.String("middleware", "auth"))
		log.Debug(requestCtx, LogAuthMiddleware)

		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			log.Debug(requestCtx, ErrorNoAuthHeader)
			return unauthorized(c, ErrorNoAuthHeader)
		}

		if len(authHeader) <= len(bearerPrefix) || !strings.EqualFold(authHeader[:len(bearerPrefix)], bearerPrefix) {
			log.Debug(requestCtx, ErrorInvalidTokenFormat)
			return unauthorized(c, ErrorInvalidTokenFormat)
		}

		userID, err := tokenService.ValidateAccessToken(requestCtx, strings.TrimSpace(authHeader[len(bearerPrefix):]))
		if err != nil {
			log.Debug(requestCtx, ErrorInvalidToken, zap.Error(err))
			return unauthorized(c, ErrorInvalidToken)
		}

		setRequestContext(c, WithUserID(requestCtx, userID))
		return c.Next()
	}
}

func unauthorized(c fiber.Ctx, message string) error {
	c.Set(fiber.HeaderWWWAuthenticate, "Bearer")
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"error": message,
	})
}
