// Package middleware содержит промежуточное ПО для HTTP обработчиков.
package middleware

import (
	"context"

	"github.com/gofiber/fiber/v3"
)

// localsRequestContext - ключ Locals, под которым хранится контекст запроса.
const localsRequestContext = "requestContext"

type userIDKeyType struct{}

var userIDKey = userIDKeyType{}

// RequestContext возвращает контекст запроса, обогащенный промежуточным ПО.
func RequestContext(c fiber.Ctx) context.Context {
	if ctx, ok := c.Locals(localsRequestContext).(context.Context); ok && ctx != nil {
		return ctx
	}
	var ctx context.Context = c.Context()
	return ctx
}

func setRequestContext(c fiber.Ctx, ctx context.Context) {
	c.Locals(localsRequestContext, ctx)
}

// WithUserID сохраняет идентификатор аутентифицированного пользователя в контексте.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// UserIDFromContext извлекает идентификатор аутентифицированного пользователя.
func UserIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(userIDKey).(string)
	return userID, ok && userID != ""
}
