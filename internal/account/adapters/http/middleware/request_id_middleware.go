package middleware

import (
	"github.com/gofiber/fiber/v3"

	"accountapi/pkg/logger"
)

// HeaderRequestID - заголовок с идентификатором запроса.
const HeaderRequestID = "X-Request-ID"

// maxRequestIDLength ограничивает длину идентификатора, принятого от клиента.
const maxRequestIDLength = 128

// NewRequestIDMiddleware создает промежуточное ПО, которое связывает запрос
// с идентификатором и кладет его в контекст logger.
func NewRequestIDMiddleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		requestID := c.Get(HeaderRequestID)
		if requestID == "" || len(requestID) > maxRequestIDLength {
			requestID = logger.GenerateRequestID()
		}

		c.Set(HeaderRequestID, requestID)
		setRequestContext(c, logger.NewRequestIDContext(RequestContext(c), requestID))

		return c.Next()
	}
}
