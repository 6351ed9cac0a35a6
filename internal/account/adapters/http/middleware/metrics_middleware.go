package middleware

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v3"
)

// RouteUnmatched - метка маршрута для запросов без совпавшего маршрута.
const RouteUnmatched = "unmatched"

const unmatchedKey = "routeUnmatched"

// MarkUnmatched помечает запрос, обработанный запасным обработчиком без маршрута.
func MarkUnmatched(c fiber.Ctx) {
	c.Locals(unmatchedKey, true)
}

func isUnmatched(c fiber.Ctx) bool {
	unmatched, _ := c.Locals(unmatchedKey).(bool)
	return unmatched
}

// RequestObserver принимает сведения о завершенном запросе.
type RequestObserver interface {
	ObserveRequest(method, route string, status int, elapsed time.Duration)
}

// NewMetricsMiddleware создает промежуточное ПО, передающее метрики запросов наблюдателю.
// Метка маршрута берется из шаблона, а не из фактического пути;
// запросы, помеченные MarkUnmatched, получают метку RouteUnmatched.
func NewMetricsMiddleware(observer RequestObserver) fiber.Handler {
	return func(c fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			status = fiber.StatusInternalServerError
			var fiberErr *fiber.Error
			if errors.As(err, &fiberErr) {
				status = fiberErr.Code
			}
		}

		route := c.Route().Path
		if isUnmatched(c) {
			route = RouteUnmatched
		}

		observer.ObserveRequest(c.Method(), route, status, time.Since(start))
		return err
	}
}
