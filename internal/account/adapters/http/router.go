// Package http содержит компоненты HTTP сервера сервиса учетных записей.
package http

import (
	"errors"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"go.uber.org/zap"

	"accountapi/internal/account/adapters/http/dto"
	"accountapi/internal/account/adapters/http/handlers"
	"accountapi/internal/account/adapters/http/middleware"
	"accountapi/internal/account/metrics"
	"accountapi/internal/account/ports/api"
	"accountapi/internal/account/ports/services"
	"accountapi/pkg/logger"
)

const (
	ErrorRouteNotFound = "route not found"
	LogUnhandledError  = "unhandled HTTP error"

	MetricsPath = "/metrics"
)

// Dependencies содержит зависимости HTTP слоя.
type Dependencies struct {
	AuthUseCase  api.AuthUseCase
	UserUseCase  api.UserUseCase
	TokenService services.TokenService
	// Metrics может быть nil, тогда метрики не собираются и /metrics не регистрируется.
	Metrics *metrics.Metrics
}

// NewApp создает приложение fiber с обработчиком ошибок в формате JSON.
func NewApp(cfg fiber.Config) *fiber.App {
	cfg.ErrorHandler = errorHandler
	return fiber.New(cfg)
}

// SetupRouter настраивает маршрутизацию для HTTP сервера.
func SetupRouter(app *fiber.App, deps Dependencies) {
	var recorder handlers.RejectionRecorder
	if deps.Metrics != nil {
		recorder = deps.Metrics
	}

	authHandler := handlers.NewAuthHandler(deps.AuthUseCase, recorder)
	userHandler := handlers.NewUserHandler(deps.UserUseCase, recorder)

	// Middleware для всех запросов.
	app.Use(middleware.NewRequestIDMiddleware())
	app.Use(middleware.NewLoggerMiddleware())
	if deps.Metrics != nil {
		app.Use(middleware.NewMetricsMiddleware(deps.Metrics))
	}
	app.Use(middleware.NewRecoveryMiddleware())

	if deps.Metrics != nil {
		app.Get(MetricsPath, adaptor.HTTPHandler(deps.Metrics.Handler()))
	}

	apiV1 := app.Group("/api/v1")

	authRoutes := apiV1.Group("/auth")
	authRoutes.Post("/register", authHandler.Register)
	authRoutes.Post("/login", authHandler.Login)
	authRoutes.Post("/refresh", authHandler.RefreshTokens)
	authRoutes.Post("/logout", authHandler.Logout)

	// Защищенные маршруты.
	userRoutes := apiV1.Group("/user")
	userRoutes.Use(middleware.NewAuthMiddleware(deps.TokenService))
	userRoutes.Get("/profile", userHandler.GetProfile)
	userRoutes.Patch("/profile", userHandler.UpdateProfile)

	app.Use(func(c fiber.Ctx) error {
		middleware.MarkUnmatched(c)
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: ErrorRouteNotFound})
	})
}

func errorHandler(c fiber.Ctx, err error) error {
	requestCtx := middleware.RequestContext(c)

	code := fiber.StatusInternalServerError
	message := handlers.ErrorInternal

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		code = fiberErr.Code
		message = fiberErr.Message
	} else {
		logger.Log(requestCtx).Error(requestCtx, LogUnhandledError, zap.Error(err))
	}

	return c.Status(code).JSON(dto.ErrorResponse{Error: message})
}
