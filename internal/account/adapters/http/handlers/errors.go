package handlers

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"accountapi/internal/account/adapters/http/dto"
	"accountapi/internal/account/domain/entities"
	"accountapi/internal/account/domain/services"
	"accountapi/internal/account/domain/validation"
	"accountapi/pkg/logger"
)

const (
	ErrorInvalidRequest       = "invalid request body"
	ErrorRefreshTokenRequired = "refresh token is required"
	ErrorInternal             = "internal server error"
	ErrorUnauthorized         = "unauthorized"

	LogRequestRejected  = "request rejected by validation"
	LogFailedToServe    = "failed to serve request"
	LogClientError      = "request finished with client error"
	LogInvalidJSONInput = "failed to decode request body"
)

// unauthorizedErrors отвечают статусом 401.
var unauthorizedErrors = []error{
	services.ErrInvalidCredentials,
	services.ErrInvalidRefreshToken,
	services.ErrRevokedRefreshToken,
	services.ErrExpiredRefreshToken,
	services.ErrInvalidJWTToken,
	services.ErrExpiredJWTToken,
	entities.ErrEmptyUserID,
}

// RejectionRecorder учитывает отказы валидации, например в метриках.
type RejectionRecorder interface {
	RecordRejections(rejections validation.Rejections)
}

type nopRecorder struct{}

func (nopRecorder) RecordRejections(validation.Rejections) {}

// errorWriter встраивается в обработчики и пишет ошибки в ответ.
type errorWriter struct {
	recorder RejectionRecorder
}

func newErrorWriter(recorder RejectionRecorder) errorWriter {
	if recorder == nil {
		recorder = nopRecorder{}
	}
	return errorWriter{recorder: recorder}
}

// writeError отображает ошибку прикладного слоя в HTTP ответ.
func (w errorWriter) writeError(ctx context.Context, c fiber.Ctx, err error) error {
	log := logger.Log(ctx)

	if rejections, ok := validation.AsRejections(err); ok && len(rejections) > 0 {
		w.recorder.RecordRejections(rejections)
		first := rejections.First()
		log.Debug(ctx, LogRequestRejected,
			zap.String("field", string(first.Field)),
			zap.String("reason", string(first.Reason)),
		)
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.NewValidationErrorResponse(rejections))
	}

	status, message := classify(err)
	if status == fiber.StatusInternalServerError {
		log.Error(ctx, LogFailedToServe, zap.Error(err))
	} else {
		log.Debug(ctx, LogClientError, zap.Int("status", status), zap.Error(err))
	}

	return c.Status(status).JSON(dto.ErrorResponse{Error: message})
}

func classify(err error) (int, string) {
	switch {
	case errors.Is(err, services.ErrEmailAlreadyExists):
		return fiber.StatusConflict, services.ErrEmailAlreadyExists.Error()
	case errors.Is(err, entities.ErrUserNotFound):
		return fiber.StatusNotFound, entities.ErrUserNotFound.Error()
	}
	for _, target := range unauthorizedErrors {
		if errors.Is(err, target) {
			return fiber.StatusUnauthorized, target.Error()
		}
	}
	return fiber.StatusInternalServerError, ErrorInternal
}

func badRequest(c fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: message})
}
