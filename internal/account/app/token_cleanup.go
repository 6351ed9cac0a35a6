package app

import (
	"context"
	"time"

	"go.uber.org/zap"

	"accountapi/internal/account/ports/repositories"
	"accountapi/pkg/logger"
)

const (
	msgTokenCleanupStarted = "expired refresh token cleanup started"
	msgTokenCleanupStopped = "expired refresh token cleanup stopped"
	msgErrTokenCleanup     = "failed to clean up expired refresh tokens"
)

// RunTokenCleanup периодически удаляет истекшие refresh-токены до отмены ctx.
func RunTokenCleanup(ctx context.Context, tokenRepo repositories.TokenRepository, interval time.Duration) {
	log := logger.Log(ctx).With(zap.String("method", "RunTokenCleanup"))
	log.Info(ctx, msgTokenCleanupStarted, zap.Duration("interval", interval))

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info(ctx, msgTokenCleanupStopped)
			return
		case <-ticker.C:
			if err := tokenRepo.CleanupExpiredTokens(ctx); err != nil && ctx.Err() == nil {
				log.Warn(ctx, msgErrTokenCleanup, zap.Error(err))
			}
		}
	}
}
