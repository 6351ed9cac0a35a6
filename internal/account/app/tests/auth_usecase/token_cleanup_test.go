package authusecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"accountapi/internal/account/app"
)

func TestRunTokenCleanup(t *testing.T) {
	tokenRepo := new(mockTokenRepository)
	ctx, cancel := context.WithCancel(context.Background())

	called := make(chan struct{}, 8)
	tokenRepo.On("CleanupExpiredTokens", mock.Anything).Return(errDatabase).Once()
	tokenRepo.On("CleanupExpiredTokens", mock.Anything).Run(func(mock.Arguments) {
		select {
		case called <- struct{}{}:
		default:
		}
	}).Return(nil)

	done := make(chan struct{})
	go func() {
		app.RunTokenCleanup(ctx, tokenRepo, 5*time.Millisecond)
		close(done)
	}()

	select {
	case <-called:
	case <-time.After(time.Second):
		t.Fatal("cleanup was not invoked after a failed run")
	}

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("cleanup did not stop after context cancellation")
	}

	assert.GreaterOrEqual(t, len(tokenRepo.Calls), 2)
}
