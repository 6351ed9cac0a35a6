package resilience

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"accountapi/pkg/logger"
)

// Guard объединяет Circuit Breaker и повторные попытки для одной зависимости.
type Guard struct {
	name    string
	breaker *CircuitBreaker
	retry   *Retry
	// expected - ошибки, означающие штатный ответ зависимости (например, промах кэша).
	expected []error
}

// NewGuard создает Guard. Ошибки из expected не повторяются и не размыкают цепь.
func NewGuard(name string, cbConfig CircuitBreakerConfig, retryConfig RetryConfig, expected ...error) *Guard {
	g := &Guard{
		name:     name,
		breaker:  NewCircuitBreaker(name, cbConfig),
		expected: expected,
	}

	shouldRetry := retryConfig.ShouldRetry
	if shouldRetry == nil {
		shouldRetry = defaultShouldRetry
	}
	retryConfig.ShouldRetry = func(err error) bool {
		return !g.isExpected(err) && shouldRetry(err)
	}
	g.retry = NewRetry(name, retryConfig)

	return g
}

// Do выполняет операцию под защитой Guard.
func (g *Guard) Do(ctx context.Context, operation string, fn func(ctx context.Context) error) error {
	logger.Log(ctx).Debug(ctx, "guarded call",
		zap.String("dependency", g.name),
		zap.String("operation", operation),
	)

	return g.breaker.Execute(ctx, func() error {
		return g.retry.Execute(ctx, func() error {
			return fn(ctx)
		})
	}, g.isExpected)
}

// State возвращает состояние Circuit Breaker.
func (g *Guard) State() CircuitState {
	return g.breaker.State()
}

func (g *Guard) isExpected(err error) bool {
	for _, e := range g.expected {
		if errors.Is(err, e) {
			return true
		}
	}
	return false
}
