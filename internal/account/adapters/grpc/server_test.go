package grpc_test

import (
	"context"
	"errors"
	"net"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	accountgrpc "accountapi/internal/account/adapters/grpc"
	"accountapi/internal/account/config"
	"accountapi/pkg/logger"
)

var errDatabaseDown = errors.New("database is down")

func newHealthClient(t *testing.T, addr string) healthpb.HealthClient {
	t.Helper()

	conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return healthpb.NewHealthClient(conn)
}

func testContext(t *testing.T) context.Context {
	t.Helper()

	testLogger, err := logger.NewLogger(logger.Development, "debug")
	require.NoError(t, err)
	return logger.NewContext(context.Background(), testLogger)
}

func TestServer_HealthFollowsProbe(t *testing.T) {
	ctx := testContext(t)

	var healthy atomic.Bool
	healthy.Store(true)
	probe := func(context.Context) error {
		if healthy.Load() {
			return nil
		}
		return errDatabaseDown
	}

	srv := accountgrpc.New(&config.GRPCConfig{Host: "127.0.0.1", Port: 0, HealthInterval: time.Hour}, probe)
	require.NoError(t, srv.Start(ctx))
	t.Cleanup(func() { srv.Stop(ctx) })

	client := newHealthClient(t, srv.Addr())

	for _, service := range []string{"", accountgrpc.ServiceName} {
		resp, err := client.Check(ctx, &healthpb.HealthCheckRequest{Service: service})
		require.NoError(t, err)
		assert.Equal(t, healthpb.HealthCheckResponse_SERVING, resp.GetStatus())
	}

	healthy.Store(false)
	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, srv.CheckHealth(ctx))

	resp, err := client.Check(ctx, &healthpb.HealthCheckRequest{Service: accountgrpc.ServiceName})
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, resp.GetStatus())
}

func TestServer_PeriodicProbe(t *testing.T) {
	ctx := testContext(t)

	var calls atomic.Int32
	probe := func(context.Context) error {
		calls.Add(1)
		return nil
	}

	srv := accountgrpc.New(&config.GRPCConfig{Host: "127.0.0.1", Port: 0, HealthInterval: 10 * time.Millisecond}, probe)
	require.NoError(t, srv.Start(ctx))

	assert.Eventually(t, func() bool { return calls.Load() >= 3 }, time.Second, 5*time.Millisecond)
	srv.Stop(ctx)
}

func TestServer_StartAddressInUse(t *testing.T) {
	ctx := testContext(t)

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = listener.Close() })
	port := listener.Addr().(*net.TCPAddr).Port

	srv := accountgrpc.New(&config.GRPCConfig{Host: "127.0.0.1", Port: port}, nil)

	assert.Error(t, srv.Start(ctx))
	assert.Empty(t, srv.Addr())
}

func TestServer_NilProbeIsServing(t *testing.T) {
	ctx := testContext(t)
	srv := accountgrpc.New(&config.GRPCConfig{Host: "127.0.0.1"}, nil)

	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, srv.CheckHealth(ctx))
	srv.Stop(ctx)
}
