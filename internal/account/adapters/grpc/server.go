// Package grpc предоставляет gRPC сервер проверки состояния сервиса учетных записей.
package grpc

import (
	"context"
	"fmt"
	"net"
	"sync"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"accountapi/internal/account/config"
	"accountapi/pkg/logger"
)

// ServiceName - имя сервиса в протоколе grpc.health.v1.
const ServiceName = "account"

// Константы для логирования.
const (
	LogServerStarting = "starting gRPC server"
	LogServerStarted  = "gRPC server started"
	LogServerStopping = "stopping gRPC server"
	LogServerStopped  = "gRPC server stopped"
	LogHealthChanged  = "health status changed"
	ErrServerStart    = "failed to start gRPC server"
	ErrServerServe    = "gRPC server stopped serving"
)

const defaultHealthInterval = 10 * time.Second

// Probe проверяет доступность зависимости сервиса.
type Probe func(ctx context.Context) error

// Server представляет gRPC сервер с сервисом health и reflection.
type Server struct {
	cfg    *config.GRPCConfig
	server *grpc.Server
	health *health.Server
	probe  Probe

	mu       sync.Mutex
	listener net.Listener
	serving  healthpb.HealthCheckResponse_ServingStatus
	stop     chan struct{}
	done     chan struct{}
}

// New создает новый экземпляр gRPC сервера. probe может быть nil.
func New(cfg *config.GRPCConfig, probe Probe) *Server {
	s := &Server{
		cfg:     cfg,
		server:  grpc.NewServer(),
		health:  health.NewServer(),
		probe:   probe,
		serving: healthpb.HealthCheckResponse_UNKNOWN,
	}

	healthpb.RegisterHealthServer(s.server, s.health)
	reflection.Register(s.server)

	return s
}

// Start запускает gRPC сервер и периодическую проверку состояния.
func (s *Server) Start(ctx context.Context) error {
	log := logger.Log(ctx)
	address := s.cfg.GetAddress()

	log.Info(ctx, LogServerStarting, zap.String("address", address))

	listener, err := net.Listen("tcp", address)
	if err != nil {
		log.Error(ctx, ErrServerStart, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrServerStart, err)
	}

	s.mu.Lock()
	s.listener = listener
	s.stop = make(chan struct{})
	s.done = make(chan struct{})
	s.mu.Unlock()

	s.CheckHealth(ctx)

	go func() {
		if err := s.server.Serve(listener); err != nil {
			log.Error(ctx, ErrServerServe, zap.Error(err))
		}
	}()
	go s.watchHealth(context.WithoutCancel(ctx))

	log.Info(ctx, LogServerStarted, zap.String("address", listener.Addr().String()))
	return nil
}

// Addr возвращает фактический адрес прослушивания или пустую строку до Start.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// CheckHealth выполняет проверку и обновляет статус сервиса.
func (s *Server) CheckHealth(ctx context.Context) healthpb.HealthCheckResponse_ServingStatus {
	status := healthpb.HealthCheckResponse_SERVING
	var probeErr error
	if s.probe != nil {
		if probeErr = s.probe(ctx); probeErr != nil {
			status = healthpb.HealthCheckResponse_NOT_SERVING
		}
	}

	s.mu.Lock()
	changed := s.serving != status
	s.serving = status
	s.mu.Unlock()

	if changed {
		fields := []zap.Field{zap.Stringer("status", status)}
		if probeErr != nil {
			fields = append(fields, zap.Error(probeErr))
		}
		logger.Log(ctx).Info(ctx, LogHealthChanged, fields...)
	}

	s.health.SetServingStatus("", status)
	s.health.SetServingStatus(ServiceName, status)
	return status
}

func (s *Server) watchHealth(ctx context.Context) {
	s.mu.Lock()
	stop, done := s.stop, s.done
	s.mu.Unlock()
	defer close(done)

	interval := s.cfg.HealthInterval
	if interval <= 0 {
		interval = defaultHealthInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			probeCtx, cancel := context.WithTimeout(ctx, interval)
			s.CheckHealth(probeCtx)
			cancel()
		}
	}
}

// Stop переводит сервис в NOT_SERVING и останавливает gRPC сервер.
func (s *Server) Stop(ctx context.Context) {
	log := logger.Log(ctx)
	log.Info(ctx, LogServerStopping)

	s.mu.Lock()
	stop, done := s.stop, s.done
	s.stop = nil
	s.mu.Unlock()

	if stop != nil {
		close(stop)
		<-done
	}

	s.health.Shutdown()
	s.server.GracefulStop()
	log.Info(ctx, LogServerStopped)
}
