package grpc

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"golang.org/x/time/rate"
	"google.golang.org/grpc"

	"github.com/andrescamacho/manoria-go/internal/application/mediator"
)

// ServerOptions tunes the daemon server
type ServerOptions struct {
	// Requests per second admitted by the rate limiter; 0 disables limiting
	RateLimit int
	Burst     int

	// Time allowed for in-flight calls to finish before a hard stop
	ShutdownTimeout time.Duration

	Logger *slog.Logger
}

// DaemonServer serves the settlement service over a unix socket
type DaemonServer struct {
	listener   net.Listener
	grpcServer *grpc.Server
	logger     *slog.Logger
	timeout    time.Duration

	shutdownChan chan os.Signal
	done         chan struct{}
	stopOnce     sync.Once
}

// NewDaemonServer listens on socketPath and prepares the gRPC server
func NewDaemonServer(m mediator.Mediator, socketPath string, opts ServerOptions) (*DaemonServer, error) {
	// Remove a socket left behind by a previous run
	if err := os.RemoveAll(socketPath); err != nil {
		return nil, fmt.Errorf("failed to remove existing socket: %w", err)
	}

	listener, err := net.Listen("unix", socketPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create unix socket listener: %w", err)
	}

	// Owner only
	if err := os.Chmod(socketPath, 0600); err != nil {
		listener.Close()
		return nil, fmt.Errorf("failed to set socket permissions: %w", err)
	}

	server := NewDaemonServerWithListener(m, listener, opts)
	signal.Notify(server.shutdownChan, os.Interrupt, syscall.SIGTERM)
	return server, nil
}

// NewDaemonServerWithListener serves on an existing listener without
// installing signal handlers
func NewDaemonServerWithListener(m mediator.Mediator, listener net.Listener, opts ServerOptions) *DaemonServer {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	interceptors := []grpc.UnaryServerInterceptor{loggingInterceptor(logger)}
	if opts.RateLimit > 0 {
		burst := opts.Burst
		if burst < 1 {
			burst = 1
		}
		limiter := rate.NewLimiter(rate.Limit(opts.RateLimit), burst)
		interceptors = append([]grpc.UnaryServerInterceptor{rateLimitInterceptor(limiter)}, interceptors...)
	}

	grpcServer := grpc.NewServer(grpc.ChainUnaryInterceptor(interceptors...))
	RegisterSettlementServiceServer(grpcServer, newSettlementServiceImpl(m))

	return &DaemonServer{
		listener:     listener,
		grpcServer:   grpcServer,
		logger:       logger,
		timeout:      opts.ShutdownTimeout,
		shutdownChan: make(chan os.Signal, 1),
		done:         make(chan struct{}),
	}
}

// Addr returns the listening address
func (s *DaemonServer) Addr() net.Addr {
	return s.listener.Addr()
}

// Start serves requests until a shutdown signal arrives or Stop is called
func (s *DaemonServer) Start() error {
	s.logger.Info("daemon server listening", "address", s.listener.Addr().String())

	go s.handleShutdown()

	errChan := make(chan error, 1)
	go func() {
		if err := s.grpcServer.Serve(s.listener); err != nil {
			errChan <- fmt.Errorf("gRPC server error: %w", err)
		}
	}()

	select {
	case err := <-errChan:
		return err
	case <-s.done:
		s.gracefulStop()
		return nil
	}
}

// Stop triggers the same shutdown path as a signal
func (s *DaemonServer) Stop() {
	s.stopOnce.Do(func() { close(s.done) })
}

func (s *DaemonServer) handleShutdown() {
	select {
	case sig := <-s.shutdownChan:
		s.logger.Info("shutdown signal received", "signal", sig.String())
		s.Stop()
	case <-s.done:
	}
	signal.Stop(s.shutdownChan)
}

// gracefulStop waits for in-flight calls up to the shutdown timeout
func (s *DaemonServer) gracefulStop() {
	s.logger.Info("initiating graceful shutdown of gRPC server")

	stopped := make(chan struct{})
	go func() {
		s.grpcServer.GracefulStop()
		close(stopped)
	}()

	if s.timeout <= 0 {
		<-stopped
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	select {
	case <-stopped:
	case <-ctx.Done():
		s.logger.Warn("graceful shutdown timed out, forcing stop", "timeout", s.timeout)
		s.grpcServer.Stop()
	}
}
