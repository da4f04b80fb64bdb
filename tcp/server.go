package tcp

import (
	"context"
	"fmt"
	"math/rand/v2"
	"net"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"
	"go.uber.org/fx"

	"github.com/thanhminhmr/go-testerror/capture"
	"github.com/thanhminhmr/go-testerror/configuration"
	"github.com/thanhminhmr/go-testerror/render"
)

type ServerConfig struct {
	Port               uint16 `env:"TCP_SERVER_PORT" validate:"required"`
	MaxConnections     int    `env:"TCP_SERVER_MAX_CONNECTIONS" validate:"min=1"`
	ShutdownOnError    bool   `env:"TCP_SERVER_SHUTDOWN_ON_ERROR"`
	TracePerConnection bool   `env:"TCP_SERVER_TRACE_PER_CONNECTION"`
}

func init() {
	configuration.SetDefault("TCP_SERVER_PORT", "9090")
	configuration.SetDefault("TCP_SERVER_MAX_CONNECTIONS", "1024")
}

type ServerHandler interface {
	Handle(ctx context.Context, conn net.Conn) error
}

type ServerHandlerFunc func(ctx context.Context, conn net.Conn) error

func (f ServerHandlerFunc) Handle(ctx context.Context, conn net.Conn) error {
	return f(ctx, conn)
}

// NewServer binds a TCP server to the application lifecycle. Each accepted
// connection is served by handler on its own goroutine, at most
// MaxConnections at a time.
func NewServer(
	ctx context.Context,
	lifecycle fx.Lifecycle,
	shutdown fx.Shutdowner,
	config *ServerConfig,
	handler ServerHandler,
) {
	server := &tcpServer{
		ctx:       ctx,
		shutdown:  shutdown,
		config:    config,
		handler:   handler,
		semaphore: make(chan struct{}, max(config.MaxConnections, 1)),
	}
	lifecycle.Append(fx.Hook{
		OnStart: server.onStart,
		OnStop:  server.onStop,
	})
}

type tcpServer struct {
	ctx       context.Context
	shutdown  fx.Shutdowner
	config    *ServerConfig
	handler   ServerHandler
	semaphore chan struct{}
	listener  atomic.Pointer[net.Listener]
	waitGroup sync.WaitGroup
}

func (s *tcpServer) onStart(context.Context) error {
	logger := zerolog.Ctx(s.ctx)
	listener, err := net.Listen("tcp", ":"+strconv.FormatUint(uint64(s.config.Port), 10))
	if err != nil {
		logger.Error().Err(err).Uint16("port", s.config.Port).Msg("Failed to listen")
		return err
	}
	s.listener.Store(&listener)
	logger.Info().Uint16("port", s.config.Port).Msg("Start listening")
	go s.worker(listener)
	return nil
}

func (s *tcpServer) halt(unexpected bool) {
	if listener := s.listener.Swap(nil); listener != nil {
		logger := zerolog.Ctx(s.ctx)
		if err := (*listener).Close(); err != nil {
			logger.Error().Err(err).Msg("Failed to close listener")
		}
		// exit with an error code only if the worker died on its own
		if unexpected && s.config.ShutdownOnError {
			if err := s.shutdown.Shutdown(fx.ExitCode(1)); err != nil {
				logger.Error().Err(err).Msg("Failed to send shutdown signal")
			}
		}
	}
}

func (s *tcpServer) worker(listener net.Listener) {
	defer s.halt(true)
	logger := zerolog.Ctx(s.ctx)
	for {
		// acquire a slot, blocking while all are taken
		select {
		case <-s.ctx.Done():
			logger.Info().Err(s.ctx.Err()).Msg("Stop accepting connection")
			return
		case s.semaphore <- struct{}{}:
		}
		connection, err := listener.Accept()
		if err != nil {
			<-s.semaphore
			if s.listener.Load() != nil {
				logger.Error().Err(err).Msg("Failed to accept connection")
			}
			return
		}
		s.waitGroup.Add(1)
		go s.execute(connection)
	}
}

func (s *tcpServer) execute(connection net.Conn) {
	logger := zerolog.Ctx(s.ctx).With().Str("connection_id", fmt.Sprintf("%016x", rand.Uint64())).Logger()
	if s.config.TracePerConnection {
		logger.Trace().
			Stringer("remote_address", connection.RemoteAddr()).
			Stringer("local_address", connection.LocalAddr()).
			Msg("Start handling connection")
	}
	defer func() {
		if recovered := recover(); recovered != nil {
			logger.Error().
				Str("report", capture.FormatPanic(recovered, render.New(false))).
				Msg("Panic while handling connection")
		}
		s.waitGroup.Done()
		<-s.semaphore
		if s.config.TracePerConnection {
			logger.Trace().
				Stringer("remote_address", connection.RemoteAddr()).
				Msg("Finish handling connection")
		}
	}()
	defer func() {
		if err := connection.Close(); err != nil {
			logger.Debug().Err(err).Msg("Failed to close connection")
		}
	}()
	if err := s.handler.Handle(logger.WithContext(s.ctx), connection); err != nil {
		logger.Error().Err(err).Msg("Error handling connection")
	}
}

func (s *tcpServer) onStop(ctx context.Context) error {
	s.halt(false)
	zerolog.Ctx(s.ctx).Info().Uint16("port", s.config.Port).Msg("Stop listening")
	done := make(chan struct{})
	go func(done chan<- struct{}) {
		s.waitGroup.Wait()
		close(done)
	}(done)
	select {
	case <-s.ctx.Done():
	case <-ctx.Done():
	case <-done:
	}
	return nil
}
