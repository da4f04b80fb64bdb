package http

import (
	"context"
	"fmt"
	"math/rand/v2"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"go.uber.org/fx"

	"github.com/thanhminhmr/go-testerror/capture"
	"github.com/thanhminhmr/go-testerror/configuration"
	"github.com/thanhminhmr/go-testerror/log"
	"github.com/thanhminhmr/go-testerror/metrics"
	"github.com/thanhminhmr/go-testerror/render"
)

type ServerConfig struct {
	Port uint16 `env:"HTTP_SERVER_PORT" validate:"required"`
}

type ServerExtraConfig struct {
	ReadHeaderTimeout uint32 `env:"HTTP_SERVER_READ_HEADER_TIMEOUT" validate:"min=0,max=60"`
	IdleTimeout       uint32 `env:"HTTP_SERVER_IDLE_TIMEOUT" validate:"min=0,max=3600"`
	MaxHeaderBytes    uint32 `env:"HTTP_SERVER_MAX_HEADER_BYTES" validate:"min=0,max=65536"`
	MaxBodyBytes      int64  `env:"HTTP_SERVER_MAX_BODY_BYTES" validate:"min=1024"`
}

func init() {
	configuration.SetDefault("HTTP_SERVER_PORT", "8080")
	configuration.SetDefault("HTTP_SERVER_READ_HEADER_TIMEOUT", "5")
	configuration.SetDefault("HTTP_SERVER_IDLE_TIMEOUT", "60")
	configuration.SetDefault("HTTP_SERVER_MAX_HEADER_BYTES", "4096")
	configuration.SetDefault("HTTP_SERVER_MAX_BODY_BYTES", "1048576")
}

// NewServer creates the router and binds an HTTP server serving it to the
// application lifecycle. Metrics are exposed on /metrics.
func NewServer(
	logger *zerolog.Logger,
	lifecycle fx.Lifecycle,
	config *ServerConfig,
	extraConfig *ServerExtraConfig,
	registry *metrics.Registry,
) chi.Router {
	router := chi.NewRouter()
	server := httpServer{
		logger:       logger,
		router:       router,
		maxBodyBytes: extraConfig.MaxBodyBytes,
		server: http.Server{
			Addr:              ":" + strconv.FormatUint(uint64(config.Port), 10),
			Handler:           router,
			ReadHeaderTimeout: time.Duration(extraConfig.ReadHeaderTimeout) * time.Second,
			IdleTimeout:       time.Duration(extraConfig.IdleTimeout) * time.Second,
			MaxHeaderBytes:    int(extraConfig.MaxHeaderBytes),
		},
	}
	router.Use(
		server.log,
		registry.Middleware,
		middleware.StripSlashes,
	)
	router.Method(http.MethodGet, "/metrics", registry.Handler())
	lifecycle.Append(fx.Hook{
		OnStart: server.onStart,
		OnStop:  server.onStop,
	})
	return router
}

type httpServer struct {
	logger       *zerolog.Logger
	router       *chi.Mux
	server       http.Server
	maxBodyBytes int64
}

func (s *httpServer) onStart(_ context.Context) error {
	s.logger.Info().Msg("Listing all routes...")
	if err := chi.Walk(s.router, s.dumpRoutes); err != nil {
		s.logger.Error().Err(err).Msg("Error walking routes")
		return err
	}
	s.logger.Info().Msg("Listed all routes")
	go s.serve()
	return nil
}

func (s *httpServer) serve() {
	s.logger.Info().Str("addr", s.server.Addr).Msg("Start serving")
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		s.logger.Error().Err(err).Msg("Shutdown with error")
	}
}

func (s *httpServer) onStop(ctx context.Context) error {
	s.logger.Info().Msg("Shutting down...")
	if err := s.server.Shutdown(ctx); err != nil {
		s.logger.Error().Err(err).Msg("Shutdown with error")
		return err
	}
	s.logger.Info().Msg("Shutdown complete")
	return nil
}

func (s *httpServer) dumpRoutes(
	method string,
	route string,
	handler http.Handler,
	middlewares ...func(http.Handler) http.Handler,
) error {
	s.logger.Info().
		Stringer("handler", log.Func(handler)).
		Array("middlewares", log.Funcs(middlewares)).
		Msgf("Route: %s %s", method, route)
	return nil
}

func (s *httpServer) log(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		logger := s.logger.With().Str("request_id", fmt.Sprintf("%016x", rand.Uint64())).Logger()
		logger.Info().
			Str("method", request.Method).
			Stringer("url", request.URL).
			Msg("Request")
		start := time.Now()
		wrappedWriter := middleware.NewWrapResponseWriter(writer, request.ProtoMajor)
		defer func(start time.Time, wrappedWriter middleware.WrapResponseWriter) {
			logger.Info().
				Int("status", wrappedWriter.Status()).
				Int("bytes", wrappedWriter.BytesWritten()).
				Dur("duration", time.Since(start)).
				Msg("Response")
		}(start, wrappedWriter)
		defer func() {
			if recovered := recover(); recovered != nil {
				logger.Error().
					Str("report", capture.FormatPanic(recovered, render.New(false))).
					Msg("Recovered from panic")
				if wrappedWriter.Status() == 0 {
					wrappedWriter.WriteHeader(http.StatusInternalServerError)
				}
			}
		}()
		if s.maxBodyBytes > 0 && request.Body != nil {
			request.Body = http.MaxBytesReader(wrappedWriter, request.Body, s.maxBodyBytes)
		}
		next.ServeHTTP(wrappedWriter, request.WithContext(logger.WithContext(request.Context())))
	})
}
