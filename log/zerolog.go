package log

import (
	"context"
	"io"
	"os"

	"github.com/rs/zerolog"
	"go.uber.org/fx"

	"github.com/thanhminhmr/go-testerror/configuration"
)

type Config struct {
	Level string `env:"LOG_LEVEL" validate:"oneof=trace debug info warn error disabled"`
}

func init() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnixNano
	configuration.SetDefault("LOG_LEVEL", "info")
}

// NewLogger creates a console logger writing to output at the configured level.
func NewLogger(output io.Writer, config *Config) zerolog.Logger {
	level, err := zerolog.ParseLevel(config.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{
		Out:        output,
		TimeFormat: "2006-01-02T15:04:05.000000000Z07:00",
	}).Level(level).With().Timestamp().Caller().Logger()
}

// ConsoleLogger provides the application logger on stderr and the root context
// carrying it. The context is cancelled when the application stops.
func ConsoleLogger(lifecycle fx.Lifecycle, config *Config) (*zerolog.Logger, context.Context) {
	logger := NewLogger(os.Stderr, config)
	ctx, cancel := context.WithCancel(logger.WithContext(context.Background()))
	lifecycle.Append(fx.Hook{
		OnStop: func(context.Context) error {
			cancel()
			return nil
		},
	})
	return zerolog.Ctx(ctx), ctx
}
