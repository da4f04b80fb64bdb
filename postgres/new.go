package postgres

import (
	"context"
	"net/url"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/tracelog"
	"github.com/rs/zerolog"
	"go.uber.org/fx"

	"github.com/thanhminhmr/go-testerror/exception"
)

const (
	errorConfig  = exception.String("Postgres: Failed parsing config")
	errorConnect = exception.String("Postgres: Failed to connect to database")
	errorMigrate = exception.String("Postgres: Failed to migrate database")
)

// Database is a pooled Connection owned by the application lifecycle.
type Database interface {
	Connection

	close()
}

type _database struct {
	_connection[*pgxpool.Pool]
}

func (d _database) close() {
	d.pgx.Close()
}

// New connects to the PostgreSQL database specified in the configuration,
// applies the migration plan and closes the pool when the application stops.
func New(
	ctx context.Context,
	lifecycle fx.Lifecycle,
	config *Config,
	plan MigrationPlan,
) (Database, error) {
	parsedConfig, err := parseConfig(config)
	if err != nil {
		return nil, errorConfig.AddCause(err)
	}
	pool, err := pgxpool.NewWithConfig(ctx, parsedConfig)
	if err != nil {
		return nil, errorConnect.AddCause(err)
	}
	database := &_database{_connection: _connection[*pgxpool.Pool]{pgx: pool}}
	if len(plan) > 0 {
		migrateCtx, cancel := ctx, context.CancelFunc(func() {})
		if config.MigrationTimeout > 0 {
			migrateCtx, cancel = context.WithTimeout(ctx, time.Duration(config.MigrationTimeout)*time.Second)
		}
		err := plan.migrate(migrateCtx, database)
		cancel()
		if err != nil {
			database.close()
			return nil, errorMigrate.AddCause(err)
		}
	}
	lifecycle.Append(fx.Hook{
		OnStop: func(context.Context) error {
			database.close()
			return nil
		},
	})
	return database, nil
}

func parseConfig(config *Config) (*pgxpool.Config, error) {
	targetUrl := &url.URL{
		Scheme: "postgresql",
		Host:   config.Address,
		Path:   config.DatabaseName,
	}
	if config.Username != "" || config.Password != "" {
		targetUrl.User = url.UserPassword(config.Username, config.Password)
	}
	maxConnections := config.MaxConnections
	if maxConnections < 1 {
		maxConnections = 1
	}
	query := targetUrl.Query()
	query.Add("connect_timeout", "15") // seconds
	query.Add("pool_min_conns", "1")
	query.Add("pool_max_conns", strconv.Itoa(maxConnections))
	query.Add("pool_max_conn_lifetime", "1h")
	query.Add("pool_max_conn_lifetime_jitter", "5m")
	query.Add("pool_max_conn_idle_time", "1m")
	query.Add("pool_health_check_period", "15s")
	targetUrl.RawQuery = query.Encode()
	parsedConfig, err := pgxpool.ParseConfig(targetUrl.String())
	if err != nil {
		return nil, err
	}
	logLevel, err := tracelog.LogLevelFromString(config.LogLevel)
	if err != nil {
		return nil, err
	}
	parsedConfig.ConnConfig.Tracer = &tracelog.TraceLog{
		Logger:   tracelog.LoggerFunc(traceLogger),
		LogLevel: logLevel,
	}
	return parsedConfig, nil
}

// traceLogger forwards pgx trace events to the logger carried by ctx.
func traceLogger(ctx context.Context, level tracelog.LogLevel, msg string, data map[string]any) {
	logger := zerolog.Ctx(ctx)
	var event *zerolog.Event
	switch level {
	case tracelog.LogLevelError:
		event = logger.Error()
	case tracelog.LogLevelWarn:
		event = logger.Warn()
	case tracelog.LogLevelInfo:
		event = logger.Info()
	case tracelog.LogLevelDebug:
		event = logger.Debug()
	case tracelog.LogLevelTrace:
		event = logger.Trace()
	default:
		return
	}
	event.Any("data", data).Msg(msg)
}
