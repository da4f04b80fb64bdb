package report

import (
	"context"

	"go.uber.org/fx"

	"github.com/thanhminhmr/go-testerror/configuration"
	"github.com/thanhminhmr/go-testerror/exception"
	"github.com/thanhminhmr/go-testerror/postgres"
)

const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
	StoreS3       = "s3"
)

type Config struct {
	Store        string `env:"REPORT_STORE" validate:"oneof=memory postgres s3"`
	DefaultLimit int    `env:"REPORT_DEFAULT_LIMIT" validate:"min=1,ltefield=MaxLimit"`
	MaxLimit     int    `env:"REPORT_MAX_LIMIT" validate:"min=1"`
}

type S3Config struct {
	Bucket    string `env:"REPORT_S3_BUCKET" validate:"required"`
	Endpoint  string `env:"REPORT_S3_ENDPOINT" validate:"omitempty,url"`
	Region    string `env:"REPORT_S3_REGION" validate:"required"`
	AccessKey string `env:"REPORT_S3_ACCESS_KEY"`
	SecretKey string `env:"REPORT_S3_SECRET_KEY"`
	Prefix    string `env:"REPORT_S3_PREFIX"`
}

func init() {
	configuration.SetDefault("REPORT_STORE", StoreMemory)
	configuration.SetDefault("REPORT_DEFAULT_LIMIT", "20")
	configuration.SetDefault("REPORT_MAX_LIMIT", "100")
	configuration.SetDefault("REPORT_S3_REGION", "us-east-1")
	configuration.SetDefault("REPORT_S3_PREFIX", "reports")
}

const (
	errorStoreConfig = exception.String("Report: Failed loading store config")
	errorStoreOpen   = exception.String("Report: Failed opening store")
)

// NewStore opens the store selected by the configuration. The backend
// specific configuration is only loaded for the selected backend.
func NewStore(ctx context.Context, lifecycle fx.Lifecycle, config *Config) (Store, error) {
	switch config.Store {
	case StorePostgres:
		var postgresConfig postgres.Config
		if err := configuration.Load(&postgresConfig); err != nil {
			return nil, errorStoreConfig.AddCause(err)
		}
		database, err := postgres.New(ctx, lifecycle, &postgresConfig, Migrations)
		if err != nil {
			return nil, errorStoreOpen.AddCause(err)
		}
		return NewPostgresStore(database), nil
	case StoreS3:
		var s3Config S3Config
		if err := configuration.Load(&s3Config); err != nil {
			return nil, errorStoreConfig.AddCause(err)
		}
		return NewS3Store(NewS3Client(&s3Config), &s3Config), nil
	default:
		return NewMemoryStore(), nil
	}
}
