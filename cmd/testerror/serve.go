package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/fx"

	"github.com/thanhminhmr/go-testerror/api"
	"github.com/thanhminhmr/go-testerror/configuration"
	httpserver "github.com/thanhminhmr/go-testerror/http"
	"github.com/thanhminhmr/go-testerror/log"
	"github.com/thanhminhmr/go-testerror/metrics"
	"github.com/thanhminhmr/go-testerror/render"
	"github.com/thanhminhmr/go-testerror/report"
	"github.com/thanhminhmr/go-testerror/tcp"
	"github.com/thanhminhmr/go-testerror/testerror"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the report API over HTTP and TCP",
	Long: `serve accepts error reports over HTTP (POST /v1/reports) and over TCP
(one JSON report per line), stores the rendered reports and exposes
Prometheus metrics on /metrics. It is configured by environment variables
and an optional .env file.`,
	Run: func(cmd *cobra.Command, args []string) {
		newApplication().Run()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func newApplication() *fx.App {
	return fx.New(
		fx.WithLogger(log.InitFxLogger),
		fx.Provide(
			configuration.Loader[log.Config](),
			configuration.Loader[httpserver.ServerConfig](),
			configuration.Loader[httpserver.ServerExtraConfig](),
			configuration.Loader[tcp.ServerConfig](),
			configuration.Loader[report.Config](),
			log.ConsoleLogger,
			metrics.NewRegistry,
			newStoredRenderer,
			report.NewStore,
			report.NewService,
			httpserver.NewServer,
			api.LineHandler,
		),
		fx.Invoke(
			api.Register,
			tcp.NewServer,
		),
	)
}

// newStoredRenderer renders stored reports without colors, they are served to
// clients that may not be terminals.
func newStoredRenderer() testerror.Renderer {
	return render.New(false)
}
