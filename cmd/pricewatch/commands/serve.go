package commands

import (
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/time/rate"

	"github.com/pricewatch/pricewatch/internal/api"
	"github.com/pricewatch/pricewatch/internal/logger"
	"github.com/pricewatch/pricewatch/pkg/compare"
	"github.com/pricewatch/pricewatch/pkg/fetch"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the comparison HTTP API",
	Long: `Serve exposes the comparison engine over HTTP:

  POST /api/v1/compare  {"own_url": "...", "competitor_urls": ["..."]}
  GET  /health
  GET  /version`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	flags := serveCmd.Flags()
	flags.String("listen", ":8080", "listen address")
	flags.Duration("timeout", 10*time.Second, "per-request fetch timeout")
	flags.IntP("concurrency", "n", 3, "concurrent competitor fetches per comparison")
	flags.Float64("rate", 2, "max outgoing requests per second (0 = unlimited)")
	flags.String("mode", "release", "gin mode: debug, release")

	_ = viper.BindPFlag("listen", flags.Lookup("listen"))
}

func runServe(cmd *cobra.Command, args []string) error {
	logger.Init(logger.Options{
		Debug: viper.GetBool("debug"),
		Quiet: viper.GetBool("quiet"),
	})

	timeout, _ := cmd.Flags().GetDuration("timeout")
	concurrency, _ := cmd.Flags().GetInt("concurrency")
	reqRate, _ := cmd.Flags().GetFloat64("rate")
	mode, _ := cmd.Flags().GetString("mode")

	var limiter *rate.Limiter
	if reqRate > 0 {
		limiter = rate.NewLimiter(rate.Limit(reqRate), 1)
	}

	client := fetch.NewClient(fetch.Config{
		Timeout: timeout,
		Limiter: limiter,
	})
	engine := compare.NewEngine(client, compare.Config{Concurrency: concurrency})

	server := api.NewServer(engine, api.Config{Mode: mode})

	listen := viper.GetString("listen")
	logger.Info("starting API", "listen", listen)
	return server.Run(listen)
}
