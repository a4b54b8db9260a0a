package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/time/rate"
	"gopkg.in/yaml.v3"

	"github.com/pricewatch/pricewatch/internal/logger"
	"github.com/pricewatch/pricewatch/internal/output"
	"github.com/pricewatch/pricewatch/pkg/compare"
	"github.com/pricewatch/pricewatch/pkg/fetch"
)

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Fetch prices and compare against competitors",
	Long: `Compare fetches the product page and every competitor page,
extracts a price from each, and reports the comparison.

A single product is given with -u and repeated -c flags. Several
products can be compared in one run from a YAML tracking file:

  - url: https://myshop.com/widget
    competitors:
      - https://rival-a.com/widget
      - https://rival-b.com/widget`,
	RunE: runCompare,
}

func init() {
	rootCmd.AddCommand(compareCmd)

	flags := compareCmd.Flags()

	flags.StringP("url", "u", "", "own product URL")
	flags.StringSliceP("competitor", "c", nil, "competitor URL (can be repeated)")
	flags.String("file", "", "YAML file with products to compare")

	flags.StringP("output", "o", "", "output file (default: stdout)")
	flags.String("format", "text", "output format: text, json, jsonl, yaml")

	flags.Duration("timeout", 10*time.Second, "per-request timeout")
	flags.IntP("concurrency", "n", 3, "concurrent competitor fetches")
	flags.Float64("rate", 0, "max requests per second (0 = unlimited)")
	flags.Duration("max-age", 0, "skip file products not updated within this duration (0 = compare all)")
}

func runCompare(cmd *cobra.Command, args []string) error {
	logger.Init(logger.Options{
		Debug: viper.GetBool("debug"),
		Quiet: viper.GetBool("quiet"),
	})

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	products, err := loadProducts(cmd)
	if err != nil {
		return err
	}
	if len(products) == 0 {
		return cmd.Help()
	}

	timeout, _ := cmd.Flags().GetDuration("timeout")
	concurrency, _ := cmd.Flags().GetInt("concurrency")
	reqRate, _ := cmd.Flags().GetFloat64("rate")
	maxAge, _ := cmd.Flags().GetDuration("max-age")

	var limiter *rate.Limiter
	if reqRate > 0 {
		limiter = rate.NewLimiter(rate.Limit(reqRate), 1)
	}

	client := fetch.NewClient(fetch.Config{
		Timeout: timeout,
		Limiter: limiter,
	})

	quiet := viper.GetBool("quiet")
	engine := compare.NewEngine(client, compare.Config{
		Concurrency: concurrency,
		Progress: func(fraction float64) {
			if !quiet {
				fmt.Fprintf(os.Stderr, "\rcomparing... %3.0f%%", fraction*100)
			}
		},
	})

	out := os.Stdout
	if path, _ := cmd.Flags().GetString("output"); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer f.Close()
		out = f
	}

	format, _ := cmd.Flags().GetString("format")
	writer, err := output.NewWriter(out, output.Format(format))
	if err != nil {
		return err
	}

	for _, p := range products {
		if maxAge > 0 && p.Stale(maxAge) {
			logger.Warn("skipping stale product", "url", p.URL, "last_updated", p.LastUpdated)
			continue
		}

		report := engine.CompareProduct(ctx, p)
		if !quiet {
			fmt.Fprintln(os.Stderr)
		}
		if err := writer.Write(report); err != nil {
			return err
		}
	}

	return writer.Close()
}

// loadProducts builds the product list from flags or a tracking file.
func loadProducts(cmd *cobra.Command) ([]compare.Product, error) {
	if path, _ := cmd.Flags().GetString("file"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading product file: %w", err)
		}
		var products []compare.Product
		if err := yaml.Unmarshal(data, &products); err != nil {
			return nil, fmt.Errorf("parsing product file: %w", err)
		}
		return products, nil
	}

	ownURL, _ := cmd.Flags().GetString("url")
	competitors, _ := cmd.Flags().GetStringSlice("competitor")
	if ownURL == "" {
		return nil, nil
	}
	if len(competitors) == 0 {
		return nil, fmt.Errorf("at least one competitor URL is required")
	}

	return []compare.Product{{
		URL:         ownURL,
		Competitors: competitors,
		LastUpdated: time.Now(),
	}}, nil
}
