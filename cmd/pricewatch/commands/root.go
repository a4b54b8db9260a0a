// Package commands implements the CLI commands for pricewatch.
package commands

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "pricewatch",
	Short: "Compare a product's price against its competitors",
	Long: `Pricewatch fetches a product page and its competitors' pages,
extracts a price from each, and reports how your price stacks up.

Examples:
  # Compare one product against two competitors
  pricewatch compare -u "https://myshop.com/widget" \
      -c "https://rival-a.com/widget" -c "https://rival-b.com/widget"

  # Compare every product in a tracking file, as JSON
  pricewatch compare --file products.yaml --format json

  # Run the HTTP API
  pricewatch serve --listen :8080`,
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().String("config", "", "config file (default $HOME/.pricewatch.yaml)")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "suppress progress output")

	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag("quiet", rootCmd.PersistentFlags().Lookup("quiet"))
}

func initConfig() {
	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
		viper.AddConfigPath(".")
		viper.SetConfigName(".pricewatch")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("PRICEWATCH")
	viper.AutomaticEnv()

	// Read config file (ignore error if not found)
	_ = viper.ReadInConfig()
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
