package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "dca",
	Short: "A dynamic cost averaging backtester",
	Long: `dca backtests a periodic, deviation-adjusted capital deployment policy
over historical daily bars.

It provides tools for:
  - Backtesting the dynamic cost averaging policy against bar datasets
  - Downloading daily kline archives from Binance's public data dumps
  - Journaling investment and exit events to CSV or SQLite
  - Generating and validating run configurations

Complete documentation is available at https://github.com/rustyeddy/dca`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}
