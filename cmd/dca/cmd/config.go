package cmd

import (
	"fmt"

	"github.com/rustyeddy/dca/config"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Generate or validate run configuration files",
	Long: `Manage configuration files for backtest runs.

Subcommands:
  init     - Generate a default configuration file
  validate - Validate an existing configuration file

Examples:
  dca config init --output run.yaml
  dca config validate --config run.yaml`,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate a default configuration file",
	RunE:  runConfigInit,
}

var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a configuration file",
	RunE:  runConfigValidate,
}

var (
	configInitOutput   string
	configValidatePath string
)

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configValidateCmd)

	configInitCmd.Flags().StringVarP(&configInitOutput, "output", "o", "run.yaml", "output file path")
	configValidateCmd.Flags().StringVarP(&configValidatePath, "config", "c", "run.yaml", "config file to validate")
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	cfg := config.Default()
	if err := cfg.SaveToFile(configInitOutput); err != nil {
		return err
	}
	fmt.Printf("Wrote default configuration to %s\n", configInitOutput)
	return nil
}

func runConfigValidate(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadFromFile(configValidatePath)
	if err != nil {
		return err
	}
	fmt.Printf("%s is valid (symbol %s, base $%.2f every %d days)\n",
		configValidatePath, cfg.Strategy.Symbol, cfg.Strategy.BaseCash, cfg.Strategy.IntervalDays)
	return nil
}
