package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/rustyeddy/dca"
	"github.com/rustyeddy/dca/backtest"
	"github.com/rustyeddy/dca/config"
	"github.com/rustyeddy/dca/journal"
	"github.com/rustyeddy/dca/sim"
	"github.com/spf13/cobra"
)

var backtestCmd = &cobra.Command{
	Use:   "backtest",
	Short: "Run a dynamic cost averaging backtest over a bar dataset",
	Long: `Backtest replays a daily bar CSV through the dynamic cost averaging
engine against a simulated broker.

Every parameter can come from a config file (see 'dca config init') or from
flags; flags win when both are given.

Example:
  dca backtest --bars data/SOLUSDT-1d.csv --symbol SOLUSDT --cash 10000
  dca backtest --config run.yaml`,
	RunE: runBacktest,
}

var (
	btConfigPath string
	btBarsPath   string
	btSymbol     string
	btCash       float64
	btBaseCash   float64
	btMAPeriod   int
	btInterval   int
	btTarget     float64
	btRatio      float64
	btCooldown   int
	btSizing     string
	btDBPath     string
	btJournal    string
	btVerbose    bool
)

func init() {
	rootCmd.AddCommand(backtestCmd)

	backtestCmd.Flags().StringVarP(&btConfigPath, "config", "c", "", "path to YAML/JSON run configuration")
	backtestCmd.Flags().StringVarP(&btBarsPath, "bars", "b", "", "path to daily bar CSV (plain or .xz)")
	backtestCmd.Flags().StringVarP(&btSymbol, "symbol", "s", "SOLUSDT", "symbol the bars belong to")
	backtestCmd.Flags().Float64Var(&btCash, "cash", 10_000, "starting account cash")

	backtestCmd.Flags().Float64Var(&btBaseCash, "base", 500, "base investment amount per period")
	backtestCmd.Flags().IntVar(&btMAPeriod, "ma", 120, "moving average period in bars")
	backtestCmd.Flags().IntVar(&btInterval, "interval", 14, "days between investments")
	backtestCmd.Flags().Float64Var(&btTarget, "target", 50, "profit taking target return percent")
	backtestCmd.Flags().Float64Var(&btRatio, "ratio", 1.0, "fraction of position sold per exit (1.0 = full liquidation)")
	backtestCmd.Flags().IntVar(&btCooldown, "cooldown", 0, "days between exits (0 disables)")
	backtestCmd.Flags().StringVar(&btSizing, "sizing", "whole", "unit sizing: whole or fractional")

	backtestCmd.Flags().StringVar(&btJournal, "journal", "none", "journal backend: none, csv, sqlite")
	backtestCmd.Flags().StringVarP(&btDBPath, "db", "d", "./dca.sqlite", "path to SQLite journal DB")
	backtestCmd.Flags().BoolVarP(&btVerbose, "verbose", "v", false, "print each investment and exit")
}

func runBacktest(cmd *cobra.Command, args []string) error {
	cfg, err := buildRunConfig(cmd)
	if err != nil {
		return err
	}

	j, err := openJournal(cfg.Journal)
	if err != nil {
		return err
	}
	if j != nil {
		defer j.Close()
	}

	engine := sim.NewEngine(cfg.Account.Cash, j)

	strat, err := dca.NewEngine(&cfg.Strategy, engine, j)
	if err != nil {
		return err
	}

	feed, err := backtest.NewFileFeed(cfg.Data.BarsFile, cfg.Strategy.Symbol)
	if err != nil {
		return fmt.Errorf("load bars: %w", err)
	}

	runner := &backtest.Runner{
		Symbol:   cfg.Strategy.Symbol,
		Strategy: strat,
		Broker:   engine,
		Feed:     feed,
	}

	res, err := runner.Run(context.Background())
	if err != nil {
		return fmt.Errorf("backtest: %w", err)
	}

	backtest.PrintResult(os.Stdout, res)
	return nil
}

// buildRunConfig merges the optional config file with flag overrides.
// Without --config every flag applies; with it, only flags that were
// explicitly set override the file.
func buildRunConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.Default()
	cfg.Journal.Type = "none"

	if btConfigPath != "" {
		loaded, err := config.LoadFromFile(btConfigPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	set := func(name string) bool {
		return btConfigPath == "" || cmd.Flags().Changed(name)
	}

	if set("bars") {
		cfg.Data.BarsFile = btBarsPath
	}
	if set("symbol") {
		cfg.Strategy.Symbol = btSymbol
	}
	if set("cash") {
		cfg.Account.Cash = btCash
	}
	if set("base") {
		cfg.Strategy.BaseCash = btBaseCash
	}
	if set("ma") {
		cfg.Strategy.MAPeriod = btMAPeriod
	}
	if set("interval") {
		cfg.Strategy.IntervalDays = btInterval
	}
	if set("target") {
		cfg.Strategy.TargetReturnPct = btTarget
	}
	if set("ratio") {
		cfg.Strategy.SellRatio = btRatio
	}
	if set("cooldown") {
		cfg.Strategy.CooldownDays = btCooldown
	}
	if set("sizing") {
		cfg.Strategy.Sizing = dca.SizingMode(btSizing)
	}
	if set("journal") {
		cfg.Journal.Type = btJournal
	}
	if set("db") {
		cfg.Journal.DBPath = btDBPath
	}

	if btVerbose {
		cfg.Strategy.TradeLog = os.Stdout
	}

	if cfg.Data.BarsFile == "" {
		return nil, fmt.Errorf("a bar dataset is required (--bars or config data.bars_file)")
	}
	if err := cfg.Strategy.Validate(); err != nil {
		return nil, fmt.Errorf("strategy: %w", err)
	}
	return cfg, nil
}

func openJournal(jc config.JournalConfig) (journal.Journal, error) {
	switch jc.Type {
	case "", "none":
		return nil, nil
	case "csv":
		j, err := journal.NewCSV(jc.InvestmentsFile, jc.ExitsFile, jc.EquityFile)
		if err != nil {
			return nil, fmt.Errorf("open csv journal: %w", err)
		}
		return j, nil
	case "sqlite":
		j, err := journal.NewSQLite(jc.DBPath)
		if err != nil {
			return nil, fmt.Errorf("open db: %w", err)
		}
		return j, nil
	default:
		return nil, fmt.Errorf("unknown journal type %q", jc.Type)
	}
}
