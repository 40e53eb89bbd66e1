package cmd

import (
	"fmt"
	"time"

	"github.com/rustyeddy/dca/journal"
	"github.com/spf13/cobra"
)

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Query recorded investment and exit events",
	Long: `Query and display event records from a SQLite journal database.

Subcommands:
  investments - List investments in a date range
  exits       - List exits in a date range

Examples:
  dca journal investments --from 2024-01-01 --to 2024-12-31
  dca journal exits --from 2024-01-01 --to 2024-12-31`,
}

var journalInvestmentsCmd = &cobra.Command{
	Use:   "investments",
	Short: "List recorded investments",
	Args:  cobra.NoArgs,
	RunE:  runJournalInvestments,
}

var journalExitsCmd = &cobra.Command{
	Use:   "exits",
	Short: "List recorded exits",
	Args:  cobra.NoArgs,
	RunE:  runJournalExits,
}

var (
	journalDBPath string
	journalFrom   string
	journalTo     string
)

func init() {
	rootCmd.AddCommand(journalCmd)
	journalCmd.AddCommand(journalInvestmentsCmd)
	journalCmd.AddCommand(journalExitsCmd)

	journalCmd.PersistentFlags().StringVarP(&journalDBPath, "db", "d", "./dca.sqlite", "path to SQLite journal DB")
	journalCmd.PersistentFlags().StringVar(&journalFrom, "from", "1970-01-01", "start date (YYYY-MM-DD)")
	journalCmd.PersistentFlags().StringVar(&journalTo, "to", "2100-01-01", "end date (YYYY-MM-DD), exclusive")
}

func runJournalInvestments(cmd *cobra.Command, args []string) error {
	j, start, end, err := openJournalRange()
	if err != nil {
		return err
	}
	defer j.Close()

	recs, err := j.ListInvestmentsBetween(start, end)
	if err != nil {
		return fmt.Errorf("query investments: %w", err)
	}

	for _, r := range recs {
		fmt.Printf("%s  %-10s  price $%.2f  dev %+.1f%%  x%.1f  $%.2f  %v shares\n",
			r.Time.Format("2006-01-02"), r.Symbol, r.Price, r.DeviationPct,
			r.Multiplier, r.Amount, r.Shares)
	}
	fmt.Printf("%d investments\n", len(recs))
	return nil
}

func runJournalExits(cmd *cobra.Command, args []string) error {
	j, start, end, err := openJournalRange()
	if err != nil {
		return err
	}
	defer j.Close()

	recs, err := j.ListExitsBetween(start, end)
	if err != nil {
		return fmt.Errorf("query exits: %w", err)
	}

	for _, r := range recs {
		fmt.Printf("%s  %-10s  price $%.2f  return %.1f%%  sold %v  proceeds $%.2f  P/L $%.2f\n",
			r.Time.Format("2006-01-02"), r.Symbol, r.Price, r.ReturnPct,
			r.SharesSold, r.Proceeds, r.RealizedProfit)
	}

	total, err := j.RealizedProfitBetween(start, end)
	if err != nil {
		return fmt.Errorf("sum profit: %w", err)
	}
	fmt.Printf("%d exits, realized P/L $%.2f\n", len(recs), total)
	return nil
}

func openJournalRange() (*journal.SQLiteJournal, time.Time, time.Time, error) {
	start, err := time.Parse("2006-01-02", journalFrom)
	if err != nil {
		return nil, time.Time{}, time.Time{}, fmt.Errorf("bad --from: %w", err)
	}
	end, err := time.Parse("2006-01-02", journalTo)
	if err != nil {
		return nil, time.Time{}, time.Time{}, fmt.Errorf("bad --to: %w", err)
	}

	j, err := journal.NewSQLite(journalDBPath)
	if err != nil {
		return nil, time.Time{}, time.Time{}, fmt.Errorf("open db: %w", err)
	}
	return j, start, end, nil
}
