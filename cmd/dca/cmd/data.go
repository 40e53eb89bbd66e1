package cmd

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rustyeddy/dca/market"
	"github.com/spf13/cobra"
	"github.com/xyproto/unzip"
)

const defaultBinanceBase = "https://data.binance.vision/data/spot/monthly/klines"

var dataCmd = &cobra.Command{
	Use:   "data",
	Short: "Download/prepare bar datasets (Binance kline dumps)",
}

var dataFetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Download daily kline archives from Binance's public data dumps",
	Long: `Fetch downloads monthly daily-kline zip archives from Binance's public
data repository, extracts them, and merges the months into a single bar CSV
ready for 'dca backtest'.

Example:
  dca data fetch --symbol SOLUSDT --start 2023-01 --end 2024-12 --out ./data`,
	RunE: runDataFetch,
}

var (
	dfBase    string
	dfSymbol  string
	dfStart   string
	dfEnd     string
	dfOut     string
	dfTimeout time.Duration
)

func init() {
	rootCmd.AddCommand(dataCmd)
	dataCmd.AddCommand(dataFetchCmd)

	dataFetchCmd.Flags().StringVar(&dfBase, "base", defaultBinanceBase, "Binance data base URL")
	dataFetchCmd.Flags().StringVarP(&dfSymbol, "symbol", "s", "SOLUSDT", "symbol like SOLUSDT, BTCUSDT")
	dataFetchCmd.Flags().StringVar(&dfStart, "start", "", "first month (YYYY-MM) (required)")
	dataFetchCmd.Flags().StringVar(&dfEnd, "end", "", "last month (YYYY-MM), inclusive (required)")
	dataFetchCmd.Flags().StringVarP(&dfOut, "out", "o", "./data", "output directory")
	dataFetchCmd.Flags().DurationVar(&dfTimeout, "timeout", 45*time.Second, "HTTP timeout per archive")

	dataFetchCmd.MarkFlagRequired("start")
	dataFetchCmd.MarkFlagRequired("end")
}

func runDataFetch(cmd *cobra.Command, args []string) error {
	sym := strings.ToUpper(strings.TrimSpace(dfSymbol))
	if sym == "" {
		return fmt.Errorf("symbol required")
	}

	start, err := time.Parse("2006-01", dfStart)
	if err != nil {
		return fmt.Errorf("bad --start: %w", err)
	}
	end, err := time.Parse("2006-01", dfEnd)
	if err != nil {
		return fmt.Errorf("bad --end: %w", err)
	}
	if end.Before(start) {
		return fmt.Errorf("--end must not be before --start")
	}

	if err := os.MkdirAll(dfOut, 0755); err != nil {
		return err
	}

	client := &http.Client{Timeout: dfTimeout}

	var csvs []string
	missing := 0

	for m := start; !m.After(end); m = m.AddDate(0, 1, 0) {
		month := m.Format("2006-01")
		name := fmt.Sprintf("%s-1d-%s", sym, month)
		url := fmt.Sprintf("%s/%s/1d/%s.zip", dfBase, sym, name)
		zipPath := filepath.Join(dfOut, name+".zip")
		csvPath := filepath.Join(dfOut, name+".csv")

		if _, err := os.Stat(csvPath); err == nil {
			fmt.Printf("skip  %s (already extracted)\n", name)
			csvs = append(csvs, csvPath)
			continue
		}

		status, err := download(client, url, zipPath)
		if err != nil {
			return fmt.Errorf("download %s: %w", url, err)
		}
		if status == http.StatusNotFound {
			// Months before listing or after delisting simply don't exist.
			fmt.Printf("404   %s\n", url)
			missing++
			continue
		}

		if err := unzip.Extract(zipPath, dfOut); err != nil {
			return fmt.Errorf("extract %s: %w", zipPath, err)
		}
		fmt.Printf("ok    %s\n", name)
		csvs = append(csvs, csvPath)
	}

	if len(csvs) == 0 {
		return fmt.Errorf("no archives found for %s between %s and %s", sym, dfStart, dfEnd)
	}

	merged := filepath.Join(dfOut, fmt.Sprintf("%s-1d.csv", sym))
	if err := concatFiles(merged, csvs); err != nil {
		return fmt.Errorf("merge: %w", err)
	}

	// Validate the merged dataset the same way the backtest will.
	bs, err := market.LoadBarSet(merged, sym)
	if err != nil {
		return fmt.Errorf("merged dataset invalid: %w", err)
	}

	fmt.Printf("\nWrote %s\n%s\n", merged, bs)
	if missing > 0 {
		fmt.Printf("(%d months had no archive)\n", missing)
	}
	return nil
}

func download(client *http.Client, url, dst string) (status int, err error) {
	resp, err := client.Get(url)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return resp.StatusCode, nil
	}
	if resp.StatusCode != http.StatusOK {
		return resp.StatusCode, fmt.Errorf("unexpected status %s", resp.Status)
	}

	f, err := os.Create(dst)
	if err != nil {
		return resp.StatusCode, err
	}
	defer f.Close()

	if _, err := io.Copy(f, resp.Body); err != nil {
		os.Remove(dst)
		return resp.StatusCode, err
	}
	return resp.StatusCode, nil
}

func concatFiles(dst string, srcs []string) error {
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	for _, src := range srcs {
		in, err := os.Open(src)
		if err != nil {
			return err
		}
		_, err = io.Copy(out, in)
		in.Close()
		if err != nil {
			return err
		}
	}
	return nil
}
