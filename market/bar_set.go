package market

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/ulikunitz/xz"
)

// BarSet is an ordered, validated series of bars for one symbol.
type BarSet struct {
	Symbol string
	Source string
	Bars   []Bar
}

const dateLayout = "2006-01-02"

// LoadBarSet reads daily bars from a CSV file. Files ending in .xz are
// decompressed on the fly.
//
// Two row formats are accepted:
//   - "date,open,high,low,close,volume" with an optional header row and the
//     date as YYYY-MM-DD or RFC3339
//   - headerless Binance kline rows, where the first column is the open time
//     in unix milliseconds (extra columns past volume are ignored)
//
// Unlike a tick archive, a bar series is small and curated: any malformed
// line, non-finite price, or out-of-order date is an error, never a warning.
func LoadBarSet(path, symbol string) (*BarSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, ".xz") {
		xr, err := xz.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("open xz %s: %w", path, err)
		}
		r = xr
	}

	bs, err := ReadBars(r, symbol)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	bs.Source = path
	return bs, nil
}

// ReadBars parses and validates bar rows from r. See LoadBarSet for the
// accepted formats.
func ReadBars(r io.Reader, symbol string) (*BarSet, error) {
	bs := &BarSet{Symbol: symbol}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		// Headers can appear mid-stream when monthly dumps are concatenated.
		if looksLikeHeader(line) {
			continue
		}

		bar, err := parseBarLine(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		if err := bar.Validate(); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		if n := len(bs.Bars); n > 0 && !bar.Time.After(bs.Bars[n-1].Time) {
			return nil, fmt.Errorf("line %d: bar %s is not after previous bar %s",
				lineNo, bar.Time.Format(dateLayout), bs.Bars[n-1].Time.Format(dateLayout))
		}

		bs.Bars = append(bs.Bars, bar)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if len(bs.Bars) == 0 {
		return nil, fmt.Errorf("no bars found")
	}
	return bs, nil
}

func looksLikeHeader(line string) bool {
	low := strings.ToLower(line)
	return strings.HasPrefix(low, "date,") ||
		strings.HasPrefix(low, "time,") ||
		strings.HasPrefix(low, "open_time,")
}

func parseBarLine(line string) (Bar, error) {
	parts := strings.Split(line, ",")
	if len(parts) < 6 {
		return Bar{}, fmt.Errorf("expected at least 6 columns, got %d", len(parts))
	}

	t, err := parseBarTime(parts[0])
	if err != nil {
		return Bar{}, err
	}

	vals := make([]float64, 5)
	for i := 1; i <= 5; i++ {
		v, err := strconv.ParseFloat(strings.TrimSpace(parts[i]), 64)
		if err != nil {
			return Bar{}, fmt.Errorf("column %d: %w", i+1, err)
		}
		vals[i-1] = v
	}

	return Bar{
		Time:   t,
		Open:   vals[0],
		High:   vals[1],
		Low:    vals[2],
		Close:  vals[3],
		Volume: vals[4],
	}, nil
}

func parseBarTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)

	// Binance kline dumps use the open time in unix milliseconds.
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.UnixMilli(ms).UTC(), nil
	}
	if t, err := time.Parse(dateLayout, s); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	return time.Time{}, fmt.Errorf("cannot parse time %q", s)
}

// First and Last panic on an empty set; LoadBarSet never returns one.
func (bs *BarSet) First() Bar { return bs.Bars[0] }
func (bs *BarSet) Last() Bar  { return bs.Bars[len(bs.Bars)-1] }

func (bs *BarSet) Len() int { return len(bs.Bars) }

func (bs *BarSet) String() string {
	if len(bs.Bars) == 0 {
		return fmt.Sprintf("%s: empty", bs.Symbol)
	}
	return fmt.Sprintf("%s: %d bars %s -> %s",
		bs.Symbol, len(bs.Bars),
		bs.First().Time.Format(dateLayout),
		bs.Last().Time.Format(dateLayout))
}
