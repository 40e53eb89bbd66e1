package backtest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileFeed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bars.csv")
	csv := `date,open,high,low,close,volume
2024-01-01,100,105,99,102,1000
2024-01-02,102,107,101,105,1100
`
	require.NoError(t, os.WriteFile(path, []byte(csv), 0644))

	feed, err := NewFileFeed(path, "TEST")
	require.NoError(t, err)
	defer feed.Close()

	b, ok, err := feed.Next()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 102.0, b.Close)

	b, ok, err = feed.Next()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 105.0, b.Close)

	_, ok, err = feed.Next()
	require.NoError(t, err)
	assert.False(t, ok)

	// EOF is sticky
	_, ok, _ = feed.Next()
	assert.False(t, ok)
}

func TestFileFeedRejectsInvalidData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bars.csv")
	csv := "2024-01-02,1,1,1,1,0\n2024-01-01,1,1,1,1,0\n"
	require.NoError(t, os.WriteFile(path, []byte(csv), 0644))

	_, err := NewFileFeed(path, "TEST")
	assert.ErrorContains(t, err, "not after previous bar")
}
