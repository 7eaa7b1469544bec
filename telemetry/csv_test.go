package telemetry

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func readRows(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestCSVSinkWritesHeaderAndRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stats.csv")

	s, err := NewCSVSink(path)
	require.NoError(t, err)
	s.Record(Record{
		Op:       "msm",
		Device:   "cpu",
		Workers:  8,
		Elements: 1024,
		Duration: 42 * time.Millisecond,
		Total:    42 * time.Millisecond,
	})
	require.NoError(t, s.Close())

	rows := readRows(t, path)
	require.Len(t, rows, 2)
	require.Equal(t, csvHeader, rows[0])
	require.Equal(t, []string{"msm", "cpu", "8", "1024", "0", "0", "42", "42"}, rows[1])
}

func TestCSVSinkAppendsWithoutDuplicateHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stats.csv")

	s, err := NewCSVSink(path)
	require.NoError(t, err)
	s.Record(Record{Op: "fft", Device: "cpu", Workers: 4, Elements: 256, Degree: 8})
	require.NoError(t, s.Close())

	s, err = NewCSVSink(path)
	require.NoError(t, err)
	s.Record(Record{Op: "fft", Device: "icicle", Workers: 1, Elements: 256, Degree: 8})
	require.NoError(t, s.Close())

	rows := readRows(t, path)
	require.Len(t, rows, 3)
	require.Equal(t, csvHeader, rows[0])
	require.Equal(t, "cpu", rows[1][1])
	require.Equal(t, "icicle", rows[2][1])
}
