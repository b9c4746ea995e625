package sink_test

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"codeberg.org/mutker/questagent/internal/record"
	"codeberg.org/mutker/questagent/internal/sink"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var passTime = time.Date(2026, 8, 31, 14, 0, 0, 0, time.UTC)

func testRecord(t *testing.T, serial string) record.Record {
	t.Helper()
	return record.Build(record.Observation{
		Date:   sink.DateOf(passTime),
		Time:   sink.BucketOf(passTime),
		Serial: serial,
	})
}

func TestAppendWritesHeaderExactlyOnce(t *testing.T) {
	dir := t.TempDir()
	s, err := sink.New(dir)
	require.NoError(t, err)

	require.NoError(t, s.Append(passTime, testRecord(t, "serial-1")))
	require.NoError(t, s.Append(passTime, testRecord(t, "serial-2")))

	path := filepath.Join(dir, "2026-08", "2026-08-31.csv")
	data, err := os.ReadFile(path)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	require.Len(t, lines, 3, "expected one header and two data rows")
	assert.True(t, strings.HasPrefix(lines[0], `"Date","Time","NºDevices","Serial"`))
	assert.Equal(t, 1, strings.Count(string(data), `"Version Oculus"`), "header must appear exactly once")
}

func TestRowsAreFullyQuotedAndRoundTrip(t *testing.T) {
	dir := t.TempDir()
	s, err := sink.New(dir)
	require.NoError(t, err)

	obs := record.Observation{
		Date:   sink.DateOf(passTime),
		Time:   sink.BucketOf(passTime),
		Serial: "serial-1",
		// Sanitization escapes the quote, CSV quoting doubles it on disk
		QuestArgs: `game --title="coaster"`,
	}
	built := record.Build(obs)
	require.NoError(t, s.Append(passTime, built))

	f, err := os.Open(filepath.Join(dir, "2026-08", "2026-08-31.csv"))
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)

	for i, col := range record.Columns {
		assert.Equal(t, col, rows[0][i])
	}
	assert.Equal(t, built[record.FieldQuestArgs], rows[1][record.FieldQuestArgs],
		"CSV round trip must preserve the sanitized field")
	assert.Len(t, rows[1], record.FieldCount)
}

func TestRemainingCapsPerBucket(t *testing.T) {
	dir := t.TempDir()
	s, err := sink.New(dir)
	require.NoError(t, err)

	remaining, err := s.Remaining(passTime, "serial-1")
	require.NoError(t, err)
	assert.Equal(t, 3, remaining, "fresh bucket has the full budget")

	for i := 0; i < 3; i++ {
		require.NoError(t, s.Append(passTime, testRecord(t, "serial-1")))
	}

	remaining, err = s.Remaining(passTime, "serial-1")
	require.NoError(t, err)
	assert.Equal(t, 0, remaining, "bucket budget exhausted after three rows")

	// Other serials and other buckets are unaffected
	remaining, err = s.Remaining(passTime, "serial-2")
	require.NoError(t, err)
	assert.Equal(t, 3, remaining)

	later := passTime.Add(2 * time.Hour)
	remaining, err = s.Remaining(later, "serial-1")
	require.NoError(t, err)
	assert.Equal(t, 3, remaining)
}

func TestNewRejectsEmptyDir(t *testing.T) {
	_, err := sink.New("")
	require.Error(t, err)
}
