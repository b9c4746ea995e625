package record_test

import (
	"encoding/json"
	"strings"
	"testing"

	"codeberg.org/mutker/questagent/internal/record"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchemaConsistency(t *testing.T) {
	assert.Equal(t, record.FieldCount, len(record.Columns))
	assert.Equal(t, "Date", record.Columns[record.FieldDate])
	assert.Equal(t, "Serial", record.Columns[record.FieldSerial])
	assert.Equal(t, "License Serial HW", record.Columns[record.FieldLicenseSerialHW])
	assert.Equal(t, record.FieldCount-1, record.FieldLicenseSerialHW, "index constants must cover every column")
}

func TestBuildNeverEmitsEmptyFields(t *testing.T) {
	r := record.Build(record.Observation{
		Date:   "2026-08-31",
		Time:   "14:00",
		Serial: "1WMHH812345678",
	})

	for i, v := range r {
		assert.NotEmpty(t, v, "field %q must not be empty", record.Columns[i])
	}
	assert.Equal(t, record.Sentinel, r[record.FieldBatteryLevel])
	assert.Equal(t, "1WMHH812345678", r[record.FieldSerial])
}

func TestBuildTruncatesPerField(t *testing.T) {
	long := strings.Repeat("x", 300)

	r := record.Build(record.Observation{
		QuestPID:  long,
		QuestCPU:  long,
		QuestMem:  long,
		QuestArgs: long,
		Serial:    long,
	})

	assert.Len(t, r[record.FieldQuestPID], 20)
	assert.Len(t, r[record.FieldQuestCPU], 10)
	assert.Len(t, r[record.FieldQuestMem], 10)
	assert.Len(t, r[record.FieldQuestArgs], 100)
	assert.Len(t, r[record.FieldSerial], 200)
}

func TestSanitizeIdempotent(t *testing.T) {
	inputs := []string{
		`plain`,
		`with "quotes" inside`,
		`trailing backslash \`,
		`mixed \" already escaped`,
		"control\x01chars\nstripped",
		strings.Repeat(`a\`, 150),
	}

	for _, in := range inputs {
		once := record.Sanitize(in)
		twice := record.Sanitize(once)
		assert.Equal(t, once, twice, "sanitize must be idempotent for %q", in)
	}
}

func TestSanitizeEscapesAndStrips(t *testing.T) {
	assert.Equal(t, `say \"hi\"`, record.Sanitize(`say "hi"`))
	assert.Equal(t, `a\\b`, record.Sanitize(`a\b`))
	assert.Equal(t, "tabsgone", record.Sanitize("tabs\tgone"))
}

func TestConversions(t *testing.T) {
	assert.Equal(t, "45.2", record.CelsiusFromMillidegrees("45200"))
	assert.Equal(t, "1804.8", record.MegahertzFromKilohertz("1804800"))
	assert.Equal(t, record.Sentinel, record.CelsiusFromMillidegrees("garbage"))
	assert.Equal(t, record.Sentinel, record.CelsiusFromMillidegrees("-5000"))
	assert.Equal(t, record.Sentinel, record.CelsiusFromMillidegrees("0"))
	assert.Equal(t, "73.5", record.Decimal1(73.5))
	assert.Equal(t, record.Sentinel, record.Decimal1(0))
}

func TestMarshalJSONKeepsWireOrder(t *testing.T) {
	r := record.Build(record.Observation{Date: "2026-08-31", Time: "14:00"})

	payload, err := json.Marshal(r)
	require.NoError(t, err)

	// Key order must match the column order
	assert.True(t, strings.HasPrefix(string(payload), `{"date":"2026-08-31","time":"14:00","device_count":`))
	assert.True(t, strings.HasSuffix(string(payload), `"license_serial_hw":"N/A"}`))

	var decoded map[string]string
	require.NoError(t, json.Unmarshal(payload, &decoded))
	assert.Len(t, decoded, record.FieldCount)
}
