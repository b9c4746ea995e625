package probe_test

import (
	"testing"

	"codeberg.org/mutker/questagent/internal/probe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDevices(t *testing.T) {
	listing := "List of devices attached\n" +
		"* daemon started successfully\n" +
		"1WMHH812345678\tdevice\n" +
		"1WMHH899999999\tunauthorized\n" +
		"\n"

	entries := probe.ParseDevices(listing)
	require.Len(t, entries, 2)
	assert.Equal(t, probe.DeviceEntry{Serial: "1WMHH812345678", State: "device"}, entries[0])
	assert.Equal(t, probe.DeviceEntry{Serial: "1WMHH899999999", State: "unauthorized"}, entries[1])

	assert.Empty(t, probe.ParseDevices("List of devices attached\n"))
}

func TestParseBattery(t *testing.T) {
	dump := `Current Battery Service state:
  AC powered: false
  USB powered: true
  Max charging current: 700000
  Max charging voltage: 5000000
  Charge counter: 3880000
  status: 2
  level: 97
  scale: 100
  temperature: 280`

	b := probe.ParseBattery(dump)
	assert.True(t, b.LevelKnown)
	assert.Equal(t, 97, b.Level)
	assert.Equal(t, "700000", b.MaxChargingCurrent)
	assert.Equal(t, "5000000", b.MaxChargingVoltage)
	assert.Equal(t, "3880000", b.ChargeCounter)

	empty := probe.ParseBattery("no such service")
	assert.False(t, empty.LevelKnown)
	assert.Empty(t, empty.ChargeCounter)
}

func TestParseProcesses(t *testing.T) {
	out := `  PID %CPU %MEM ARGS
 1234 42.0  8.1 com.rilix.coaster
  987 12.5  3.0 /system/bin/surfaceflinger
    1  0.0  0.1 init second_stage`

	samples := probe.ParseProcesses(out)
	require.Len(t, samples, 3)
	assert.Equal(t, probe.ProcessSample{PID: "1234", CPU: "42.0", Mem: "8.1", Args: "com.rilix.coaster"}, samples[0])
	assert.Equal(t, "init second_stage", samples[2].Args)
}

func TestParseVolume(t *testing.T) {
	pct, ok := probe.ParseVolume("Volume: front-left: 43008 /  65% / -11.22 dB,   front-right: 43008 /  65% / -11.22 dB")
	require.True(t, ok)
	assert.Equal(t, 65, pct)

	_, ok = probe.ParseVolume("no percentage here")
	assert.False(t, ok)
}

func TestParseMute(t *testing.T) {
	assert.True(t, probe.ParseMute("Mute: yes"))
	assert.False(t, probe.ParseMute("Mute: no"))
}

func TestParseAnydeskID(t *testing.T) {
	assert.Equal(t, "123456789", probe.ParseAnydeskID("123456789\n"))
	assert.Equal(t, "987654321", probe.ParseAnydeskID("some banner\n987654321\n"))
	assert.Equal(t, "", probe.ParseAnydeskID("no id at all"))
}
