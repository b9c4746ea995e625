// Package probe holds the thin adapters around the external inspection
// tools plus the parsers that lift their raw text into typed values. The
// adapters return text or an error; all interpretation lives in classify.
package probe

import (
	"strconv"
	"strings"
)

// DeviceEntry is one serial line of the device listing.
type DeviceEntry struct {
	Serial string
	State  string
}

// ParseDevices extracts the serial lines from a raw device listing. The
// header and daemon banner lines are skipped.
func ParseDevices(listing string) []DeviceEntry {
	var entries []DeviceEntry

	for _, line := range strings.Split(listing, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "List of devices") || strings.HasPrefix(line, "*") {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}

		entries = append(entries, DeviceEntry{Serial: fields[0], State: fields[1]})
	}

	return entries
}

// Battery is the subset of the battery service dump the agent consumes.
// Numeric details are kept raw: classification and unit conversion decide
// what they mean.
type Battery struct {
	Level              int
	LevelKnown         bool
	MaxChargingCurrent string
	MaxChargingVoltage string
	ChargeCounter      string
}

// ParseBattery extracts the relevant lines from a `dumpsys battery` dump.
func ParseBattery(dump string) Battery {
	var b Battery

	for _, line := range strings.Split(dump, "\n") {
		key, value, found := strings.Cut(strings.TrimSpace(line), ":")
		if !found {
			continue
		}
		value = strings.TrimSpace(value)

		switch strings.ToLower(key) {
		case "level":
			if level, err := strconv.Atoi(value); err == nil {
				b.Level = level
				b.LevelKnown = true
			}
		case "max charging current":
			b.MaxChargingCurrent = value
		case "max charging voltage":
			b.MaxChargingVoltage = value
		case "charge counter":
			b.ChargeCounter = value
		}
	}

	return b
}

// ParseProcesses lifts a `ps` table into samples, preserving the order the
// tool produced (CPU descending when sorted by the caller).
func ParseProcesses(psOutput string) []ProcessSample {
	var samples []ProcessSample

	for i, line := range strings.Split(psOutput, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if i == 0 && strings.Contains(line, "PID") {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) < 4 {
			continue
		}

		samples = append(samples, ProcessSample{
			PID:  fields[0],
			CPU:  fields[1],
			Mem:  fields[2],
			Args: strings.Join(fields[3:], " "),
		})
	}

	return samples
}

// ParseVolume extracts the volume percentage from mixer output such as
// "Volume: front-left: 43008 /  65% / -11.22 dB".
func ParseVolume(out string) (int, bool) {
	for _, field := range strings.Fields(out) {
		if !strings.HasSuffix(field, "%") {
			continue
		}
		if pct, err := strconv.Atoi(strings.TrimSuffix(field, "%")); err == nil {
			return pct, true
		}
	}

	return 0, false
}

// ParseMute extracts the mute flag from mixer output such as "Mute: yes".
func ParseMute(out string) bool {
	return strings.Contains(strings.ToLower(out), "yes")
}

// ParseAnydeskID extracts the id from the remote-access tool output, which
// is a bare number on its own line.
func ParseAnydeskID(out string) string {
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if _, err := strconv.ParseInt(line, 10, 64); err == nil {
			return line
		}
	}

	return ""
}
