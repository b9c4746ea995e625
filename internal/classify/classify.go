// Package classify turns raw signal text from the probe adapters into small
// enumerated status values. Every classifier is total: conflicting or
// unreadable input maps to an explicit error or unknown variant, never to a
// panic or an empty string.
package classify

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	// fastChargeMicroamps is the negotiated charging current, in microamps,
	// at or above which a charger counts as fast.
	fastChargeMicroamps = 600000

	// nominalChargeCounter is the design charge counter of a new headset
	// battery, in microampere hours.
	nominalChargeCounter = 4_000_000

	// healthMinBatteryLevel is the battery percentage above which the charge
	// counter reading is meaningful enough to derive battery health from.
	healthMinBatteryLevel = 95

	lowVolumeThreshold = 80

	listingHeader = "List of devices"
)

// strangeTokens in a device listing mean the device is present but in a
// state adb itself reports as broken.
var strangeTokens = []string{"error", "recovery", "not found"}

// wrongSinkTokens mark default sinks that discard audio.
var wrongSinkTokens = []string{"dummy", "null", "discard", "invalid", "none"}

// Connectivity classifies the state of one attached headset from the device
// count, the raw `adb devices` listing and the per-serial queried state.
// First match wins.
func Connectivity(count int, listing, state string) ConnectivityState {
	lower := strings.ToLower(listing)

	switch {
	case count < 0:
		return ConnectivityCritical
	case containsAny(lower, strangeTokens):
		return ConnectivityStrange
	case strings.Contains(lower, "offline"):
		return ConnectivityOffline
	case strings.Contains(lower, "unauthorized"):
		return ConnectivityUnauthorized
	case state == "device":
		return ConnectivityHealthy
	case count == 0 && strings.Contains(listing, listingHeader):
		return ConnectivityNotFound
	default:
		return ConnectivityUnknown
	}
}

// Charging classifies the negotiated charging speed from the raw max
// charging current reported by the battery service, in microamps.
func Charging(rawMaxCurrent string) ChargingState {
	current, err := strconv.ParseInt(strings.TrimSpace(rawMaxCurrent), 10, 64)
	if err != nil {
		return ChargingUnknown
	}

	if current >= fastChargeMicroamps {
		return ChargingFast
	}

	return ChargingSlow
}

// BatteryHealth derives the battery health percentage from the charge
// counter. The reading is only meaningful near a full charge, so anything at
// or below 95% yields the sentinel.
func BatteryHealth(level int, rawChargeCounter string) string {
	if level <= healthMinBatteryLevel {
		return Unavailable
	}

	counter, err := strconv.ParseInt(strings.TrimSpace(rawChargeCounter), 10, 64)
	if err != nil || counter <= 0 {
		return Unavailable
	}

	return fmt.Sprintf("%.2f", float64(counter)*100/nominalChargeCounter)
}

// Route classifies the default audio sink from the sink-info text.
func Route(sinkInfo string) AudioRouteState {
	if strings.TrimSpace(sinkInfo) == "" {
		return RouteUnknown
	}

	lower := strings.ToLower(sinkInfo)
	if strings.Contains(lower, "hdmi") {
		return RouteTV
	}
	if containsAny(lower, wrongSinkTokens) {
		return RouteWrong
	}

	return RouteOK
}

// Volume layers the volume tier onto the routing classification. A TV or
// discarded route overrides the tier: audio on those sinks never reaches the
// headphones no matter the level.
func Volume(route AudioRouteState, percent int, muted, known bool) string {
	if route == RouteTV || route == RouteWrong {
		return RouteWrong.String()
	}
	if !known {
		return Unavailable
	}
	if muted || percent == 0 {
		return "MUTED"
	}
	if percent < lowVolumeThreshold {
		return "LOW VOL."
	}

	return fmt.Sprintf("%d%%", percent)
}

// Marker reports whether a marker substring is present in a configuration
// blob. A failed lookup is classified separately from a clean miss.
func Marker(blob, marker string, lookupErr error) CheckResult {
	if lookupErr != nil {
		return CheckError
	}
	if strings.Contains(blob, marker) {
		return CheckPresent
	}

	return CheckAbsent
}

// DuplicateID reports whether a remote-access id is still the factory
// placeholder shared by unprovisioned stations.
func DuplicateID(id, placeholder string) RemoteIDState {
	id = strings.TrimSpace(id)
	if id == "" {
		return IDUnknown
	}
	if id == placeholder {
		return IDDuplicate
	}

	return IDOK
}

// Assignment classifies whether the remote-access agent is bound to an
// account, from the agent's info text.
func Assignment(info string) AssignmentState {
	if strings.TrimSpace(info) == "" {
		return AssignedUnknown
	}
	if strings.Contains(strings.ToLower(info), "assigned to") {
		return AssignedYes
	}

	return AssignedNo
}

// Screen classifies the headset display power state from the display
// service dump.
func Screen(displayDump string) ScreenState {
	switch {
	case strings.Contains(displayDump, "mScreenState=ON"),
		strings.Contains(displayDump, "state=ON"):
		return ScreenOn
	case strings.Contains(displayDump, "mScreenState=OFF"),
		strings.Contains(displayDump, "state=OFF"):
		return ScreenOff
	default:
		return ScreenUnknown
	}
}

// Game classifies whether the game process is running from the device
// process table.
func Game(psArgs []string, pattern string, known bool) GameState {
	if !known || pattern == "" {
		return GameUnknown
	}

	for _, args := range psArgs {
		if strings.Contains(args, pattern) {
			return GameRunning
		}
	}

	return GameStopped
}

func containsAny(s string, tokens []string) bool {
	for _, token := range tokens {
		if strings.Contains(s, token) {
			return true
		}
	}

	return false
}
