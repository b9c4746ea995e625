package classify_test

import (
	"errors"
	"testing"

	"codeberg.org/mutker/questagent/internal/classify"
	"github.com/stretchr/testify/assert"
)

const healthyListing = "List of devices attached\n1WMHH812345678\tdevice\n"

func TestConnectivityPrecedence(t *testing.T) {
	tests := []struct {
		name    string
		count   int
		listing string
		state   string
		want    classify.ConnectivityState
	}{
		{"negative count", -1, healthyListing, "device", classify.ConnectivityCritical},
		{"error token", 1, "List of devices attached\nerror: device still authorizing\n", "device", classify.ConnectivityStrange},
		{"recovery token", 1, "List of devices attached\n1WMHH812345678\trecovery\n", "device", classify.ConnectivityStrange},
		{"offline", 1, "List of devices attached\n1WMHH812345678\toffline\n", "", classify.ConnectivityOffline},
		{"unauthorized", 1, "List of devices attached\n1WMHH812345678\tunauthorized\n", "", classify.ConnectivityUnauthorized},
		{"healthy", 1, healthyListing, "device", classify.ConnectivityHealthy},
		{"none attached", 0, "List of devices attached\n", "", classify.ConnectivityNotFound},
		{"no header no state", 0, "", "", classify.ConnectivityUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, classify.Connectivity(tt.count, tt.listing, tt.state))
		})
	}
}

func TestConnectivityStrings(t *testing.T) {
	assert.Equal(t, "CRITICAL ERROR", classify.ConnectivityCritical.String())
	assert.Equal(t, "NOT FOUND", classify.ConnectivityNotFound.String())
	assert.Equal(t, "device", classify.ConnectivityHealthy.String())
	assert.Equal(t, "UNKNOWN ERROR", classify.ConnectivityUnknown.String())
}

func TestCharging(t *testing.T) {
	assert.Equal(t, classify.ChargingFast, classify.Charging("700000"))
	assert.Equal(t, classify.ChargingFast, classify.Charging("600000"))
	assert.Equal(t, classify.ChargingSlow, classify.Charging("599999"))
	assert.Equal(t, classify.ChargingUnknown, classify.Charging("not-a-number"))
	assert.Equal(t, classify.ChargingUnknown, classify.Charging(""))
}

func TestBatteryHealth(t *testing.T) {
	// Meaningful only above 95% charge
	assert.Equal(t, "97.00", classify.BatteryHealth(97, "3880000"))
	assert.Equal(t, "100.00", classify.BatteryHealth(100, "4000000"))
	assert.Equal(t, "N/A", classify.BatteryHealth(95, "3880000"))
	assert.Equal(t, "N/A", classify.BatteryHealth(97, "garbage"))
	assert.Equal(t, "N/A", classify.BatteryHealth(97, "-1"))
}

func TestRoute(t *testing.T) {
	assert.Equal(t, classify.RouteTV, classify.Route("Default Sink: alsa_output.pci-0000_01_00.1.hdmi-stereo"))
	assert.Equal(t, classify.RouteWrong, classify.Route("Default Sink: auto_null"))
	assert.Equal(t, classify.RouteWrong, classify.Route("Default Sink: dummy_output"))
	assert.Equal(t, classify.RouteOK, classify.Route("Default Sink: alsa_output.usb-headset.analog-stereo"))
	assert.Equal(t, classify.RouteUnknown, classify.Route("  "))
}

func TestVolume(t *testing.T) {
	// Routing overrides the volume tier
	assert.Equal(t, "WRONG OUTPUT", classify.Volume(classify.RouteTV, 100, false, true))
	assert.Equal(t, "WRONG OUTPUT", classify.Volume(classify.RouteWrong, 100, false, true))

	assert.Equal(t, "MUTED", classify.Volume(classify.RouteOK, 85, true, true))
	assert.Equal(t, "MUTED", classify.Volume(classify.RouteOK, 0, false, true))
	assert.Equal(t, "LOW VOL.", classify.Volume(classify.RouteOK, 42, false, true))
	assert.Equal(t, "85%", classify.Volume(classify.RouteOK, 85, false, true))
	assert.Equal(t, "N/A", classify.Volume(classify.RouteOK, 0, false, false))
}

func TestMarker(t *testing.T) {
	blob := "board=rilix-v2\nprogrammer=usbasp\nport=/dev/ttyUSB0\n"

	assert.Equal(t, classify.CheckPresent, classify.Marker(blob, "programmer=usbasp", nil))
	assert.Equal(t, classify.CheckAbsent, classify.Marker(blob, "programmer=avrisp", nil))
	assert.Equal(t, classify.CheckError, classify.Marker("", "anything", errors.New("exec: not found")))

	assert.Equal(t, "GREP ERROR", classify.CheckError.String())
}

func TestDuplicateID(t *testing.T) {
	assert.Equal(t, classify.IDDuplicate, classify.DuplicateID("999999999", "999999999"))
	assert.Equal(t, classify.IDOK, classify.DuplicateID("123456789", "999999999"))
	assert.Equal(t, classify.IDUnknown, classify.DuplicateID("", "999999999"))
}

func TestAssignment(t *testing.T) {
	assert.Equal(t, classify.AssignedYes, classify.Assignment("TeamViewer ID: 123456789\nAssigned to: ops@rilix.com\n"))
	assert.Equal(t, classify.AssignedNo, classify.Assignment("TeamViewer ID: 123456789\n"))
	assert.Equal(t, classify.AssignedUnknown, classify.Assignment(""))
}

func TestScreen(t *testing.T) {
	assert.Equal(t, classify.ScreenOn, classify.Screen("mScreenState=ON"))
	assert.Equal(t, classify.ScreenOff, classify.Screen("mScreenState=OFF"))
	assert.Equal(t, classify.ScreenOn, classify.Screen("Display Power: state=ON"))
	assert.Equal(t, classify.ScreenUnknown, classify.Screen("no display info"))
}

func TestGame(t *testing.T) {
	args := []string{"/system/bin/surfaceflinger", "com.rilix.coaster"}

	assert.Equal(t, classify.GameRunning, classify.Game(args, "com.rilix.coaster", true))
	assert.Equal(t, classify.GameStopped, classify.Game(args, "com.other.game", true))
	assert.Equal(t, classify.GameUnknown, classify.Game(nil, "com.rilix.coaster", false))

	// Rendered as an answer to "game closed?"
	assert.Equal(t, "NO", classify.GameRunning.String())
	assert.Equal(t, "YES", classify.GameStopped.String())
}
