package probe

import (
	"context"
	"fmt"
)

// ADB is the production DeviceSource, shelling out to the adb binary. Device
// calls carry no timeout of their own beyond the pass context: a wedged
// device can stall a pass, which the PID lock turns into a skipped next run
// instead of a log race.
type ADB struct {
	path string
}

func NewADB(path string) *ADB {
	if path == "" {
		path = "adb"
	}

	return &ADB{path: path}
}

func (a *ADB) List(ctx context.Context) (string, error) {
	return run(ctx, a.path, "devices")
}

func (a *ADB) State(ctx context.Context, serial string) (string, error) {
	return run(ctx, a.path, "-s", serial, "get-state")
}

func (a *ADB) Getprop(ctx context.Context, serial, prop string) (string, error) {
	return run(ctx, a.path, "-s", serial, "shell", "getprop", prop)
}

func (a *ADB) Dumpsys(ctx context.Context, serial, service string) (string, error) {
	return run(ctx, a.path, "-s", serial, "shell", "dumpsys", service)
}

func (a *ADB) ThermalZone(ctx context.Context, serial string, zone int) (string, error) {
	return run(ctx, a.path, "-s", serial, "shell", "cat",
		fmt.Sprintf("/sys/class/thermal/thermal_zone%d/temp", zone))
}

func (a *ADB) Processes(ctx context.Context, serial string) ([]ProcessSample, error) {
	out, err := run(ctx, a.path, "-s", serial, "shell",
		"ps", "-A", "-o", "PID,%CPU,%MEM,ARGS", "--sort=-%CPU")
	if err != nil {
		return nil, err
	}

	return ParseProcesses(out), nil
}
