package probe

import "context"

// DeviceSource exposes the headset inspection tool. The production adapter
// shells out to adb; tests supply fixtures.
type DeviceSource interface {
	// List returns the raw device listing, header included.
	List(ctx context.Context) (string, error)
	// State returns the queried state of one serial ("device", "offline", ...).
	State(ctx context.Context, serial string) (string, error)
	Getprop(ctx context.Context, serial, prop string) (string, error)
	Dumpsys(ctx context.Context, serial, service string) (string, error)
	// ThermalZone returns the raw millidegree reading of one thermal zone.
	ThermalZone(ctx context.Context, serial string, zone int) (string, error)
	// Processes returns the device process table sorted by CPU descending.
	Processes(ctx context.Context, serial string) ([]ProcessSample, error)
}

// ProcessSample is one row of the device process table, kept as raw text.
type ProcessSample struct {
	PID  string
	CPU  string
	Mem  string
	Args string
}

// AudioSource exposes the host audio mixer.
type AudioSource interface {
	// DefaultSink returns the default sink description.
	DefaultSink(ctx context.Context) (string, error)
	Volume(ctx context.Context) (VolumeInfo, error)
}

type VolumeInfo struct {
	Percent int
	Muted   bool
}

// BoardSource exposes the motion-board programmer configuration.
type BoardSource interface {
	// Config returns the programmer configuration blob.
	Config(ctx context.Context) (string, error)
}

// RemoteAccessSource exposes the remote-access agents installed on the host.
type RemoteAccessSource interface {
	TeamViewerInfo(ctx context.Context) (string, error)
	AnydeskID(ctx context.Context) (string, error)
}

// StationSource exposes the station registration recorded at install time.
type StationSource interface {
	Registration(ctx context.Context) (Registration, error)
}

type Registration struct {
	TeamViewerID string `json:"teamviewer_id"`
	Key          string `json:"key"`
	Country      string `json:"country"`
}

// HostSource exposes host PC metrics.
type HostSource interface {
	// CPUTemperature in degrees Celsius.
	CPUTemperature(ctx context.Context) (float64, error)
	// CPUFrequency in MHz.
	CPUFrequency(ctx context.Context) (float64, error)
	// CPULoad as a percentage across all cores.
	CPULoad(ctx context.Context) (float64, error)
}
