// Package agent drives one telemetry pass: enumerate headsets, collect and
// classify signals, build records, append them to the local log within the
// dedup budget, and deliver every record to the collector.
package agent

import (
	"context"
	"strconv"
	"time"

	"codeberg.org/mutker/questagent/internal/classify"
	"codeberg.org/mutker/questagent/internal/config"
	"codeberg.org/mutker/questagent/internal/delivery"
	"codeberg.org/mutker/questagent/internal/license"
	"codeberg.org/mutker/questagent/internal/logger"
	"codeberg.org/mutker/questagent/internal/probe"
	"codeberg.org/mutker/questagent/internal/record"
	"codeberg.org/mutker/questagent/internal/sink"
)

// maxRecordsPerDevice caps how many process-ranked records one healthy
// device contributes per pass.
const maxRecordsPerDevice = 3

// oculusVersionProp is the build property reported as the headset version.
const oculusVersionProp = "ro.build.version.incremental"

// Markers looked up in the programmer configuration blob.
const (
	boardMarker      = "rilix"
	programmerMarker = "programmer"
	portMarker       = "/dev/ttyUSB"
	boardTypeMarker  = "atmega328p"
)

// Thermal zone numbers of the headset SoC sensors.
const (
	zoneCPU0   = 1
	zoneCPU1   = 2
	zoneMD1    = 3
	zoneIOChip = 4
)

// Sources bundles the signal adapters one pass consumes.
type Sources struct {
	Devices probe.DeviceSource
	Audio   probe.AudioSource
	Board   probe.BoardSource
	Remote  probe.RemoteAccessSource
	Station probe.StationSource
	Host    probe.HostSource
}

type Agent struct {
	cfg      *config.Config
	sources  Sources
	sink     *sink.Sink
	delivery *delivery.Client
	license  *license.Client
	now      func() time.Time
}

func New(cfg *config.Config, sources Sources, s *sink.Sink, d *delivery.Client, l *license.Client) *Agent {
	return &Agent{
		cfg:      cfg,
		sources:  sources,
		sink:     s,
		delivery: d,
		license:  l,
		now:      time.Now,
	}
}

// Pass runs exactly one observe-classify-record-deliver cycle. Individual
// signal or delivery failures degrade to sentinels or log lines; only a
// completely unusable setup returns an error.
func (a *Agent) Pass(ctx context.Context) error {
	now := a.now()

	// Once per pass; failure is informational only
	if err := a.delivery.Ping(ctx); err != nil {
		logger.Warn().Err(err).Msg("Collector self-test failed")
	}

	listing, err := a.sources.Devices.List(ctx)
	if err != nil {
		logger.Warn().Err(err).Msg("Device listing failed")
		listing = ""
	}

	entries := probe.ParseDevices(listing)
	count := len(entries)

	host := a.collectHost(ctx, now, count)

	healthy, unauthorized := a.sortDevices(ctx, count, listing, entries)

	if len(healthy) == 0 || unauthorized {
		// Placeholder observation keeps the telemetry cadence unbroken
		obs := host
		obs.DeviceState = classify.Connectivity(count, listing, "").String()
		a.emit(ctx, now, record.Sentinel, []record.Record{record.Build(obs)})

		return nil
	}

	for _, serial := range healthy {
		obs := host
		a.collectDevice(ctx, &obs, serial)
		a.emit(ctx, now, serial, a.deviceRecords(ctx, obs, serial))
	}

	return nil
}

// sortDevices confirms each listed device's state and splits the listing
// into healthy serials and an any-unauthorized flag. One unauthorized
// device downgrades the whole pass to a placeholder: its signals cannot be
// trusted and its pairing needs an operator.
func (a *Agent) sortDevices(ctx context.Context, count int, listing string, entries []probe.DeviceEntry) ([]string, bool) {
	var healthy []string
	unauthorized := false

	for _, entry := range entries {
		state := entry.State
		if queried, err := a.sources.Devices.State(ctx, entry.Serial); err == nil && queried != "" {
			state = queried
		}

		switch classify.Connectivity(count, listing, state) {
		case classify.ConnectivityHealthy:
			healthy = append(healthy, entry.Serial)
		case classify.ConnectivityUnauthorized:
			unauthorized = true
		default:
			logger.Info().
				Str("serial", entry.Serial).
				Str("state", state).
				Msg("Device not in a usable state")
		}
	}

	return healthy, unauthorized
}

// collectHost gathers the host-side fields shared by every record of the
// pass: station peripherals, PC metrics and license identity.
func (a *Agent) collectHost(ctx context.Context, now time.Time, count int) record.Observation {
	obs := record.Observation{
		Date:        sink.DateOf(now),
		Time:        sink.BucketOf(now),
		DeviceCount: strconv.Itoa(count),
	}

	blob, blobErr := a.sources.Board.Config(ctx)
	obs.RilixBoard = classify.Marker(blob, boardMarker, blobErr).String()
	obs.Programmer = classify.Marker(blob, programmerMarker, blobErr).String()
	obs.Port = classify.Marker(blob, portMarker, blobErr).String()
	obs.BoardType = classify.Marker(blob, boardTypeMarker, blobErr).String()

	sinkName, err := a.sources.Audio.DefaultSink(ctx)
	if err != nil {
		sinkName = ""
	}
	route := classify.Route(sinkName)
	if route == classify.RouteOK {
		obs.DefaultOutput = sinkName
	} else {
		obs.DefaultOutput = route.String()
	}

	vol, volErr := a.sources.Audio.Volume(ctx)
	obs.Volume = classify.Volume(route, vol.Percent, vol.Muted, volErr == nil)

	tvInfo, err := a.sources.Remote.TeamViewerInfo(ctx)
	if err != nil {
		tvInfo = ""
	}
	obs.TeamViewerAssigned = classify.Assignment(tvInfo).String()

	anydeskID, err := a.sources.Remote.AnydeskID(ctx)
	if err != nil {
		anydeskID = ""
	}
	obs.AnydeskIDState = classify.DuplicateID(anydeskID, a.cfg.AnydeskPlaceholder).String()

	if reg, err := a.sources.Station.Registration(ctx); err == nil {
		obs.DBTeamViewerID = reg.TeamViewerID
		obs.DBKey = reg.Key
		obs.DBCountry = reg.Country
	}

	if temp, err := a.sources.Host.CPUTemperature(ctx); err == nil {
		obs.PCCPUTemp = record.Decimal1(temp)
	}
	if freq, err := a.sources.Host.CPUFrequency(ctx); err == nil {
		obs.PCCPUFreq = record.Decimal1(freq)
	}
	if load, err := a.sources.Host.CPULoad(ctx); err == nil {
		obs.PCCPULoad = record.Decimal1(load)
	}

	lic := a.license.Fetch(ctx)
	obs.LicenseKey = lic.Key
	obs.LicenseLabel = lic.Label
	obs.LicenseActivationID = lic.ActivationID
	obs.LicenseSerialMB = lic.SerialMotherboard
	obs.LicenseSerialDisk = lic.SerialDisk
	obs.LicenseSerialHW = lic.SerialHardware

	return obs
}

// collectDevice fills the device-side fields of one healthy headset.
func (a *Agent) collectDevice(ctx context.Context, obs *record.Observation, serial string) {
	obs.Serial = serial
	obs.DeviceState = classify.ConnectivityHealthy.String()

	if version, err := a.sources.Devices.Getprop(ctx, serial, oculusVersionProp); err == nil {
		obs.OculusVersion = version
	}

	batteryDump, err := a.sources.Devices.Dumpsys(ctx, serial, "battery")
	if err != nil {
		batteryDump = ""
	}
	battery := probe.ParseBattery(batteryDump)
	if battery.LevelKnown {
		obs.BatteryLevel = strconv.Itoa(battery.Level)
		obs.BatteryHealth = classify.BatteryHealth(battery.Level, battery.ChargeCounter)
	}
	obs.FastCharging = classify.Charging(battery.MaxChargingCurrent).String()
	obs.MaxChargingCurrent = battery.MaxChargingCurrent
	obs.MaxChargingVoltage = battery.MaxChargingVoltage
	obs.ChargeCounter = battery.ChargeCounter

	displayDump, err := a.sources.Devices.Dumpsys(ctx, serial, "display")
	if err != nil {
		displayDump = ""
	}
	obs.ScreenState = classify.Screen(displayDump).String()

	obs.QuestTemp1 = a.thermal(ctx, serial, zoneCPU0)
	obs.QuestTemp2 = a.thermal(ctx, serial, zoneCPU1)
	obs.QuestMD1Temp = a.thermal(ctx, serial, zoneMD1)
	obs.QuestIOTemp = a.thermal(ctx, serial, zoneIOChip)
}

// deviceRecords builds up to three records for one device, one per top
// process by CPU, or a single fallback record when no process data is
// available.
func (a *Agent) deviceRecords(ctx context.Context, obs record.Observation, serial string) []record.Record {
	samples, err := a.sources.Devices.Processes(ctx, serial)
	known := err == nil
	if err != nil {
		logger.Warn().Err(err).Str("serial", serial).Msg("Process listing failed")
	}

	args := make([]string, 0, len(samples))
	for _, s := range samples {
		args = append(args, s.Args)
	}
	obs.GameClosed = classify.Game(args, a.cfg.GameProcess, known).String()

	var records []record.Record
	for i, s := range samples {
		if i == maxRecordsPerDevice {
			break
		}
		o := obs
		o.QuestPID = s.PID
		o.QuestCPU = s.CPU
		o.QuestMem = s.Mem
		o.QuestArgs = s.Args
		records = append(records, record.Build(o))
	}

	if len(records) == 0 {
		records = append(records, record.Build(obs))
	}

	return records
}

// emit appends records to the local log within the dedup budget and
// delivers every record regardless of it. Sink and delivery failures are
// logged and never abort the pass.
func (a *Agent) emit(ctx context.Context, now time.Time, serial string, records []record.Record) {
	remaining, err := a.sink.Remaining(now, serial)
	if err != nil {
		logger.Warn().Err(err).Msg("Dedup scan failed; skipping local writes this pass")
		remaining = 0
	}

	for i, r := range records {
		if i < remaining {
			if err := a.sink.Append(now, r); err != nil {
				logger.Warn().Err(err).Msg("Local log append failed")
			}
		}

		if state, err := a.delivery.Deliver(ctx, r); err != nil {
			logger.Warn().
				Err(err).
				Str("state", state.String()).
				Str("serial", serial).
				Msg("Delivery failed")
		}
	}
}

func (a *Agent) thermal(ctx context.Context, serial string, zone int) string {
	raw, err := a.sources.Devices.ThermalZone(ctx, serial, zone)
	if err != nil {
		return ""
	}

	return record.CelsiusFromMillidegrees(raw)
}
