package probe

import (
	"context"
	"strings"
	"time"

	"codeberg.org/mutker/questagent/internal/errors"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/host"
)

const loadSampleWindow = time.Second

// cpuSensorHints identify the CPU package sensor among whatever the host
// exposes, checked in order.
var cpuSensorHints = []string{"coretemp", "k10temp", "cpu_thermal", "cpu"}

// Host is the production HostSource, reading PC metrics through gopsutil.
type Host struct{}

func NewHost() *Host {
	return &Host{}
}

func (h *Host) CPUTemperature(ctx context.Context) (float64, error) {
	errFactory := errors.New()

	temps, err := host.SensorsTemperaturesWithContext(ctx)
	if err != nil {
		return 0, errFactory.Wrap(errors.ErrProbeFailed, err)
	}

	for _, hint := range cpuSensorHints {
		for _, t := range temps {
			if strings.Contains(strings.ToLower(t.SensorKey), hint) && t.Temperature > 0 {
				return t.Temperature, nil
			}
		}
	}

	return 0, errFactory.New(errors.ErrProbeNoOutput)
}

func (h *Host) CPUFrequency(ctx context.Context) (float64, error) {
	errFactory := errors.New()

	stats, err := cpu.InfoWithContext(ctx)
	if err != nil {
		return 0, errFactory.Wrap(errors.ErrProbeFailed, err)
	}

	for _, stat := range stats {
		if stat.Mhz > 0 {
			return stat.Mhz, nil
		}
	}

	return 0, errFactory.New(errors.ErrProbeNoOutput)
}

func (h *Host) CPULoad(ctx context.Context) (float64, error) {
	errFactory := errors.New()

	usage, err := cpu.PercentWithContext(ctx, loadSampleWindow, false)
	if err != nil {
		return 0, errFactory.Wrap(errors.ErrProbeFailed, err)
	}
	if len(usage) == 0 {
		return 0, errFactory.New(errors.ErrProbeNoOutput)
	}

	return usage[0], nil
}
