package probe

import (
	"context"

	"codeberg.org/mutker/questagent/internal/errors"
)

// Pactl is the production AudioSource, shelling out to the PulseAudio
// mixer tool.
type Pactl struct{}

func NewPactl() *Pactl {
	return &Pactl{}
}

func (p *Pactl) DefaultSink(ctx context.Context) (string, error) {
	return run(ctx, "pactl", "get-default-sink")
}

func (p *Pactl) Volume(ctx context.Context) (VolumeInfo, error) {
	volOut, err := run(ctx, "pactl", "get-sink-volume", "@DEFAULT_SINK@")
	if err != nil {
		return VolumeInfo{}, err
	}

	percent, ok := ParseVolume(volOut)
	if !ok {
		return VolumeInfo{}, errors.New().New(errors.ErrProbeNoOutput)
	}

	muteOut, err := run(ctx, "pactl", "get-sink-mute", "@DEFAULT_SINK@")
	if err != nil {
		return VolumeInfo{}, err
	}

	return VolumeInfo{Percent: percent, Muted: ParseMute(muteOut)}, nil
}
