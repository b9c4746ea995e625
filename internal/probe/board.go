package probe

import (
	"context"
	"encoding/json"
	"os"

	"codeberg.org/mutker/questagent/internal/errors"
)

// BoardConfigFile is the production BoardSource: the programmer writes its
// configuration to a file at install time, and the agent only ever reads it.
type BoardConfigFile struct {
	path string
}

func NewBoardConfigFile(path string) *BoardConfigFile {
	return &BoardConfigFile{path: path}
}

func (b *BoardConfigFile) Config(_ context.Context) (string, error) {
	data, err := os.ReadFile(b.path)
	if err != nil {
		return "", errors.New().Wrap(errors.ErrProbeFailed, err)
	}

	return string(data), nil
}

// StationFile is the production StationSource: the installer records the
// station registration as JSON.
type StationFile struct {
	path string
}

func NewStationFile(path string) *StationFile {
	return &StationFile{path: path}
}

func (s *StationFile) Registration(_ context.Context) (Registration, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return Registration{}, errors.New().Wrap(errors.ErrProbeFailed, err)
	}

	var reg Registration
	if err := json.Unmarshal(data, &reg); err != nil {
		return Registration{}, errors.New().Wrap(errors.ErrProbeFailed, err)
	}

	return reg, nil
}
