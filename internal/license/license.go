// Package license queries the local license service. The service is best
// effort: any missing field, or the whole call failing, degrades to the
// sentinel and never aborts a telemetry pass.
package license

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"codeberg.org/mutker/questagent/internal/logger"
)

const (
	sentinel       = "N/A"
	requestTimeout = 5 * time.Second
)

// Info holds the six license identity fields, sentinel-filled by default.
type Info struct {
	Key               string
	Label             string
	ActivationID      string
	SerialMotherboard string
	SerialDisk        string
	SerialHardware    string
}

// Unknown returns an Info with every field set to the sentinel.
func Unknown() Info {
	return Info{
		Key:               sentinel,
		Label:             sentinel,
		ActivationID:      sentinel,
		SerialMotherboard: sentinel,
		SerialDisk:        sentinel,
		SerialHardware:    sentinel,
	}
}

type Client struct {
	url  string
	http *http.Client
}

func NewClient(url string) *Client {
	return &Client{
		url:  url,
		http: &http.Client{Timeout: requestTimeout},
	}
}

// Fetch retrieves the license identity. All six fields are optional in the
// response; absent ones keep the sentinel.
func (c *Client) Fetch(ctx context.Context) Info {
	info := Unknown()
	if c.url == "" {
		return info
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, http.NoBody)
	if err != nil {
		logger.Warn().Err(err).Msg("Failed to build license request")
		return info
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		logger.Warn().Err(err).Msg("License service unreachable")
		return info
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logger.Warn().Int("status", resp.StatusCode).Msg("License service returned non-OK status")
		return info
	}

	var body struct {
		Key               string `json:"key"`
		Label             string `json:"label"`
		ActivationID      string `json:"activationId"`
		SerialHardware    string `json:"serialHardware"`
		SerialMotherboard string `json:"serialMotherboard"`
		SerialDisk        string `json:"serialDisk"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		logger.Warn().Err(err).Msg("Failed to decode license response")
		return info
	}

	setIfPresent(&info.Key, body.Key)
	setIfPresent(&info.Label, body.Label)
	setIfPresent(&info.ActivationID, body.ActivationID)
	setIfPresent(&info.SerialHardware, body.SerialHardware)
	setIfPresent(&info.SerialMotherboard, body.SerialMotherboard)
	setIfPresent(&info.SerialDisk, body.SerialDisk)

	return info
}

func setIfPresent(dst *string, value string) {
	if value != "" {
		*dst = value
	}
}
