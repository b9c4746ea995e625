// Package delivery serializes records and posts them to the remote
// collector with bounded timeout and retries. Delivery failures are reported
// to the caller but are never fatal to a pass.
package delivery

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"codeberg.org/mutker/questagent/internal/errors"
	"codeberg.org/mutker/questagent/internal/journal"
	"codeberg.org/mutker/questagent/internal/logger"
	"codeberg.org/mutker/questagent/internal/record"
)

const (
	defaultTimeout = 15 * time.Second
	defaultRetries = 2

	previewLen      = 120
	maxResponseRead = 4096
)

type Client struct {
	cfg     Config
	http    *http.Client
	journal journal.Recorder
}

func New(cfg Config, rec journal.Recorder) (*Client, error) {
	errFactory := errors.New()

	if cfg.URL == "" {
		return nil, errFactory.New(ErrMissingURL)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.Retries < 0 {
		cfg.Retries = defaultRetries
	}

	return &Client{
		cfg:     cfg,
		http:    &http.Client{Timeout: cfg.Timeout},
		journal: rec,
	}, nil
}

// Deliver serializes one record and posts it. The payload is validated
// before any network call; an invalid payload aborts without touching the
// wire. The serialized payload is staged in a per-invocation scratch file
// that is removed on every exit path.
func (c *Client) Deliver(ctx context.Context, r record.Record) (State, error) {
	errFactory := errors.New()

	payload, err := json.Marshal(r)
	if err != nil {
		c.logAttempt(ctx, StateInvalid, 0, 0, "", "")
		return StateInvalid, errFactory.Wrap(ErrInvalidPayload, err)
	}

	if !validPayload(payload) {
		c.logAttempt(ctx, StateInvalid, 0, 0, preview(payload), "")
		return StateInvalid, errFactory.WithData(ErrInvalidPayload, preview(payload))
	}

	scratch, err := stagePayload(payload)
	if err != nil {
		// Staging is diagnostic only; deliver from memory regardless
		logger.Warn().Err(err).Msg("Failed to stage payload scratch file")
	} else {
		defer func() {
			if err := os.Remove(scratch); err != nil {
				logger.Warn().Err(err).Str("path", scratch).Msg("Failed to remove scratch file")
			}
		}()
	}

	var lastStatus int
	var lastResponse string

	for attempt := 0; attempt <= c.cfg.Retries; attempt++ {
		status, response, elapsed, err := c.post(ctx, payload)
		lastStatus, lastResponse = status, response

		if err == nil && delivered(status) {
			c.logAttempt(ctx, StateSuccess, status, elapsed, preview(payload), preview([]byte(response)))
			return StateSuccess, nil
		}

		c.logAttempt(ctx, StateFailed, status, elapsed, preview(payload), preview([]byte(response)))

		if err != nil {
			logger.Warn().Err(err).Int("attempt", attempt+1).Msg("Delivery attempt failed")
		}
		if ctx.Err() != nil {
			break
		}
	}

	return StateFailed, errFactory.WithData(ErrDeliveryFailed, struct {
		Status   int
		Response string
	}{
		Status:   lastStatus,
		Response: preview([]byte(lastResponse)),
	})
}

// Ping runs the once-per-pass connectivity self-test against the collector.
// Any HTTP response counts as reachable; only transport errors fail.
func (c *Client) Ping(ctx context.Context) error {
	errFactory := errors.New()

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, c.cfg.URL, http.NoBody)
	if err != nil {
		return errFactory.Wrap(ErrSelfTestFailed, err)
	}
	req.Header.Set("User-Agent", c.cfg.UserAgent)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return errFactory.Wrap(ErrSelfTestFailed, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseRead))

	logger.Debug().
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("Collector self-test")

	return nil
}

func (c *Client) post(ctx context.Context, payload []byte) (int, string, time.Duration, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.URL, bytes.NewReader(payload))
	if err != nil {
		return 0, "", 0, err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.Token)
	req.Header.Set("User-Agent", c.cfg.UserAgent)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	elapsed := time.Since(start)
	if err != nil {
		return 0, "", elapsed, err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxResponseRead))

	return resp.StatusCode, string(body), elapsed, nil
}

// logAttempt records one attempt outcome in the log and the journal. It is
// a side effect only and never changes delivery control flow.
func (c *Client) logAttempt(ctx context.Context, state State, status int, elapsed time.Duration, payload, response string) {
	logger.Info().
		Str("state", state.String()).
		Int("status", status).
		Dur("elapsed", elapsed).
		Str("payload", payload).
		Str("response", response).
		Msg("Delivery attempt")

	if c.journal == nil {
		return
	}

	err := c.journal.Record(ctx, &journal.Attempt{
		Timestamp: time.Now(),
		Endpoint:  c.cfg.URL,
		State:     state.String(),
		Status:    status,
		Elapsed:   elapsed,
		Payload:   payload,
		Response:  response,
	})
	if err != nil {
		logger.Warn().Err(err).Msg("Failed to journal delivery attempt")
	}
}

// validPayload rejects payloads that would be accepted by the transport but
// carry no observation: empty, the empty object, or the null token.
func validPayload(payload []byte) bool {
	trimmed := bytes.TrimSpace(payload)
	if len(trimmed) == 0 {
		return false
	}
	if bytes.Equal(trimmed, []byte("{}")) || bytes.Equal(trimmed, []byte("null")) {
		return false
	}

	return true
}

func delivered(status int) bool {
	return status == http.StatusOK || status == http.StatusCreated
}

// stagePayload writes the payload to a scratch file named uniquely per
// invocation so overlapping passes cannot collide.
func stagePayload(payload []byte) (string, error) {
	path := filepath.Join(os.TempDir(),
		fmt.Sprintf("questagent-%d-%d.json", time.Now().UnixNano(), os.Getpid()))

	if err := os.WriteFile(path, payload, 0o600); err != nil {
		return "", err
	}

	return path, nil
}

func preview(b []byte) string {
	s := string(b)
	if len(s) > previewLen {
		return s[:previewLen]
	}

	return s
}
