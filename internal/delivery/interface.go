package delivery

import "time"

// State is the per-attempt delivery state machine:
// PENDING -> INVALID (aborted before any network call), or
// PENDING -> SENDING -> SUCCESS | FAILED.
type State int

const (
	StatePending State = iota
	StateInvalid
	StateSending
	StateSuccess
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateInvalid:
		return "INVALID"
	case StateSending:
		return "SENDING"
	case StateSuccess:
		return "SUCCESS"
	case StateFailed:
		return "FAILED"
	default:
		return "PENDING"
	}
}

type Config struct {
	URL       string
	Token     string
	UserAgent string
	Timeout   time.Duration
	Retries   int
}

func DefaultConfig() Config {
	return Config{
		Timeout: defaultTimeout,
		Retries: defaultRetries,
	}
}
