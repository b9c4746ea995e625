package journal

import (
	"context"
	"time"
)

// Recorder defines the core domain interface
type Recorder interface {
	Record(ctx context.Context, attempt *Attempt) error
	Close() error
}

// Repository defines the interface for journal storage
type Repository interface {
	Record(attempt *Attempt) error
	Close() error
}

// Attempt is one delivery attempt outcome, kept for diagnosis
type Attempt struct {
	Timestamp time.Time
	Endpoint  string
	State     string
	Status    int
	Elapsed   time.Duration
	Payload   string
	Response  string
}
