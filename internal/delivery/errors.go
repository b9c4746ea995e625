package delivery

import "codeberg.org/mutker/questagent/internal/errors"

const (
	// Configuration Errors
	ErrInvalidConfig = errors.ErrorCode("delivery_invalid_config")
	ErrMissingURL    = errors.ErrorCode("delivery_missing_url")

	// Payload Errors
	ErrInvalidPayload = errors.ErrorCode("delivery_invalid_payload")

	// Transport Errors
	ErrDeliveryFailed = errors.ErrorCode("delivery_failed")
	ErrSelfTestFailed = errors.ErrorCode("delivery_self_test_failed")
)
