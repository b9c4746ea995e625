package sink

import "codeberg.org/mutker/questagent/internal/errors"

const (
	ErrInvalidLogDir = errors.ErrorCode("sink_invalid_log_dir")
	ErrOpenLog       = errors.ErrorCode("sink_open_log_failed")
	ErrWriteLog      = errors.ErrorCode("sink_write_log_failed")
	ErrScanLog       = errors.ErrorCode("sink_scan_log_failed")
)
