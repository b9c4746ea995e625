// Package sink appends records to the durable local log: one directory per
// month, one file per day, a header written exactly once per file. It also
// owns the dedup budget that caps how many rows one device may add to the
// log per time bucket.
package sink

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"codeberg.org/mutker/questagent/internal/errors"
	"codeberg.org/mutker/questagent/internal/logger"
	"codeberg.org/mutker/questagent/internal/record"
)

const (
	// maxRowsPerBucket caps local log growth per (serial, date, time bucket).
	// Remote delivery is not subject to this cap.
	maxRowsPerBucket = 3

	dirPerm  = 0o755
	filePerm = 0o644

	monthFormat  = "2006-01"
	dateFormat   = "2006-01-02"
	bucketFormat = "15:04"
)

type Sink struct {
	dir string
}

func New(dir string) (*Sink, error) {
	if dir == "" {
		return nil, errors.New().New(ErrInvalidLogDir)
	}

	return &Sink{dir: dir}, nil
}

// DateOf renders t the way log rows and file names do.
func DateOf(t time.Time) string {
	return t.Format(dateFormat)
}

// BucketOf renders the time bucket of t: the hour-minute granularity the
// dedup cap is enforced at.
func BucketOf(t time.Time) string {
	return t.Format(bucketFormat)
}

// Append writes one record to the daily log file, creating the month
// directory and the file header on first use.
func (s *Sink) Append(now time.Time, r record.Record) error {
	errFactory := errors.New()

	path := s.logPath(now)
	if err := os.MkdirAll(filepath.Dir(path), dirPerm); err != nil {
		return errFactory.Wrap(ErrOpenLog, err)
	}

	_, statErr := os.Stat(path)
	needHeader := os.IsNotExist(statErr)

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, filePerm)
	if err != nil {
		return errFactory.Wrap(ErrOpenLog, err)
	}
	defer f.Close()

	if needHeader {
		if _, err := f.WriteString(quoteRow(record.Columns[:])); err != nil {
			return errFactory.Wrap(ErrWriteLog, err)
		}
		logger.Debug().Str("path", path).Msg("Started new daily log")
	}

	if _, err := f.WriteString(quoteRow(r[:])); err != nil {
		return errFactory.Wrap(ErrWriteLog, err)
	}

	return nil
}

// Remaining reports how many more rows the (serial, date, bucket) key may
// add to today's log before hitting the per-bucket cap. A missing file means
// the full budget is available.
func (s *Sink) Remaining(now time.Time, serial string) (int, error) {
	errFactory := errors.New()

	f, err := os.Open(s.logPath(now))
	if err != nil {
		if os.IsNotExist(err) {
			return maxRowsPerBucket, nil
		}
		return 0, errFactory.Wrap(ErrScanLog, err)
	}
	defer f.Close()

	date := DateOf(now)
	bucket := BucketOf(now)

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	written := 0
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, errFactory.Wrap(ErrScanLog, err)
		}
		if len(row) <= record.FieldSerial || row[record.FieldDate] == record.Columns[record.FieldDate] {
			continue
		}
		if row[record.FieldDate] == date && row[record.FieldTime] == bucket && row[record.FieldSerial] == serial {
			written++
		}
	}

	remaining := maxRowsPerBucket - written
	if remaining < 0 {
		remaining = 0
	}

	return remaining, nil
}

func (s *Sink) logPath(now time.Time) string {
	return filepath.Join(s.dir, now.Format(monthFormat), DateOf(now)+".csv")
}

// quoteRow renders one fully quoted CSV row. Literal quotes inside a field
// are doubled; this escaping belongs to the CSV layer and is separate from
// the field sanitization applied when the record was built.
func quoteRow(fields []string) string {
	var b strings.Builder

	for i, field := range fields {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('"')
		b.WriteString(strings.ReplaceAll(field, `"`, `""`))
		b.WriteByte('"')
	}
	b.WriteByte('\n')

	return b.String()
}
