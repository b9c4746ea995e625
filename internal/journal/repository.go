package journal

import (
	"database/sql"
	"os"
	"path/filepath"
	"sync"

	"codeberg.org/mutker/questagent/internal/errors"
	"codeberg.org/mutker/questagent/internal/logger"

	_ "github.com/mattn/go-sqlite3"
)

type sqliteRepository struct {
	db *sql.DB
	mu sync.Mutex
}

func NewRepository(cfg Config) (Repository, error) {
	errFactory := errors.New()

	if cfg.DBPath == "" {
		return nil, errFactory.New(ErrInvalidDBPath)
	}

	logger.Debug().Msgf("Initializing delivery journal at: %s", cfg.DBPath)

	// Ensure the directory exists
	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), defaultDirPerm); err != nil {
		return nil, errFactory.Wrap(ErrStorageInit, err)
	}

	db, err := sql.Open("sqlite3", cfg.DBPath+"?_journal=WAL")
	if err != nil {
		return nil, errFactory.Wrap(ErrStorageInit, err)
	}

	if err := initSchema(db); err != nil {
		db.Close()
		return nil, err
	}

	return &sqliteRepository{
		db: db,
	}, nil
}

func (r *sqliteRepository) Record(attempt *Attempt) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	errFactory := errors.New()

	_, err := r.db.Exec(`
        INSERT INTO delivery_log (
            timestamp, endpoint, state,
            http_status, elapsed_ms,
            payload_preview, response_preview
        ) VALUES (?, ?, ?, ?, ?, ?, ?)
    `,
		attempt.Timestamp.Unix(),
		attempt.Endpoint,
		attempt.State,
		attempt.Status,
		attempt.Elapsed.Milliseconds(),
		attempt.Payload,
		attempt.Response,
	)
	if err != nil {
		return errFactory.Wrap(ErrStorageAccess, err)
	}

	return nil
}

func (r *sqliteRepository) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.db.Close(); err != nil {
		return errors.New().Wrap(ErrStorageClose, err)
	}
	return nil
}
