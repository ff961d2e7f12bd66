// Package store owns device identity, the per-device command queue, and the
// append-only log table behind a single explicitly constructed handle.
package store

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/shahidarif12/AstraCommand/internal/model"
)

var (
	ErrDeviceNotFound = errors.New("device not found")
	ErrLogNotFound    = errors.New("log not found")
	ErrAdminNotFound  = errors.New("admin not found")
)

// Bound on any admin-facing result set. A protection against unbounded
// responses, not a pagination mechanism.
const queryRowCap = 500

type Store struct {
	db  *gorm.DB
	now func() time.Time
}

// Now reports the store's current time. Handlers that stamp responses use
// this so the whole tree runs on the one injected clock.
func (s *Store) Now() time.Time {
	return s.now()
}

type Options struct {
	Driver string // "sqlite" (default) or "mysql"
	DSN    string
	Now    func() time.Time
}

// Open connects to the backing database, chosen once at process start, and
// migrates the schema.
func Open(opts Options) (*Store, error) {
	var dialector gorm.Dialector
	switch opts.Driver {
	case "", "sqlite":
		dialector = sqlite.Open(sqliteDSN(opts.DSN))
	case "mysql":
		dialector = mysql.Open(opts.DSN)
	default:
		return nil, fmt.Errorf("unsupported driver %q", opts.Driver)
	}

	gormLogger := logger.New(
		log.New(os.Stdout, "", log.LstdFlags),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Error,
			IgnoreRecordNotFoundError: true,
		},
	)

	db, err := gorm.Open(dialector, &gorm.Config{Logger: gormLogger})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(
		&model.Device{},
		&model.Command{},
		&model.LogEntry{},
		&model.Admin{},
	); err != nil {
		return nil, err
	}

	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Store{db: db, now: now}, nil
}

// sqliteDSN turns on foreign key enforcement and a busy timeout; SQLite
// ships with both off.
func sqliteDSN(dsn string) string {
	if strings.Contains(dsn, "?") {
		return dsn + "&_foreign_keys=on&_busy_timeout=5000"
	}
	return dsn + "?_foreign_keys=on&_busy_timeout=5000"
}
