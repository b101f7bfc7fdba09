package mysql

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/go-sql-driver/mysql"

	"github.com/procmine/caseduration-binning/common"
	"github.com/procmine/caseduration-binning/model"
)

// Config locates the activity table case durations are derived from. One
// row per event: a case identifier and an event timestamp.
type Config struct {
	DSN             string
	ActivityTable   string
	CaseIDColumn    string
	EventTimeColumn string
	QueryTimeout    time.Duration
}

// Store wraps MySQL access to an activity table for case duration
// queries.
type Store struct {
	db           *sql.DB
	queryTimeout time.Duration
	table        string
	caseCol      string
	timeCol      string
}

// NewStore creates a MySQL-backed store over the configured activity
// table.
func NewStore(cfg Config) (*Store, error) {
	if cfg.ActivityTable == "" || cfg.CaseIDColumn == "" || cfg.EventTimeColumn == "" {
		return nil, common.ErrorInvalidConfiguration
	}

	db, err := sql.Open("mysql", cfg.DSN)
	if err != nil {
		return nil, err
	}

	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)

	timeout := cfg.QueryTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{
		db:           db,
		queryTimeout: timeout,
		table:        cfg.ActivityTable,
		caseCol:      cfg.CaseIDColumn,
		timeCol:      cfg.EventTimeColumn,
	}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Durations returns a duration source serving case durations in unit.
func (s *Store) Durations(unit model.TimeUnit) (*DurationSource, error) {
	if _, ok := sqlTimeUnits[unit]; !ok {
		return nil, common.ErrorInvalidConfiguration
	}
	return &DurationSource{store: s, unit: unit}, nil
}
