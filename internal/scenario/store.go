// Package scenario persists named scenario inputs in a SQLite table and
// retrieves them by id. Scenarios are immutable once saved: the store offers
// create, list and fetch only.
//
// A Store holds a single connection and assumes a single writer; concurrent
// writers must serialize externally.
package scenario

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/iwvelando/invoice-roi/internal/calculator"
	"go.uber.org/zap"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

const schema = `
CREATE TABLE IF NOT EXISTS scenarios (
	id INTEGER PRIMARY KEY,
	scenario_name TEXT NOT NULL,
	monthly_invoice_volume INTEGER,
	num_ap_staff INTEGER,
	hourly_wage REAL,
	error_cost REAL,
	time_horizon_months INTEGER,
	one_time_implementation_cost REAL
)`

// Summary identifies a saved scenario in listings.
type Summary struct {
	ID           int64  `json:"id"`
	ScenarioName string `json:"scenario_name"`
}

// Record is a saved scenario: its input plus the id assigned on creation.
type Record struct {
	ID int64 `json:"id"`
	calculator.ScenarioInput
}

// Input returns the complete saved input. Loading a scenario replaces the
// whole working input with this value.
func (r Record) Input() calculator.ScenarioInput {
	return r.ScenarioInput
}

// Store is a repository of saved scenarios.
type Store struct {
	db     *sql.DB
	path   string
	logger *zap.Logger
}

// Open connects to the database at path, creating the file, its directory
// and the scenarios table as needed. The caller must Close the store.
func Open(ctx context.Context, path string, logger *zap.Logger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if strings.TrimSpace(path) == "" {
		return nil, persistenceError("open", errors.New("database path is empty"))
	}

	if path != MemoryPath && !strings.HasPrefix(path, "file:") {
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, persistenceError("open", fmt.Errorf("failed to create database directory: %w", err))
			}
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, persistenceError("open", err)
	}
	// One connection keeps an in-memory database alive for the store's
	// lifetime and matches the single-writer model.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, persistenceError("open", err)
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, persistenceError("init", err)
	}

	logger.Debug("scenario store opened",
		zap.String("op", "scenario.Open"),
		zap.String("path", path),
	)

	return &Store{db: db, path: path, logger: logger}, nil
}

// WithStore opens the store at path, runs fn and closes the store whatever
// fn returns.
func WithStore(ctx context.Context, path string, logger *zap.Logger, fn func(*Store) error) (err error) {
	store, err := Open(ctx, path, logger)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := store.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()
	return fn(store)
}

// Close releases the database connection.
func (s *Store) Close() error {
	if err := s.db.Close(); err != nil {
		return persistenceError("close", err)
	}
	return nil
}

// Path returns the database location the store was opened with.
func (s *Store) Path() string {
	return s.path
}

// Create saves the input as a new scenario and returns its id. Ids increase
// with each creation and existing rows are never overwritten.
func (s *Store) Create(ctx context.Context, in calculator.ScenarioInput) (int64, error) {
	if in.ScenarioName == "" {
		return 0, persistenceError("create", ErrEmptyName)
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO scenarios (scenario_name, monthly_invoice_volume, num_ap_staff, hourly_wage, error_cost, time_horizon_months, one_time_implementation_cost)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		in.ScenarioName,
		in.MonthlyInvoiceVolume,
		in.NumAPStaff,
		in.HourlyWage,
		in.ErrorCost,
		in.TimeHorizonMonths,
		in.OneTimeImplementationCost,
	)
	if err != nil {
		return 0, persistenceError("create", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, persistenceError("create", err)
	}

	s.logger.Info("scenario saved",
		zap.String("op", "scenario.Create"),
		zap.Int64("id", id),
		zap.String("name", in.ScenarioName),
	)
	return id, nil
}

// List returns the id and name of every saved scenario in creation order.
func (s *Store) List(ctx context.Context) ([]Summary, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, scenario_name FROM scenarios ORDER BY id`)
	if err != nil {
		return nil, persistenceError("list", err)
	}
	defer rows.Close()

	summaries := []Summary{}
	for rows.Next() {
		var summary Summary
		if err := rows.Scan(&summary.ID, &summary.ScenarioName); err != nil {
			return nil, persistenceError("list", err)
		}
		summaries = append(summaries, summary)
	}
	if err := rows.Err(); err != nil {
		return nil, persistenceError("list", err)
	}

	return summaries, nil
}

// Fetch returns the scenario with the given id, or ErrNotFound.
func (s *Store) Fetch(ctx context.Context, id int64) (Record, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, scenario_name, monthly_invoice_volume, num_ap_staff, hourly_wage, error_cost, time_horizon_months, one_time_implementation_cost
		FROM scenarios WHERE id = ?`, id)

	var (
		record  Record
		volume  sql.NullInt64
		staff   sql.NullInt64
		wage    sql.NullFloat64
		errCost sql.NullFloat64
		horizon sql.NullInt64
		cost    sql.NullFloat64
	)
	err := row.Scan(&record.ID, &record.ScenarioName, &volume, &staff, &wage, &errCost, &horizon, &cost)
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	if err != nil {
		return Record{}, persistenceError("fetch", err)
	}

	record.MonthlyInvoiceVolume = int(volume.Int64)
	record.NumAPStaff = int(staff.Int64)
	record.HourlyWage = wage.Float64
	record.ErrorCost = errCost.Float64
	record.TimeHorizonMonths = int(horizon.Int64)
	record.OneTimeImplementationCost = cost.Float64

	return record, nil
}
