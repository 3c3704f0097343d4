package archive

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// store is the shared database/sql implementation behind every driver
type store struct {
	db     *sql.DB
	driver string
	logger *zap.Logger
}

const (
	insertRunQuery = `INSERT INTO report_runs
		(run_id, started_at, hosts, days_back, timezone, output, row_count)
		VALUES (?, ?, ?, ?, ?, ?, ?)`

	insertRowQuery = `INSERT INTO report_rows
		(run_id, server, type, unit, min_value, avg_value, max_value)
		VALUES (?, ?, ?, ?, ?, ?, ?)`

	insertDailyQuery = `INSERT INTO report_daily
		(run_id, host, item, item_key, day, min_value, avg_value, max_value, sample_count)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
)

// newStore opens a connection and creates the schema
func newStore(driver, dsn, schema string, logger *zap.Logger) (*store, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// One-shot tool, keep the pool minimal
	db.SetMaxOpenConns(2)
	db.SetMaxIdleConns(1)

	s := &store{
		db:     db,
		driver: driver,
		logger: logger,
	}

	if err := s.createSchema(schema); err != nil {
		_ = db.Close()
		return nil, err
	}

	return s, nil
}

// createSchema applies the dialect DDL statement by statement
func (s *store) createSchema(schema string) error {
	for _, stmt := range strings.Split(schema, ";") {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		if _, err := s.db.ExecContext(context.Background(), stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}
	return nil
}

// SaveRun stores the run header, its report rows and the daily aggregates
// in one transaction
func (s *store) SaveRun(ctx context.Context, run *Run) error {
	err := s.withTransaction(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, s.rebind(insertRunQuery),
			run.RunID,
			run.StartedAt.UTC(),
			strings.Join(run.Hosts, ","),
			run.DaysBack,
			run.Timezone,
			run.Output,
			len(run.Rows)); err != nil {
			return fmt.Errorf("failed to insert run: %w", err)
		}

		rowStmt, err := tx.PrepareContext(ctx, s.rebind(insertRowQuery))
		if err != nil {
			return fmt.Errorf("failed to prepare row insert: %w", err)
		}
		defer func() {
			_ = rowStmt.Close()
		}()

		for _, row := range run.Rows {
			if _, err := rowStmt.ExecContext(ctx,
				run.RunID, row.Server, row.Type, row.Unit,
				row.Min, row.Avg, row.Max); err != nil {
				return fmt.Errorf("failed to insert row: %w", err)
			}
		}

		dailyStmt, err := tx.PrepareContext(ctx, s.rebind(insertDailyQuery))
		if err != nil {
			return fmt.Errorf("failed to prepare daily insert: %w", err)
		}
		defer func() {
			_ = dailyStmt.Close()
		}()

		for _, summary := range run.Summaries {
			for _, day := range summary.Daily {
				if _, err := dailyStmt.ExecContext(ctx,
					run.RunID, summary.Host, summary.Item, summary.Key,
					day.Date, day.Min, day.Avg, day.Max, day.SampleCount); err != nil {
					return fmt.Errorf("failed to insert daily aggregate: %w", err)
				}
			}
		}

		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Debug("Archived report run",
		zap.String("run_id", run.RunID),
		zap.Int("rows", len(run.Rows)))
	return nil
}

// withTransaction executes fn inside a transaction
func (s *store) withTransaction(ctx context.Context, fn func(*sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("rollback failed: %v (original error: %w)", rbErr, err)
		}
		return err
	}

	return tx.Commit()
}

// rebind rewrites positional placeholders for drivers that need it
func (s *store) rebind(query string) string {
	if s.driver == "postgres" {
		return convertPlaceholders(query)
	}
	return query
}

// Close closes the database connection
func (s *store) Close() error {
	return s.db.Close()
}
