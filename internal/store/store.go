// Package store persists analysis runs and their summary statistics to
// SQLite, so repeated runs over the same recording can be compared without
// re-reading the raw series exports.
package store

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-migrate/migrate/v4"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/openbehavior/trackkit/internal/analysis"
	"github.com/openbehavior/trackkit/internal/config"
	"github.com/openbehavior/trackkit/internal/kinematics"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Store wraps the results database.
type Store struct {
	db *sql.DB
}

// Run is a persisted analysis run.
type Run struct {
	ID                    string
	CreatedAt             time.Time
	InputPath             string
	MainNode              string
	FPS                   float64
	VelocityWindow        int
	VelocityPolyOrder     int
	FrameCount            int
	NodeCount             int
	InstanceCount         int
	MissingDataPercentage float64
	TotalTrackingPoints   int
	Warnings              []string
}

// Open opens (creating if necessary) the results database at path and brings
// its schema up to date.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open results database: %w", err)
	}
	if err := migrateUp(db); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error { return s.db.Close() }

func migrateUp(db *sql.DB) error {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("failed to load embedded migrations: %w", err)
	}
	driver, err := migratesqlite.WithInstance(db, &migratesqlite.Config{})
	if err != nil {
		return fmt.Errorf("failed to create sqlite migrate driver: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", src, "sqlite", driver)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}
	// Note: we don't close m because it would close the underlying DB connection.
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration up failed: %w", err)
	}
	return nil
}

// SaveRun records one completed analysis, its parameters and the descriptive
// statistics of every derived series. Returns the new run's ID.
func (s *Store) SaveRun(inputPath string, cfg *config.AnalysisConfig, results *analysis.Results) (string, error) {
	id := uuid.NewString()

	tx, err := s.db.Begin()
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`INSERT INTO analysis_runs (
			id, input_path, main_node, fps, velocity_window, velocity_poly_order,
			frame_count, node_count, instance_count, missing_data_percentage,
			total_tracking_points, warnings
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, inputPath, results.MainNode, cfg.FPS, cfg.VelocityWindow, cfg.VelocityPolyOrder,
		results.Summary.FrameCount, results.Summary.NodeCount, results.Summary.InstanceCount,
		results.Summary.MissingDataPercentage, results.Summary.TotalTrackingPoints,
		strings.Join(results.Warnings, "\n"))
	if err != nil {
		return "", fmt.Errorf("failed to insert analysis run: %w", err)
	}

	for _, inst := range results.Instances {
		if err := insertSeriesStats(tx, id, "velocity/"+inst.Label, inst.VelocityStats); err != nil {
			return "", err
		}
	}
	if results.Distance != nil {
		if err := insertSeriesStats(tx, id, "inter_subject_distance", results.DistanceStats); err != nil {
			return "", err
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit analysis run: %w", err)
	}
	return id, nil
}

func insertSeriesStats(tx *sql.Tx, runID, series string, stats kinematics.SeriesStats) error {
	_, err := tx.Exec(`INSERT INTO series_stats (run_id, series, mean, min, max, valid_count)
		VALUES (?, ?, ?, ?, ?, ?)`,
		runID, series, stats.Mean, stats.Min, stats.Max, stats.ValidCount)
	if err != nil {
		return fmt.Errorf("failed to insert stats for %s: %w", series, err)
	}
	return nil
}

// GetRun fetches a single run by ID.
func (s *Store) GetRun(id string) (*Run, error) {
	row := s.db.QueryRow(`SELECT id, created_at, input_path, main_node, fps,
			velocity_window, velocity_poly_order, frame_count, node_count,
			instance_count, missing_data_percentage, total_tracking_points, warnings
		FROM analysis_runs WHERE id = ?`, id)
	return scanRun(row)
}

// ListRuns returns the most recent runs, newest first.
func (s *Store) ListRuns(limit int) ([]*Run, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.Query(`SELECT id, created_at, input_path, main_node, fps,
			velocity_window, velocity_poly_order, frame_count, node_count,
			instance_count, missing_data_percentage, total_tracking_points, warnings
		FROM analysis_runs ORDER BY created_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// SeriesStats returns the stored statistics for one run, keyed by series name.
func (s *Store) SeriesStats(runID string) (map[string]kinematics.SeriesStats, error) {
	rows, err := s.db.Query(`SELECT series, mean, min, max, valid_count
		FROM series_stats WHERE run_id = ?`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query series stats: %w", err)
	}
	defer rows.Close()

	out := make(map[string]kinematics.SeriesStats)
	for rows.Next() {
		var name string
		var st kinematics.SeriesStats
		if err := rows.Scan(&name, &st.Mean, &st.Min, &st.Max, &st.ValidCount); err != nil {
			return nil, err
		}
		out[name] = st
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRun(row rowScanner) (*Run, error) {
	var run Run
	var warnings string
	err := row.Scan(&run.ID, &run.CreatedAt, &run.InputPath, &run.MainNode, &run.FPS,
		&run.VelocityWindow, &run.VelocityPolyOrder, &run.FrameCount, &run.NodeCount,
		&run.InstanceCount, &run.MissingDataPercentage, &run.TotalTrackingPoints, &warnings)
	if err != nil {
		return nil, err
	}
	if warnings != "" {
		run.Warnings = strings.Split(warnings, "\n")
	}
	return &run, nil
}
