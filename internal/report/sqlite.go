package report

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var Schema string

// SaveSQLite appends the report to the SQLite database at path as a new run.
// Several runs may share one database file.
func (r *Report) SaveSQLite(ctx context.Context, path, runID string) error {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("open sqlite: %w", err)
	}
	defer db.Close()

	if _, err := db.ExecContext(ctx, Schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	s := r.Summary
	_, err = tx.ExecContext(ctx,
		`insert into runs (id, name, dt, steps, created_at, max_ground_accel, max_floor_accel,
			max_floor_disp, max_damper_abs_accel, max_damper_rel_disp, peak_floor_disp_time,
			dominant_frequency_hz)
		values (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		runID, r.Name, r.Dt, len(r.Rows), time.Now().Unix(),
		s.MaxGroundAccel, s.MaxFloorAccel, s.MaxFloorDisp, s.MaxDamperAbsAccel,
		s.MaxDamperRelDisp, s.PeakFloorDispTime, s.DominantFrequencyHz,
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(Columns)+2), ", ")
	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf(
		"insert into samples (run_id, step, %s) values (%s)",
		strings.Join(Columns, ", "), placeholders,
	))
	if err != nil {
		return err
	}
	defer stmt.Close()

	args := make([]any, len(Columns)+2)
	args[0] = runID
	for i, row := range r.Rows {
		args[1] = i
		for j, v := range row.Values() {
			args[j+2] = v
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return fmt.Errorf("insert sample %d: %w", i, err)
		}
	}

	return tx.Commit()
}
