package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/alexanderramin/tempo/internal/calendar"
	"github.com/alexanderramin/tempo/internal/db"
	"github.com/alexanderramin/tempo/internal/domain"
)

// SQLitePhaseRepo implements PhaseRepo using a SQLite database.
type SQLitePhaseRepo struct {
	db db.DBTX
}

func NewSQLitePhaseRepo(conn db.DBTX) *SQLitePhaseRepo {
	return &SQLitePhaseRepo{db: conn}
}

const phaseColumns = `id, plan_id, title, start_date, end_date, color, order_index, created_at, updated_at`

func (r *SQLitePhaseRepo) Create(ctx context.Context, ph *domain.Phase) error {
	query := `INSERT INTO phases (` + phaseColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		ph.ID,
		ph.PlanID,
		ph.Title,
		calendar.FormatDate(ph.StartDate),
		calendar.FormatDate(ph.EndDate),
		ph.Color,
		ph.OrderIndex,
		timestamp(ph.CreatedAt),
		timestamp(ph.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting phase: %w", err)
	}
	return nil
}

func (r *SQLitePhaseRepo) GetByID(ctx context.Context, id string) (*domain.Phase, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+phaseColumns+` FROM phases WHERE id = ?`, id)
	return scanPhase(row)
}

// ListByPlan returns a plan's phases in display order: explicit order
// first, then by start date.
func (r *SQLitePhaseRepo) ListByPlan(ctx context.Context, planID string) ([]*domain.Phase, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+phaseColumns+` FROM phases WHERE plan_id = ? ORDER BY order_index, start_date, created_at`, planID)
	if err != nil {
		return nil, fmt.Errorf("listing phases: %w", err)
	}
	return collectPhases(rows)
}

func (r *SQLitePhaseRepo) Update(ctx context.Context, ph *domain.Phase) error {
	query := `UPDATE phases SET title = ?, start_date = ?, end_date = ?, color = ?, order_index = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		ph.Title,
		calendar.FormatDate(ph.StartDate),
		calendar.FormatDate(ph.EndDate),
		ph.Color,
		ph.OrderIndex,
		timestamp(ph.UpdatedAt),
		ph.ID,
	)
	if err != nil {
		return fmt.Errorf("updating phase: %w", err)
	}
	return checkAffected(res, "phase")
}

func (r *SQLitePhaseRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM phases WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting phase: %w", err)
	}
	return checkAffected(res, "phase")
}

func collectPhases(rows *sql.Rows) ([]*domain.Phase, error) {
	defer rows.Close()
	var phases []*domain.Phase
	for rows.Next() {
		ph, err := scanPhase(rows)
		if err != nil {
			return nil, err
		}
		phases = append(phases, ph)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating phases: %w", err)
	}
	return phases, nil
}

func scanPhase(row rowScanner) (*domain.Phase, error) {
	var ph domain.Phase
	var startStr, endStr, createdStr, updatedStr string

	err := row.Scan(
		&ph.ID, &ph.PlanID, &ph.Title,
		&startStr, &endStr, &ph.Color, &ph.OrderIndex,
		&createdStr, &updatedStr,
	)
	if err != nil {
		return nil, notFound(err, "phase")
	}
	if ph.StartDate, err = parseDate(startStr, "start_date"); err != nil {
		return nil, err
	}
	if ph.EndDate, err = parseDate(endStr, "end_date"); err != nil {
		return nil, err
	}
	if ph.CreatedAt, err = parseTimestamp(createdStr, "created_at"); err != nil {
		return nil, err
	}
	if ph.UpdatedAt, err = parseTimestamp(updatedStr, "updated_at"); err != nil {
		return nil, err
	}
	return &ph, nil
}
