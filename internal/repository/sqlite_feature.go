package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/alexanderramin/tempo/internal/db"
	"github.com/alexanderramin/tempo/internal/domain"
)

// SQLiteFeatureRepo implements FeatureRepo using a SQLite database.
type SQLiteFeatureRepo struct {
	db db.DBTX
}

func NewSQLiteFeatureRepo(conn db.DBTX) *SQLiteFeatureRepo {
	return &SQLiteFeatureRepo{db: conn}
}

const featureColumns = `id, plan_id, phase_id, title, status, created_at, updated_at`

func (r *SQLiteFeatureRepo) Create(ctx context.Context, f *domain.Feature) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO features (`+featureColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		f.ID, f.PlanID, nullableString(f.PhaseID), f.Title, string(f.Status),
		timestamp(f.CreatedAt), timestamp(f.UpdatedAt))
	if err != nil {
		return fmt.Errorf("inserting feature: %w", err)
	}
	return nil
}

func (r *SQLiteFeatureRepo) GetByID(ctx context.Context, id string) (*domain.Feature, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+featureColumns+` FROM features WHERE id = ?`, id)
	return scanFeature(row)
}

func (r *SQLiteFeatureRepo) ListByPlan(ctx context.Context, planID string) ([]*domain.Feature, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+featureColumns+` FROM features WHERE plan_id = ? ORDER BY created_at, title`, planID)
	if err != nil {
		return nil, fmt.Errorf("listing features: %w", err)
	}
	return collectFeatures(rows)
}

func (r *SQLiteFeatureRepo) ListByPhase(ctx context.Context, phaseID string) ([]*domain.Feature, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+featureColumns+` FROM features WHERE phase_id = ? ORDER BY created_at, title`, phaseID)
	if err != nil {
		return nil, fmt.Errorf("listing features for phase: %w", err)
	}
	return collectFeatures(rows)
}

func (r *SQLiteFeatureRepo) Update(ctx context.Context, f *domain.Feature) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE features SET phase_id = ?, title = ?, status = ?, updated_at = ? WHERE id = ?`,
		nullableString(f.PhaseID), f.Title, string(f.Status), timestamp(f.UpdatedAt), f.ID)
	if err != nil {
		return fmt.Errorf("updating feature: %w", err)
	}
	return checkAffected(res, "feature")
}

func (r *SQLiteFeatureRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM features WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting feature: %w", err)
	}
	return checkAffected(res, "feature")
}

func collectFeatures(rows *sql.Rows) ([]*domain.Feature, error) {
	defer rows.Close()
	var features []*domain.Feature
	for rows.Next() {
		f, err := scanFeature(rows)
		if err != nil {
			return nil, err
		}
		features = append(features, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating features: %w", err)
	}
	return features, nil
}

func scanFeature(row rowScanner) (*domain.Feature, error) {
	var f domain.Feature
	var phaseID sql.NullString
	var statusStr, createdStr, updatedStr string

	err := row.Scan(&f.ID, &f.PlanID, &phaseID, &f.Title, &statusStr, &createdStr, &updatedStr)
	if err != nil {
		return nil, notFound(err, "feature")
	}
	f.PhaseID = stringPtr(phaseID)
	f.Status = domain.FeatureStatus(statusStr)
	if f.CreatedAt, err = parseTimestamp(createdStr, "created_at"); err != nil {
		return nil, err
	}
	if f.UpdatedAt, err = parseTimestamp(updatedStr, "updated_at"); err != nil {
		return nil, err
	}
	return &f, nil
}
