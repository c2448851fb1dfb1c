package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/alexanderramin/tempo/internal/calendar"
	"github.com/alexanderramin/tempo/internal/db"
	"github.com/alexanderramin/tempo/internal/domain"
)

// SQLitePlanRepo implements PlanRepo using a SQLite database.
type SQLitePlanRepo struct {
	db db.DBTX
}

// NewSQLitePlanRepo creates a new SQLitePlanRepo.
func NewSQLitePlanRepo(conn db.DBTX) *SQLitePlanRepo {
	return &SQLitePlanRepo{db: conn}
}

const planColumns = `id, short_id, product_id, name, start_date, end_date, status, created_at, updated_at`

func (r *SQLitePlanRepo) Create(ctx context.Context, p *domain.Plan) error {
	query := `INSERT INTO plans (` + planColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		p.ID,
		p.ShortID,
		nullableString(p.ProductID),
		p.Name,
		calendar.FormatDate(p.StartDate),
		calendar.FormatDate(p.EndDate),
		string(p.Status),
		timestamp(p.CreatedAt),
		timestamp(p.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting plan: %w", err)
	}
	return nil
}

func (r *SQLitePlanRepo) GetByID(ctx context.Context, id string) (*domain.Plan, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+planColumns+` FROM plans WHERE id = ?`, id)
	return scanPlan(row)
}

func (r *SQLitePlanRepo) GetByShortID(ctx context.Context, shortID string) (*domain.Plan, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+planColumns+` FROM plans WHERE UPPER(short_id) = UPPER(?)`, shortID)
	return scanPlan(row)
}

func (r *SQLitePlanRepo) List(ctx context.Context, includeArchived bool) ([]*domain.Plan, error) {
	query := `SELECT ` + planColumns + ` FROM plans WHERE status != 'archived' ORDER BY start_date, created_at`
	if includeArchived {
		query = `SELECT ` + planColumns + ` FROM plans ORDER BY start_date, created_at`
	}
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing plans: %w", err)
	}
	return collectPlans(rows)
}

func (r *SQLitePlanRepo) ListByProduct(ctx context.Context, productID string) ([]*domain.Plan, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+planColumns+` FROM plans WHERE product_id = ? ORDER BY start_date, created_at`, productID)
	if err != nil {
		return nil, fmt.Errorf("listing plans for product: %w", err)
	}
	return collectPlans(rows)
}

func (r *SQLitePlanRepo) Update(ctx context.Context, p *domain.Plan) error {
	query := `UPDATE plans SET short_id = ?, product_id = ?, name = ?, start_date = ?, end_date = ?, status = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		p.ShortID,
		nullableString(p.ProductID),
		p.Name,
		calendar.FormatDate(p.StartDate),
		calendar.FormatDate(p.EndDate),
		string(p.Status),
		timestamp(p.UpdatedAt),
		p.ID,
	)
	if err != nil {
		return fmt.Errorf("updating plan: %w", err)
	}
	return checkAffected(res, "plan")
}

func (r *SQLitePlanRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM plans WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting plan: %w", err)
	}
	return checkAffected(res, "plan")
}

func collectPlans(rows *sql.Rows) ([]*domain.Plan, error) {
	defer rows.Close()
	var plans []*domain.Plan
	for rows.Next() {
		p, err := scanPlan(rows)
		if err != nil {
			return nil, err
		}
		plans = append(plans, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating plans: %w", err)
	}
	return plans, nil
}

func scanPlan(row rowScanner) (*domain.Plan, error) {
	var p domain.Plan
	var productID sql.NullString
	var startStr, endStr, statusStr, createdStr, updatedStr string

	err := row.Scan(
		&p.ID, &p.ShortID, &productID, &p.Name,
		&startStr, &endStr, &statusStr,
		&createdStr, &updatedStr,
	)
	if err != nil {
		return nil, notFound(err, "plan")
	}

	p.ProductID = stringPtr(productID)
	p.Status = domain.PlanStatus(statusStr)

	if p.StartDate, err = parseDate(startStr, "start_date"); err != nil {
		return nil, err
	}
	if p.EndDate, err = parseDate(endStr, "end_date"); err != nil {
		return nil, err
	}
	if p.CreatedAt, err = parseTimestamp(createdStr, "created_at"); err != nil {
		return nil, err
	}
	if p.UpdatedAt, err = parseTimestamp(updatedStr, "updated_at"); err != nil {
		return nil, err
	}
	return &p, nil
}
