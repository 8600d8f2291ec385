package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// PlanRecord is one stored meal plan.
type PlanRecord struct {
	ID        string
	UserName  string
	PlanData  []byte // Raw JSON of the plan result
	CreatedAt time.Time
}

// PlanRepository is a database-backed repository for generated meal plans.
type PlanRepository struct {
	db *sql.DB
}

// NewPlanRepository creates a new PlanRepository.
func NewPlanRepository(d *sql.DB) *PlanRepository {
	return &PlanRepository{db: d}
}

// Save inserts a new plan and returns its generated ID.
func (r *PlanRepository) Save(ctx context.Context, userName string, planData []byte) (string, error) {
	id := uuid.NewString()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO meal_plans (id, user_name, plan_data, created_at) VALUES (?, ?, ?, ?)`,
		id, userName, string(planData), time.Now().UTC(),
	)
	if err != nil {
		return "", fmt.Errorf("failed to save meal plan: %w", err)
	}
	return id, nil
}

// ListRecent retrieves the N most recent plans for a given user.
func (r *PlanRepository) ListRecent(ctx context.Context, userName string, limit int) ([]PlanRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_name, plan_data, created_at
		 FROM meal_plans
		 WHERE user_name = ?
		 ORDER BY created_at DESC
		 LIMIT ?`,
		userName, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent meal plans for %s: %w", userName, err)
	}
	defer rows.Close()

	var records []PlanRecord
	for rows.Next() {
		var rec PlanRecord
		var data string
		if err := rows.Scan(&rec.ID, &rec.UserName, &data, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan meal plan row: %w", err)
		}
		rec.PlanData = []byte(data)
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Count returns the number of stored plans.
func (r *PlanRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM meal_plans`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count meal plans: %w", err)
	}
	return n, nil
}
