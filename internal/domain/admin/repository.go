package admin

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Repository handles admin dashboard queries
type Repository struct {
	db *sqlx.DB
}

// NewRepository creates new admin repository
func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

// GetStats returns the platform summary counters
func (r *Repository) GetStats(ctx context.Context) (*Stats, error) {
	var s Stats
	err := r.db.GetContext(ctx, &s, `
		SELECT
			(SELECT COUNT(*) FROM clothing_items WHERE approval_status = 'pending') AS pending_items,
			(SELECT COUNT(*) FROM clothing_items WHERE approval_status = 'approved') AS approved_items,
			(SELECT COUNT(*) FROM clothing_items WHERE approval_status = 'rejected') AS rejected_items,
			(SELECT COUNT(*) FROM users WHERE is_active = TRUE) AS active_users,
			(SELECT COUNT(*) FROM swap_requests WHERE status = 'completed') AS completed_swaps,
			(SELECT COUNT(*) FROM swap_requests WHERE status = 'pending') AS pending_swaps
	`)
	if err != nil {
		return nil, fmt.Errorf("admin repository stats: %w", err)
	}
	return &s, nil
}

// ListUsers returns users with their activity aggregates
func (r *Repository) ListUsers(ctx context.Context, search string, isActive *bool, limit, offset int) ([]UserRow, int, error) {
	where := " WHERE 1=1"
	args := []interface{}{}
	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if search != "" {
		pattern := "%" + search + "%"
		where += " AND (u.name ILIKE " + arg(pattern) + " OR u.email ILIKE " + arg(pattern) + ")"
	}
	if isActive != nil {
		where += " AND u.is_active = " + arg(*isActive)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM users u`+where, args...); err != nil {
		return nil, 0, fmt.Errorf("admin repository count users: %w", err)
	}

	query := `
		SELECT
			u.id, u.name, u.email, u.points, u.is_admin, u.is_active, u.created_at,
			(SELECT COUNT(*) FROM clothing_items i WHERE i.uploader_id = u.id) AS item_count,
			(SELECT COUNT(*) FROM swap_requests s WHERE s.requester_id = u.id) AS swap_count,
			COALESCE((SELECT SUM(t.points) FROM point_transactions t
				WHERE t.user_id = u.id AND t.points > 0), 0) AS total_earned
		FROM users u` + where + `
		ORDER BY u.created_at DESC
		LIMIT ` + arg(limit) + ` OFFSET ` + arg(offset)

	users := []UserRow{}
	if err := r.db.SelectContext(ctx, &users, query, args...); err != nil {
		return nil, 0, fmt.Errorf("admin repository list users: %w", err)
	}

	return users, total, nil
}

// GetActivity returns the daily activity series for the last period days
func (r *Repository) GetActivity(ctx context.Context, periodDays int) ([]ActivityPoint, error) {
	points := []ActivityPoint{}
	err := r.db.SelectContext(ctx, &points, `
		SELECT
			d.day::date AS day,
			(SELECT COUNT(*) FROM clothing_items i WHERE i.created_at::date = d.day::date) AS new_items,
			(SELECT COUNT(*) FROM users u WHERE u.created_at::date = d.day::date) AS new_users,
			(SELECT COUNT(*) FROM swap_requests s WHERE s.created_at::date = d.day::date) AS new_swaps
		FROM generate_series(
			current_date - ($1 - 1) * interval '1 day',
			current_date,
			interval '1 day'
		) AS d(day)
		ORDER BY d.day
	`, periodDays)
	if err != nil {
		return nil, fmt.Errorf("admin repository activity: %w", err)
	}
	return points, nil
}
