package favorite

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Favorite represents a bookmarked item
type Favorite struct {
	ID        uuid.UUID `json:"id" db:"id"`
	UserID    uuid.UUID `json:"user_id" db:"user_id"`
	ItemID    uuid.UUID `json:"item_id" db:"item_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Repository for favorites
type Repository struct {
	db *sqlx.DB
}

// NewRepository creates favorites repository
func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

// Add bookmarks an item. Adding twice is a no-op.
func (r *Repository) Add(ctx context.Context, userID, itemID uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO user_favorites (id, user_id, item_id)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, item_id) DO NOTHING
	`, uuid.New(), userID, itemID)
	if err != nil {
		return fmt.Errorf("favorite repository add: %w", err)
	}
	return nil
}

// Remove drops the bookmark
func (r *Repository) Remove(ctx context.Context, userID, itemID uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `
		DELETE FROM user_favorites WHERE user_id = $1 AND item_id = $2
	`, userID, itemID)
	if err != nil {
		return fmt.Errorf("favorite repository remove: %w", err)
	}
	return nil
}

// Exists reports whether the user has bookmarked the item
func (r *Repository) Exists(ctx context.Context, userID, itemID uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, `
		SELECT EXISTS (SELECT 1 FROM user_favorites WHERE user_id = $1 AND item_id = $2)
	`, userID, itemID)
	if err != nil {
		return false, fmt.Errorf("favorite repository exists: %w", err)
	}
	return exists, nil
}

// ListItemIDs returns the user's bookmarked item IDs, newest first
func (r *Repository) ListItemIDs(ctx context.Context, userID uuid.UUID, limit, offset int) ([]uuid.UUID, int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, `
		SELECT COUNT(*) FROM user_favorites WHERE user_id = $1
	`, userID); err != nil {
		return nil, 0, fmt.Errorf("favorite repository count: %w", err)
	}

	ids := []uuid.UUID{}
	err := r.db.SelectContext(ctx, &ids, `
		SELECT item_id FROM user_favorites
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`, userID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("favorite repository list: %w", err)
	}

	return ids, total, nil
}
