package item

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

const itemColumns = `
	i.id, i.title, i.description, i.category_id, i.type, i.size, i.condition_type,
	i.point_value, i.uploader_id, i.is_available, i.approval_status, i.rejection_reason,
	i.created_at, i.updated_at,
	u.name AS uploader_name, c.name AS category_name
`

const itemJoins = `
	FROM clothing_items i
	JOIN users u ON u.id = i.uploader_id
	LEFT JOIN categories c ON c.id = i.category_id
`

// Repository handles item persistence
type Repository struct {
	db *sqlx.DB
}

// NewRepository creates new item repository
func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts the item with its images and tags in one transaction
func (r *Repository) Create(ctx context.Context, it *Item, images []Image, tags []string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO clothing_items (id, title, description, category_id, type, size, condition_type,
			point_value, uploader_id, is_available, approval_status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`, it.ID, it.Title, it.Description, it.CategoryID, it.Type, it.Size, it.Condition,
		it.PointValue, it.UploaderID, it.IsAvailable, it.ApprovalStatus); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23503" {
			return ErrCategoryNotFound
		}
		return fmt.Errorf("item repository create: %w", err)
	}

	for _, img := range images {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO item_images (id, item_id, image_url, thumbnail_url, is_primary, display_order)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, img.ID, it.ID, img.ImageURL, img.ThumbnailURL, img.IsPrimary, img.DisplayOrder); err != nil {
			return fmt.Errorf("item repository insert image: %w", err)
		}
	}

	if err := r.insertTags(ctx, tx, it.ID, tags); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *Repository) insertTags(ctx context.Context, tx *sqlx.Tx, itemID uuid.UUID, tags []string) error {
	for _, tag := range tags {
		tag = strings.TrimSpace(strings.ToLower(tag))
		if tag == "" {
			continue
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO item_tags (id, item_id, tag)
			VALUES ($1, $2, $3)
			ON CONFLICT (item_id, tag) DO NOTHING
		`, uuid.New(), itemID, tag); err != nil {
			return fmt.Errorf("item repository insert tag: %w", err)
		}
	}
	return nil
}

// GetByID returns the item with uploader and category names joined
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*Item, error) {
	var it Item
	err := r.db.GetContext(ctx, &it, `SELECT `+itemColumns+itemJoins+` WHERE i.id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("item repository get by id: %w", err)
	}
	return &it, nil
}

// GetForUpdateTx locks the item row for a settlement decision
func (r *Repository) GetForUpdateTx(ctx context.Context, tx *sqlx.Tx, id uuid.UUID) (*Item, error) {
	var it Item
	err := tx.GetContext(ctx, &it, `
		SELECT id, title, description, category_id, type, size, condition_type,
			point_value, uploader_id, is_available, approval_status, rejection_reason,
			created_at, updated_at
		FROM clothing_items WHERE id = $1 FOR UPDATE
	`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("item repository get for update: %w", err)
	}
	return &it, nil
}

// List returns a filtered catalog page with the total count
func (r *Repository) List(ctx context.Context, f Filter) ([]Item, int, error) {
	where := []string{"1=1"}
	args := []interface{}{}
	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if f.Status != "" {
		where = append(where, "i.approval_status = "+arg(f.Status))
	} else if !f.AnyStatus {
		where = append(where, "i.approval_status = "+arg(string(ApprovalApproved)))
	}
	if f.CategoryID != nil {
		where = append(where, "i.category_id = "+arg(*f.CategoryID))
	}
	if f.Size != "" {
		where = append(where, "i.size = "+arg(f.Size))
	}
	if f.Condition != "" {
		where = append(where, "i.condition_type = "+arg(f.Condition))
	}
	if f.MinPoints > 0 {
		where = append(where, "i.point_value >= "+arg(f.MinPoints))
	}
	if f.MaxPoints > 0 {
		where = append(where, "i.point_value <= "+arg(f.MaxPoints))
	}
	if f.Search != "" {
		pattern := "%" + f.Search + "%"
		where = append(where, "(i.title ILIKE "+arg(pattern)+" OR i.description ILIKE "+arg(pattern)+" OR i.type ILIKE "+arg(pattern)+")")
	}
	if f.UploaderID != nil {
		where = append(where, "i.uploader_id = "+arg(*f.UploaderID))
	}

	whereClause := " WHERE " + strings.Join(where, " AND ")

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*)`+itemJoins+whereClause, args...); err != nil {
		return nil, 0, fmt.Errorf("item repository count: %w", err)
	}

	order := " ORDER BY i.created_at DESC"
	if f.OldestFirst {
		order = " ORDER BY i.created_at ASC"
	}

	query := `SELECT ` + itemColumns + itemJoins + whereClause + order +
		` LIMIT ` + arg(f.Limit) + ` OFFSET ` + arg((f.Page-1)*f.Limit)

	items := []Item{}
	if err := r.db.SelectContext(ctx, &items, query, args...); err != nil {
		return nil, 0, fmt.Errorf("item repository list: %w", err)
	}

	return items, total, nil
}

// GetImages returns an item's images ordered for display
func (r *Repository) GetImages(ctx context.Context, itemID uuid.UUID) ([]Image, error) {
	images := []Image{}
	err := r.db.SelectContext(ctx, &images, `
		SELECT id, item_id, image_url, COALESCE(thumbnail_url, '') AS thumbnail_url, is_primary, display_order, created_at
		FROM item_images WHERE item_id = $1
		ORDER BY is_primary DESC, display_order ASC
	`, itemID)
	if err != nil {
		return nil, fmt.Errorf("item repository get images: %w", err)
	}
	return images, nil
}

// GetImagesForItems batch loads images for a catalog page
func (r *Repository) GetImagesForItems(ctx context.Context, itemIDs []uuid.UUID) (map[uuid.UUID][]Image, error) {
	result := make(map[uuid.UUID][]Image, len(itemIDs))
	if len(itemIDs) == 0 {
		return result, nil
	}

	images := []Image{}
	err := r.db.SelectContext(ctx, &images, `
		SELECT id, item_id, image_url, COALESCE(thumbnail_url, '') AS thumbnail_url, is_primary, display_order, created_at
		FROM item_images WHERE item_id = ANY($1)
		ORDER BY is_primary DESC, display_order ASC
	`, pq.Array(itemIDs))
	if err != nil {
		return nil, fmt.Errorf("item repository batch images: %w", err)
	}

	for _, img := range images {
		result[img.ItemID] = append(result[img.ItemID], img)
	}
	return result, nil
}

// GetTags returns an item's tags
func (r *Repository) GetTags(ctx context.Context, itemID uuid.UUID) ([]string, error) {
	tags := []string{}
	err := r.db.SelectContext(ctx, &tags, `
		SELECT tag FROM item_tags WHERE item_id = $1 ORDER BY tag
	`, itemID)
	if err != nil {
		return nil, fmt.Errorf("item repository get tags: %w", err)
	}
	return tags, nil
}

type taggedRow struct {
	ItemID uuid.UUID `db:"item_id"`
	Tag    string    `db:"tag"`
}

// GetTagsForItems batch loads tags for a catalog page
func (r *Repository) GetTagsForItems(ctx context.Context, itemIDs []uuid.UUID) (map[uuid.UUID][]string, error) {
	result := make(map[uuid.UUID][]string, len(itemIDs))
	if len(itemIDs) == 0 {
		return result, nil
	}

	rows := []taggedRow{}
	err := r.db.SelectContext(ctx, &rows, `
		SELECT item_id, tag FROM item_tags WHERE item_id = ANY($1) ORDER BY tag
	`, pq.Array(itemIDs))
	if err != nil {
		return nil, fmt.Errorf("item repository batch tags: %w", err)
	}

	for _, row := range rows {
		result[row.ItemID] = append(result[row.ItemID], row.Tag)
	}
	return result, nil
}

// Update rewrites the item's editable fields
func (r *Repository) Update(ctx context.Context, it *Item) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE clothing_items
		SET title = $1, description = $2, point_value = $3, is_available = $4, updated_at = now()
		WHERE id = $5
	`, it.Title, it.Description, it.PointValue, it.IsAvailable, it.ID)
	if err != nil {
		return fmt.Errorf("item repository update: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateApprovalTx sets the moderation outcome inside a settlement transaction
func (r *Repository) UpdateApprovalTx(ctx context.Context, tx *sqlx.Tx, itemID uuid.UUID, status ApprovalStatus, reason *string) error {
	_, err := tx.ExecContext(ctx, `
		UPDATE clothing_items
		SET approval_status = $1, rejection_reason = $2, updated_at = now()
		WHERE id = $3
	`, string(status), reason, itemID)
	if err != nil {
		return fmt.Errorf("item repository update approval: %w", err)
	}
	return nil
}

// UpdatePointValueTx overrides the point value during moderation
func (r *Repository) UpdatePointValueTx(ctx context.Context, tx *sqlx.Tx, itemID uuid.UUID, pointValue int) error {
	_, err := tx.ExecContext(ctx, `
		UPDATE clothing_items SET point_value = $1, updated_at = now() WHERE id = $2
	`, pointValue, itemID)
	if err != nil {
		return fmt.Errorf("item repository update point value: %w", err)
	}
	return nil
}

// MarkUnavailableTx flips is_available off inside a settlement transaction
func (r *Repository) MarkUnavailableTx(ctx context.Context, tx *sqlx.Tx, itemID uuid.UUID) error {
	_, err := tx.ExecContext(ctx, `
		UPDATE clothing_items SET is_available = FALSE, updated_at = now() WHERE id = $1
	`, itemID)
	if err != nil {
		return fmt.Errorf("item repository mark unavailable: %w", err)
	}
	return nil
}

// Delete removes the item; images and tags cascade
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM clothing_items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("item repository delete: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return ErrNotFound
	}
	return nil
}

// ListCategories returns active categories ordered by name
func (r *Repository) ListCategories(ctx context.Context) ([]Category, error) {
	categories := []Category{}
	err := r.db.SelectContext(ctx, &categories, `
		SELECT id, name, COALESCE(description, '') AS description, is_active, created_at
		FROM categories WHERE is_active = TRUE ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("item repository list categories: %w", err)
	}
	return categories, nil
}

// GetCategory returns a category by ID
func (r *Repository) GetCategory(ctx context.Context, id uuid.UUID) (*Category, error) {
	var c Category
	err := r.db.GetContext(ctx, &c, `
		SELECT id, name, COALESCE(description, '') AS description, is_active, created_at FROM categories WHERE id = $1
	`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCategoryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("item repository get category: %w", err)
	}
	return &c, nil
}
