package database

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

// Bootstrap creates the schema if it does not exist and seeds the default
// categories. Statements are idempotent so startup is safe to repeat.
func Bootstrap(ctx context.Context, db *sqlx.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	log.Info().Msg("Database schema ready")
	return nil
}

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		email VARCHAR(255) UNIQUE NOT NULL,
		password_hash VARCHAR(255) NOT NULL,
		points INT NOT NULL DEFAULT 0,
		avatar VARCHAR(500),
		is_admin BOOLEAN NOT NULL DEFAULT FALSE,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_users_email ON users (email)`,

	`CREATE TABLE IF NOT EXISTS categories (
		id UUID PRIMARY KEY,
		name VARCHAR(100) NOT NULL UNIQUE,
		description TEXT,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,

	`CREATE TABLE IF NOT EXISTS clothing_items (
		id UUID PRIMARY KEY,
		title VARCHAR(255) NOT NULL,
		description TEXT NOT NULL,
		category_id UUID REFERENCES categories(id) ON DELETE SET NULL,
		type VARCHAR(100) NOT NULL,
		size VARCHAR(10) NOT NULL
			CHECK (size IN ('XS', 'S', 'M', 'L', 'XL', 'XXL')),
		condition_type VARCHAR(20) NOT NULL
			CHECK (condition_type IN ('Like New', 'Good', 'Fair', 'Well-Worn')),
		point_value INT NOT NULL DEFAULT 100,
		uploader_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		is_available BOOLEAN NOT NULL DEFAULT TRUE,
		approval_status VARCHAR(10) NOT NULL DEFAULT 'pending'
			CHECK (approval_status IN ('pending', 'approved', 'rejected')),
		rejection_reason TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_items_uploader ON clothing_items (uploader_id)`,
	`CREATE INDEX IF NOT EXISTS idx_items_category ON clothing_items (category_id)`,
	`CREATE INDEX IF NOT EXISTS idx_items_status ON clothing_items (approval_status)`,
	`CREATE INDEX IF NOT EXISTS idx_items_available ON clothing_items (is_available)`,
	`CREATE INDEX IF NOT EXISTS idx_items_points ON clothing_items (point_value)`,

	`CREATE TABLE IF NOT EXISTS item_images (
		id UUID PRIMARY KEY,
		item_id UUID NOT NULL REFERENCES clothing_items(id) ON DELETE CASCADE,
		image_url VARCHAR(500) NOT NULL,
		thumbnail_url VARCHAR(500),
		is_primary BOOLEAN NOT NULL DEFAULT FALSE,
		display_order INT NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_images_item ON item_images (item_id)`,

	`CREATE TABLE IF NOT EXISTS item_tags (
		id UUID PRIMARY KEY,
		item_id UUID NOT NULL REFERENCES clothing_items(id) ON DELETE CASCADE,
		tag VARCHAR(50) NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		UNIQUE (item_id, tag)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_tags_item ON item_tags (item_id)`,

	`CREATE TABLE IF NOT EXISTS swap_requests (
		id UUID PRIMARY KEY,
		requester_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		item_id UUID NOT NULL REFERENCES clothing_items(id) ON DELETE CASCADE,
		offered_item_id UUID REFERENCES clothing_items(id) ON DELETE SET NULL,
		message TEXT,
		status VARCHAR(10) NOT NULL DEFAULT 'pending'
			CHECK (status IN ('pending', 'accepted', 'declined', 'completed', 'cancelled')),
		response_message TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_swaps_requester ON swap_requests (requester_id)`,
	`CREATE INDEX IF NOT EXISTS idx_swaps_item ON swap_requests (item_id)`,
	`CREATE INDEX IF NOT EXISTS idx_swaps_status ON swap_requests (status)`,

	`CREATE TABLE IF NOT EXISTS point_transactions (
		id UUID PRIMARY KEY,
		user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		item_id UUID REFERENCES clothing_items(id) ON DELETE SET NULL,
		transaction_type VARCHAR(10) NOT NULL
			CHECK (transaction_type IN ('earned', 'spent', 'bonus', 'penalty')),
		points INT NOT NULL,
		description VARCHAR(255),
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_transactions_user ON point_transactions (user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_transactions_type ON point_transactions (transaction_type)`,

	`CREATE TABLE IF NOT EXISTS user_favorites (
		id UUID PRIMARY KEY,
		user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		item_id UUID NOT NULL REFERENCES clothing_items(id) ON DELETE CASCADE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		UNIQUE (user_id, item_id)
	)`,

	`INSERT INTO categories (id, name, description) VALUES
		(gen_random_uuid(), 'Outerwear', 'Jackets, coats, and outer garments'),
		(gen_random_uuid(), 'Tops', 'T-shirts, blouses, and upper body clothing'),
		(gen_random_uuid(), 'Bottoms', 'Pants, jeans, shorts, and skirts'),
		(gen_random_uuid(), 'Dresses', 'Dresses and one-piece garments'),
		(gen_random_uuid(), 'Shoes', 'Footwear of all types'),
		(gen_random_uuid(), 'Accessories', 'Bags, jewelry, and fashion accessories')
	ON CONFLICT (name) DO NOTHING`,
}
