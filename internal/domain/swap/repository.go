package swap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const requestColumns = `
	s.id, s.requester_id, s.item_id, s.offered_item_id, s.message, s.status,
	s.response_message, s.created_at, s.updated_at,
	req.name AS requester_name,
	i.title AS item_title, i.point_value AS item_point_value,
	i.uploader_id AS owner_id, own.name AS owner_name
`

const requestJoins = `
	FROM swap_requests s
	JOIN users req ON req.id = s.requester_id
	JOIN clothing_items i ON i.id = s.item_id
	JOIN users own ON own.id = i.uploader_id
`

// Repository handles swap request persistence
type Repository struct {
	db *sqlx.DB
}

// NewRepository creates new swap repository
func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

// BeginTx starts a settlement transaction
func (r *Repository) BeginTx(ctx context.Context) (*sqlx.Tx, error) {
	return r.db.BeginTxx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
}

// Create inserts a new pending request
func (r *Repository) Create(ctx context.Context, req *Request) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO swap_requests (id, requester_id, item_id, offered_item_id, message, status)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, req.ID, req.RequesterID, req.ItemID, req.OfferedItemID, req.Message, string(req.Status))
	if err != nil {
		return fmt.Errorf("swap repository create: %w", err)
	}
	return nil
}

// CreateTx inserts a request row inside a settlement transaction
func (r *Repository) CreateTx(ctx context.Context, tx *sqlx.Tx, req *Request) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO swap_requests (id, requester_id, item_id, offered_item_id, message, status)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, req.ID, req.RequesterID, req.ItemID, req.OfferedItemID, req.Message, string(req.Status))
	if err != nil {
		return fmt.Errorf("swap repository create tx: %w", err)
	}
	return nil
}

// GetByID returns a request with participants and item joined
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*Request, error) {
	var req Request
	err := r.db.GetContext(ctx, &req, `SELECT `+requestColumns+requestJoins+` WHERE s.id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("swap repository get by id: %w", err)
	}
	return &req, nil
}

// GetForUpdateTx locks the request row for a settlement decision
func (r *Repository) GetForUpdateTx(ctx context.Context, tx *sqlx.Tx, id uuid.UUID) (*Request, error) {
	var req Request
	err := tx.GetContext(ctx, &req, `
		SELECT id, requester_id, item_id, offered_item_id, message, status,
			response_message, created_at, updated_at
		FROM swap_requests WHERE id = $1 FOR UPDATE
	`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("swap repository get for update: %w", err)
	}
	return &req, nil
}

// HasPendingRequest reports whether the requester already has a pending
// request for the item
func (r *Repository) HasPendingRequest(ctx context.Context, requesterID, itemID uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, `
		SELECT EXISTS (
			SELECT 1 FROM swap_requests
			WHERE requester_id = $1 AND item_id = $2 AND status = 'pending'
		)
	`, requesterID, itemID)
	if err != nil {
		return false, fmt.Errorf("swap repository pending check: %w", err)
	}
	return exists, nil
}

// UpdateStatusTx resolves a request inside a settlement transaction
func (r *Repository) UpdateStatusTx(ctx context.Context, tx *sqlx.Tx, id uuid.UUID, status Status, responseMessage *string) error {
	_, err := tx.ExecContext(ctx, `
		UPDATE swap_requests
		SET status = $1, response_message = $2, updated_at = now()
		WHERE id = $3
	`, string(status), responseMessage, id)
	if err != nil {
		return fmt.Errorf("swap repository update status: %w", err)
	}
	return nil
}

// DeclineOtherPendingTx declines every other pending request on an item
// after one of them is accepted or the item is redeemed
func (r *Repository) DeclineOtherPendingTx(ctx context.Context, tx *sqlx.Tx, itemID, exceptID uuid.UUID, reason string) error {
	_, err := tx.ExecContext(ctx, `
		UPDATE swap_requests
		SET status = 'declined', response_message = $1, updated_at = now()
		WHERE item_id = $2 AND id <> $3 AND status = 'pending'
	`, reason, itemID, exceptID)
	if err != nil {
		return fmt.Errorf("swap repository decline others: %w", err)
	}
	return nil
}

// ListByUser returns requests the user sent or received
func (r *Repository) ListByUser(ctx context.Context, userID uuid.UUID, direction, status string, limit, offset int) ([]Request, int, error) {
	where := ""
	switch direction {
	case "received":
		where = " WHERE i.uploader_id = $1"
	default:
		where = " WHERE s.requester_id = $1"
	}

	args := []interface{}{userID}
	if status != "" {
		args = append(args, status)
		where += fmt.Sprintf(" AND s.status = $%d", len(args))
	}

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*)`+requestJoins+where, args...); err != nil {
		return nil, 0, fmt.Errorf("swap repository count: %w", err)
	}

	args = append(args, limit, offset)
	query := `SELECT ` + requestColumns + requestJoins + where +
		fmt.Sprintf(` ORDER BY s.created_at DESC LIMIT $%d OFFSET $%d`, len(args)-1, len(args))

	requests := []Request{}
	if err := r.db.SelectContext(ctx, &requests, query, args...); err != nil {
		return nil, 0, fmt.Errorf("swap repository list: %w", err)
	}

	return requests, total, nil
}
