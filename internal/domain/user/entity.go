package user

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// User represents a member account
type User struct {
	ID           uuid.UUID      `db:"id"`
	Name         string         `db:"name"`
	Email        string         `db:"email"`
	PasswordHash string         `db:"password_hash"`
	Points       int            `db:"points"`
	Avatar       sql.NullString `db:"avatar"`
	IsAdmin      bool           `db:"is_admin"`
	IsActive     bool           `db:"is_active"`
	CreatedAt    time.Time      `db:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at"`
}

// Profile is the public JSON shape of a user
type Profile struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Points    int       `json:"points"`
	Avatar    string    `json:"avatar,omitempty"`
	IsAdmin   bool      `json:"is_admin"`
	CreatedAt time.Time `json:"created_at"`
}

// ToProfile converts a user to its public shape
func (u *User) ToProfile() Profile {
	return Profile{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Points:    u.Points,
		Avatar:    u.Avatar.String,
		IsAdmin:   u.IsAdmin,
		CreatedAt: u.CreatedAt,
	}
}
