package user

import "errors"

var (
	ErrNotFound       = errors.New("user not found")
	ErrEmailTaken     = errors.New("user with this email already exists")
	ErrDeactivated    = errors.New("account deactivated")
	ErrWrongPassword  = errors.New("current password is incorrect")
	ErrBadCredentials = errors.New("invalid email or password")
)
