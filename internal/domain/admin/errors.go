package admin

import "errors"

var (
	ErrAlreadyModerated = errors.New("item has already been moderated")
	ErrSelfDeactivation = errors.New("you cannot deactivate your own account")
	ErrUserNotFound     = errors.New("user not found")
)
