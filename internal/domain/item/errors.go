package item

import "errors"

var (
	ErrNotFound         = errors.New("item not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrNotOwner         = errors.New("you do not own this item")
	ErrTooManyImages    = errors.New("too many images")
	ErrNoImages         = errors.New("at least one image is required")
	ErrNotEditable      = errors.New("item cannot be modified")
)
