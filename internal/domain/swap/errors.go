package swap

import "errors"

var (
	ErrNotFound           = errors.New("swap request not found")
	ErrItemNotFound       = errors.New("item not found")
	ErrItemUnavailable    = errors.New("item is not available")
	ErrOwnItem            = errors.New("you cannot request your own item")
	ErrDuplicateRequest   = errors.New("you already have a pending request for this item")
	ErrOfferedNotFound    = errors.New("offered item not found")
	ErrOfferedNotOwned    = errors.New("you can only offer your own items")
	ErrOfferedUnavailable = errors.New("offered item is not available")
	ErrNotItemOwner       = errors.New("only the item owner can respond")
	ErrAlreadyResolved    = errors.New("swap request has already been resolved")
)
