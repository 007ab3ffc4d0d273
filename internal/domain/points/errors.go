package points

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidAmount = errors.New("invalid points amount")
	ErrUserNotFound  = errors.New("user not found")
)

// InsufficientPointsError reports how many points were needed versus held.
type InsufficientPointsError struct {
	Required  int
	Available int
}

func (e *InsufficientPointsError) Error() string {
	return fmt.Sprintf("Insufficient points. Required: %d, Available: %d", e.Required, e.Available)
}

// IsInsufficientPoints reports whether err is an insufficient points failure
func IsInsufficientPoints(err error) bool {
	var target *InsufficientPointsError
	return errors.As(err, &target)
}
