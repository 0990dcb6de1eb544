package pool

import (
	"errors"
	"fmt"
)

// ErrPoolNotFound matches any *NotFoundError via errors.Is.
var ErrPoolNotFound = errors.New("pool not found")

// NotFoundError reports a category whose pool definition is missing or unreadable.
type NotFoundError struct {
	Category Category
	Path     string
	Err      error
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("pool %s not found at %s: %v", e.Category, e.Path, e.Err)
}

func (e *NotFoundError) Unwrap() error { return e.Err }

func (e *NotFoundError) Is(target error) bool { return target == ErrPoolNotFound }
