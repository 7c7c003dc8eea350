package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
)

// NotFoundError reports a single-item lookup that matched nothing.
// It satisfies errors.Is(err, ErrNotFound).
type NotFoundError struct {
	Kind string // destination|activity|event
	Slug string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with slug %q not found", e.Kind, e.Slug)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }
