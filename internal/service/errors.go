package service

import (
	"errors"
	"fmt"

	"github.com/d60-Lab/blog-engine/internal/repository"
)

var (
	// ErrNotFound covers both a missing resource and one the caller does not own.
	ErrNotFound           = errors.New("resource not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrFollowSelf         = errors.New("cannot follow self")
	ErrPostNotPublished   = errors.New("post is not published")
	ErrCollectionNotFound = errors.New("collection not found")
)

// IsNotFound reports whether err should surface as a missing resource.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, ErrCollectionNotFound)
}

// IsValidation reports whether err was caused by caller input.
func IsValidation(err error) bool {
	return errors.Is(err, ErrInvalidInput) ||
		errors.Is(err, ErrFollowSelf) ||
		errors.Is(err, ErrPostNotPublished)
}

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

// storeErr maps the adapter's not-found onto ErrNotFound and wraps anything else.
func storeErr(op string, err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}
