package services

import (
	"errors"
	"fmt"
	"log"

	"github.com/arpityadav8303/gigflow-Arpit-Yadav/internal/storage"
)

// mapRepoError maps storage errors to service errors
func mapRepoError(err error, operation string) error {
	if errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("%w: %s", ErrNotFound, operation)
	}
	if errors.Is(err, storage.ErrDuplicateEmail) {
		return fmt.Errorf("%w: %s", ErrDuplicateUser, operation)
	}
	if errors.Is(err, storage.ErrConflict) {
		return fmt.Errorf("%w: %s (%v)", ErrConflict, operation, err)
	}
	// Log other unexpected errors
	log.Printf("Unexpected repository error during %s: %v", operation, err)
	return fmt.Errorf("internal error during %s: %w", operation, err)
}

// mapFetchError is mapRepoError with a resource-specific not-found sentinel
// (ErrGigNotFound, ErrBidNotFound), so handlers can name the missing resource
// when an operation loads more than one.
func mapFetchError(err error, notFound error, operation string) error {
	if errors.Is(err, storage.ErrNotFound) {
		return notFound
	}
	return mapRepoError(err, operation)
}
