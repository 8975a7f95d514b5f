package services

import (
	"errors"
	"fmt"
)

// Define common service errors
var (
	ErrNotFound           = errors.New("resource not found")
	ErrForbidden          = errors.New("forbidden")
	ErrConflict           = errors.New("conflict") // e.g., duplicate bid, state conflict
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Conflict variants the hire and bid flows hand to the API layer. Losing a
// hire race is expected behavior, not a server fault, and callers get told
// exactly which precondition stopped holding.
var (
	ErrGigNotOpen    = fmt.Errorf("%w: this gig is no longer open - someone hired first", ErrConflict)
	ErrBidNotPending = fmt.Errorf("%w: this bid is no longer pending", ErrConflict)
	ErrDuplicateBid  = fmt.Errorf("%w: you have already bid on this gig", ErrConflict)
	ErrDuplicateUser = fmt.Errorf("%w: email already registered", ErrConflict)
)

// Not-found variants so the API layer can name the missing resource. The
// hire flow fetches both a bid and a gig; a 404 should say which one is gone.
var (
	ErrGigNotFound = fmt.Errorf("%w: gig does not exist", ErrNotFound)
	ErrBidNotFound = fmt.Errorf("%w: bid does not exist", ErrNotFound)
)

// ErrSelfBid rejects a gig owner bidding on their own gig.
var ErrSelfBid = errors.New("cannot bid on your own gig")
