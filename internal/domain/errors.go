package domain

import (
	"errors"
	"fmt"
)

// Error taxonomy shared by repos, services and handlers.
// Callers match with errors.Is.
var (
	ErrNotFound          = errors.New("not found")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrInvalidOperation  = errors.New("invalid operation")
	ErrAccessDenied      = errors.New("access denied")

	// ErrAlreadyCancelled is a specialization of ErrInvalidOperation so a
	// second cancel is distinguishable from other illegal transitions.
	ErrAlreadyCancelled = fmt.Errorf("order already cancelled: %w", ErrInvalidOperation)
)
