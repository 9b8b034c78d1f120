package store

import (
	"errors"
	"fmt"
)

// Sentinel errors shared by every store implementation. Entity-specific
// errors wrap ErrNotFound or ErrDuplicate so callers can match either.
var (
	// ErrNotFound is returned when a requested entity does not exist in the store.
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicate is returned when an operation would create a duplicate
	// of a unique entity.
	ErrDuplicate = errors.New("entity already exists")

	// ErrInvalidEntity is returned when an entity fails validation before
	// being stored. Check the wrapped error for specific validation details.
	ErrInvalidEntity = errors.New("invalid entity")

	// ErrTransactionFailed is returned when a database transaction fails
	// to commit or when an operation within a transaction fails.
	ErrTransactionFailed = errors.New("transaction failed")

	// ErrPreferencesNotFound indicates that the user never saved preferences.
	ErrPreferencesNotFound = fmt.Errorf("%w: strategy preferences", ErrNotFound)

	// ErrEmotionEventExists indicates an emotion event with the same ID exists.
	ErrEmotionEventExists = fmt.Errorf("%w: emotion event", ErrDuplicate)

	// ErrJournalEntryExists indicates a journal entry with the same ID exists.
	ErrJournalEntryExists = fmt.Errorf("%w: journal entry", ErrDuplicate)

	// ErrFeedbackExists indicates a feedback record with the same ID exists.
	ErrFeedbackExists = fmt.Errorf("%w: strategy feedback", ErrDuplicate)
)
