package repositories

import (
	"errors"
	"fmt"
)

var (
	// The store could not be reached or rejected the operation. Retryable
	ErrStorageUnavailable = errors.New("storage unavailable")
	// A stored document does not have the shape of the entity
	ErrSerialization = errors.New("serialization error")
)

func storageError(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrStorageUnavailable, op, err)
}

func serializationError(err error) error {
	return fmt.Errorf("%w: %w", ErrSerialization, err)
}
