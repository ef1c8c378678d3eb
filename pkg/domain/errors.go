package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidSeverity  = errors.New("invalid severity, must be 'low', 'medium' or 'high'")
	ErrNoActiveBan      = errors.New("no active ban for user in channel")
	ErrConflictRetry    = errors.New("concurrent update conflict")
	ErrStoreUnavailable = errors.New("store unavailable")
)

type notFoundError struct {
	EntityType string
	Key        string
}

func (e *notFoundError) Error() string {
	return fmt.Sprintf("%s '%s' not found", e.EntityType, e.Key)
}

func NewNotFoundError(entityType string, key string) error {
	return &notFoundError{
		EntityType: entityType,
		Key:        key,
	}
}

func IsNotFoundError(err error) bool {
	if err == nil {
		return false
	}
	var notFoundError *notFoundError
	ok := errors.As(err, &notFoundError)
	return ok
}
