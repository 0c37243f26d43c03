package service

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

var (
	// ErrInvalidInput marks input rejected before any store access.
	ErrInvalidInput = errors.New("invalid input")

	// ErrConstraint marks a unique or foreign-key violation reported by the store.
	ErrConstraint = errors.New("constraint violation")
)

func invalid(msg string) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, msg)
}

// storeErr wraps a store error with op context, tagging constraint violations.
func storeErr(op string, err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) || errors.Is(err, gorm.ErrForeignKeyViolated) {
		return fmt.Errorf("%s: %w: %w", op, ErrConstraint, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// notFoundAsNil turns a missing row into a nil result without error.
func notFoundAsNil[T any](row *T, err error, op string) (*T, error) {
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, storeErr(op, err)
	}
	return row, nil
}
