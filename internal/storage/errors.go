package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgconn"

	"gitlab.com/sprinkles/storefront/internal/metrics"
	"gitlab.com/sprinkles/storefront/internal/repository"
)

var (
	ErrValidation          = errors.New("validation failed")
	ErrConflict            = errors.New("conflict")
	ErrAuthentication      = errors.New("email or password is incorrect")
	ErrAuthorization       = errors.New("not authorized")
	ErrNotFound            = errors.New("not found")
	ErrStorageUnavailable  = errors.New("storage unavailable")
	ErrConstraintViolation = errors.New("constraint violation")
	ErrUnknownRole         = errors.New("unknown role")

	ErrInvalidTransition = fmt.Errorf("%w: invalid order transition", ErrConflict)
	ErrClaimLost         = fmt.Errorf("%w: order already claimed", ErrConflict)
)

// FormError carries the messages shown next to a re-rendered form. Kind is
// ErrValidation or ErrConflict.
type FormError struct {
	Kind     error
	Messages []string
}

func (e *FormError) Error() string {
	return e.Kind.Error() + ": " + strings.Join(e.Messages, "; ")
}

func (e *FormError) Unwrap() error {
	return e.Kind
}

func newValidationError(messages ...string) error {
	return &FormError{Kind: ErrValidation, Messages: messages}
}

func newConflictError(message string) error {
	return &FormError{Kind: ErrConflict, Messages: []string{message}}
}

func isDomainError(err error) bool {
	for _, kind := range []error{
		ErrValidation, ErrConflict, ErrAuthentication, ErrAuthorization,
		ErrNotFound, ErrStorageUnavailable, ErrConstraintViolation, ErrUnknownRole,
	} {
		if errors.Is(err, kind) {
			return true
		}
	}
	return false
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// classify maps a repository or driver error onto the error taxonomy.
// Errors that already belong to it are returned unchanged.
func classify(op string, err error) error {
	if err == nil || isDomainError(err) {
		return err
	}
	if errors.Is(err, repository.ErrObjectNotFound) {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}

	metrics.OperationErrorsTotal.WithLabelValues(op).Inc()

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && strings.HasPrefix(pgErr.Code, "23") {
		return fmt.Errorf("%s: %w: %w", op, ErrConstraintViolation, err)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%s: %w: query timed out: %w", op, ErrStorageUnavailable, err)
	}
	return fmt.Errorf("%s: %w: %w", op, ErrStorageUnavailable, err)
}
