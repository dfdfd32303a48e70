// Package ownership enforces that a caller may only read or mutate records it
// created. Every owned resource package routes its by-id operations through a
// Guard so the check cannot drift between handlers.
package ownership

import (
	"context"
	"errors"

	"github.com/deepakjoshi9239/finance-tracker/internal/apperror"
)

var (
	// ErrNotFound is returned by repositories when no record matches the id.
	ErrNotFound = errors.New("resource not found")

	// ErrForbidden means the record exists but belongs to another identity.
	ErrForbidden = errors.New("unauthorized access")
)

// Loader fetches a single record by id.
type Loader[T any] func(ctx context.Context, id string) (T, error)

// Guard pairs a loader with the accessor for the record's owner field.
type Guard[T any] struct {
	Load  Loader[T]
	Owner func(T) string
}

// Authorize loads id and returns it only when callerID owns it. It must run
// before any mutation or data return on a single-record path.
func (g Guard[T]) Authorize(ctx context.Context, id, callerID string) (T, error) {
	var zero T
	rec, err := g.Load(ctx, id)
	if err != nil {
		return zero, err
	}
	if callerID == "" || g.Owner(rec) != callerID {
		return zero, ErrForbidden
	}
	return rec, nil
}

// AsAppError classifies a guarded operation's failure. resource names the
// record type in the not-found message; action describes the operation for
// unexpected failures, e.g. "Error updating budget".
func AsAppError(err error, resource, action string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrNotFound):
		return apperror.NotFound(resource + " not found")
	case errors.Is(err, ErrForbidden):
		return apperror.Authorization("Unauthorized access")
	}
	var appErr *apperror.Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return apperror.Unexpected(action, err)
}
