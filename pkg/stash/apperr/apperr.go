// Package apperr defines the error kinds shared by the stash managers.
// Handlers translate these into HTTP statuses; manager code wraps them
// with context via fmt.Errorf and %w.
package apperr

import (
	"errors"
	"net/http"
)

var (
	// ErrNotFound covers entities that do not exist, are owned by someone
	// else, or are soft-deleted. The three cases are deliberately
	// indistinguishable to callers.
	ErrNotFound = errors.New("not found")

	// ErrInvalidReference is a referenced tag, category or parent candidate
	// that does not resolve under the caller's ownership.
	ErrInvalidReference = errors.New("invalid reference")

	// ErrInvalidRelation is a self-parenting or cycle-forming assignment.
	ErrInvalidRelation = errors.New("invalid relation")

	// ErrConflict is a uniqueness violation (duplicate tag name, username)
	// or an operation blocked by dependent rows.
	ErrConflict = errors.New("conflict")
)

// HTTPStatus maps an error to the status code it should surface as.
// Unrecognized errors map to 500.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidReference), errors.Is(err, ErrInvalidRelation):
		return http.StatusBadRequest
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
