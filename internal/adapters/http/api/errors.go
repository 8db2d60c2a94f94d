package api

import (
	"errors"
	"fmt"
	"net/http"

	service "github.com/okian/habitat/internal/app"
	"github.com/okian/habitat/internal/domain/catalog"
	"github.com/okian/habitat/internal/domain/ranking"
)

// Sentinel kinds for API errors.
var (
	ErrBadRequest = errors.New("bad request")
)

// NewKind returns an error of the given kind raised by op.
func NewKind(op string, kind error) error {
	return fmt.Errorf("%s: %w", op, kind)
}

// WrapKind attaches a kind and the op name to a lower level cause.
func WrapKind(op string, kind, err error) error {
	return fmt.Errorf("%s: %w: %w", op, kind, err)
}

// Wrap prefixes err with op, keeping it matchable with errors.Is.
func Wrap(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}

// statusFor maps an error kind to its HTTP status and response code.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, catalog.ErrNotFound), errors.Is(err, ranking.ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, service.ErrBatchTooLarge):
		return http.StatusRequestEntityTooLarge, "batch_too_large"
	case errors.Is(err, ErrBadRequest),
		errors.Is(err, service.ErrEmptyBatch),
		errors.Is(err, catalog.ErrInvalidFilter),
		errors.Is(err, ranking.ErrInvalidLimit):
		return http.StatusBadRequest, "bad_request"
	case errors.Is(err, service.ErrNotStarted):
		return http.StatusServiceUnavailable, "not_ready"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}
