package services

import (
	"context"
	"errors"

	apperrors "contas/internal/errors"
)

// wrapStoreError maps a raw database error to the service error taxonomy.
// Timeouts and cancellations surface as STORE_UNAVAILABLE so callers can
// retry with fresh state; everything else is an internal error.
func wrapStoreError(err error) *apperrors.AppError {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return apperrors.Wrap(apperrors.ErrStoreUnavailable, err)
	}
	return apperrors.Wrap(apperrors.ErrInternalServer, err)
}
