package domain

import "errors"

var (
	// ErrMalformedEvent is returned when an event cannot be folded into the ledger as delivered.
	// The event must be rejected, never retried.
	ErrMalformedEvent = errors.New("malformed event")

	// ErrStoreUnavailable wraps infrastructure failures of the entity store. Retrying the whole event is safe.
	ErrStoreUnavailable = errors.New("store unavailable")

	// ErrStoreRejected is returned when the store refuses the data itself. Retrying cannot succeed.
	ErrStoreRejected = errors.New("store rejected data")

	// ErrDuplicateTransfer is returned when a transfer record with the same key was already appended
	ErrDuplicateTransfer = errors.New("duplicate transfer")

	// ErrUnsupportedStandard is returned for a standard outside the closed set
	ErrUnsupportedStandard = errors.New("unsupported standard")
)
