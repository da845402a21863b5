package sequence

import "errors"

var (
	// ErrInvalidKind is returned when an unknown sequence kind is requested.
	ErrInvalidKind = errors.New("sequence: unknown sequence kind")

	// ErrOwnerRequired is returned when the owner ID is the zero UUID.
	ErrOwnerRequired = errors.New("sequence: owner ID is required")

	// ErrLockTimeout is returned when the per-owner counter lock could not be
	// acquired within the database's lock-wait timeout. The caller may retry
	// the whole creation with backoff.
	ErrLockTimeout = errors.New("sequence: timed out waiting for counter lock")

	// ErrUniquenessViolation is returned when committing the numbered document
	// hits the (owner, number) unique constraint. It only happens when a write
	// path bypassed the allocator; still surfaced as retryable, but logged as
	// a correctness warning upstream.
	ErrUniquenessViolation = errors.New("sequence: duplicate document number for owner")
)

// IsRetryable reports whether the caller may retry the creation that
// produced err. Any other allocation error is fatal to the single request.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrLockTimeout) || errors.Is(err, ErrUniquenessViolation)
}
