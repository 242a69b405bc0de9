package timelock

import "github.com/iov-one/custody/errors"

var (
	// ErrInvalidSchedule is returned when a vault would be created with a
	// release time that is not in the future, or when a relock exceeds the
	// configured maximum extension.
	ErrInvalidSchedule = errors.Register(1010, "invalid schedule")

	// ErrScheduleRegression is returned when a relock does not postpone the
	// release time.
	ErrScheduleRegression = errors.Register(1011, "schedule regression")

	ErrNotYetReleasable = errors.Register(1012, "not yet releasable")
	ErrNothingToRelease = errors.Register(1013, "nothing to release")

	// ErrTransferFailed is returned when the ledger did not complete a
	// release transfer. Vault state is unchanged and the release can be
	// retried.
	ErrTransferFailed = errors.Register(1014, "transfer failed")
)
