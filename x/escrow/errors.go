package escrow

import (
	"github.com/iov-one/custody/errors"
)

// x/escrow reserves 1010~1019.
var (
	// ErrAlreadyReleased is returned when funds of an escrow were already
	// released or refunded.
	ErrAlreadyReleased = errors.Register(1010, "escrow already released")
	// ErrDeadlineNotReached is returned on a release before the deadline.
	ErrDeadlineNotReached = errors.Register(1011, "deadline not reached")
	// ErrDeadlineNotPassed is returned on a refund at or before the deadline.
	ErrDeadlineNotPassed = errors.Register(1012, "deadline not passed")
)
