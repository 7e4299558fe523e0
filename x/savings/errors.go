package savings

import (
	"github.com/iov-one/custody/errors"
)

// x/savings reserves 1020~1029.
var (
	ErrNotMember           = errors.Register(1020, "not a pool member")
	ErrIntervalNotElapsed  = errors.Register(1021, "payout interval not elapsed")
	ErrInsufficientBalance = errors.Register(1022, "insufficient pool balance")
)
