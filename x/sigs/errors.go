package sigs

import (
	"github.com/iov-one/custody/errors"
)

// x/sigs reserves 120~129.
var (
	// ErrInvalidSequence is returned when a signature nonce does not match
	// the expected, stored value.
	ErrInvalidSequence = errors.Register(120, "invalid sequence number")
)
