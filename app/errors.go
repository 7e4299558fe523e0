package app

import "github.com/iov-one/custody/errors"

// ErrNoSuchPath is returned for a message no handler is registered for, and
// for a query path no query handler is registered for.
var ErrNoSuchPath = errors.Register(1001, "no such path")
