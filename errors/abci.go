package errors

import (
	"fmt"
	"reflect"
)

// SuccessABCICode is the code of a result without error.
const SuccessABCICode = 0

// internalABCILog replaces the message of internal errors outside of debug
// mode.
const internalABCILog = "internal error"

// ABCIInfo returns the code and log of an ABCI response for err. An error
// not rooted in a registered one gets code 1. Unless debug is set, the
// message of such an error or of a recovered panic is hidden. Debug mode
// logs the stack trace too.
func ABCIInfo(err error, debug bool) (uint32, string) {
	if errIsNil(err) {
		return SuccessABCICode, ""
	}
	code := abciCode(err)
	switch {
	case debug:
		return code, fmt.Sprintf("%+v", err)
	case code == internalABCICode || ErrPanic.Is(err):
		return code, internalABCILog
	default:
		return code, err.Error()
	}
}

// ABCIError rebuilds an error from an ABCI response. A registered code
// gives an error that its root's Is matches. An unknown code is internal.
func ABCIError(code uint32, log string) error {
	if code == SuccessABCICode {
		return nil
	}
	if root, ok := registry[code]; ok {
		return Wrap(root, log)
	}
	return Wrapf(registry[internalABCICode], "%d: %s", code, log)
}

// abciCode returns the code of the first error in the cause chain that
// carries one.
func abciCode(err error) uint32 {
	type coder interface {
		ABCICode() uint32
	}
	for !errIsNil(err) {
		if c, ok := err.(coder); ok {
			return c.ABCICode()
		}
		c, ok := err.(causer)
		if !ok {
			break
		}
		err = c.Cause()
	}
	return internalABCICode
}

// errIsNil also catches a nil pointer stored in the error interface.
func errIsNil(err error) bool {
	if err == nil {
		return true
	}
	v := reflect.ValueOf(err)
	return v.Kind() == reflect.Ptr && v.IsNil()
}
