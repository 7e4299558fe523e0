package errors

import "fmt"

// Root errors. Codes below 100 belong to this package, extensions register
// their own above that.
var (
	ErrUnauthorized       = Register(2, "unauthorized")
	ErrNotFound           = Register(3, "not found")
	ErrInvalidMsg         = Register(4, "invalid message")
	ErrInvalidModel       = Register(5, "invalid model")
	ErrDuplicate          = Register(6, "duplicate")
	ErrHuman              = Register(7, "coding error")
	ErrEmpty              = Register(9, "value is empty")
	ErrInvalidState       = Register(10, "invalid state")
	ErrInvalidType        = Register(11, "invalid type")
	ErrInsufficientAmount = Register(12, "insufficient amount")
	ErrInvalidAmount      = Register(13, "invalid amount")
	ErrInvalidInput       = Register(14, "invalid input")
	ErrOverflow           = Register(16, "an operation cannot be completed due to value overflow")
	ErrCurrency           = Register(17, "currency")
	ErrDatabase           = Register(18, "database")
	ErrTransferFailed     = Register(19, "transfer failed")
	ErrIteratorDone       = Register(20, "iterator done")

	// ErrPanic marks a recovered panic. Its message may hold system
	// details and is never sent to a client.
	ErrPanic = Register(111222, "panic")
)

// internalABCICode is reported for every error not rooted in a registered
// one.
const internalABCICode uint32 = 1

var registry = map[uint32]*Error{
	internalABCICode: {code: internalABCICode, desc: "internal"},
}

// Register declares a root error. It panics when code is taken, so call
// it from package level variable declarations only.
func Register(code uint32, desc string) *Error {
	if prev, ok := registry[code]; ok {
		panic(fmt.Sprintf("error with code %d is already registered: %q", code, prev.desc))
	}
	e := &Error{code: code, desc: desc}
	registry[code] = e
	return e
}

// Error is a root error. Errors returned at runtime wrap one of them, so
// that a client gets a stable code for the category.
type Error struct {
	code uint32
	desc string
}

func (e Error) Error() string {
	return e.desc
}

func (e Error) ABCICode() uint32 {
	return e.code
}

// New is Wrap(e, desc).
func (e *Error) New(desc string) error {
	return Wrap(e, desc)
}

func (e *Error) Newf(format string, args ...interface{}) error {
	return Wrap(e, fmt.Sprintf(format, args...))
}

// Is reports whether err is rooted in e. The cause chain is followed and
// every member of an Append result is tried. A nil *Error matches only a
// nil error.
func (e *Error) Is(err error) bool {
	if e == nil {
		return errIsNil(err)
	}
	for err != nil {
		if err == e {
			return true
		}
		if group, ok := err.(unpacker); ok {
			for _, member := range group.Unpack() {
				if e.Is(member) {
					return true
				}
			}
		}
		c, ok := err.(causer)
		if !ok {
			return false
		}
		err = c.Cause()
	}
	return false
}
