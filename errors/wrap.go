package errors

import (
	"fmt"

	"github.com/pkg/errors"
)

// Wrap adds desc to err. The innermost wrap records a stack trace. A nil
// err gives nil, so Wrap can guard a final return.
func Wrap(err error, desc string) error {
	if err == nil {
		return nil
	}
	if stackTrace(err) == nil {
		err = errors.WithStack(err)
	}
	return &wrappedError{msg: desc, parent: err}
}

func Wrapf(err error, format string, args ...interface{}) error {
	return Wrap(err, fmt.Sprintf(format, args...))
}

// WithType wraps err with the type name of obj.
func WithType(err error, obj interface{}) error {
	return Wrap(err, fmt.Sprintf("%T", obj))
}

// Recover turns a panic into ErrPanic. Use it deferred, with the address
// of a named error result.
func Recover(err *error) {
	if r := recover(); r != nil {
		*err = Wrapf(ErrPanic, "%v", r)
	}
}

type wrappedError struct {
	msg    string
	parent error
}

func (e *wrappedError) Error() string {
	return e.msg + ": " + e.parent.Error()
}

func (e *wrappedError) Cause() error {
	return e.parent
}

// Format prints the stack trace with %+v and the origin frame with %v.
func (e *wrappedError) Format(s fmt.State, verb rune) {
	st := stackTrace(e.parent)
	switch {
	case verb == 'v' && s.Flag('+'):
		fmt.Fprintln(s, e.Error())
		if st != nil {
			fmt.Fprintf(s, "%+v", st.StackTrace())
		}
	case verb == 'v':
		fmt.Fprint(s, e.Error())
		if st != nil && len(st.StackTrace()) > 0 {
			fmt.Fprintf(s, " [%v]", st.StackTrace()[0])
		}
	default:
		fmt.Fprint(s, e.Error())
	}
}

type causer interface {
	Cause() error
}

type unpacker interface {
	Unpack() []error
}

type stackTracer interface {
	error
	StackTrace() errors.StackTrace
}

// stackTrace returns the outermost stack trace in the cause chain.
func stackTrace(err error) stackTracer {
	for err != nil {
		if st, ok := err.(stackTracer); ok {
			return st
		}
		c, ok := err.(causer)
		if !ok {
			return nil
		}
		err = c.Cause()
	}
	return nil
}
