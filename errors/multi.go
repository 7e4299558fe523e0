package errors

import (
	"strings"
)

// Append combines given errors into a single error instance. Nil values are
// ignored. The result is nil if there is no error to keep.
//
// Is called on the result returns true if any of the combined errors match.
func Append(errs ...error) error {
	var res multiErr
	for _, err := range errs {
		if errIsNil(err) {
			continue
		}
		if m, ok := err.(multiErr); ok {
			res = append(res, m...)
		} else {
			res = append(res, err)
		}
	}
	switch len(res) {
	case 0:
		return nil
	case 1:
		return res[0]
	default:
		return res
	}
}

type multiErr []error

func (m multiErr) Error() string {
	msgs := make([]string, len(m))
	for i, e := range m {
		msgs[i] = e.Error()
	}
	return strings.Join(msgs, "; ")
}

func (m multiErr) Unpack() []error {
	return m
}
