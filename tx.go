package custody

import (
	"reflect"

	"github.com/iov-one/custody/errors"
)

// Marshaller can serialize itself. Marshal may validate first.
type Marshaller interface {
	Marshal() ([]byte, error)
}

// Persistent is a Marshaller that can also be loaded back, which mostly
// takes a pointer receiver.
type Persistent interface {
	Marshaller
	Unmarshal([]byte) error
}

// Msg is a request for one state transition. It carries no
// authentication, that lives in the Tx around it.
type Msg interface {
	Persistent

	// Path routes the message to its handler, for example
	// "escrow/create". It matches [0-9A-Za-z_\-/]+.
	Path() string

	// Validate checks the message on its own, without state.
	Validate() error
}

// Tx is what a client submits: one message plus whatever the decorators
// need, such as signatures.
type Tx interface {
	Persistent
	GetMsg() (Msg, error)
}

// TxDecoder parses a transaction from its wire form.
type TxDecoder func(raw []byte) (Tx, error)

// GetPath returns the message path of tx, "(missing)" when there is no
// message.
func GetPath(tx Tx) string {
	if msg, err := tx.GetMsg(); err == nil && msg != nil {
		return msg.Path()
	}
	return "(missing)"
}

// LoadMsg copies the message of tx into dest and validates it. dest must
// be a pointer to the message type.
func LoadMsg(tx Tx, dest interface{}) error {
	msg, err := tx.GetMsg()
	if err != nil {
		return errors.Wrap(err, "cannot get transaction message")
	}
	if msg == nil {
		return errors.Wrap(errors.ErrEmpty, "no message")
	}

	dst := reflect.ValueOf(dest)
	if dst.Kind() != reflect.Ptr || dst.IsNil() {
		return errors.Wrap(errors.ErrHuman, "destination must be a non nil pointer")
	}
	src := reflect.ValueOf(msg)
	if src.Kind() == reflect.Ptr {
		if src.IsNil() {
			return errors.Wrap(errors.ErrEmpty, "no message")
		}
		src = src.Elem()
	}
	if !src.Type().AssignableTo(dst.Elem().Type()) {
		return errors.Wrapf(errors.ErrInvalidType, "want %T message, got %T", dest, msg)
	}
	dst.Elem().Set(src)
	return errors.Wrap(msg.Validate(), "invalid message")
}
