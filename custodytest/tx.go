package custodytest

import "github.com/iov-one/custody"

// Tx carries Msg, or fails GetMsg with Err. It cannot be serialized.
type Tx struct {
	Msg custody.Msg
	Err error
}

var _ custody.Tx = (*Tx)(nil)

func (tx *Tx) GetMsg() (custody.Msg, error) { return tx.Msg, tx.Err }
func (tx *Tx) Marshal() ([]byte, error)     { panic("custodytest.Tx cannot be marshaled") }
func (tx *Tx) Unmarshal([]byte) error       { panic("custodytest.Tx cannot be unmarshaled") }

// Msg routes to RoutePath. Its serialized form is Serialized, every
// method fails with Err when set.
type Msg struct {
	RoutePath  string
	Serialized []byte
	Err        error
}

var _ custody.Msg = (*Msg)(nil)

func (m *Msg) Path() string             { return m.RoutePath }
func (m *Msg) Validate() error          { return m.Err }
func (m *Msg) Marshal() ([]byte, error) { return m.Serialized, m.Err }

func (m *Msg) Unmarshal(raw []byte) error {
	m.Serialized = raw
	return m.Err
}
