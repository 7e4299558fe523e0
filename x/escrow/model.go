package escrow

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/coin"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/orm"
)

const (
	// BucketName is where we store the escrows
	BucketName = "esc"

	// CreatorIndex is the name of the index of escrows by their creator.
	CreatorIndex = "creator"
	// RecipientIndex is the name of the index of escrows by their
	// recipient.
	RecipientIndex = "recipient"
)

// Escrow is a deposit held in custody until it is either released to the
// recipient or refunded to the creator.
type Escrow struct {
	Creator   custody.Address  `protobuf:"bytes,1,opt,name=creator,proto3,casttype=github.com/iov-one/custody.Address" json:"creator,omitempty"`
	Recipient custody.Address  `protobuf:"bytes,2,opt,name=recipient,proto3,casttype=github.com/iov-one/custody.Address" json:"recipient,omitempty"`
	Amount    *coin.Coin       `protobuf:"bytes,3,opt,name=amount,proto3" json:"amount,omitempty"`
	Deadline  custody.UnixTime `protobuf:"varint,4,opt,name=deadline,proto3,casttype=github.com/iov-one/custody.UnixTime" json:"deadline,omitempty"`
	// Released is set once funds leave the custody account. It is never
	// unset.
	Released bool `protobuf:"varint,5,opt,name=released,proto3" json:"released,omitempty"`
	// Address is the custody account holding the deposit.
	Address custody.Address `protobuf:"bytes,6,opt,name=address,proto3,casttype=github.com/iov-one/custody.Address" json:"address,omitempty"`
}

var _ orm.Model = (*Escrow)(nil)

// Validate ensures the escrow is valid
func (e *Escrow) Validate() error {
	if err := e.Creator.Validate(); err != nil {
		return errors.Wrap(err, "creator")
	}
	if err := e.Recipient.Validate(); err != nil {
		return errors.Wrap(err, "recipient")
	}
	if err := validateAmount(e.Amount); err != nil {
		return err
	}
	if e.Deadline == 0 {
		// Zero deadline dates to 1970-01-01. Most likely value was not
		// provided and a zero value remained.
		return errors.Wrap(errors.ErrInvalidModel, "deadline is required")
	}
	if err := e.Deadline.Validate(); err != nil {
		return errors.Wrap(err, "deadline")
	}
	if err := e.Address.Validate(); err != nil {
		return errors.Wrap(err, "address")
	}
	return nil
}

// Copy makes a new escrow with the same data
func (e *Escrow) Copy() orm.Model {
	return &Escrow{
		Creator:   e.Creator.Clone(),
		Recipient: e.Recipient.Clone(),
		Amount:    e.Amount.Clone(),
		Deadline:  e.Deadline,
		Released:  e.Released,
		Address:   e.Address.Clone(),
	}
}

// validateAmount requires a single, positive coin.
func validateAmount(amount *coin.Coin) error {
	if coin.IsEmpty(amount) || !amount.IsPositive() {
		return errors.Wrapf(errors.ErrInvalidAmount, "non-positive amount: %v", amount)
	}
	return errors.Wrap(amount.Validate(), "amount")
}

// AsEscrow extracts an *Escrow value or nil from the object
// Must be called on a Bucket result that is an *Escrow,
// will panic on bad type.
func AsEscrow(obj orm.Object) *Escrow {
	if obj == nil || obj.Value() == nil {
		return nil
	}
	return obj.Value().(*Escrow)
}

// Condition calculates the address of an escrow given
// the key
func Condition(key []byte) custody.Condition {
	return custody.NewCondition("escrow", "seq", key)
}

//--- escrow.Bucket - type-safe bucket

// Bucket is a type-safe wrapper around orm.Bucket
type Bucket struct {
	orm.Bucket
	idSeq orm.Sequence
}

// NewBucket initializes an escrow.Bucket with default name
//
// inherit Get and Save from orm.Bucket
// add run-time check on Save
func NewBucket() Bucket {
	b := orm.NewBucket(BucketName, orm.NewSimpleObj(nil, new(Escrow))).
		WithIndex(CreatorIndex, idxCreator, false).
		WithIndex(RecipientIndex, idxRecipient, false)
	return Bucket{
		Bucket: b,
		idSeq:  b.Sequence(orm.SeqID),
	}
}

// Build assigns an ID to the given escrow and derives its custody address.
// The sequence is advanced, so the result should be saved within the same
// transaction.
func (b Bucket) Build(db custody.KVStore, escrow *Escrow) (orm.Object, error) {
	key, err := b.idSeq.NextVal(db)
	if err != nil {
		return nil, errors.Wrap(err, "cannot acquire key")
	}
	escrow.Address = Condition(key).Address()
	return orm.NewSimpleObj(key, escrow), nil
}

// NextID returns the id that the next built escrow will get.
func (b Bucket) NextID(db custody.ReadOnlyKVStore) ([]byte, error) {
	_, key, err := b.idSeq.Latest(db)
	return key, err
}

// GetEscrow loads the escrow stored under given id. ErrNotFound is returned
// if there is none.
func (b Bucket) GetEscrow(db custody.ReadOnlyKVStore, id []byte) (*Escrow, error) {
	obj, err := b.Get(db, id)
	if err != nil {
		return nil, err
	}
	escrow := AsEscrow(obj)
	if escrow == nil {
		return nil, errors.Wrapf(errors.ErrNotFound, "escrow %X", id)
	}
	return escrow, nil
}

// Save enforces the proper type
func (b Bucket) Save(db custody.KVStore, obj orm.Object) error {
	if _, ok := obj.Value().(*Escrow); !ok {
		return errors.WithType(errors.ErrInvalidModel, obj.Value())
	}
	return b.Bucket.Save(db, obj)
}

// ByCreator returns all escrows created by given address.
func (b Bucket) ByCreator(db custody.ReadOnlyKVStore, creator custody.Address) ([]orm.Object, error) {
	return b.GetIndexed(db, CreatorIndex, creator)
}

// ByRecipient returns all escrows that can be released to given address.
func (b Bucket) ByRecipient(db custody.ReadOnlyKVStore, recipient custody.Address) ([]orm.Object, error) {
	return b.GetIndexed(db, RecipientIndex, recipient)
}

func toEscrow(obj orm.Object) (*Escrow, error) {
	if obj == nil {
		return nil, errors.Wrap(errors.ErrHuman, "Cannot take index of nil")
	}
	esc, ok := obj.Value().(*Escrow)
	if !ok {
		return nil, errors.Wrap(errors.ErrHuman, "Can only take index of Escrow")
	}
	return esc, nil
}

func idxCreator(obj orm.Object) ([]byte, error) {
	esc, err := toEscrow(obj)
	if err != nil {
		return nil, err
	}
	return esc.Creator, nil
}

func idxRecipient(obj orm.Object) ([]byte, error) {
	esc, err := toEscrow(obj)
	if err != nil {
		return nil, err
	}
	return esc.Recipient, nil
}
