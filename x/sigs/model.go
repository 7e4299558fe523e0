package sigs

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/crypto"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/orm"
)

// BucketName prefixes the nonce records, keyed by signer address.
const BucketName = "sigs"

// maxSequenceValue is the greatest nonce a javascript client can
// represent exactly: Number.MAX_SAFE_INTEGER.
const maxSequenceValue = 1<<53 - 1

// UserData is the nonce state of a signer. The public key is recorded with
// the first signature.
type UserData struct {
	Pubkey   *crypto.PublicKey `protobuf:"bytes,1,opt,name=pubkey,proto3" json:"pubkey,omitempty"`
	Sequence int64             `protobuf:"varint,2,opt,name=sequence,proto3" json:"sequence,omitempty"`
}

var _ orm.Model = (*UserData)(nil)

// Validate requires a non negative sequence, and a public key once a
// sequence was used.
func (u *UserData) Validate() error {
	switch {
	case u.Sequence < 0:
		return errors.Wrap(ErrInvalidSequence, "negative")
	case u.Sequence > 0 && u.Pubkey == nil:
		return errors.Wrap(ErrInvalidSequence, "needs Pubkey")
	}
	return nil
}

func (u *UserData) Copy() orm.Model {
	cpy := *u
	return &cpy
}

// CheckAndIncrementSequence consumes the nonce expected. It must be the
// current sequence.
func (u *UserData) CheckAndIncrementSequence(expected int64) error {
	if u.Sequence != expected {
		return errors.Wrapf(ErrInvalidSequence, "mismatch expected %d, got %d", expected, u.Sequence)
	}
	if u.Sequence >= maxSequenceValue {
		return errors.Wrap(errors.ErrOverflow, "sequence out of range")
	}
	u.Sequence++
	return nil
}

// Bucket stores one UserData per signer address.
type Bucket struct {
	orm.Bucket
}

func NewBucket() Bucket {
	return Bucket{Bucket: orm.NewBucket(BucketName, orm.NewSimpleObj(nil, new(UserData)))}
}

// Get returns the record of addr, nil for a signer never seen.
func (b Bucket) Get(db custody.ReadOnlyKVStore, addr custody.Address) (*UserData, error) {
	obj, err := b.Bucket.Get(db, addr)
	if err != nil || obj == nil {
		return nil, err
	}
	u, ok := obj.Value().(*UserData)
	if !ok {
		return nil, errors.WithType(errors.ErrInvalidModel, obj.Value())
	}
	return u, nil
}

// GetOrCreate returns the record of pubkey, a fresh one at sequence zero
// for a new signer.
func (b Bucket) GetOrCreate(db custody.ReadOnlyKVStore, pubkey *crypto.PublicKey) (*UserData, error) {
	u, err := b.Get(db, pubkey.Address())
	if err != nil {
		return nil, err
	}
	if u == nil {
		u = &UserData{Pubkey: pubkey}
	}
	return u, nil
}

func (b Bucket) Save(db custody.KVStore, u *UserData) error {
	return b.Bucket.Save(db, orm.NewSimpleObj(u.Pubkey.Address(), u))
}
