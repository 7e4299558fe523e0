package sigs

import (
	"crypto/sha512"
	"encoding/binary"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/crypto"
	"github.com/iov-one/custody/errors"
)

// SignCodeV1 starts every signed payload.
var SignCodeV1 = []byte{0, 0xCA, 0xFE, 0}

// VerifyTxSignatures verifies every signature of tx and consumes the
// nonces. It returns the signer conditions in signature order, an empty
// slice for an unsigned transaction.
func VerifyTxSignatures(db custody.KVStore, tx SignedTx, chainID string) ([]custody.Condition, error) {
	payload, err := tx.GetSignBytes()
	if err != nil {
		return nil, err
	}
	sigs := tx.GetSignatures()
	signers := make([]custody.Condition, 0, len(sigs))
	for i, sig := range sigs {
		signer, err := VerifySignature(db, sig, payload, chainID)
		if err != nil {
			return nil, errors.Wrapf(err, "signature %d", i)
		}
		signers = append(signers, signer)
	}
	return signers, nil
}

// VerifySignature checks sig over payload and, when valid, stores the
// incremented nonce of the signer.
func VerifySignature(db custody.KVStore, sig *StdSignature, payload []byte, chainID string) (custody.Condition, error) {
	if err := sig.Validate(); err != nil {
		return nil, err
	}
	toSign, err := BuildSignBytes(payload, chainID, sig.Sequence)
	if err != nil {
		return nil, err
	}
	if !sig.Pubkey.Verify(toSign, sig.Signature) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "invalid signature")
	}

	users := NewBucket()
	user, err := users.GetOrCreate(db, sig.Pubkey)
	if err != nil {
		return nil, err
	}
	if err := user.CheckAndIncrementSequence(sig.Sequence); err != nil {
		return nil, err
	}
	if err := users.Save(db, user); err != nil {
		return nil, err
	}
	return sig.Pubkey.Condition(), nil
}

// BuildSignBytes returns the sha512 digest of
//
//	SignCodeV1 | len(chainID) as one byte | chainID | seq as big endian int64 | payload
//
// which is what a signer signs.
func BuildSignBytes(payload []byte, chainID string, seq int64) ([]byte, error) {
	if seq < 0 {
		return nil, errors.Wrap(ErrInvalidSequence, "negative")
	}
	if !custody.IsValidChainID(chainID) {
		return nil, errors.Wrapf(errors.ErrInvalidInput, "chain id: %v", chainID)
	}

	msg := make([]byte, 0, len(SignCodeV1)+1+len(chainID)+8+len(payload))
	msg = append(msg, SignCodeV1...)
	msg = append(msg, byte(len(chainID)))
	msg = append(msg, chainID...)
	var nonce [8]byte
	binary.BigEndian.PutUint64(nonce[:], uint64(seq))
	msg = append(msg, nonce[:]...)
	msg = append(msg, payload...)

	digest := sha512.Sum512(msg)
	return digest[:], nil
}

// BuildSignBytesTx is BuildSignBytes over the sign bytes of tx.
func BuildSignBytesTx(tx SignedTx, chainID string, seq int64) ([]byte, error) {
	payload, err := tx.GetSignBytes()
	if err != nil {
		return nil, err
	}
	return BuildSignBytes(payload, chainID, seq)
}

// SignTx signs tx with key using nonce seq.
func SignTx(key *crypto.PrivateKey, tx SignedTx, chainID string, seq int64) (*StdSignature, error) {
	toSign, err := BuildSignBytesTx(tx, chainID, seq)
	if err != nil {
		return nil, err
	}
	sig, err := key.Sign(toSign)
	if err != nil {
		return nil, err
	}
	return &StdSignature{Pubkey: key.PublicKey(), Signature: sig, Sequence: seq}, nil
}

// NextNonce returns the sequence the next signature of addr must use.
func NextNonce(db custody.ReadOnlyKVStore, addr custody.Address) (int64, error) {
	user, err := NewBucket().Get(db, addr)
	if err != nil || user == nil {
		return 0, err
	}
	return user.Sequence, nil
}
