package crypto

import (
	"bytes"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/stellar/go/strkey"
	"golang.org/x/crypto/ed25519"
)

// ExtensionName is used for the conditions we get from signatures
const ExtensionName = "sigs"

// PublicKey is an ed25519 public key, the only signature scheme
// supported by the chain.
type PublicKey struct {
	Ed25519 []byte `protobuf:"bytes,1,opt,name=ed25519,proto3" json:"ed25519,omitempty"`
}

// Verify verifies the signature was created with this message and public key
func (p *PublicKey) Verify(message []byte, sig []byte) bool {
	if p == nil || len(p.Ed25519) != ed25519.PublicKeySize {
		return false
	}
	if len(sig) != ed25519.SignatureSize {
		return false
	}
	return ed25519.Verify(ed25519.PublicKey(p.Ed25519), message, sig)
}

// Condition encodes the public key into a signature condition.
func (p *PublicKey) Condition() custody.Condition {
	if p == nil || len(p.Ed25519) == 0 {
		return nil
	}
	return custody.Ed25519Condition(p.Ed25519)
}

// Address returns the address of the signature condition of this key.
func (p *PublicKey) Address() custody.Address {
	return p.Condition().Address()
}

// Equals returns true if both keys are the same.
func (p *PublicKey) Equals(o *PublicKey) bool {
	if p == nil || o == nil {
		return p == o
	}
	return bytes.Equal(p.Ed25519, o.Ed25519)
}

// Validate returns an error if this is not a valid ed25519 public key.
func (p *PublicKey) Validate() error {
	if p == nil || len(p.Ed25519) != ed25519.PublicKeySize {
		return errors.Wrap(errors.ErrInvalidInput, "ed25519 public key")
	}
	return nil
}

// StellarAddress returns the "G..." account id representation of this
// public key as used by the Stellar network.
func (p *PublicKey) StellarAddress() (string, error) {
	if err := p.Validate(); err != nil {
		return "", err
	}
	s, err := strkey.Encode(strkey.VersionByteAccountID, p.Ed25519)
	if err != nil {
		return "", errors.Wrap(errors.ErrInvalidInput, err.Error())
	}
	return s, nil
}

// PublicKeyFromStellar decodes a "G..." account id into a public key.
func PublicKeyFromStellar(accountID string) (*PublicKey, error) {
	raw, err := strkey.Decode(strkey.VersionByteAccountID, accountID)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInvalidInput, "stellar account id: %s", err)
	}
	return &PublicKey{Ed25519: raw}, nil
}

// PrivateKey is an ed25519 private key, used to sign transactions.
type PrivateKey struct {
	Ed25519 []byte `protobuf:"bytes,1,opt,name=ed25519,proto3" json:"ed25519,omitempty"`
}

// Sign returns a matching signature for this private key
func (p *PrivateKey) Sign(message []byte) ([]byte, error) {
	if len(p.Ed25519) != ed25519.PrivateKeySize {
		return nil, errors.Wrap(errors.ErrInvalidState, "ed25519 private key")
	}
	return ed25519.Sign(ed25519.PrivateKey(p.Ed25519), message), nil
}

// PublicKey returns the corresponding PublicKey
func (p *PrivateKey) PublicKey() *PublicKey {
	privateKey := ed25519.PrivateKey(p.Ed25519)
	pub := privateKey.Public().(ed25519.PublicKey)
	return &PublicKey{Ed25519: pub}
}

// GenPrivKeyEd25519 returns a random new private key
func GenPrivKeyEd25519() *PrivateKey {
	_, priv, err := ed25519.GenerateKey(nil)
	if err != nil {
		panic(err)
	}
	return &PrivateKey{Ed25519: priv}
}

// PrivKeyEd25519FromSeed will deterministically generate a private key from
// a given seed. Use if you have a strong source of external randomness,
// or for deterministic keys in test cases.
func PrivKeyEd25519FromSeed(seed []byte) *PrivateKey {
	priv := ed25519.NewKeyFromSeed(seed)
	return &PrivateKey{Ed25519: priv}
}
