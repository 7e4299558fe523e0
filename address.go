package custody

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"

	"github.com/btcsuite/btcutil/bech32"
	"github.com/iov-one/custody/errors"
	"github.com/stellar/go/strkey"
)

// AddressLength is the size of every address. It may only be changed in
// init, before the first address is computed.
var AddressLength = 20

// Address is the truncated sha256 digest of a Condition.
type Address []byte

// NewAddress digests data. Nil stays nil.
func NewAddress(data []byte) Address {
	if data == nil {
		return nil
	}
	sum := sha256.Sum256(data)
	return Address(sum[:AddressLength])
}

func (a Address) Validate() error {
	if len(a) != AddressLength {
		return errors.ErrInvalidInput.Newf("address: %v", []byte(a))
	}
	return nil
}

func (a Address) Equals(o Address) bool {
	return bytes.Equal(a, o)
}

// Clone returns a copy that does not share memory with a.
func (a Address) Clone() Address {
	if a == nil {
		return nil
	}
	return append(Address{}, a...)
}

// String is upper case hex, "(nil)" for an empty address.
func (a Address) String() string {
	if len(a) == 0 {
		return "(nil)"
	}
	return strings.ToUpper(hex.EncodeToString(a))
}

// Bech32String encodes the address with the human readable prefix hrp.
func (a Address) Bech32String(hrp string) (string, error) {
	data, err := bech32.ConvertBits(a, 8, 5, true)
	if err != nil {
		return "", errors.Wrap(err, "convert bits")
	}
	s, err := bech32.Encode(hrp, data)
	if err != nil {
		return "", errors.Wrap(err, "bech32 encode")
	}
	return s, nil
}

// MarshalJSON writes hex instead of the default base64.
func (a Address) MarshalJSON() ([]byte, error) {
	return json.Marshal(strings.ToUpper(hex.EncodeToString(a)))
}

// UnmarshalJSON accepts any format understood by ParseAddress.
func (a *Address) UnmarshalJSON(raw []byte) error {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return errors.Wrap(err, "cannot decode json")
	}
	addr, err := ParseAddress(s)
	if err != nil {
		return err
	}
	*a = addr
	return nil
}

// ParseAddress decodes a human readable address. An optional prefix picks
// the format, hex is the default:
//
//	"<hex>" or "hex:<hex>"   raw address bytes
//	"cond:<ext>/<typ>/<hex>" address of the condition
//	"bech32:<bech32>"        bech32 encoded address bytes
//	"stellar:<G...>"         Stellar account id, resolved to the address of
//	                         its ed25519 signature condition
//
// An empty value gives a nil address.
func ParseAddress(s string) (Address, error) {
	format, value := "hex", s
	if i := strings.IndexByte(s, ':'); i >= 0 {
		format, value = s[:i], s[i+1:]
	}
	if value == "" {
		return nil, nil
	}

	var addr Address
	switch format {
	case "hex":
		raw, err := hex.DecodeString(value)
		if err != nil {
			return nil, errors.Wrap(errors.ErrInvalidInput, "cannot decode hex")
		}
		addr = raw
	case "cond":
		c, err := parseCondition(value)
		if err != nil {
			return nil, err
		}
		if err := c.Validate(); err != nil {
			return nil, err
		}
		return c.Address(), nil
	case "bech32":
		_, data, err := bech32.Decode(value)
		if err != nil {
			return nil, errors.ErrInvalidInput.Newf("deserialize bech32: %s", err)
		}
		if addr, err = bech32.ConvertBits(data, 5, 8, false); err != nil {
			return nil, errors.ErrInvalidInput.Newf("deserialize bech32: %s", err)
		}
	case "stellar":
		pubkey, err := strkey.Decode(strkey.VersionByteAccountID, value)
		if err != nil {
			return nil, errors.ErrInvalidInput.Newf("stellar account id: %s", err)
		}
		return Ed25519Condition(pubkey).Address(), nil
	default:
		return nil, errors.ErrInvalidType.Newf("unknown format %q", format)
	}
	if err := addr.Validate(); err != nil {
		return nil, err
	}
	return addr, nil
}
