package crypto

import (
	"bytes"
	"testing"

	"github.com/iov-one/custody"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEd25519Signing(t *testing.T) {
	private := GenPrivKeyEd25519()
	public := private.PublicKey()

	msg := []byte("foobar")
	msg2 := []byte("dingbooms")

	sig, err := private.Sign(msg)
	require.NoError(t, err)
	sig2, err := private.Sign(msg2)
	require.NoError(t, err)

	if bytes.Equal(sig, sig2) {
		t.Fatal("different messages produce the same signature")
	}

	assert.True(t, public.Verify(msg, sig))
	assert.True(t, public.Verify(msg2, sig2))
	assert.False(t, public.Verify(msg, sig2))
	assert.False(t, public.Verify(msg2, sig))
	assert.False(t, public.Verify(msg, nil))
	assert.False(t, (&PublicKey{}).Verify(msg, sig))
}

func TestEd25519Address(t *testing.T) {
	pub := GenPrivKeyEd25519().PublicKey()
	pub2 := GenPrivKeyEd25519().PublicKey()
	empty := PublicKey{}

	assert.NoError(t, pub.Condition().Validate())
	assert.NoError(t, pub2.Condition().Validate())
	assert.False(t, pub.Condition().Equals(pub2.Condition()))
	assert.Nil(t, empty.Condition())

	assert.NoError(t, pub.Address().Validate())
	assert.False(t, pub.Address().Equals(pub2.Address()))

	ext, typ, data, err := pub.Condition().Parse()
	require.NoError(t, err)
	assert.Equal(t, ExtensionName, ext)
	assert.Equal(t, "ed25519", typ)
	assert.Equal(t, pub.Ed25519, data)
}

func TestDeterministicKeys(t *testing.T) {
	seed := bytes.Repeat([]byte{7}, 32)
	a := PrivKeyEd25519FromSeed(seed)
	b := PrivKeyEd25519FromSeed(seed)
	assert.True(t, a.PublicKey().Equals(b.PublicKey()))
	assert.False(t, a.PublicKey().Equals(GenPrivKeyEd25519().PublicKey()))
}

func TestStellarAccountID(t *testing.T) {
	pub := PrivKeyEd25519FromSeed(bytes.Repeat([]byte{1}, 32)).PublicKey()

	accountID, err := pub.StellarAddress()
	require.NoError(t, err)
	assert.Equal(t, byte('G'), accountID[0])

	back, err := PublicKeyFromStellar(accountID)
	require.NoError(t, err)
	assert.True(t, pub.Equals(back))

	// An account id resolves to the address of its signature condition.
	addr, err := custody.ParseAddress("stellar:" + accountID)
	require.NoError(t, err)
	assert.Equal(t, pub.Address(), addr)

	_, err = PublicKeyFromStellar("GNOTAVALIDACCOUNT")
	assert.Error(t, err)

	_, err = (&PublicKey{Ed25519: []byte{1, 2}}).StellarAddress()
	assert.Error(t, err)
}
