package keys

import (
	"crypto/ed25519"
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromPrivateKeyHex_Deterministic(t *testing.T) {
	seed := strings.Repeat("ab", ed25519.SeedSize)

	a, err := FromPrivateKeyHex(seed)
	require.NoError(t, err)
	b, err := FromPrivateKeyHex("0x" + seed)
	require.NoError(t, err)

	assert.Equal(t, a.Address(), b.Address())
	assert.True(t, strings.HasPrefix(a.Address(), "0x"))
	assert.Len(t, a.Address(), 2+64)
}

func TestFromPrivateKeyHex_RejectsBadInput(t *testing.T) {
	_, err := FromPrivateKeyHex("zz")
	assert.Error(t, err)

	_, err = FromPrivateKeyHex("abcd")
	assert.Error(t, err)
}

func TestSign_VerifiableSignature(t *testing.T) {
	account, err := NewAccount()
	require.NoError(t, err)

	message := []byte("signing message")
	sig := account.Sign(message)

	pub, err := hex.DecodeString(strings.TrimPrefix(account.PublicKeyHex(), "0x"))
	require.NoError(t, err)
	assert.True(t, ed25519.Verify(ed25519.PublicKey(pub), message, sig))
}

func TestNewAccount_UniqueAddresses(t *testing.T) {
	a, err := NewAccount()
	require.NoError(t, err)
	b, err := NewAccount()
	require.NoError(t, err)
	assert.NotEqual(t, a.Address(), b.Address())
}
