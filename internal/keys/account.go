// Package keys holds the local signing identity: an ed25519 key pair and
// the ledger address derived from it. Durable key storage is a concern of
// the surrounding application, not of this package.
package keys

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/hex"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/crypto/sha3"

	"github.com/cxlabs-org/cxlab-aptos-wallet/internal/constants"
)

// Account is a local signing identity. The address is the sha3-256
// authentication key of the public key under the single-signer scheme.
type Account struct {
	priv    ed25519.PrivateKey
	address string
}

// NewAccount generates a fresh random identity.
func NewAccount() (*Account, error) {
	_, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, errors.Wrap(err, "generate key")
	}
	return fromPrivate(priv), nil
}

// FromPrivateKeyHex restores an identity from a hex-encoded ed25519 seed
// or full private key, with or without a 0x prefix.
func FromPrivateKeyHex(s string) (*Account, error) {
	raw, err := hex.DecodeString(strings.TrimPrefix(strings.TrimSpace(s), "0x"))
	if err != nil {
		return nil, errors.Wrap(err, "decode private key hex")
	}
	switch len(raw) {
	case ed25519.SeedSize:
		return fromPrivate(ed25519.NewKeyFromSeed(raw)), nil
	case ed25519.PrivateKeySize:
		return fromPrivate(ed25519.PrivateKey(raw)), nil
	default:
		return nil, errors.Errorf("private key must be %d or %d bytes, got %d",
			ed25519.SeedSize, ed25519.PrivateKeySize, len(raw))
	}
}

func fromPrivate(priv ed25519.PrivateKey) *Account {
	pub := priv.Public().(ed25519.PublicKey)
	h := sha3.New256()
	h.Write(pub)
	h.Write([]byte{constants.Ed25519Scheme})
	return &Account{
		priv:    priv,
		address: "0x" + hex.EncodeToString(h.Sum(nil)),
	}
}

// Address returns the 0x-prefixed ledger address.
func (a *Account) Address() string { return a.address }

// PublicKeyHex returns the 0x-prefixed hex public key.
func (a *Account) PublicKeyHex() string {
	return "0x" + hex.EncodeToString(a.priv.Public().(ed25519.PublicKey))
}

// Sign signs a raw message.
func (a *Account) Sign(message []byte) []byte {
	return ed25519.Sign(a.priv, message)
}
