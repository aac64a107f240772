package balance

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cxlabs-org/cxlab-aptos-wallet/internal/constants"
	"github.com/cxlabs-org/cxlab-aptos-wallet/internal/ledger"
)

func coinStore(t *testing.T, typeTag, value string) ledger.AccountResource {
	t.Helper()
	return ledger.AccountResource{
		Type: typeTag,
		Data: json.RawMessage(`{"coin":{"value":"` + value + `"}}`),
	}
}

func TestExtract_AbsentSnapshot(t *testing.T) {
	b, err := Extract(nil)
	require.NoError(t, err)
	assert.False(t, b.IsKnown())
	assert.Equal(t, "unknown", b.String())
}

func TestExtract_NoNativeStore(t *testing.T) {
	resources := []ledger.AccountResource{
		{Type: "0x1::Account::Account", Data: json.RawMessage(`{}`)},
		coinStore(t, "0x1::Coin::CoinStore<0xa::Moon::Moon>", "250"),
	}

	b, err := Extract(resources)
	require.NoError(t, err)

	// Unknown, never zero: the account simply has no native store.
	assert.False(t, b.IsKnown())
}

func TestExtract_NativeStoreValue(t *testing.T) {
	resources := []ledger.AccountResource{
		coinStore(t, constants.NativeCoinStoreTag, "1000"),
	}

	b, err := Extract(resources)
	require.NoError(t, err)
	require.True(t, b.IsKnown())
	assert.Equal(t, "1000", b.Value().String())
}

func TestExtract_LargeValuePreservesPrecision(t *testing.T) {
	huge := "340282366920938463463374607431768211455"
	resources := []ledger.AccountResource{
		coinStore(t, constants.NativeCoinStoreTag, huge),
	}

	b, err := Extract(resources)
	require.NoError(t, err)
	require.True(t, b.IsKnown())
	assert.Equal(t, huge, b.Value().String())
}

func TestExtract_MalformedValue(t *testing.T) {
	resources := []ledger.AccountResource{
		coinStore(t, constants.NativeCoinStoreTag, "not-a-number"),
	}

	_, err := Extract(resources)
	assert.Error(t, err)
}

func TestExtract_NegativeValue(t *testing.T) {
	resources := []ledger.AccountResource{
		coinStore(t, constants.NativeCoinStoreTag, "-5"),
	}

	_, err := Extract(resources)
	assert.Error(t, err)
}

func TestExtract_MalformedData(t *testing.T) {
	resources := []ledger.AccountResource{
		{Type: constants.NativeCoinStoreTag, Data: json.RawMessage(`"nope"`)},
	}

	_, err := Extract(resources)
	assert.Error(t, err)
}
