package assets

import (
	"context"
	"encoding/json"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cxlabs-org/cxlab-aptos-wallet/internal/constants"
	"github.com/cxlabs-org/cxlab-aptos-wallet/internal/ledger"
)

// fakeFetcher serves canned resource snapshots per address.
type fakeFetcher struct {
	mu        sync.Mutex
	byAddress map[string][]ledger.AccountResource
	calls     []string
}

func (f *fakeFetcher) FetchAccountResources(_ context.Context, address string) ([]ledger.AccountResource, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, address)
	return f.byAddress[address], nil
}

func storeResource(typeTag, value string) ledger.AccountResource {
	return ledger.AccountResource{
		Type: typeTag,
		Data: json.RawMessage(`{"coin":{"value":"` + value + `"}}`),
	}
}

func coinInfoResource(coinType, name, symbol string, decimals int) ledger.AccountResource {
	data, _ := json.Marshal(ledger.CoinInfoData{Name: name, Symbol: symbol, Decimals: decimals})
	return ledger.AccountResource{
		Type: constants.CoinInfoTag + "<" + coinType + ">",
		Data: data,
	}
}

func moonAndStarSnapshot() (*fakeFetcher, []ledger.AccountResource) {
	fetcher := &fakeFetcher{byAddress: map[string][]ledger.AccountResource{
		"0xa": {coinInfoResource("0xa::Moon::Moon", "Moon Coin", "MOON", 6)},
		"0xb": {coinInfoResource("0xb::Star::Star", "Star Coin", "STAR", 8)},
	}}
	resources := []ledger.AccountResource{
		storeResource(constants.NativeCoinStoreTag, "1000"),
		storeResource("0x1::Coin::CoinStore<0xa::Moon::Moon>", "250"),
		storeResource("0x1::Coin::CoinStore<0xb::Star::Star>", "42"),
	}
	return fetcher, resources
}

func TestDiscover_ExcludesNativeCoin(t *testing.T) {
	fetcher, resources := moonAndStarSnapshot()
	scanner := NewScanner(fetcher)

	found := scanner.Discover(context.Background(), resources)

	require.Len(t, found, 2)
	for _, a := range found {
		assert.NotContains(t, a.ExactTypeTag, constants.NativeCoinType)
	}
	// The native store must not trigger a metadata fetch either.
	assert.NotContains(t, fetcher.calls, "0x1")
}

func TestDiscover_PreservesScanOrder(t *testing.T) {
	fetcher, resources := moonAndStarSnapshot()
	scanner := NewScanner(fetcher)

	found := scanner.Discover(context.Background(), resources)

	require.Len(t, found, 2)
	assert.Equal(t, "MOON", found[0].Symbol)
	assert.Equal(t, "STAR", found[1].Symbol)
	assert.Equal(t, "250", found[0].Balance.String())
	assert.Equal(t, "42", found[1].Balance.String())
	assert.Equal(t, "0xa", found[0].CoinAddress)
	assert.Equal(t, "0x1::Coin::CoinStore<0xa::Moon::Moon>", found[0].ExactTypeTag)
}

func TestDiscover_SkipsFailedLookups(t *testing.T) {
	// 0xb's defining account is absent, so its store is skipped silently.
	fetcher := &fakeFetcher{byAddress: map[string][]ledger.AccountResource{
		"0xa": {coinInfoResource("0xa::Moon::Moon", "Moon Coin", "MOON", 6)},
	}}
	resources := []ledger.AccountResource{
		storeResource("0x1::Coin::CoinStore<0xa::Moon::Moon>", "250"),
		storeResource("0x1::Coin::CoinStore<0xb::Star::Star>", "42"),
	}
	scanner := NewScanner(fetcher)

	found := scanner.Discover(context.Background(), resources)

	require.Len(t, found, 1)
	assert.Equal(t, "MOON", found[0].Symbol)
}

func TestDiscover_SkipsWhenNoCoinInfoPublished(t *testing.T) {
	fetcher := &fakeFetcher{byAddress: map[string][]ledger.AccountResource{
		"0xa": {{Type: "0x1::Account::Account", Data: json.RawMessage(`{}`)}},
	}}
	resources := []ledger.AccountResource{
		storeResource("0x1::Coin::CoinStore<0xa::Moon::Moon>", "250"),
	}
	scanner := NewScanner(fetcher)

	found := scanner.Discover(context.Background(), resources)
	assert.Empty(t, found)
}

func TestDiscover_SkipsMalformedTypeTag(t *testing.T) {
	fetcher := &fakeFetcher{byAddress: map[string][]ledger.AccountResource{}}
	resources := []ledger.AccountResource{
		storeResource("0x1::Coin::CoinStore<Moon>", "250"),
	}
	scanner := NewScanner(fetcher)

	found := scanner.Discover(context.Background(), resources)
	assert.Empty(t, found)
	assert.Empty(t, fetcher.calls)
}

func TestDiscover_EmptySnapshot(t *testing.T) {
	scanner := NewScanner(&fakeFetcher{})
	assert.Empty(t, scanner.Discover(context.Background(), nil))
}

func TestDiscoverParallel_SameOrderAsSequential(t *testing.T) {
	fetcher, resources := moonAndStarSnapshot()
	scanner := NewScanner(fetcher)

	sequential := scanner.Discover(context.Background(), resources)
	parallel := scanner.DiscoverParallel(context.Background(), resources, 4)

	assert.Equal(t, sequential, parallel)
}
