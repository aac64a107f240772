// Package balance extracts the native-coin balance from an account
// resource snapshot.
package balance

import (
	"encoding/json"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/cxlabs-org/cxlab-aptos-wallet/internal/constants"
	"github.com/cxlabs-org/cxlab-aptos-wallet/internal/ledger"
)

// Balance is the native-coin holding of the account. Unknown (no prior
// successful fetch, or no native coin store on the account) is distinct
// from zero.
type Balance struct {
	value decimal.Decimal
	known bool
}

// Unknown is the sentinel for an undetermined balance.
var Unknown = Balance{}

// Known wraps a fetched value.
func Known(v decimal.Decimal) Balance {
	return Balance{value: v, known: true}
}

// IsKnown reports whether the balance has been determined.
func (b Balance) IsKnown() bool { return b.known }

// Value returns the amount; only meaningful when IsKnown.
func (b Balance) Value() decimal.Decimal { return b.value }

func (b Balance) String() string {
	if !b.known {
		return "unknown"
	}
	return b.value.String()
}

// Extract scans a resource snapshot for the native coin store and parses
// its held value. A nil snapshot or a snapshot without the native store
// yields Unknown. A malformed value is an error, not a crash and not zero.
func Extract(resources []ledger.AccountResource) (Balance, error) {
	if resources == nil {
		return Unknown, nil
	}
	for _, r := range resources {
		if r.Type != constants.NativeCoinStoreTag {
			continue
		}
		var store ledger.CoinStoreData
		if err := json.Unmarshal(r.Data, &store); err != nil {
			return Unknown, errors.Wrap(err, "decode native coin store")
		}
		v, err := decimal.NewFromString(store.Coin.Value)
		if err != nil {
			return Unknown, errors.Wrapf(err, "parse coin value %q", store.Coin.Value)
		}
		if v.IsNegative() {
			return Unknown, errors.Errorf("negative coin value %q", store.Coin.Value)
		}
		return Known(v), nil
	}
	return Unknown, nil
}
