package wallet

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cxlabs-org/cxlab-aptos-wallet/internal/assets"
	"github.com/cxlabs-org/cxlab-aptos-wallet/internal/balance"
	"github.com/cxlabs-org/cxlab-aptos-wallet/internal/ledger"
)

// Tab is the active wallet view. Switching to the assets tab re-runs
// discovery; the activity tab only has a stub list for now.
type Tab string

const (
	TabAssets   Tab = "assets"
	TabActivity Tab = "activity"
)

// ActivityEntry is a placeholder row for the activity tab. History
// fetching is a stub collaborator upstream.
type ActivityEntry struct {
	Function string `json:"function"`
	Amount   string `json:"amount"`
}

// Snapshot is one consistent view of the account: the raw resources from a
// single fetch plus everything derived from that same fetch. It is
// replaced wholesale by the sync loop, never patched.
type Snapshot struct {
	Version   uint64
	FetchedAt time.Time
	Resources []ledger.AccountResource
	Balance   balance.Balance
	Assets    []assets.Asset
	Activity  []ActivityEntry
}

// View is the snapshot plus service state, shaped for the presentation
// boundary.
type View struct {
	Address          string          `json:"address"`
	Balance          string          `json:"balance"`
	BalanceKnown     bool            `json:"balanceKnown"`
	FormattedBalance string          `json:"formattedBalance"`
	Assets           []assets.Asset  `json:"assets"`
	Activity         []ActivityEntry `json:"activity"`
	Tab              Tab             `json:"tab"`
	Version          uint64          `json:"version"`
	FetchedAt        time.Time       `json:"fetchedAt"`
	Transferring     bool            `json:"transferring"`
	Importing        bool            `json:"importing"`
	Funding          bool            `json:"funding"`
}

// formatAmount renders a balance with thousands separators and four
// decimal places, e.g. 1234567 -> "1,234,567.0000".
func formatAmount(v decimal.Decimal) string {
	fixed := v.StringFixed(4)
	neg := strings.HasPrefix(fixed, "-")
	if neg {
		fixed = fixed[1:]
	}
	whole, frac, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	b.WriteByte('.')
	b.WriteString(frac)
	return b.String()
}
