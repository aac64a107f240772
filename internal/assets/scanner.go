// Package assets discovers which coin types an account holds by scanning
// its resource snapshot and resolving each coin's published metadata.
package assets

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/cxlabs-org/cxlab-aptos-wallet/internal/constants"
	"github.com/cxlabs-org/cxlab-aptos-wallet/internal/ledger"
	"github.com/cxlabs-org/cxlab-aptos-wallet/internal/logging"
)

// ResourceFetcher is the slice of the ledger client the scanner needs.
type ResourceFetcher interface {
	FetchAccountResources(ctx context.Context, address string) ([]ledger.AccountResource, error)
}

type Scanner struct {
	ledger ResourceFetcher
	log    *zap.SugaredLogger
}

func NewScanner(fetcher ResourceFetcher) *Scanner {
	return &Scanner{
		ledger: fetcher,
		log:    logging.Named("assets"),
	}
}

// Discover walks the snapshot's non-native coin stores, fetching each
// coin's metadata one call at a time. A store whose coin address cannot be
// extracted, whose defining account is absent, or which publishes no coin
// info is skipped; the result is whatever subset resolved, in scan order.
func (s *Scanner) Discover(ctx context.Context, resources []ledger.AccountResource) []Asset {
	out := make([]Asset, 0)
	for _, r := range resources {
		if !isForeignCoinStore(r.Type) {
			continue
		}
		asset, ok := s.resolve(ctx, r)
		if !ok {
			continue
		}
		out = append(out, asset)
	}
	return out
}

// DiscoverParallel is Discover with up to limit metadata fetches in
// flight. Output ordering still follows scan order.
func (s *Scanner) DiscoverParallel(ctx context.Context, resources []ledger.AccountResource, limit int) []Asset {
	if limit <= 1 {
		return s.Discover(ctx, resources)
	}

	var stores []ledger.AccountResource
	for _, r := range resources {
		if isForeignCoinStore(r.Type) {
			stores = append(stores, r)
		}
	}

	resolved := make([]*Asset, len(stores))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, r := range stores {
		i, r := i, r
		g.Go(func() error {
			if a, ok := s.resolve(gctx, r); ok {
				resolved[i] = &a
			}
			return nil
		})
	}
	_ = g.Wait()

	out := make([]Asset, 0, len(resolved))
	for _, a := range resolved {
		if a != nil {
			out = append(out, *a)
		}
	}
	return out
}

func (s *Scanner) resolve(ctx context.Context, store ledger.AccountResource) (Asset, bool) {
	coinAddr, err := CoinAddress(store.Type)
	if err != nil {
		s.log.Debugw("skipping coin store", "type", store.Type, "error", err)
		return Asset{}, false
	}

	remote, err := s.ledger.FetchAccountResources(ctx, coinAddr)
	if err != nil || remote == nil {
		s.log.Debugw("coin metadata unavailable", "coin_address", coinAddr, "error", err)
		return Asset{}, false
	}

	info, ok := findCoinInfo(remote)
	if !ok {
		s.log.Debugw("no coin info published", "coin_address", coinAddr)
		return Asset{}, false
	}

	var data ledger.CoinStoreData
	if err := json.Unmarshal(store.Data, &data); err != nil {
		s.log.Debugw("malformed coin store data", "type", store.Type, "error", err)
		return Asset{}, false
	}
	held, err := decimal.NewFromString(data.Coin.Value)
	if err != nil {
		s.log.Debugw("malformed coin store value", "type", store.Type, "error", err)
		return Asset{}, false
	}

	return Asset{
		CoinAddress:  coinAddr,
		ExactTypeTag: store.Type,
		Name:         info.Name,
		Symbol:       info.Symbol,
		Decimals:     info.Decimals,
		Balance:      held,
	}, true
}

func findCoinInfo(resources []ledger.AccountResource) (ledger.CoinInfoData, bool) {
	for _, r := range resources {
		if !strings.Contains(r.Type, constants.CoinInfoTag) {
			continue
		}
		var info ledger.CoinInfoData
		if err := json.Unmarshal(r.Data, &info); err != nil {
			return ledger.CoinInfoData{}, false
		}
		return info, true
	}
	return ledger.CoinInfoData{}, false
}

// isForeignCoinStore matches coin stores for anything except the native
// coin, which is surfaced as the account balance instead.
func isForeignCoinStore(tag string) bool {
	return strings.Contains(tag, constants.CoinStoreTag) &&
		!strings.Contains(tag, constants.NativeCoinType)
}
