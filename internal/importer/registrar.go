// Package importer registers a new coin type under the active account so
// its balance becomes visible to asset discovery.
package importer

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/cxlabs-org/cxlab-aptos-wallet/internal/assets"
	"github.com/cxlabs-org/cxlab-aptos-wallet/internal/constants"
	"github.com/cxlabs-org/cxlab-aptos-wallet/internal/ledger"
	"github.com/cxlabs-org/cxlab-aptos-wallet/internal/logging"
	"github.com/cxlabs-org/cxlab-aptos-wallet/internal/transfer"
)

// ErrNoCoinInfo means the given address publishes no coin metadata, so
// there is no coin type to register.
var ErrNoCoinInfo = errors.New("no coin info published at address")

type Registrar struct {
	ledger transfer.Ledger
	log    *zap.SugaredLogger
}

func NewRegistrar(l transfer.Ledger) *Registrar {
	return &Registrar{
		ledger: l,
		log:    logging.Named("importer"),
	}
}

// Register resolves the fully qualified coin type published at coinAddress
// and drives one registration transaction for it. Registration moves no
// value, so no balance or gas validation applies.
func (r *Registrar) Register(ctx context.Context, coinAddress string, signer ledger.Signer) error {
	coinType, err := r.resolveCoinType(ctx, coinAddress)
	if err != nil {
		return err
	}

	payload := ledger.NewRegisterPayload(coinType)
	raw, err := r.ledger.GenerateTransaction(ctx, signer.Address(), payload)
	if err != nil {
		return errors.Wrap(err, "generate registration")
	}
	signed, err := r.ledger.SignTransaction(ctx, signer, raw)
	if err != nil {
		return errors.Wrap(err, "sign registration")
	}
	pending, err := r.ledger.SubmitTransaction(ctx, signed)
	if err != nil {
		return errors.Wrap(err, "submit registration")
	}
	if err := r.ledger.WaitForTransaction(ctx, pending.Hash); err != nil {
		return errors.Wrap(err, "await registration")
	}

	r.log.Infow("coin registered", "coin_type", coinType, "hash", pending.Hash)
	return nil
}

// resolveCoinType reads the coin address's own resources and takes the
// type parameter of its published CoinInfo as the exact coin type.
func (r *Registrar) resolveCoinType(ctx context.Context, coinAddress string) (string, error) {
	resources, err := r.ledger.FetchAccountResources(ctx, coinAddress)
	if err != nil {
		return "", errors.Wrap(err, "fetch coin address resources")
	}
	if resources == nil {
		return "", errors.Wrapf(ErrNoCoinInfo, "account %s does not exist", coinAddress)
	}
	for _, res := range resources {
		if !strings.Contains(res.Type, constants.CoinInfoTag) {
			continue
		}
		coinType, err := assets.TypeParameter(res.Type)
		if err != nil {
			return "", errors.Wrap(err, "parse coin info tag")
		}
		return coinType, nil
	}
	return "", errors.Wrapf(ErrNoCoinInfo, "account %s", coinAddress)
}
