// Package transfer validates and submits native-coin transfers and
// classifies every attempt into a closed outcome taxonomy.
package transfer

import (
	"context"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/cxlabs-org/cxlab-aptos-wallet/internal/balance"
	"github.com/cxlabs-org/cxlab-aptos-wallet/internal/ledger"
	"github.com/cxlabs-org/cxlab-aptos-wallet/internal/logging"
)

// Request describes one transfer attempt. Ephemeral: built per submission,
// discarded with its outcome.
type Request struct {
	From   ledger.Signer
	To     string
	Amount decimal.Decimal
}

// Ledger is the slice of the client adapter the orchestrator drives.
type Ledger interface {
	FetchAccountResources(ctx context.Context, address string) ([]ledger.AccountResource, error)
	GenerateTransaction(ctx context.Context, sender string, payload ledger.ScriptFunctionPayload) (*ledger.RawTransaction, error)
	SignTransaction(ctx context.Context, signer ledger.Signer, raw *ledger.RawTransaction) (*ledger.SignedTransaction, error)
	SubmitTransaction(ctx context.Context, signed *ledger.SignedTransaction) (*ledger.PendingTransaction, error)
	WaitForTransaction(ctx context.Context, hash string) error
}

type Orchestrator struct {
	ledger     Ledger
	gasReserve decimal.Decimal
	log        *zap.SugaredLogger
}

func NewOrchestrator(l Ledger, gasReserve decimal.Decimal) *Orchestrator {
	return &Orchestrator{
		ledger:     l,
		gasReserve: gasReserve,
		log:        logging.Named("transfer"),
	}
}

// Submit runs the transfer protocol against the current balance,
// short-circuiting on the first failure:
//
//  1. refuse outright when the balance is unknown or the amount alone
//     exceeds it;
//  2. refuse when the amount reaches balance minus the gas reserve
//     (equality rejects: the limit is strict less-than);
//  3. refuse when the recipient account does not exist;
//  4. otherwise generate, sign, submit and await confirmation.
//
// No state is written here; the caller owns busy flags and triggers the
// resynchronization pass on every terminal outcome.
func (o *Orchestrator) Submit(ctx context.Context, req Request, current balance.Balance) Outcome {
	if !current.IsKnown() {
		// Never submit against an unknown balance, whatever the amount.
		return Outcome{
			Kind:  KindAmountWithGasOverLimit,
			Cause: errors.New("balance unknown: no successful account fetch yet"),
		}
	}

	if req.Amount.GreaterThanOrEqual(current.Value()) {
		return Outcome{
			Kind:   KindAmountOverLimit,
			OverBy: req.Amount.Sub(current.Value()),
		}
	}
	limit := current.Value().Sub(o.gasReserve)
	if req.Amount.GreaterThanOrEqual(limit) {
		return Outcome{
			Kind:   KindAmountWithGasOverLimit,
			OverBy: req.Amount.Sub(limit),
		}
	}

	recipient, err := o.ledger.FetchAccountResources(ctx, req.To)
	if err != nil {
		return Outcome{Kind: KindRemoteFailure, Cause: errors.Wrap(err, "check recipient")}
	}
	if recipient == nil {
		return Outcome{Kind: KindUndefinedAccount}
	}

	payload := ledger.NewTransferPayload(req.To, req.Amount.String())
	raw, err := o.ledger.GenerateTransaction(ctx, req.From.Address(), payload)
	if err != nil {
		return o.classify(err, "generate transaction")
	}
	signed, err := o.ledger.SignTransaction(ctx, req.From, raw)
	if err != nil {
		return o.classify(err, "sign transaction")
	}
	pending, err := o.ledger.SubmitTransaction(ctx, signed)
	if err != nil {
		return o.classify(err, "submit transaction")
	}
	if err := o.ledger.WaitForTransaction(ctx, pending.Hash); err != nil {
		return o.classify(err, "await confirmation")
	}

	o.log.Infow("transfer confirmed",
		"to", req.To,
		"amount", req.Amount.String(),
		"hash", pending.Hash,
	)
	return success()
}

func (o *Orchestrator) classify(err error, stage string) Outcome {
	if errors.Is(err, ledger.ErrIncorrectPayload) {
		return Outcome{Kind: KindIncorrectPayload, Cause: err}
	}
	return Outcome{Kind: KindRemoteFailure, Cause: errors.Wrap(err, stage)}
}
