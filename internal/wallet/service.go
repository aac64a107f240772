// Package wallet owns the account state snapshot and the synchronization
// loop that keeps it aligned with the ledger. The loop is the only writer
// of the snapshot; transfer, import and faucet operations never touch
// state directly, they request a resync.
package wallet

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/cxlabs-org/cxlab-aptos-wallet/internal/assets"
	"github.com/cxlabs-org/cxlab-aptos-wallet/internal/balance"
	"github.com/cxlabs-org/cxlab-aptos-wallet/internal/importer"
	"github.com/cxlabs-org/cxlab-aptos-wallet/internal/keys"
	"github.com/cxlabs-org/cxlab-aptos-wallet/internal/logging"
	"github.com/cxlabs-org/cxlab-aptos-wallet/internal/notify"
	"github.com/cxlabs-org/cxlab-aptos-wallet/internal/transfer"
)

const notificationDuration = 7 * time.Second

// ErrBusy means the requested operation is already in flight for this
// account.
var ErrBusy = errors.New("operation already in progress")

// Faucet is the test-token dispenser boundary.
type Faucet interface {
	FundAccount(ctx context.Context, address string, amount uint64) error
}

// Params wires a Service. Ledger is the full client adapter; Scanner,
// Orchestrator and Registrar are built on top of it.
type Params struct {
	Account              *keys.Account
	Ledger               transfer.Ledger
	Faucet               Faucet
	Notifier             notify.Notifier
	GasReserve           decimal.Decimal
	FaucetAmount         uint64
	DiscoveryConcurrency int
}

// pendingTransfer records what the last transfer attempt looked like from
// the local side, so the next sync pass can report gas consumed.
type pendingTransfer struct {
	outcome transfer.Outcome
	before  balance.Balance
	amount  decimal.Decimal
}

type Service struct {
	account      *keys.Account
	ledger       transfer.Ledger
	scanner      *assets.Scanner
	orchestrator *transfer.Orchestrator
	registrar    *importer.Registrar
	faucet       Faucet
	notifier     notify.Notifier
	faucetAmount uint64
	discoverN    int
	log          *zap.SugaredLogger

	// refresh coalesces resync requests: a request while one is already
	// queued is absorbed, so passes never race each other.
	refresh chan struct{}

	mu           sync.Mutex
	snap         Snapshot
	tab          Tab
	pending      *pendingTransfer
	transferring bool
	importing    bool
	funding      bool
}

func New(p Params) *Service {
	if p.Notifier == nil {
		p.Notifier = notify.NewLogNotifier()
	}
	if p.DiscoveryConcurrency < 1 {
		p.DiscoveryConcurrency = 1
	}
	return &Service{
		account:      p.Account,
		ledger:       p.Ledger,
		scanner:      assets.NewScanner(p.Ledger),
		orchestrator: transfer.NewOrchestrator(p.Ledger, p.GasReserve),
		registrar:    importer.NewRegistrar(p.Ledger),
		faucet:       p.Faucet,
		notifier:     p.Notifier,
		faucetAmount: p.FaucetAmount,
		discoverN:    p.DiscoveryConcurrency,
		log:          logging.Named("wallet"),
		refresh:      make(chan struct{}, 1),
		tab:          TabAssets,
	}
}

// Address returns the active account's ledger address.
func (s *Service) Address() string { return s.account.Address() }

// RequestSync schedules a synchronization pass. Requests issued while one
// is already queued coalesce into a single pass.
func (s *Service) RequestSync() {
	select {
	case s.refresh <- struct{}{}:
	default:
	}
}

// Run drives the synchronization loop until the context ends. It performs
// one pass immediately so the snapshot is populated after mount.
func (s *Service) Run(ctx context.Context) {
	s.syncOnce(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-s.refresh:
			s.syncOnce(ctx)
		}
	}
}

// syncOnce fetches a fresh resource snapshot and rebuilds all derived
// state from that one fetch. An absent account leaves prior state
// untouched. The pending-transfer record, if any, is consumed here to emit
// the gas-consumed notification exactly once.
func (s *Service) syncOnce(ctx context.Context) {
	passID := uuid.NewString()

	resources, err := s.ledger.FetchAccountResources(ctx, s.account.Address())
	if err != nil {
		s.log.Errorw("sync fetch failed", "pass", passID, "error", err)
		return
	}
	if resources == nil {
		s.log.Debugw("account absent, keeping prior state", "pass", passID)
		return
	}

	newBalance, err := balance.Extract(resources)
	if err != nil {
		s.log.Errorw("balance extraction failed", "pass", passID, "error", err)
		newBalance = balance.Unknown
	}

	s.mu.Lock()
	tab := s.tab
	pending := s.pending
	s.pending = nil
	s.mu.Unlock()

	if pending != nil {
		s.notifyTransfer(pending, newBalance)
	}

	// Discovery always runs over the snapshot fetched in this pass, never
	// over resources from an earlier fetch.
	found := s.scanner.DiscoverParallel(ctx, resources, s.discoverN)

	var activity []ActivityEntry
	if tab == TabActivity {
		// History fetching is unimplemented upstream; the stub list keeps
		// the view consistent.
		activity = []ActivityEntry{}
	}

	s.mu.Lock()
	s.snap = Snapshot{
		Version:   s.snap.Version + 1,
		FetchedAt: time.Now(),
		Resources: resources,
		Balance:   newBalance,
		Assets:    found,
		Activity:  activity,
	}
	s.transferring = false
	s.importing = false
	s.funding = false
	version := s.snap.Version
	s.mu.Unlock()

	s.log.Infow("sync pass complete",
		"pass", passID,
		"version", version,
		"balance", newBalance.String(),
		"assets", len(found),
	)
}

// notifyTransfer reports a completed transfer whose outcome was Success or
// IncorrectPayload, with gas consumed approximated from local amounts
// (balance before, amount sent, balance after); the node's actual gas
// receipt is not consulted here.
func (s *Service) notifyTransfer(p *pendingTransfer, after balance.Balance) {
	kind := p.outcome.Kind
	if kind != transfer.KindSuccess && kind != transfer.KindIncorrectPayload {
		return
	}
	if !p.before.IsKnown() || !after.IsKnown() {
		return
	}
	gas := p.before.Value().Sub(p.amount).Sub(after.Value())

	severity := notify.SeverityError
	title := "Transaction failed"
	if kind == transfer.KindSuccess {
		severity = notify.SeveritySuccess
		title = "Transaction succeeded"
	}
	s.notifier.Notify(notify.Notification{
		Title: title,
		Description: fmt.Sprintf("%s. Amount transferred: %s, gas consumed: %s",
			p.outcome.Message(), p.amount.String(), gas.String()),
		Severity: severity,
		Duration: notificationDuration,
	})
}

// Transfer validates and submits a native-coin transfer against the
// balance held in the current snapshot. The busy flag is released
// unconditionally on every terminal path, and a resync is requested for
// every outcome so the view reflects ground truth.
func (s *Service) Transfer(ctx context.Context, to string, amount decimal.Decimal) (transfer.Outcome, error) {
	s.mu.Lock()
	if s.transferring {
		s.mu.Unlock()
		return transfer.Outcome{}, ErrBusy
	}
	s.transferring = true
	before := s.snap.Balance
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.transferring = false
		s.mu.Unlock()
	}()

	outcome := s.orchestrator.Submit(ctx, transfer.Request{
		From:   s.account,
		To:     to,
		Amount: amount,
	}, before)

	s.mu.Lock()
	s.pending = &pendingTransfer{outcome: outcome, before: before, amount: amount}
	s.mu.Unlock()

	s.RequestSync()
	return outcome, nil
}

// ImportCoin registers the coin type published at coinAddress under the
// active account. Success schedules a resync so the new store shows up in
// discovery.
func (s *Service) ImportCoin(ctx context.Context, coinAddress string) error {
	s.mu.Lock()
	if s.importing {
		s.mu.Unlock()
		return ErrBusy
	}
	s.importing = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.importing = false
		s.mu.Unlock()
	}()

	if err := s.registrar.Register(ctx, coinAddress, s.account); err != nil {
		return err
	}
	s.RequestSync()
	return nil
}

// Fund asks the dispenser for test tokens and schedules a resync.
func (s *Service) Fund(ctx context.Context) error {
	s.mu.Lock()
	if s.funding {
		s.mu.Unlock()
		return ErrBusy
	}
	s.funding = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.funding = false
		s.mu.Unlock()
	}()

	if err := s.faucet.FundAccount(ctx, s.account.Address(), s.faucetAmount); err != nil {
		return errors.Wrap(err, "fund account")
	}
	s.RequestSync()
	return nil
}

// SetTab switches the active view tab and schedules a pass: the assets tab
// re-runs discovery even without a mutation, the activity tab installs the
// stub list.
func (s *Service) SetTab(tab Tab) error {
	if tab != TabAssets && tab != TabActivity {
		return errors.Errorf("unknown tab %q", tab)
	}
	s.mu.Lock()
	s.tab = tab
	s.mu.Unlock()
	s.RequestSync()
	return nil
}

// View returns the current snapshot shaped for presentation.
func (s *Service) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := View{
		Address:      s.account.Address(),
		Balance:      s.snap.Balance.String(),
		BalanceKnown: s.snap.Balance.IsKnown(),
		Assets:       s.snap.Assets,
		Activity:     s.snap.Activity,
		Tab:          s.tab,
		Version:      s.snap.Version,
		FetchedAt:    s.snap.FetchedAt,
		Transferring: s.transferring,
		Importing:    s.importing,
		Funding:      s.funding,
	}
	if s.snap.Balance.IsKnown() {
		v.FormattedBalance = formatAmount(s.snap.Balance.Value())
	}
	return v
}

// Snapshot returns a copy of the raw snapshot, mainly for tests and
// debugging endpoints.
func (s *Service) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap
}
