package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cxlabs-org/cxlab-aptos-wallet/internal/constants"
	"github.com/cxlabs-org/cxlab-aptos-wallet/internal/keys"
	"github.com/cxlabs-org/cxlab-aptos-wallet/internal/ledger"
	"github.com/cxlabs-org/cxlab-aptos-wallet/internal/wallet"
)

// stubLedger serves a fixed snapshot for the wallet's own account and
// accepts everything else.
type stubLedger struct {
	mu        sync.Mutex
	byAddress map[string][]ledger.AccountResource
}

func (s *stubLedger) FetchAccountResources(_ context.Context, address string) ([]ledger.AccountResource, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.byAddress[address], nil
}

func (s *stubLedger) GenerateTransaction(_ context.Context, sender string, payload ledger.ScriptFunctionPayload) (*ledger.RawTransaction, error) {
	return &ledger.RawTransaction{Sender: sender, Payload: payload}, nil
}

func (s *stubLedger) SignTransaction(_ context.Context, _ ledger.Signer, raw *ledger.RawTransaction) (*ledger.SignedTransaction, error) {
	return &ledger.SignedTransaction{RawTransaction: *raw}, nil
}

func (s *stubLedger) SubmitTransaction(_ context.Context, _ *ledger.SignedTransaction) (*ledger.PendingTransaction, error) {
	return &ledger.PendingTransaction{Hash: "0xhash"}, nil
}

func (s *stubLedger) WaitForTransaction(_ context.Context, _ string) error { return nil }

type stubFaucet struct{}

func (stubFaucet) FundAccount(_ context.Context, _ string, _ uint64) error { return nil }

func newTestRouter(t *testing.T) (*stubLedger, *wallet.Service, http.Handler) {
	t.Helper()
	account, err := keys.NewAccount()
	require.NoError(t, err)

	l := &stubLedger{byAddress: map[string][]ledger.AccountResource{}}
	svc := wallet.New(wallet.Params{
		Account:              account,
		Ledger:               l,
		Faucet:               stubFaucet{},
		GasReserve:           decimal.NewFromInt(40),
		FaucetAmount:         5000,
		DiscoveryConcurrency: 1,
	})
	return l, svc, NewRouter(NewHandler(svc))
}

func TestHealth(t *testing.T) {
	_, _, router := newTestRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAccountView(t *testing.T) {
	_, svc, router := newTestRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/account", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var view wallet.View
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
	assert.Equal(t, svc.Address(), view.Address)
	assert.False(t, view.BalanceKnown)
}

func TestTransfer_FieldErrorOnValidationFailure(t *testing.T) {
	l, svc, router := newTestRouter(t)
	l.mu.Lock()
	l.byAddress[svc.Address()] = []ledger.AccountResource{{
		Type: constants.NativeCoinStoreTag,
		Data: json.RawMessage(`{"coin":{"value":"1000"}}`),
	}}
	l.mu.Unlock()
	svc.RequestSync()

	// Run one pass so the balance is known.
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() { svc.Run(ctx); close(done) }()
	require.Eventually(t, func() bool { return svc.View().BalanceKnown }, 2*time.Second, 10*time.Millisecond)
	cancel()
	<-done

	w := httptest.NewRecorder()
	body := strings.NewReader(`{"toAddress":"0xrecipient","amount":"960"}`)
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/transfer", body))

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	var fe fieldError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &fe))
	assert.Equal(t, "toAddress", fe.Field)
	assert.Equal(t, "Amount with gas is over limit", fe.Error)
}

func TestTransfer_RejectsBadAmount(t *testing.T) {
	_, _, router := newTestRouter(t)

	w := httptest.NewRecorder()
	body := strings.NewReader(`{"toAddress":"0xrecipient","amount":"-5"}`)
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/transfer", body))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTab_Switch(t *testing.T) {
	_, _, router := newTestRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/tab", strings.NewReader(`{"tab":"activity"}`)))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/tab", strings.NewReader(`{"tab":"settings"}`)))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
