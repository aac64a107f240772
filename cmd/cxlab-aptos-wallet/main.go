package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cxlabs-org/cxlab-aptos-wallet/internal/config"
	"github.com/cxlabs-org/cxlab-aptos-wallet/internal/faucet"
	walletapi "github.com/cxlabs-org/cxlab-aptos-wallet/internal/http"
	"github.com/cxlabs-org/cxlab-aptos-wallet/internal/keys"
	"github.com/cxlabs-org/cxlab-aptos-wallet/internal/ledger"
	"github.com/cxlabs-org/cxlab-aptos-wallet/internal/logging"
	"github.com/cxlabs-org/cxlab-aptos-wallet/internal/notify"
	"github.com/cxlabs-org/cxlab-aptos-wallet/internal/wallet"
)

var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

func main() {
	logging.Info("cxlab-aptos-wallet",
		"version", Version,
		"commit", Commit,
		"build_date", BuildDate,
	)
	defer logging.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		logging.Fatal("failed to parse config", "error", err)
	}
	if cfg.Debug {
		logging.SetDebug()
	}

	account, err := loadAccount(cfg)
	if err != nil {
		logging.Fatal("failed to load signing identity", "error", err)
	}
	logging.Info("signing identity ready", "address", account.Address())

	gasReserve, err := decimal.NewFromString(cfg.GasReserve)
	if err != nil {
		logging.Fatal("invalid gas reserve", "value", cfg.GasReserve, "error", err)
	}

	svc := wallet.New(wallet.Params{
		Account:              account,
		Ledger:               ledger.NewClient(cfg.NodeURL),
		Faucet:               faucet.NewClient(cfg.FaucetURL),
		Notifier:             notify.NewLogNotifier(),
		GasReserve:           gasReserve,
		FaucetAmount:         cfg.FaucetAmount,
		DiscoveryConcurrency: cfg.DiscoveryConcurrency,
	})
	go svc.Run(ctx)

	handler := walletapi.NewRouter(walletapi.NewHandler(svc))
	server := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logging.Info("local API listening", "addr", cfg.ListenAddr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Error("HTTP server error", "error", err)
		}
	}()

	<-ctx.Done()
	logging.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logging.Error("HTTP server shutdown failed", "error", err)
	} else {
		logging.Info("HTTP server gracefully stopped")
	}
}

func loadAccount(cfg *config.Config) (*keys.Account, error) {
	if cfg.PrivateKeyHex != "" {
		return keys.FromPrivateKeyHex(cfg.PrivateKeyHex)
	}
	return keys.NewAccount()
}
