package commands

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/milinsoft/bankapp/internal/config"
	"github.com/milinsoft/bankapp/internal/importer"
	"github.com/milinsoft/bankapp/internal/ledger"
	"github.com/milinsoft/bankapp/internal/model"
	"github.com/milinsoft/bankapp/internal/store"
)

// app bundles the wired-up services for one command invocation. The store
// handle is owned here and threaded into the services by reference; no
// package-level state.
type app struct {
	cfg          *config.Config
	store        *store.Store
	accounts     *ledger.AccountService
	transactions *ledger.TransactionService
	registry     *importer.Registry
}

func openApp(configPath string, log *logrus.Logger) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	st, err := store.Open(store.Config{
		Driver:       cfg.Database.Driver,
		Path:         cfg.Database.Path,
		DSN:          cfg.Database.DSN,
		MaxOpenConns: cfg.Database.MaxOpenConns,
		MaxIdleConns: cfg.Database.MaxIdleConns,
	})
	if err != nil {
		return nil, err
	}
	if err := st.Migrate(); err != nil {
		_ = st.Close()
		return nil, err
	}

	uow := st.UnitOfWork()
	return &app{
		cfg:          cfg,
		store:        st,
		accounts:     ledger.NewAccountService(uow, log, cfg.Accounts.CreditLimit()),
		transactions: ledger.NewTransactionService(uow, log),
		registry:     importer.DefaultRegistry(cfg.Import.DateLayout, cfg.Import.Rounding),
	}, nil
}

func (a *app) close() {
	_ = a.store.Close()
}

// account resolves the account of the given kind, creating the default one
// on first use.
func (a *app) account(ctx context.Context, kindStr string) (*model.Account, error) {
	kind, err := model.ParseKind(kindStr)
	if err != nil {
		return nil, err
	}
	acc, err := a.accounts.GetByKind(ctx, kind)
	if err != nil {
		return nil, err
	}
	if acc != nil {
		return acc, nil
	}

	id, err := a.accounts.CreateDefault(ctx, kind)
	if err != nil {
		return nil, err
	}
	acc, err = a.accounts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if acc == nil {
		return nil, fmt.Errorf("account %d vanished after creation", id)
	}
	return acc, nil
}
