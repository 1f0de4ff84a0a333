package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/qmuntal/stateless"

	"github.com/diillson/aws-cost-console/internal/domain/entity"
	"github.com/diillson/aws-cost-console/internal/shared/types"
)

const (
	stateLoading = "loading"
	stateLoaded  = "loaded"

	triggerLoaded = "loaded"
)

// AccountLister is the part of the backend the account context needs.
type AccountLister interface {
	GetAwsAccounts(ctx context.Context) ([]entity.AwsAccount, error)
}

// AccountContext holds the account list and the current selection for a session.
// The list is fetched once; there is no refresh.
type AccountContext struct {
	api    AccountLister
	logger *slog.Logger

	loadMu  sync.Mutex
	mu      sync.RWMutex
	machine *stateless.StateMachine

	accounts []entity.AwsAccount
	selected string
}

func NewAccountContext(api AccountLister, logger *slog.Logger) *AccountContext {
	if logger == nil {
		logger = slog.Default()
	}
	machine := stateless.NewStateMachine(stateLoading)
	machine.Configure(stateLoading).Permit(triggerLoaded, stateLoaded)
	machine.Configure(stateLoaded)

	return &AccountContext{
		api:     api,
		logger:  logger.With("component", "accounts"),
		machine: machine,
	}
}

// Load fetches the account list and selects the first account. It always ends loaded;
// a failed fetch leaves an empty selection and returns the error. Later calls do nothing.
func (a *AccountContext) Load(ctx context.Context) error {
	a.loadMu.Lock()
	defer a.loadMu.Unlock()

	if !a.Loading() {
		return nil
	}

	accounts, err := a.api.GetAwsAccounts(ctx)

	a.mu.Lock()
	if err == nil && len(accounts) > 0 {
		a.accounts = accounts
		a.selected = accounts[0].ID
	}
	fireErr := a.machine.Fire(triggerLoaded)
	a.mu.Unlock()

	if fireErr != nil {
		return fmt.Errorf("account context: %w", fireErr)
	}
	if err != nil {
		a.logger.Warn("could not load AWS accounts", "error", err)
		return err
	}
	a.logger.Debug("AWS accounts loaded", "count", len(accounts))
	return nil
}

// Loading reports whether Load has not completed yet.
func (a *AccountContext) Loading() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.machine.MustState() == stateLoading
}

func (a *AccountContext) Accounts() []entity.AwsAccount {
	a.mu.RLock()
	defer a.mu.RUnlock()
	out := make([]entity.AwsAccount, len(a.accounts))
	copy(out, a.accounts)
	return out
}

// Selected returns the id of the selected account, or "".
func (a *AccountContext) Selected() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.selected
}

// SelectedAccount returns the selected record, or nil when the id is not in the list.
func (a *AccountContext) SelectedAccount() *entity.AwsAccount {
	a.mu.RLock()
	defer a.mu.RUnlock()
	for i := range a.accounts {
		if a.accounts[i].ID == a.selected {
			acc := a.accounts[i]
			return &acc
		}
	}
	return nil
}

// Select makes the account with the given id, or failing that the given name, current.
func (a *AccountContext) Select(idOrName string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	for _, acc := range a.accounts {
		if acc.ID == idOrName {
			a.selected = acc.ID
			return nil
		}
	}
	for _, acc := range a.accounts {
		if acc.Name == idOrName {
			a.selected = acc.ID
			return nil
		}
	}
	return fmt.Errorf("%w: %s", types.ErrAccountNotFound, idOrName)
}

// RequireSelected returns the selected account or a sentinel error explaining why there is none.
func (a *AccountContext) RequireSelected() (*entity.AwsAccount, error) {
	if acc := a.SelectedAccount(); acc != nil {
		return acc, nil
	}
	if len(a.Accounts()) == 0 {
		return nil, types.ErrNoAccountsFound
	}
	return nil, types.ErrNoAccountSelected
}

// Replace swaps the account list after a change made elsewhere. The selection is kept
// when the selected account is still listed; otherwise the first account is selected.
func (a *AccountContext) Replace(accounts []entity.AwsAccount) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.accounts = append([]entity.AwsAccount(nil), accounts...)
	for _, acc := range a.accounts {
		if acc.ID == a.selected {
			return
		}
	}
	a.selected = ""
	if len(a.accounts) > 0 {
		a.selected = a.accounts[0].ID
	}
}
