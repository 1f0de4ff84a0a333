package usecase

import (
	"context"
	"sync"

	"github.com/diillson/aws-cost-console/internal/domain/entity"
	"github.com/diillson/aws-cost-console/internal/domain/repository"
)

// fakeAPI records calls and answers from the configured functions.
type fakeAPI struct {
	repository.DashboardAPI

	mu    sync.Mutex
	calls []string

	accounts     func() ([]entity.AwsAccount, error)
	addAccount   func(entity.AwsAccountCreateParams) (*entity.AwsAccount, error)
	updAccount   func(string, entity.AwsAccountUpdateParams) (*entity.AwsAccount, error)
	delAccount   func(string) (string, error)
	costs        func(entity.CostRequest) (*entity.CostSummary, error)
	serviceCosts func(entity.CostRequest) ([]entity.ServiceMonthlyCost, error)
	tagKeys      func(entity.CostRequest) ([]string, error)
	tagValues    func(entity.TagValuesRequest) ([]string, error)
	byTags       func(entity.TagCostRequest) (*entity.TagCostResult, error)
	byTagsMonth  func(entity.TagCostRequest) ([]entity.TagMonthlyCostRecord, error)
	budgets      func(entity.BudgetRequest) (*entity.BudgetResponse, error)
	updPassword  func(entity.UpdatePasswordParams) error
	user         func() (*entity.User, error)
	updUser      func(entity.UpdateUserParams) (*entity.User, error)
}

func (f *fakeAPI) record(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, name)
}

func (f *fakeAPI) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeAPI) GetAwsAccounts(context.Context) ([]entity.AwsAccount, error) {
	f.record("GetAwsAccounts")
	return f.accounts()
}

func (f *fakeAPI) AddAwsAccount(_ context.Context, p entity.AwsAccountCreateParams) (*entity.AwsAccount, error) {
	f.record("AddAwsAccount")
	return f.addAccount(p)
}

func (f *fakeAPI) UpdateAwsAccount(_ context.Context, id string, p entity.AwsAccountUpdateParams) (*entity.AwsAccount, error) {
	f.record("UpdateAwsAccount")
	return f.updAccount(id, p)
}

func (f *fakeAPI) DeleteAwsAccount(_ context.Context, id string) (string, error) {
	f.record("DeleteAwsAccount")
	return f.delAccount(id)
}

func (f *fakeAPI) GetAwsCosts(_ context.Context, r entity.CostRequest) (*entity.CostSummary, error) {
	f.record("GetAwsCosts")
	return f.costs(r)
}

func (f *fakeAPI) GetAwsServiceCosts(_ context.Context, r entity.CostRequest) ([]entity.ServiceMonthlyCost, error) {
	f.record("GetAwsServiceCosts")
	return f.serviceCosts(r)
}

func (f *fakeAPI) GetAvailableTags(_ context.Context, r entity.CostRequest) ([]string, error) {
	f.record("GetAvailableTags")
	return f.tagKeys(r)
}

func (f *fakeAPI) GetTagValues(_ context.Context, r entity.TagValuesRequest) ([]string, error) {
	f.record("GetTagValues")
	return f.tagValues(r)
}

func (f *fakeAPI) GetAwsCostsByTags(_ context.Context, r entity.TagCostRequest) (*entity.TagCostResult, error) {
	f.record("GetAwsCostsByTags")
	return f.byTags(r)
}

func (f *fakeAPI) GetAwsCostsByTagsMonthly(_ context.Context, r entity.TagCostRequest) ([]entity.TagMonthlyCostRecord, error) {
	f.record("GetAwsCostsByTagsMonthly")
	return f.byTagsMonth(r)
}

func (f *fakeAPI) GetBudgets(_ context.Context, r entity.BudgetRequest) (*entity.BudgetResponse, error) {
	f.record("GetBudgets")
	return f.budgets(r)
}

func (f *fakeAPI) UpdatePassword(_ context.Context, p entity.UpdatePasswordParams) error {
	f.record("UpdatePassword")
	return f.updPassword(p)
}

func (f *fakeAPI) GetUser(context.Context) (*entity.User, error) {
	f.record("GetUser")
	return f.user()
}

func (f *fakeAPI) UpdateUser(_ context.Context, p entity.UpdateUserParams) (*entity.User, error) {
	f.record("UpdateUser")
	return f.updUser(p)
}

var testAccounts = []entity.AwsAccount{
	{ID: "a1", Name: "prod", AccessKey: "AK1", SecretKey: "SK1"},
	{ID: "a2", Name: "dev", AccessKey: "AK2", SecretKey: "SK2"},
}

func listing(accounts []entity.AwsAccount, err error) func() ([]entity.AwsAccount, error) {
	return func() ([]entity.AwsAccount, error) { return accounts, err }
}
