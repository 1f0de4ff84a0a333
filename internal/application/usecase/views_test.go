package usecase

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diillson/aws-cost-console/internal/domain/entity"
	"github.com/diillson/aws-cost-console/internal/shared/types"
)

var (
	prod  = &testAccounts[0]
	dates = DateRange{Start: "2024-01-01", End: "2024-06-30"}
)

func TestLastDays(t *testing.T) {
	now := time.Date(2024, 7, 1, 15, 0, 0, 0, time.UTC)
	assert.Equal(t, DateRange{Start: "2024-01-03", End: "2024-07-01"}, LastDays(now, 180))
	assert.Equal(t, DateRange{Start: "2024-06-01", End: "2024-07-01"}, DefaultTagCostDates(now))

	deps := DefaultOverviewDeps(prod, now)
	assert.Equal(t, "us-east-1", deps.Region)
}

func TestDateRange_Validate(t *testing.T) {
	assert.NoError(t, dates.Validate())
	assert.Error(t, DateRange{Start: "01/01/2024", End: "2024-06-30"}.Validate())
	assert.Error(t, DateRange{Start: "2024-07-01", End: "2024-06-30"}.Validate())
}

func TestOverviewView_Fetch(t *testing.T) {
	var seen []entity.CostRequest
	api := &fakeAPI{
		costs: func(r entity.CostRequest) (*entity.CostSummary, error) {
			seen = append(seen, r)
			return &entity.CostSummary{TotalCost: 100, AverageCost: 10, UniqueServices: 3}, nil
		},
		serviceCosts: func(r entity.CostRequest) ([]entity.ServiceMonthlyCost, error) {
			seen = append(seen, r)
			return []entity.ServiceMonthlyCost{
				{Month: "2024-01", Services: []entity.ServiceAmount{{Service: "EC2", Cost: 60}}},
			}, nil
		},
	}

	model := NewOverviewView(api).Fetch(context.Background(), OverviewDeps{Account: prod, Dates: dates, Region: "eu-west-1"})

	assert.Equal(t, StateData, model.State)
	assert.Equal(t, []string{"GetAwsCosts", "GetAwsServiceCosts"}, api.Calls())
	require.NotNil(t, model.Chart)
	assert.Equal(t, []string{"2024-01"}, model.Chart.Labels)
	assert.Empty(t, model.ChartMessage)

	want := entity.CostRequest{AccessKey: "AK1", SecretKey: "SK1", Start: "2024-01-01", End: "2024-06-30", Region: "eu-west-1"}
	assert.Equal(t, []entity.CostRequest{want, want}, seen)
}

func TestOverviewView_EmptyServiceData(t *testing.T) {
	api := &fakeAPI{
		costs: func(entity.CostRequest) (*entity.CostSummary, error) {
			return &entity.CostSummary{TotalCost: 1}, nil
		},
		serviceCosts: func(entity.CostRequest) ([]entity.ServiceMonthlyCost, error) { return nil, nil },
	}

	model := NewOverviewView(api).Fetch(context.Background(), OverviewDeps{Account: prod, Dates: dates})

	assert.Equal(t, StateData, model.State)
	assert.NoError(t, model.Err)
	assert.Nil(t, model.Chart)
	assert.Equal(t, MsgNoServiceData, model.ChartMessage)
}

func TestOverviewView_NoData(t *testing.T) {
	api := &fakeAPI{
		costs:        func(entity.CostRequest) (*entity.CostSummary, error) { return nil, nil },
		serviceCosts: func(entity.CostRequest) ([]entity.ServiceMonthlyCost, error) { return nil, nil },
	}

	model := NewOverviewView(api).Fetch(context.Background(), OverviewDeps{Account: prod, Dates: dates})
	assert.Equal(t, StateEmpty, model.State)
	assert.Equal(t, MsgNoData, model.SummaryMessage)
}

func TestOverviewView_Error(t *testing.T) {
	apiErr := types.NewAPIError(500, "Failed to fetch AWS costs")
	api := &fakeAPI{
		costs:        func(entity.CostRequest) (*entity.CostSummary, error) { return nil, apiErr },
		serviceCosts: func(entity.CostRequest) ([]entity.ServiceMonthlyCost, error) { return nil, nil },
	}

	model := NewOverviewView(api).Fetch(context.Background(), OverviewDeps{Account: prod, Dates: dates})
	assert.Equal(t, StateError, model.State)
	assert.Equal(t, "Failed to fetch AWS costs", types.ErrorMessage(model.Err))
	assert.Equal(t, []string{"GetAwsCosts", "GetAwsServiceCosts"}, api.Calls())

	model = NewOverviewView(api).Fetch(context.Background(), OverviewDeps{Dates: dates})
	assert.ErrorIs(t, model.Err, types.ErrNoAccountSelected)
}

func TestTagCostView_LoadTags(t *testing.T) {
	var mu sync.Mutex
	var regions []string
	api := &fakeAPI{
		tagKeys: func(r entity.CostRequest) ([]string, error) {
			return []string{"Environment", "Team"}, nil
		},
		tagValues: func(r entity.TagValuesRequest) ([]string, error) {
			mu.Lock()
			regions = append(regions, r.Region)
			mu.Unlock()
			if r.TagKey == "Environment" {
				return []string{"dev", "prod"}, nil
			}
			return nil, nil
		},
	}

	catalog, err := NewTagCostView(api).LoadTags(context.Background(), prod, dates)
	require.NoError(t, err)

	assert.Equal(t, []string{"Environment", "Team"}, catalog.Keys)
	assert.Equal(t, map[string][]string{"Environment": {"dev", "prod"}, "Team": {}}, catalog.Values)
	assert.Equal(t, []string{"us-east-1", "us-east-1"}, regions)

	calls := api.Calls()
	sort.Strings(calls)
	assert.Equal(t, []string{"GetAvailableTags", "GetTagValues", "GetTagValues"}, calls)
}

func TestTagCostView_LoadTagsFailure(t *testing.T) {
	api := &fakeAPI{
		tagKeys: func(entity.CostRequest) ([]string, error) { return []string{"a", "b"}, nil },
		tagValues: func(r entity.TagValuesRequest) ([]string, error) {
			if r.TagKey == "b" {
				return nil, types.NewAPIError(500, "Failed to fetch tag values")
			}
			return []string{"x"}, nil
		},
	}

	catalog, err := NewTagCostView(api).LoadTags(context.Background(), prod, dates)
	assert.EqualError(t, err, "Failed to fetch tag values")
	assert.Empty(t, catalog.Keys)
	assert.Empty(t, catalog.Values)
}

func TestTagCostView_NoKeys(t *testing.T) {
	api := &fakeAPI{tagKeys: func(entity.CostRequest) ([]string, error) { return nil, nil }}

	catalog, err := NewTagCostView(api).LoadTags(context.Background(), prod, dates)
	require.NoError(t, err)
	assert.Empty(t, catalog.Keys)
	assert.NotNil(t, catalog.Values)
}

func TestTagCostView_FetchRequiresSelectedKey(t *testing.T) {
	api := &fakeAPI{}
	model := NewTagCostView(api).Fetch(context.Background(), TagCostDeps{Account: prod, Dates: dates})

	assert.Equal(t, StateEmpty, model.State)
	assert.Empty(t, api.Calls())
}

func TestTagCostView_Fetch(t *testing.T) {
	var sent entity.TagFilters
	api := &fakeAPI{
		byTags: func(r entity.TagCostRequest) (*entity.TagCostResult, error) {
			sent = r.TagFilters
			return &entity.TagCostResult{
				TotalCost:   15,
				ServiceData: []entity.ServiceCostPair{{Service: "EC2", Cost: 10}, {Service: "S3", Cost: 5}},
			}, nil
		},
		byTagsMonth: func(entity.TagCostRequest) ([]entity.TagMonthlyCostRecord, error) {
			return []entity.TagMonthlyCostRecord{
				{Month: "Jan", Service: "EC2", Cost: 4},
				{Month: "Feb", Service: "EC2", Cost: 6},
				{Month: "Jan", Service: "S3", Cost: 5},
			}, nil
		},
	}

	model := NewTagCostView(api).Fetch(context.Background(), TagCostDeps{
		Account:        prod,
		Dates:          dates,
		SelectedKeys:   []string{"Environment", "Team"},
		SelectedValues: map[string][]string{"Environment": {"prod"}, "Team": {}},
	})

	assert.Equal(t, StateData, model.State)
	assert.Equal(t, entity.TagFilters{"Environment": {"prod"}}, sent)
	assert.Equal(t, 15.0, model.Total)
	assert.Equal(t, []string{"GetAwsCostsByTags", "GetAwsCostsByTagsMonthly"}, api.Calls())

	want := []entity.ServiceMonthlyCost{
		{Month: "Jan", Services: []entity.ServiceAmount{{Service: "EC2", Cost: 4}, {Service: "S3", Cost: 5}}},
		{Month: "Feb", Services: []entity.ServiceAmount{{Service: "EC2", Cost: 6}}},
	}
	if diff := cmp.Diff(want, model.Rows); diff != "" {
		t.Errorf("rows mismatch (-want +got):\n%s", diff)
	}
}

func TestTagCostView_MalformedShapeIsEmpty(t *testing.T) {
	api := &fakeAPI{
		byTags: func(entity.TagCostRequest) (*entity.TagCostResult, error) {
			return &entity.TagCostResult{TotalCost: 3}, nil
		},
		byTagsMonth: func(entity.TagCostRequest) ([]entity.TagMonthlyCostRecord, error) {
			return []entity.TagMonthlyCostRecord{{Month: "Jan", Service: "EC2", Cost: 3}}, nil
		},
	}

	model := NewTagCostView(api).Fetch(context.Background(), TagCostDeps{
		Account: prod, Dates: dates, SelectedKeys: []string{"Environment"},
	})
	assert.Equal(t, StateEmpty, model.State)
	assert.Equal(t, MsgNoTagData, model.Message)
	assert.Nil(t, model.Rows)
	assert.NoError(t, model.Err)
}

func TestTagCostView_Error(t *testing.T) {
	api := &fakeAPI{
		byTags: func(entity.TagCostRequest) (*entity.TagCostResult, error) {
			return nil, types.NewAPIError(400, "Failed to fetch tag-based costs")
		},
		byTagsMonth: func(entity.TagCostRequest) ([]entity.TagMonthlyCostRecord, error) { return nil, nil },
	}

	model := NewTagCostView(api).Fetch(context.Background(), TagCostDeps{
		Account: prod, Dates: dates, SelectedKeys: []string{"Environment"},
	})
	assert.Equal(t, StateError, model.State)
	assert.EqualError(t, model.Err, "Failed to fetch tag-based costs")
}

func TestBudgetView_Fetch(t *testing.T) {
	var region string
	api := &fakeAPI{
		budgets: func(r entity.BudgetRequest) (*entity.BudgetResponse, error) {
			region = r.Region
			return &entity.BudgetResponse{
				AccountID: "123",
				Budgets: []entity.BudgetRecord{
					{Name: "Monthly", Budget: "$100.00", AmountUsed: "$50.00"},
					{Name: "Infra", Budget: "$1,000.00", AmountUsed: "$950.00"},
				},
			}, nil
		},
	}

	model := NewBudgetView(api).Fetch(context.Background(), prod)

	assert.Equal(t, "us-east-1", region)
	assert.Equal(t, StateData, model.State)
	require.Len(t, model.Cards, 2)
	assert.Equal(t, "Used: $50.00 / $100.00", model.Cards[0].Caption())
	assert.Equal(t, "50.0%", model.Cards[0].PercentLabel())
	assert.Equal(t, types.UsageCritical, model.Cards[1].Level)

	bars := UsageBars(model.Cards)
	assert.Equal(t, types.UsageBar{Label: "Monthly", Caption: "Used: $50.00 / $100.00", Percent: 50, Level: types.UsageNormal}, bars[0])
}

func TestBudgetView_EmptyAndError(t *testing.T) {
	api := &fakeAPI{budgets: func(entity.BudgetRequest) (*entity.BudgetResponse, error) {
		return &entity.BudgetResponse{AccountID: "123"}, nil
	}}
	model := NewBudgetView(api).Fetch(context.Background(), prod)
	assert.Equal(t, StateEmpty, model.State)
	assert.Equal(t, MsgNoBudgets, model.Message)

	api.budgets = func(entity.BudgetRequest) (*entity.BudgetResponse, error) {
		return nil, types.NewAPIError(0, "Something went wrong while fetching budgets")
	}
	model = NewBudgetView(api).Fetch(context.Background(), prod)
	assert.Equal(t, StateError, model.State)
	assert.Equal(t, "Something went wrong while fetching budgets", types.ErrorMessage(model.Err))
}

func TestSettingsView_AccountValidation(t *testing.T) {
	api := &fakeAPI{}
	view := NewSettingsView(api)

	_, err := view.AddAccount(context.Background(), entity.AwsAccountCreateParams{Name: "prod", AccessKey: "AK"})
	assert.EqualError(t, err, MsgAllFieldsRequired)
	assert.Empty(t, api.Calls())

	_, err = view.UpdateAccount(context.Background(), "a1", entity.AwsAccountCreateParams{})
	assert.EqualError(t, err, MsgAllFieldsRequired)
}

func TestSettingsView_RelistAfterMutation(t *testing.T) {
	api := &fakeAPI{
		accounts: listing(testAccounts, nil),
		addAccount: func(p entity.AwsAccountCreateParams) (*entity.AwsAccount, error) {
			return &entity.AwsAccount{ID: "a3", Name: p.Name}, nil
		},
		updAccount: func(id string, p entity.AwsAccountUpdateParams) (*entity.AwsAccount, error) {
			assert.Equal(t, "a2", id)
			require.NotNil(t, p.SecretKey)
			assert.Equal(t, "new-secret", *p.SecretKey)
			return &entity.AwsAccount{ID: id}, nil
		},
		delAccount: func(id string) (string, error) { return id, nil },
	}
	view := NewSettingsView(api)
	ctx := context.Background()

	res, err := view.AddAccount(ctx, entity.AwsAccountCreateParams{Name: "qa", AccessKey: "AK", SecretKey: "SK"})
	require.NoError(t, err)
	assert.Equal(t, MsgAccountAdded, res.Message)
	assert.Len(t, res.Accounts, 2)

	res, err = view.UpdateAccount(ctx, "a2", entity.AwsAccountCreateParams{Name: "dev", AccessKey: "AK2", SecretKey: "new-secret"})
	require.NoError(t, err)
	assert.Equal(t, MsgAccountUpdated, res.Message)

	res, err = view.DeleteAccount(ctx, "a2")
	require.NoError(t, err)
	assert.Equal(t, MsgAccountDeleted, res.Message)

	assert.Equal(t, []string{
		"AddAwsAccount", "GetAwsAccounts",
		"UpdateAwsAccount", "GetAwsAccounts",
		"DeleteAwsAccount", "GetAwsAccounts",
	}, api.Calls())
}

func TestSettingsView_MutationErrorSkipsRelist(t *testing.T) {
	api := &fakeAPI{
		delAccount: func(string) (string, error) { return "", types.ErrNotAuthenticated },
	}

	_, err := NewSettingsView(api).DeleteAccount(context.Background(), "a1")
	assert.ErrorIs(t, err, types.ErrNotAuthenticated)
	assert.Equal(t, []string{"DeleteAwsAccount"}, api.Calls())
}

func TestSettingsView_PasswordRules(t *testing.T) {
	api := &fakeAPI{updPassword: func(entity.UpdatePasswordParams) error { return nil }}
	view := NewSettingsView(api)
	ctx := context.Background()

	_, err := view.UpdatePassword(ctx, entity.UpdatePasswordParams{Password: "short", ConfirmPassword: "other"})
	assert.EqualError(t, err, MsgPasswordTooShort)

	_, err = view.UpdatePassword(ctx, entity.UpdatePasswordParams{Password: "long-enough", ConfirmPassword: "long-enougH"})
	assert.EqualError(t, err, MsgPasswordMismatch)
	assert.Empty(t, api.Calls())

	msg, err := view.UpdatePassword(ctx, entity.UpdatePasswordParams{Password: "long-enough", ConfirmPassword: "long-enough"})
	require.NoError(t, err)
	assert.Equal(t, MsgPasswordUpdated, msg)
	assert.Equal(t, []string{"UpdatePassword"}, api.Calls())
}

func TestUserView(t *testing.T) {
	api := &fakeAPI{
		user: func() (*entity.User, error) { return &entity.User{FirstName: "Ana"}, nil },
		updUser: func(p entity.UpdateUserParams) (*entity.User, error) {
			return &entity.User{FirstName: *p.FirstName}, nil
		},
	}
	view := NewUserView(api)

	user, err := view.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Ana", user.FirstName)

	name := "Bea"
	user, err = view.Update(context.Background(), entity.UpdateUserParams{FirstName: &name})
	require.NoError(t, err)
	assert.Equal(t, "Bea", user.FirstName)

	err = view.SignUp(context.Background(), entity.SignUpParams{FirstName: "A", LastName: "B", Email: "not-an-email", Password: "x"})
	var verr *types.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Message, "not a valid email")
}
