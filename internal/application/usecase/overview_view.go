package usecase

import (
	"context"
	"time"

	"github.com/diillson/aws-cost-console/internal/domain/entity"
	"github.com/diillson/aws-cost-console/internal/domain/repository"
	"github.com/diillson/aws-cost-console/internal/shared/types"
)

const overviewDays = 180

// OverviewDeps são as entradas que disparam uma nova busca da visão geral.
type OverviewDeps struct {
	Account *entity.AwsAccount
	Dates   DateRange
	Region  string
}

// OverviewModel is what the overview renders.
type OverviewModel struct {
	State   ViewState
	Summary *entity.CostSummary
	Rows    []entity.ServiceMonthlyCost
	Chart   *types.ServiceChart
	// SummaryMessage and ChartMessage are set when the matching section has nothing to show.
	SummaryMessage string
	ChartMessage   string
	Err            error
}

type OverviewView struct {
	api repository.DashboardAPI
}

func NewOverviewView(api repository.DashboardAPI) *OverviewView {
	return &OverviewView{api: api}
}

// DefaultOverviewDeps returns the last 180 days in the default region.
func DefaultOverviewDeps(acc *entity.AwsAccount, now time.Time) OverviewDeps {
	return OverviewDeps{Account: acc, Dates: LastDays(now, overviewDays), Region: types.DefaultRegion}
}

// Fetch asks for the cost summary and then the monthly service costs. Both requests are
// issued even when the first fails; the first error is kept.
func (v *OverviewView) Fetch(ctx context.Context, deps OverviewDeps) OverviewModel {
	if deps.Account == nil {
		return OverviewModel{State: StateError, Err: types.ErrNoAccountSelected}
	}
	if err := deps.Dates.Validate(); err != nil {
		return OverviewModel{State: StateError, Err: err}
	}
	region := deps.Region
	if region == "" {
		region = types.DefaultRegion
	}
	req := costRequest(deps.Account, deps.Dates, region)

	var model OverviewModel

	summary, costErr := v.api.GetAwsCosts(ctx, req)
	if ctx.Err() != nil {
		return OverviewModel{State: StateError, Err: ctx.Err()}
	}
	rows, rowsErr := v.api.GetAwsServiceCosts(ctx, req)

	model.Summary = summary
	if summary == nil {
		model.SummaryMessage = MsgNoData
	}
	model.Rows = rows
	model.Chart = BuildServiceChart(rows)
	if model.Chart == nil {
		model.ChartMessage = MsgNoServiceData
	}

	switch {
	case costErr != nil:
		model.Err = costErr
	case rowsErr != nil:
		model.Err = rowsErr
	}

	switch {
	case model.Err != nil:
		model.State = StateError
	case summary == nil && model.Chart == nil:
		model.State = StateEmpty
	default:
		model.State = StateData
	}
	return model
}
