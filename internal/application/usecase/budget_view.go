package usecase

import (
	"context"
	"fmt"

	"github.com/diillson/aws-cost-console/internal/domain/entity"
	"github.com/diillson/aws-cost-console/internal/domain/repository"
	"github.com/diillson/aws-cost-console/internal/shared/types"
)

// BudgetCard is the usage summary of one budget.
type BudgetCard struct {
	Name    string
	Used    float64
	Total   float64
	Percent float64
	Level   types.UsageLevel
}

// Caption returns the "Used: $X / $Y" line shown under the bar.
func (c BudgetCard) Caption() string {
	return fmt.Sprintf("Used: $%.2f / $%.2f", c.Used, c.Total)
}

// PercentLabel returns the percentage with one decimal.
func (c BudgetCard) PercentLabel() string {
	return fmt.Sprintf("%.1f%%", c.Percent)
}

// BudgetModel is what the budget view renders.
type BudgetModel struct {
	State     ViewState
	AccountID string
	Records   []entity.BudgetRecord
	Cards     []BudgetCard
	Message   string
	Err       error
}

type BudgetView struct {
	api repository.DashboardAPI
}

func NewBudgetView(api repository.DashboardAPI) *BudgetView {
	return &BudgetView{api: api}
}

// Fetch asks for the budgets of the account in the default region.
func (v *BudgetView) Fetch(ctx context.Context, acc *entity.AwsAccount) BudgetModel {
	if acc == nil {
		return BudgetModel{State: StateError, Err: types.ErrNoAccountSelected}
	}

	resp, err := v.api.GetBudgets(ctx, entity.BudgetRequest{
		AccessKey: acc.AccessKey,
		SecretKey: acc.SecretKey,
		Region:    types.DefaultRegion,
	})
	if err != nil {
		return BudgetModel{State: StateError, Err: err}
	}
	if resp == nil || len(resp.Budgets) == 0 {
		model := BudgetModel{State: StateEmpty, Message: MsgNoBudgets}
		if resp != nil {
			model.AccountID = resp.AccountID
		}
		return model
	}

	cards := make([]BudgetCard, len(resp.Budgets))
	for i, rec := range resp.Budgets {
		cards[i] = BudgetUsage(rec)
	}
	return BudgetModel{
		State:     StateData,
		AccountID: resp.AccountID,
		Records:   resp.Budgets,
		Cards:     cards,
	}
}

// UsageBars converts cards into console bars.
func UsageBars(cards []BudgetCard) []types.UsageBar {
	bars := make([]types.UsageBar, len(cards))
	for i, c := range cards {
		bars[i] = types.UsageBar{
			Label:   c.Name,
			Caption: c.Caption(),
			Percent: c.Percent,
			Level:   c.Level,
		}
	}
	return bars
}
