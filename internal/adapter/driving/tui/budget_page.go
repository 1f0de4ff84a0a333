package tui

import (
	"context"
	"fmt"

	"github.com/rivo/tview"

	"github.com/diillson/aws-cost-console/internal/application/usecase"
	"github.com/diillson/aws-cost-console/internal/shared/types"
)

const budgetBarWidth = 24

type budgetPage struct {
	d *Dashboard

	status *tview.TextView
	table  *tview.Table
	layout *tview.Flex

	loader usecase.Loader[usecase.BudgetModel]
}

func newBudgetPage(d *Dashboard) *budgetPage {
	p := &budgetPage{d: d}
	p.status = tview.NewTextView().SetDynamicColors(true)
	p.status.SetBorder(true).SetTitle(" Budgets ")
	p.table = newTable("Budget Usage")
	p.layout = tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(p.status, 3, 0, false).
		AddItem(p.table, 0, 1, false)
	return p
}

func (p *budgetPage) name() string           { return "Budgets" }
func (p *budgetPage) root() tview.Primitive  { return p.layout }
func (p *budgetPage) focus() tview.Primitive { return p.table }

func (p *budgetPage) refresh() {
	acc, ok := p.d.selectedAccount()
	if !ok {
		p.loader.Cancel()
		return
	}
	p.status.SetText(colorMuted + "Loading..." + colorReset)
	view := p.d.uc.BudgetView()
	p.loader.Run(p.d.ctx,
		func(ctx context.Context) usecase.BudgetModel { return view.Fetch(ctx, acc) },
		func(m usecase.BudgetModel) { p.d.queue(func() { p.render(m) }) },
	)
}

func (p *budgetPage) render(m usecase.BudgetModel) {
	switch m.State {
	case usecase.StateError:
		p.status.SetText(colorCritical + tview.Escape(types.ErrorMessage(m.Err)) + colorReset)
	case usecase.StateEmpty:
		p.status.SetText(colorMuted + m.Message + colorReset)
	default:
		p.status.SetText(fmt.Sprintf("%sAccount%s %s    %sBudgets%s %d", colorHeader, colorReset, m.AccountID, colorHeader, colorReset, len(m.Cards)))
	}
	populateTable(p.table, TableData{Rows: budgetRows(m, budgetBarWidth)}, usecase.MsgNoBudgets)
}
