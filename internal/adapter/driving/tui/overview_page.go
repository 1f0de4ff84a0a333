package tui

import (
	"context"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/diillson/aws-cost-console/internal/application/usecase"
	"github.com/diillson/aws-cost-console/internal/domain/entity"
	"github.com/diillson/aws-cost-console/internal/shared/types"
)

// overviewPage mostra o resumo e o custo mensal por serviço. Mudar a região ou as datas
// dispara uma nova busca.
type overviewPage struct {
	d *Dashboard

	form    *tview.Form
	region  string
	start   *tview.InputField
	end     *tview.InputField
	summary *tview.TextView
	chart   *tview.TextView
	table   *tview.Table
	layout  *tview.Flex

	loader usecase.Loader[usecase.OverviewModel]
}

func newOverviewPage(d *Dashboard) *overviewPage {
	defaults := usecase.DefaultOverviewDeps(nil, d.uc.Now())
	p := &overviewPage{d: d, region: defaults.Region}
	if types.IsKnownRegion(d.cfg.Region) {
		p.region = d.cfg.Region
	}

	regionIdx := 0
	for i, r := range types.Regions {
		if r == p.region {
			regionIdx = i
		}
	}

	p.start = dateField("Start", defaults.Dates.Start, p.refresh)
	p.end = dateField("End", defaults.Dates.End, p.refresh)
	p.form = tview.NewForm().SetHorizontal(true).
		AddDropDown("Region", types.Regions, regionIdx, func(option string, _ int) {
			if option == p.region {
				return
			}
			p.region = option
			p.refresh()
		}).
		AddFormItem(p.start).
		AddFormItem(p.end).
		AddButton("Apply", p.refresh)

	p.summary = tview.NewTextView().SetDynamicColors(true)
	p.summary.SetBorder(true).SetTitle(" Summary ")
	p.chart = tview.NewTextView().SetDynamicColors(true)
	p.chart.SetBorder(true).SetTitle(" Monthly Cost by Service ")
	p.table = newTable("Monthly Cost by Service")

	p.layout = tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(p.form, 3, 0, false).
		AddItem(p.summary, 3, 0, false).
		AddItem(p.chart, 0, 1, false).
		AddItem(p.table, 0, 1, false)
	return p
}

func (p *overviewPage) name() string           { return "Overview" }
func (p *overviewPage) root() tview.Primitive  { return p.layout }
func (p *overviewPage) focus() tview.Primitive { return p.form }

func (p *overviewPage) deps(acc *entity.AwsAccount) usecase.OverviewDeps {
	return usecase.OverviewDeps{
		Account: acc,
		Dates:   usecase.DateRange{Start: p.start.GetText(), End: p.end.GetText()},
		Region:  p.region,
	}
}

func (p *overviewPage) refresh() {
	acc, ok := p.d.selectedAccount()
	if !ok {
		p.loader.Cancel()
		return
	}
	deps := p.deps(acc)

	p.summary.SetText(colorMuted + "Loading..." + colorReset)
	view := p.d.uc.OverviewView()
	p.loader.Run(p.d.ctx,
		func(ctx context.Context) usecase.OverviewModel { return view.Fetch(ctx, deps) },
		func(m usecase.OverviewModel) { p.d.queue(func() { p.render(m) }) },
	)
}

func (p *overviewPage) render(m usecase.OverviewModel) {
	if m.State == usecase.StateError {
		p.summary.SetText(colorCritical + tview.Escape(types.ErrorMessage(m.Err)) + colorReset)
		p.chart.Clear()
		populateTable(p.table, TableData{}, usecase.MsgNoServiceData)
		return
	}

	p.summary.SetText(summaryText(m.Summary))
	if m.Chart == nil {
		p.chart.SetText(colorMuted + m.ChartMessage + colorReset)
	} else {
		p.chart.SetText(chartText(m.Chart, 50))
	}
	populateTable(p.table, TableData{Rows: monthlyRows(m.Chart)}, usecase.MsgNoServiceData)
}

// dateField is a YYYY-MM-DD input that calls done when Enter is pressed.
func dateField(label, value string, done func()) *tview.InputField {
	field := tview.NewInputField().
		SetLabel(label).
		SetText(value).
		SetFieldWidth(11).
		SetAcceptanceFunc(func(text string, last rune) bool {
			return len(text) <= len(usecase.DateLayout) && (last == '-' || (last >= '0' && last <= '9'))
		})
	field.SetDoneFunc(func(key tcell.Key) {
		if key == tcell.KeyEnter {
			done()
		}
	})
	return field
}
