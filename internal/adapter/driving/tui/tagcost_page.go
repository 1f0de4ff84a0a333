package tui

import (
	"context"
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/diillson/aws-cost-console/internal/application/usecase"
	"github.com/diillson/aws-cost-console/internal/shared/types"
)

type tagsResult struct {
	catalog usecase.TagCatalog
	err     error
}

// tagCostPage descobre as tags da conta e mostra os custos filtrados pelas tags escolhidas.
type tagCostPage struct {
	d *Dashboard

	form    *tview.Form
	start   *tview.InputField
	end     *tview.InputField
	tags    *tview.InputField
	catalog *tview.TextView
	total   *tview.TextView
	chart   *tview.TextView
	table   *tview.Table
	layout  *tview.Flex

	tagsLoader usecase.Loader[tagsResult]
	costLoader usecase.Loader[usecase.TagCostModel]
}

func newTagCostPage(d *Dashboard) *tagCostPage {
	dates := usecase.DefaultTagCostDates(d.uc.Now())
	p := &tagCostPage{d: d}

	p.start = dateField("Start", dates.Start, p.refresh)
	p.end = dateField("End", dates.End, p.refresh)
	p.tags = tview.NewInputField().
		SetLabel("Tags").
		SetPlaceholder("Team=DevOps,Platform; Env").
		SetFieldWidth(40)
	p.tags.SetDoneFunc(func(key tcell.Key) {
		if key == tcell.KeyEnter {
			p.fetchCosts()
		}
	})

	p.form = tview.NewForm().SetHorizontal(true).
		AddFormItem(p.start).
		AddFormItem(p.end).
		AddFormItem(p.tags).
		AddButton("Apply", p.fetchCosts).
		AddButton("Discover tags", p.discoverTags)

	p.catalog = tview.NewTextView().SetDynamicColors(true).SetScrollable(true)
	p.catalog.SetBorder(true).SetTitle(" Available Tags ")
	p.total = tview.NewTextView().SetDynamicColors(true)
	p.total.SetBorder(true).SetTitle(" Total ")
	p.chart = tview.NewTextView().SetDynamicColors(true)
	p.chart.SetBorder(true).SetTitle(" Monthly Cost by Service ")
	p.table = newTable("Cost by Service")

	right := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(p.total, 3, 0, false).
		AddItem(p.table, 0, 1, false).
		AddItem(p.chart, 0, 1, false)
	body := tview.NewFlex().
		AddItem(p.catalog, 0, 1, false).
		AddItem(right, 0, 2, false)

	p.layout = tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(p.form, 3, 0, false).
		AddItem(body, 0, 1, false)
	return p
}

func (p *tagCostPage) name() string           { return "Tag Costs" }
func (p *tagCostPage) root() tview.Primitive  { return p.layout }
func (p *tagCostPage) focus() tview.Primitive { return p.form }

func (p *tagCostPage) dates() usecase.DateRange {
	return usecase.DateRange{Start: p.start.GetText(), End: p.end.GetText()}
}

func (p *tagCostPage) refresh() {
	p.discoverTags()
	p.fetchCosts()
}

func (p *tagCostPage) discoverTags() {
	acc, ok := p.d.selectedAccount()
	if !ok {
		p.tagsLoader.Cancel()
		return
	}
	dates := p.dates()
	if err := dates.Validate(); err != nil {
		p.d.flashError(err)
		return
	}

	p.catalog.SetText(colorMuted + "Discovering tags..." + colorReset)
	view := p.d.uc.TagCostView()
	p.tagsLoader.Run(p.d.ctx,
		func(ctx context.Context) tagsResult {
			catalog, err := view.LoadTags(ctx, acc, dates)
			return tagsResult{catalog: catalog, err: err}
		},
		func(r tagsResult) { p.d.queue(func() { p.renderCatalog(r) }) },
	)
}

func (p *tagCostPage) renderCatalog(r tagsResult) {
	if r.err != nil {
		p.catalog.SetText(colorCritical + tview.Escape(types.ErrorMessage(r.err)) + colorReset)
		return
	}
	p.catalog.SetText(catalogText(r.catalog))
}

func (p *tagCostPage) fetchCosts() {
	acc, ok := p.d.selectedAccount()
	if !ok {
		p.costLoader.Cancel()
		return
	}
	keys, values, err := parseTagInput(p.tags.GetText())
	if err != nil {
		p.d.flashError(err)
		return
	}
	deps := usecase.TagCostDeps{
		Account:        acc,
		Dates:          p.dates(),
		SelectedKeys:   keys,
		SelectedValues: values,
	}

	p.total.SetText(colorMuted + "Loading..." + colorReset)
	view := p.d.uc.TagCostView()
	p.costLoader.Run(p.d.ctx,
		func(ctx context.Context) usecase.TagCostModel { return view.Fetch(ctx, deps) },
		func(m usecase.TagCostModel) { p.d.queue(func() { p.render(m) }) },
	)
}

func (p *tagCostPage) render(m usecase.TagCostModel) {
	switch m.State {
	case usecase.StateError:
		p.total.SetText(colorCritical + tview.Escape(types.ErrorMessage(m.Err)) + colorReset)
	case usecase.StateEmpty:
		p.total.SetText(colorMuted + m.Message + colorReset)
	default:
		p.total.SetText(fmt.Sprintf("%sTotal Cost%s %s", colorHeader, colorReset, money(m.Total)))
	}
	populateTable(p.table, TableData{Rows: tagCostRows(m)}, usecase.MsgNoTagData)
	p.chart.SetText(chartText(m.Chart, 40))
}
