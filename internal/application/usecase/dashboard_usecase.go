package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/diillson/aws-cost-console/internal/domain/entity"
	"github.com/diillson/aws-cost-console/internal/domain/repository"
	"github.com/diillson/aws-cost-console/internal/shared/types"
)

// DashboardUseCase renders the cost views and the account/session commands to the console.
type DashboardUseCase struct {
	api         repository.DashboardAPI
	accounts    *AccountContext
	exportRepo  repository.ExportRepository
	credentials repository.CredentialRepository
	console     types.ConsoleInterface
	logger      *slog.Logger

	overview *OverviewView
	tagCost  *TagCostView
	budgets  *BudgetView
	settings *SettingsView
	user     *UserView

	now func() time.Time
}

// NewDashboardUseCase creates a new dashboard use case.
func NewDashboardUseCase(
	api repository.DashboardAPI,
	accounts *AccountContext,
	exportRepo repository.ExportRepository,
	credentials repository.CredentialRepository,
	console types.ConsoleInterface,
	logger *slog.Logger,
) *DashboardUseCase {
	if logger == nil {
		logger = slog.Default()
	}
	return &DashboardUseCase{
		api:         api,
		accounts:    accounts,
		exportRepo:  exportRepo,
		credentials: credentials,
		console:     console,
		logger:      logger.With("component", "dashboard"),
		overview:    NewOverviewView(api),
		tagCost:     NewTagCostView(api),
		budgets:     NewBudgetView(api),
		settings:    NewSettingsView(api),
		user:        NewUserView(api),
		now:         time.Now,
	}
}

// Accounts exposes the session's account context.
func (uc *DashboardUseCase) Accounts() *AccountContext { return uc.accounts }

func (uc *DashboardUseCase) OverviewView() *OverviewView { return uc.overview }
func (uc *DashboardUseCase) TagCostView() *TagCostView   { return uc.tagCost }
func (uc *DashboardUseCase) BudgetView() *BudgetView     { return uc.budgets }
func (uc *DashboardUseCase) SettingsView() *SettingsView { return uc.settings }
func (uc *DashboardUseCase) UserView() *UserView         { return uc.user }

// Now returns the use case clock.
func (uc *DashboardUseCase) Now() time.Time { return uc.now() }

// ResolveAccount loads the account context and returns the account to work with.
// A non-empty idOrName overrides the default selection.
func (uc *DashboardUseCase) ResolveAccount(ctx context.Context, idOrName string) (*entity.AwsAccount, error) {
	if err := uc.accounts.Load(ctx); err != nil {
		return nil, err
	}
	if idOrName != "" {
		if err := uc.accounts.Select(idOrName); err != nil {
			return nil, err
		}
	}
	return uc.accounts.RequireSelected()
}

// dateRange fills missing dates from the view's default window.
func dateRange(args *types.ViewArgs, defaults DateRange) DateRange {
	dr := defaults
	if args.Start != "" {
		dr.Start = args.Start
	}
	if args.End != "" {
		dr.End = args.End
	}
	return dr
}

// RunOverview exibe o resumo de custos e o gráfico mensal por serviço.
func (uc *DashboardUseCase) RunOverview(ctx context.Context, acc *entity.AwsAccount, args *types.ViewArgs) error {
	deps := DefaultOverviewDeps(acc, uc.now())
	deps.Dates = dateRange(args, deps.Dates)
	if args.Region != "" {
		deps.Region = args.Region
	}

	status := uc.console.Status(fmt.Sprintf("Fetching costs for %s (%s to %s, %s)...", acc.Name, deps.Dates.Start, deps.Dates.End, deps.Region))
	model := uc.overview.Fetch(ctx, deps)
	status.Stop()

	if model.State == StateError {
		return model.Err
	}
	uc.RenderOverview(acc, deps, model)
	return nil
}

// RenderOverview prints an overview model.
func (uc *DashboardUseCase) RenderOverview(acc *entity.AwsAccount, deps OverviewDeps, model OverviewModel) {
	uc.console.LogInfo("Account %s, %s to %s, region %s", acc.Name, deps.Dates.Start, deps.Dates.End, deps.Region)

	if model.Summary != nil {
		uc.console.DisplaySummaryCards(SummaryCards(model.Summary))
	} else {
		uc.console.LogWarning(model.SummaryMessage)
	}

	if model.Chart == nil {
		uc.console.LogWarning(model.ChartMessage)
		return
	}
	uc.console.DisplayStackedBars("Monthly Cost by Service", model.Chart)
	uc.console.Print(uc.monthlyTable(model.Chart).Render())
}

// SummaryCards formats the overview cards.
func SummaryCards(s *entity.CostSummary) []types.SummaryCard {
	return []types.SummaryCard{
		{Title: "Total Cost", Value: fmt.Sprintf("$%.2f", s.TotalCost)},
		{Title: "Avg Daily Cost", Value: fmt.Sprintf("$%.2f", s.AverageCost)},
		{Title: "Unique Services", Value: fmt.Sprintf("%d", s.UniqueServices)},
	}
}

// monthlyTable lays out a chart as one row per service and one column per month.
func (uc *DashboardUseCase) monthlyTable(chart *types.ServiceChart) types.TableInterface {
	table := uc.console.CreateTable()
	table.AddColumn("Service")
	for _, label := range chart.Labels {
		table.AddColumn(label)
	}
	for _, ds := range chart.Datasets {
		cells := make([]interface{}, 0, len(ds.Data)+1)
		cells = append(cells, ds.Label)
		for _, v := range ds.Data {
			cells = append(cells, fmt.Sprintf("$%.2f", v))
		}
		table.AddRow(cells...)
	}
	return table
}

// RunTags lists the tag keys of the account and the values of each key.
func (uc *DashboardUseCase) RunTags(ctx context.Context, acc *entity.AwsAccount, args *types.ViewArgs) error {
	dates := dateRange(args, DefaultTagCostDates(uc.now()))

	status := uc.console.Status("Discovering tags...")
	catalog, err := uc.tagCost.LoadTags(ctx, acc, dates)
	status.Stop()
	if err != nil {
		return err
	}

	if len(catalog.Keys) == 0 {
		uc.console.LogWarning("No tags found for %s between %s and %s.", acc.Name, dates.Start, dates.End)
		return nil
	}

	table := uc.console.CreateTable()
	table.AddColumn("Tag Key")
	table.AddColumn("Values")
	for _, key := range catalog.Keys {
		values := catalog.Values[key]
		cell := strings.Join(values, ", ")
		if len(values) == 0 {
			cell = "-"
		}
		table.AddRow(key, cell)
	}
	uc.console.Print(table.Render())
	return nil
}

// ParseTagSelection reads "Key" or "Key=v1,v2" arguments into selected keys and values.
func ParseTagSelection(raw []string) ([]string, map[string][]string, error) {
	var keys []string
	values := map[string][]string{}
	for _, item := range raw {
		key, vals, hasValues := strings.Cut(item, "=")
		key = strings.TrimSpace(key)
		if key == "" {
			return nil, nil, types.NewValidationError("invalid tag filter %q: expected Key or Key=value1,value2", item)
		}
		if _, seen := values[key]; !seen {
			keys = append(keys, key)
			values[key] = []string{}
		}
		if !hasValues {
			continue
		}
		for _, v := range strings.Split(vals, ",") {
			if v = strings.TrimSpace(v); v != "" {
				values[key] = append(values[key], v)
			}
		}
	}
	return keys, values, nil
}

// RunTagCost mostra os custos filtrados por tags e exporta o relatório quando solicitado.
func (uc *DashboardUseCase) RunTagCost(ctx context.Context, acc *entity.AwsAccount, args *types.ViewArgs) error {
	keys, values, err := ParseTagSelection(args.TagFilters)
	if err != nil {
		return err
	}
	deps := TagCostDeps{
		Account:        acc,
		Dates:          dateRange(args, DefaultTagCostDates(uc.now())),
		SelectedKeys:   keys,
		SelectedValues: values,
	}

	status := uc.console.Status("Fetching tag-based costs...")
	model := uc.tagCost.Fetch(ctx, deps)
	status.Stop()

	if model.State == StateError {
		return model.Err
	}
	uc.RenderTagCost(deps, model)

	if model.State == StateData && args.ReportName != "" {
		uc.exportTagCost(NewTagCostReport(acc, deps.Dates, model, uc.now()), args)
	}
	return nil
}

// RenderTagCost prints a tag cost model.
func (uc *DashboardUseCase) RenderTagCost(deps TagCostDeps, model TagCostModel) {
	uc.console.LogInfo("Tags: %s", describeFilters(model.Filters))
	if model.State != StateData {
		uc.console.LogWarning(model.Message)
		return
	}

	uc.console.DisplaySummaryCards([]types.SummaryCard{
		{Title: "Total Cost", Value: fmt.Sprintf("$%.2f", model.Total)},
	})

	table := uc.console.CreateTable()
	table.AddColumn("Service")
	table.AddColumn("Cost (USD)")
	for _, s := range model.Services {
		table.AddRow(s.Service, fmt.Sprintf("$%.2f", s.Cost))
	}
	table.AddRow("Total", fmt.Sprintf("$%.2f", model.Total))
	uc.console.Print(table.Render())

	if model.Chart != nil {
		uc.console.DisplayStackedBars("Monthly Cost by Service", model.Chart)
	}
}

func describeFilters(filters entity.TagFilters) string {
	if len(filters) == 0 {
		return "None"
	}
	parts := make([]string, 0, len(filters))
	for _, k := range SortedFilterKeys(filters) {
		parts = append(parts, fmt.Sprintf("%s=%s", k, strings.Join(filters[k], ",")))
	}
	return strings.Join(parts, ", ")
}

// NewTagCostReport builds the exportable report of a tag cost model.
func NewTagCostReport(acc *entity.AwsAccount, dates DateRange, model TagCostModel, now time.Time) entity.TagCostReport {
	return entity.TagCostReport{
		AccountID:   acc.ID,
		AccountName: acc.Name,
		Start:       dates.Start,
		End:         dates.End,
		TagFilters:  model.Filters,
		Services:    model.Services,
		Total:       model.Total,
		GeneratedAt: now,
	}
}

// exportTagCost writes the report in every requested format. Failures are reported, not returned.
func (uc *DashboardUseCase) exportTagCost(report entity.TagCostReport, args *types.ViewArgs) {
	reportTypes := args.ReportType
	if len(reportTypes) == 0 {
		reportTypes = []string{"csv"}
	}

	for _, reportType := range reportTypes {
		var (
			path string
			err  error
		)
		switch strings.ToLower(reportType) {
		case "csv":
			path, err = uc.exportRepo.ExportTagCostToCSV(report, args.ReportName, args.Dir)
		case "json":
			path, err = uc.exportRepo.ExportTagCostToJSON(report, args.ReportName, args.Dir)
		case "pdf":
			path, err = uc.exportRepo.ExportTagCostToPDF(report, args.ReportName, args.Dir)
		default:
			uc.console.LogWarning("Unsupported report type: %s", reportType)
			continue
		}
		if err != nil {
			uc.console.LogError("Failed to export to %s: %s", strings.ToUpper(reportType), err)
			continue
		}
		uc.console.LogSuccess("Successfully exported to %s: %s", strings.ToUpper(reportType), path)
	}
}

// RunBudgets exibe o uso de cada orçamento da conta.
func (uc *DashboardUseCase) RunBudgets(ctx context.Context, acc *entity.AwsAccount) error {
	status := uc.console.Status("Fetching budgets...")
	model := uc.budgets.Fetch(ctx, acc)
	status.Stop()

	if model.State == StateError {
		return model.Err
	}
	uc.RenderBudgets(acc, model)
	return nil
}

// RenderBudgets prints a budget model.
func (uc *DashboardUseCase) RenderBudgets(acc *entity.AwsAccount, model BudgetModel) {
	if model.State == StateEmpty {
		uc.console.LogInfo(model.Message)
		return
	}

	title := fmt.Sprintf("Budgets of %s", acc.Name)
	if model.AccountID != "" {
		title = fmt.Sprintf("%s (%s)", title, model.AccountID)
	}
	uc.console.DisplayUsageBars(title, UsageBars(model.Cards))

	table := uc.console.CreateTable()
	for _, col := range []string{"Name", "Thresholds", "Budget", "Used", "Forecasted", "Current vs. Budgeted", "Forecasted vs. Budgeted"} {
		table.AddColumn(col)
	}
	for _, r := range model.Records {
		table.AddRow(r.Name, r.Thresholds, r.Budget, r.AmountUsed, r.ForecastedAmount, r.CurrentVsBudgeted, r.ForecastedVsBudgeted)
	}
	uc.console.Print(table.Render())
}
