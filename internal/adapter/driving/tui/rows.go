package tui

import (
	"fmt"
	"strings"

	"github.com/rivo/tview"

	"github.com/diillson/aws-cost-console/internal/application/usecase"
	"github.com/diillson/aws-cost-console/internal/domain/entity"
	"github.com/diillson/aws-cost-console/internal/shared/types"
)

func money(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}

// summaryText renders the overview cards on one line.
func summaryText(s *entity.CostSummary) string {
	if s == nil {
		return colorMuted + usecase.MsgNoData + colorReset
	}
	parts := make([]string, 0, 3)
	for _, card := range usecase.SummaryCards(s) {
		parts = append(parts, fmt.Sprintf("%s%s%s %s", colorHeader, card.Title, colorReset, card.Value))
	}
	return strings.Join(parts, "    ")
}

// monthlyRows lays out a chart as one row per service and one column per month.
func monthlyRows(chart *types.ServiceChart) [][]string {
	if chart == nil {
		return nil
	}
	header := append([]string{"Service"}, chart.Labels...)
	rows := [][]string{header}
	for _, ds := range chart.Datasets {
		row := []string{tview.Escape(ds.Label)}
		for _, v := range ds.Data {
			row = append(row, money(v))
		}
		rows = append(rows, row)
	}
	return rows
}

// tagCostRows lists each service and closes with the total.
func tagCostRows(model usecase.TagCostModel) [][]string {
	if model.State != usecase.StateData {
		return nil
	}
	rows := [][]string{{"Service", "Cost (USD)"}}
	for _, s := range model.Services {
		rows = append(rows, []string{tview.Escape(s.Service), money(s.Cost)})
	}
	return append(rows, []string{"Total", money(model.Total)})
}

// budgetRows puts the usage bar next to each budget record.
func budgetRows(model usecase.BudgetModel, barWidth int) [][]string {
	if model.State != usecase.StateData {
		return nil
	}
	rows := [][]string{{"Name", "Usage", "%", "Used / Budget", "Forecasted", "Thresholds"}}
	for i, card := range model.Cards {
		rec := model.Records[i]
		rows = append(rows, []string{
			tview.Escape(card.Name),
			usageBar(card.Percent, card.Level, barWidth),
			card.PercentLabel(),
			card.Caption(),
			tview.Escape(rec.ForecastedAmount),
			tview.Escape(rec.Thresholds),
		})
	}
	return rows
}

// accountRows lists the stored accounts with the secret masked.
func accountRows(accounts []entity.AwsAccount) [][]string {
	if len(accounts) == 0 {
		return nil
	}
	rows := [][]string{{"ID", "Name", "Access Key", "Secret Key"}}
	for _, a := range accounts {
		rows = append(rows, []string{tview.Escape(a.ID), tview.Escape(a.Name), tview.Escape(a.AccessKey), usecase.MaskSecret(a.SecretKey)})
	}
	return rows
}

// catalogText lists each tag key with its values.
func catalogText(catalog usecase.TagCatalog) string {
	if len(catalog.Keys) == 0 {
		return colorMuted + "No tags found for this period." + colorReset
	}
	var sb strings.Builder
	for _, k := range catalog.Keys {
		values := catalog.Values[k]
		list := strings.Join(values, ", ")
		if len(values) == 0 {
			list = "-"
		}
		fmt.Fprintf(&sb, "%s%s%s: %s\n", colorHeader, tview.Escape(k), colorReset, tview.Escape(list))
	}
	return sb.String()
}

// parseTagInput reads "Team=DevOps,Platform; Env" into a tag selection.
func parseTagInput(text string) ([]string, map[string][]string, error) {
	var items []string
	for _, part := range strings.Split(text, ";") {
		if part = strings.TrimSpace(part); part != "" {
			items = append(items, part)
		}
	}
	return usecase.ParseTagSelection(items)
}

// accountLabel is the dropdown text of an account.
func accountLabel(a entity.AwsAccount) string {
	return fmt.Sprintf("%s (%s)", a.Name, a.ID)
}

// userText renders the profile of the signed-in user.
func userText(u *entity.User) string {
	if u == nil {
		return colorMuted + "Not signed in. Use 'aws-cost-console signin'." + colorReset
	}
	fields := [][2]string{
		{"Name", strings.TrimSpace(u.FirstName + " " + u.LastName)},
		{"Email", u.Email},
		{"City", u.City},
		{"Country", u.Country},
		{"Timezone", u.Timezone},
	}
	var sb strings.Builder
	for _, f := range fields {
		fmt.Fprintf(&sb, "%s%-9s%s %s\n", colorHeader, f[0], colorReset, tview.Escape(f[1]))
	}
	return sb.String()
}
