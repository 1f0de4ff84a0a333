package usecase

import (
	"strconv"
	"strings"

	"github.com/diillson/aws-cost-console/internal/domain/entity"
	"github.com/diillson/aws-cost-console/internal/shared/types"
)

// PivotMonthlyCosts turns flat (Month, Service, Cost) records into one row per month,
// ordered by first occurrence. A repeated (Month, Service) pair keeps the last cost.
func PivotMonthlyCosts(records []entity.TagMonthlyCostRecord) []entity.ServiceMonthlyCost {
	if len(records) == 0 {
		return nil
	}

	index := make(map[string]int)
	var rows []entity.ServiceMonthlyCost
	for _, rec := range records {
		i, ok := index[rec.Month]
		if !ok {
			i = len(rows)
			index[rec.Month] = i
			rows = append(rows, *entity.NewServiceMonthlyCost(rec.Month))
		}
		rows[i].Set(rec.Service, rec.Cost)
	}
	return rows
}

// ParseCurrency lê valores como "$1,234.56". Strings vazias ou inválidas valem 0.
func ParseCurrency(s string) float64 {
	cleaned := strings.NewReplacer("$", "", ",", "").Replace(s)
	v, err := strconv.ParseFloat(strings.TrimSpace(cleaned), 64)
	if err != nil {
		return 0
	}
	return v
}

// UsagePercent returns used/total as a percentage clamped to [0, 100]; 0 when total is not positive.
func UsagePercent(used, total float64) float64 {
	if total <= 0 {
		return 0
	}
	pct := used / total * 100
	switch {
	case pct < 0:
		return 0
	case pct > 100:
		return 100
	}
	return pct
}

// UsageLevelFor classifies a usage percentage.
func UsageLevelFor(pct float64) types.UsageLevel {
	switch {
	case pct > 90:
		return types.UsageCritical
	case pct > 75:
		return types.UsageWarning
	default:
		return types.UsageNormal
	}
}

// BudgetUsage computes the card for one budget record.
func BudgetUsage(rec entity.BudgetRecord) BudgetCard {
	used := ParseCurrency(rec.AmountUsed)
	total := ParseCurrency(rec.Budget)
	pct := UsagePercent(used, total)
	return BudgetCard{
		Name:    rec.Name,
		Used:    used,
		Total:   total,
		Percent: pct,
		Level:   UsageLevelFor(pct),
	}
}

// BuildServiceChart builds one dataset per service in first-seen order across rows.
// A service missing from a month contributes 0. Empty input returns nil.
func BuildServiceChart(rows []entity.ServiceMonthlyCost) *types.ServiceChart {
	if len(rows) == 0 {
		return nil
	}

	chart := &types.ServiceChart{Labels: make([]string, len(rows))}
	var services []string
	seen := make(map[string]bool)
	for i, row := range rows {
		chart.Labels[i] = row.Month
		for _, s := range row.Services {
			if !seen[s.Service] {
				seen[s.Service] = true
				services = append(services, s.Service)
			}
		}
	}

	chart.Datasets = make([]types.ChartDataset, len(services))
	for d, service := range services {
		data := make([]float64, len(rows))
		for i, row := range rows {
			data[i], _ = row.Get(service)
		}
		chart.Datasets[d] = types.ChartDataset{Label: service, Data: data}
	}
	return chart
}

// ServiceCostsFromPairs converts [service, cost] pairs into ServiceCost records.
func ServiceCostsFromPairs(pairs []entity.ServiceCostPair) []entity.ServiceCost {
	if pairs == nil {
		return nil
	}
	out := make([]entity.ServiceCost, len(pairs))
	for i, p := range pairs {
		out[i] = entity.ServiceCost{Service: p.Service, Cost: p.Cost}
	}
	return out
}

// TotalCost sums the cost column.
func TotalCost(costs []entity.ServiceCost) float64 {
	var total float64
	for _, c := range costs {
		total += c.Cost
	}
	return total
}
