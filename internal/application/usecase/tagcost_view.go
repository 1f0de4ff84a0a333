package usecase

import (
	"context"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/diillson/aws-cost-console/internal/domain/entity"
	"github.com/diillson/aws-cost-console/internal/domain/repository"
	"github.com/diillson/aws-cost-console/internal/shared/types"
)

const tagCostDays = 30

// TagCatalog lists the tag keys of an account and the values seen for each key.
type TagCatalog struct {
	Keys   []string
	Values map[string][]string
}

// TagCostDeps are the inputs that trigger a new tag cost fetch.
type TagCostDeps struct {
	Account *entity.AwsAccount
	Dates   DateRange
	// SelectedKeys gates the fetch; only keys with values in SelectedValues become filters.
	SelectedKeys   []string
	SelectedValues map[string][]string
}

// TagCostModel is what the tag cost view renders.
type TagCostModel struct {
	State    ViewState
	Filters  entity.TagFilters
	Services []entity.ServiceCost
	Total    float64
	Rows     []entity.ServiceMonthlyCost
	Chart    *types.ServiceChart
	Message  string
	Err      error
}

type TagCostView struct {
	api repository.DashboardAPI
}

func NewTagCostView(api repository.DashboardAPI) *TagCostView {
	return &TagCostView{api: api}
}

// DefaultTagCostDates returns the last 30 days.
func DefaultTagCostDates(now time.Time) DateRange {
	return LastDays(now, tagCostDays)
}

// LoadTags fetches the tag keys and then the values of every key concurrently.
// Any failure fails the whole load.
func (v *TagCostView) LoadTags(ctx context.Context, acc *entity.AwsAccount, dates DateRange) (TagCatalog, error) {
	catalog := TagCatalog{Values: map[string][]string{}}
	if acc == nil {
		return catalog, types.ErrNoAccountSelected
	}
	if err := dates.Validate(); err != nil {
		return catalog, err
	}
	base := costRequest(acc, dates, types.DefaultRegion)

	keys, err := v.api.GetAvailableTags(ctx, base)
	if err != nil {
		return catalog, err
	}
	if len(keys) == 0 {
		return catalog, nil
	}

	var mu sync.Mutex
	values := make(map[string][]string, len(keys))
	g, gctx := errgroup.WithContext(ctx)
	for _, key := range keys {
		g.Go(func() error {
			vals, err := v.api.GetTagValues(gctx, entity.TagValuesRequest{CostRequest: base, TagKey: key})
			if err != nil {
				return err
			}
			if vals == nil {
				vals = []string{}
			}
			mu.Lock()
			values[key] = vals
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return TagCatalog{Values: map[string][]string{}}, err
	}

	catalog.Keys = keys
	catalog.Values = values
	return catalog, nil
}

// BuildTagFilters keeps the selected keys that have at least one selected value.
func BuildTagFilters(keys []string, values map[string][]string) entity.TagFilters {
	filters := entity.TagFilters{}
	for _, k := range keys {
		if vals := values[k]; len(vals) > 0 {
			filters[k] = vals
		}
	}
	return filters
}

// Fetch runs only when a tag key is selected. It asks for the per-service totals and then
// the monthly records; a result is produced only when both have the expected shape.
func (v *TagCostView) Fetch(ctx context.Context, deps TagCostDeps) TagCostModel {
	if deps.Account == nil {
		return TagCostModel{State: StateError, Err: types.ErrNoAccountSelected}
	}
	if len(deps.SelectedKeys) == 0 {
		return TagCostModel{State: StateEmpty, Message: MsgNoTagData}
	}
	if err := deps.Dates.Validate(); err != nil {
		return TagCostModel{State: StateError, Err: err}
	}

	filters := BuildTagFilters(deps.SelectedKeys, deps.SelectedValues)
	req := entity.TagCostRequest{
		CostRequest: costRequest(deps.Account, deps.Dates, types.DefaultRegion),
		TagFilters:  filters,
	}

	byTags, err := v.api.GetAwsCostsByTags(ctx, req)
	if ctx.Err() != nil {
		return TagCostModel{State: StateError, Err: ctx.Err()}
	}
	monthly, monthErr := v.api.GetAwsCostsByTagsMonthly(ctx, req)
	if err == nil {
		err = monthErr
	}
	if err != nil {
		return TagCostModel{State: StateError, Filters: filters, Err: err}
	}

	if byTags == nil || byTags.ServiceData == nil || monthly == nil {
		return TagCostModel{State: StateEmpty, Filters: filters, Message: MsgNoTagData}
	}

	services := ServiceCostsFromPairs(byTags.ServiceData)
	rows := PivotMonthlyCosts(monthly)
	model := TagCostModel{
		State:    StateData,
		Filters:  filters,
		Services: services,
		Total:    TotalCost(services),
		Rows:     rows,
		Chart:    BuildServiceChart(rows),
	}
	if len(services) == 0 {
		model.State = StateEmpty
		model.Message = MsgNoTagData
	}
	return model
}

// SortedFilterKeys returns the filter keys in a stable order for display.
func SortedFilterKeys(filters entity.TagFilters) []string {
	keys := make([]string, 0, len(filters))
	for k := range filters {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
