package entity

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// TagValuesRequest asks for the values of a single tag key.
type TagValuesRequest struct {
	CostRequest
	TagKey string `json:"tagKey"`
}

// TagFilters maps a tag key to its accepted values.
type TagFilters map[string][]string

// TagCostRequest restricts a cost query to resources carrying the given tags.
type TagCostRequest struct {
	CostRequest
	TagFilters TagFilters `json:"tag_filters"`
}

// ServiceCostPair is the [service, cost] tuple returned by the tag cost endpoint.
type ServiceCostPair struct {
	Service string
	Cost    float64
}

// UnmarshalJSON decodes a two element array. A cost sent as a string is parsed.
func (p *ServiceCostPair) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("service cost pair: %w", err)
	}
	if len(raw) != 2 {
		return fmt.Errorf("service cost pair: expected 2 elements, got %d", len(raw))
	}
	if err := json.Unmarshal(raw[0], &p.Service); err != nil {
		return fmt.Errorf("service cost pair: service: %w", err)
	}
	p.Cost = numberFromJSON(raw[1])
	return nil
}

// MarshalJSON encodes the pair back to its array form.
func (p ServiceCostPair) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{p.Service, p.Cost})
}

// TagCostResult holds the per-service totals for a tag filter.
type TagCostResult struct {
	TotalCost   float64           `json:"total_cost"`
	ServiceData []ServiceCostPair `json:"service_data"`
}

// TagMonthlyCostRecord is one flat (Month, Service, Cost) record.
type TagMonthlyCostRecord struct {
	Month   string  `json:"Month"`
	Service string  `json:"Service"`
	Cost    float64 `json:"Cost"`
}

// numberFromJSON accepts a JSON number or a numeric string; anything else is 0.
func numberFromJSON(raw json.RawMessage) float64 {
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return f
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if v, err := strconv.ParseFloat(s, 64); err == nil {
			return v
		}
	}
	return 0
}
