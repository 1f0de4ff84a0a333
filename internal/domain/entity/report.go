package entity

import "time"

// TagCostReport is the exportable tag-wise cost table of one account.
type TagCostReport struct {
	AccountID   string        `json:"account_id"`
	AccountName string        `json:"account_name"`
	Start       string        `json:"start"`
	End         string        `json:"end"`
	TagFilters  TagFilters    `json:"tag_filters"`
	Services    []ServiceCost `json:"services"`
	Total       float64       `json:"total"`
	GeneratedAt time.Time     `json:"generated_at"`
}
