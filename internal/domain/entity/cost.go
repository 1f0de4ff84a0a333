package entity

// CostRequest identifies the credentials, window and region of a cost query.
// Start and End use the YYYY-MM-DD layout.
type CostRequest struct {
	AccessKey string `json:"accessKey"`
	SecretKey string `json:"secretKey"`
	Start     string `json:"start"`
	End       string `json:"end"`
	Region    string `json:"region"`
}

// CostSummary is the scalar aggregate for a date range.
type CostSummary struct {
	TotalCost      float64 `json:"total_cost"`
	AverageCost    float64 `json:"average_cost"`
	UniqueServices int     `json:"unique_services"`
}

// ServiceCost represents a cost amount for a specific AWS service.
type ServiceCost struct {
	Service string  `json:"service"`
	Cost    float64 `json:"cost"`
}
