package entity

// BudgetRecord mirrors the backend's budget table. Currency fields arrive pre-formatted,
// e.g. "$1,234.56".
type BudgetRecord struct {
	Name                 string `json:"Name"`
	Thresholds           string `json:"Thresholds"`
	Budget               string `json:"Budget ($)"`
	AmountUsed           string `json:"Amount Used ($)"`
	ForecastedAmount     string `json:"Forecasted Amount ($)"`
	CurrentVsBudgeted    string `json:"Current vs. Budgeted (%)"`
	ForecastedVsBudgeted string `json:"Forecasted vs. Budgeted (%)"`
}

// BudgetRequest carries the credentials used to list budgets.
type BudgetRequest struct {
	AccessKey string `json:"accessKey"`
	SecretKey string `json:"secretKey"`
	Region    string `json:"region"`
}

// BudgetResponse is the get-budgets payload.
type BudgetResponse struct {
	AccountID string         `json:"accountId"`
	Budgets   []BudgetRecord `json:"budgets"`
}
