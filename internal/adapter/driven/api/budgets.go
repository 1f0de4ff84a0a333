package api

import (
	"context"
	"net/http"

	"github.com/diillson/aws-cost-console/internal/domain/entity"
	"github.com/diillson/aws-cost-console/internal/shared/types"
)

const budgetTransportMessage = "Something went wrong while fetching budgets"

// GetBudgets is sent without the bearer token. Transport failures are reported as an
// APIError with a generic message instead of the underlying error.
func (c *Client) GetBudgets(ctx context.Context, req entity.BudgetRequest) (*entity.BudgetResponse, error) {
	resp, err := c.do(ctx, http.MethodPost, "/get-budgets", authNone, req, "Failed to fetch budgets")
	if err != nil {
		if isAPIError(err) {
			return nil, err
		}
		c.logger.Debug("budgets request failed", "error", err)
		return nil, types.NewAPIError(0, budgetTransportMessage)
	}

	var out entity.BudgetResponse
	if !c.decode(resp, &out) {
		return nil, types.NewAPIError(resp.StatusCode(), budgetTransportMessage)
	}
	return &out, nil
}
