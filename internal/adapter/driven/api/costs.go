package api

import (
	"context"
	"net/http"

	"github.com/diillson/aws-cost-console/internal/domain/entity"
)

// GetAwsCosts returns nil when the body is not a cost summary.
func (c *Client) GetAwsCosts(ctx context.Context, req entity.CostRequest) (*entity.CostSummary, error) {
	resp, err := c.do(ctx, http.MethodPost, "/api/get-costs", authOptional, req, "Failed to fetch AWS costs")
	if err != nil {
		return nil, err
	}

	var out entity.CostSummary
	if !c.decode(resp, &out) {
		return nil, nil
	}
	return &out, nil
}

// GetAwsServiceCosts returns nil rows when the body is not a JSON array.
func (c *Client) GetAwsServiceCosts(ctx context.Context, req entity.CostRequest) ([]entity.ServiceMonthlyCost, error) {
	resp, err := c.do(ctx, http.MethodPost, "/api/get-service-costs", authOptional, req, "Failed to fetch AWS service costs")
	if err != nil {
		return nil, err
	}

	var rows []entity.ServiceMonthlyCost
	if !c.decode(resp, &rows) {
		return nil, nil
	}
	return rows, nil
}
