package api

import (
	"context"
	"net/http"

	json "github.com/goccy/go-json"

	"github.com/diillson/aws-cost-console/internal/domain/entity"
)

func (c *Client) GetAvailableTags(ctx context.Context, req entity.CostRequest) ([]string, error) {
	resp, err := c.do(ctx, http.MethodPost, "/tags/keys", authOptional, req, "Failed to fetch tag keys")
	if err != nil {
		return nil, err
	}

	var out struct {
		TagKeys []string `json:"tagKeys"`
	}
	c.decode(resp, &out)
	return out.TagKeys, nil
}

// GetTagValues sends tagKey at the root of the body next to the credentials.
func (c *Client) GetTagValues(ctx context.Context, req entity.TagValuesRequest) ([]string, error) {
	resp, err := c.do(ctx, http.MethodPost, "/tags/values", authOptional, req, "Failed to fetch tag values")
	if err != nil {
		return nil, err
	}

	var out struct {
		TagValues []string `json:"tagValues"`
	}
	c.decode(resp, &out)
	return out.TagValues, nil
}

// GetAwsCostsByTags returns a result with nil ServiceData when service_data is not an array.
// An empty array yields an empty, non-nil slice.
func (c *Client) GetAwsCostsByTags(ctx context.Context, req entity.TagCostRequest) (*entity.TagCostResult, error) {
	resp, err := c.do(ctx, http.MethodPost, "/get-cost-by-tags", authOptional, req, "Failed to fetch tag-based costs")
	if err != nil {
		return nil, err
	}

	var raw struct {
		TotalCost   float64         `json:"total_cost"`
		ServiceData json.RawMessage `json:"service_data"`
	}
	if !c.decode(resp, &raw) {
		return nil, nil
	}

	result := &entity.TagCostResult{TotalCost: raw.TotalCost}
	pairs := []entity.ServiceCostPair{}
	if err := json.Unmarshal(raw.ServiceData, &pairs); err != nil {
		c.logger.Debug("service_data is not a list of pairs", "error", err)
		return result, nil
	}
	result.ServiceData = pairs
	return result, nil
}

// GetAwsCostsByTagsMonthly returns nil when the body has no data array.
func (c *Client) GetAwsCostsByTagsMonthly(ctx context.Context, req entity.TagCostRequest) ([]entity.TagMonthlyCostRecord, error) {
	resp, err := c.do(ctx, http.MethodPost, "/get-cost-by-tags-months", authOptional, req, "Failed to fetch AWS monthly costs by tags")
	if err != nil {
		return nil, err
	}

	var out struct {
		Data json.RawMessage `json:"data"`
	}
	if !c.decode(resp, &out) {
		return nil, nil
	}
	records := []entity.TagMonthlyCostRecord{}
	if err := json.Unmarshal(out.Data, &records); err != nil {
		return nil, nil
	}
	return records, nil
}
