package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/diillson/aws-cost-console/internal/domain/entity"
)

func (c *Client) GetAwsAccounts(ctx context.Context) ([]entity.AwsAccount, error) {
	resp, err := c.do(ctx, http.MethodGet, "/aws-accounts", authRequired, nil, "Failed to fetch AWS accounts")
	if err != nil {
		return nil, err
	}

	var out struct {
		AwsAccounts []entity.AwsAccount `json:"awsAccounts"`
	}
	c.decode(resp, &out)
	return out.AwsAccounts, nil
}

func (c *Client) AddAwsAccount(ctx context.Context, params entity.AwsAccountCreateParams) (*entity.AwsAccount, error) {
	resp, err := c.do(ctx, http.MethodPost, "/aws-accounts", authRequired, params, "Failed to add AWS account")
	if err != nil {
		return nil, err
	}

	var out struct {
		AwsAccount *entity.AwsAccount `json:"awsAccount"`
	}
	c.decode(resp, &out)
	return out.AwsAccount, nil
}

func (c *Client) UpdateAwsAccount(ctx context.Context, accountID string, params entity.AwsAccountUpdateParams) (*entity.AwsAccount, error) {
	resp, err := c.do(ctx, http.MethodPatch, accountPath(accountID), authRequired, params, "Failed to update AWS account")
	if err != nil {
		return nil, err
	}

	var out struct {
		AwsAccount *entity.AwsAccount `json:"awsAccount"`
	}
	c.decode(resp, &out)
	return out.AwsAccount, nil
}

// DeleteAwsAccount returns the id the backend reports as deleted.
func (c *Client) DeleteAwsAccount(ctx context.Context, accountID string) (string, error) {
	resp, err := c.do(ctx, http.MethodDelete, accountPath(accountID), authRequired, nil, "Failed to delete AWS account")
	if err != nil {
		return "", err
	}

	var out struct {
		DeletedAccountID string `json:"deletedAccountId"`
	}
	c.decode(resp, &out)
	return out.DeletedAccountID, nil
}

func accountPath(id string) string {
	return "/aws-accounts/" + url.PathEscape(id)
}
