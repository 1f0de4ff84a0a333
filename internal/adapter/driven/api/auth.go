package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/diillson/aws-cost-console/internal/domain/entity"
	"github.com/diillson/aws-cost-console/internal/domain/repository"
	"github.com/diillson/aws-cost-console/internal/shared/types"
)

func (c *Client) SignUp(ctx context.Context, params entity.SignUpParams) error {
	resp, err := c.do(ctx, http.MethodPost, "/signup", authNone, params, "Signup failed")
	if err != nil {
		return err
	}
	return c.storeToken(ctx, resp)
}

func (c *Client) SignInWithPassword(ctx context.Context, params entity.SignInParams) error {
	resp, err := c.do(ctx, http.MethodPost, "/signin", authNone, params, "Invalid credentials")
	if err != nil {
		return err
	}
	return c.storeToken(ctx, resp)
}

// SignInWithOAuth não é suportado pelo backend.
func (c *Client) SignInWithOAuth(_ context.Context, _ string) error {
	return types.NewAPIError(0, "Social authentication not implemented")
}

// ResetPassword não é suportado pelo backend.
func (c *Client) ResetPassword(_ context.Context, _ string) error {
	return types.NewAPIError(0, "Password reset not implemented")
}

func (c *Client) UpdatePassword(ctx context.Context, params entity.UpdatePasswordParams) error {
	_, err := c.do(ctx, http.MethodPost, "/update-password", authRequired, params, "Failed to update password")
	return err
}

// SignOut only forgets the local token; the backend keeps no session.
func (c *Client) SignOut(ctx context.Context) error {
	return c.tokens.Delete(ctx, repository.AuthTokenKey)
}

type userEnvelope struct {
	Data *entity.User `json:"data"`
}

// GetUser returns nil without error when nobody is signed in or the backend refuses the token.
func (c *Client) GetUser(ctx context.Context) (*entity.User, error) {
	resp, err := c.do(ctx, http.MethodGet, "/user", authRequired, nil, "")
	if errors.Is(err, types.ErrNotAuthenticated) || isAPIError(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var out userEnvelope
	if !c.decode(resp, &out) {
		return nil, nil
	}
	return out.Data, nil
}

func (c *Client) UpdateUser(ctx context.Context, params entity.UpdateUserParams) (*entity.User, error) {
	resp, err := c.do(ctx, http.MethodPatch, "/user", authRequired, params, "Failed to update user")
	if err != nil {
		return nil, err
	}

	var out userEnvelope
	if !c.decode(resp, &out) {
		return nil, nil
	}
	return out.Data, nil
}
