package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/go-resty/resty/v2"
	json "github.com/goccy/go-json"

	"github.com/diillson/aws-cost-console/internal/domain/repository"
	"github.com/diillson/aws-cost-console/internal/shared/types"
)

// DefaultBaseURL is the backend address used when none is configured.
const DefaultBaseURL = "http://localhost:5000"

var _ repository.DashboardAPI = (*Client)(nil)

// Client talks to the cost dashboard backend. Each call is a single attempt.
type Client struct {
	http   *resty.Client
	tokens repository.TokenStore
	logger *slog.Logger
}

// authMode says whether a request carries the bearer token.
type authMode int

const (
	authNone     authMode = iota // never sent
	authOptional                 // sent when stored
	authRequired                 // request refused without a token
)

// NewClient cria um cliente para baseURL usando tokens para guardar a sessão.
func NewClient(baseURL string, tokens repository.TokenStore, logger *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "api")

	rc := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Content-Type", "application/json").
		SetJSONMarshaler(json.Marshal).
		SetJSONUnmarshaler(json.Unmarshal)

	rc.OnAfterResponse(func(_ *resty.Client, resp *resty.Response) error {
		logger.Debug("api request",
			"method", resp.Request.Method,
			"path", resp.Request.URL,
			"status", resp.StatusCode(),
			"duration", resp.Time())
		return nil
	})

	return &Client{http: rc, tokens: tokens, logger: logger}
}

// errorBody is the backend's failure envelope.
type errorBody struct {
	Error string `json:"error"`
}

// do executes one request. A non-2xx response becomes *types.APIError with the
// body's error field, or fallback when the body has none.
func (c *Client) do(ctx context.Context, method, path string, auth authMode, body any, fallback string) (*resty.Response, error) {
	req := c.http.R().SetContext(ctx)

	if auth != authNone {
		token, err := c.tokens.Get(ctx, repository.AuthTokenKey)
		if err != nil {
			return nil, fmt.Errorf("read auth token: %w", err)
		}
		if token == "" && auth == authRequired {
			return nil, types.ErrNotAuthenticated
		}
		if token != "" {
			req.SetAuthToken(token)
		}
	}
	if body != nil {
		req.SetBody(body)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	if !resp.IsSuccess() {
		return resp, types.NewAPIError(resp.StatusCode(), messageFrom(resp.Body(), fallback))
	}
	return resp, nil
}

func messageFrom(body []byte, fallback string) string {
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err != nil || eb.Error == "" {
		return fallback
	}
	return eb.Error
}

// decode fills out from a 2xx body. A body that does not fit is logged and reported as false.
func (c *Client) decode(resp *resty.Response, out any) bool {
	if err := json.Unmarshal(resp.Body(), out); err != nil {
		c.logger.Debug("unexpected response shape", "path", resp.Request.URL, "error", err)
		return false
	}
	return true
}

func (c *Client) storeToken(ctx context.Context, resp *resty.Response) error {
	var out struct {
		Token string `json:"token"`
	}
	if !c.decode(resp, &out) || out.Token == "" {
		return errors.New("backend response carried no token")
	}
	if err := c.tokens.Set(ctx, repository.AuthTokenKey, out.Token); err != nil {
		return fmt.Errorf("save auth token: %w", err)
	}
	return nil
}

// isAPIError reports whether err is a backend response rather than a transport failure.
func isAPIError(err error) bool {
	var apiErr *types.APIError
	return errors.As(err, &apiErr)
}
