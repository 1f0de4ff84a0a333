package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diillson/aws-cost-console/internal/adapter/driven/api"
	"github.com/diillson/aws-cost-console/internal/adapter/driven/state"
	"github.com/diillson/aws-cost-console/internal/application/usecase"
	"github.com/diillson/aws-cost-console/internal/domain/repository"
	"github.com/diillson/aws-cost-console/internal/shared/types"
	"github.com/diillson/aws-cost-console/pkg/console"
)

func init() {
	pterm.DisableColor()
}

type recordedRequest struct {
	Path string
	Body map[string]any
}

// backend is a minimal stand-in for the dashboard API.
type backend struct {
	mu       sync.Mutex
	requests []recordedRequest
}

func (b *backend) handler(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	rec := recordedRequest{Path: r.URL.Path}
	_ = json.Unmarshal(body, &rec.Body)
	b.mu.Lock()
	b.requests = append(b.requests, rec)
	b.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	switch r.URL.Path {
	case "/aws-accounts":
		_, _ = w.Write([]byte(`[{"id":"a1","name":"prod","accessKey":"AK1","secretKey":"SECRET01"},{"id":"a2","name":"dev","accessKey":"AK2","secretKey":"SECRET02"}]`))
	case "/api/get-costs":
		_, _ = w.Write([]byte(`{"total_cost":42,"average_cost":1.4,"unique_services":2}`))
	case "/api/get-service-costs":
		_, _ = w.Write([]byte(`[{"month":"2024-05","EC2":30,"S3":12}]`))
	case "/user":
		_, _ = w.Write([]byte(`{"data":{"id":"u1","firstName":"Ada","email":"ada@example.com"}}`))
	default:
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"not found"}`))
	}
}

func (b *backend) last(path string) *recordedRequest {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := len(b.requests) - 1; i >= 0; i-- {
		if b.requests[i].Path == path {
			r := b.requests[i]
			return &r
		}
	}
	return nil
}

func newTestApp(t *testing.T, token string) (*CLIApp, *backend, *bytes.Buffer) {
	t.Helper()
	be := &backend{}
	srv := httptest.NewServer(http.HandlerFunc(be.handler))
	t.Cleanup(srv.Close)

	out := &bytes.Buffer{}
	app := NewCLIApp("1.0.0")
	app.rootCmd.SetOut(out)
	app.SetBootstrap(func(ctx context.Context, args types.CLIArgs) (*Session, error) {
		tokens := state.NewMemoryStore()
		if token != "" {
			require.NoError(t, tokens.Set(ctx, repository.AuthTokenKey, token))
		}
		client := api.NewClient(srv.URL, tokens, nil)
		uc := usecase.NewDashboardUseCase(client, usecase.NewAccountContext(client, nil), nil, nil, console.NewConsoleWithWriter(out), nil)
		return &Session{
			Config:  types.Config{Account: args.Account, Region: types.DefaultRegion, Dir: "."},
			UseCase: uc,
		}, nil
	})
	return app, be, out
}

func TestAccountsList(t *testing.T) {
	app, _, out := newTestApp(t, "tok")
	app.SetArgs([]string{"accounts", "list"})

	require.NoError(t, app.Execute())
	assert.Contains(t, out.String(), "prod")
	assert.Contains(t, out.String(), "****ET02")
	assert.NotContains(t, out.String(), "SECRET01")
}

func TestAccountsList_NotSignedIn(t *testing.T) {
	app, be, _ := newTestApp(t, "")
	app.SetArgs([]string{"accounts", "list"})

	err := app.Execute()
	assert.ErrorIs(t, err, types.ErrNotAuthenticated)
	assert.Nil(t, be.last("/aws-accounts"))
}

func TestOverview_UsesSelectedAccountAndRegion(t *testing.T) {
	app, be, out := newTestApp(t, "tok")
	app.SetArgs([]string{"overview", "--account", "dev", "--region", "eu-west-1", "--start", "2024-01-01", "--end", "2024-06-30"})

	require.NoError(t, app.Execute())

	req := be.last("/api/get-costs")
	require.NotNil(t, req)
	assert.Equal(t, "AK2", req.Body["accessKey"])
	assert.Equal(t, "eu-west-1", req.Body["region"])
	assert.Equal(t, "2024-01-01", req.Body["start"])
	assert.NotNil(t, be.last("/api/get-service-costs"))

	assert.Contains(t, out.String(), "$42.00")
	assert.Contains(t, out.String(), "EC2")
}

func TestOverview_UnknownRegion(t *testing.T) {
	app, be, _ := newTestApp(t, "tok")
	app.SetArgs([]string{"overview", "--region", "mars-1"})

	err := app.Execute()
	var vErr *types.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Nil(t, be.last("/api/get-costs"))
}

func TestTagCost_RequiresTag(t *testing.T) {
	app, _, _ := newTestApp(t, "tok")
	app.SetArgs([]string{"tagcost"})

	assert.EqualError(t, app.Execute(), "at least one --tag is required")
}

func TestUserUpdate_SendsOnlyChangedFlags(t *testing.T) {
	app, be, _ := newTestApp(t, "tok")
	app.SetArgs([]string{"user", "update", "--city", "Lisbon", "--timezone", ""})

	require.NoError(t, app.Execute())

	req := be.last("/user")
	require.NotNil(t, req)
	assert.Equal(t, map[string]any{"city": "Lisbon", "timezone": ""}, req.Body)
}

func TestTUI_WithoutRunner(t *testing.T) {
	app, _, _ := newTestApp(t, "tok")
	app.SetArgs([]string{"tui"})

	assert.EqualError(t, app.Execute(), "interactive dashboard is not available")
}
