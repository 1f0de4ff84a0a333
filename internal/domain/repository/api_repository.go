package repository

import (
	"context"

	"github.com/diillson/aws-cost-console/internal/domain/entity"
)

// DashboardAPI defines the interface for the cost dashboard backend.
//
// Non-2xx responses are returned as *types.APIError carrying the server message.
// Transport failures are returned as ordinary errors.
type DashboardAPI interface {
	// Auth Operations
	SignUp(ctx context.Context, params entity.SignUpParams) error
	SignInWithPassword(ctx context.Context, params entity.SignInParams) error
	SignInWithOAuth(ctx context.Context, provider string) error
	ResetPassword(ctx context.Context, email string) error
	UpdatePassword(ctx context.Context, params entity.UpdatePasswordParams) error
	SignOut(ctx context.Context) error

	// User Operations
	GetUser(ctx context.Context) (*entity.User, error)
	UpdateUser(ctx context.Context, params entity.UpdateUserParams) (*entity.User, error)

	// AWS Account Operations
	GetAwsAccounts(ctx context.Context) ([]entity.AwsAccount, error)
	AddAwsAccount(ctx context.Context, params entity.AwsAccountCreateParams) (*entity.AwsAccount, error)
	UpdateAwsAccount(ctx context.Context, accountID string, params entity.AwsAccountUpdateParams) (*entity.AwsAccount, error)
	DeleteAwsAccount(ctx context.Context, accountID string) (string, error)

	// Cost Operations
	GetAwsCosts(ctx context.Context, req entity.CostRequest) (*entity.CostSummary, error)
	GetAwsServiceCosts(ctx context.Context, req entity.CostRequest) ([]entity.ServiceMonthlyCost, error)

	// Tag Operations
	GetAvailableTags(ctx context.Context, req entity.CostRequest) ([]string, error)
	GetTagValues(ctx context.Context, req entity.TagValuesRequest) ([]string, error)
	GetAwsCostsByTags(ctx context.Context, req entity.TagCostRequest) (*entity.TagCostResult, error)
	GetAwsCostsByTagsMonthly(ctx context.Context, req entity.TagCostRequest) ([]entity.TagMonthlyCostRecord, error)

	// Budget Operations
	GetBudgets(ctx context.Context, req entity.BudgetRequest) (*entity.BudgetResponse, error)
}
