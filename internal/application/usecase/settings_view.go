package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/diillson/aws-cost-console/internal/domain/entity"
	"github.com/diillson/aws-cost-console/internal/domain/repository"
	"github.com/diillson/aws-cost-console/internal/shared/types"
)

const (
	MsgAccountAdded    = "Account added successfully"
	MsgAccountUpdated  = "Account updated successfully"
	MsgAccountDeleted  = "Account deleted successfully"
	MsgPasswordUpdated = "Password updated successfully."
)

// SettingsResult is the account list after a mutation plus the success message.
type SettingsResult struct {
	Accounts []entity.AwsAccount
	Message  string
}

// SettingsView manages stored AWS accounts and the user's password.
type SettingsView struct {
	api      repository.DashboardAPI
	validate *validator.Validate
}

func NewSettingsView(api repository.DashboardAPI) *SettingsView {
	return &SettingsView{api: api, validate: validator.New()}
}

func (v *SettingsView) ListAccounts(ctx context.Context) ([]entity.AwsAccount, error) {
	return v.api.GetAwsAccounts(ctx)
}

// ValidateAccount requires name, access key and secret key.
func (v *SettingsView) ValidateAccount(params entity.AwsAccountCreateParams) error {
	if err := v.validate.Struct(params); err != nil {
		return types.NewValidationError(MsgAllFieldsRequired)
	}
	return nil
}

func (v *SettingsView) AddAccount(ctx context.Context, params entity.AwsAccountCreateParams) (SettingsResult, error) {
	if err := v.ValidateAccount(params); err != nil {
		return SettingsResult{}, err
	}
	if _, err := v.api.AddAwsAccount(ctx, params); err != nil {
		return SettingsResult{}, err
	}
	return v.relist(ctx, MsgAccountAdded)
}

// UpdateAccount replaces all three fields of the account.
func (v *SettingsView) UpdateAccount(ctx context.Context, id string, params entity.AwsAccountCreateParams) (SettingsResult, error) {
	if err := v.ValidateAccount(params); err != nil {
		return SettingsResult{}, err
	}
	_, err := v.api.UpdateAwsAccount(ctx, id, entity.AwsAccountUpdateParams{
		Name:      &params.Name,
		AccessKey: &params.AccessKey,
		SecretKey: &params.SecretKey,
	})
	if err != nil {
		return SettingsResult{}, err
	}
	return v.relist(ctx, MsgAccountUpdated)
}

func (v *SettingsView) DeleteAccount(ctx context.Context, id string) (SettingsResult, error) {
	if _, err := v.api.DeleteAwsAccount(ctx, id); err != nil {
		return SettingsResult{}, err
	}
	return v.relist(ctx, MsgAccountDeleted)
}

// relist fetches the accounts after a successful mutation. The mutation message is kept
// even when the list cannot be fetched.
func (v *SettingsView) relist(ctx context.Context, message string) (SettingsResult, error) {
	accounts, err := v.api.GetAwsAccounts(ctx)
	result := SettingsResult{Accounts: accounts, Message: message}
	if err != nil {
		return result, fmt.Errorf("refresh accounts: %w", err)
	}
	return result, nil
}

// ValidatePassword checks the length first and then the confirmation.
func (v *SettingsView) ValidatePassword(params entity.UpdatePasswordParams) error {
	err := v.validate.Struct(params)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	for _, fe := range fieldErrs {
		if fe.Field() == "Password" {
			return types.NewValidationError(MsgPasswordTooShort)
		}
	}
	return types.NewValidationError(MsgPasswordMismatch)
}

func (v *SettingsView) UpdatePassword(ctx context.Context, params entity.UpdatePasswordParams) (string, error) {
	if err := v.ValidatePassword(params); err != nil {
		return "", err
	}
	if err := v.api.UpdatePassword(ctx, params); err != nil {
		return "", err
	}
	return MsgPasswordUpdated, nil
}
