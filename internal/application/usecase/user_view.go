package usecase

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"

	"github.com/diillson/aws-cost-console/internal/domain/entity"
	"github.com/diillson/aws-cost-console/internal/domain/repository"
	"github.com/diillson/aws-cost-console/internal/shared/types"
)

// UserView covers the session and the profile of the signed-in user.
type UserView struct {
	api      repository.DashboardAPI
	validate *validator.Validate
}

func NewUserView(api repository.DashboardAPI) *UserView {
	return &UserView{api: api, validate: validator.New()}
}

func (v *UserView) SignUp(ctx context.Context, params entity.SignUpParams) error {
	if err := v.check(params); err != nil {
		return err
	}
	return v.api.SignUp(ctx, params)
}

func (v *UserView) SignIn(ctx context.Context, params entity.SignInParams) error {
	if err := v.check(params); err != nil {
		return err
	}
	return v.api.SignInWithPassword(ctx, params)
}

func (v *UserView) SignOut(ctx context.Context) error {
	return v.api.SignOut(ctx)
}

// Get returns nil when nobody is signed in.
func (v *UserView) Get(ctx context.Context) (*entity.User, error) {
	return v.api.GetUser(ctx)
}

func (v *UserView) Update(ctx context.Context, params entity.UpdateUserParams) (*entity.User, error) {
	return v.api.UpdateUser(ctx, params)
}

func (v *UserView) check(params any) error {
	err := v.validate.Struct(params)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		if fe.Tag() == "email" {
			return types.NewValidationError("%s is not a valid email address", fe.Value())
		}
		return types.NewValidationError("%s is required", fe.Field())
	}
	return err
}
