package usecase

import (
	"context"
	"fmt"

	"github.com/diillson/aws-cost-console/internal/domain/entity"
	"github.com/diillson/aws-cost-console/internal/shared/types"
)

// AccountPatch carries the fields given on the command line; empty fields keep the stored value.
type AccountPatch struct {
	Name      string
	AccessKey string
	SecretKey string
}

func (uc *DashboardUseCase) RunSignUp(ctx context.Context, params entity.SignUpParams) error {
	if err := uc.user.SignUp(ctx, params); err != nil {
		return err
	}
	uc.console.LogSuccess("Account created. You are signed in as %s.", params.Email)
	return nil
}

func (uc *DashboardUseCase) RunSignIn(ctx context.Context, params entity.SignInParams) error {
	if err := uc.user.SignIn(ctx, params); err != nil {
		return err
	}
	uc.console.LogSuccess("Signed in as %s.", params.Email)
	return nil
}

func (uc *DashboardUseCase) RunSignOut(ctx context.Context) error {
	if err := uc.user.SignOut(ctx); err != nil {
		return err
	}
	uc.console.LogSuccess("Signed out.")
	return nil
}

func (uc *DashboardUseCase) RunUpdatePassword(ctx context.Context, params entity.UpdatePasswordParams) error {
	msg, err := uc.settings.UpdatePassword(ctx, params)
	if err != nil {
		return err
	}
	uc.console.LogSuccess(msg)
	return nil
}

// RunUserShow prints the profile of the signed-in user.
func (uc *DashboardUseCase) RunUserShow(ctx context.Context) error {
	user, err := uc.user.Get(ctx)
	if err != nil {
		return err
	}
	if user == nil {
		return types.ErrNotAuthenticated
	}
	uc.printUser(user)
	return nil
}

func (uc *DashboardUseCase) RunUserUpdate(ctx context.Context, params entity.UpdateUserParams) error {
	user, err := uc.user.Update(ctx, params)
	if err != nil {
		return err
	}
	uc.console.LogSuccess("Profile updated.")
	if user != nil {
		uc.printUser(user)
	}
	return nil
}

func (uc *DashboardUseCase) printUser(user *entity.User) {
	table := uc.console.CreateTable()
	table.AddColumn("Field")
	table.AddColumn("Value")
	table.AddRow("Name", fmt.Sprintf("%s %s", user.FirstName, user.LastName))
	table.AddRow("Email", user.Email)
	table.AddRow("City", user.City)
	table.AddRow("Country", user.Country)
	table.AddRow("Timezone", user.Timezone)
	uc.console.Print(table.Render())
}

// RunAccountsList prints the stored AWS accounts. Secret keys are masked.
func (uc *DashboardUseCase) RunAccountsList(ctx context.Context) error {
	accounts, err := uc.settings.ListAccounts(ctx)
	if err != nil {
		return err
	}
	uc.printAccounts(accounts)
	return nil
}

func (uc *DashboardUseCase) printAccounts(accounts []entity.AwsAccount) {
	if len(accounts) == 0 {
		uc.console.LogWarning(types.ErrNoAccountsFound.Error())
		return
	}
	table := uc.console.CreateTable()
	table.AddColumn("ID")
	table.AddColumn("Name")
	table.AddColumn("Access Key")
	table.AddColumn("Secret Key")
	for _, a := range accounts {
		table.AddRow(a.ID, a.Name, a.AccessKey, MaskSecret(a.SecretKey))
	}
	uc.console.Print(table.Render())
}

// MaskSecret keeps the last four characters of a secret.
func MaskSecret(s string) string {
	if len(s) <= 4 {
		return "****"
	}
	return "****" + s[len(s)-4:]
}

func (uc *DashboardUseCase) RunAccountAdd(ctx context.Context, params entity.AwsAccountCreateParams) error {
	res, err := uc.settings.AddAccount(ctx, params)
	return uc.reportMutation(res, err)
}

// RunAccountUpdate fills fields missing from patch with the stored values before saving.
func (uc *DashboardUseCase) RunAccountUpdate(ctx context.Context, idOrName string, patch AccountPatch) error {
	acc, err := uc.ResolveAccount(ctx, idOrName)
	if err != nil {
		return err
	}
	params := entity.AwsAccountCreateParams{Name: acc.Name, AccessKey: acc.AccessKey, SecretKey: acc.SecretKey}
	if patch.Name != "" {
		params.Name = patch.Name
	}
	if patch.AccessKey != "" {
		params.AccessKey = patch.AccessKey
	}
	if patch.SecretKey != "" {
		params.SecretKey = patch.SecretKey
	}

	res, err := uc.settings.UpdateAccount(ctx, acc.ID, params)
	return uc.reportMutation(res, err)
}

func (uc *DashboardUseCase) RunAccountDelete(ctx context.Context, idOrName string) error {
	acc, err := uc.ResolveAccount(ctx, idOrName)
	if err != nil {
		return err
	}
	res, err := uc.settings.DeleteAccount(ctx, acc.ID)
	return uc.reportMutation(res, err)
}

// RunAccountImport stores the static credentials of a local AWS profile as a new account.
func (uc *DashboardUseCase) RunAccountImport(ctx context.Context, profile, name string) error {
	status := uc.console.Status(fmt.Sprintf("Reading credentials of profile %s...", profile))
	params, err := uc.credentials.GetProfileCredentials(ctx, profile)
	status.Stop()
	if err != nil {
		return err
	}
	if name != "" {
		params.Name = name
	}
	return uc.RunAccountAdd(ctx, params)
}

// RunProfilesList prints the profiles found in the local AWS configuration.
func (uc *DashboardUseCase) RunProfilesList() {
	profiles := uc.credentials.GetAWSProfiles()
	if len(profiles) == 0 {
		uc.console.LogWarning("No AWS profiles found in the local configuration.")
		return
	}
	for _, p := range profiles {
		uc.console.Println(p)
	}
}

func (uc *DashboardUseCase) reportMutation(res SettingsResult, err error) error {
	if res.Message != "" {
		uc.console.LogSuccess(res.Message)
	}
	if err != nil {
		return err
	}
	uc.printAccounts(res.Accounts)
	return nil
}
