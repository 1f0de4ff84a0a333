package cli

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/diillson/aws-cost-console/internal/domain/entity"
)

// secretFlag returns the flag value, asking for it with masked input when it is empty.
func secretFlag(cmd *cobra.Command, name, prompt string) (string, error) {
	value, _ := cmd.Flags().GetString(name)
	if value != "" {
		return value, nil
	}
	return pterm.DefaultInteractiveTextInput.WithMask("*").Show(prompt)
}

func (app *CLIApp) signUpCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create a dashboard user and sign in",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			uc, err := app.useCase(cmd)
			if err != nil {
				return err
			}
			password, err := secretFlag(cmd, "password", "Password")
			if err != nil {
				return err
			}
			firstName, _ := cmd.Flags().GetString("first-name")
			lastName, _ := cmd.Flags().GetString("last-name")
			email, _ := cmd.Flags().GetString("email")
			return uc.RunSignUp(cmd.Context(), entity.SignUpParams{
				FirstName: firstName,
				LastName:  lastName,
				Email:     email,
				Password:  password,
			})
		},
	}
	cmd.Flags().String("first-name", "", "First name")
	cmd.Flags().String("last-name", "", "Last name")
	cmd.Flags().String("email", "", "Email address")
	cmd.Flags().String("password", "", "Password (prompted when omitted)")
	return cmd
}

func (app *CLIApp) signInCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "signin",
		Short: "Sign in with email and password",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			uc, err := app.useCase(cmd)
			if err != nil {
				return err
			}
			password, err := secretFlag(cmd, "password", "Password")
			if err != nil {
				return err
			}
			email, _ := cmd.Flags().GetString("email")
			return uc.RunSignIn(cmd.Context(), entity.SignInParams{Email: email, Password: password})
		},
	}
	cmd.Flags().String("email", "", "Email address")
	cmd.Flags().String("password", "", "Password (prompted when omitted)")
	return cmd
}

func (app *CLIApp) signOutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "signout",
		Short: "Sign out and forget the session token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			uc, err := app.useCase(cmd)
			if err != nil {
				return err
			}
			return uc.RunSignOut(cmd.Context())
		},
	}
}

func (app *CLIApp) passwordCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "password",
		Short: "Change the password of the signed-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			uc, err := app.useCase(cmd)
			if err != nil {
				return err
			}
			password, err := secretFlag(cmd, "new-password", "New password")
			if err != nil {
				return err
			}
			confirm, err := secretFlag(cmd, "confirm-password", "Confirm new password")
			if err != nil {
				return err
			}
			return uc.RunUpdatePassword(cmd.Context(), entity.UpdatePasswordParams{
				Password:        password,
				ConfirmPassword: confirm,
			})
		},
	}
	cmd.Flags().String("new-password", "", "New password (prompted when omitted)")
	cmd.Flags().String("confirm-password", "", "New password again (prompted when omitted)")
	return cmd
}

func (app *CLIApp) userCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Show or update the signed-in user's profile",
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Show the profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			uc, err := app.useCase(cmd)
			if err != nil {
				return err
			}
			return uc.RunUserShow(cmd.Context())
		},
	}

	profileFields := []string{"first-name", "last-name", "email", "avatar", "city", "country", "timezone"}
	update := &cobra.Command{
		Use:   "update",
		Short: "Update profile fields; only the flags given are sent",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			uc, err := app.useCase(cmd)
			if err != nil {
				return err
			}
			return uc.RunUserUpdate(cmd.Context(), userPatch(cmd))
		},
	}
	for _, f := range profileFields {
		update.Flags().String(f, "", "New "+f)
	}

	cmd.AddCommand(show, update)
	return cmd
}

// userPatch sends only the flags the user actually set, so an empty value can clear a field.
func userPatch(cmd *cobra.Command) entity.UpdateUserParams {
	get := func(name string) *string {
		if !cmd.Flags().Changed(name) {
			return nil
		}
		v, _ := cmd.Flags().GetString(name)
		return &v
	}
	return entity.UpdateUserParams{
		FirstName: get("first-name"),
		LastName:  get("last-name"),
		Email:     get("email"),
		Avatar:    get("avatar"),
		City:      get("city"),
		Country:   get("country"),
		Timezone:  get("timezone"),
	}
}
