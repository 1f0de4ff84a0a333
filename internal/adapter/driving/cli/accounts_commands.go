package cli

import (
	"github.com/spf13/cobra"

	"github.com/diillson/aws-cost-console/internal/application/usecase"
	"github.com/diillson/aws-cost-console/internal/domain/entity"
)

func (app *CLIApp) accountsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "accounts",
		Aliases: []string{"account"},
		Short:   "Manage the stored AWS credential sets",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List stored accounts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			uc, err := app.useCase(cmd)
			if err != nil {
				return err
			}
			return uc.RunAccountsList(cmd.Context())
		},
	}

	add := &cobra.Command{
		Use:   "add",
		Short: "Store a new credential set",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			uc, err := app.useCase(cmd)
			if err != nil {
				return err
			}
			name, _ := cmd.Flags().GetString("name")
			accessKey, _ := cmd.Flags().GetString("access-key")
			secretKey, err := secretFlag(cmd, "secret-key", "Secret access key")
			if err != nil {
				return err
			}
			return uc.RunAccountAdd(cmd.Context(), entity.AwsAccountCreateParams{
				Name:      name,
				AccessKey: accessKey,
				SecretKey: secretKey,
			})
		},
	}
	credentialFlags(add)

	update := &cobra.Command{
		Use:   "update <id|name>",
		Short: "Change a stored credential set; omitted fields keep their value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			uc, err := app.useCase(cmd)
			if err != nil {
				return err
			}
			name, _ := cmd.Flags().GetString("name")
			accessKey, _ := cmd.Flags().GetString("access-key")
			secretKey, _ := cmd.Flags().GetString("secret-key")
			return uc.RunAccountUpdate(cmd.Context(), args[0], usecase.AccountPatch{
				Name:      name,
				AccessKey: accessKey,
				SecretKey: secretKey,
			})
		},
	}
	credentialFlags(update)

	del := &cobra.Command{
		Use:     "delete <id|name>",
		Aliases: []string{"rm"},
		Short:   "Delete a stored credential set",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			uc, err := app.useCase(cmd)
			if err != nil {
				return err
			}
			return uc.RunAccountDelete(cmd.Context(), args[0])
		},
	}

	importCmd := &cobra.Command{
		Use:   "import",
		Short: "Store the static credentials of a local AWS profile",
		Long: "Reads the access key pair of a profile from ~/.aws/credentials and ~/.aws/config.\n" +
			"Without --profile the available profiles are listed.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			uc, err := app.useCase(cmd)
			if err != nil {
				return err
			}
			profile, _ := cmd.Flags().GetString("profile")
			if profile == "" {
				uc.RunProfilesList()
				return nil
			}
			name, _ := cmd.Flags().GetString("name")
			return uc.RunAccountImport(cmd.Context(), profile, name)
		},
	}
	importCmd.Flags().StringP("profile", "p", "", "AWS profile to import")
	importCmd.Flags().String("name", "", "Account name (default: the profile name)")

	cmd.AddCommand(list, add, update, del, importCmd)
	return cmd
}

func credentialFlags(cmd *cobra.Command) {
	cmd.Flags().String("name", "", "Account name")
	cmd.Flags().String("access-key", "", "AWS access key id")
	cmd.Flags().String("secret-key", "", "AWS secret access key")
}
