package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/diillson/aws-cost-console/internal/domain/entity"
	"github.com/diillson/aws-cost-console/internal/shared/types"
)

// viewArgs reads the view flags, falling back to the session configuration.
func viewArgs(cmd *cobra.Command, cfg types.Config) (*types.ViewArgs, error) {
	flags := cmd.Flags()
	args := &types.ViewArgs{}
	if flags.Lookup("region") != nil {
		args.Region, _ = flags.GetString("region")
	}
	if args.Region == "" {
		args.Region = cfg.Region
	}
	if flags.Lookup("start") != nil {
		args.Start, _ = flags.GetString("start")
		args.End, _ = flags.GetString("end")
	}
	if flags.Lookup("tag") != nil {
		args.TagFilters, _ = flags.GetStringArray("tag")
	}
	if flags.Lookup("report-name") != nil {
		args.ReportName, _ = flags.GetString("report-name")
		args.ReportType, _ = flags.GetStringSlice("report-type")
		if !flags.Changed("report-type") && len(cfg.ReportType) > 0 {
			args.ReportType = cfg.ReportType
		}
		dir, _ := flags.GetString("dir")
		if dir == "" {
			dir = cfg.Dir
		}
		abs, err := absDir(dir)
		if err != nil {
			return nil, err
		}
		args.Dir = abs
	}
	if args.Region != "" && !types.IsKnownRegion(args.Region) {
		return nil, types.NewValidationError("unknown region %q", args.Region)
	}
	return args, nil
}

// withAccount resolves the session, the view flags and the selected account, then runs fn.
func (app *CLIApp) withAccount(cmd *cobra.Command, fn func(acc *entity.AwsAccount, args *types.ViewArgs, session *Session) error) error {
	session, err := app.sessionFor(cmd)
	if err != nil {
		return err
	}
	args, err := viewArgs(cmd, session.Config)
	if err != nil {
		return err
	}
	acc, err := session.UseCase.ResolveAccount(cmd.Context(), session.Config.Account)
	if err != nil {
		return err
	}
	return fn(acc, args, session)
}

func dateFlags(cmd *cobra.Command, defaultWindow string) {
	cmd.Flags().String("start", "", "Start date YYYY-MM-DD (default: "+defaultWindow+")")
	cmd.Flags().String("end", "", "End date YYYY-MM-DD (default: today)")
}

func (app *CLIApp) overviewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "overview",
		Short: "Show total, average daily cost and monthly cost by service",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.withAccount(cmd, func(acc *entity.AwsAccount, args *types.ViewArgs, s *Session) error {
				return s.UseCase.RunOverview(cmd.Context(), acc, args)
			})
		},
	}
	cmd.Flags().StringP("region", "r", "", "AWS region (default us-east-1)")
	dateFlags(cmd, "180 days ago")
	return cmd
}

func (app *CLIApp) tagsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tags",
		Short: "List cost allocation tag keys and their values",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.withAccount(cmd, func(acc *entity.AwsAccount, args *types.ViewArgs, s *Session) error {
				return s.UseCase.RunTags(cmd.Context(), acc, args)
			})
		},
	}
	dateFlags(cmd, "30 days ago")
	return cmd
}

func (app *CLIApp) tagCostCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tagcost",
		Short: "Show costs filtered by tags and optionally export them",
		Example: "  aws-cost-console tagcost --tag Team=DevOps,Platform --tag Env=prod\n" +
			"  aws-cost-console tagcost --tag Team=DevOps -n devops -y csv,pdf -d reports",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.withAccount(cmd, func(acc *entity.AwsAccount, args *types.ViewArgs, s *Session) error {
				if len(args.TagFilters) == 0 {
					return errors.New("at least one --tag is required")
				}
				return s.UseCase.RunTagCost(cmd.Context(), acc, args)
			})
		},
	}
	dateFlags(cmd, "30 days ago")
	cmd.Flags().StringArrayP("tag", "g", nil, "Tag filter Key=value1,value2 (repeatable)")
	cmd.Flags().StringP("report-name", "n", "", "Export the result under this base name")
	cmd.Flags().StringSliceP("report-type", "y", []string{"csv"}, "Report types: csv, json, pdf")
	cmd.Flags().StringP("dir", "d", "", "Directory to save the report files (default: current directory)")
	return cmd
}

func (app *CLIApp) budgetsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "budgets",
		Short: "Show budget usage of the account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.withAccount(cmd, func(acc *entity.AwsAccount, _ *types.ViewArgs, s *Session) error {
				return s.UseCase.RunBudgets(cmd.Context(), acc)
			})
		},
	}
}

func (app *CLIApp) tuiCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive dashboard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if app.interactive == nil {
				return errors.New("interactive dashboard is not available")
			}
			session, err := app.sessionFor(cmd)
			if err != nil {
				return err
			}
			return app.interactive(cmd.Context(), session)
		},
	}
}
