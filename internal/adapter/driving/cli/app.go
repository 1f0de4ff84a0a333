package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/diillson/aws-cost-console/internal/application/usecase"
	"github.com/diillson/aws-cost-console/internal/shared/types"
	"github.com/diillson/aws-cost-console/pkg/version"
)

// Session é o que um comando precisa depois que as flags globais foram resolvidas.
type Session struct {
	Config  types.Config
	UseCase *usecase.DashboardUseCase
	Close   func() error
}

// Bootstrap builds a Session from the global flags.
type Bootstrap func(ctx context.Context, args types.CLIArgs) (*Session, error)

// InteractiveRunner starts the full-screen dashboard.
type InteractiveRunner func(ctx context.Context, session *Session) error

// CLIApp represents the command-line interface application.
type CLIApp struct {
	rootCmd     *cobra.Command
	version     string
	bootstrap   Bootstrap
	interactive InteractiveRunner
	session     *Session
}

// NewCLIApp cria uma nova aplicação CLI.
func NewCLIApp(versionStr string) *CLIApp {
	app := &CLIApp{
		version: versionStr,
	}

	rootCmd := &cobra.Command{
		Use:           "aws-cost-console",
		Short:         "Terminal client for the AWS cost dashboard",
		Version:       version.FormatVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          app.runRoot,
	}

	rootCmd.SetVersionTemplate(`{{printf "AWS Cost Console version: %s\n" .Version}}`)

	flags := rootCmd.PersistentFlags()
	flags.StringP("config-file", "C", "", "Path to a TOML, YAML, or JSON configuration file")
	flags.String("api-url", "", "Base URL of the cost dashboard API (default http://localhost:5000)")
	flags.String("state-file", "", "SQLite file holding the session token")
	flags.StringP("account", "a", "", "AWS account id or name to use (default: the first stored account)")
	flags.String("log-level", "", "Diagnostic log level: debug, info, warn, error")
	flags.Bool("ephemeral", false, "Keep the session token in memory only")

	rootCmd.AddCommand(
		app.signUpCommand(),
		app.signInCommand(),
		app.signOutCommand(),
		app.passwordCommand(),
		app.userCommand(),
		app.accountsCommand(),
		app.overviewCommand(),
		app.tagsCommand(),
		app.tagCostCommand(),
		app.budgetsCommand(),
		app.tuiCommand(),
	)

	app.rootCmd = rootCmd
	return app
}

// Execute runs the CLI application.
func (app *CLIApp) Execute() error {
	return app.ExecuteContext(context.Background())
}

// ExecuteContext runs the CLI application with ctx as the parent of every command.
func (app *CLIApp) ExecuteContext(ctx context.Context) error {
	defer app.closeSession()
	return app.rootCmd.ExecuteContext(ctx)
}

// SetBootstrap sets the function that wires the use case once flags are parsed.
func (app *CLIApp) SetBootstrap(b Bootstrap) {
	app.bootstrap = b
}

// SetInteractiveRunner sets the function behind the tui command.
func (app *CLIApp) SetInteractiveRunner(r InteractiveRunner) {
	app.interactive = r
}

// SetArgs overrides os.Args[1:], mostly for tests.
func (app *CLIApp) SetArgs(args []string) {
	app.rootCmd.SetArgs(args)
}

// parseArgs reads the global flags into a CLIArgs struct.
func (app *CLIApp) parseArgs(cmd *cobra.Command) types.CLIArgs {
	flags := cmd.Flags()
	configFile, _ := flags.GetString("config-file")
	apiURL, _ := flags.GetString("api-url")
	stateFile, _ := flags.GetString("state-file")
	account, _ := flags.GetString("account")
	logLevel, _ := flags.GetString("log-level")
	ephemeral, _ := flags.GetBool("ephemeral")

	return types.CLIArgs{
		ConfigFile: configFile,
		APIURL:     apiURL,
		StateFile:  stateFile,
		Account:    account,
		LogLevel:   logLevel,
		Ephemeral:  ephemeral,
	}
}

// sessionFor returns the session of this invocation, building it on first use.
func (app *CLIApp) sessionFor(cmd *cobra.Command) (*Session, error) {
	if app.session != nil {
		return app.session, nil
	}
	if app.bootstrap == nil {
		return nil, errors.New("cli: no bootstrap configured")
	}
	session, err := app.bootstrap(cmd.Context(), app.parseArgs(cmd))
	if err != nil {
		return nil, err
	}
	app.session = session
	return session, nil
}

func (app *CLIApp) closeSession() {
	if app.session != nil && app.session.Close != nil {
		_ = app.session.Close()
	}
	app.session = nil
}

// useCase is the common prologue of commands that only need the use case.
func (app *CLIApp) useCase(cmd *cobra.Command) (*usecase.DashboardUseCase, error) {
	session, err := app.sessionFor(cmd)
	if err != nil {
		return nil, err
	}
	return session.UseCase, nil
}

// runRoot exibe o banner e a ajuda quando nenhum subcomando é informado.
func (app *CLIApp) runRoot(cmd *cobra.Command, args []string) error {
	displayWelcomeBanner(cmd.OutOrStdout())
	checkLatestVersion(cmd.Context(), app.version)
	return cmd.Help()
}

// absDir resolves the report directory, defaulting to the working directory.
func absDir(dir string) (string, error) {
	if dir == "" || dir == "." {
		return os.Getwd()
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("report directory: %w", err)
	}
	return abs, nil
}
