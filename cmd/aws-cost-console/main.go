package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/pterm/pterm"

	"github.com/diillson/aws-cost-console/internal/adapter/driven/api"
	"github.com/diillson/aws-cost-console/internal/adapter/driven/awsprofile"
	"github.com/diillson/aws-cost-console/internal/adapter/driven/config"
	"github.com/diillson/aws-cost-console/internal/adapter/driven/export"
	"github.com/diillson/aws-cost-console/internal/adapter/driven/state"
	"github.com/diillson/aws-cost-console/internal/adapter/driving/cli"
	"github.com/diillson/aws-cost-console/internal/adapter/driving/tui"
	"github.com/diillson/aws-cost-console/internal/application/usecase"
	"github.com/diillson/aws-cost-console/internal/domain/repository"
	"github.com/diillson/aws-cost-console/internal/shared/logging"
	"github.com/diillson/aws-cost-console/internal/shared/types"
	"github.com/diillson/aws-cost-console/pkg/console"
	"github.com/diillson/aws-cost-console/pkg/version"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	// Inicializa o aplicativo CLI
	app := cli.NewCLIApp(version.Version)
	app.SetBootstrap(bootstrap)
	app.SetInteractiveRunner(func(ctx context.Context, s *cli.Session) error {
		return tui.Run(ctx, s.UseCase, s.Config, slog.Default())
	})

	err := app.ExecuteContext(ctx)
	stop()
	if err != nil {
		pterm.Error.Println(types.ErrorMessage(err))
		os.Exit(1)
	}
}

// bootstrap resolve a configuração e inicializa os repositórios e o caso de uso.
func bootstrap(ctx context.Context, args types.CLIArgs) (*cli.Session, error) {
	config.LoadDotEnv()

	var fileCfg *types.Config
	if args.ConfigFile != "" {
		loaded, err := config.NewConfigRepository().LoadConfigFile(args.ConfigFile)
		if err != nil {
			return nil, err
		}
		fileCfg = loaded
	}

	cfg := config.Resolve(args, fileCfg)
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	logger := logging.Setup(cfg.LogLevel)

	var tokens repository.TokenStore
	closeFn := func() error { return nil }
	if args.Ephemeral {
		tokens = state.NewMemoryStore()
	} else {
		store, err := state.NewStore(cfg.StateFile, logging.Component(logger, "state"))
		if err != nil {
			return nil, err
		}
		tokens = store
		closeFn = store.Close
	}

	client := api.NewClient(cfg.APIURL, tokens, logging.Component(logger, "api"))
	dashboardUseCase := usecase.NewDashboardUseCase(
		client,
		usecase.NewAccountContext(client, logger),
		export.NewExportRepository(),
		awsprofile.NewCredentialRepository(),
		console.NewConsole(),
		logger,
	)
	logger.Debug("session ready", "api_url", cfg.APIURL, "ephemeral", args.Ephemeral)

	return &cli.Session{Config: cfg, UseCase: dashboardUseCase, Close: closeFn}, nil
}
