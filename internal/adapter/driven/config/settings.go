package config

import (
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/joho/godotenv"

	"github.com/diillson/aws-cost-console/internal/shared/types"
)

const (
	EnvAPIURL    = "COST_CONSOLE_API_URL"
	EnvStateFile = "COST_CONSOLE_STATE_FILE"
	EnvRegion    = "COST_CONSOLE_REGION"
	EnvLogLevel  = "LOG_LEVEL"

	defaultAPIURL   = "http://localhost:5000"
	defaultLogLevel = "info"
)

// LoadDotEnv reads .env files into the process environment. Missing files are ignored
// and variables already set are never overwritten.
func LoadDotEnv(files ...string) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		_ = godotenv.Load(f)
	}
}

// Defaults returns the configuration used when nothing else is set.
func Defaults() types.Config {
	return types.Config{
		APIURL:    defaultAPIURL,
		StateFile: defaultStateFile(),
		Region:    types.DefaultRegion,
		LogLevel:  defaultLogLevel,
		Dir:       ".",
	}
}

func defaultStateFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, "aws-cost-console", "state.db")
}

// FromEnv returns the values set through environment variables. Unset variables are empty.
func FromEnv() types.Config {
	return types.Config{
		APIURL:    os.Getenv(EnvAPIURL),
		StateFile: os.Getenv(EnvStateFile),
		Region:    os.Getenv(EnvRegion),
		LogLevel:  os.Getenv(EnvLogLevel),
	}
}

// Resolve merges the layers with flags > env > file > defaults. file may be nil.
func Resolve(args types.CLIArgs, file *types.Config) types.Config {
	cfg := Defaults()
	if file != nil {
		overlay(&cfg, *file)
	}
	overlay(&cfg, FromEnv())
	overlay(&cfg, types.Config{
		APIURL:    args.APIURL,
		StateFile: args.StateFile,
		Region:    args.Region,
		Account:   args.Account,
		LogLevel:  args.LogLevel,
	})
	return cfg
}

func overlay(dst *types.Config, src types.Config) {
	if src.APIURL != "" {
		dst.APIURL = src.APIURL
	}
	if src.StateFile != "" {
		dst.StateFile = src.StateFile
	}
	if src.Region != "" {
		dst.Region = src.Region
	}
	if src.Account != "" {
		dst.Account = src.Account
	}
	if src.LogLevel != "" {
		dst.LogLevel = src.LogLevel
	}
	if len(src.ReportType) > 0 {
		dst.ReportType = src.ReportType
	}
	if src.Dir != "" {
		dst.Dir = src.Dir
	}
}

// Validate reports every invalid setting at once.
func Validate(cfg types.Config) error {
	var result *multierror.Error

	if u, err := url.Parse(cfg.APIURL); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		result = multierror.Append(result, fmt.Errorf("api_url %q must be an http or https URL", cfg.APIURL))
	}
	if !types.IsKnownRegion(cfg.Region) {
		result = multierror.Append(result, fmt.Errorf("region %q is not one of %s", cfg.Region, strings.Join(types.Regions, ", ")))
	}
	if strings.TrimSpace(cfg.StateFile) == "" {
		result = multierror.Append(result, fmt.Errorf("state_file must not be empty"))
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		result = multierror.Append(result, fmt.Errorf("log_level %q is not one of debug, info, warn, error", cfg.LogLevel))
	}
	for _, rt := range cfg.ReportType {
		switch strings.ToLower(rt) {
		case "csv", "json", "pdf":
		default:
			result = multierror.Append(result, fmt.Errorf("report_type %q is not one of csv, json, pdf", rt))
		}
	}

	return result.ErrorOrNil()
}
