package awsprofile

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"

	"github.com/diillson/aws-cost-console/internal/domain/entity"
	"github.com/diillson/aws-cost-console/internal/domain/repository"
)

// CredentialRepositoryImpl lê perfis do diretório ~/.aws local.
type CredentialRepositoryImpl struct {
	credentialsFile string
	configFile      string
}

// NewCredentialRepository uses ~/.aws/credentials and ~/.aws/config.
func NewCredentialRepository() repository.CredentialRepository {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return &CredentialRepositoryImpl{}
	}
	return NewCredentialRepositoryWithFiles(
		filepath.Join(homeDir, ".aws", "credentials"),
		filepath.Join(homeDir, ".aws", "config"),
	)
}

// NewCredentialRepositoryWithFiles reads profiles from the given shared files.
func NewCredentialRepositoryWithFiles(credentialsFile, configFile string) *CredentialRepositoryImpl {
	return &CredentialRepositoryImpl{credentialsFile: credentialsFile, configFile: configFile}
}

var profileRegex = regexp.MustCompile(`\[([^]]+)\]`)

// GetAWSProfiles lista os perfis declarados nos arquivos compartilhados, ordenados.
func (r *CredentialRepositoryImpl) GetAWSProfiles() []string {
	profiles := make(map[string]bool)

	parseFile := func(path string, isConfig bool) {
		if path == "" {
			return
		}
		content, err := os.ReadFile(path)
		if err != nil {
			return
		}
		for _, match := range profileRegex.FindAllStringSubmatch(string(content), -1) {
			name := strings.TrimSpace(match[1])
			if isConfig {
				if strings.HasPrefix(name, "sso-session ") || strings.HasPrefix(name, "services ") {
					continue
				}
				name = strings.TrimPrefix(name, "profile ")
			}
			profiles[name] = true
		}
	}

	parseFile(r.credentialsFile, false)
	parseFile(r.configFile, true)

	result := make([]string, 0, len(profiles))
	for profile := range profiles {
		result = append(result, profile)
	}
	sort.Strings(result)
	return result
}

func (r *CredentialRepositoryImpl) getAWSConfig(ctx context.Context, profile string) (aws.Config, error) {
	opts := []func(*config.LoadOptions) error{config.WithSharedConfigProfile(profile)}
	if r.credentialsFile != "" {
		opts = append(opts, config.WithSharedCredentialsFiles([]string{r.credentialsFile}))
	}
	if r.configFile != "" {
		opts = append(opts, config.WithSharedConfigFiles([]string{r.configFile}))
	}

	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("failed to load AWS config for profile %s: %w", profile, err)
	}
	return cfg, nil
}

// GetProfileCredentials resolves the static keys of profile. The account is named after it.
func (r *CredentialRepositoryImpl) GetProfileCredentials(ctx context.Context, profile string) (entity.AwsAccountCreateParams, error) {
	cfg, err := r.getAWSConfig(ctx, profile)
	if err != nil {
		return entity.AwsAccountCreateParams{}, err
	}

	creds, err := cfg.Credentials.Retrieve(ctx)
	if err != nil {
		return entity.AwsAccountCreateParams{}, fmt.Errorf("failed to resolve credentials for profile %s: %w", profile, err)
	}
	if creds.SessionToken != "" {
		return entity.AwsAccountCreateParams{}, fmt.Errorf("profile %s resolves to temporary credentials; only static access keys can be stored", profile)
	}

	return entity.AwsAccountCreateParams{
		Name:      profile,
		AccessKey: creds.AccessKeyID,
		SecretKey: creds.SecretAccessKey,
	}, nil
}
