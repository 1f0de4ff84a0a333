package repository

import (
	"context"

	"github.com/diillson/aws-cost-console/internal/domain/entity"
)

// CredentialRepository reads credential sets from the local AWS configuration.
type CredentialRepository interface {
	GetAWSProfiles() []string
	GetProfileCredentials(ctx context.Context, profile string) (entity.AwsAccountCreateParams, error)
}
