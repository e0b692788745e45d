package aws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/sqs"

	"go-weather/pkg/resource"
)

// CloudConfig holds the AWS settings read from app.cloud.*
type CloudConfig struct {
	Region          string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
}

// CloudConfigFromProperties reads the AWS settings from the application properties
func CloudConfigFromProperties() CloudConfig {
	return CloudConfig{
		Region:          resource.GetString("app.cloud.aws-region"),
		Endpoint:        resource.GetString("app.cloud.aws-endpoint"),
		AccessKeyID:     resource.GetString("app.cloud.aws-access-key-id"),
		SecretAccessKey: resource.GetString("app.cloud.aws-secret-access-key"),
	}
}

// LoadConfig builds the SDK configuration. Static credentials are used only when both
// key parts are set, otherwise the default credential chain applies.
func LoadConfig(ctx context.Context, cloud CloudConfig) (aws.Config, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cloud.Region),
	}

	if cloud.AccessKeyID != "" && cloud.SecretAccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cloud.AccessKeyID, cloud.SecretAccessKey, ""),
		))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return cfg, nil
}

// NewSqsClient creates an SQS client, pointed at a custom endpoint (LocalStack) when configured
func NewSqsClient(cfg aws.Config, cloud CloudConfig) *sqs.Client {
	return sqs.NewFromConfig(cfg, func(o *sqs.Options) {
		if cloud.Endpoint != "" {
			o.BaseEndpoint = aws.String(cloud.Endpoint)
		}
	})
}
