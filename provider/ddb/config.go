/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	"fmt"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"go.uber.org/zap"
)

// Config holds the connection settings of a DynamoDB client.
type Config struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	// Endpoint overrides the service endpoint, e.g. for DynamoDB Local.
	Endpoint string
}

// ConfigFromEnv reads AWS_REGION, AWS_ACCESS_KEY_ID, AWS_SECRET_ACCESS_KEY and
// DYNAMODB_ENDPOINT.
func ConfigFromEnv() Config {
	return Config{
		Region:          os.Getenv("AWS_REGION"),
		AccessKeyID:     os.Getenv("AWS_ACCESS_KEY_ID"),
		SecretAccessKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
		Endpoint:        os.Getenv("DYNAMODB_ENDPOINT"),
	}
}

// NewClient initializes a DynamoDB client. Static credentials are used when both
// keys are set; otherwise the default AWS credential chain applies.
func NewClient(ctx context.Context, cfg Config, logger *zap.Logger) (*sdk.Client, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	loadOpts := []func(*config.LoadOptions) error{}
	if cfg.Region != "" {
		loadOpts = append(loadOpts, config.WithRegion(cfg.Region))
	}
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	client := sdk.NewFromConfig(awsCfg, func(o *sdk.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})

	logger.Info("DynamoDB client initialized",
		zap.String("region", awsCfg.Region),
		zap.String("endpoint", cfg.Endpoint))
	return client, nil
}
