// internal/common/aws/clients.go

// Package aws builds the service clients the application talks to. One
// shared configuration load; every client hangs off it.
package aws

import (
	"context"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/lexruntimev2"
	"github.com/aws/aws-sdk-go-v2/service/textract"
)

// LoadConfig resolves the shared AWS configuration for a region.
func LoadConfig(ctx context.Context, region string) (awssdk.Config, error) {
	return config.LoadDefaultConfig(ctx, config.WithRegion(region))
}

func NewLexClient(cfg awssdk.Config) *lexruntimev2.Client {
	return lexruntimev2.NewFromConfig(cfg)
}

func NewTextractClient(cfg awssdk.Config) *textract.Client {
	return textract.NewFromConfig(cfg)
}

func NewBedrockClient(cfg awssdk.Config) *bedrockruntime.Client {
	return bedrockruntime.NewFromConfig(cfg)
}

func NewDynamoClient(cfg awssdk.Config) *dynamodb.Client {
	return dynamodb.NewFromConfig(cfg)
}
