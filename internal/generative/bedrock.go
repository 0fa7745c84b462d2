// internal/generative/bedrock.go
package generative

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"

	stderrors "edubot/internal/common/errors"
	"edubot/internal/common/logger"
)

// BedrockAPI is the subset of the Bedrock runtime client used here.
type BedrockAPI interface {
	InvokeModel(ctx context.Context, params *bedrockruntime.InvokeModelInput, optFns ...func(*bedrockruntime.Options)) (*bedrockruntime.InvokeModelOutput, error)
}

const anthropicVersion = "bedrock-2023-05-31"

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicRequest struct {
	AnthropicVersion string             `json:"anthropic_version"`
	MaxTokens        int                `json:"max_tokens"`
	Temperature      float64            `json:"temperature"`
	Messages         []anthropicMessage `json:"messages"`
}

type anthropicResponse struct {
	Content []struct {
		Text string `json:"text"`
	} `json:"content"`
}

// Client invokes a single text model with a fixed temperature. Token
// budget comes per call because channels cap replies differently.
type Client struct {
	api         BedrockAPI
	modelID     string
	temperature float64
	logger      logger.Logger
}

func NewClient(api BedrockAPI, modelID string, temperature float64, log logger.Logger) *Client {
	return &Client{
		api:         api,
		modelID:     modelID,
		temperature: temperature,
		logger:      log,
	}
}

// Generate runs one prompt through the model and returns the trimmed
// completion text. No retries; callers degrade to a canned reply.
func (c *Client) Generate(ctx context.Context, prompt string, maxTokens int) (string, error) {
	body, err := json.Marshal(anthropicRequest{
		AnthropicVersion: anthropicVersion,
		MaxTokens:        maxTokens,
		Temperature:      c.temperature,
		Messages: []anthropicMessage{
			{Role: "user", Content: prompt},
		},
	})
	if err != nil {
		return "", stderrors.NewGenerationFailedError(err)
	}

	out, err := c.api.InvokeModel(ctx, &bedrockruntime.InvokeModelInput{
		ModelId:     aws.String(c.modelID),
		ContentType: aws.String("application/json"),
		Accept:      aws.String("application/json"),
		Body:        body,
	})
	if err != nil {
		return "", stderrors.NewGenerationFailedError(err)
	}

	var resp anthropicResponse
	if err := json.Unmarshal(out.Body, &resp); err != nil {
		return "", stderrors.NewGenerationFailedError(err)
	}
	if len(resp.Content) == 0 {
		return "", stderrors.NewGenerationFailedError(fmt.Errorf("model returned no content blocks"))
	}

	text := strings.TrimSpace(resp.Content[0].Text)
	c.logger.Debug("Generated reply", map[string]interface{}{
		"modelId":   c.modelID,
		"maxTokens": maxTokens,
		"length":    len(text),
	})

	return text, nil
}
