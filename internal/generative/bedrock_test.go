// internal/generative/bedrock_test.go
package generative

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	stderrors "edubot/internal/common/errors"
	"edubot/internal/common/logger"
)

// ==========================================
// TEST FAKES
// ==========================================

type fakeBedrockAPI struct {
	responseBody string
	err          error
	lastInput    *bedrockruntime.InvokeModelInput
}

func (f *fakeBedrockAPI) InvokeModel(ctx context.Context, params *bedrockruntime.InvokeModelInput, optFns ...func(*bedrockruntime.Options)) (*bedrockruntime.InvokeModelOutput, error) {
	f.lastInput = params
	if f.err != nil {
		return nil, f.err
	}
	return &bedrockruntime.InvokeModelOutput{Body: []byte(f.responseBody)}, nil
}

func newTestBedrockClient(api BedrockAPI) *Client {
	return NewClient(api, "anthropic.claude-3-haiku-20240307-v1:0", 0.6, logger.NewNoOpLogger())
}

// ==========================================
// GENERATE TESTS
// ==========================================

func TestGenerate_Success(t *testing.T) {
	api := &fakeBedrockAPI{
		responseBody: `{"content":[{"text":"  Applications close December 15.  "}]}`,
	}

	text, err := newTestBedrockClient(api).Generate(context.Background(), "when do applications close?", 150)
	require.NoError(t, err)
	assert.Equal(t, "Applications close December 15.", text)

	require.NotNil(t, api.lastInput)
	assert.Equal(t, "anthropic.claude-3-haiku-20240307-v1:0", *api.lastInput.ModelId)
	assert.Equal(t, "application/json", *api.lastInput.ContentType)

	var req anthropicRequest
	require.NoError(t, json.Unmarshal(api.lastInput.Body, &req))
	assert.Equal(t, "bedrock-2023-05-31", req.AnthropicVersion)
	assert.Equal(t, 150, req.MaxTokens)
	assert.InDelta(t, 0.6, req.Temperature, 0.001)
	require.Len(t, req.Messages, 1)
	assert.Equal(t, "user", req.Messages[0].Role)
	assert.Equal(t, "when do applications close?", req.Messages[0].Content)
}

func TestGenerate_TokenBudgetPerCall(t *testing.T) {
	api := &fakeBedrockAPI{responseBody: `{"content":[{"text":"ok"}]}`}
	client := newTestBedrockClient(api)

	_, err := client.Generate(context.Background(), "hi", 80)
	require.NoError(t, err)

	var req anthropicRequest
	require.NoError(t, json.Unmarshal(api.lastInput.Body, &req))
	assert.Equal(t, 80, req.MaxTokens)
}

func TestGenerate_APIError(t *testing.T) {
	api := &fakeBedrockAPI{err: errors.New("model unavailable")}

	_, err := newTestBedrockClient(api).Generate(context.Background(), "hello", 150)
	require.Error(t, err)
	assert.Equal(t, stderrors.ErrCodeGenerationFailed, stderrors.Normalize(err).Code)
}

func TestGenerate_MalformedResponse(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", "<html>bad gateway</html>"},
		{"empty content", `{"content":[]}`},
		{"missing content", `{}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := &fakeBedrockAPI{responseBody: tt.body}
			_, err := newTestBedrockClient(api).Generate(context.Background(), "hello", 150)
			require.Error(t, err)
			assert.Equal(t, stderrors.ErrCodeGenerationFailed, stderrors.Normalize(err).Code)
		})
	}
}
