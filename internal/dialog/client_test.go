// internal/dialog/client_test.go
package dialog

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/lexruntimev2"
	"github.com/aws/aws-sdk-go-v2/service/lexruntimev2/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	stderrors "edubot/internal/common/errors"
	"edubot/internal/common/logger"
)

// ==========================================
// TEST FAKES
// ==========================================

type fakeLexAPI struct {
	output    *lexruntimev2.RecognizeTextOutput
	err       error
	lastInput *lexruntimev2.RecognizeTextInput
}

func (f *fakeLexAPI) RecognizeText(ctx context.Context, params *lexruntimev2.RecognizeTextInput, optFns ...func(*lexruntimev2.Options)) (*lexruntimev2.RecognizeTextOutput, error) {
	f.lastInput = params
	return f.output, f.err
}

func newTestClient(api LexAPI) *Client {
	return NewClient(api, "BOTID", "ALIASID", "en_US", logger.NewNoOpLogger())
}

// ==========================================
// RECOGNIZE TESTS
// ==========================================

func TestRecognize_FullResponse(t *testing.T) {
	api := &fakeLexAPI{
		output: &lexruntimev2.RecognizeTextOutput{
			Messages: []types.Message{
				{Content: aws.String("You can apply online at our portal.")},
			},
			SessionState: &types.SessionState{
				Intent: &types.Intent{Name: aws.String("ApplicationProcess")},
			},
			Interpretations: []types.Interpretation{
				{NluConfidence: &types.ConfidenceScore{Score: 0.92}},
			},
		},
	}

	rec, err := newTestClient(api).Recognize(context.Background(), "session-1", "how do I apply")
	require.NoError(t, err)

	assert.True(t, rec.HasReply)
	assert.Equal(t, "You can apply online at our portal.", rec.Reply)
	assert.Equal(t, "ApplicationProcess", rec.Intent)
	assert.InDelta(t, 0.92, rec.Confidence, 0.001)

	require.NotNil(t, api.lastInput)
	assert.Equal(t, "BOTID", *api.lastInput.BotId)
	assert.Equal(t, "session-1", *api.lastInput.SessionId)
	assert.Equal(t, "how do I apply", *api.lastInput.Text)
}

func TestRecognize_NoMessages(t *testing.T) {
	api := &fakeLexAPI{
		output: &lexruntimev2.RecognizeTextOutput{
			SessionState: &types.SessionState{
				Intent: &types.Intent{Name: aws.String("FallbackIntent")},
			},
		},
	}

	rec, err := newTestClient(api).Recognize(context.Background(), "session-1", "something odd")
	require.NoError(t, err)

	assert.False(t, rec.HasReply)
	assert.Empty(t, rec.Reply)
	assert.Equal(t, "FallbackIntent", rec.Intent)
}

func TestRecognize_MissingConfidenceDefaultsToFull(t *testing.T) {
	api := &fakeLexAPI{
		output: &lexruntimev2.RecognizeTextOutput{
			Messages: []types.Message{{Content: aws.String("Hi!")}},
		},
	}

	rec, err := newTestClient(api).Recognize(context.Background(), "session-1", "hello")
	require.NoError(t, err)
	assert.Equal(t, 1.0, rec.Confidence)
}

func TestRecognize_ServiceError(t *testing.T) {
	api := &fakeLexAPI{err: errors.New("throttled")}

	rec, err := newTestClient(api).Recognize(context.Background(), "session-1", "hello")
	require.Error(t, err)
	assert.Nil(t, rec)

	stdErr := stderrors.Normalize(err)
	assert.Equal(t, stderrors.ErrCodeDialogEngineFailed, stdErr.Code)
	assert.False(t, stdErr.Retryable)
}
