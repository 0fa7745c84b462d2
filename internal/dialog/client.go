// internal/dialog/client.go

// Package dialog wraps the managed intent-recognition service. One
// request in, one recognition out; no retries, the caller decides what a
// failure degrades to.
package dialog

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/lexruntimev2"

	stderrors "edubot/internal/common/errors"
	"edubot/internal/common/logger"
)

// LexAPI is the subset of the Lex runtime client the engine needs.
type LexAPI interface {
	RecognizeText(ctx context.Context, params *lexruntimev2.RecognizeTextInput, optFns ...func(*lexruntimev2.Options)) (*lexruntimev2.RecognizeTextOutput, error)
}

// Recognition is the distilled result of one recognition call. Confidence
// defaults to 1.0 when the service omits a score, so a missing score never
// triggers the low-confidence fallback on its own.
type Recognition struct {
	Reply      string
	HasReply   bool
	Intent     string
	Confidence float64
}

type Client struct {
	api        LexAPI
	botID      string
	botAliasID string
	localeID   string
	logger     logger.Logger
}

func NewClient(api LexAPI, botID, botAliasID, localeID string, log logger.Logger) *Client {
	return &Client{
		api:        api,
		botID:      botID,
		botAliasID: botAliasID,
		localeID:   localeID,
		logger:     log,
	}
}

// Recognize sends one utterance and returns the recognized intent, its
// confidence and the canned reply when the bot produced one.
func (c *Client) Recognize(ctx context.Context, sessionID, text string) (*Recognition, error) {
	out, err := c.api.RecognizeText(ctx, &lexruntimev2.RecognizeTextInput{
		BotId:      aws.String(c.botID),
		BotAliasId: aws.String(c.botAliasID),
		LocaleId:   aws.String(c.localeID),
		SessionId:  aws.String(sessionID),
		Text:       aws.String(text),
	})
	if err != nil {
		return nil, stderrors.NewDialogEngineFailedError(err)
	}

	rec := &Recognition{Confidence: 1.0}

	if len(out.Messages) > 0 && out.Messages[0].Content != nil {
		rec.Reply = *out.Messages[0].Content
		rec.HasReply = true
	}
	if out.SessionState != nil && out.SessionState.Intent != nil && out.SessionState.Intent.Name != nil {
		rec.Intent = *out.SessionState.Intent.Name
	}
	if len(out.Interpretations) > 0 && out.Interpretations[0].NluConfidence != nil {
		rec.Confidence = float64(out.Interpretations[0].NluConfidence.Score)
	}

	c.logger.Debug("Intent recognized", map[string]interface{}{
		"sessionId":  sessionID,
		"intent":     rec.Intent,
		"confidence": rec.Confidence,
		"hasReply":   rec.HasReply,
	})

	return rec, nil
}
