// internal/engine/router.go

// Package engine routes inbound messages through the hybrid pipeline:
// status intercepts first, then intent recognition, then the generative
// fallback when recognition is absent, weak or explicitly deferred. Every
// downstream failure is absorbed into a usable reply; a channel handler
// never sees an error from HandleMessage.
package engine

import (
	"context"
	"strings"
	"time"

	"edubot/internal/common/config"
	stderrors "edubot/internal/common/errors"
	"edubot/internal/common/logger"
	"edubot/internal/common/metrics"
	"edubot/internal/dialog"
	"edubot/internal/generative"
	"edubot/internal/models"
	"edubot/internal/respond"
)

// Reply sources, used in responses and metric labels.
const (
	SourceDialog     = "dialog"
	SourceGenerative = "generative"
	SourceStatus     = "status"
	SourceFallback   = "fallback"
)

type DialogEngine interface {
	Recognize(ctx context.Context, sessionID, text string) (*dialog.Recognition, error)
}

type Generator interface {
	Generate(ctx context.Context, prompt string, maxTokens int) (string, error)
}

// RecordStore is the application-record surface the router reads for
// status answers and writes after document uploads.
type RecordStore interface {
	GetApplication(ctx context.Context, userID string) (*models.Application, error)
	FindApplicationByName(ctx context.Context, name string) (*models.Application, error)
	PutApplication(ctx context.Context, app *models.Application) error
	GetUser(ctx context.Context, studentID string) (*models.User, error)
}

// Reply is the routed answer for one inbound message.
type Reply struct {
	Text       string
	Source     string
	Intent     string
	Confidence float64
	ShowUpload bool
}

type Router struct {
	dialog   DialogEngine
	gen      Generator
	store    RecordStore
	pipeline DocumentPipeline
	notifier CompletionNotifier
	channels config.ChannelsConfig
	degrade  *stderrors.DegradationHandler
	logger   logger.Logger
}

func NewRouter(
	dialogEngine DialogEngine,
	gen Generator,
	store RecordStore,
	pipeline DocumentPipeline,
	notifier CompletionNotifier,
	channels config.ChannelsConfig,
	log logger.Logger,
) *Router {
	return &Router{
		dialog:   dialogEngine,
		gen:      gen,
		store:    store,
		pipeline: pipeline,
		notifier: notifier,
		channels: channels,
		degrade:  stderrors.NewDegradationHandler(log),
		logger:   log,
	}
}

// HandleMessage routes one text message and always produces a reply.
func (r *Router) HandleMessage(ctx context.Context, channel, sessionID, userID, userName, message string) *Reply {
	start := time.Now()
	policy := r.channels.PolicyFor(channel)

	reply := r.route(ctx, channel, sessionID, userID, userName, message, policy)
	reply.Text = r.finish(channel, reply.Text, policy)

	metrics.MessagesProcessed.WithLabelValues(channel, reply.Source).Inc()
	metrics.MessageDuration.WithLabelValues(channel).Observe(time.Since(start).Seconds())

	return reply
}

func (r *Router) route(ctx context.Context, channel, sessionID, userID, userName, message string, policy config.ChannelPolicy) *Reply {
	if isStatusRequest(message) {
		return r.statusReply(ctx, channel, userID, userName)
	}

	if channel == models.ChannelWhatsApp {
		if id, ok := studentIDFrom(message); ok {
			return r.studentIDLookup(ctx, id)
		}
	}

	rec, err := r.dialog.Recognize(ctx, CleanSessionID(sessionID), message)
	if err != nil {
		r.absorb(channel, "dialog.Recognize", err)
		return r.generate(ctx, channel, userName, message, policy)
	}

	if !rec.HasReply || shouldFallBack(channel, message, rec, policy) {
		reply := r.generate(ctx, channel, userName, message, policy)
		reply.Intent = rec.Intent
		reply.Confidence = rec.Confidence
		return reply
	}

	text := rec.Reply
	if channel == models.ChannelWeb && containsAny(strings.ToLower(message), fundingKeywords) {
		text += fundingActions
	}

	return &Reply{
		Text:       text,
		Source:     SourceDialog,
		Intent:     rec.Intent,
		Confidence: rec.Confidence,
		ShowUpload: wantsUpload(channel, message),
	}
}

// generate answers through the text model, degrading to a canned line
// when the model call fails.
func (r *Router) generate(ctx context.Context, channel, userName, message string, policy config.ChannelPolicy) *Reply {
	prompt := generative.BuildPrompt(message, userName, channel)
	text, err := r.gen.Generate(ctx, prompt, policy.MaxTokens)
	if err != nil {
		r.absorb(channel, "generative.Generate", err)
		return &Reply{
			Text:       generative.FallbackReply(channel),
			Source:     SourceFallback,
			ShowUpload: wantsUpload(channel, message),
		}
	}

	text = respond.Clean(text, userName)
	if channel == models.ChannelWeb && containsAny(strings.ToLower(message), actionKeywords) {
		text += quickActions
	}

	return &Reply{
		Text:       text,
		Source:     SourceGenerative,
		ShowUpload: wantsUpload(channel, message),
	}
}

func (r *Router) statusReply(ctx context.Context, channel, userID, userName string) *Reply {
	if channel == models.ChannelWhatsApp {
		return &Reply{Text: whatsAppStatusPrompt, Source: SourceStatus}
	}

	if userID == "" && userName == "" {
		return &Reply{Text: "Please log in to check your application status.", Source: SourceStatus}
	}

	app, err := r.lookupApplication(ctx, userID, userName)
	if err != nil {
		r.absorb(channel, "store.GetApplication", err)
	}
	return &Reply{Text: respond.StatusForWeb(app), Source: SourceStatus}
}

func (r *Router) studentIDLookup(ctx context.Context, studentID string) *Reply {
	app, err := r.store.GetApplication(ctx, studentID)
	if err != nil {
		r.absorb(models.ChannelWhatsApp, "store.GetApplication", err)
	}
	if app == nil {
		return &Reply{
			Text:   "No application found for Student ID: " + studentID + ". Please check your ID and try again.",
			Source: SourceStatus,
		}
	}
	return &Reply{Text: respond.StatusForWhatsApp(app), Source: SourceStatus}
}

func (r *Router) lookupApplication(ctx context.Context, userID, userName string) (*models.Application, error) {
	if userID != "" {
		if app, err := r.store.GetApplication(ctx, userID); app != nil || err != nil {
			return app, err
		}
	}
	if userName != "" {
		return r.store.FindApplicationByName(ctx, userName)
	}
	return nil, nil
}

// finish applies the channel's delivery formatting. WhatsApp replies also
// unescape literal \n sequences the upstream bot emits.
func (r *Router) finish(channel, text string, policy config.ChannelPolicy) string {
	if channel == models.ChannelWhatsApp {
		text = strings.ReplaceAll(text, `\n`, "\n")
	}
	return respond.TruncateFor(text, policy.MaxReplyLength)
}

func (r *Router) absorb(channel, operation string, err error) {
	stdErr := r.degrade.Absorb(operation, err)
	metrics.MessageFailures.WithLabelValues(channel, string(stdErr.Code)).Inc()
}

func wantsUpload(channel, message string) bool {
	if channel != models.ChannelWeb {
		return false
	}
	lower := strings.ToLower(message)
	return strings.Contains(lower, "funding") || strings.Contains(lower, "documents")
}
