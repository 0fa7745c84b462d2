// internal/channels/whatsapp/handler.go

// Package whatsapp implements the Twilio WhatsApp webhook. Twilio posts
// form-encoded messages and expects TwiML back; anything other than a
// well-formed TwiML reply shows the sender a delivery error, so the
// handler answers every request with a message, including its own failures.
package whatsapp

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"edubot/internal/common/config"
	"edubot/internal/common/logger"
	"edubot/internal/engine"
	"edubot/internal/models"
)

const technicalDifficulties = "Sorry, I'm having technical difficulties. Please try again later."

// MediaFetcher downloads Twilio-hosted media, which sits behind
// per-account basic auth.
type MediaFetcher interface {
	GetWithBasicAuth(ctx context.Context, url, username, password string) ([]byte, error)
}

type Handler struct {
	engine *engine.Router
	media  MediaFetcher
	twilio config.IntegrationConfig
	logger logger.Logger
}

func NewHandler(router *engine.Router, media MediaFetcher, twilio config.IntegrationConfig, log logger.Logger) *Handler {
	return &Handler{
		engine: router,
		media:  media,
		twilio: twilio,
		logger: log,
	}
}

// Routes wires the webhook endpoints. Twilio POSTs messages; the GET
// answers console health probes.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.Webhook)
	r.Get("/", h.Health)
	return r
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	fmt.Fprint(w, "EduBot WhatsApp Webhook Active")
}

// Webhook handles one inbound WhatsApp message, text or media.
func (h *Handler) Webhook(w http.ResponseWriter, r *http.Request) {
	defer func() {
		if rec := recover(); rec != nil {
			h.logger.Error("Panic in WhatsApp webhook", map[string]interface{}{
				"panic": fmt.Sprintf("%v", rec),
			})
			h.writeTwiML(w, technicalDifficulties)
		}
	}()

	if err := r.ParseForm(); err != nil {
		h.logger.WithError(err).Warn("Unparseable webhook form", nil)
		h.writeTwiML(w, technicalDifficulties)
		return
	}

	from := r.FormValue("From")
	body := strings.TrimSpace(r.FormValue("Body"))
	profileName := r.FormValue("ProfileName")
	if profileName == "" {
		profileName = "Student"
	}

	h.logger.Info("WhatsApp message received", map[string]interface{}{
		"from":     from,
		"numMedia": r.FormValue("NumMedia"),
	})

	var reply string
	if r.FormValue("NumMedia") != "" && r.FormValue("NumMedia") != "0" {
		reply = h.handleMedia(r, from, profileName)
	} else {
		result := h.engine.HandleMessage(r.Context(), models.ChannelWhatsApp, from, from, profileName, body)
		reply = result.Text
	}
	h.writeTwiML(w, reply)
}

// handleMedia downloads the attached document and runs it through the
// upload pipeline. Every failure mode gets its own user-facing message.
func (h *Handler) handleMedia(r *http.Request, from, profileName string) string {
	mediaURL := r.FormValue("MediaUrl0")
	if mediaURL == "" {
		return "❌ No document received. Please try uploading again."
	}

	contentType := r.FormValue("MediaContentType0")
	if !strings.Contains(contentType, "image") && !strings.Contains(contentType, "pdf") {
		return "❌ Please upload images (JPG, PNG) or PDF files only."
	}

	document, err := h.media.GetWithBasicAuth(r.Context(), mediaURL, h.twilio.Twilio.AccountSID, h.twilio.Twilio.AuthToken)
	if err != nil {
		h.logger.WithError(err).Error("Media download failed", map[string]interface{}{
			"from": from,
		})
		return `❌ **Document Download Failed**

I couldn't download your document from WhatsApp. Please try:
• Uploading the document again
• Checking your internet connection
• Sending a smaller file if possible`
	}

	documentName := "Document_" + time.Now().Format("20060102_150405")
	result := h.engine.HandleUpload(r.Context(), models.ChannelWhatsApp, from, profileName, documentName, document)
	return result.Message
}

type twimlResponse struct {
	XMLName xml.Name `xml:"Response"`
	Message string   `xml:"Message"`
}

func (h *Handler) writeTwiML(w http.ResponseWriter, message string) {
	out, err := xml.Marshal(twimlResponse{Message: message})
	if err != nil {
		h.logger.WithError(err).Error("TwiML encoding failed", nil)
		out = []byte("<Response><Message>" + technicalDifficulties + "</Message></Response>")
	}
	w.Header().Set("Content-Type", "application/xml")
	fmt.Fprint(w, xml.Header)
	w.Write(out)
}
