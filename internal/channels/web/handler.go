// internal/channels/web/handler.go

// Package web exposes the chat widget API. The contract favors the
// widget's UX over REST purity: once a request passes schema validation
// it gets HTTP 200 with a success flag, even when a downstream engine is
// down or a document is rejected.
package web

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"edubot/internal/auth"
	stderrors "edubot/internal/common/errors"
	"edubot/internal/common/logger"
	"edubot/internal/common/validation"
	"edubot/internal/engine"
	"edubot/internal/models"
)

// errorReply is what the widget shows when the pipeline itself blew up.
const errorReply = "Sorry, I encountered an error. Please try again."

type Handler struct {
	engine *engine.Router
	auth   *auth.Service
	store  engine.RecordStore
	logger logger.Logger
}

func NewHandler(router *engine.Router, authSvc *auth.Service, store engine.RecordStore, log logger.Logger) *Handler {
	return &Handler{
		engine: router,
		auth:   authSvc,
		store:  store,
		logger: log,
	}
}

// Routes wires the web API endpoints.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(h.recoverer)
	r.Post("/chat", h.Chat)
	r.Post("/upload", h.Upload)
	r.Get("/status", h.Status)
	r.Post("/auth/register", h.Register)
	r.Post("/auth/login", h.Login)
	return r
}

// Chat handles one text message from the widget.
func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decode(w, r, chatRequestSchema)
	if !ok {
		return
	}

	// The widget sends document uploads through the chat endpoint too.
	if req.FileData != "" {
		h.processUpload(w, r, req)
		return
	}

	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = uuid.New().String()
	}

	reply := h.engine.HandleMessage(r.Context(), models.ChannelWeb, sessionID, req.UserID, req.UserName, req.Message)

	h.writeJSON(w, http.StatusOK, models.ChatResponse{
		Success:    true,
		Response:   reply.Text,
		ShowUpload: reply.ShowUpload,
		SessionID:  sessionID,
		Source:     reply.Source,
		Intent:     reply.Intent,
		Confidence: reply.Confidence,
	})
}

// Upload handles a base64 document upload with identity verification.
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decode(w, r, uploadRequestSchema)
	if !ok {
		return
	}
	h.processUpload(w, r, req)
}

func (h *Handler) processUpload(w http.ResponseWriter, r *http.Request, req models.ChatRequest) {
	document, err := base64.StdEncoding.DecodeString(req.FileData)
	if err != nil {
		h.writeJSON(w, http.StatusOK, models.ChatResponse{
			Success:  false,
			Response: "Invalid file format",
		})
		return
	}

	documentName := req.DocumentName
	if documentName == "" {
		documentName = "Unknown Document"
	}

	res := h.engine.HandleUpload(r.Context(), models.ChannelWeb, req.UserID, req.UserName, documentName, document)

	resp := models.ChatResponse{
		Success:    res.Accepted,
		Response:   res.Message,
		DocumentID: res.DocumentID,
		Rejected:   res.Rejected,
		Reason:     res.Reason,
	}
	if res.Analysis.DetectedType != "" {
		analysis := res.Analysis
		resp.Analysis = &analysis
	}
	h.writeJSON(w, http.StatusOK, resp)
}

// Status returns the caller's application record.
func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	studentID := r.URL.Query().Get("studentId")
	if studentID == "" {
		h.writeValidationError(w, stderrors.NewValidationFailedError("studentId query parameter is required"))
		return
	}

	app, err := h.store.GetApplication(r.Context(), studentID)
	if err != nil {
		h.logger.WithError(err).Error("Status lookup failed", map[string]interface{}{
			"studentId": studentID,
		})
		h.writeJSON(w, http.StatusOK, map[string]interface{}{
			"success":  false,
			"response": "Unable to retrieve your application right now. Please try again.",
		})
		return
	}
	if app == nil {
		h.writeJSON(w, http.StatusOK, map[string]interface{}{
			"success":  false,
			"response": "No application found for your account. Please contact admissions.",
		})
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":     true,
		"application": app,
	})
}

// Register creates a student account.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	h.authCall(w, r, registerRequestSchema, h.auth.Register)
}

// Login verifies student credentials.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	h.authCall(w, r, loginRequestSchema, h.auth.Login)
}

// authCall runs one auth operation. Duplicate ids and bad credentials
// come back as 200s with success false; the login form renders them
// inline rather than handling status codes.
func (h *Handler) authCall(w http.ResponseWriter, r *http.Request, schema string, call func(ctx context.Context, req models.AuthRequest) (*models.AuthResponse, error)) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		h.writeValidationError(w, stderrors.NewValidationFailedError("unreadable request body"))
		return
	}
	if err := validation.ValidateJSON(schema, body); err != nil {
		h.writeValidationError(w, err)
		return
	}

	var req models.AuthRequest
	if err := json.Unmarshal(body, &req); err != nil {
		h.writeValidationError(w, stderrors.NewValidationFailedError("malformed JSON body"))
		return
	}

	resp, err := call(r.Context(), req)
	if err != nil {
		stdErr := stderrors.Normalize(err)
		if stdErr.Code == stderrors.ErrCodeValidationFailed {
			h.writeValidationError(w, stdErr)
			return
		}
		h.writeJSON(w, http.StatusOK, models.AuthResponse{
			Success: false,
			Message: stdErr.Message,
		})
		return
	}
	h.writeJSON(w, http.StatusOK, resp)
}

// recoverer keeps the widget conversational even when a handler panics.
// The user sees an apology, not a 500.
func (h *Handler) recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				h.logger.Error("Panic in web handler", map[string]interface{}{
					"panic": fmt.Sprintf("%v", rec),
					"path":  r.URL.Path,
				})
				h.writeJSON(w, http.StatusOK, models.ChatResponse{
					Success:  true,
					Response: errorReply,
				})
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.WithError(err).Error("Response encoding failed", nil)
	}
}

func (h *Handler) writeValidationError(w http.ResponseWriter, err error) {
	stdErr := stderrors.Normalize(err)
	h.writeJSON(w, http.StatusBadRequest, map[string]interface{}{
		"success": false,
		"error":   stdErr.Message,
		"details": stdErr.Details,
	})
}

// decode reads, validates and unmarshals a request body. On failure the
// 400 is already written and ok is false.
func (h *Handler) decode(w http.ResponseWriter, r *http.Request, schema string) (models.ChatRequest, bool) {
	var req models.ChatRequest

	body, err := io.ReadAll(r.Body)
	if err != nil {
		h.writeValidationError(w, stderrors.NewValidationFailedError("unreadable request body"))
		return req, false
	}

	if err := validation.ValidateJSON(schema, body); err != nil {
		h.writeValidationError(w, err)
		return req, false
	}

	if err := json.Unmarshal(body, &req); err != nil {
		h.writeValidationError(w, stderrors.NewValidationFailedError("malformed JSON body"))
		return req, false
	}
	return req, true
}
