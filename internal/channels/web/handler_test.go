// internal/channels/web/handler_test.go
package web

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"edubot/internal/auth"
	"edubot/internal/common/config"
	stderrors "edubot/internal/common/errors"
	"edubot/internal/common/logger"
	"edubot/internal/dialog"
	"edubot/internal/engine"
	"edubot/internal/models"
)

// ==========================================
// TEST FAKES
// ==========================================

type fakeDialog struct {
	rec *dialog.Recognition
	err error
}

func (f *fakeDialog) Recognize(ctx context.Context, sessionID, text string) (*dialog.Recognition, error) {
	return f.rec, f.err
}

type fakeGen struct {
	text string
	err  error
}

func (f *fakeGen) Generate(ctx context.Context, prompt string, maxTokens int) (string, error) {
	return f.text, f.err
}

// fakeStore backs both the engine and the auth service in tests.
type fakeStore struct {
	users map[string]*models.User
	apps  map[string]*models.Application
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users: map[string]*models.User{},
		apps:  map[string]*models.Application{},
	}
}

func (f *fakeStore) GetUser(ctx context.Context, studentID string) (*models.User, error) {
	if user, ok := f.users[studentID]; ok {
		return user, nil
	}
	return nil, stderrors.NewUserNotFoundError(studentID)
}

func (f *fakeStore) PutUser(ctx context.Context, user *models.User) error {
	f.users[user.StudentID] = user
	return nil
}

func (f *fakeStore) GetApplication(ctx context.Context, userID string) (*models.Application, error) {
	return f.apps[userID], nil
}

func (f *fakeStore) FindApplicationByName(ctx context.Context, name string) (*models.Application, error) {
	for _, app := range f.apps {
		if strings.EqualFold(app.Name, name) {
			return app, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) PutApplication(ctx context.Context, app *models.Application) error {
	f.apps[app.UserID] = app
	return nil
}

type fakePipeline struct {
	result *models.VerificationResult
}

func (f *fakePipeline) Analyze(ctx context.Context, document []byte, documentName, claimedName string) *models.VerificationResult {
	return f.result
}

func (f *fakePipeline) Verified(analysis models.DocumentAnalysis) bool {
	return analysis.Confidence > 70
}

func testChannels() config.ChannelsConfig {
	return config.ChannelsConfig{
		Web:      config.ChannelPolicy{ConfidenceThreshold: 0.3, MaxReplyLength: 1200, MaxTokens: 150},
		WhatsApp: config.ChannelPolicy{ConfidenceThreshold: 0.5, MaxReplyLength: 800, MaxTokens: 80},
	}
}

func newTestHandler(d engine.DialogEngine, g engine.Generator, store *fakeStore, p engine.DocumentPipeline) *Handler {
	log := logger.NewNoOpLogger()
	router := engine.NewRouter(d, g, store, p, nil, testChannels(), log)
	return NewHandler(router, auth.NewService(store, log), store, log)
}

func postJSON(t *testing.T, handler http.Handler, path string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func decodeChatResponse(t *testing.T, rec *httptest.ResponseRecorder) models.ChatResponse {
	t.Helper()
	var resp models.ChatResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

// ==========================================
// CHAT ENDPOINT TESTS
// ==========================================

func TestChat_DialogReply(t *testing.T) {
	d := &fakeDialog{rec: &dialog.Recognition{Reply: "Tuition is R45,000.", HasReply: true, Intent: "FeesIntent", Confidence: 0.9}}
	h := newTestHandler(d, &fakeGen{}, newFakeStore(), nil)

	rec := postJSON(t, h.Routes(), "/chat", map[string]string{
		"message":  "what are the fees",
		"userName": "John",
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decodeChatResponse(t, rec)
	assert.True(t, resp.Success)
	assert.Equal(t, "Tuition is R45,000.", resp.Response)
	assert.Equal(t, "dialog", resp.Source)
	assert.NotEmpty(t, resp.SessionID, "a session id is minted when the client sends none")
}

func TestChat_MissingMessageIs400(t *testing.T) {
	h := newTestHandler(&fakeDialog{}, &fakeGen{}, newFakeStore(), nil)

	rec := postJSON(t, h.Routes(), "/chat", map[string]string{"userName": "John"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestChat_MalformedBodyIs400(t *testing.T) {
	h := newTestHandler(&fakeDialog{}, &fakeGen{}, newFakeStore(), nil)

	req := httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	h.Routes().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestChat_EnginesDownStillHTTP200(t *testing.T) {
	d := &fakeDialog{err: stderrors.NewDialogEngineFailedError(assertErr("lex down"))}
	g := &fakeGen{err: stderrors.NewGenerationFailedError(assertErr("bedrock down"))}
	h := newTestHandler(d, g, newFakeStore(), nil)

	rec := postJSON(t, h.Routes(), "/chat", map[string]string{"message": "hi there"})

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decodeChatResponse(t, rec)
	assert.True(t, resp.Success)
	assert.NotEmpty(t, resp.Response)
}

func TestChat_SessionIDEchoedBack(t *testing.T) {
	d := &fakeDialog{rec: &dialog.Recognition{Reply: "hi", HasReply: true, Confidence: 0.9}}
	h := newTestHandler(d, &fakeGen{}, newFakeStore(), nil)

	rec := postJSON(t, h.Routes(), "/chat", map[string]string{
		"message":   "what are the fees",
		"sessionId": "widget-42",
	})
	assert.Equal(t, "widget-42", decodeChatResponse(t, rec).SessionID)
}

// ==========================================
// UPLOAD ENDPOINT TESTS
// ==========================================

func acceptedPipeline() *fakePipeline {
	return &fakePipeline{result: &models.VerificationResult{
		NameVerified: true,
		FoundNames:   []string{"John Student"},
		Analysis: models.DocumentAnalysis{
			DetectedType: "South African Identity Document",
			Status:       "Identity verification document",
			Confidence:   95,
			Details:      "🆔 **Identity Document Detected**",
		},
	}}
}

func TestUpload_Accepted(t *testing.T) {
	store := newFakeStore()
	store.apps["STU1"] = models.NewApplication("STU1", "John Student", "Computer Science")
	h := newTestHandler(&fakeDialog{}, &fakeGen{}, store, acceptedPipeline())

	rec := postJSON(t, h.Routes(), "/upload", map[string]string{
		"fileData":     base64.StdEncoding.EncodeToString([]byte("fake image")),
		"documentName": "id_document.jpg",
		"userId":       "STU1",
		"userName":     "John Student",
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decodeChatResponse(t, rec)
	assert.True(t, resp.Success)
	assert.Contains(t, resp.Response, "Document Verified & Accepted")
	assert.NotEmpty(t, resp.DocumentID)
	require.NotNil(t, resp.Analysis)
	assert.Equal(t, "South African Identity Document", resp.Analysis.DetectedType)
}

func TestUpload_NameMismatch(t *testing.T) {
	store := newFakeStore()
	store.apps["STU1"] = models.NewApplication("STU1", "John Student", "Computer Science")
	p := &fakePipeline{result: &models.VerificationResult{
		NameVerified: false,
		FoundNames:   []string{"Somebody Else"},
		Analysis:     models.DocumentAnalysis{DetectedType: "South African Identity Document", Confidence: 95},
	}}
	h := newTestHandler(&fakeDialog{}, &fakeGen{}, store, p)

	rec := postJSON(t, h.Routes(), "/upload", map[string]string{
		"fileData": base64.StdEncoding.EncodeToString([]byte("fake image")),
		"userId":   "STU1",
		"userName": "John Student",
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decodeChatResponse(t, rec)
	assert.False(t, resp.Success)
	assert.True(t, resp.Rejected)
	assert.Equal(t, "name_mismatch", resp.Reason)
}

func TestUpload_InvalidBase64(t *testing.T) {
	h := newTestHandler(&fakeDialog{}, &fakeGen{}, newFakeStore(), acceptedPipeline())

	rec := postJSON(t, h.Routes(), "/upload", map[string]string{
		"fileData": "!!! not base64 !!!",
		"userName": "John Student",
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decodeChatResponse(t, rec)
	assert.False(t, resp.Success)
	assert.Equal(t, "Invalid file format", resp.Response)
}

func TestChat_InlineAttachmentRunsUploadPipeline(t *testing.T) {
	store := newFakeStore()
	store.apps["STU1"] = models.NewApplication("STU1", "John Student", "Computer Science")
	h := newTestHandler(&fakeDialog{}, &fakeGen{}, store, acceptedPipeline())

	rec := postJSON(t, h.Routes(), "/chat", map[string]string{
		"message":      "uploading my id",
		"action":       "upload_document",
		"fileData":     base64.StdEncoding.EncodeToString([]byte("fake image")),
		"documentName": "id_document.jpg",
		"userId":       "STU1",
		"userName":     "John Student",
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decodeChatResponse(t, rec)
	assert.True(t, resp.Success)
	assert.Contains(t, resp.Response, "Document Verified & Accepted")
}

func TestUpload_MissingUserNameIs400(t *testing.T) {
	h := newTestHandler(&fakeDialog{}, &fakeGen{}, newFakeStore(), acceptedPipeline())

	rec := postJSON(t, h.Routes(), "/upload", map[string]string{
		"fileData": base64.StdEncoding.EncodeToString([]byte("img")),
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// ==========================================
// STATUS ENDPOINT TESTS
// ==========================================

func TestStatus(t *testing.T) {
	store := newFakeStore()
	store.apps["STU1"] = models.NewApplication("STU1", "John Student", "Computer Science")
	h := newTestHandler(&fakeDialog{}, &fakeGen{}, store, nil)

	req := httptest.NewRequest(http.MethodGet, "/status?studentId=STU1", nil)
	rec := httptest.NewRecorder()
	h.Routes().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Success     bool                `json:"success"`
		Application *models.Application `json:"application"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	require.NotNil(t, resp.Application)
	assert.Equal(t, "John Student", resp.Application.Name)
}

func TestStatus_MissingStudentIDIs400(t *testing.T) {
	h := newTestHandler(&fakeDialog{}, &fakeGen{}, newFakeStore(), nil)

	req := httptest.NewRequest(http.MethodGet, "/status", nil)
	rec := httptest.NewRecorder()
	h.Routes().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStatus_NoApplication(t *testing.T) {
	h := newTestHandler(&fakeDialog{}, &fakeGen{}, newFakeStore(), nil)

	req := httptest.NewRequest(http.MethodGet, "/status?studentId=GHOST", nil)
	rec := httptest.NewRecorder()
	h.Routes().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "No application found")
}

// ==========================================
// AUTH ENDPOINT TESTS
// ==========================================

func TestRegisterAndLogin(t *testing.T) {
	h := newTestHandler(&fakeDialog{}, &fakeGen{}, newFakeStore(), nil)
	routes := h.Routes()

	rec := postJSON(t, routes, "/auth/register", map[string]string{
		"studentId": "STU2026001",
		"name":      "Thandi Nkosi",
		"program":   "Engineering",
		"password":  "s3cret-pass",
	})
	assert.Equal(t, http.StatusOK, rec.Code)

	var reg models.AuthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &reg))
	assert.True(t, reg.Success)

	rec = postJSON(t, routes, "/auth/login", map[string]string{
		"studentId": "STU2026001",
		"password":  "s3cret-pass",
	})
	var login models.AuthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &login))
	assert.True(t, login.Success)
	assert.Equal(t, "Engineering", login.Program)
}

func TestLogin_BadCredentialsIs200WithFailure(t *testing.T) {
	h := newTestHandler(&fakeDialog{}, &fakeGen{}, newFakeStore(), nil)

	rec := postJSON(t, h.Routes(), "/auth/login", map[string]string{
		"studentId": "GHOST",
		"password":  "whatever",
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	var resp models.AuthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "Invalid student id or password", resp.Message)
}

func TestRegister_ShortPasswordIs400(t *testing.T) {
	h := newTestHandler(&fakeDialog{}, &fakeGen{}, newFakeStore(), nil)

	rec := postJSON(t, h.Routes(), "/auth/register", map[string]string{
		"studentId": "STU1",
		"name":      "X",
		"password":  "abc",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

type assertErr string

func (e assertErr) Error() string { return string(e) }
