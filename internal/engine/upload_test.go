// internal/engine/upload_test.go
package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"edubot/internal/models"
)

func acceptedResult(confidence int) *models.VerificationResult {
	return &models.VerificationResult{
		NameVerified: true,
		FoundNames:   []string{"John Student"},
		Analysis: models.DocumentAnalysis{
			DetectedType: "South African Identity Document",
			Category:     "identification",
			Status:       "Identity verification document",
			Confidence:   confidence,
			Details:      "🆔 **Identity Document Detected**",
		},
	}
}

func rejectedResult() *models.VerificationResult {
	return &models.VerificationResult{
		NameVerified: false,
		FoundNames:   []string{"Somebody Else"},
		Analysis: models.DocumentAnalysis{
			DetectedType: "South African Identity Document",
			Confidence:   95,
		},
	}
}

// ==========================================
// UPLOAD TESTS
// ==========================================

func TestHandleUpload_AcceptedVerified(t *testing.T) {
	store := newFakeRecordStore()
	store.apps["STU1"] = models.NewApplication("STU1", "John Student", "Computer Science")
	p := &fakePipeline{result: acceptedResult(95), verified: true}
	r := newTestRouter(&fakeDialog{}, &fakeGen{}, store, p, nil)

	res := r.HandleUpload(context.Background(), models.ChannelWeb, "STU1", "John Student", "my_id_document.jpg", []byte("img"))

	assert.True(t, res.Accepted)
	assert.False(t, res.Rejected)
	assert.NotEmpty(t, res.DocumentID)
	assert.Contains(t, res.Message, "✅ **Document Verified & Accepted!**")
	assert.Contains(t, res.Message, "South African Identity Document")

	app := store.apps["STU1"]
	slot := app.Slot("ID Document")
	require.NotNil(t, slot)
	assert.Equal(t, models.DocVerified, slot.Status)
	assert.Equal(t, res.DocumentID, slot.DocID)
	assert.Equal(t, 25, app.Progress)
}

func TestHandleUpload_AcceptedButPendingReview(t *testing.T) {
	store := newFakeRecordStore()
	store.apps["STU1"] = models.NewApplication("STU1", "John Student", "Computer Science")
	p := &fakePipeline{result: acceptedResult(60), verified: false}
	r := newTestRouter(&fakeDialog{}, &fakeGen{}, store, p, nil)

	res := r.HandleUpload(context.Background(), models.ChannelWeb, "STU1", "John Student", "id.jpg", []byte("img"))

	assert.True(t, res.Accepted)
	slot := store.apps["STU1"].Slot("ID Document")
	require.NotNil(t, slot)
	assert.Equal(t, models.DocPending, slot.Status)
	// Pending uploads do not advance progress.
	assert.Equal(t, 0, store.apps["STU1"].Progress)
}

func TestHandleUpload_NameMismatchRejected(t *testing.T) {
	store := newFakeRecordStore()
	store.apps["STU1"] = models.NewApplication("STU1", "John Student", "Computer Science")
	p := &fakePipeline{result: rejectedResult(), verified: true}
	r := newTestRouter(&fakeDialog{}, &fakeGen{}, store, p, nil)

	res := r.HandleUpload(context.Background(), models.ChannelWeb, "STU1", "John Student", "id.jpg", []byte("img"))

	assert.True(t, res.Rejected)
	assert.Equal(t, "name_mismatch", res.Reason)
	assert.Contains(t, res.Message, "❌ **Document Rejected - Name Mismatch**")
	assert.Contains(t, res.Message, "Somebody Else")

	slot := store.apps["STU1"].Slot("ID Document")
	require.NotNil(t, slot)
	assert.Equal(t, models.DocRejected, slot.Status)
}

func TestHandleUpload_WhatsAppMessagesAreCompact(t *testing.T) {
	store := newFakeRecordStore()
	store.apps["wa1"] = models.NewApplication("wa1", "John Student", "")
	p := &fakePipeline{result: acceptedResult(95), verified: true}
	r := newTestRouter(&fakeDialog{}, &fakeGen{}, store, p, nil)

	res := r.HandleUpload(context.Background(), models.ChannelWhatsApp, "wa1", "John Student", "id.jpg", []byte("img"))

	assert.Contains(t, res.Message, "✅ **Document Accepted!**")
	assert.Contains(t, res.Message, `Send "application status"`)
	assert.NotContains(t, res.Message, "Application Status for")
}

func TestHandleUpload_CreatesRecordForUnknownUploader(t *testing.T) {
	store := newFakeRecordStore()
	p := &fakePipeline{result: acceptedResult(95), verified: true}
	r := newTestRouter(&fakeDialog{}, &fakeGen{}, store, p, nil)

	res := r.HandleUpload(context.Background(), models.ChannelWhatsApp, "+27820001111", "New Student", "bank_statement.pdf", []byte("pdf"))

	assert.True(t, res.Accepted)
	app := store.apps["+27820001111"]
	require.NotNil(t, app)
	assert.Equal(t, "New Student", app.Name)
	assert.Equal(t, models.DocVerified, app.Slot("Bank Statements").Status)
}

func TestHandleUpload_CompletionTriggersNotification(t *testing.T) {
	store := newFakeRecordStore()
	app := models.NewApplication("STU1", "John Student", "Computer Science")
	for i := range app.Documents {
		if app.Documents[i].Name != "Bank Statements" {
			app.Documents[i].Status = models.DocVerified
		}
	}
	app.Recalculate()
	store.apps["STU1"] = app
	store.users["STU1"] = &models.User{StudentID: "STU1", Name: "John Student", Email: "john@example.com"}

	notifier := &fakeNotifier{}
	p := &fakePipeline{result: acceptedResult(95), verified: true}
	r := newTestRouter(&fakeDialog{}, &fakeGen{}, store, p, notifier)

	r.HandleUpload(context.Background(), models.ChannelWeb, "STU1", "John Student", "bank_statement.pdf", []byte("pdf"))

	assert.True(t, notifier.called)
	require.NotNil(t, notifier.app)
	assert.Equal(t, 100, notifier.app.Progress)
	assert.Equal(t, models.StatusUnderReview, notifier.app.Status)
}

func TestHandleUpload_NoNotificationBelowComplete(t *testing.T) {
	store := newFakeRecordStore()
	store.apps["STU1"] = models.NewApplication("STU1", "John Student", "Computer Science")
	notifier := &fakeNotifier{}
	p := &fakePipeline{result: acceptedResult(95), verified: true}
	r := newTestRouter(&fakeDialog{}, &fakeGen{}, store, p, notifier)

	r.HandleUpload(context.Background(), models.ChannelWeb, "STU1", "John Student", "id.jpg", []byte("img"))
	assert.False(t, notifier.called)
}

func TestHandleUpload_StoreFailureStillReplies(t *testing.T) {
	store := newFakeRecordStore()
	store.apps["STU1"] = models.NewApplication("STU1", "John Student", "Computer Science")
	store.putErr = assertError("dynamo write failed")
	p := &fakePipeline{result: acceptedResult(95), verified: true}
	r := newTestRouter(&fakeDialog{}, &fakeGen{}, store, p, nil)

	res := r.HandleUpload(context.Background(), models.ChannelWeb, "STU1", "John Student", "id.jpg", []byte("img"))

	assert.True(t, res.Accepted)
	assert.Contains(t, res.Message, "✅ **Document Verified & Accepted!**")
}

type assertError string

func (e assertError) Error() string { return string(e) }
