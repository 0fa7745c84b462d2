// internal/engine/upload.go
package engine

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"edubot/internal/common/metrics"
	"edubot/internal/models"
	"edubot/internal/respond"
)

// DocumentPipeline analyzes an uploaded document and judges whether the
// classification confidence clears the verified bar.
type DocumentPipeline interface {
	Analyze(ctx context.Context, document []byte, documentName, claimedName string) *models.VerificationResult
	Verified(analysis models.DocumentAnalysis) bool
}

// CompletionNotifier sends the courtesy notification when an application
// reaches 100%. Best effort; failures stay inside the notifier.
type CompletionNotifier interface {
	NotifyCompletion(ctx context.Context, user *models.User, app *models.Application)
}

// UploadResult is the outcome of one document upload.
type UploadResult struct {
	Accepted   bool
	Rejected   bool
	Reason     string
	Message    string
	DocumentID string
	Analysis   models.DocumentAnalysis
	FoundNames []string
}

// HandleUpload runs a document through analysis, identity verification
// and the progress update, and builds the channel-appropriate reply. Like
// HandleMessage it never fails outward; a store error still produces a
// reply describing the verification outcome.
func (r *Router) HandleUpload(ctx context.Context, channel, userID, userName, documentName string, document []byte) *UploadResult {
	result := r.pipeline.Analyze(ctx, document, documentName, userName)
	outcome := "accepted"

	if !result.NameVerified {
		outcome = "rejected"
		metrics.DocumentsAnalyzed.WithLabelValues(result.Analysis.DetectedType, outcome).Inc()
		r.recordUpload(ctx, channel, userID, userName, documentName, result, "")
		return &UploadResult{
			Rejected:   true,
			Reason:     "name_mismatch",
			Message:    rejectionMessage(channel, documentName, userName, result),
			Analysis:   result.Analysis,
			FoundNames: result.FoundNames,
		}
	}

	docID := uuid.New().String()
	app := r.recordUpload(ctx, channel, userID, userName, documentName, result, docID)

	verified := r.pipeline.Verified(result.Analysis)
	if !verified {
		outcome = "pending"
	}
	metrics.DocumentsAnalyzed.WithLabelValues(result.Analysis.DetectedType, outcome).Inc()

	if app != nil && app.Progress == 100 && r.notifier != nil {
		user, err := r.store.GetUser(ctx, app.UserID)
		if err != nil {
			user = nil
		}
		r.notifier.NotifyCompletion(ctx, user, app)
	}

	return &UploadResult{
		Accepted:   true,
		Message:    acceptanceMessage(channel, documentName, userName, result, app),
		DocumentID: docID,
		Analysis:   result.Analysis,
		FoundNames: result.FoundNames,
	}
}

// recordUpload applies the verification outcome to the application record
// and persists it. Store failures are absorbed; the upload reply must
// still reach the student.
func (r *Router) recordUpload(ctx context.Context, channel, userID, userName, documentName string, result *models.VerificationResult, docID string) *models.Application {
	app, err := r.lookupApplication(ctx, userID, userName)
	if err != nil {
		r.absorb(channel, "store.GetApplication", err)
		return nil
	}
	if app == nil {
		key := userID
		if key == "" {
			key = userName
		}
		app = models.NewApplication(key, userName, "")
	}

	slotName := models.SlotNameForFilename(documentName)
	app.ApplyVerification(slotName, result.NameVerified, r.pipeline.Verified(result.Analysis), result.Analysis, docID)

	if err := r.store.PutApplication(ctx, app); err != nil {
		r.absorb(channel, "store.PutApplication", err)
	}
	return app
}

func foundNamesOr(names []string, fallback string) string {
	if len(names) == 0 {
		return fallback
	}
	return strings.Join(names, ", ")
}

func rejectionMessage(channel, documentName, userName string, result *models.VerificationResult) string {
	if channel == models.ChannelWhatsApp {
		return fmt.Sprintf(`❌ **Document Rejected**

📄 **Type**: %s
📊 **Confidence**: %d%%
🔍 **Issue**: Name verification failed

**Found Names**: %s

**Why Rejected**:
• Document must contain your full name
• Text must be clearly readable
• Document must be official/authentic

Your application status has been updated. Send "application status" to check your progress.`,
			result.Analysis.DetectedType, result.Analysis.Confidence,
			foundNamesOr(result.FoundNames, "No clear names detected"))
	}

	return fmt.Sprintf(`❌ **Document Rejected - Name Mismatch**

📄 **Document**: %s
👤 **Expected Name**: %s
🔍 **Found Names**: %s

**Reason**: Document must belong to the registered user.

📋 **Required Documents for EduBot University:**

**🆔 Identity Documents:**
• South African Identity Document (must show your full name)

**🎓 Academic Documents:**
• Matric Certificate (Grade 12 - must be in your name)

**💰 Financial Documents:**
• Proof of income (payslip/salary certificate in your name)
• Bank statements (last 3 months - account holder name must match)

**✅ Document Requirements:**
• All documents must be in **%s**'s name
• Clear, readable images or PDFs

**💡 Tips for Success:**
• Ensure your name appears clearly on the document
• Use good lighting when taking photos
• Upload documents one at a time

Try uploading a document that belongs to you! 📋`,
			documentName, userName,
			foundNamesOr(result.FoundNames, "No names detected"), userName)
}

func acceptanceMessage(channel, documentName, userName string, result *models.VerificationResult, app *models.Application) string {
	if channel == models.ChannelWhatsApp {
		return fmt.Sprintf(`✅ **Document Accepted!**

📄 **Type**: %s
📊 **Confidence**: %d%%
👤 **Name Match**: Verified

Your application status has been updated! Send "application status" to check your progress.`,
			result.Analysis.DetectedType, result.Analysis.Confidence)
	}

	var b strings.Builder
	fmt.Fprintf(&b, `✅ **Document Verified & Accepted!**

📄 **Document**: %s
👤 **Name Verified**: %s ✅
🔍 **AI Detection**: %s
📊 **Confidence**: %d%%
✅ **Status**: %s

%s`,
		documentName, userName,
		result.Analysis.DetectedType, result.Analysis.Confidence,
		result.Analysis.Status, result.Analysis.Details)

	if app != nil {
		fmt.Fprintf(&b, "\n\n%s", respond.StatusForWeb(app))
	}
	return b.String()
}
