// internal/models/application.go
package models

import (
	"strings"
	"time"
)

// Application status values. Approved is terminal and never recomputed.
const (
	StatusNewApplication    = "New Application"
	StatusDocumentsRequired = "Documents Required"
	StatusInProgress        = "In Progress"
	StatusNearlyComplete    = "Nearly Complete"
	StatusUnderReview       = "Under Review"
	StatusApproved          = "Approved"
)

// Document slot states.
const (
	DocVerified = "verified"
	DocPending  = "pending"
	DocMissing  = "missing"
	DocRejected = "rejected"
)

// RequiredDocuments lists the slots every application carries, in display order.
func RequiredDocuments() []string {
	return []string{"ID Document", "Matric Certificate", "Income Proof", "Bank Statements"}
}

// DocumentSlot tracks one required document on an application.
type DocumentSlot struct {
	Name       string `json:"name" dynamodbav:"name"`
	Status     string `json:"status" dynamodbav:"status"`
	DocID      string `json:"docId,omitempty" dynamodbav:"doc_id,omitempty"`
	Type       string `json:"detectedType,omitempty" dynamodbav:"detected_type,omitempty"`
	Confidence int    `json:"confidence,omitempty" dynamodbav:"confidence,omitempty"`
	UploadedAt string `json:"uploadedAt,omitempty" dynamodbav:"uploaded_at,omitempty"`
}

// Application is the whole per-student progress record. It is read and
// written as a unit; concurrent uploads for the same student can lose an
// update (known limitation, single-writer demo traffic).
type Application struct {
	UserID      string         `json:"userId" dynamodbav:"user_id"`
	Name        string         `json:"name" dynamodbav:"name"`
	Program     string         `json:"program" dynamodbav:"program"`
	Progress    int            `json:"progress" dynamodbav:"progress"`
	Status      string         `json:"status" dynamodbav:"status"`
	Documents   []DocumentSlot `json:"documents" dynamodbav:"documents"`
	NextSteps   string         `json:"nextSteps,omitempty" dynamodbav:"next_steps,omitempty"`
	SubmittedAt string         `json:"submittedAt,omitempty" dynamodbav:"submitted_at,omitempty"`
	LastUpdated string         `json:"lastUpdated,omitempty" dynamodbav:"last_updated,omitempty"`
}

// NewApplication creates a record with all required slots missing.
func NewApplication(userID, name, program string) *Application {
	slots := make([]DocumentSlot, 0, len(RequiredDocuments()))
	for _, doc := range RequiredDocuments() {
		slots = append(slots, DocumentSlot{Name: doc, Status: DocMissing})
	}
	return &Application{
		UserID:      userID,
		Name:        name,
		Program:     program,
		Status:      StatusNewApplication,
		Documents:   slots,
		NextSteps:   "Welcome! Please start by uploading your ID Document to begin the application process.",
		SubmittedAt: time.Now().UTC().Format("2006-01-02"),
	}
}

// Slot returns the slot with the given name, or nil.
func (a *Application) Slot(name string) *DocumentSlot {
	for i := range a.Documents {
		if a.Documents[i].Name == name {
			return &a.Documents[i]
		}
	}
	return nil
}

// VerifiedCount returns how many slots are verified.
func (a *Application) VerifiedCount() int {
	n := 0
	for _, d := range a.Documents {
		if d.Status == DocVerified {
			n++
		}
	}
	return n
}

// MissingDocuments lists slots still missing entirely, in display order.
// Pending and rejected slots are not counted here; they already have an
// upload attached.
func (a *Application) MissingDocuments() []string {
	var missing []string
	for _, d := range a.Documents {
		if d.Status == DocMissing {
			missing = append(missing, d.Name)
		}
	}
	return missing
}

// ApplyVerification records an upload outcome on a slot. A failed identity
// check rejects the upload; otherwise the slot is verified or left pending
// review depending on classification confidence.
func (a *Application) ApplyVerification(slotName string, nameVerified, verified bool, analysis DocumentAnalysis, docID string) {
	slot := a.Slot(slotName)
	if slot == nil {
		a.Documents = append(a.Documents, DocumentSlot{Name: slotName})
		slot = &a.Documents[len(a.Documents)-1]
	}
	switch {
	case !nameVerified:
		slot.Status = DocRejected
	case verified:
		slot.Status = DocVerified
	default:
		slot.Status = DocPending
	}
	slot.DocID = docID
	slot.Type = analysis.DetectedType
	slot.Confidence = analysis.Confidence
	slot.UploadedAt = time.Now().UTC().Format("2006-01-02")
	a.Recalculate()
}

// Recalculate derives progress, status and next steps from the slot states.
// progress = verified/total*100 with integer truncation. An approved
// application keeps its status and next steps.
func (a *Application) Recalculate() {
	total := len(a.Documents)
	if total == 0 {
		a.Progress = 0
	} else {
		a.Progress = a.VerifiedCount() * 100 / total
	}
	a.LastUpdated = time.Now().UTC().Format(time.RFC3339)

	if a.Status == StatusApproved {
		return
	}
	switch {
	case a.Progress == 100:
		a.Status = StatusUnderReview
		a.NextSteps = "All documents submitted! Your application is under review."
	case a.Progress >= 75:
		a.Status = StatusNearlyComplete
		a.NextSteps = "Almost done! Please upload: " + strings.Join(a.MissingDocuments(), ", ")
	case a.Progress >= 25:
		a.Status = StatusInProgress
		a.NextSteps = "Good progress! Still need: " + strings.Join(a.MissingDocuments(), ", ")
	default:
		a.Status = StatusDocumentsRequired
		a.NextSteps = "Please upload your required documents to continue."
	}
}

// SlotNameForFilename maps an uploaded filename onto a required slot.
// Unrecognized names land in Income Proof, matching the demo's intake rules.
func SlotNameForFilename(filename string) string {
	name := strings.ToLower(filename)
	switch {
	case strings.Contains(name, "id") || strings.Contains(name, "identity"):
		return "ID Document"
	case strings.Contains(name, "matric") || strings.Contains(name, "certificate"):
		return "Matric Certificate"
	case strings.Contains(name, "income") || strings.Contains(name, "salary") || strings.Contains(name, "payslip"):
		return "Income Proof"
	case strings.Contains(name, "bank") || strings.Contains(name, "statement"):
		return "Bank Statements"
	default:
		return "Income Proof"
	}
}
