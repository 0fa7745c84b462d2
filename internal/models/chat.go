// internal/models/chat.go
package models

// Channel names as they appear in logs, metrics and policy lookups.
const (
	ChannelWeb      = "web"
	ChannelWhatsApp = "whatsapp"
)

// ChatRequest is the web chat payload. Attachment data is base64.
type ChatRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"sessionId,omitempty"`
	UserID    string `json:"userId,omitempty"`
	UserName  string `json:"userName,omitempty"`

	// Set for upload actions.
	Action       string `json:"action,omitempty"`
	DocumentName string `json:"documentName,omitempty"`
	FileData     string `json:"fileData,omitempty"`
}

// ChatResponse is the web chat reply. Success stays true on degraded
// replies; it only goes false when a document is rejected.
type ChatResponse struct {
	Success    bool              `json:"success"`
	Response   string            `json:"response"`
	ShowUpload bool              `json:"showUpload,omitempty"`
	SessionID  string            `json:"sessionId,omitempty"`
	Source     string            `json:"source,omitempty"`
	Intent     string            `json:"intent,omitempty"`
	Confidence float64           `json:"confidence,omitempty"`
	DocumentID string            `json:"documentId,omitempty"`
	Analysis   *DocumentAnalysis `json:"analysis,omitempty"`
	Rejected   bool              `json:"rejected,omitempty"`
	Reason     string            `json:"reason,omitempty"`
}

// AuthRequest covers both registration and login.
type AuthRequest struct {
	StudentID string `json:"studentId"`
	Name      string `json:"name,omitempty"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Program   string `json:"program,omitempty"`
	Password  string `json:"password"`
}

// AuthResponse reports the account state after register/login.
type AuthResponse struct {
	Success  bool   `json:"success"`
	Message  string `json:"message"`
	Name     string `json:"name,omitempty"`
	Program  string `json:"program,omitempty"`
	Progress int    `json:"progress,omitempty"`
}
