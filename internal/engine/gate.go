// internal/engine/gate.go
package engine

import (
	"regexp"
	"strings"

	"edubot/internal/common/config"
	"edubot/internal/dialog"
	"edubot/internal/models"
)

// fallbackIntent is the dialog engine's own "I don't know" intent.
const fallbackIntent = "FallbackIntent"

var statusKeywords = []string{
	"application status", "check status", "my status", "status check",
	"application progress", "check application", "my application",
	"where is my application", "application update",
}

var helpKeywords = []string{"help", "what can you do", "how can you help", "what do you do"}

var processKeywords = []string{
	"application process", "how to apply", "how do i apply", "registration process",
	"how to register", "start application", "lets start", "begin application",
	"start the application", "how can i start", "how do i start", "i want to apply",
	"just want to apply", "apply for it", "how to upload", "upload documents",
}

// WhatsApp users name programs directly; those messages skip the bot and
// go straight to generation so the reply can carry program specifics.
var whatsAppProcessKeywords = []string{
	"apply for a course", "want to apply for course",
	"computer science", "business administration", "engineering", "liberal arts",
}

// Conversational phrasings the intent bot handles badly. Web only; the
// WhatsApp channel keeps its gate narrower.
var conversationalPatterns = []string{
	"tell me more about yourself", "who are you", "what do you think about",
	"i'm really confused", "can you explain in detail", "help me understand better",
}

var fundingKeywords = []string{"funding", "financial aid"}

var actionKeywords = []string{"document", "upload", "submit", "apply"}

var studentIDPattern = regexp.MustCompile(`^(DEMO\d+|STU\d+)$`)

const whatsAppStatusPrompt = `📋 *Application Status Check*

Please provide your Student ID to check your application status.

Example: DEMO001

Our demo Student IDs:
• DEMO001 (John Student)
• DEMO002 (Sarah Wilson)
• STU2025001 (Mike Johnson)`

const fundingActions = "\n\n" + `🔗 **Quick Actions:**
• [Upload Documents] - AI-powered document analysis with name verification
• [Check Status] - View uploaded documents
• [Get Help] - Document requirements

🤖 **Security**: All documents verified to match your registered name!`

const quickActions = "\n\n💡 **Quick Actions:**\n• [Upload Documents] - Start your application\n• [Check Requirements] - See what you need"

func containsAny(message string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(message, keyword) {
			return true
		}
	}
	return false
}

func isStatusRequest(message string) bool {
	return containsAny(strings.ToLower(message), statusKeywords)
}

// studentIDFrom reports whether the whole message is a student id.
func studentIDFrom(message string) (string, bool) {
	candidate := strings.ToUpper(strings.TrimSpace(message))
	if studentIDPattern.MatchString(candidate) {
		return candidate, true
	}
	return "", false
}

// shouldFallBack decides whether a recognized message is still better
// answered by the generative model. Help and application-process queries
// always are; otherwise the recognized intent wins unless it is the
// explicit fallback or scored under the channel threshold.
func shouldFallBack(channel, message string, rec *dialog.Recognition, policy config.ChannelPolicy) bool {
	lower := strings.ToLower(message)

	if containsAny(lower, helpKeywords) || containsAny(lower, processKeywords) {
		return true
	}
	if channel == models.ChannelWhatsApp && containsAny(lower, whatsAppProcessKeywords) {
		return true
	}
	if rec.Confidence < policy.ConfidenceThreshold {
		return true
	}
	if rec.Intent == fallbackIntent {
		return true
	}
	if channel == models.ChannelWeb && containsAny(lower, conversationalPatterns) {
		return true
	}
	return false
}

// CleanSessionID normalizes a channel session id into something the
// dialog service accepts. WhatsApp ids arrive as "whatsapp:+27..." which
// carries characters the service rejects.
func CleanSessionID(sessionID string) string {
	cleaned := strings.ReplaceAll(sessionID, "+", "")
	cleaned = strings.ReplaceAll(cleaned, ":", "_")
	cleaned = strings.ReplaceAll(cleaned, "whatsapp", "wa")
	if len(cleaned) > 50 {
		cleaned = cleaned[:50]
	}
	return cleaned
}
