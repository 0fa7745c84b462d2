// internal/generative/prompt.go

// Package generative produces free-form replies through a hosted text
// model. Prompts carry the full university context so the model never
// needs conversation history; every call is single-shot.
package generative

import (
	"fmt"
	"strings"

	"edubot/internal/models"
)

var helpKeywords = []string{"help", "what can you do", "how can you help", "what do you do"}

var processKeywords = []string{
	"application process", "how to apply", "how do i apply", "registration process",
	"how to register", "start application", "lets start", "begin application",
	"start the application", "how can i start", "how do i start", "i want to apply",
	"just want to apply", "apply for it",
}

var uploadKeywords = []string{"how to upload", "upload documents", "document upload"}

// Checked in order so a message naming two programs resolves the same
// way every time. "business" alone matches Business Administration.
var courseNames = []struct {
	marker string
	name   string
}{
	{"computer science", "Computer Science (4 years)"},
	{"business", "Business Administration (3 years)"},
	{"engineering", "Engineering (4 years)"},
	{"liberal arts", "Liberal Arts (3 years)"},
}

func containsAny(message string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(message, keyword) {
			return true
		}
	}
	return false
}

func detectCourse(message string) string {
	for _, course := range courseNames {
		if strings.Contains(message, course.marker) {
			return course.name
		}
	}
	return ""
}

func studentName(userName string) string {
	if userName == "" {
		return "the student"
	}
	return userName
}

// BuildPrompt assembles the model prompt for one user message. Branch
// order matters: help beats course, course beats the general application
// walkthrough, and everything else gets the generic university context.
func BuildPrompt(message, userName, channel string) string {
	lower := strings.ToLower(message)
	if channel == models.ChannelWhatsApp {
		return buildWhatsAppPrompt(message, lower)
	}
	return buildWebPrompt(message, lower, userName)
}

func buildWebPrompt(message, lower, userName string) string {
	switch {
	case containsAny(lower, helpKeywords):
		return fmt.Sprintf(`You are Sarah, an assistant for EduBot University in South Africa. The user asked for help. Provide a brief overview of what you can help with.

Available services:
- Course enrollment and program information
- Admissions process and requirements
- Financial aid and funding applications
- Document upload and verification with AI analysis
- Application status checks

Keep the response helpful but concise. The user's name is %s.

User: %s`, studentName(userName), message)

	case containsAny(lower, processKeywords):
		return fmt.Sprintf(`You are Sarah, an assistant for EduBot University in South Africa. The user wants to APPLY/START their application process.

Provide clear, direct steps to apply:
1. Choose your program (they mentioned Computer Science if relevant)
2. Complete the online application form
3. Pay R500 application fee
4. Upload required documents: SA ID, Matric Certificate, Academic Transcripts, Motivation Letter
5. Wait for review (2-3 weeks)

Application deadline: December 15 (First semester), June 15 (Second semester)
Financial aid available: Merit Scholarships (R50,000), Need-based Bursaries (R30,000)

Be direct and actionable. The user's name is %s.

User: %s`, studentName(userName), message)

	case containsAny(lower, uploadKeywords):
		return fmt.Sprintf(`You are Sarah, an assistant for EduBot University. The user needs help with uploading documents.

Explain the document upload process:
1. Use the "Upload Documents" button on this page
2. Select your files (SA ID, Matric Certificate, Academic Transcripts, Motivation Letter)
3. Our AI will analyze and verify documents automatically
4. Get instant feedback on document verification status
5. Documents must be in your registered name for security

The system uses intelligent document analysis and name verification.

Keep response clear and helpful. The user's name is %s.

User: %s`, studentName(userName), message)

	default:
		return fmt.Sprintf(`You are Sarah, an assistant for EduBot University in South Africa. The user's name is %s.

EduBot University Details:
- Programs: Computer Science (4 years), Business Administration (3 years), Engineering (4 years), Liberal Arts (3 years)
- Application fee: R500, Deadlines: December 15 (First semester), June 15 (Second semester)
- Required documents: SA Identity Document, Matric Certificate, Academic Transcripts, Motivation Letter
- Financial aid: Merit Scholarships (R50,000), Need-based Bursaries (R30,000), Work-Study Programs

Instructions:
- Do NOT introduce yourself as Sarah unless it's the very first interaction
- Be conversational and natural
- Don't repeat information the user already knows
- Keep responses focused and helpful
- Use South African context (ZAR, Matric certificates)
- Be friendly but not overly formal

User: %s`, studentName(userName), message)
	}
}

func buildWhatsAppPrompt(message, lower string) string {
	switch {
	case containsAny(lower, helpKeywords):
		return fmt.Sprintf(`You are an assistant for EduBot University. The user asked for help. Provide a brief overview of what you can help with.

Available services:
- Course enrollment and program information
- Admissions process and requirements
- Financial aid and funding applications
- Document upload and verification
- Application status checks

Keep the response short and direct for WhatsApp.

User: %s`, message)

	case detectCourse(lower) != "":
		course := detectCourse(lower)
		return fmt.Sprintf(`You are an assistant for EduBot University. The user wants to apply for %s. Provide specific application steps for this program.

Steps for %s:
1. Visit the student portal
2. Fill application form
3. Pay R500 fee
4. Upload: SA ID, Matric Certificate, Transcripts
5. Wait for review (2-3 weeks)

Deadline: December 15

Be encouraging and helpful. Keep response short for WhatsApp.

User: %s`, course, course, message)

	case containsAny(lower, uploadKeywords):
		return fmt.Sprintf(`You are an assistant for EduBot University. The user needs help with uploading documents.

Explain document upload process:
1. Go to the student portal
2. Click "Upload Documents" button
3. Select your files (SA ID, Matric Certificate, Transcripts)
4. AI will verify documents automatically
5. Get instant feedback on document status

Required: Documents must be in your name for verification.

Keep response short and clear for WhatsApp.

User: %s`, message)

	case containsAny(lower, processKeywords) || containsAny(lower, []string{"apply for a course", "want to apply for course"}):
		return fmt.Sprintf(`You are an assistant for EduBot University. The user wants to apply for a course. Be conversational and ask which course they're interested in.

Available programs:
- Computer Science (4 years)
- Business Administration (3 years)
- Engineering (4 years)
- Liberal Arts (3 years)

Ask them which program interests them, then provide specific next steps. Keep it short and conversational for WhatsApp.

User: %s`, message)

	default:
		return fmt.Sprintf(`You are an assistant for EduBot University in South Africa. Be direct and helpful.

Programs: Computer Science, Business Administration, Engineering, Liberal Arts
Application fee: R500
Required documents: SA ID, Matric Certificate, Transcripts

Keep responses short for WhatsApp. Don't introduce yourself.

User: %s`, message)
	}
}

// FallbackReply is the canned answer used when generation fails. The
// conversation keeps moving even with the model down.
func FallbackReply(channel string) string {
	if channel == models.ChannelWhatsApp {
		return "I can help with EduBot University information. What do you need?"
	}
	return "I'd be happy to help you with that! What specific information about EduBot University would you like to know?"
}
