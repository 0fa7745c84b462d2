// internal/generative/prompt_test.go
package generative

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"edubot/internal/models"
)

// ==========================================
// PROMPT SELECTION TESTS
// ==========================================

func TestBuildPrompt_WebBranches(t *testing.T) {
	tests := []struct {
		name     string
		message  string
		contains string
	}{
		{
			name:     "help query gets services overview",
			message:  "what can you do for me?",
			contains: "Available services:",
		},
		{
			name:     "application process query gets steps",
			message:  "How do I apply to the university?",
			contains: "Pay R500 application fee",
		},
		{
			name:     "upload query gets upload walkthrough",
			message:  "how to upload my matric certificate",
			contains: "document upload process",
		},
		{
			name:     "anything else gets generic context",
			message:  "what are the residence fees like?",
			contains: "EduBot University Details:",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prompt := BuildPrompt(tt.message, "John", models.ChannelWeb)
			assert.Contains(t, prompt, tt.contains)
			assert.Contains(t, prompt, tt.message, "user message must be embedded verbatim")
		})
	}
}

func TestBuildPrompt_HelpBeatsProcess(t *testing.T) {
	// "help" wins even when the message also mentions applying.
	prompt := BuildPrompt("help, how do i apply?", "John", models.ChannelWeb)
	assert.Contains(t, prompt, "Available services:")
	assert.NotContains(t, prompt, "Pay R500 application fee")
}

func TestBuildPrompt_UserNameFallsBackToStudent(t *testing.T) {
	prompt := BuildPrompt("tell me about fees", "", models.ChannelWeb)
	assert.Contains(t, prompt, "The user's name is the student.")
}

func TestBuildPrompt_WhatsAppCourseBranch(t *testing.T) {
	tests := []struct {
		message string
		course  string
	}{
		{"I want to study computer science", "Computer Science (4 years)"},
		{"business please", "Business Administration (3 years)"},
		{"can I do engineering", "Engineering (4 years)"},
		{"liberal arts sounds good", "Liberal Arts (3 years)"},
	}

	for _, tt := range tests {
		t.Run(tt.course, func(t *testing.T) {
			prompt := BuildPrompt(tt.message, "", models.ChannelWhatsApp)
			assert.Contains(t, prompt, "wants to apply for "+tt.course)
			assert.Contains(t, prompt, "Keep response short for WhatsApp")
		})
	}
}

func TestBuildPrompt_WhatsAppGeneralApplicationAsksForCourse(t *testing.T) {
	prompt := BuildPrompt("i want to apply for a course", "", models.ChannelWhatsApp)
	assert.Contains(t, prompt, "ask which course")
	assert.Contains(t, prompt, "- Computer Science (4 years)")
}

func TestBuildPrompt_WhatsAppGenericIsCompact(t *testing.T) {
	whatsapp := BuildPrompt("what are the residence fees like?", "", models.ChannelWhatsApp)
	web := BuildPrompt("what are the residence fees like?", "", models.ChannelWeb)

	assert.Contains(t, whatsapp, "Keep responses short for WhatsApp")
	assert.Less(t, len(whatsapp), len(web))
}

func TestBuildPrompt_CourseOrderIsStable(t *testing.T) {
	// A message naming two programs always resolves to the first marker.
	for i := 0; i < 20; i++ {
		prompt := BuildPrompt("computer science or engineering?", "", models.ChannelWhatsApp)
		if !strings.Contains(prompt, "Computer Science (4 years)") {
			t.Fatal("course detection must be deterministic")
		}
	}
}

func TestFallbackReply(t *testing.T) {
	assert.Equal(t,
		"I can help with EduBot University information. What do you need?",
		FallbackReply(models.ChannelWhatsApp))
	assert.Equal(t,
		"I'd be happy to help you with that! What specific information about EduBot University would you like to know?",
		FallbackReply(models.ChannelWeb))
}
