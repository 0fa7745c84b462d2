// internal/respond/clean.go

// Package respond shapes model and status output for delivery. Generated
// text arrives with stage directions and canned self-introductions that
// read badly in a chat widget; everything here is plain string surgery and
// safe to run repeatedly over its own output.
package respond

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	// *speaks in a friendly tone* and friends
	asteriskSpans = regexp.MustCompile(`\*[^*]*\*`)
	toneParens    = regexp.MustCompile(`(?i)\([^)]*tone[^)]*\)`)
	toneClauses   = regexp.MustCompile(`(?i)\b(speaks|says|responds|replies)\s+(in\s+a\s+)?\w+\s+(tone|manner|way)\b`)

	whitespaceRuns = regexp.MustCompile(`\s+`)
)

func introPatterns(userName string) []string {
	return []string{
		fmt.Sprintf("Hello %s! I'm Sarah, an assistant at EduBot University", userName),
		fmt.Sprintf("Hello %s! This is Sarah, an assistant at EduBot University", userName),
		"Hello there! Welcome to EduBot University. My name is Sarah",
		"Hi! I'm Sarah, an assistant for EduBot University",
		"Hello! I'm Sarah from EduBot University",
		"My name is Sarah and I'm here to assist you",
	}
}

// Clean strips stage directions, repeated self-introductions and redundant
// phrasing from a generated reply. userName feeds the personalized intro
// patterns and may be empty.
func Clean(response, userName string) string {
	cleaned := response
	cleaned = asteriskSpans.ReplaceAllString(cleaned, "")
	cleaned = toneParens.ReplaceAllString(cleaned, "")
	cleaned = toneClauses.ReplaceAllString(cleaned, "")

	for _, pattern := range introPatterns(userName) {
		if strings.Contains(cleaned, pattern) {
			cleaned = strings.TrimSpace(strings.Replace(cleaned, pattern, "", 1))
			cleaned = strings.TrimSpace(strings.TrimLeft(cleaned, ".,!"))
			break
		}
	}

	cleaned = whitespaceRuns.ReplaceAllString(cleaned, " ")
	cleaned = strings.TrimSpace(cleaned)

	// One "in South Africa" is plenty.
	if strings.Count(cleaned, "in South Africa") > 1 {
		first := strings.Index(cleaned, "in South Africa") + len("in South Africa")
		head, tail := cleaned[:first], cleaned[first:]
		cleaned = head + strings.ReplaceAll(tail, "in South Africa", "")
	}

	cleaned = whitespaceRuns.ReplaceAllString(cleaned, " ")
	cleaned = strings.TrimSpace(cleaned)

	if cleaned != "" {
		r := []rune(cleaned)
		if r[0] >= 'a' && r[0] <= 'z' {
			r[0] = r[0] - 'a' + 'A'
			cleaned = string(r)
		}
	}

	return cleaned
}

// TruncateFor caps a reply at the channel's maximum length, appending an
// ellipsis when text was dropped. Counted in runes so multi-byte
// characters are never split.
func TruncateFor(s string, maxLen int) string {
	if maxLen <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen]) + "..."
}
