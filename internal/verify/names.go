// internal/verify/names.go
package verify

import (
	"regexp"
	"strings"
)

var (
	nonNameChars = regexp.MustCompile(`[^a-zA-Z\s]`)

	// Mixed case names: John Smith
	mixedCaseName = regexp.MustCompile(`\b[A-Z][a-z]+(?:\s+[A-Z][a-z]+)*\b`)
	// Uppercase names: JOHN SMITH
	upperCaseName = regexp.MustCompile(`\b[A-Z]{2,}(?:\s+[A-Z]{2,})*\b`)
)

// Words that match the name patterns but are document boilerplate, never
// a person's name.
var documentWords = map[string]bool{
	"THE": true, "AND": true, "FOR": true, "WITH": true, "FROM": true,
	"DATE": true, "NUMBER": true, "CODE": true, "DOCUMENT": true,
	"CERTIFICATE": true, "BANK": true, "STATEMENT": true, "ACCOUNT": true,
	"BALANCE": true, "AMOUNT": true, "TOTAL": true, "PERIOD": true,
	"MONTH": true, "YEAR": true, "DAY": true, "SERVICES": true,
	"COMPANY": true, "LIMITED": true, "PAYSLIP": true, "EMPLOYEE": true,
	"DEPARTMENT": true, "FREQUENCY": true, "PAYMENT": true,
}

const maxNameCandidates = 5

// NormalizeName strips everything but letters and spaces and collapses
// whitespace runs. Case is preserved; comparisons lowercase as needed.
func NormalizeName(name string) string {
	if name == "" {
		return ""
	}
	cleaned := nonNameChars.ReplaceAllString(name, "")
	return strings.Join(strings.Fields(cleaned), " ")
}

// ExtractNames pulls capitalized name candidates out of OCR text. Both
// Title Case and ALL CAPS runs are considered; candidates whose words are
// shorter than two letters or appear in the boilerplate list are dropped.
// At most five candidates are returned.
func ExtractNames(text string) []string {
	matches := mixedCaseName.FindAllString(text, -1)
	matches = append(matches, upperCaseName.FindAllString(text, -1)...)

	var names []string
	for _, m := range matches {
		cleaned := NormalizeName(m)
		if cleaned == "" {
			continue
		}
		words := strings.Fields(cleaned)
		ok := true
		for _, w := range words {
			if len(w) < 2 || documentWords[strings.ToUpper(w)] {
				ok = false
				break
			}
		}
		if ok {
			names = append(names, cleaned)
			if len(names) == maxNameCandidates {
				break
			}
		}
	}
	return names
}

// VerifyName checks whether the claimed applicant name appears in the
// extracted document text. The full normalized name as a substring is an
// immediate match. A multi-part name requires both the first and the last
// part to appear, either inside a name candidate or anywhere in the text.
// A single-part name needs only that part. Returns the decision plus the
// name candidates found.
func VerifyName(claimedName, text string) (bool, []string) {
	candidates := ExtractNames(text)

	claimed := strings.ToLower(NormalizeName(claimedName))
	if claimed == "" {
		return false, candidates
	}
	textClean := strings.ToLower(NormalizeName(text))

	if strings.Contains(textClean, claimed) {
		return true, candidates
	}

	found := func(part string) bool {
		if len(part) < 2 {
			return false
		}
		for _, c := range candidates {
			if strings.Contains(strings.ToLower(c), part) {
				return true
			}
		}
		return strings.Contains(textClean, part)
	}

	parts := strings.Fields(claimed)
	if len(parts) >= 2 {
		return found(parts[0]) && found(parts[len(parts)-1]), candidates
	}
	return found(parts[0]), candidates
}
