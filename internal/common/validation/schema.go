// Package validation checks inbound request payloads against JSON
// schemas before they reach the message pipeline. Schema violations are
// the only failures the HTTP layer reports as client errors; everything
// downstream degrades instead.
package validation

import (
	"regexp"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	stderrors "edubot/internal/common/errors"
)

// ValidateJSON checks a raw JSON payload against a schema document.
func ValidateJSON(schema string, payload []byte) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(schema),
		gojsonschema.NewBytesLoader(payload),
	)
	if err != nil {
		return stderrors.NewValidationFailedError(err.Error())
	}
	if !result.Valid() {
		messages := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			messages = append(messages, e.String())
		}
		return stderrors.NewValidationFailedError(strings.Join(messages, "; "))
	}
	return nil
}

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// ValidateEmail validates email format.
func ValidateEmail(email string) bool {
	return emailPattern.MatchString(email)
}

var phonePattern = regexp.MustCompile(`^\+?[\d\s\-\(\)]{10,}$`)

// ValidatePhone validates basic phone number format.
func ValidatePhone(phone string) bool {
	return phonePattern.MatchString(phone)
}
