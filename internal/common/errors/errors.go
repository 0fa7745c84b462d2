// Package errors provides standardized error handling for the registration assistant.
package errors

import (
	"fmt"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeDialogEngineFailed ErrorCode = "DIALOG_ENGINE_FAILED"
	ErrCodeGenerationFailed   ErrorCode = "GENERATION_FAILED"
	ErrCodeOCRFailed          ErrorCode = "OCR_FAILED"
	ErrCodeStoreFailed        ErrorCode = "STORE_FAILED"
	ErrCodeMediaFetchFailed   ErrorCode = "MEDIA_FETCH_FAILED"
	ErrCodeNameMismatch       ErrorCode = "NAME_MISMATCH"
	ErrCodeValidationFailed   ErrorCode = "VALIDATION_FAILED"
	ErrCodeUserNotFound       ErrorCode = "USER_NOT_FOUND"
	ErrCodeDuplicateUser      ErrorCode = "DUPLICATE_USER"
	ErrCodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	ErrCodeNotificationFailed ErrorCode = "NOTIFICATION_FAILED"
	ErrCodeInternal           ErrorCode = "INTERNAL_ERROR"
)

// StandardError represents a structured application error.
//
// Retryable is always false in this service: every downstream call is
// single-attempt and failures degrade into a canned reply instead of being
// retried. The flag stays on the struct so callers that log it keep a
// uniform shape.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// ==========================
// 2. Error Constructors
// ==========================

// NewDialogEngineFailedError wraps a failed intent-recognition call.
func NewDialogEngineFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeDialogEngineFailed,
		Message:   "Dialog engine request failed",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewGenerationFailedError wraps a failed generative-model call.
func NewGenerationFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeGenerationFailed,
		Message:   "Generative model request failed",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewOCRFailedError wraps a failed text-extraction call.
func NewOCRFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeOCRFailed,
		Message:   "Document text extraction failed",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewStoreFailedError wraps a failed key-value store operation.
func NewStoreFailedError(op string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeStoreFailed,
		Message:   "Store operation failed",
		Details:   fmt.Sprintf("op: %s, error: %s", op, err.Error()),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewMediaFetchFailedError wraps a failed inbound-media download.
func NewMediaFetchFailedError(url string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeMediaFetchFailed,
		Message:   "Inbound media download failed",
		Details:   err.Error(),
		Retryable: false,
		Metadata:  map[string]interface{}{"mediaUrl": url},
		Timestamp: time.Now().UTC(),
	}
}

// NewNameMismatchError reports a document whose extracted names do not
// match the claimed applicant name.
func NewNameMismatchError(claimed string) *StandardError {
	return &StandardError{
		Code:      ErrCodeNameMismatch,
		Message:   "Document name does not match applicant",
		Details:   fmt.Sprintf("claimedName: %s", claimed),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewValidationFailedError reports a request payload that failed schema validation.
func NewValidationFailedError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeValidationFailed,
		Message:   "Request validation failed",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewUserNotFoundError reports a lookup miss on the user store.
func NewUserNotFoundError(key string) *StandardError {
	return &StandardError{
		Code:      ErrCodeUserNotFound,
		Message:   "User not found",
		Details:   fmt.Sprintf("key: %s", key),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewDuplicateUserError reports a registration against an existing student id.
func NewDuplicateUserError(studentID string) *StandardError {
	return &StandardError{
		Code:      ErrCodeDuplicateUser,
		Message:   "Student id already registered",
		Details:   fmt.Sprintf("studentId: %s", studentID),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewInvalidCredentialsError reports a failed login. The details stay
// generic so the response never leaks which part of the credential was wrong.
func NewInvalidCredentialsError() *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidCredentials,
		Message:   "Invalid student id or password",
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewNotificationFailedError wraps a failed courtesy notification. Callers
// log it and continue.
func NewNotificationFailedError(channel string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeNotificationFailed,
		Message:   "Notification send failed",
		Details:   fmt.Sprintf("channel: %s, error: %s", channel, err.Error()),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewInternalError wraps any unclassified error.
func NewInternalError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeInternal,
		Message:   "Unexpected error",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// 3. Helpers
// ==========================

// Normalize ensures any error is a *StandardError.
func Normalize(err error) *StandardError {
	if stdErr, ok := err.(*StandardError); ok {
		return stdErr
	}
	return NewInternalError(err)
}

// GetErrorCategory groups codes for logging and metrics labels.
func GetErrorCategory(code ErrorCode) string {
	switch code {
	case ErrCodeDialogEngineFailed, ErrCodeGenerationFailed:
		return "conversation"
	case ErrCodeOCRFailed, ErrCodeMediaFetchFailed, ErrCodeNameMismatch:
		return "document"
	case ErrCodeStoreFailed:
		return "store"
	case ErrCodeValidationFailed, ErrCodeUserNotFound, ErrCodeDuplicateUser, ErrCodeInvalidCredentials:
		return "request"
	case ErrCodeNotificationFailed:
		return "notification"
	default:
		return "internal"
	}
}
