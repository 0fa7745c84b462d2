// internal/common/errors/handler.go
package errors

// DegradationHandler logs downstream failures that are absorbed instead of
// propagated. Every external call in the service is single-attempt; when one
// fails the caller substitutes a fallback result and records the error here.
type DegradationHandler struct {
	logger Logger
}

type Logger interface {
	Error(msg string, fields map[string]interface{})
}

func NewDegradationHandler(logger Logger) *DegradationHandler {
	return &DegradationHandler{logger: logger}
}

// Absorb normalizes and logs an error that the caller is about to swallow.
// It returns the normalized error so callers can attach it to response
// metadata when useful.
func (h *DegradationHandler) Absorb(operation string, err error) *StandardError {
	stdErr := Normalize(err)
	h.logger.Error("Degraded operation", map[string]interface{}{
		"operation":     operation,
		"errorCode":     string(stdErr.Code),
		"message":       stdErr.Message,
		"details":       stdErr.Details,
		"errorCategory": GetErrorCategory(stdErr.Code),
	})
	return stdErr
}
