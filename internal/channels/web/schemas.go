// internal/channels/web/schemas.go
package web

// Request schemas for the web API. Schema violations are the only
// requests answered with HTTP 400; everything past validation degrades
// into a 200 with a success flag.

const chatRequestSchema = `{
	"type": "object",
	"required": ["message"],
	"properties": {
		"message":   {"type": "string", "minLength": 1, "maxLength": 2000},
		"sessionId": {"type": "string", "maxLength": 100},
		"userId":    {"type": "string", "maxLength": 50},
		"userName":  {"type": "string", "maxLength": 100}
	}
}`

const uploadRequestSchema = `{
	"type": "object",
	"required": ["fileData", "userName"],
	"properties": {
		"fileData":     {"type": "string", "minLength": 1},
		"documentName": {"type": "string", "maxLength": 255},
		"userId":       {"type": "string", "maxLength": 50},
		"userName":     {"type": "string", "minLength": 1, "maxLength": 100}
	}
}`

const registerRequestSchema = `{
	"type": "object",
	"required": ["studentId", "name", "password"],
	"properties": {
		"studentId": {"type": "string", "minLength": 1, "maxLength": 50},
		"name":      {"type": "string", "minLength": 1, "maxLength": 100},
		"email":     {"type": "string", "maxLength": 255},
		"phone":     {"type": "string", "maxLength": 30},
		"program":   {"type": "string", "maxLength": 100},
		"password":  {"type": "string", "minLength": 6, "maxLength": 128}
	}
}`

const loginRequestSchema = `{
	"type": "object",
	"required": ["studentId", "password"],
	"properties": {
		"studentId": {"type": "string", "minLength": 1, "maxLength": 50},
		"password":  {"type": "string", "minLength": 1, "maxLength": 128}
	}
}`
