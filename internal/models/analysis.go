// internal/models/analysis.go
package models

// DocumentAnalysis is the outcome of classifying one uploaded document.
type DocumentAnalysis struct {
	DetectedType string `json:"detectedType"`
	Category     string `json:"category"`
	Status       string `json:"status"`
	Confidence   int    `json:"confidence"`
	Details      string `json:"details"`
	Priority     int    `json:"priority"`
}

// VerificationResult bundles the identity check with the classification.
type VerificationResult struct {
	NameVerified bool             `json:"nameVerified"`
	FoundNames   []string         `json:"foundNames"`
	Analysis     DocumentAnalysis `json:"analysis"`
}
