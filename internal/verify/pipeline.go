// internal/verify/pipeline.go
package verify

import (
	"context"

	"edubot/internal/common/config"
	"edubot/internal/common/logger"
	"edubot/internal/models"
)

// TextExtractor is the OCR dependency of the pipeline.
type TextExtractor interface {
	ExtractText(ctx context.Context, document []byte) (string, error)
}

// Pipeline runs OCR, identity verification and classification for one
// uploaded document. OCR failure is not an error: analysis degrades to the
// filename and the name check is waived when the filename classification
// clears the configured floor.
type Pipeline struct {
	extractor TextExtractor
	cfg       config.VerificationConfig
	logger    logger.Logger
}

func NewPipeline(extractor TextExtractor, cfg config.VerificationConfig, log logger.Logger) *Pipeline {
	return &Pipeline{
		extractor: extractor,
		cfg:       cfg,
		logger:    log,
	}
}

// Analyze verifies and classifies a document. claimedName may be empty, in
// which case the identity check is skipped and only classification runs.
func (p *Pipeline) Analyze(ctx context.Context, document []byte, documentName, claimedName string) *models.VerificationResult {
	text, err := p.extractor.ExtractText(ctx, document)
	if err != nil {
		p.logger.WithError(err).Warn("Text extraction failed, falling back to filename analysis", map[string]interface{}{
			"documentName": documentName,
		})
		analysis := ClassifyFilename(documentName)
		return &models.VerificationResult{
			NameVerified: analysis.Confidence > p.cfg.FilenameMinimum,
			FoundNames:   []string{"Document analysis failed - using filename"},
			Analysis:     analysis,
		}
	}

	nameVerified := true
	var foundNames []string
	if claimedName != "" {
		nameVerified, foundNames = VerifyName(claimedName, text)
	} else {
		foundNames = ExtractNames(text)
	}

	analysis := ClassifyContent(text, documentName)

	p.logger.Debug("Document analyzed", map[string]interface{}{
		"documentName": documentName,
		"detectedType": analysis.DetectedType,
		"confidence":   analysis.Confidence,
		"nameVerified": nameVerified,
		"textLength":   len(text),
	})

	return &models.VerificationResult{
		NameVerified: nameVerified,
		FoundNames:   foundNames,
		Analysis:     analysis,
	}
}

// Verified reports whether an analysis clears the slot-verification bar.
func (p *Pipeline) Verified(analysis models.DocumentAnalysis) bool {
	return analysis.Confidence > p.cfg.VerifiedConfidence
}
