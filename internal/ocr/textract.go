// internal/ocr/textract.go

// Package ocr extracts plain text from uploaded document images. It
// satisfies the extractor port the verification pipeline consumes.
package ocr

import (
	"context"
	"strings"

	"github.com/aws/aws-sdk-go-v2/service/textract"
	"github.com/aws/aws-sdk-go-v2/service/textract/types"

	stderrors "edubot/internal/common/errors"
	"edubot/internal/common/logger"
)

// TextractAPI is the subset of the Textract client used here. Only the
// synchronous single-page API; uploads are small images or PDFs.
type TextractAPI interface {
	DetectDocumentText(ctx context.Context, params *textract.DetectDocumentTextInput, optFns ...func(*textract.Options)) (*textract.DetectDocumentTextOutput, error)
}

type Client struct {
	api    TextractAPI
	logger logger.Logger
}

func NewClient(api TextractAPI, log logger.Logger) *Client {
	return &Client{api: api, logger: log}
}

// ExtractText runs text detection over the document bytes and joins the
// detected lines with spaces. Classification and name matching downstream
// only need the words, not the layout.
func (c *Client) ExtractText(ctx context.Context, document []byte) (string, error) {
	out, err := c.api.DetectDocumentText(ctx, &textract.DetectDocumentTextInput{
		Document: &types.Document{Bytes: document},
	})
	if err != nil {
		return "", stderrors.NewOCRFailedError(err)
	}

	var b strings.Builder
	lines := 0
	for _, block := range out.Blocks {
		if block.BlockType == types.BlockTypeLine && block.Text != nil {
			b.WriteString(*block.Text)
			b.WriteString(" ")
			lines++
		}
	}

	c.logger.Debug("Document text extracted", map[string]interface{}{
		"documentBytes": len(document),
		"lines":         lines,
	})

	return b.String(), nil
}
