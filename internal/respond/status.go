// internal/respond/status.go
package respond

import (
	"fmt"
	"strings"

	"edubot/internal/models"
)

// StatusForWeb renders the full application summary for the web widget.
func StatusForWeb(app *models.Application) string {
	if app == nil {
		return "No application found for your account. Please contact admissions."
	}

	docLines := make([]string, 0, len(app.Documents))
	for _, doc := range app.Documents {
		switch doc.Status {
		case models.DocVerified:
			docLines = append(docLines, fmt.Sprintf("✅ %s - Verified", doc.Name))
		case models.DocPending:
			docLines = append(docLines, fmt.Sprintf("⏳ %s - Pending Review", doc.Name))
		case models.DocRejected:
			docLines = append(docLines, fmt.Sprintf("❌ %s - Rejected (reupload needed)", doc.Name))
		default:
			docLines = append(docLines, fmt.Sprintf("❌ %s - Missing", doc.Name))
		}
	}

	return fmt.Sprintf(`📋 **Application Status for %s**

🎓 **Program**: %s
📅 **Submitted**: %s
📊 **Status**: %s
📈 **Progress**: %d%% Complete

**Documents Submitted:**
%s

**Next Steps:**
%s`,
		app.Name, app.Program, app.SubmittedAt, app.Status, app.Progress,
		strings.Join(docLines, "\n"), app.NextSteps)
}

// StatusForWhatsApp renders a compact summary for the WhatsApp channel.
func StatusForWhatsApp(app *models.Application) string {
	if app == nil {
		return "No application found. Please check your Student ID."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📋 *Application Status*\n\nProgram: %s\nStatus: %s\nProgress: %d%% (%d/%d docs)\n\nDocuments:",
		app.Program, app.Status, app.Progress, app.VerifiedCount(), len(app.Documents))

	for _, doc := range app.Documents {
		switch doc.Status {
		case models.DocVerified:
			fmt.Fprintf(&b, "\n✅ %s", doc.Name)
		case models.DocPending:
			fmt.Fprintf(&b, "\n⏳ %s", doc.Name)
		case models.DocRejected:
			fmt.Fprintf(&b, "\n❌ %s (rejected)", doc.Name)
		default:
			fmt.Fprintf(&b, "\n❌ %s", doc.Name)
		}
	}

	fmt.Fprintf(&b, "\n\n%s", app.NextSteps)
	return b.String()
}
