package chat

import (
	"fmt"
	"strings"

	"github.com/docebot/docebot/pkg/models"

	"github.com/dustin/go-humanize"
)

// maxReportedRows caps how many per-row outcomes the chat rendering lists.
const maxReportedRows = 10

// FormatCSVResult renders a bulk run as a chat response. The full outcome
// lists ride along in Data for API consumers.
func FormatCSVResult(operation string, result *models.CSVResult) *models.ChatResponse {
	var b strings.Builder

	fmt.Fprintf(&b, "📋 **Bulk %s complete**\n", operationLabel(operation))
	fmt.Fprintf(&b, "\n- **Total rows:** %s", humanize.Comma(int64(result.Summary.Total)))
	fmt.Fprintf(&b, "\n- **Succeeded:** %s", humanize.Comma(int64(result.Summary.Succeeded)))
	fmt.Fprintf(&b, "\n- **Failed:** %s", humanize.Comma(int64(result.Summary.Failed)))
	fmt.Fprintf(&b, "\n- **Elapsed:** %.1fs (%.1f rows/s)",
		result.Summary.ElapsedSeconds, result.Summary.RowsPerSecond)

	if len(result.Failed) > 0 {
		b.WriteString("\n\n**Failures:**")
		shown := len(result.Failed)
		if shown > maxReportedRows {
			shown = maxReportedRows
		}
		for i := 0; i < shown; i++ {
			f := result.Failed[i]
			fmt.Fprintf(&b, "\n- row %d (%s → %s): %s", f.Row, f.Email, f.Resource, f.Error)
		}
		if len(result.Failed) > shown {
			fmt.Fprintf(&b, "\n- …and %d more", len(result.Failed)-shown)
		}
	}

	resp := newResponse(b.String(), result.Summary.Failed == 0)
	resp.Data["csvResult"] = result
	resp.Data["operation"] = operation
	return resp
}

func operationLabel(operation string) string {
	switch operation {
	case models.CSVOperationCourseEnrollment:
		return "course enrollment"
	case models.CSVOperationLPEnrollment:
		return "learning plan enrollment"
	case models.CSVOperationUnenrollment:
		return "unenrollment"
	default:
		return operation
	}
}

// CSVOperationInfo describes one supported bulk operation for discovery.
type CSVOperationInfo struct {
	Operation       string   `json:"operation"`
	Description     string   `json:"description"`
	RequiredColumns []string `json:"requiredColumns"`
	OptionalColumns []string `json:"optionalColumns"`
}

// CSVOperations lists the supported bulk operations with their column
// requirements.
func CSVOperations() []CSVOperationInfo {
	return []CSVOperationInfo{
		{
			Operation:       models.CSVOperationCourseEnrollment,
			Description:     "Enroll users in courses",
			RequiredColumns: []string{"email", "course"},
			OptionalColumns: []string{"start_validity", "end_validity"},
		},
		{
			Operation:       models.CSVOperationLPEnrollment,
			Description:     "Enroll users in learning plans",
			RequiredColumns: []string{"email", "learning_plan"},
			OptionalColumns: []string{"start_validity", "end_validity"},
		},
		{
			Operation:       models.CSVOperationUnenrollment,
			Description:     "Remove users from courses or learning plans",
			RequiredColumns: []string{"email", "course"},
			OptionalColumns: nil,
		},
	}
}

// CSVTemplate returns a downloadable example CSV for the operation.
func CSVTemplate(operation string) (string, error) {
	switch operation {
	case models.CSVOperationCourseEnrollment:
		return "email,course,start_validity,end_validity\n" +
			"jane@example.com,Python Basics,2025-01-01,2025-12-31\n" +
			"john@example.com,PY-101,,\n", nil
	case models.CSVOperationLPEnrollment:
		return "email,learning_plan\n" +
			"jane@example.com,Data Science Track\n", nil
	case models.CSVOperationUnenrollment:
		return "email,course\n" +
			"jane@example.com,Python Basics\n", nil
	default:
		return "", models.NewBadRequestError("unknown operation " + operation)
	}
}
