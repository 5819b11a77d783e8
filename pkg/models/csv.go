package models

// CSV bulk enrollment shapes. All of these are ephemeral per-request
// structures, discarded after the response is sent.

const (
	CSVOperationCourseEnrollment = "course_enrollment"
	CSVOperationLPEnrollment     = "lp_enrollment"
	CSVOperationUnenrollment     = "unenrollment"
)

// CSVData is pre-parsed CSV content: a header row plus data rows.
type CSVData struct {
	Headers   []string   `json:"headers"`
	ValidRows [][]string `json:"validRows"`
}

// CSVRequest is the inbound payload for the CSV bulk route.
type CSVRequest struct {
	Operation string  `json:"operation"`
	CSVData   CSVData `json:"csvData"`
}

// CSVValidationResult reports shape problems found before processing starts.
type CSVValidationResult struct {
	Valid    bool     `json:"valid"`
	Errors   []string `json:"errors,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}

// CSVRowOutcome records the fate of a single CSV row.
type CSVRowOutcome struct {
	Row      int    `json:"row"`
	Email    string `json:"email"`
	Resource string `json:"resource"`
	Error    string `json:"error,omitempty"`
}

// CSVSummary aggregates a processing run.
type CSVSummary struct {
	Total          int     `json:"total"`
	Succeeded      int     `json:"succeeded"`
	Failed         int     `json:"failed"`
	ElapsedSeconds float64 `json:"elapsed_seconds"`
	RowsPerSecond  float64 `json:"rows_per_second"`
}

// CSVResult is the full outcome of a bulk run. Every input row appears in
// exactly one of Successful or Failed.
type CSVResult struct {
	Summary    CSVSummary      `json:"summary"`
	Successful []CSVRowOutcome `json:"successful"`
	Failed     []CSVRowOutcome `json:"failed"`
}
