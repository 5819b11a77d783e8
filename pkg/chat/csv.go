package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/docebot/docebot/pkg/intent"
	"github.com/docebot/docebot/pkg/models"
)

const (
	defaultCSVMaxRows    = 1000
	defaultCSVBatchSize  = 3
	defaultCSVBatchPause = 500 * time.Millisecond
	// emailSampleSize bounds how many rows are format-checked up front.
	emailSampleSize = 10

	validityDateLayout = "2006-01-02"
)

// csvColumns lists, per operation, the required columns. Each requirement is
// a set of accepted alternate header names.
var csvColumns = map[string][][]string{
	models.CSVOperationCourseEnrollment: {
		{"email"},
		{"course", "course_name", "course_code"},
	},
	models.CSVOperationLPEnrollment: {
		{"email"},
		{"learning_plan", "lp", "learningplan", "learning_plan_name"},
	},
	models.CSVOperationUnenrollment: {
		{"email"},
		{"course", "course_name", "learning_plan", "lp"},
	},
}

// Optional validity-date columns accept several alternate names.
var (
	validityStartColumns = []string{"start_validity", "start_date", "valid_from"}
	validityEndColumns   = []string{"end_validity", "end_date", "valid_to"}
)

// CSVProcessor runs bulk enrollment operations from pre-parsed CSV data.
type CSVProcessor struct {
	client     models.LMSClient
	maxRows    int
	batchSize  int
	batchPause time.Duration
}

func NewCSVProcessor(appState *models.AppState) *CSVProcessor {
	p := &CSVProcessor{
		client:     appState.LMSClient,
		maxRows:    appState.Config.Chat.CSV.MaxRows,
		batchSize:  appState.Config.Chat.CSV.BatchSize,
		batchPause: time.Duration(appState.Config.Chat.CSV.BatchPauseMS) * time.Millisecond,
	}
	if p.maxRows <= 0 {
		p.maxRows = defaultCSVMaxRows
	}
	if p.batchSize <= 0 {
		p.batchSize = defaultCSVBatchSize
	}
	if appState.Config.Chat.CSV.BatchPauseMS == 0 {
		p.batchPause = defaultCSVBatchPause
	}
	return p
}

// Validate checks CSV shape before any processing starts: known operation,
// row count cap, required columns present, sampled email format, and
// well-formed validity dates where the columns exist.
func (p *CSVProcessor) Validate(operation string, data models.CSVData) models.CSVValidationResult {
	result := models.CSVValidationResult{}

	required, ok := csvColumns[operation]
	if !ok {
		result.Errors = append(result.Errors, fmt.Sprintf(
			"unknown operation %q: expected one of course_enrollment, lp_enrollment, unenrollment",
			operation,
		))
		return result
	}

	if len(data.ValidRows) == 0 {
		result.Errors = append(result.Errors, "the CSV contains no data rows")
	}
	if len(data.ValidRows) > p.maxRows {
		result.Errors = append(result.Errors, fmt.Sprintf(
			"too many rows: %d (maximum %d per upload)", len(data.ValidRows), p.maxRows,
		))
	}

	headers := normalizeHeaders(data.Headers)
	for _, alternates := range required {
		if columnIndex(headers, alternates...) < 0 {
			result.Errors = append(result.Errors, fmt.Sprintf(
				"missing required column %q", alternates[0],
			))
		}
	}

	if emailIdx := columnIndex(headers, "email"); emailIdx >= 0 {
		sample := len(data.ValidRows)
		if sample > emailSampleSize {
			sample = emailSampleSize
		}
		for i := 0; i < sample; i++ {
			row := data.ValidRows[i]
			if emailIdx >= len(row) {
				continue
			}
			value := strings.TrimSpace(row[emailIdx])
			if value != "" && intent.ExtractEmail(value) != value {
				result.Errors = append(result.Errors, fmt.Sprintf(
					"row %d: %q does not look like an email address", i+1, value,
				))
			}
		}
	}

	result.Errors = append(result.Errors, p.validateDates(headers, data.ValidRows)...)

	result.Valid = len(result.Errors) == 0
	return result
}

func (p *CSVProcessor) validateDates(headers []string, rows [][]string) []string {
	var errs []string
	for _, columns := range [][]string{validityStartColumns, validityEndColumns} {
		idx := columnIndex(headers, columns...)
		if idx < 0 {
			continue
		}
		for i, row := range rows {
			if idx >= len(row) {
				continue
			}
			value := strings.TrimSpace(row[idx])
			if value == "" {
				continue
			}
			if _, err := time.Parse(validityDateLayout, value); err != nil {
				errs = append(errs, fmt.Sprintf(
					"row %d: %q is not a valid date (expected YYYY-MM-DD)", i+1, value,
				))
			}
		}
	}
	return errs
}

// csvRow is one parsed data row, 1-based for reporting.
type csvRow struct {
	index    int
	email    string
	resource string
	opts     *models.EnrollmentOptions
}

// resourceGroup collects the rows that target one resource so the resource is
// resolved only once.
type resourceGroup struct {
	name string
	rows []csvRow
}

// Process runs the bulk operation. Rows are grouped by target resource; each
// resource is resolved once, then its rows are processed in fixed-size
// batches with a pause between batches to stay friendly to the LMS rate
// limits. Every input row ends up in exactly one of Successful or Failed.
func (p *CSVProcessor) Process(
	ctx context.Context,
	operation string,
	data models.CSVData,
) (*models.CSVResult, error) {
	if validation := p.Validate(operation, data); !validation.Valid {
		return nil, models.NewBadRequestError(strings.Join(validation.Errors, "; "))
	}

	started := time.Now()
	groups := p.groupRows(operation, data)

	result := &models.CSVResult{
		Successful: []models.CSVRowOutcome{},
		Failed:     []models.CSVRowOutcome{},
	}
	var mu sync.Mutex

	for _, group := range groups {
		action, err := p.resolveAction(ctx, operation, group.name)
		if err != nil {
			// A resource that can't be resolved fails every row that
			// references it, with a shared message.
			reason := fmt.Sprintf("could not resolve %q: %s", group.name, resolveFailureReason(err))
			for _, row := range group.rows {
				result.Failed = append(result.Failed, models.CSVRowOutcome{
					Row:      row.index,
					Email:    row.email,
					Resource: group.name,
					Error:    reason,
				})
			}
			continue
		}

		p.processGroup(ctx, group, action, result, &mu)
	}

	elapsed := time.Since(started)
	result.Summary = models.CSVSummary{
		Total:          len(result.Successful) + len(result.Failed),
		Succeeded:      len(result.Successful),
		Failed:         len(result.Failed),
		ElapsedSeconds: elapsed.Seconds(),
	}
	if elapsed > 0 {
		result.Summary.RowsPerSecond = float64(result.Summary.Total) / elapsed.Seconds()
	}

	return result, nil
}

// rowAction applies the operation to one resolved user.
type rowAction func(ctx context.Context, row csvRow, user *models.UserDetails) error

// resolveAction resolves the group's target resource once and returns the
// per-user action bound to it.
func (p *CSVProcessor) resolveAction(
	ctx context.Context,
	operation string,
	resourceName string,
) (rowAction, error) {
	switch operation {
	case models.CSVOperationCourseEnrollment:
		course, err := p.client.FindCourseByIdentifier(ctx, resourceName)
		if err != nil {
			return nil, err
		}
		return func(ctx context.Context, row csvRow, user *models.UserDetails) error {
			return p.client.EnrollUserInCourse(ctx, user.UserID, course.CourseID, row.opts)
		}, nil

	case models.CSVOperationLPEnrollment:
		plan, err := p.client.FindLearningPlanByIdentifier(ctx, resourceName)
		if err != nil {
			return nil, err
		}
		return func(ctx context.Context, row csvRow, user *models.UserDetails) error {
			return p.client.EnrollUserInLearningPlan(ctx, user.UserID, plan.PlanID, row.opts)
		}, nil

	case models.CSVOperationUnenrollment:
		// The unenrollment column may name a course or a learning plan; try
		// the course first.
		course, err := p.client.FindCourseByIdentifier(ctx, resourceName)
		if err == nil {
			return func(ctx context.Context, row csvRow, user *models.UserDetails) error {
				return p.client.UnenrollUserFromCourse(ctx, user.UserID, course.CourseID)
			}, nil
		}
		if !errors.Is(err, models.ErrNotFound) {
			return nil, err
		}
		plan, err := p.client.FindLearningPlanByIdentifier(ctx, resourceName)
		if err != nil {
			return nil, err
		}
		return func(ctx context.Context, row csvRow, user *models.UserDetails) error {
			return p.client.UnenrollUserFromLearningPlan(ctx, user.UserID, plan.PlanID)
		}, nil

	default:
		return nil, models.NewBadRequestError("unknown operation " + operation)
	}
}

// processGroup fans each batch out over a WaitGroup, recording one outcome
// per row. A row failure never aborts the batch.
func (p *CSVProcessor) processGroup(
	ctx context.Context,
	group resourceGroup,
	action rowAction,
	result *models.CSVResult,
	mu *sync.Mutex,
) {
	for start := 0; start < len(group.rows); start += p.batchSize {
		end := start + p.batchSize
		if end > len(group.rows) {
			end = len(group.rows)
		}
		batch := group.rows[start:end]

		var wg sync.WaitGroup
		for _, row := range batch {
			row := row
			wg.Add(1)
			go func() {
				defer wg.Done()
				outcome := p.processRow(ctx, row, group.name, action)
				mu.Lock()
				if outcome.Error == "" {
					result.Successful = append(result.Successful, outcome)
				} else {
					result.Failed = append(result.Failed, outcome)
				}
				mu.Unlock()
			}()
		}
		wg.Wait()

		if end < len(group.rows) && p.batchPause > 0 {
			time.Sleep(p.batchPause)
		}
	}
}

func (p *CSVProcessor) processRow(
	ctx context.Context,
	row csvRow,
	resourceName string,
	action rowAction,
) models.CSVRowOutcome {
	outcome := models.CSVRowOutcome{
		Row:      row.index,
		Email:    row.email,
		Resource: resourceName,
	}

	user, err := p.client.FindUserByIdentifier(ctx, row.email)
	if err != nil {
		outcome.Error = "user lookup failed: " + resolveFailureReason(err)
		return outcome
	}

	if err := action(ctx, row, user); err != nil {
		outcome.Error = err.Error()
	}

	return outcome
}

// groupRows partitions data rows by resource name, preserving first-seen
// order so the report reads in upload order.
func (p *CSVProcessor) groupRows(operation string, data models.CSVData) []resourceGroup {
	headers := normalizeHeaders(data.Headers)
	emailIdx := columnIndex(headers, "email")
	resourceIdx := columnIndex(headers, csvColumns[operation][1]...)
	startIdx := columnIndex(headers, validityStartColumns...)
	endIdx := columnIndex(headers, validityEndColumns...)

	byName := map[string]int{}
	var groups []resourceGroup

	for i, row := range data.ValidRows {
		parsed := csvRow{index: i + 1}
		if emailIdx >= 0 && emailIdx < len(row) {
			parsed.email = strings.TrimSpace(row[emailIdx])
		}
		if resourceIdx >= 0 && resourceIdx < len(row) {
			parsed.resource = strings.TrimSpace(row[resourceIdx])
		}

		var opts models.EnrollmentOptions
		if startIdx >= 0 && startIdx < len(row) {
			opts.ValidityStart = strings.TrimSpace(row[startIdx])
		}
		if endIdx >= 0 && endIdx < len(row) {
			opts.ValidityEnd = strings.TrimSpace(row[endIdx])
		}
		if opts != (models.EnrollmentOptions{}) {
			parsed.opts = &opts
		}

		key := strings.ToLower(parsed.resource)
		idx, seen := byName[key]
		if !seen {
			idx = len(groups)
			byName[key] = idx
			groups = append(groups, resourceGroup{name: parsed.resource})
		}
		groups[idx].rows = append(groups[idx].rows, parsed)
	}

	return groups
}

func normalizeHeaders(headers []string) []string {
	normalized := make([]string, len(headers))
	for i, h := range headers {
		normalized[i] = strings.ToLower(strings.TrimSpace(h))
	}
	return normalized
}

func columnIndex(headers []string, names ...string) int {
	for _, name := range names {
		for i, h := range headers {
			if h == name {
				return i
			}
		}
	}
	return -1
}

func resolveFailureReason(err error) string {
	if errors.Is(err, models.ErrNotFound) {
		return "not found in the LMS"
	}
	return err.Error()
}
