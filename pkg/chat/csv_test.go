package chat

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/docebot/docebot/pkg/models"
	"github.com/docebot/docebot/pkg/testutils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCSVAppState(lms models.LMSClient) *models.AppState {
	return &models.AppState{
		LMSClient: lms,
		Config:    testutils.NewTestConfig(),
	}
}

func TestCSVValidate(t *testing.T) {
	appState := newCSVAppState(&testutils.FakeLMS{})
	processor := NewCSVProcessor(appState)

	validData := models.CSVData{
		Headers:   []string{"email", "course"},
		ValidRows: [][]string{{"jane@example.com", "Python Basics"}},
	}

	t.Run("valid data passes", func(t *testing.T) {
		result := processor.Validate(models.CSVOperationCourseEnrollment, validData)
		assert.True(t, result.Valid)
		assert.Empty(t, result.Errors)
	})

	t.Run("unknown operation", func(t *testing.T) {
		result := processor.Validate("delete_everything", validData)
		assert.False(t, result.Valid)
		require.Len(t, result.Errors, 1)
		assert.Contains(t, result.Errors[0], "unknown operation")
	})

	t.Run("missing required column", func(t *testing.T) {
		result := processor.Validate(models.CSVOperationCourseEnrollment, models.CSVData{
			Headers:   []string{"email", "department"},
			ValidRows: [][]string{{"jane@example.com", "sales"}},
		})
		assert.False(t, result.Valid)
		assert.Contains(t, result.Errors[0], `missing required column "course"`)
	})

	t.Run("alternate column names accepted", func(t *testing.T) {
		result := processor.Validate(models.CSVOperationLPEnrollment, models.CSVData{
			Headers:   []string{"EMAIL", "lp"},
			ValidRows: [][]string{{"jane@example.com", "Onboarding"}},
		})
		assert.True(t, result.Valid)
	})

	t.Run("empty data", func(t *testing.T) {
		result := processor.Validate(models.CSVOperationCourseEnrollment, models.CSVData{
			Headers: []string{"email", "course"},
		})
		assert.False(t, result.Valid)
		assert.Contains(t, result.Errors[0], "no data rows")
	})

	t.Run("row cap enforced", func(t *testing.T) {
		small := newCSVAppState(&testutils.FakeLMS{})
		small.Config.Chat.CSV.MaxRows = 2
		rows := [][]string{
			{"a@example.com", "X"},
			{"b@example.com", "X"},
			{"c@example.com", "X"},
		}
		result := NewCSVProcessor(small).Validate(
			models.CSVOperationCourseEnrollment,
			models.CSVData{Headers: []string{"email", "course"}, ValidRows: rows},
		)
		assert.False(t, result.Valid)
		assert.Contains(t, result.Errors[0], "too many rows")
	})

	t.Run("malformed email in sample", func(t *testing.T) {
		result := processor.Validate(models.CSVOperationCourseEnrollment, models.CSVData{
			Headers:   []string{"email", "course"},
			ValidRows: [][]string{{"not-an-email", "Python Basics"}},
		})
		assert.False(t, result.Valid)
		assert.Contains(t, result.Errors[0], "does not look like an email")
	})

	t.Run("email check only samples the first rows", func(t *testing.T) {
		rows := make([][]string, 0, 11)
		for i := 0; i < 10; i++ {
			rows = append(rows, []string{fmt.Sprintf("user%d@example.com", i), "X"})
		}
		rows = append(rows, []string{"broken-email", "X"})
		result := processor.Validate(models.CSVOperationCourseEnrollment, models.CSVData{
			Headers:   []string{"email", "course"},
			ValidRows: rows,
		})
		assert.True(t, result.Valid)
	})

	t.Run("malformed validity date", func(t *testing.T) {
		result := processor.Validate(models.CSVOperationCourseEnrollment, models.CSVData{
			Headers:   []string{"email", "course", "start_validity"},
			ValidRows: [][]string{{"jane@example.com", "Python Basics", "01/02/2025"}},
		})
		assert.False(t, result.Valid)
		assert.Contains(t, result.Errors[0], "not a valid date")
	})
}

func TestCSVProcessAccountsForEveryRow(t *testing.T) {
	var enrollErrs int64
	lms := &testutils.FakeLMS{
		FindCourseByIdentifierFn: func(_ context.Context, identifier string) (*models.CourseDetails, error) {
			if identifier == "Ghost Course" {
				return nil, models.NewNotFoundError("course")
			}
			return &models.CourseDetails{CourseID: 12, Name: identifier}, nil
		},
		FindUserByIdentifierFn: func(_ context.Context, identifier string) (*models.UserDetails, error) {
			if identifier == "missing@example.com" {
				return nil, models.NewNotFoundError("user")
			}
			return &models.UserDetails{UserID: 7, Email: identifier}, nil
		},
		EnrollUserInCourseFn: func(_ context.Context, _, _ int, _ *models.EnrollmentOptions) error {
			if atomic.AddInt64(&enrollErrs, 1) == 1 {
				return errors.New("lms hiccup")
			}
			return nil
		},
	}

	appState := newCSVAppState(lms)
	processor := NewCSVProcessor(appState)

	data := models.CSVData{
		Headers: []string{"email", "course"},
		ValidRows: [][]string{
			{"a@example.com", "Python Basics"},
			{"b@example.com", "Python Basics"},
			{"missing@example.com", "Python Basics"},
			{"c@example.com", "Ghost Course"},
			{"d@example.com", "Ghost Course"},
			{"e@example.com", "Python Basics"},
			{"f@example.com", "Python Basics"},
		},
	}

	result, err := processor.Process(context.Background(), models.CSVOperationCourseEnrollment, data)
	require.NoError(t, err)

	assert.Equal(t, 7, result.Summary.Total)
	assert.Equal(t, len(result.Successful), result.Summary.Succeeded)
	assert.Equal(t, len(result.Failed), result.Summary.Failed)
	assert.Equal(t, 7, len(result.Successful)+len(result.Failed))

	// The two Ghost Course rows share one resolution failure.
	ghostFailures := 0
	for _, f := range result.Failed {
		if f.Resource == "Ghost Course" {
			ghostFailures++
			assert.Contains(t, f.Error, "not found in the LMS")
		}
	}
	assert.Equal(t, 2, ghostFailures)
}

func TestCSVProcessResolvesEachResourceOnce(t *testing.T) {
	var lookups int64
	lms := &testutils.FakeLMS{
		FindCourseByIdentifierFn: func(_ context.Context, identifier string) (*models.CourseDetails, error) {
			atomic.AddInt64(&lookups, 1)
			return &models.CourseDetails{CourseID: 12, Name: identifier}, nil
		},
		FindUserByIdentifierFn: func(_ context.Context, identifier string) (*models.UserDetails, error) {
			return &models.UserDetails{UserID: 7, Email: identifier}, nil
		},
	}

	processor := NewCSVProcessor(newCSVAppState(lms))

	rows := make([][]string, 0, 5)
	for i := 0; i < 5; i++ {
		rows = append(rows, []string{fmt.Sprintf("user%d@example.com", i), "Python Basics"})
	}

	result, err := processor.Process(
		context.Background(),
		models.CSVOperationCourseEnrollment,
		models.CSVData{Headers: []string{"email", "course"}, ValidRows: rows},
	)
	require.NoError(t, err)

	assert.Equal(t, int64(1), atomic.LoadInt64(&lookups))
	assert.Equal(t, 5, result.Summary.Succeeded)
}

func TestCSVProcessUnenrollmentResolvesLearningPlans(t *testing.T) {
	var lpUnenrolls int64
	lms := &testutils.FakeLMS{
		FindCourseByIdentifierFn: func(_ context.Context, _ string) (*models.CourseDetails, error) {
			return nil, models.NewNotFoundError("course")
		},
		FindLearningPlanByIdentifierFn: func(_ context.Context, identifier string) (*models.LearningPlanDetails, error) {
			return &models.LearningPlanDetails{PlanID: 3, Name: identifier}, nil
		},
		FindUserByIdentifierFn: func(_ context.Context, identifier string) (*models.UserDetails, error) {
			return &models.UserDetails{UserID: 7, Email: identifier}, nil
		},
		UnenrollUserFromLearningPlanFn: func(_ context.Context, _, _ int) error {
			atomic.AddInt64(&lpUnenrolls, 1)
			return nil
		},
	}

	processor := NewCSVProcessor(newCSVAppState(lms))

	result, err := processor.Process(
		context.Background(),
		models.CSVOperationUnenrollment,
		models.CSVData{
			Headers:   []string{"email", "course"},
			ValidRows: [][]string{{"jane@example.com", "Onboarding Track"}},
		},
	)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Summary.Succeeded)
	assert.Equal(t, int64(1), atomic.LoadInt64(&lpUnenrolls))
}

func TestCSVProcessRejectsInvalidData(t *testing.T) {
	processor := NewCSVProcessor(newCSVAppState(&testutils.FakeLMS{}))

	_, err := processor.Process(
		context.Background(),
		models.CSVOperationCourseEnrollment,
		models.CSVData{Headers: []string{"email"}, ValidRows: [][]string{{"jane@example.com"}}},
	)
	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrBadRequest))
}

func TestCSVProcessPassesValidityOptions(t *testing.T) {
	var gotOpts *models.EnrollmentOptions
	lms := &testutils.FakeLMS{
		FindCourseByIdentifierFn: func(_ context.Context, identifier string) (*models.CourseDetails, error) {
			return &models.CourseDetails{CourseID: 12, Name: identifier}, nil
		},
		FindUserByIdentifierFn: func(_ context.Context, identifier string) (*models.UserDetails, error) {
			return &models.UserDetails{UserID: 7, Email: identifier}, nil
		},
		EnrollUserInCourseFn: func(_ context.Context, _, _ int, opts *models.EnrollmentOptions) error {
			gotOpts = opts
			return nil
		},
	}

	processor := NewCSVProcessor(newCSVAppState(lms))

	_, err := processor.Process(
		context.Background(),
		models.CSVOperationCourseEnrollment,
		models.CSVData{
			Headers:   []string{"email", "course", "start_validity", "end_validity"},
			ValidRows: [][]string{{"jane@example.com", "Python Basics", "2025-01-01", "2025-12-31"}},
		},
	)
	require.NoError(t, err)

	require.NotNil(t, gotOpts)
	assert.Equal(t, "2025-01-01", gotOpts.ValidityStart)
	assert.Equal(t, "2025-12-31", gotOpts.ValidityEnd)
}

func TestFormatCSVResult(t *testing.T) {
	result := &models.CSVResult{
		Summary: models.CSVSummary{Total: 3, Succeeded: 2, Failed: 1, ElapsedSeconds: 0.5, RowsPerSecond: 6},
		Successful: []models.CSVRowOutcome{
			{Row: 1, Email: "a@example.com", Resource: "X"},
			{Row: 2, Email: "b@example.com", Resource: "X"},
		},
		Failed: []models.CSVRowOutcome{
			{Row: 3, Email: "c@example.com", Resource: "X", Error: "user lookup failed"},
		},
	}

	resp := FormatCSVResult(models.CSVOperationCourseEnrollment, result)
	assert.False(t, resp.Success)
	assert.Contains(t, resp.Response, "course enrollment")
	assert.Contains(t, resp.Response, "c@example.com")
	assert.Equal(t, result, resp.Data["csvResult"])
}

func TestCSVTemplate(t *testing.T) {
	template, err := CSVTemplate(models.CSVOperationCourseEnrollment)
	require.NoError(t, err)
	assert.Contains(t, template, "email,course")

	_, err = CSVTemplate("nope")
	assert.Error(t, err)
}
