package chat

import (
	"context"
	"testing"

	"github.com/docebot/docebot/pkg/intent"
	"github.com/docebot/docebot/pkg/models"
	"github.com/docebot/docebot/pkg/testutils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatchStampsIntentAndConfidence(t *testing.T) {
	appState := &models.AppState{
		LMSClient: &testutils.FakeLMS{},
		Config:    testutils.NewTestConfig(),
	}

	resp, err := Dispatch(context.Background(), appState, models.IntentResult{
		Intent:     intent.IntentHelp,
		Entities:   map[string]interface{}{},
		Confidence: 0.6,
	}, "help")
	require.NoError(t, err)

	assert.True(t, resp.Success)
	assert.Equal(t, intent.IntentHelp, resp.Intent)
	assert.InDelta(t, 0.6, resp.Confidence, 0.001)
	assert.NotEmpty(t, resp.RequestID)
	assert.False(t, resp.Timestamp.IsZero())
}

func TestDispatchUnknownIntent(t *testing.T) {
	appState := &models.AppState{
		LMSClient: &testutils.FakeLMS{},
		Config:    testutils.NewTestConfig(),
	}

	resp, err := Dispatch(context.Background(), appState, models.IntentResult{
		Intent:   models.IntentUnknown,
		Entities: map[string]interface{}{},
	}, "gibberish")
	require.NoError(t, err)

	assert.False(t, resp.Success)
	assert.Equal(t, "gibberish", resp.Data["message"])
}

func TestDispatchBulkEnrollmentPointsAtCSVEndpoints(t *testing.T) {
	appState := &models.AppState{
		LMSClient: &testutils.FakeLMS{},
		Config:    testutils.NewTestConfig(),
	}

	resp, err := Dispatch(context.Background(), appState, models.IntentResult{
		Intent:     intent.IntentBulkEnrollment,
		Entities:   map[string]interface{}{},
		Confidence: 0.85,
	}, "bulk enroll via csv")
	require.NoError(t, err)

	assert.True(t, resp.Success)
	assert.Contains(t, resp.Response, "/api/v1/csv/enroll")
}

func TestDispatchEnrollInCourse(t *testing.T) {
	enrolled := false
	lms := &testutils.FakeLMS{
		FindUserByIdentifierFn: func(_ context.Context, _ string) (*models.UserDetails, error) {
			return &models.UserDetails{UserID: 7, FullName: "Jane Doe"}, nil
		},
		FindCourseByIdentifierFn: func(_ context.Context, _ string) (*models.CourseDetails, error) {
			return &models.CourseDetails{CourseID: 12, Name: "Python Basics"}, nil
		},
		EnrollUserInCourseFn: func(_ context.Context, userID, courseID int, _ *models.EnrollmentOptions) error {
			enrolled = true
			assert.Equal(t, 7, userID)
			assert.Equal(t, 12, courseID)
			return nil
		},
	}
	appState := &models.AppState{LMSClient: lms, Config: testutils.NewTestConfig()}

	resp, err := Dispatch(context.Background(), appState, models.IntentResult{
		Intent: intent.IntentEnrollUserInCourse,
		Entities: map[string]interface{}{
			"email":  "jane@example.com",
			"course": "Python Basics",
		},
		Confidence: 0.98,
	}, "enroll jane@example.com in Python Basics")
	require.NoError(t, err)

	assert.True(t, enrolled)
	assert.True(t, resp.Success)
	assert.Contains(t, resp.Response, "Jane Doe")
	assert.Contains(t, resp.Response, "Python Basics")
}
