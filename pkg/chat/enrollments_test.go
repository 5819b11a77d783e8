package chat

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/docebot/docebot/pkg/models"
	"github.com/docebot/docebot/pkg/testutils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func enrollmentFixtures(userID, count int) []models.FormattedEnrollment {
	enrollments := make([]models.FormattedEnrollment, count)
	base := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < count; i++ {
		e := testutils.FakeEnrollment(userID, 100+i, fmt.Sprintf("Course %d", i))
		// Deterministic dates so the sort order is predictable.
		e.EnrollmentDate = base.AddDate(0, 0, i).Format("2006-01-02 15:04:05")
		enrollments[i] = e
	}
	return enrollments
}

func userEnrollmentsLMS(courseCount, planCount int) *testutils.FakeLMS {
	courses := enrollmentFixtures(7, courseCount)
	plans := make([]models.FormattedEnrollment, planCount)
	for i := range plans {
		plans[i] = models.FormattedEnrollment{
			UserID:       7,
			ResourceID:   200 + i,
			ResourceType: models.ResourceTypeLearningPlan,
			ResourceName: fmt.Sprintf("Plan %d", i),
		}
	}

	return &testutils.FakeLMS{
		FindUserByIdentifierFn: func(_ context.Context, identifier string) (*models.UserDetails, error) {
			user := testutils.FakeUser(7)
			user.Email = identifier
			return &user, nil
		},
		GetUserCourseEnrollmentsFn: func(_ context.Context, _, page, pageSize int) ([]models.FormattedEnrollment, bool, error) {
			start := (page - 1) * pageSize
			if start >= len(courses) {
				return nil, false, nil
			}
			end := start + pageSize
			if end > len(courses) {
				end = len(courses)
			}
			return courses[start:end], end < len(courses), nil
		},
		GetUserLearningPlanEnrollmentsFn: func(_ context.Context, _ int) ([]models.FormattedEnrollment, error) {
			return plans, nil
		},
	}
}

func TestUserEnrollmentsWindowing(t *testing.T) {
	appState := &models.AppState{
		LMSClient: userEnrollmentsLMS(12, 2),
		Config:    testutils.NewTestConfig(),
	}

	resp, err := UserEnrollments(context.Background(), appState, map[string]interface{}{
		"email": "jane@example.com",
	})
	require.NoError(t, err)

	assert.True(t, resp.Success)
	assert.Equal(t, 14, resp.TotalCount)
	assert.True(t, resp.HasMore)

	window, ok := resp.Data["enrollments"].([]models.FormattedEnrollment)
	require.True(t, ok)
	assert.Len(t, window, 10)

	// Sorted by enrollment date descending; the newest course comes first.
	assert.Equal(t, "Course 11", window[0].ResourceName)
}

func TestUserEnrollmentsSecondPage(t *testing.T) {
	appState := &models.AppState{
		LMSClient: userEnrollmentsLMS(12, 2),
		Config:    testutils.NewTestConfig(),
	}

	resp, err := UserEnrollments(context.Background(), appState, map[string]interface{}{
		"email": "jane@example.com",
		"page":  "2",
	})
	require.NoError(t, err)

	window, ok := resp.Data["enrollments"].([]models.FormattedEnrollment)
	require.True(t, ok)
	assert.Len(t, window, 4)
	assert.False(t, resp.HasMore)
}

func TestUserEnrollmentsPageBeyondEnd(t *testing.T) {
	appState := &models.AppState{
		LMSClient: userEnrollmentsLMS(3, 0),
		Config:    testutils.NewTestConfig(),
	}

	resp, err := UserEnrollments(context.Background(), appState, map[string]interface{}{
		"email": "jane@example.com",
		"page":  "5",
	})
	require.NoError(t, err)

	assert.True(t, resp.Success)
	assert.Contains(t, resp.Response, "no page 5")
	assert.Equal(t, 3, resp.TotalCount)
}

func TestUserEnrollmentsMissingUser(t *testing.T) {
	appState := &models.AppState{
		LMSClient: &testutils.FakeLMS{},
		Config:    testutils.NewTestConfig(),
	}

	resp, err := UserEnrollments(context.Background(), appState, map[string]interface{}{})
	require.NoError(t, err)
	assert.False(t, resp.Success)
	assert.Contains(t, resp.Response, "more information")
}

func TestUserEnrollmentsUserNotFound(t *testing.T) {
	appState := &models.AppState{
		LMSClient: &testutils.FakeLMS{},
		Config:    testutils.NewTestConfig(),
	}

	resp, err := UserEnrollments(context.Background(), appState, map[string]interface{}{
		"email": "ghost@example.com",
	})
	require.NoError(t, err)
	assert.False(t, resp.Success)
	assert.Contains(t, resp.Response, "couldn't find a user")
}

func TestFetchWithDeadlineTranslatesTimeout(t *testing.T) {
	lms := &testutils.FakeLMS{
		GetUserCourseEnrollmentsFn: func(ctx context.Context, _, _, _ int) ([]models.FormattedEnrollment, bool, error) {
			select {
			case <-time.After(time.Second):
			case <-ctx.Done():
				return nil, false, ctx.Err()
			}
			return nil, false, nil
		},
	}

	_, err := fetchWithDeadline(context.Background(), lms, 7, 10, 50*time.Millisecond)
	assert.ErrorIs(t, err, models.ErrDeadlineExceeded)
}

func TestUserEnrollmentsTimeoutIsSoftFailure(t *testing.T) {
	lms := userEnrollmentsLMS(3, 0)
	lms.GetUserCourseEnrollmentsFn = func(ctx context.Context, _, _, _ int) ([]models.FormattedEnrollment, bool, error) {
		select {
		case <-time.After(3 * time.Second):
		case <-ctx.Done():
			return nil, false, ctx.Err()
		}
		return nil, false, nil
	}

	appState := &models.AppState{
		LMSClient: lms,
		Config:    testutils.NewTestConfig(),
	}
	appState.Config.Chat.FetchTimeoutSeconds = 1

	started := time.Now()
	resp, err := UserEnrollments(context.Background(), appState, map[string]interface{}{
		"email": "jane@example.com",
	})
	require.NoError(t, err)

	assert.False(t, resp.Success)
	assert.Contains(t, resp.Response, "taking longer than expected")
	assert.Less(t, time.Since(started), 2500*time.Millisecond)
}
