package chat

import (
	"context"
	"fmt"

	"github.com/docebot/docebot/pkg/intent"
	"github.com/docebot/docebot/pkg/models"
)

// Dispatch routes a classified message to its handler. Every path returns a
// well-formed chat response; errors escape only for upstream API failures,
// which the HTTP layer renders as 500s.
func Dispatch(
	ctx context.Context,
	appState *models.AppState,
	result models.IntentResult,
	message string,
) (*models.ChatResponse, error) {
	var resp *models.ChatResponse
	var err error

	switch result.Intent {
	case intent.IntentEnrollUserInCourse:
		resp, err = EnrollInCourse(ctx, appState, result.Entities)
	case intent.IntentEnrollUserInLearningPlan:
		resp, err = EnrollInLearningPlan(ctx, appState, result.Entities)
	case intent.IntentUnenrollUser:
		resp, err = Unenroll(ctx, appState, result.Entities)
	case intent.IntentCheckEnrollment:
		resp, err = CheckEnrollment(ctx, appState, result.Entities)
	case intent.IntentGetUserEnrollments:
		resp, err = UserEnrollments(ctx, appState, result.Entities)
	case intent.IntentBulkEnrollment:
		resp = bulkEnrollmentHint()
	case intent.IntentGetUserInfo:
		resp, err = UserInfo(ctx, appState, result.Entities)
	case intent.IntentGetCourseInfo:
		resp, err = CourseInfo(ctx, appState, result.Entities)
	case intent.IntentSearchUsers:
		resp, err = SearchUsers(ctx, appState, result.Entities)
	case intent.IntentSearchCourses:
		resp, err = SearchCourses(ctx, appState, result.Entities)
	case intent.IntentSearchLearningPlans:
		resp, err = SearchLearningPlans(ctx, appState, result.Entities)
	case intent.IntentHelp:
		resp = Help()
	default:
		resp = Unknown(message)
	}

	if err != nil {
		return nil, err
	}
	if resp == nil {
		return nil, fmt.Errorf("handler for intent %q returned no response", result.Intent)
	}

	resp.Intent = result.Intent
	resp.Confidence = result.Confidence

	return resp, nil
}

// entityString returns the first non-empty string entity among keys.
func entityString(entities map[string]interface{}, keys ...string) string {
	for _, key := range keys {
		if value, ok := entities[key].(string); ok && value != "" {
			return value
		}
	}
	return ""
}
