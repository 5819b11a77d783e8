package chat

import (
	"context"
	"errors"
	"fmt"

	"github.com/docebot/docebot/internal"
	"github.com/docebot/docebot/pkg/models"
)

const enrollmentConfirmationTemplate = `✅ **Enrollment complete**

**{{.UserName}}** is now enrolled in the {{.ResourceKind}} **{{.ResourceName}}**.
{{- if .ValidityNote }}

{{.ValidityNote}}
{{- end }}`

type enrollmentConfirmation struct {
	UserName     string
	ResourceKind string
	ResourceName string
	ValidityNote string
}

// EnrollInCourse resolves the user and course, performs the enrollment, and
// confirms with both display names.
func EnrollInCourse(
	ctx context.Context,
	appState *models.AppState,
	entities map[string]interface{},
) (*models.ChatResponse, error) {
	userIdent := entityString(entities, "email", "user")
	courseIdent := entityString(entities, "course", "resource")

	if userIdent == "" || courseIdent == "" {
		return missingInfo(
			"the user (email or ID) and the course (name, code, or ID)",
			"Enroll jane@example.com in course Python Basics",
		), nil
	}

	user, err := appState.LMSClient.FindUserByIdentifier(ctx, userIdent)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return notFound("user", userIdent, userNotFoundHint), nil
		}
		return nil, err
	}

	course, err := appState.LMSClient.FindCourseByIdentifier(ctx, courseIdent)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return notFound("course", courseIdent, courseNotFoundHint), nil
		}
		return nil, err
	}

	if err := appState.LMSClient.EnrollUserInCourse(ctx, user.UserID, course.CourseID, nil); err != nil {
		return nil, err
	}

	text, err := internal.ParseTemplate(enrollmentConfirmationTemplate, enrollmentConfirmation{
		UserName:     user.DisplayName(),
		ResourceKind: "course",
		ResourceName: course.Name,
	})
	if err != nil {
		return nil, err
	}

	resp := newResponse(text, true)
	resp.Data["user"] = user
	resp.Data["course"] = course
	return resp, nil
}

// EnrollInLearningPlan resolves the user and learning plan and enrolls.
func EnrollInLearningPlan(
	ctx context.Context,
	appState *models.AppState,
	entities map[string]interface{},
) (*models.ChatResponse, error) {
	userIdent := entityString(entities, "email", "user")
	planIdent := entityString(entities, "learning_plan", "resource")

	if userIdent == "" || planIdent == "" {
		return missingInfo(
			"the user (email or ID) and the learning plan (name, code, or ID)",
			"Enroll jane@example.com in learning plan Onboarding",
		), nil
	}

	user, err := appState.LMSClient.FindUserByIdentifier(ctx, userIdent)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return notFound("user", userIdent, userNotFoundHint), nil
		}
		return nil, err
	}

	plan, err := appState.LMSClient.FindLearningPlanByIdentifier(ctx, planIdent)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return notFound("learning plan", planIdent, planNotFoundHint), nil
		}
		return nil, err
	}

	if err := appState.LMSClient.EnrollUserInLearningPlan(ctx, user.UserID, plan.PlanID, nil); err != nil {
		return nil, err
	}

	text, err := internal.ParseTemplate(enrollmentConfirmationTemplate, enrollmentConfirmation{
		UserName:     user.DisplayName(),
		ResourceKind: "learning plan",
		ResourceName: plan.Name,
	})
	if err != nil {
		return nil, err
	}

	resp := newResponse(text, true)
	resp.Data["user"] = user
	resp.Data["learning_plan"] = plan
	return resp, nil
}

// Unenroll removes a user from a course or learning plan, depending on what
// the message referenced.
func Unenroll(
	ctx context.Context,
	appState *models.AppState,
	entities map[string]interface{},
) (*models.ChatResponse, error) {
	userIdent := entityString(entities, "email", "user")
	resourceIdent := entityString(entities, "resource", "course", "learning_plan")
	resourceType := entityString(entities, "resource_type")

	if userIdent == "" || resourceIdent == "" {
		return missingInfo(
			"the user (email or ID) and the course or learning plan to remove them from",
			"Unenroll jane@example.com from course Python Basics",
		), nil
	}

	user, err := appState.LMSClient.FindUserByIdentifier(ctx, userIdent)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return notFound("user", userIdent, userNotFoundHint), nil
		}
		return nil, err
	}

	if resourceType == models.ResourceTypeLearningPlan {
		plan, err := appState.LMSClient.FindLearningPlanByIdentifier(ctx, resourceIdent)
		if err != nil {
			if errors.Is(err, models.ErrNotFound) {
				return notFound("learning plan", resourceIdent, planNotFoundHint), nil
			}
			return nil, err
		}
		if err := appState.LMSClient.UnenrollUserFromLearningPlan(ctx, user.UserID, plan.PlanID); err != nil {
			return nil, err
		}

		resp := newResponse(fmt.Sprintf(
			"🗑️ **%s** has been unenrolled from the learning plan **%s**.",
			user.DisplayName(), plan.Name,
		), true)
		resp.Data["user"] = user
		resp.Data["learning_plan"] = plan
		return resp, nil
	}

	course, err := appState.LMSClient.FindCourseByIdentifier(ctx, resourceIdent)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return notFound("course", resourceIdent, courseNotFoundHint), nil
		}
		return nil, err
	}
	if err := appState.LMSClient.UnenrollUserFromCourse(ctx, user.UserID, course.CourseID); err != nil {
		return nil, err
	}

	resp := newResponse(fmt.Sprintf(
		"🗑️ **%s** has been unenrolled from the course **%s**.",
		user.DisplayName(), course.Name,
	), true)
	resp.Data["user"] = user
	resp.Data["course"] = course
	return resp, nil
}
