package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/docebot/docebot/pkg/models"
)

// CheckEnrollment answers "is X enrolled in Y". Resolution runs as a staged
// search, cheapest and most precise first; each stage is tried only when the
// previous one yields no match:
//
//  1. resolve the course and scan its enrollment list for the user
//  2. scan the user's course enrollments (paged, capped)
//  3. scan the user's learning plan enrollments
//
// Only when every stage is exhausted do we report "not enrolled".
func CheckEnrollment(
	ctx context.Context,
	appState *models.AppState,
	entities map[string]interface{},
) (*models.ChatResponse, error) {
	userIdent := entityString(entities, "email", "user")
	resourceIdent := entityString(entities, "course", "resource", "learning_plan")

	if userIdent == "" || resourceIdent == "" {
		return missingInfo(
			"the user (email or ID) and the course or learning plan to check",
			"Is jane@example.com enrolled in Python Basics?",
		), nil
	}

	user, err := appState.LMSClient.FindUserByIdentifier(ctx, userIdent)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return notFound("user", userIdent, userNotFoundHint), nil
		}
		return nil, err
	}

	// Stage 1: resolve the course directly and look for the user among its
	// enrollments.
	course, err := appState.LMSClient.FindCourseByIdentifier(ctx, resourceIdent)
	if err != nil && !errors.Is(err, models.ErrNotFound) {
		return nil, err
	}
	if course != nil {
		enrollments, err := appState.LMSClient.GetCourseEnrollments(ctx, course.CourseID)
		if err != nil {
			log.Warnf("course enrollment scan failed, falling back to user scan: %v", err)
		}
		for i := range enrollments {
			if enrollments[i].UserID == user.UserID {
				return enrolledResponse(user, course.Name, &enrollments[i]), nil
			}
		}
	}

	// Stage 2: scan the user's own course enrollments.
	if match := scanUserCourseEnrollments(ctx, appState, user.UserID, resourceIdent, course); match != nil {
		return enrolledResponse(user, match.ResourceName, match), nil
	}

	// Stage 3: the identifier may name a learning plan.
	plans, err := appState.LMSClient.GetUserLearningPlanEnrollments(ctx, user.UserID)
	if err != nil {
		log.Warnf("learning plan enrollment scan failed: %v", err)
	}
	lowered := strings.ToLower(resourceIdent)
	for i := range plans {
		if strings.Contains(strings.ToLower(plans[i].ResourceName), lowered) {
			return enrolledResponse(user, plans[i].ResourceName, &plans[i]), nil
		}
	}

	resourceName := resourceIdent
	if course != nil {
		resourceName = course.Name
	}
	resp := newResponse(fmt.Sprintf(
		"**%s** is **not enrolled** in **%s**.\n\n"+
			"To enroll them, say _Enroll %s in course %s_.",
		user.DisplayName(), resourceName, userIdent, resourceName,
	), true)
	resp.Data["user"] = user
	resp.Data["enrolled"] = false
	return resp, nil
}

// scanUserCourseEnrollments pages through the user's course enrollments
// looking for the resolved course ID or, failing that, a name match.
func scanUserCourseEnrollments(
	ctx context.Context,
	appState *models.AppState,
	userID int,
	resourceIdent string,
	course *models.CourseDetails,
) *models.FormattedEnrollment {
	lowered := strings.ToLower(resourceIdent)

	for page := 1; page <= maxRemotePages; page++ {
		enrollments, hasMore, err := appState.LMSClient.GetUserCourseEnrollments(
			ctx, userID, page, remotePageSize,
		)
		if err != nil {
			log.Warnf("user enrollment scan failed on page %d: %v", page, err)
			return nil
		}

		for i := range enrollments {
			if course != nil && enrollments[i].ResourceID == course.CourseID {
				return &enrollments[i]
			}
			if strings.Contains(strings.ToLower(enrollments[i].ResourceName), lowered) {
				return &enrollments[i]
			}
		}

		if !hasMore {
			break
		}
	}

	return nil
}

func enrolledResponse(
	user *models.UserDetails,
	resourceName string,
	enrollment *models.FormattedEnrollment,
) *models.ChatResponse {
	var b strings.Builder
	fmt.Fprintf(&b, "✅ **%s** is enrolled in **%s**.\n", user.DisplayName(), resourceName)
	if enrollment.Status != "" {
		fmt.Fprintf(&b, "\n- **Status:** %s", enrollment.Status)
	}
	if enrollment.Progress > 0 {
		fmt.Fprintf(&b, "\n- **Progress:** %.0f%%", enrollment.Progress)
	}
	if enrollment.EnrollmentDate != "" {
		fmt.Fprintf(&b, "\n- **Enrolled:** %s", enrollment.EnrollmentDate)
	}
	if enrollment.CompletionDate != "" {
		fmt.Fprintf(&b, "\n- **Completed:** %s", enrollment.CompletionDate)
	}

	resp := newResponse(b.String(), true)
	resp.Data["user"] = user
	resp.Data["enrollment"] = enrollment
	resp.Data["enrolled"] = true
	return resp
}
