package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/docebot/docebot/pkg/models"
)

// UserInfo renders a detail card for one user. Fields appear only when the
// LMS returned them.
func UserInfo(
	ctx context.Context,
	appState *models.AppState,
	entities map[string]interface{},
) (*models.ChatResponse, error) {
	userIdent := entityString(entities, "email", "user")
	if userIdent == "" {
		return missingInfo(
			"the user to look up (email, username, or ID)",
			"Who is jane@example.com?",
		), nil
	}

	user, err := appState.LMSClient.FindUserByIdentifier(ctx, userIdent)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return notFound("user", userIdent, userNotFoundHint), nil
		}
		return nil, err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "👤 **%s**\n", user.DisplayName())
	fmt.Fprintf(&b, "\n- **User ID:** %d", user.UserID)
	if user.Username != "" {
		fmt.Fprintf(&b, "\n- **Username:** %s", user.Username)
	}
	if user.Email != "" {
		fmt.Fprintf(&b, "\n- **Email:** %s", user.Email)
	}
	if user.Status != "" {
		fmt.Fprintf(&b, "\n- **Status:** %s", user.Status)
	}
	if user.Level != "" {
		fmt.Fprintf(&b, "\n- **Level:** %s", user.Level)
	}
	if user.CreationDate != "" {
		fmt.Fprintf(&b, "\n- **Created:** %s", user.CreationDate)
	}
	if user.LastAccess != "" {
		fmt.Fprintf(&b, "\n- **Last access:** %s", user.LastAccess)
	}

	resp := newResponse(b.String(), true)
	resp.Data["user"] = user
	return resp, nil
}

// CourseInfo renders a detail card for one course.
func CourseInfo(
	ctx context.Context,
	appState *models.AppState,
	entities map[string]interface{},
) (*models.ChatResponse, error) {
	courseIdent := entityString(entities, "course", "resource", "query")
	if courseIdent == "" {
		return missingInfo(
			"the course to look up (name, code, or ID)",
			"Course info for Python Basics",
		), nil
	}

	course, err := appState.LMSClient.FindCourseByIdentifier(ctx, courseIdent)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return notFound("course", courseIdent, courseNotFoundHint), nil
		}
		return nil, err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📘 **%s**\n", course.Name)
	fmt.Fprintf(&b, "\n- **Course ID:** %d", course.CourseID)
	if course.Code != "" {
		fmt.Fprintf(&b, "\n- **Code:** %s", course.Code)
	}
	if course.Type != "" {
		fmt.Fprintf(&b, "\n- **Type:** %s", course.Type)
	}
	if course.Status != "" {
		fmt.Fprintf(&b, "\n- **Status:** %s", course.Status)
	}
	if course.Language != "" {
		fmt.Fprintf(&b, "\n- **Language:** %s", course.Language)
	}
	if course.EnrolledCount > 0 {
		fmt.Fprintf(&b, "\n- **Enrolled users:** %d", course.EnrolledCount)
	}
	if course.Description != "" {
		fmt.Fprintf(&b, "\n\n%s", course.Description)
	}

	resp := newResponse(b.String(), true)
	resp.Data["course"] = course
	return resp, nil
}
