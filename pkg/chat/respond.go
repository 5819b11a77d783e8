package chat

import (
	"fmt"
	"strings"
	"time"

	"github.com/docebot/docebot/internal"
	"github.com/docebot/docebot/pkg/models"

	"github.com/google/uuid"
)

var log = internal.GetLogger()

// newResponse builds a chat envelope stamped with a request ID and timestamp.
func newResponse(text string, success bool) *models.ChatResponse {
	return &models.ChatResponse{
		Response:  text,
		Success:   success,
		Data:      map[string]interface{}{},
		Timestamp: time.Now().UTC(),
		RequestID: uuid.New().String(),
	}
}

// missingInfo is returned when a handler lacks a required entity. It is a
// successful HTTP response with Success=false and an example of a complete
// request.
func missingInfo(what string, example string) *models.ChatResponse {
	var b strings.Builder
	b.WriteString("I need a bit more information to do that.\n\n")
	b.WriteString(fmt.Sprintf("**Missing:** %s\n\n", what))
	b.WriteString(fmt.Sprintf("For example: _%s_", example))
	return newResponse(b.String(), false)
}

// notFound is returned when the LMS has no matching resource. The remediation
// text is domain-specific rather than a bare error code.
func notFound(resource string, identifier string, hint string) *models.ChatResponse {
	text := fmt.Sprintf(
		"I couldn't find a %s matching **%s**.\n\n%s",
		resource, identifier, hint,
	)
	return newResponse(text, false)
}

const (
	userNotFoundHint = "Check the email spelling, or try the numeric user ID or the exact username."
	courseNotFoundHint = "Try the exact course ID or course code, or search first with " +
		"_find courses about ..._ to see what's available."
	planNotFoundHint = "Try the exact learning plan ID or code, or list plans with " +
		"_show learning plans_."
)

// timedOut is the soft-failure response for a fetch that exceeded its
// deadline. The underlying operation result is discarded, not failed.
func timedOut(what string) *models.ChatResponse {
	text := fmt.Sprintf(
		"Fetching %s is taking longer than expected. "+
			"The LMS may be under load.\n\n"+
			"You can try again in a moment, narrow the request "+
			"(for example, a specific page), or use the CSV export workflow instead.",
		what,
	)
	return newResponse(text, false)
}

// Help summarizes what the bot can do.
func Help() *models.ChatResponse {
	text := `Here's what I can help with:

**Enrollment**
- _Enroll jane@example.com in course Python Basics_
- _Enroll jane@example.com in learning plan Onboarding_
- _Unenroll jane@example.com from course Python Basics_
- _Is jane@example.com enrolled in Python Basics?_

**Information**
- _Show enrollments for jane@example.com_
- _Who is jane@example.com?_
- _Course info for Python Basics_

**Search**
- _Find users named Smith_
- _Find courses about security_
- _Show learning plans_

**Bulk operations**
- Upload a CSV through the bulk enrollment endpoint for batch changes.`
	return newResponse(text, true)
}

// Unknown is returned for unrecognized messages with suggestions.
func Unknown(message string) *models.ChatResponse {
	text := "I'm not sure what you'd like me to do.\n\n" +
		"Try something like _Enroll jane@example.com in course Python Basics_ or " +
		"_Show enrollments for jane@example.com_ - or say **help** for the full list."
	resp := newResponse(text, false)
	resp.Data["message"] = message
	return resp
}

// bulkEnrollmentHint points chat users at the CSV endpoints.
func bulkEnrollmentHint() *models.ChatResponse {
	text := `Bulk enrollment runs through the CSV endpoints:

1. Download a template: ` + "`GET /api/v1/csv/template/{operation}`" + `
2. Fill in one row per user.
3. Post it to ` + "`POST /api/v1/csv/enroll`" + ` with the operation name.

Supported operations: **course_enrollment**, **lp_enrollment**, **unenrollment**.`
	return newResponse(text, true)
}
