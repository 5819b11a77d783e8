package chat

import (
	"context"
	"fmt"
	"strings"

	"github.com/docebot/docebot/pkg/models"

	"github.com/dustin/go-humanize"
)

// SearchUsers runs a keyword search and renders a capped result list.
func SearchUsers(
	ctx context.Context,
	appState *models.AppState,
	entities map[string]interface{},
) (*models.ChatResponse, error) {
	query := entityString(entities, "query", "email", "user")
	if query == "" {
		return missingInfo(
			"a name, email, or username to search for",
			"Find users named Smith",
		), nil
	}

	users, total, err := appState.LMSClient.SearchUsers(
		ctx, query, searchPageSize(appState),
	)
	if err != nil {
		return nil, err
	}

	if len(users) == 0 {
		return notFound("user", query, userNotFoundHint), nil
	}

	display := displayLimit(appState)
	if len(users) > display {
		users = users[:display]
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %s user(s) matching **%s**:\n", humanize.Comma(int64(total)), query)
	for i := range users {
		u := &users[i]
		fmt.Fprintf(&b, "\n%d. **%s**", i+1, u.DisplayName())
		if u.Email != "" {
			fmt.Fprintf(&b, " - %s", u.Email)
		}
		if u.Status != "" {
			fmt.Fprintf(&b, " (%s)", u.Status)
		}
	}
	if total > len(users) {
		fmt.Fprintf(&b, "\n\n_Showing the first %d. Refine the search to narrow results._", len(users))
	}

	resp := newResponse(b.String(), true)
	resp.Data["users"] = users
	resp.Data["query"] = query
	resp.TotalCount = total
	resp.HasMore = total > len(users)
	return resp, nil
}

// SearchCourses runs a keyword search and renders a capped result list.
func SearchCourses(
	ctx context.Context,
	appState *models.AppState,
	entities map[string]interface{},
) (*models.ChatResponse, error) {
	query := entityString(entities, "query", "course")
	if query == "" {
		return missingInfo(
			"a course name, code, or topic to search for",
			"Find courses about security",
		), nil
	}

	courses, total, err := appState.LMSClient.SearchCourses(
		ctx, query, searchPageSize(appState),
	)
	if err != nil {
		return nil, err
	}

	if len(courses) == 0 {
		return notFound("course", query, courseNotFoundHint), nil
	}

	display := displayLimit(appState)
	if len(courses) > display {
		courses = courses[:display]
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %s course(s) matching **%s**:\n", humanize.Comma(int64(total)), query)
	for i := range courses {
		c := &courses[i]
		fmt.Fprintf(&b, "\n%d. **%s**", i+1, c.Name)
		if c.Code != "" {
			fmt.Fprintf(&b, " (`%s`)", c.Code)
		}
		if c.Type != "" {
			fmt.Fprintf(&b, " - %s", c.Type)
		}
	}
	if total > len(courses) {
		fmt.Fprintf(&b, "\n\n_Showing the first %d of %s._", len(courses), humanize.Comma(int64(total)))
	}

	resp := newResponse(b.String(), true)
	resp.Data["courses"] = courses
	resp.Data["query"] = query
	resp.TotalCount = total
	resp.HasMore = total > len(courses)
	return resp, nil
}

// SearchLearningPlans runs a keyword search and renders a capped result list.
// An empty query lists whatever the LMS returns first.
func SearchLearningPlans(
	ctx context.Context,
	appState *models.AppState,
	entities map[string]interface{},
) (*models.ChatResponse, error) {
	query := entityString(entities, "query", "learning_plan")

	plans, total, err := appState.LMSClient.SearchLearningPlans(
		ctx, query, searchPageSize(appState),
	)
	if err != nil {
		return nil, err
	}

	if len(plans) == 0 {
		if query == "" {
			return newResponse("No learning plans are visible to this account.", true), nil
		}
		return notFound("learning plan", query, planNotFoundHint), nil
	}

	display := displayLimit(appState)
	if len(plans) > display {
		plans = plans[:display]
	}

	var b strings.Builder
	if query == "" {
		fmt.Fprintf(&b, "Found %s learning plan(s):\n", humanize.Comma(int64(total)))
	} else {
		fmt.Fprintf(&b, "Found %s learning plan(s) matching **%s**:\n", humanize.Comma(int64(total)), query)
	}
	for i := range plans {
		p := &plans[i]
		fmt.Fprintf(&b, "\n%d. **%s**", i+1, p.Name)
		if p.Code != "" {
			fmt.Fprintf(&b, " (`%s`)", p.Code)
		}
		if p.CourseCount > 0 {
			fmt.Fprintf(&b, " - %d course(s)", p.CourseCount)
		}
	}

	resp := newResponse(b.String(), true)
	resp.Data["learning_plans"] = plans
	resp.Data["query"] = query
	resp.TotalCount = total
	resp.HasMore = total > len(plans)
	return resp, nil
}

func searchPageSize(appState *models.AppState) int {
	if appState.Config.Chat.SearchPageSize > 0 {
		return appState.Config.Chat.SearchPageSize
	}
	return 50
}

func displayLimit(appState *models.AppState) int {
	if appState.Config.Chat.DisplayLimit > 0 {
		return appState.Config.Chat.DisplayLimit
	}
	return 10
}
