package docebo

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/docebot/docebot/pkg/models"
)

const enrollmentsEndpoint = "/learn/v1/enrollments"

// EnrollUserInCourse enrolls a user in a course, optionally with a level and
// validity window.
func (c *Client) EnrollUserInCourse(
	ctx context.Context,
	userID int,
	courseID int,
	opts *models.EnrollmentOptions,
) error {
	body := map[string]interface{}{
		"course_ids": []int{courseID},
		"user_ids":   []int{userID},
		"level":      "student",
	}
	applyEnrollmentOptions(body, opts)

	_, err := c.Request(ctx, http.MethodPost, enrollmentsEndpoint, body, nil)
	return err
}

// learningPlanEnrollEndpoints are the known URL shapes for enrolling a user
// in a learning plan, probed in order.
func learningPlanEnrollEndpoints(planID int) []string {
	return []string{
		"/learningplan/v1/learningplans/" + itoa(planID) + "/enrollments",
		"/learn/v1/lp/" + itoa(planID) + "/enroll",
		"/learn/v1/lp/enrollments",
	}
}

// EnrollUserInLearningPlan enrolls a user in a learning plan, probing the
// endpoint variants until one accepts the request.
func (c *Client) EnrollUserInLearningPlan(
	ctx context.Context,
	userID int,
	planID int,
	opts *models.EnrollmentOptions,
) error {
	body := map[string]interface{}{
		"user_ids":          []int{userID},
		"learning_plan_ids": []int{planID},
	}
	applyEnrollmentOptions(body, opts)

	var lastErr error
	for _, endpoint := range learningPlanEnrollEndpoints(planID) {
		_, err := c.Request(ctx, http.MethodPost, endpoint, body, nil)
		if err == nil {
			return nil
		}
		lastErr = err
	}

	return lastErr
}

// UnenrollUserFromCourse removes a user's course enrollment.
func (c *Client) UnenrollUserFromCourse(ctx context.Context, userID, courseID int) error {
	endpoint := enrollmentsEndpoint + "/" + itoa(courseID) + "/" + itoa(userID)
	if _, err := c.Request(ctx, http.MethodDelete, endpoint, nil, nil); err == nil {
		return nil
	}

	// Older environments only accept a batch-shaped delete.
	body := map[string]interface{}{
		"course_ids": []int{courseID},
		"user_ids":   []int{userID},
	}
	_, err := c.Request(ctx, http.MethodDelete, enrollmentsEndpoint, body, nil)
	return err
}

// UnenrollUserFromLearningPlan removes a user's learning plan enrollment,
// probing the endpoint variants.
func (c *Client) UnenrollUserFromLearningPlan(ctx context.Context, userID, planID int) error {
	endpoints := []string{
		"/learningplan/v1/learningplans/" + itoa(planID) + "/enrollments/" + itoa(userID),
		"/learn/v1/lp/" + itoa(planID) + "/unenroll/" + itoa(userID),
	}

	var lastErr error
	for _, endpoint := range endpoints {
		if _, err := c.Request(ctx, http.MethodDelete, endpoint, nil, nil); err == nil {
			return nil
		} else {
			lastErr = err
		}
	}

	return lastErr
}

// GetUserCourseEnrollments returns one remote page of the user's course
// enrollments. The primary endpoint is filtered by id_user; environments that
// reject the filter are probed with the per-user variants.
func (c *Client) GetUserCourseEnrollments(
	ctx context.Context,
	userID int,
	page int,
	pageSize int,
) ([]models.FormattedEnrollment, bool, error) {
	params := url.Values{}
	params.Set("id_user", strconv.Itoa(userID))
	params.Set("page", strconv.Itoa(page))
	params.Set("page_size", strconv.Itoa(pageSize))

	endpoints := []string{
		enrollmentsEndpoint,
		"/learn/v1/enrollments/users/" + itoa(userID),
		"/course/v1/courses/enrollments",
	}

	var lastErr error
	for _, endpoint := range endpoints {
		raw, err := c.Request(ctx, http.MethodGet, endpoint, nil, params)
		if err != nil {
			lastErr = err
			continue
		}

		items, _, hasMore, err := decodeList(raw)
		if err != nil {
			lastErr = err
			continue
		}

		enrollments := make([]models.FormattedEnrollment, len(items))
		for i, item := range items {
			enrollments[i] = NormalizeEnrollment(item, models.ResourceTypeCourse)
		}
		return enrollments, hasMore, nil
	}

	return nil, false, lastErr
}

// GetUserLearningPlanEnrollments returns all of the user's learning plan
// enrollments, probing the endpoint variants.
func (c *Client) GetUserLearningPlanEnrollments(
	ctx context.Context,
	userID int,
) ([]models.FormattedEnrollment, error) {
	params := url.Values{}
	params.Set("id_user", strconv.Itoa(userID))

	endpoints := []string{
		"/learningplan/v1/learningplans/enrollments",
		"/learn/v1/lp/enrollments",
	}

	var lastErr error
	for _, endpoint := range endpoints {
		raw, err := c.Request(ctx, http.MethodGet, endpoint, nil, params)
		if err != nil {
			lastErr = err
			continue
		}

		items, _, _, err := decodeList(raw)
		if err != nil {
			lastErr = err
			continue
		}

		enrollments := make([]models.FormattedEnrollment, len(items))
		for i, item := range items {
			enrollments[i] = NormalizeEnrollment(item, models.ResourceTypeLearningPlan)
		}
		return enrollments, nil
	}

	return nil, lastErr
}

// GetCourseEnrollments lists the enrollments of a single course.
func (c *Client) GetCourseEnrollments(
	ctx context.Context,
	courseID int,
) ([]models.FormattedEnrollment, error) {
	endpoints := []string{
		coursesEndpoint + "/" + itoa(courseID) + "/enrollments",
		"/course/v1/courses/" + itoa(courseID) + "/enrollments",
	}

	var lastErr error
	for _, endpoint := range endpoints {
		raw, err := c.Request(ctx, http.MethodGet, endpoint, nil, nil)
		if err != nil {
			lastErr = err
			continue
		}

		items, _, _, err := decodeList(raw)
		if err != nil {
			lastErr = err
			continue
		}

		enrollments := make([]models.FormattedEnrollment, len(items))
		for i, item := range items {
			enrollments[i] = NormalizeEnrollment(item, models.ResourceTypeCourse)
		}
		return enrollments, nil
	}

	return nil, lastErr
}

func applyEnrollmentOptions(body map[string]interface{}, opts *models.EnrollmentOptions) {
	if opts == nil {
		return
	}
	if opts.Level != "" {
		body["level"] = opts.Level
	}
	if opts.ValidityStart != "" {
		body["date_begin_validity"] = opts.ValidityStart
	}
	if opts.ValidityEnd != "" {
		body["date_end_validity"] = opts.ValidityEnd
	}
}
