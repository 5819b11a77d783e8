package docebo

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/docebot/docebot/pkg/models"
)

const coursesEndpoint = "/learn/v1/courses"

// SearchCourses performs a keyword search and returns normalized courses plus
// the reported total count.
func (c *Client) SearchCourses(
	ctx context.Context,
	query string,
	pageSize int,
) ([]models.CourseDetails, int, error) {
	params := url.Values{}
	params.Set("search_text", query)
	params.Set("page_size", strconv.Itoa(pageSize))

	raw, err := c.Request(ctx, http.MethodGet, coursesEndpoint, nil, params)
	if err != nil {
		return nil, 0, err
	}

	items, total, _, err := decodeList(raw)
	if err != nil {
		return nil, 0, err
	}

	courses := make([]models.CourseDetails, len(items))
	for i, item := range items {
		courses[i] = NormalizeCourse(item)
	}

	return courses, total, nil
}

// GetCourseByID fetches a single course by numeric ID.
func (c *Client) GetCourseByID(ctx context.Context, courseID int) (*models.CourseDetails, error) {
	raw, err := c.Request(ctx, http.MethodGet, coursesEndpoint+"/"+itoa(courseID), nil, nil)
	if err != nil {
		var apiErr *models.APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
			return nil, models.NewNotFoundError("course")
		}
		return nil, err
	}

	payload, err := decodeObject(raw, "course_data")
	if err != nil {
		return nil, err
	}

	course := NormalizeCourse(payload)
	if course.CourseID == 0 {
		course.CourseID = courseID
	}

	return &course, nil
}

// FindCourseByIdentifier resolves a numeric ID, course code, or name fragment
// to a single course. A purely numeric identifier attempts a direct ID lookup
// first; no search call is made when it succeeds. Search fallback precedence:
// exact ID, exact code, case-insensitive exact name, case-insensitive
// substring, first result as last resort.
func (c *Client) FindCourseByIdentifier(
	ctx context.Context,
	identifier string,
) (*models.CourseDetails, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return nil, models.NewBadRequestError("course identifier is empty")
	}

	if id, err := strconv.Atoi(identifier); err == nil {
		if course, err := c.GetCourseByID(ctx, id); err == nil {
			return course, nil
		}
	}

	courses, _, err := c.SearchCourses(ctx, identifier, resolvePageSize)
	if err != nil {
		return nil, err
	}
	if len(courses) == 0 {
		return nil, models.NewNotFoundError("course")
	}

	lowered := strings.ToLower(identifier)

	for i := range courses {
		if strconv.Itoa(courses[i].CourseID) == identifier {
			return &courses[i], nil
		}
	}
	for i := range courses {
		if courses[i].Code != "" && strings.EqualFold(courses[i].Code, identifier) {
			return &courses[i], nil
		}
	}
	for i := range courses {
		if strings.ToLower(courses[i].Name) == lowered {
			return &courses[i], nil
		}
	}
	for i := range courses {
		if strings.Contains(strings.ToLower(courses[i].Name), lowered) {
			return &courses[i], nil
		}
	}

	return &courses[0], nil
}
