package models

import "time"

const (
	ResourceTypeCourse       = "course"
	ResourceTypeLearningPlan = "learning_plan"
)

// FormattedEnrollment is the normalized view of a user's enrollment in a
// course or learning plan.
type FormattedEnrollment struct {
	// UserID is set on course-centric enrollment listings.
	UserID         int     `json:"user_id,omitempty"`
	ResourceID     int     `json:"resource_id"`
	ResourceType   string  `json:"resource_type"`
	ResourceName   string  `json:"resource_name"`
	Code           string  `json:"code,omitempty"`
	Status         string  `json:"status,omitempty"`
	Progress       float64 `json:"progress,omitempty"`
	Score          float64 `json:"score,omitempty"`
	EnrollmentDate string  `json:"enrollment_date,omitempty"`
	CompletionDate string  `json:"completion_date,omitempty"`
}

// enrollmentDateLayouts are tried in order when sorting by enrollment date.
var enrollmentDateLayouts = []string{
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006-01-02",
}

// EnrolledAt parses the enrollment date for sorting. Unparseable or absent
// dates sort last (zero time).
func (e *FormattedEnrollment) EnrolledAt() time.Time {
	for _, layout := range enrollmentDateLayouts {
		if t, err := time.Parse(layout, e.EnrollmentDate); err == nil {
			return t
		}
	}
	return time.Time{}
}

// EnrollmentOptions carries optional enrollment parameters.
type EnrollmentOptions struct {
	Level         string `json:"level,omitempty"`
	ValidityStart string `json:"date_begin_validity,omitempty"`
	ValidityEnd   string `json:"date_end_validity,omitempty"`
}
