package docebo

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/docebot/docebot/pkg/models"
)

// Raw Docebo objects expose the same value under 10-30 alternate field names
// depending on endpoint, API version, and environment. Each normalizer below
// coalesces them into one canonical struct via an explicit left-to-right
// precedence list. The precedence order is load-bearing and tested.

var userFieldPrecedence = map[string][]string{
	"user_id":    {"user_id", "id_user", "id", "idst"},
	"username":   {"username", "userid", "user_name"},
	"email":      {"email", "mail", "email_address"},
	"fullname":   {"fullname", "full_name", "name"},
	"first_name": {"first_name", "firstname"},
	"last_name":  {"last_name", "lastname"},
	"status":     {"status", "valid"},
	"level":      {"level", "user_level"},
	"created":    {"creation_date", "register_date", "date_creation"},
	"access":     {"last_access_date", "lastenter", "last_enter"},
}

// NormalizeUser coalesces a raw user payload into UserDetails.
func NormalizeUser(raw map[string]interface{}) models.UserDetails {
	user := models.UserDetails{
		UserID:       firstInt(raw, userFieldPrecedence["user_id"]...),
		Username:     firstString(raw, userFieldPrecedence["username"]...),
		Email:        firstString(raw, userFieldPrecedence["email"]...),
		FullName:     firstString(raw, userFieldPrecedence["fullname"]...),
		FirstName:    firstString(raw, userFieldPrecedence["first_name"]...),
		LastName:     firstString(raw, userFieldPrecedence["last_name"]...),
		Status:       firstString(raw, userFieldPrecedence["status"]...),
		Level:        firstString(raw, userFieldPrecedence["level"]...),
		CreationDate: firstString(raw, userFieldPrecedence["created"]...),
		LastAccess:   firstString(raw, userFieldPrecedence["access"]...),
	}

	if user.FullName == "" && (user.FirstName != "" || user.LastName != "") {
		user.FullName = strings.TrimSpace(user.FirstName + " " + user.LastName)
	}

	return user
}

var courseFieldPrecedence = map[string][]string{
	"course_id":   {"id_course", "course_id", "idCourse", "id"},
	"code":        {"code", "course_code", "uidCourse"},
	"name":        {"name", "title", "course_name"},
	"description": {"description", "course_description"},
	"type":        {"course_type", "type"},
	"status":      {"status", "course_status"},
	"language":    {"lang_code", "language"},
	"created":     {"creation_date", "date_creation"},
	"enrolled":    {"enrolled_count", "enrolled_users_count", "subscribed_users"},
}

// NormalizeCourse coalesces a raw course payload into CourseDetails.
func NormalizeCourse(raw map[string]interface{}) models.CourseDetails {
	return models.CourseDetails{
		CourseID:      firstInt(raw, courseFieldPrecedence["course_id"]...),
		Code:          firstString(raw, courseFieldPrecedence["code"]...),
		Name:          firstString(raw, courseFieldPrecedence["name"]...),
		Description:   firstString(raw, courseFieldPrecedence["description"]...),
		Type:          firstString(raw, courseFieldPrecedence["type"]...),
		Status:        firstString(raw, courseFieldPrecedence["status"]...),
		Language:      firstString(raw, courseFieldPrecedence["language"]...),
		CreationDate:  firstString(raw, courseFieldPrecedence["created"]...),
		EnrolledCount: firstInt(raw, courseFieldPrecedence["enrolled"]...),
	}
}

var planFieldPrecedence = map[string][]string{
	"plan_id":     {"learning_plan_id", "id_path", "lp_id", "id"},
	"code":        {"code", "learning_plan_code", "path_code"},
	"name":        {"name", "title", "learning_plan_name", "path_name"},
	"description": {"description", "path_description"},
	"courses":     {"course_count", "courses_count", "total_courses"},
	"created":     {"creation_date", "date_creation"},
}

// NormalizeLearningPlan coalesces a raw learning plan payload into
// LearningPlanDetails.
func NormalizeLearningPlan(raw map[string]interface{}) models.LearningPlanDetails {
	return models.LearningPlanDetails{
		PlanID:       firstInt(raw, planFieldPrecedence["plan_id"]...),
		Code:         firstString(raw, planFieldPrecedence["code"]...),
		Name:         firstString(raw, planFieldPrecedence["name"]...),
		Description:  firstString(raw, planFieldPrecedence["description"]...),
		CourseCount:  firstInt(raw, planFieldPrecedence["courses"]...),
		CreationDate: firstString(raw, planFieldPrecedence["created"]...),
	}
}

var enrollmentFieldPrecedence = map[string][]string{
	// Bare "id" is deliberately absent here; on enrollment records it refers
	// to the resource, not the user.
	"user_id": {"user_id", "id_user"},
	"resource_id": {
		"course_id", "id_course", "learning_plan_id", "id_path", "resource_id", "id",
	},
	"name": {
		"course_name", "name", "title", "learning_plan_name", "path_name",
	},
	"code":       {"course_code", "code", "path_code"},
	"status":     {"status", "enrollment_status", "status_label"},
	"progress":   {"completion_percentage", "percentage", "progress"},
	"score":      {"score", "score_given", "final_score"},
	"enrolled":   {"enrollment_created_at", "enroll_date_of_enrollment", "enroll_date", "date_inscr", "enrollment_date", "subscription_date"},
	"completed":  {"enrollment_completed_at", "date_complete", "complete_date", "completion_date"},
}

// NormalizeEnrollment coalesces a raw enrollment payload. resourceType tells
// the normalizer whether the record came from a course or learning plan
// listing; the payloads are not self-describing.
func NormalizeEnrollment(raw map[string]interface{}, resourceType string) models.FormattedEnrollment {
	return models.FormattedEnrollment{
		UserID:         firstInt(raw, enrollmentFieldPrecedence["user_id"]...),
		ResourceID:     firstInt(raw, enrollmentFieldPrecedence["resource_id"]...),
		ResourceType:   resourceType,
		ResourceName:   firstString(raw, enrollmentFieldPrecedence["name"]...),
		Code:           firstString(raw, enrollmentFieldPrecedence["code"]...),
		Status:         firstString(raw, enrollmentFieldPrecedence["status"]...),
		Progress:       firstFloat(raw, enrollmentFieldPrecedence["progress"]...),
		Score:          firstFloat(raw, enrollmentFieldPrecedence["score"]...),
		EnrollmentDate: firstString(raw, enrollmentFieldPrecedence["enrolled"]...),
		CompletionDate: firstString(raw, enrollmentFieldPrecedence["completed"]...),
	}
}

// firstString returns the first present, non-empty value among keys, rendered
// as a string. Numeric values are formatted without a trailing ".0".
func firstString(raw map[string]interface{}, keys ...string) string {
	for _, key := range keys {
		value, ok := raw[key]
		if !ok || value == nil {
			continue
		}
		switch v := value.(type) {
		case string:
			if v != "" {
				return v
			}
		case float64:
			return strconv.FormatFloat(v, 'f', -1, 64)
		case int:
			return strconv.Itoa(v)
		case bool:
			return strconv.FormatBool(v)
		}
	}
	return ""
}

// firstInt returns the first present value among keys as an int. String
// values are parsed; the Docebo API returns IDs as both numbers and strings.
func firstInt(raw map[string]interface{}, keys ...string) int {
	for _, key := range keys {
		value, ok := raw[key]
		if !ok || value == nil {
			continue
		}
		switch v := value.(type) {
		case float64:
			return int(v)
		case int:
			return v
		case string:
			if parsed, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
				return parsed
			}
		}
	}
	return 0
}

func firstFloat(raw map[string]interface{}, keys ...string) float64 {
	for _, key := range keys {
		value, ok := raw[key]
		if !ok || value == nil {
			continue
		}
		switch v := value.(type) {
		case float64:
			return v
		case int:
			return float64(v)
		case string:
			if parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
				return parsed
			}
		}
	}
	return 0
}

func firstBool(raw map[string]interface{}, keys ...string) bool {
	for _, key := range keys {
		value, ok := raw[key]
		if !ok || value == nil {
			continue
		}
		switch v := value.(type) {
		case bool:
			return v
		case string:
			if parsed, err := strconv.ParseBool(v); err == nil {
				return parsed
			}
		case float64:
			return v != 0
		}
	}
	return false
}

// itoa is a tiny readability helper for building endpoint paths.
func itoa(id int) string {
	return fmt.Sprintf("%d", id)
}
