package intent

import "regexp"

// Intent names. Enrollment-family intents carry higher confidences than
// searches so that a message matching both resolves to the action.
const (
	IntentEnrollUserInCourse       = "enroll_user_in_course"
	IntentEnrollUserInLearningPlan = "enroll_user_in_learning_plan"
	IntentUnenrollUser             = "unenroll_user"
	IntentCheckEnrollment          = "check_enrollment"
	IntentGetUserEnrollments       = "get_user_enrollments"
	IntentBulkEnrollment           = "bulk_enrollment"
	IntentGetUserInfo              = "get_user_info"
	IntentGetCourseInfo            = "get_course_info"
	IntentSearchUsers              = "search_users"
	IntentSearchCourses            = "search_courses"
	IntentSearchLearningPlans      = "search_learning_plans"
	IntentHelp                     = "help"
)

var learningPlanMention = regexp.MustCompile(`learning\s*plan|\blp\b`)

// Verb starts for the user capture, one per verb the enrollment patterns
// accept. "sign up" before "sign" so the capture skips the particle.
var enrollVerbStarts = []string{"enroll ", "register ", "sign up ", "sign ", "add "}

var unenrollVerbStarts = []string{"unenroll ", "withdraw ", "remove "}

// defaultRules is the fixed, priority-ordered intent table. Confidences are
// hand-tuned constants; order only matters for equal confidences.
func defaultRules() []rule {
	return []rule{
		{
			intent:     IntentEnrollUserInCourse,
			confidence: 0.95,
			emailBoost: 0.98,
			patterns: []*regexp.Regexp{
				regexp.MustCompile(`\b(enroll|register|add|sign)\b.+\b(in|into|to|for|on)\b.+`),
			},
			excludes: []*regexp.Regexp{learningPlanMention},
			extract: func(message string) map[string]interface{} {
				return entities(
					"email", ExtractEmail(message),
					"user", userEntity(message, enrollVerbStarts, " in ", " into ", " to ", " for ", " on "),
					"course", resourceEntity(message,
						"in the course", "into the course", "to the course",
						"in course", "into course", "to course", "for course",
						"in ", "into ", "for ",
					),
				)
			},
		},
		{
			intent:     IntentEnrollUserInLearningPlan,
			confidence: 0.94,
			emailBoost: 0.97,
			patterns: []*regexp.Regexp{
				regexp.MustCompile(`\b(enroll|register|add|sign)\b.+\b(learning\s*plan|lp)\b`),
			},
			extract: func(message string) map[string]interface{} {
				return entities(
					"email", ExtractEmail(message),
					"user", userEntity(message, enrollVerbStarts, " in ", " into ", " to ", " on "),
					"learning_plan", resourceEntity(message,
						"in the learning plan", "to the learning plan",
						"in learning plan", "to learning plan",
						"learning plan", "lp ",
					),
				)
			},
		},
		{
			intent:     IntentUnenrollUser,
			confidence: 0.93,
			patterns: []*regexp.Regexp{
				regexp.MustCompile(`\b(unenroll|withdraw|remove)\b.+\bfrom\b.+`),
			},
			extract: func(message string) map[string]interface{} {
				resourceType := "course"
				if learningPlanMention.MatchString(message) {
					resourceType = "learning_plan"
				}
				return entities(
					"email", ExtractEmail(message),
					"user", userEntity(message, unenrollVerbStarts, " from "),
					"resource", resourceEntity(message,
						"from the course", "from course",
						"from the learning plan", "from learning plan",
						"from ",
					),
					"resource_type", resourceType,
				)
			},
		},
		{
			intent:     IntentCheckEnrollment,
			confidence: 0.9,
			patterns: []*regexp.Regexp{
				regexp.MustCompile(`\bis\b.+\benrolled\b`),
				regexp.MustCompile(`\bcheck\b.+\benroll`),
				regexp.MustCompile(`\benrollment status\b`),
			},
			extract: func(message string) map[string]interface{} {
				return entities(
					"email", ExtractEmail(message),
					"user", userEntity(message, []string{"is "}, " enrolled"),
					"course", resourceEntity(message,
						"enrolled in the", "enrolled in", "in course", "in ", "for ",
					),
				)
			},
		},
		{
			intent:     IntentGetUserEnrollments,
			confidence: 0.88,
			patterns: []*regexp.Regexp{
				regexp.MustCompile(`\b(show|list|get|view|fetch)\b.+\benrollments?\b`),
				regexp.MustCompile(`\benrollments?\b.+\b(for|of)\b`),
				regexp.MustCompile(`\bwhat\b.+\b(courses|plans)\b.+\b(is|does|has)\b`),
			},
			extract: func(message string) map[string]interface{} {
				return entities(
					"email", ExtractEmail(message),
					"user", userEntity(message, []string{"for "}, " page"),
					"page", afterKeyword(message, "page "),
				)
			},
		},
		{
			intent:     IntentBulkEnrollment,
			confidence: 0.85,
			patterns: []*regexp.Regexp{
				regexp.MustCompile(`\b(bulk|batch|mass)\b.*\benroll`),
				regexp.MustCompile(`\bcsv\b`),
				regexp.MustCompile(`\bupload\b.+\b(file|list)\b`),
			},
			extract: func(message string) map[string]interface{} {
				return entities("resource", extractQuoted(message))
			},
		},
		{
			intent:     IntentGetUserInfo,
			confidence: 0.8,
			emailBoost: 0.86,
			patterns: []*regexp.Regexp{
				regexp.MustCompile(`\bwho is\b`),
				regexp.MustCompile(`\buser (info|information|details|profile)\b`),
				regexp.MustCompile(`\b(info|information|details) (about|on|for) (user|the user)\b`),
			},
			excludes: []*regexp.Regexp{
				regexp.MustCompile(`\bcourse\b`),
				learningPlanMention,
			},
			extract: func(message string) map[string]interface{} {
				return entities(
					"email", ExtractEmail(message),
					"user", resourceEntity(message, "who is", "about user", "for user", "on user", "user "),
				)
			},
		},
		{
			intent:     IntentGetCourseInfo,
			confidence: 0.78,
			patterns: []*regexp.Regexp{
				regexp.MustCompile(`\bcourse (info|information|details)\b`),
				regexp.MustCompile(`\b(about|describe|tell me about)\b.+\bcourse\b`),
				regexp.MustCompile(`\b(info|information|details) (about|on|for) (course|the course)\b`),
				regexp.MustCompile(`\bcourse\b.+\b(info|details)\b`),
			},
			extract: func(message string) map[string]interface{} {
				return entities(
					"course", resourceEntity(message,
						"about the course", "about course", "course info for",
						"course details for", "the course", "course ",
					),
				)
			},
		},
		{
			intent:     IntentSearchUsers,
			confidence: 0.7,
			patterns: []*regexp.Regexp{
				regexp.MustCompile(`\b(find|search|look\s?up)\b.+\b(users?|people|person|employees?)\b`),
				regexp.MustCompile(`\busers?\b.+\b(named|called|matching)\b`),
			},
			extract: func(message string) map[string]interface{} {
				return entities(
					"query", resourceEntity(message,
						"named", "called", "matching",
						"users for", "user ", "users ",
					),
				)
			},
		},
		{
			intent:     IntentSearchCourses,
			confidence: 0.68,
			patterns: []*regexp.Regexp{
				regexp.MustCompile(`\b(find|search|look\s?up|browse)\b.+\b(courses?|trainings?)\b`),
				regexp.MustCompile(`\bcourses?\b.+\b(about|on|named|called|matching)\b`),
			},
			excludes: []*regexp.Regexp{learningPlanMention},
			extract: func(message string) map[string]interface{} {
				return entities(
					"query", resourceEntity(message,
						"courses about", "courses on", "courses for",
						"courses named", "courses called", "courses matching",
						"course ", "courses ",
					),
				)
			},
		},
		{
			intent:     IntentSearchLearningPlans,
			confidence: 0.66,
			patterns: []*regexp.Regexp{
				regexp.MustCompile(`\b(find|search|look\s?up|list|show)\b.+\b(learning\s?plans?|lps?)\b`),
			},
			extract: func(message string) map[string]interface{} {
				return entities(
					"query", resourceEntity(message,
						"learning plans about", "learning plans on",
						"learning plans named", "learning plans matching",
						"learning plans", "learning plan", "lps ", "lp ",
					),
				)
			},
		},
		{
			intent:     IntentHelp,
			confidence: 0.6,
			patterns: []*regexp.Regexp{
				regexp.MustCompile(`^\s*(help|hi|hello|hey)\b`),
				regexp.MustCompile(`\bwhat can you do\b`),
				regexp.MustCompile(`\bhow do i\b`),
			},
		},
	}
}
