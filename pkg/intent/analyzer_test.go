package intent

import (
	"regexp"
	"testing"

	"github.com/docebot/docebot/pkg/models"

	"github.com/stretchr/testify/assert"
)

func TestAnalyzeClassification(t *testing.T) {
	analyzer := NewAnalyzer()

	testCases := []struct {
		name       string
		message    string
		intent     string
		confidence float64
	}{
		{
			name:       "enroll in course with email",
			message:    "Enroll jane@example.com in Python Basics",
			intent:     IntentEnrollUserInCourse,
			confidence: 0.98,
		},
		{
			name:       "enroll in course without email",
			message:    "add John Smith to course Python Basics",
			intent:     IntentEnrollUserInCourse,
			confidence: 0.95,
		},
		{
			name:       "enroll in learning plan",
			message:    "Enroll jane@example.com in the learning plan Data Science Track",
			intent:     IntentEnrollUserInLearningPlan,
			confidence: 0.97,
		},
		{
			name:       "unenroll",
			message:    "Remove john@example.com from Python Basics",
			intent:     IntentUnenrollUser,
			confidence: 0.93,
		},
		{
			name:       "check enrollment",
			message:    "Is jane@example.com enrolled in Python Basics?",
			intent:     IntentCheckEnrollment,
			confidence: 0.9,
		},
		{
			name:       "user enrollments",
			message:    "Show enrollments for jane@example.com page 2",
			intent:     IntentGetUserEnrollments,
			confidence: 0.88,
		},
		{
			name:       "bulk enrollment",
			message:    "I want to bulk enroll users via CSV",
			intent:     IntentBulkEnrollment,
			confidence: 0.85,
		},
		{
			name:       "user info with email",
			message:    "Who is jane@example.com?",
			intent:     IntentGetUserInfo,
			confidence: 0.86,
		},
		{
			name:       "course info",
			message:    "Tell me about the course Python Basics",
			intent:     IntentGetCourseInfo,
			confidence: 0.78,
		},
		{
			name:       "search users",
			message:    "Find users named Smith",
			intent:     IntentSearchUsers,
			confidence: 0.7,
		},
		{
			name:       "search courses",
			message:    "Search for courses about security",
			intent:     IntentSearchCourses,
			confidence: 0.68,
		},
		{
			name:       "search learning plans",
			message:    "List learning plans",
			intent:     IntentSearchLearningPlans,
			confidence: 0.66,
		},
		{
			name:       "help",
			message:    "What can you do?",
			intent:     IntentHelp,
			confidence: 0.6,
		},
		{
			name:       "unknown",
			message:    "the weather is nice",
			intent:     models.IntentUnknown,
			confidence: 0,
		},
		{
			name:       "empty message",
			message:    "   ",
			intent:     models.IntentUnknown,
			confidence: 0,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result := analyzer.Analyze(tc.message)
			assert.Equal(t, tc.intent, result.Intent)
			assert.InDelta(t, tc.confidence, result.Confidence, 0.001)
		})
	}
}

func TestAnalyzeEntityExtraction(t *testing.T) {
	analyzer := NewAnalyzer()

	t.Run("course enrollment entities", func(t *testing.T) {
		result := analyzer.Analyze("Enroll jane@example.com in Python Basics")
		assert.Equal(t, "jane@example.com", result.Entities["email"])
		assert.Equal(t, "Python Basics", result.Entities["course"])
	})

	t.Run("quoted resource wins over keyword capture", func(t *testing.T) {
		result := analyzer.Analyze(`Enroll jane@example.com in "Advanced Go, Part 2"`)
		assert.Equal(t, "Advanced Go, Part 2", result.Entities["course"])
	})

	t.Run("alternate enrollment verbs keep the user capture", func(t *testing.T) {
		result := analyzer.Analyze("add John Smith to course Python Basics")
		assert.Equal(t, IntentEnrollUserInCourse, result.Intent)
		assert.Equal(t, "John Smith", result.Entities["user"])
		assert.Equal(t, "Python Basics", result.Entities["course"])

		result = analyzer.Analyze("sign up Mary Jones for Safety Basics")
		assert.Equal(t, "Mary Jones", result.Entities["user"])
	})

	t.Run("alternate unenrollment verbs keep the user capture", func(t *testing.T) {
		result := analyzer.Analyze("Withdraw John Smith from Python Basics")
		assert.Equal(t, IntentUnenrollUser, result.Intent)
		assert.Equal(t, "John Smith", result.Entities["user"])
		assert.Equal(t, "Python Basics", result.Entities["resource"])
	})

	t.Run("unenroll resource type for learning plans", func(t *testing.T) {
		result := analyzer.Analyze("Remove jane@example.com from the learning plan Onboarding")
		assert.Equal(t, "learning_plan", result.Entities["resource_type"])
		assert.Equal(t, "Onboarding", result.Entities["resource"])
	})

	t.Run("page entity", func(t *testing.T) {
		result := analyzer.Analyze("Show enrollments for jane@example.com page 2")
		assert.Equal(t, "2", result.Entities["page"])
	})

	t.Run("entity casing preserved", func(t *testing.T) {
		result := analyzer.Analyze("Find users named McAllister")
		assert.Equal(t, "McAllister", result.Entities["query"])
	})

	t.Run("empty entities are omitted", func(t *testing.T) {
		result := analyzer.Analyze("Enroll someone in something")
		_, hasEmail := result.Entities["email"]
		assert.False(t, hasEmail)
	})
}

func TestAnalyzeTieKeepsFirstRule(t *testing.T) {
	analyzer := &Analyzer{rules: []rule{
		{
			intent:     "first",
			confidence: 0.5,
			patterns:   []*regexp.Regexp{regexp.MustCompile(`ping`)},
		},
		{
			intent:     "second",
			confidence: 0.5,
			patterns:   []*regexp.Regexp{regexp.MustCompile(`ping`)},
		},
	}}

	result := analyzer.Analyze("ping")
	assert.Equal(t, "first", result.Intent)
}

func TestAnalyzeEmailBoost(t *testing.T) {
	analyzer := &Analyzer{rules: []rule{
		{
			intent:     "boosted",
			confidence: 0.5,
			emailBoost: 0.9,
			patterns:   []*regexp.Regexp{regexp.MustCompile(`lookup`)},
		},
	}}

	withEmail := analyzer.Analyze("lookup jane@example.com")
	assert.InDelta(t, 0.9, withEmail.Confidence, 0.001)

	withoutEmail := analyzer.Analyze("lookup jane")
	assert.InDelta(t, 0.5, withoutEmail.Confidence, 0.001)
}

func TestExtractEmail(t *testing.T) {
	assert.Equal(t, "jane@example.com", ExtractEmail("enroll jane@example.com please"))
	assert.Equal(t, "a.b+c@sub.example.co", ExtractEmail("mail a.b+c@sub.example.co now"))
	assert.Empty(t, ExtractEmail("no email here"))
}

func TestIntents(t *testing.T) {
	analyzer := NewAnalyzer()
	names := analyzer.Intents()
	assert.Len(t, names, 12)
	assert.Equal(t, IntentEnrollUserInCourse, names[0])
	assert.Equal(t, IntentHelp, names[len(names)-1])
}
