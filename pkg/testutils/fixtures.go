package testutils

import (
	"fmt"

	"github.com/docebot/docebot/pkg/models"

	"github.com/brianvoe/gofakeit/v6"
)

// FakeUser generates a plausible LMS user.
func FakeUser(userID int) models.UserDetails {
	first := gofakeit.FirstName()
	last := gofakeit.LastName()
	return models.UserDetails{
		UserID:   userID,
		Username: fmt.Sprintf("%s.%s", first, last),
		Email:    fmt.Sprintf("%s.%s@%s", first, last, gofakeit.DomainName()),
		FullName: first + " " + last,
		Status:   "active",
		Level:    "user",
	}
}

// FakeCourse generates a plausible LMS course.
func FakeCourse(courseID int) models.CourseDetails {
	return models.CourseDetails{
		CourseID: courseID,
		Name:     gofakeit.BuzzWord() + " " + gofakeit.HackerNoun(),
		Code:     fmt.Sprintf("C-%d", courseID),
		Type:     "elearning",
		Status:   "published",
		Language: "english",
	}
}

// FakeLearningPlan generates a plausible learning plan.
func FakeLearningPlan(planID int) models.LearningPlanDetails {
	return models.LearningPlanDetails{
		PlanID:      planID,
		Name:        gofakeit.JobTitle() + " Track",
		Code:        fmt.Sprintf("LP-%d", planID),
		CourseCount: gofakeit.Number(2, 8),
	}
}

// FakeEnrollment generates a course enrollment for the given user and course.
func FakeEnrollment(userID, courseID int, name string) models.FormattedEnrollment {
	return models.FormattedEnrollment{
		UserID:         userID,
		ResourceID:     courseID,
		ResourceType:   models.ResourceTypeCourse,
		ResourceName:   name,
		Status:         "in_progress",
		Progress:       float64(gofakeit.Number(0, 100)),
		EnrollmentDate: gofakeit.Date().Format("2006-01-02 15:04:05"),
	}
}
