package models

import "context"

// LMSClient is the interface to the external LMS. The LMS is the system of
// record for every entity here; nothing is cached beyond the client's OAuth
// token.
type LMSClient interface {
	// FindUserByIdentifier resolves a user from an email address, numeric ID,
	// or username/full-name fragment. Numeric identifiers are looked up
	// directly before falling back to search.
	FindUserByIdentifier(ctx context.Context, identifier string) (*UserDetails, error)
	FindCourseByIdentifier(ctx context.Context, identifier string) (*CourseDetails, error)
	FindLearningPlanByIdentifier(ctx context.Context, identifier string) (*LearningPlanDetails, error)

	SearchUsers(ctx context.Context, query string, pageSize int) ([]UserDetails, int, error)
	SearchCourses(ctx context.Context, query string, pageSize int) ([]CourseDetails, int, error)
	SearchLearningPlans(ctx context.Context, query string, pageSize int) ([]LearningPlanDetails, int, error)

	EnrollUserInCourse(ctx context.Context, userID, courseID int, opts *EnrollmentOptions) error
	EnrollUserInLearningPlan(ctx context.Context, userID, planID int, opts *EnrollmentOptions) error
	UnenrollUserFromCourse(ctx context.Context, userID, courseID int) error
	UnenrollUserFromLearningPlan(ctx context.Context, userID, planID int) error

	// GetUserCourseEnrollments returns one remote page of the user's course
	// enrollments plus whether the API signaled more data.
	GetUserCourseEnrollments(ctx context.Context, userID, page, pageSize int) ([]FormattedEnrollment, bool, error)
	GetUserLearningPlanEnrollments(ctx context.Context, userID int) ([]FormattedEnrollment, error)
	GetCourseEnrollments(ctx context.Context, courseID int) ([]FormattedEnrollment, error)
}
