package testutils

import (
	"context"

	"github.com/docebot/docebot/pkg/models"
)

var _ models.LMSClient = &FakeLMS{}

// FakeLMS is a test double for models.LMSClient. Each method delegates to the
// matching function field when set and otherwise returns not-found / empty,
// so tests stub only the calls they care about.
type FakeLMS struct {
	FindUserByIdentifierFn         func(ctx context.Context, identifier string) (*models.UserDetails, error)
	FindCourseByIdentifierFn       func(ctx context.Context, identifier string) (*models.CourseDetails, error)
	FindLearningPlanByIdentifierFn func(ctx context.Context, identifier string) (*models.LearningPlanDetails, error)

	SearchUsersFn         func(ctx context.Context, query string, pageSize int) ([]models.UserDetails, int, error)
	SearchCoursesFn       func(ctx context.Context, query string, pageSize int) ([]models.CourseDetails, int, error)
	SearchLearningPlansFn func(ctx context.Context, query string, pageSize int) ([]models.LearningPlanDetails, int, error)

	EnrollUserInCourseFn           func(ctx context.Context, userID, courseID int, opts *models.EnrollmentOptions) error
	EnrollUserInLearningPlanFn     func(ctx context.Context, userID, planID int, opts *models.EnrollmentOptions) error
	UnenrollUserFromCourseFn       func(ctx context.Context, userID, courseID int) error
	UnenrollUserFromLearningPlanFn func(ctx context.Context, userID, planID int) error

	GetUserCourseEnrollmentsFn       func(ctx context.Context, userID, page, pageSize int) ([]models.FormattedEnrollment, bool, error)
	GetUserLearningPlanEnrollmentsFn func(ctx context.Context, userID int) ([]models.FormattedEnrollment, error)
	GetCourseEnrollmentsFn           func(ctx context.Context, courseID int) ([]models.FormattedEnrollment, error)
}

func (f *FakeLMS) FindUserByIdentifier(
	ctx context.Context,
	identifier string,
) (*models.UserDetails, error) {
	if f.FindUserByIdentifierFn != nil {
		return f.FindUserByIdentifierFn(ctx, identifier)
	}
	return nil, models.NewNotFoundError("user " + identifier)
}

func (f *FakeLMS) FindCourseByIdentifier(
	ctx context.Context,
	identifier string,
) (*models.CourseDetails, error) {
	if f.FindCourseByIdentifierFn != nil {
		return f.FindCourseByIdentifierFn(ctx, identifier)
	}
	return nil, models.NewNotFoundError("course " + identifier)
}

func (f *FakeLMS) FindLearningPlanByIdentifier(
	ctx context.Context,
	identifier string,
) (*models.LearningPlanDetails, error) {
	if f.FindLearningPlanByIdentifierFn != nil {
		return f.FindLearningPlanByIdentifierFn(ctx, identifier)
	}
	return nil, models.NewNotFoundError("learning plan " + identifier)
}

func (f *FakeLMS) SearchUsers(
	ctx context.Context,
	query string,
	pageSize int,
) ([]models.UserDetails, int, error) {
	if f.SearchUsersFn != nil {
		return f.SearchUsersFn(ctx, query, pageSize)
	}
	return nil, 0, nil
}

func (f *FakeLMS) SearchCourses(
	ctx context.Context,
	query string,
	pageSize int,
) ([]models.CourseDetails, int, error) {
	if f.SearchCoursesFn != nil {
		return f.SearchCoursesFn(ctx, query, pageSize)
	}
	return nil, 0, nil
}

func (f *FakeLMS) SearchLearningPlans(
	ctx context.Context,
	query string,
	pageSize int,
) ([]models.LearningPlanDetails, int, error) {
	if f.SearchLearningPlansFn != nil {
		return f.SearchLearningPlansFn(ctx, query, pageSize)
	}
	return nil, 0, nil
}

func (f *FakeLMS) EnrollUserInCourse(
	ctx context.Context,
	userID, courseID int,
	opts *models.EnrollmentOptions,
) error {
	if f.EnrollUserInCourseFn != nil {
		return f.EnrollUserInCourseFn(ctx, userID, courseID, opts)
	}
	return nil
}

func (f *FakeLMS) EnrollUserInLearningPlan(
	ctx context.Context,
	userID, planID int,
	opts *models.EnrollmentOptions,
) error {
	if f.EnrollUserInLearningPlanFn != nil {
		return f.EnrollUserInLearningPlanFn(ctx, userID, planID, opts)
	}
	return nil
}

func (f *FakeLMS) UnenrollUserFromCourse(ctx context.Context, userID, courseID int) error {
	if f.UnenrollUserFromCourseFn != nil {
		return f.UnenrollUserFromCourseFn(ctx, userID, courseID)
	}
	return nil
}

func (f *FakeLMS) UnenrollUserFromLearningPlan(ctx context.Context, userID, planID int) error {
	if f.UnenrollUserFromLearningPlanFn != nil {
		return f.UnenrollUserFromLearningPlanFn(ctx, userID, planID)
	}
	return nil
}

func (f *FakeLMS) GetUserCourseEnrollments(
	ctx context.Context,
	userID, page, pageSize int,
) ([]models.FormattedEnrollment, bool, error) {
	if f.GetUserCourseEnrollmentsFn != nil {
		return f.GetUserCourseEnrollmentsFn(ctx, userID, page, pageSize)
	}
	return nil, false, nil
}

func (f *FakeLMS) GetUserLearningPlanEnrollments(
	ctx context.Context,
	userID int,
) ([]models.FormattedEnrollment, error) {
	if f.GetUserLearningPlanEnrollmentsFn != nil {
		return f.GetUserLearningPlanEnrollmentsFn(ctx, userID)
	}
	return nil, nil
}

func (f *FakeLMS) GetCourseEnrollments(
	ctx context.Context,
	courseID int,
) ([]models.FormattedEnrollment, error) {
	if f.GetCourseEnrollmentsFn != nil {
		return f.GetCourseEnrollmentsFn(ctx, courseID)
	}
	return nil, nil
}
