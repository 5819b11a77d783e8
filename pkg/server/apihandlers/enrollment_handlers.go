package apihandlers

import (
	"net/http"

	"github.com/docebot/docebot/pkg/models"
	"github.com/docebot/docebot/pkg/server/handlertools"

	"github.com/go-chi/chi/v5"
)

const defaultEnrollmentPageSize = 50

// userEnrollmentsResponse is one remote page of a user's course enrollments.
type userEnrollmentsResponse struct {
	User        *models.UserDetails          `json:"user"`
	Enrollments []models.FormattedEnrollment `json:"enrollments"`
	Page        int                          `json:"page"`
	PageSize    int                          `json:"pageSize"`
	HasMore     bool                         `json:"hasMore"`
}

// GetUserEnrollmentsHandler returns one page of a user's course enrollments
// as plain JSON, for clients that want the data without the chat rendering.
// The user path segment accepts an email, numeric ID, or username.
func GetUserEnrollmentsHandler(appState *models.AppState) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, err := handlertools.IntFromQuery[int](r, "page")
		if err != nil {
			handlertools.RenderError(
				w,
				models.NewBadRequestError("page must be a number"),
				http.StatusBadRequest,
			)
			return
		}
		if page < 1 {
			page = 1
		}

		pageSize, err := handlertools.IntFromQuery[int](r, "page_size")
		if err != nil {
			handlertools.RenderError(
				w,
				models.NewBadRequestError("page_size must be a number"),
				http.StatusBadRequest,
			)
			return
		}
		if pageSize < 1 {
			pageSize = defaultEnrollmentPageSize
		}

		user, err := appState.LMSClient.FindUserByIdentifier(r.Context(), chi.URLParam(r, "user"))
		if err != nil {
			handlertools.RenderError(w, err, http.StatusInternalServerError)
			return
		}

		enrollments, hasMore, err := appState.LMSClient.GetUserCourseEnrollments(
			r.Context(), user.UserID, page, pageSize,
		)
		if err != nil {
			handlertools.RenderError(w, err, http.StatusInternalServerError)
			return
		}
		if enrollments == nil {
			enrollments = []models.FormattedEnrollment{}
		}

		response := userEnrollmentsResponse{
			User:        user,
			Enrollments: enrollments,
			Page:        page,
			PageSize:    pageSize,
			HasMore:     hasMore,
		}
		if err := handlertools.EncodeJSON(w, response); err != nil {
			handlertools.RenderError(w, err, http.StatusInternalServerError)
			return
		}
	}
}
