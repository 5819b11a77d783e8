package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/docebot/docebot/config"
	"github.com/docebot/docebot/pkg/auth"
	"github.com/docebot/docebot/pkg/intent"
	"github.com/docebot/docebot/pkg/models"
	"github.com/docebot/docebot/pkg/testutils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testAppState(lms models.LMSClient) *models.AppState {
	return &models.AppState{
		LMSClient: lms,
		Analyzer:  intent.NewAnalyzer(),
		Config:    testutils.NewTestConfig(),
	}
}

func postJSON(t *testing.T, router http.Handler, path string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func TestHealthz(t *testing.T) {
	router := setupRouter(testAppState(&testutils.FakeLMS{}))

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusOK, recorder.Code)
}

func TestVersionHeader(t *testing.T) {
	router := setupRouter(testAppState(&testutils.FakeLMS{}))

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, config.VersionString, recorder.Header().Get(versionHeader))
}

func TestPostChat(t *testing.T) {
	lms := &testutils.FakeLMS{
		FindUserByIdentifierFn: func(_ context.Context, identifier string) (*models.UserDetails, error) {
			return &models.UserDetails{UserID: 7, Email: identifier, FullName: "Jane Doe"}, nil
		},
	}
	router := setupRouter(testAppState(lms))

	recorder := postJSON(t, router, "/api/v1/chat", models.ChatRequest{
		Message: "Who is jane@example.com?",
	})
	require.Equal(t, http.StatusOK, recorder.Code)

	var resp models.ChatResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))

	assert.True(t, resp.Success)
	assert.Equal(t, "get_user_info", resp.Intent)
	assert.Contains(t, resp.Response, "Jane Doe")
	assert.NotEmpty(t, resp.RequestID)
}

func TestPostChatEmptyMessage(t *testing.T) {
	router := setupRouter(testAppState(&testutils.FakeLMS{}))

	recorder := postJSON(t, router, "/api/v1/chat", models.ChatRequest{Message: "   "})
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestGetIntents(t *testing.T) {
	router := setupRouter(testAppState(&testutils.FakeLMS{}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/chat/intents", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	require.Equal(t, http.StatusOK, recorder.Code)

	var intents []string
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &intents))
	assert.Contains(t, intents, "enroll_user_in_course")
}

func TestGetUserEnrollments(t *testing.T) {
	var sawPage, sawPageSize int
	lms := &testutils.FakeLMS{
		FindUserByIdentifierFn: func(_ context.Context, identifier string) (*models.UserDetails, error) {
			return &models.UserDetails{UserID: 7, Email: identifier}, nil
		},
		GetUserCourseEnrollmentsFn: func(_ context.Context, _, page, pageSize int) ([]models.FormattedEnrollment, bool, error) {
			sawPage, sawPageSize = page, pageSize
			return []models.FormattedEnrollment{
				{UserID: 7, ResourceID: 12, ResourceName: "Python Basics"},
			}, true, nil
		},
	}
	router := setupRouter(testAppState(lms))

	req := httptest.NewRequest(
		http.MethodGet,
		"/api/v1/users/jane@example.com/enrollments?page=2&page_size=25",
		nil,
	)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, 2, sawPage)
	assert.Equal(t, 25, sawPageSize)
	assert.Contains(t, recorder.Body.String(), "Python Basics")
	assert.Contains(t, recorder.Body.String(), `"hasMore":true`)
}

func TestGetUserEnrollmentsUnknownUser(t *testing.T) {
	router := setupRouter(testAppState(&testutils.FakeLMS{}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/ghost@example.com/enrollments", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestGetUserEnrollmentsBadPage(t *testing.T) {
	router := setupRouter(testAppState(&testutils.FakeLMS{}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/7/enrollments?page=abc", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestPostCSVEnroll(t *testing.T) {
	lms := &testutils.FakeLMS{
		FindUserByIdentifierFn: func(_ context.Context, identifier string) (*models.UserDetails, error) {
			return &models.UserDetails{UserID: 7, Email: identifier}, nil
		},
		FindCourseByIdentifierFn: func(_ context.Context, identifier string) (*models.CourseDetails, error) {
			return &models.CourseDetails{CourseID: 12, Name: identifier}, nil
		},
	}
	router := setupRouter(testAppState(lms))

	recorder := postJSON(t, router, "/api/v1/csv/enroll", models.CSVRequest{
		Operation: models.CSVOperationCourseEnrollment,
		CSVData: models.CSVData{
			Headers:   []string{"email", "course"},
			ValidRows: [][]string{{"jane@example.com", "Python Basics"}},
		},
	})
	require.Equal(t, http.StatusOK, recorder.Code)

	var resp models.ChatResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
	assert.True(t, resp.Success)

	csvResult, ok := resp.Data["csvResult"].(map[string]interface{})
	require.True(t, ok)
	summary, ok := csvResult["summary"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(1), summary["total"])
	assert.Equal(t, float64(1), summary["succeeded"])
}

func TestPostCSVEnrollRejectsBadShape(t *testing.T) {
	router := setupRouter(testAppState(&testutils.FakeLMS{}))

	recorder := postJSON(t, router, "/api/v1/csv/enroll", models.CSVRequest{
		Operation: models.CSVOperationCourseEnrollment,
		CSVData: models.CSVData{
			Headers:   []string{"email"},
			ValidRows: [][]string{{"jane@example.com"}},
		},
	})
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestGetCSVTemplate(t *testing.T) {
	router := setupRouter(testAppState(&testutils.FakeLMS{}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/csv/template/course_enrollment", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "text/csv", recorder.Header().Get("Content-Type"))
	assert.Contains(t, recorder.Body.String(), "email,course")
}

func TestGetCSVOperations(t *testing.T) {
	router := setupRouter(testAppState(&testutils.FakeLMS{}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/csv/operations", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "course_enrollment")
	assert.Contains(t, recorder.Body.String(), "unenrollment")
}

func TestAuthRequired(t *testing.T) {
	appState := testAppState(&testutils.FakeLMS{})
	appState.Config.Auth.Required = true
	appState.Config.Auth.Secret = "test-secret"
	router := setupRouter(appState)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/chat/intents", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)

	token := auth.GenerateJWT(appState.Config)
	req = httptest.NewRequest(http.MethodGet, "/api/v1/chat/intents", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	assert.Equal(t, http.StatusOK, recorder.Code)
}
