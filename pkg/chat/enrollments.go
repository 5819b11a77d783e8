package chat

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/docebot/docebot/pkg/models"

	"github.com/dustin/go-humanize"
	"github.com/failsafe-go/failsafe-go"
	"github.com/failsafe-go/failsafe-go/timeout"
)

const (
	// remotePageSize is the page size requested from the LMS enrollment
	// endpoints.
	remotePageSize = 50
	// maxRemotePages caps how many remote pages one chat request may fetch.
	maxRemotePages = 5

	defaultFetchTimeout = 15 * time.Second
)

type fetchedEnrollments struct {
	merged     []models.FormattedEnrollment
	apiHasMore bool
}

// UserEnrollments lists a user's course and learning plan enrollments, merged
// and sorted by enrollment date descending, sliced to the requested display
// window. The fetch races a fixed timeout; on timeout the handler returns a
// soft-failure response instead of an error.
func UserEnrollments(
	ctx context.Context,
	appState *models.AppState,
	entities map[string]interface{},
) (*models.ChatResponse, error) {
	userIdent := entityString(entities, "email", "user")
	if userIdent == "" {
		return missingInfo(
			"the user whose enrollments to list (email or ID)",
			"Show enrollments for jane@example.com",
		), nil
	}

	user, err := appState.LMSClient.FindUserByIdentifier(ctx, userIdent)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return notFound("user", userIdent, userNotFoundHint), nil
		}
		return nil, err
	}

	limit := appState.Config.Chat.DisplayLimit
	if limit <= 0 {
		limit = 10
	}
	page := 1
	if p, err := strconv.Atoi(entityString(entities, "page")); err == nil && p > 0 {
		page = p
	}
	offset := (page - 1) * limit

	fetchTimeout := defaultFetchTimeout
	if appState.Config.Chat.FetchTimeoutSeconds > 0 {
		fetchTimeout = time.Duration(appState.Config.Chat.FetchTimeoutSeconds) * time.Second
	}

	fetched, err := fetchWithDeadline(ctx, appState.LMSClient, user.UserID, offset+limit, fetchTimeout)
	if err != nil {
		if errors.Is(err, models.ErrDeadlineExceeded) {
			log.Warnf("enrollment fetch for user %d exceeded %s", user.UserID, fetchTimeout)
			resp := timedOut(fmt.Sprintf("enrollments for %s", user.DisplayName()))
			resp.Data["user"] = user
			return resp, nil
		}
		return nil, err
	}

	merged := fetched.merged
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].EnrolledAt().After(merged[j].EnrolledAt())
	})

	total := len(merged)
	if offset >= total {
		resp := newResponse(fmt.Sprintf(
			"**%s** has %s enrollment(s), so there is no page %d.",
			user.DisplayName(), humanize.Comma(int64(total)), page,
		), true)
		resp.Data["user"] = user
		resp.TotalCount = total
		return resp, nil
	}

	end := offset + limit
	if end > total {
		end = total
	}
	window := merged[offset:end]
	hasMore := total > end || fetched.apiHasMore

	var b strings.Builder
	fmt.Fprintf(&b, "**%s** has %s enrollment(s)", user.DisplayName(), humanize.Comma(int64(total)))
	if fetched.apiHasMore {
		b.WriteString(" (more available in the LMS)")
	}
	b.WriteString(":\n")
	for i := range window {
		e := &window[i]
		kind := "course"
		if e.ResourceType == models.ResourceTypeLearningPlan {
			kind = "learning plan"
		}
		fmt.Fprintf(&b, "\n%d. **%s** (%s)", offset+i+1, e.ResourceName, kind)
		if e.Status != "" {
			fmt.Fprintf(&b, " - %s", e.Status)
		}
		if e.Progress > 0 {
			fmt.Fprintf(&b, ", %.0f%% complete", e.Progress)
		}
	}
	if hasMore {
		fmt.Fprintf(&b, "\n\n_Say \"show enrollments for %s page %d\" for more._", userIdent, page+1)
	}

	resp := newResponse(b.String(), true)
	resp.Data["user"] = user
	resp.Data["enrollments"] = window
	resp.TotalCount = total
	resp.HasMore = hasMore
	return resp, nil
}

// fetchWithDeadline races the enrollment fetch against the timeout policy,
// translating the policy's error into models.ErrDeadlineExceeded.
func fetchWithDeadline(
	ctx context.Context,
	client models.LMSClient,
	userID, needed int,
	fetchTimeout time.Duration,
) (fetchedEnrollments, error) {
	deadline := timeout.With[fetchedEnrollments](fetchTimeout)
	fetched, err := failsafe.NewExecutor[fetchedEnrollments](deadline).
		WithContext(ctx).
		GetWithExecution(func(exec failsafe.Execution[fetchedEnrollments]) (fetchedEnrollments, error) {
			return fetchUserEnrollments(exec.Context(), client, userID, needed)
		})
	if err != nil && errors.Is(err, timeout.ErrExceeded) {
		return fetchedEnrollments{}, models.ErrDeadlineExceeded
	}
	return fetched, err
}

// fetchUserEnrollments pulls enough remote pages of course enrollments to
// cover the display window (bounded by maxRemotePages for cost control) and
// merges in the learning plan enrollments.
func fetchUserEnrollments(
	ctx context.Context,
	client models.LMSClient,
	userID int,
	needed int,
) (fetchedEnrollments, error) {
	pagesNeeded := (needed + remotePageSize - 1) / remotePageSize
	if pagesNeeded < 1 {
		pagesNeeded = 1
	}
	if pagesNeeded > maxRemotePages {
		pagesNeeded = maxRemotePages
	}

	var merged []models.FormattedEnrollment
	apiHasMore := false

	for page := 1; page <= pagesNeeded; page++ {
		enrollments, hasMore, err := client.GetUserCourseEnrollments(ctx, userID, page, remotePageSize)
		if err != nil {
			return fetchedEnrollments{}, err
		}
		merged = append(merged, enrollments...)
		apiHasMore = hasMore
		if !hasMore {
			break
		}
	}

	plans, err := client.GetUserLearningPlanEnrollments(ctx, userID)
	if err != nil {
		// Learning plan listings are flaky across environments; a partial
		// answer beats none.
		log.Warnf("learning plan enrollments unavailable for user %d: %v", userID, err)
	} else {
		merged = append(merged, plans...)
	}

	return fetchedEnrollments{merged: merged, apiHasMore: apiHasMore}, nil
}
