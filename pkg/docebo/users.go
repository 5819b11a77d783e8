package docebo

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/docebot/docebot/pkg/models"
)

const (
	usersEndpoint = "/manage/v1/user"
	// resolvePageSize is the search window used when resolving a free-text
	// identifier to a single user.
	resolvePageSize = 100
)

// SearchUsers performs a keyword search and returns normalized users plus the
// reported total count.
func (c *Client) SearchUsers(
	ctx context.Context,
	query string,
	pageSize int,
) ([]models.UserDetails, int, error) {
	params := url.Values{}
	params.Set("search_text", query)
	params.Set("page_size", strconv.Itoa(pageSize))

	raw, err := c.Request(ctx, http.MethodGet, usersEndpoint, nil, params)
	if err != nil {
		return nil, 0, err
	}

	items, total, _, err := decodeList(raw)
	if err != nil {
		return nil, 0, err
	}

	users := make([]models.UserDetails, len(items))
	for i, item := range items {
		users[i] = NormalizeUser(item)
	}

	return users, total, nil
}

// GetUserByID fetches a single user by numeric ID.
func (c *Client) GetUserByID(ctx context.Context, userID int) (*models.UserDetails, error) {
	raw, err := c.Request(ctx, http.MethodGet, usersEndpoint+"/"+itoa(userID), nil, nil)
	if err != nil {
		var apiErr *models.APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
			return nil, models.NewNotFoundError("user")
		}
		return nil, err
	}

	payload, err := decodeObject(raw, "user_data")
	if err != nil {
		return nil, err
	}

	user := NormalizeUser(payload)
	if user.UserID == 0 {
		user.UserID = userID
	}

	return &user, nil
}

// FindUserByIdentifier resolves an email address, numeric ID, or name
// fragment to a single user. Numeric identifiers attempt a direct lookup
// before falling back to search; search results are picked by precedence:
// exact email, exact username, exact ID, case-insensitive exact full name,
// case-insensitive substring, first result as last resort.
func (c *Client) FindUserByIdentifier(
	ctx context.Context,
	identifier string,
) (*models.UserDetails, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return nil, models.NewBadRequestError("user identifier is empty")
	}

	if id, err := strconv.Atoi(identifier); err == nil {
		if user, err := c.GetUserByID(ctx, id); err == nil {
			return user, nil
		}
		// Direct lookup failed; the number may be a username. Fall through to
		// search.
	}

	users, _, err := c.SearchUsers(ctx, identifier, resolvePageSize)
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, models.NewNotFoundError("user")
	}

	lowered := strings.ToLower(identifier)

	for i := range users {
		if strings.EqualFold(users[i].Email, identifier) {
			return &users[i], nil
		}
	}
	for i := range users {
		if strings.EqualFold(users[i].Username, identifier) {
			return &users[i], nil
		}
	}
	for i := range users {
		if strconv.Itoa(users[i].UserID) == identifier {
			return &users[i], nil
		}
	}
	for i := range users {
		if strings.ToLower(users[i].FullName) == lowered {
			return &users[i], nil
		}
	}
	for i := range users {
		if strings.Contains(strings.ToLower(users[i].FullName), lowered) ||
			strings.Contains(strings.ToLower(users[i].Username), lowered) {
			return &users[i], nil
		}
	}

	return &users[0], nil
}
