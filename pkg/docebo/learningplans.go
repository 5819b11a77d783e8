package docebo

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/docebot/docebot/pkg/models"
)

// The learning plan API surface is undocumented and differs across Docebo
// environments. Rather than retrying one endpoint, the client probes the
// known URL shapes sequentially and takes the first that answers with a
// non-empty result.
var learningPlanListEndpoints = []string{
	"/learningplan/v1/learningplans",
	"/learn/v1/lp",
	"/learn/v1/learningplans",
}

// SearchLearningPlans performs a keyword search across the known learning
// plan endpoint variants.
func (c *Client) SearchLearningPlans(
	ctx context.Context,
	query string,
	pageSize int,
) ([]models.LearningPlanDetails, int, error) {
	params := url.Values{}
	params.Set("search_text", query)
	params.Set("page_size", strconv.Itoa(pageSize))

	var lastErr error
	for _, endpoint := range learningPlanListEndpoints {
		raw, err := c.Request(ctx, http.MethodGet, endpoint, nil, params)
		if err != nil {
			lastErr = err
			continue
		}

		items, total, _, err := decodeList(raw)
		if err != nil {
			lastErr = err
			continue
		}
		if len(items) == 0 {
			continue
		}

		plans := make([]models.LearningPlanDetails, len(items))
		for i, item := range items {
			plans[i] = NormalizeLearningPlan(item)
		}
		return plans, total, nil
	}

	if lastErr != nil {
		return nil, 0, lastErr
	}
	return nil, 0, nil
}

// GetLearningPlanByID fetches a single learning plan by numeric ID, probing
// the endpoint variants.
func (c *Client) GetLearningPlanByID(
	ctx context.Context,
	planID int,
) (*models.LearningPlanDetails, error) {
	var lastErr error
	for _, endpoint := range learningPlanListEndpoints {
		raw, err := c.Request(ctx, http.MethodGet, endpoint+"/"+itoa(planID), nil, nil)
		if err != nil {
			lastErr = err
			continue
		}

		payload, err := decodeObject(raw, "learning_plan_data", "path_data")
		if err != nil {
			lastErr = err
			continue
		}

		plan := NormalizeLearningPlan(payload)
		if plan.PlanID == 0 {
			plan.PlanID = planID
		}
		return &plan, nil
	}

	if lastErr != nil {
		return nil, lastErr
	}
	return nil, models.NewNotFoundError("learning plan")
}

// FindLearningPlanByIdentifier resolves a numeric ID, code, or name fragment
// to a single learning plan, with the same precedence policy as courses.
func (c *Client) FindLearningPlanByIdentifier(
	ctx context.Context,
	identifier string,
) (*models.LearningPlanDetails, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return nil, models.NewBadRequestError("learning plan identifier is empty")
	}

	if id, err := strconv.Atoi(identifier); err == nil {
		if plan, err := c.GetLearningPlanByID(ctx, id); err == nil {
			return plan, nil
		}
	}

	plans, _, err := c.SearchLearningPlans(ctx, identifier, resolvePageSize)
	if err != nil {
		return nil, err
	}
	if len(plans) == 0 {
		return nil, models.NewNotFoundError("learning plan")
	}

	lowered := strings.ToLower(identifier)

	for i := range plans {
		if strconv.Itoa(plans[i].PlanID) == identifier {
			return &plans[i], nil
		}
	}
	for i := range plans {
		if plans[i].Code != "" && strings.EqualFold(plans[i].Code, identifier) {
			return &plans[i], nil
		}
	}
	for i := range plans {
		if strings.ToLower(plans[i].Name) == lowered {
			return &plans[i], nil
		}
	}
	for i := range plans {
		if strings.Contains(strings.ToLower(plans[i].Name), lowered) {
			return &plans[i], nil
		}
	}

	return &plans[0], nil
}
