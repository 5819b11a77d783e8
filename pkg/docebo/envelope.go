package docebo

import (
	"encoding/json"
	"fmt"
)

// The Docebo API wraps payloads in a `data` envelope whose interior shape is
// not consistent across endpoints or environments: list payloads arrive under
// `items` or `rows`, totals under `total_count`, `count` or `total`, and the
// more-data flag under `has_more_data` or `hasMore`. These decoders absorb the
// variance so the rest of the client sees one shape.

// decodeList extracts the item maps, total count, and has-more flag from a raw
// list response.
func decodeList(raw json.RawMessage) ([]map[string]interface{}, int, bool, error) {
	var envelope map[string]interface{}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, 0, false, fmt.Errorf("failed to decode list response: %w", err)
	}

	payload := envelope
	if data, ok := envelope["data"].(map[string]interface{}); ok {
		payload = data
	}

	var rawItems []interface{}
	for _, key := range []string{"items", "rows"} {
		if v, ok := payload[key].([]interface{}); ok {
			rawItems = v
			break
		}
	}

	items := make([]map[string]interface{}, 0, len(rawItems))
	for _, item := range rawItems {
		if m, ok := item.(map[string]interface{}); ok {
			items = append(items, m)
		}
	}

	total := firstInt(payload, "total_count", "count", "total")
	if total == 0 {
		total = len(items)
	}

	hasMore := firstBool(payload, "has_more_data", "hasMore", "has_more")

	return items, total, hasMore, nil
}

// decodeObject extracts a single object payload. Some endpoints nest the
// object one level deeper (e.g. `data.user_data`); innerKeys are tried in
// order before falling back to the data envelope itself.
func decodeObject(raw json.RawMessage, innerKeys ...string) (map[string]interface{}, error) {
	var envelope map[string]interface{}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("failed to decode object response: %w", err)
	}

	payload := envelope
	if data, ok := envelope["data"].(map[string]interface{}); ok {
		payload = data
	}

	for _, key := range innerKeys {
		if inner, ok := payload[key].(map[string]interface{}); ok {
			return inner, nil
		}
	}

	return payload, nil
}
