package models

import "time"

// ChatRequest is the inbound payload for the chat route.
type ChatRequest struct {
	Message string `json:"message"`
}

// ChatResponse is the envelope every handler returns: a Markdown-ish response
// string for display, a success flag, and a data payload mirroring the
// underlying API results. Failure paths still produce a well-formed response
// with remediation text.
type ChatResponse struct {
	Response   string                 `json:"response"`
	Success    bool                   `json:"success"`
	Intent     string                 `json:"intent,omitempty"`
	Confidence float64                `json:"confidence,omitempty"`
	Data       map[string]interface{} `json:"data,omitempty"`
	Timestamp  time.Time              `json:"timestamp"`
	RequestID  string                 `json:"request_id,omitempty"`
	TotalCount int                    `json:"totalCount,omitempty"`
	HasMore    bool                   `json:"hasMore,omitempty"`
}
