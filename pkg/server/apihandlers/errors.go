package apihandlers

// APIError represents an error response body.
type APIError struct {
	Message string `json:"message"`
}
