package models

// IntentResult is the classification of a free-text chat message: the intent
// name, the entities extracted from the message, and the static confidence of
// the winning pattern. Produced fresh per message; never persisted.
type IntentResult struct {
	Intent     string                 `json:"intent"`
	Entities   map[string]interface{} `json:"entities"`
	Confidence float64                `json:"confidence"`
}

const IntentUnknown = "unknown"

// IntentAnalyzer classifies a free-text message into an IntentResult.
type IntentAnalyzer interface {
	Analyze(message string) IntentResult
	// Intents lists the intent names the analyzer can produce, in rule
	// priority order.
	Intents() []string
}
