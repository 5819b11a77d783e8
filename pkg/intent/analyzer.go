package intent

import (
	"regexp"
	"strings"

	"github.com/docebot/docebot/internal"
	"github.com/docebot/docebot/pkg/models"
)

var log = internal.GetLogger()

var _ models.IntentAnalyzer = &Analyzer{}

// rule is one intent definition: a set of trigger patterns, an optional set
// of exclusion patterns, a hand-tuned static confidence, and an entity
// extraction function run against the raw (non-lowercased) message.
type rule struct {
	intent     string
	confidence float64
	// emailBoost, when non-zero, replaces confidence if the message contains
	// an email address. An explicit email makes an actionable intent far more
	// likely than a search.
	emailBoost float64
	patterns   []*regexp.Regexp
	excludes   []*regexp.Regexp
	extract    func(message string) map[string]interface{}
}

func (r *rule) matches(lowered string) bool {
	for _, exclude := range r.excludes {
		if exclude.MatchString(lowered) {
			return false
		}
	}
	for _, pattern := range r.patterns {
		if pattern.MatchString(lowered) {
			return true
		}
	}
	return false
}

// Analyzer classifies free-text messages against a fixed, priority-ordered
// rule table. It is stateless and safe for concurrent use.
type Analyzer struct {
	rules []rule
}

func NewAnalyzer() *Analyzer {
	return &Analyzer{rules: defaultRules()}
}

// Analyze returns the single best-matching intent for the message. Matching
// runs over the lower-cased message; extraction runs over the raw message so
// entity casing is preserved. The highest static confidence wins; ties keep
// the first-declared rule (strict > comparison). No match yields the unknown
// intent with confidence 0.
func (a *Analyzer) Analyze(message string) models.IntentResult {
	lowered := strings.ToLower(strings.TrimSpace(message))

	best := models.IntentResult{
		Intent:     models.IntentUnknown,
		Entities:   map[string]interface{}{},
		Confidence: 0,
	}
	if lowered == "" {
		return best
	}

	hasEmail := ExtractEmail(message) != ""

	for i := range a.rules {
		r := &a.rules[i]
		if !r.matches(lowered) {
			continue
		}

		confidence := r.confidence
		if hasEmail && r.emailBoost > confidence {
			confidence = r.emailBoost
		}

		if confidence > best.Confidence {
			entities := map[string]interface{}{}
			if r.extract != nil {
				if extracted := r.extract(message); extracted != nil {
					entities = extracted
				}
			}
			best = models.IntentResult{
				Intent:     r.intent,
				Entities:   entities,
				Confidence: confidence,
			}
		}
	}

	log.Debugf("analyzed intent %q with confidence %.2f", best.Intent, best.Confidence)

	return best
}

// Intents lists the intent names in rule declaration order.
func (a *Analyzer) Intents() []string {
	names := make([]string, len(a.rules))
	for i := range a.rules {
		names[i] = a.rules[i].intent
	}
	return names
}

// entities builds an entity map from key/value pairs, skipping empty values.
func entities(pairs ...string) map[string]interface{} {
	result := map[string]interface{}{}
	for i := 0; i+1 < len(pairs); i += 2 {
		if pairs[i+1] != "" {
			result[pairs[i]] = pairs[i+1]
		}
	}
	return result
}
