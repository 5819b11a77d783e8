package intent

import (
	"regexp"
	"strings"
)

// EmailPattern matches an RFC-ish email substring anywhere in a message.
var EmailPattern = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)

// ExtractEmail returns the first email-looking substring, or "" when the
// message contains none.
func ExtractEmail(message string) string {
	return EmailPattern.FindString(message)
}

var numericIDPattern = regexp.MustCompile(`\b(\d{1,10})\b`)

// extractNumericID returns the first standalone number in the message.
func extractNumericID(message string) string {
	return numericIDPattern.FindString(message)
}

var quotedPattern = regexp.MustCompile(`"([^"]+)"|'([^']+)'|\x60([^\x60]+)\x60|\[([^\]]+)\]`)

// extractQuoted returns the first quoted or bracketed substring.
func extractQuoted(message string) string {
	match := quotedPattern.FindStringSubmatch(message)
	if match == nil {
		return ""
	}
	for _, group := range match[1:] {
		if group != "" {
			return strings.TrimSpace(group)
		}
	}
	return ""
}

// trailingStopWords are stripped from the end of a keyword capture. They
// belong to the sentence, not the entity.
var trailingStopWords = []string{"please", "now", "today", "asap", "thanks", "thank you"}

// afterKeyword returns the message text following the first of the given
// keywords (matched case-insensitively), cleaned of surrounding punctuation
// and trailing pleasantries. Keywords are tried in order, so put the most
// specific first.
func afterKeyword(message string, keywords ...string) string {
	lowered := strings.ToLower(message)
	for _, keyword := range keywords {
		idx := strings.Index(lowered, strings.ToLower(keyword))
		if idx < 0 {
			continue
		}
		rest := message[idx+len(keyword):]
		if cleaned := cleanCapture(rest); cleaned != "" {
			return cleaned
		}
	}
	return ""
}

// betweenKeywords returns the message text between the first start keyword
// and the first stop keyword that follows it.
func betweenKeywords(message string, start string, stops ...string) string {
	lowered := strings.ToLower(message)
	startIdx := strings.Index(lowered, strings.ToLower(start))
	if startIdx < 0 {
		return ""
	}
	rest := message[startIdx+len(start):]
	restLowered := strings.ToLower(rest)

	end := len(rest)
	for _, stop := range stops {
		if idx := strings.Index(restLowered, strings.ToLower(stop)); idx >= 0 && idx < end {
			end = idx
		}
	}

	return cleanCapture(rest[:end])
}

func cleanCapture(text string) string {
	text = strings.Trim(text, " \t.,:;!?\"'")
	lowered := strings.ToLower(text)
	for _, stop := range trailingStopWords {
		if strings.HasSuffix(lowered, stop) {
			text = strings.TrimSpace(text[:len(text)-len(stop)])
			text = strings.Trim(text, " .,:;!?")
			lowered = strings.ToLower(text)
		}
	}
	return text
}

// resourceEntity picks the best available capture for a resource name: a
// quoted substring wins, then the keyword capture, then a bare numeric ID.
func resourceEntity(message string, keywords ...string) string {
	if quoted := extractQuoted(message); quoted != "" {
		return quoted
	}
	if captured := afterKeyword(message, keywords...); captured != "" {
		return captured
	}
	return extractNumericID(message)
}

// userEntity picks the best available capture for a user: an email wins,
// then the text between the first matched verb and the connecting keyword.
// Starts are tried in order so rules pass every verb their patterns accept.
func userEntity(message string, starts []string, stops ...string) string {
	if email := ExtractEmail(message); email != "" {
		return email
	}
	for _, start := range starts {
		if captured := betweenKeywords(message, start, stops...); captured != "" {
			return captured
		}
	}
	return ""
}
