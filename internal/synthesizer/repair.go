package synthesizer

import (
	"encoding/json"
	"regexp"
	"strings"
)

// Cleanup and repair transforms for generative responses. Order matters:
// cleanup isolates the JSON payload, strict parse runs first, and the
// repair transforms only apply when strict parsing fails.

var (
	codeFencePattern     = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)\\s*```")
	preamblePattern      = regexp.MustCompile(`(?i)^\s*(here\s+is[^{]*|based\s+on[^{]*|the\s+json[^{]*|sure[,!.]?[^{]*)`)
	bareKeyPattern       = regexp.MustCompile(`([{,]\s*)([A-Za-z_][A-Za-z0-9_]*)(\s*:)`)
	trailingCommaPattern = regexp.MustCompile(`,(\s*[}\]])`)
	singleQuotePattern   = regexp.MustCompile(`'([^'\\]*)'`)
)

// extractJSON isolates the JSON object from a model response: code fences
// are unwrapped, prose preambles dropped, and the payload cut between the
// first '{' and the last '}'.
func extractJSON(raw string) string {
	if m := codeFencePattern.FindStringSubmatch(raw); m != nil {
		raw = m[1]
	}
	raw = preamblePattern.ReplaceAllString(raw, "")

	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end <= start {
		return ""
	}
	return raw[start : end+1]
}

// parseLoose attempts a strict parse and then a repaired parse. The repair
// transforms are best effort; when they fail too the caller falls back to
// the template strategy.
func parseLoose(payload string, out interface{}) error {
	if err := json.Unmarshal([]byte(payload), out); err == nil {
		return nil
	}
	repaired := repairJSON(payload)
	return json.Unmarshal([]byte(repaired), out)
}

// repairJSON applies the ordered repair transforms: quote bare keys, drop
// trailing commas, collapse raw newlines inside the payload, and normalize
// single quotes to double quotes.
func repairJSON(payload string) string {
	payload = bareKeyPattern.ReplaceAllString(payload, `$1"$2"$3`)
	payload = trailingCommaPattern.ReplaceAllString(payload, "$1")
	payload = strings.ReplaceAll(payload, "\r\n", "\n")
	payload = collapseNewlinesInStrings(payload)
	payload = singleQuotePattern.ReplaceAllString(payload, `"$1"`)
	return payload
}

// collapseNewlinesInStrings replaces literal newlines that occur inside
// double-quoted strings with spaces, which models emit when they wrap long
// descriptions.
func collapseNewlinesInStrings(payload string) string {
	var b strings.Builder
	b.Grow(len(payload))
	inString := false
	escaped := false
	for _, r := range payload {
		switch {
		case escaped:
			escaped = false
		case r == '\\':
			escaped = true
		case r == '"':
			inString = !inString
		case r == '\n' && inString:
			b.WriteRune(' ')
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
