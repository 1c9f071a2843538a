// Package parse recovers form values from code sample text. The extractors
// are heuristic by design: sample text is not guaranteed to be well-formed,
// so parsing degrades to partial or empty results and never errors. An empty
// map means "nothing recognized".
package parse

import (
	"regexp"
	"strings"

	"github.com/goccy/go-json"
)

// Values extracts a value map from a code sample tagged with its language.
// The result is filtered to keys matching a known field name (exact, or the
// first dot segment of a qualified name) or the URL field; anything else
// cannot be mapped onto a descriptor and is discarded.
func Values(lang, source string, fieldNames []string, urlField string) map[string]any {
	var raw map[string]any
	var urlValue string

	switch normalizeLang(lang) {
	case "curl":
		raw, urlValue = fromCurl(source)
	case "call":
		raw, urlValue = fromCall(source)
	default:
		raw = looseJSON(source)
	}
	if raw == nil {
		raw = map[string]any{}
	}
	if urlField != "" && urlValue != "" {
		if _, ok := raw[urlField]; !ok {
			raw[urlField] = urlValue
		}
	}
	return filterKeys(raw, fieldNames, urlField)
}

// normalizeLang folds language tags into an extractor family.
func normalizeLang(lang string) string {
	switch strings.ToLower(strings.TrimSpace(lang)) {
	case "curl", "shell", "bash", "sh":
		return "curl"
	case "python", "py", "javascript", "js", "typescript", "ts", "node", "go":
		return "call"
	default:
		return ""
	}
}

func filterKeys(raw map[string]any, fieldNames []string, urlField string) map[string]any {
	allowed := make(map[string]bool, len(fieldNames)+1)
	for _, name := range fieldNames {
		if i := strings.IndexByte(name, '.'); i >= 0 {
			name = name[:i]
		}
		allowed[name] = true
	}
	if urlField != "" {
		allowed[urlField] = true
	}

	out := make(map[string]any, len(raw))
	for k, v := range raw {
		if allowed[k] {
			out[k] = v
		}
	}
	return out
}

var trailingCommaRe = regexp.MustCompile(`,\s*([}\]])`)

// decodeObject attempts a layered JSON parse: strict first, then the
// outermost {...} substring, then a last-resort pass that strips trailing
// commas. The repair passes are best effort, not a contract.
func decodeObject(text string) map[string]any {
	text = strings.TrimSpace(text)
	if m := strictObject(text); m != nil {
		return m
	}
	start := strings.IndexByte(text, '{')
	end := strings.LastIndexByte(text, '}')
	if start < 0 || end <= start {
		return nil
	}
	inner := text[start : end+1]
	if m := strictObject(inner); m != nil {
		return m
	}
	return strictObject(trailingCommaRe.ReplaceAllString(inner, "$1"))
}

func strictObject(text string) map[string]any {
	var m map[string]any
	if err := json.Unmarshal([]byte(text), &m); err != nil {
		return nil
	}
	return m
}

// looseJSON is the fallback extractor for unrecognized language tags.
func looseJSON(source string) map[string]any {
	return decodeObject(source)
}

// lastPathSegment returns the final non-query segment of a URL path.
func lastPathSegment(path string) string {
	path = strings.TrimRight(path, "/")
	if i := strings.LastIndexByte(path, '/'); i >= 0 {
		path = path[i+1:]
	}
	return path
}
