package parse

import (
	"net/url"
	"regexp"
	"strings"
)

var (
	dataFlagRe = regexp.MustCompile(`(?:--data-raw|--data-binary|--data|-d)\s+`)
	urlRe      = regexp.MustCompile(`https?://[^\s'"\\]+`)
)

// fromCurl extracts the payload carried by a data flag plus any query-string
// values from the URL. The second return is the last path segment, used to
// recover the URL field.
func fromCurl(source string) (map[string]any, string) {
	// Line continuations only obscure the flag scan.
	source = strings.ReplaceAll(source, "\\\n", " ")
	source = strings.ReplaceAll(source, "\\\r\n", " ")

	raw := map[string]any{}
	if payload := curlPayload(source); payload != "" {
		if m := decodeObject(payload); m != nil {
			raw = m
		}
	}

	var pathSegment string
	if loc := urlRe.FindString(source); loc != "" {
		if u, err := url.Parse(loc); err == nil {
			pathSegment = lastPathSegment(u.Path)
			for key, vals := range u.Query() {
				if _, taken := raw[key]; taken || len(vals) == 0 {
					continue
				}
				if len(vals) == 1 {
					raw[key] = vals[0]
					continue
				}
				list := make([]any, 0, len(vals))
				for _, v := range vals {
					list = append(list, v)
				}
				raw[key] = list
			}
		}
	}
	return raw, pathSegment
}

// curlPayload isolates the quoted argument of the payload flag and strips
// one layer of surrounding quotes plus common escape sequences.
func curlPayload(source string) string {
	loc := dataFlagRe.FindStringIndex(source)
	if loc == nil {
		return ""
	}
	rest := source[loc[1]:]
	if rest == "" {
		return ""
	}

	quote := rest[0]
	if quote != '\'' && quote != '"' {
		// Unquoted payload: runs to the next whitespace.
		if i := strings.IndexAny(rest, " \t\n"); i >= 0 {
			return rest[:i]
		}
		return rest
	}

	body, ok := readQuoted(rest[1:], quote)
	if !ok {
		return ""
	}
	if quote == '"' {
		body = unescape(body)
	}
	return body
}

// readQuoted scans to the matching close quote. Double quotes honor
// backslash escapes; single quotes end at the next single quote, shell
// style.
func readQuoted(s string, quote byte) (string, bool) {
	for i := 0; i < len(s); i++ {
		switch {
		case quote == '"' && s[i] == '\\':
			i++
		case s[i] == quote:
			return s[:i], true
		}
	}
	return "", false
}

var unescaper = strings.NewReplacer(`\"`, `"`, `\'`, `'`, `\n`, "\n", `\t`, "\t", `\\`, `\`)

func unescape(s string) string {
	return unescaper.Replace(s)
}
