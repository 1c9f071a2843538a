package parse

import (
	"regexp"
	"strconv"
	"strings"
)

// callVerbRe locates an argument list following a creation-verb method name.
// This is intentionally shallow: it is not a parser for any real grammar.
var callVerbRe = regexp.MustCompile(`(?i)\b(?:create|post|put|patch|delete|get|add|submit|send|new|insert|update|request|fetch)\w*\s*\(`)

// maxNest limits keyed-argument extraction to one nested object level.
const maxNest = 1

// fromCall extracts keyword/keyed arguments from a call-style sample
// (Python, JavaScript, Go and the like). The second return is the value of
// the first positional string argument, reduced to its last path segment
// when it looks like a URL or path.
func fromCall(source string) (map[string]any, string) {
	loc := callVerbRe.FindStringIndex(source)
	if loc == nil {
		return looseJSON(source), ""
	}
	args, ok := bracketContent(source, loc[1]-1)
	if !ok {
		return looseJSON(source), ""
	}

	sc := &scanner{s: args}
	pairs, positional := sc.scanPairs(0)
	hoistPayload(pairs)

	var urlValue string
	if len(positional) > 0 {
		urlValue = positionalURLValue(positional[0])
	}
	return pairs, urlValue
}

// hoistPayload lifts a nested payload object to the top level so its keys
// can match field names. fetch-style samples bury the body under one of
// these argument names.
func hoistPayload(pairs map[string]any) {
	for _, key := range []string{"body", "json", "payload", "data"} {
		nested, ok := pairs[key].(map[string]any)
		if !ok {
			continue
		}
		for k, v := range nested {
			if _, taken := pairs[k]; !taken {
				pairs[k] = v
			}
		}
	}
}

func positionalURLValue(s string) string {
	if !strings.Contains(s, "/") {
		return s
	}
	if i := strings.IndexByte(s, '?'); i >= 0 {
		s = s[:i]
	}
	if i := strings.Index(s, "://"); i >= 0 {
		s = s[i+3:]
	}
	return lastPathSegment(s)
}

// bracketContent returns the text between the bracket at openIdx and its
// match, honoring string literals.
func bracketContent(s string, openIdx int) (string, bool) {
	open := s[openIdx]
	var close byte
	switch open {
	case '(':
		close = ')'
	case '{':
		close = '}'
	case '[':
		close = ']'
	default:
		return "", false
	}
	depth := 0
	for i := openIdx; i < len(s); i++ {
		switch s[i] {
		case '"', '\'', '`':
			i = skipString(s, i)
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return s[openIdx+1 : i], true
			}
		}
	}
	return "", false
}

// skipString returns the index of the closing quote starting at an opening
// quote, honoring backslash escapes.
func skipString(s string, i int) int {
	quote := s[i]
	for i++; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case quote:
			return i
		}
	}
	return len(s) - 1
}

type scanner struct {
	s string
	i int
}

// scanPairs walks an argument list left to right, collecting key/value pairs
// written as `key = value`, `key: value`, or `"key": value`, plus positional
// string arguments. Everything unrecognized is skipped.
func (sc *scanner) scanPairs(depth int) (map[string]any, []string) {
	out := map[string]any{}
	var positional []string

	for sc.i < len(sc.s) {
		sc.skipFiller()
		if sc.i >= len(sc.s) {
			break
		}
		c := sc.s[sc.i]
		switch {
		case c == '"' || c == '\'' || c == '`':
			str := sc.readString()
			sc.skipSpace()
			if sc.peek() == ':' {
				sc.i++
				out[str] = sc.parseValue(depth)
			} else {
				positional = append(positional, str)
			}
		case isIdentStart(c):
			ident := sc.readIdent()
			sc.skipSpace()
			switch {
			case sc.peek() == '=' && sc.peekAt(1) != '=':
				sc.i++
				out[lastIdentSegment(ident)] = sc.parseValue(depth)
			case sc.peek() == ':':
				sc.i++
				out[lastIdentSegment(ident)] = sc.parseValue(depth)
			case sc.peek() == '(':
				sc.skipBracket()
			}
		case c == '{':
			// A positional object argument: surface its pairs directly,
			// the fetch-options pattern.
			if inner, ok := bracketContent(sc.s, sc.i); ok {
				nested := &scanner{s: inner}
				pairs, _ := nested.scanPairs(depth)
				for k, v := range pairs {
					if _, taken := out[k]; !taken {
						out[k] = v
					}
				}
			}
			sc.skipBracket()
		case c == '[' || c == '(':
			sc.skipBracket()
		default:
			sc.i++
		}
	}
	return out, positional
}

func (sc *scanner) parseValue(depth int) any {
	sc.skipSpace()
	if sc.i >= len(sc.s) {
		return nil
	}
	c := sc.s[sc.i]
	switch {
	case c == '"' || c == '\'' || c == '`':
		return sc.readString()
	case c == '{':
		inner, ok := bracketContent(sc.s, sc.i)
		sc.skipBracket()
		if !ok || depth >= maxNest {
			return map[string]any{}
		}
		nested := &scanner{s: inner}
		pairs, _ := nested.scanPairs(depth + 1)
		return pairs
	case c == '[':
		inner, ok := bracketContent(sc.s, sc.i)
		sc.skipBracket()
		if !ok {
			return []any{}
		}
		return parseList(inner, depth)
	case isIdentStart(c):
		ident := sc.readIdent()
		sc.skipSpace()
		if sc.peek() == '(' {
			// Call expression wrapping the real value, JSON.stringify style.
			inner, ok := bracketContent(sc.s, sc.i)
			sc.skipBracket()
			if !ok {
				return nil
			}
			nested := &scanner{s: inner}
			return nested.parseValue(depth)
		}
		return coerceWord(ident)
	default:
		return coerceWord(sc.readToken())
	}
}

// parseList parses a list literal's items, one level deep.
func parseList(inner string, depth int) []any {
	sc := &scanner{s: inner}
	var items []any
	for sc.i < len(sc.s) {
		sc.skipFiller()
		if sc.i >= len(sc.s) {
			break
		}
		before := sc.i
		items = append(items, sc.parseValue(depth))
		if sc.i == before {
			sc.i++
		}
	}
	return items
}

func coerceWord(word string) any {
	switch word {
	case "", "undefined":
		return nil
	case "true", "True":
		return true
	case "false", "False":
		return false
	case "null", "None", "nil":
		return nil
	}
	if n, err := strconv.ParseFloat(word, 64); err == nil {
		return n
	}
	return word
}

func (sc *scanner) peek() byte {
	if sc.i < len(sc.s) {
		return sc.s[sc.i]
	}
	return 0
}

func (sc *scanner) peekAt(off int) byte {
	if sc.i+off < len(sc.s) {
		return sc.s[sc.i+off]
	}
	return 0
}

func (sc *scanner) skipSpace() {
	for sc.i < len(sc.s) && (sc.s[sc.i] == ' ' || sc.s[sc.i] == '\t' || sc.s[sc.i] == '\n' || sc.s[sc.i] == '\r') {
		sc.i++
	}
}

func (sc *scanner) skipFiller() {
	for sc.i < len(sc.s) {
		switch sc.s[sc.i] {
		case ' ', '\t', '\n', '\r', ',':
			sc.i++
		default:
			return
		}
	}
}

func (sc *scanner) skipBracket() {
	sc.skipSpace()
	if sc.i >= len(sc.s) {
		return
	}
	switch sc.s[sc.i] {
	case '(', '{', '[':
		end := matchBracketEnd(sc.s, sc.i)
		sc.i = end + 1
	default:
		sc.i++
	}
}

func matchBracketEnd(s string, openIdx int) int {
	open := s[openIdx]
	var close byte
	switch open {
	case '(':
		close = ')'
	case '{':
		close = '}'
	case '[':
		close = ']'
	}
	depth := 0
	for i := openIdx; i < len(s); i++ {
		switch s[i] {
		case '"', '\'', '`':
			i = skipString(s, i)
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return len(s) - 1
}

func (sc *scanner) readString() string {
	start := sc.i
	end := skipString(sc.s, start)
	sc.i = end + 1
	if end <= start {
		return ""
	}
	body := sc.s[start+1 : end]
	if sc.s[start] != '\'' {
		body = unescape(body)
	}
	return body
}

func (sc *scanner) readIdent() string {
	start := sc.i
	for sc.i < len(sc.s) && isIdentChar(sc.s[sc.i]) {
		sc.i++
	}
	return sc.s[start:sc.i]
}

func (sc *scanner) readToken() string {
	start := sc.i
	for sc.i < len(sc.s) {
		switch sc.s[sc.i] {
		case ',', ')', '}', ']', '\n':
			return strings.TrimSpace(sc.s[start:sc.i])
		}
		sc.i++
	}
	return strings.TrimSpace(sc.s[start:])
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentChar(c byte) bool {
	return isIdentStart(c) || c == '.' || (c >= '0' && c <= '9')
}

func lastIdentSegment(ident string) string {
	if i := strings.LastIndexByte(ident, '.'); i >= 0 {
		return ident[i+1:]
	}
	return ident
}
