package codegen

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"github.com/yourorg/playground/pkg/types"
)

// DefaultLanguages are the targets rendered when the config names none.
var DefaultLanguages = []string{"curl", "python", "javascript"}

var languageLabels = map[string]string{
	"curl":       "cURL",
	"python":     "Python",
	"javascript": "JavaScript",
}

// Generate renders one sample per requested language. Unknown language tags
// are skipped; output is illustrative and not guaranteed to compile.
func Generate(in Input, langs []string) []types.Sample {
	if len(langs) == 0 {
		langs = DefaultLanguages
	}
	req := Resolve(in)

	samples := make([]types.Sample, 0, len(langs))
	for _, lang := range langs {
		var source string
		switch lang {
		case "curl":
			source = renderCurl(req)
		case "python":
			source = renderPython(req)
		case "javascript":
			source = renderJavaScript(req)
		default:
			continue
		}
		samples = append(samples, types.Sample{Lang: lang, Label: languageLabels[lang], Source: source})
	}
	return samples
}

func renderCurl(req Request) string {
	b := &strings.Builder{}
	fmt.Fprintf(b, "curl -X %s \"%s\"", req.Method, req.FullURL())
	if req.Auth != nil && req.Auth.Kind == "basic" {
		fmt.Fprintf(b, " \\\n  -u \"%s\"", req.Auth.Placeholder)
	}
	for _, h := range req.Headers {
		fmt.Fprintf(b, " \\\n  -H \"%s: %s\"", h.Key, h.Value)
	}
	if req.Body != nil {
		fmt.Fprintf(b, " \\\n  -d '%s'", jsonBlock(req.Body, ""))
	}
	return b.String()
}

func renderPython(req Request) string {
	b := &strings.Builder{}
	b.WriteString("import requests\n\n")
	fmt.Fprintf(b, "url = %q\n", req.URL)

	args := []string{"url"}
	if len(req.Headers) > 0 {
		b.WriteString("headers = {\n")
		for _, h := range req.Headers {
			fmt.Fprintf(b, "    %q: %q,\n", h.Key, h.Value)
		}
		b.WriteString("}\n")
		args = append(args, "headers=headers")
	}
	if len(req.Query) > 0 {
		b.WriteString("params = {\n")
		for _, p := range groupQuery(req.Query) {
			fmt.Fprintf(b, "    %q: %s,\n", p.key, p.value)
		}
		b.WriteString("}\n")
		args = append(args, "params=params")
	}
	if req.Body != nil {
		fmt.Fprintf(b, "payload = %s\n", pyLiteral(req.Body, ""))
		args = append(args, "json=payload")
	}
	if req.Auth != nil && req.Auth.Kind == "basic" {
		args = append(args, `auth=("username", "password")`)
	}

	fmt.Fprintf(b, "\nresponse = requests.%s(%s)\n", strings.ToLower(req.Method), strings.Join(args, ", "))
	b.WriteString("print(response.json())\n")
	return b.String()
}

func renderJavaScript(req Request) string {
	b := &strings.Builder{}
	fmt.Fprintf(b, "const response = await fetch(%q, {\n", req.FullURL())
	fmt.Fprintf(b, "  method: %q,\n", req.Method)

	headers := req.Headers
	if req.Auth != nil && req.Auth.Kind == "basic" {
		headers = append(append([]Pair(nil), headers...), Pair{Key: "Authorization", Value: "Basic " + req.Auth.Placeholder})
	}
	if len(headers) > 0 {
		b.WriteString("  headers: {\n")
		for _, h := range headers {
			fmt.Fprintf(b, "    %q: %q,\n", h.Key, h.Value)
		}
		b.WriteString("  },\n")
	}
	if req.Body != nil {
		fmt.Fprintf(b, "  body: JSON.stringify(%s),\n", jsonBlock(req.Body, "  "))
	}
	b.WriteString("});\nconst data = await response.json();\nconsole.log(data);\n")
	return b.String()
}

// jsonBlock renders a value as indented JSON, re-indented so nested lines
// line up under the surrounding code. Unserializable values degrade to "{}".
func jsonBlock(v any, prefix string) string {
	data, err := json.MarshalIndent(v, prefix, "  ")
	if err != nil {
		return "{}"
	}
	return string(data)
}

type pyPair struct {
	key   string
	value string
}

// groupQuery folds repeated query keys into Python list literals, keeping
// first-appearance order.
func groupQuery(query []Pair) []pyPair {
	order := make([]string, 0, len(query))
	grouped := map[string][]string{}
	for _, q := range query {
		if _, ok := grouped[q.Key]; !ok {
			order = append(order, q.Key)
		}
		grouped[q.Key] = append(grouped[q.Key], q.Value)
	}
	out := make([]pyPair, 0, len(order))
	for _, key := range order {
		vals := grouped[key]
		if len(vals) == 1 {
			out = append(out, pyPair{key: key, value: strconv.Quote(vals[0])})
			continue
		}
		quoted := make([]string, 0, len(vals))
		for _, v := range vals {
			quoted = append(quoted, strconv.Quote(v))
		}
		out = append(out, pyPair{key: key, value: "[" + strings.Join(quoted, ", ") + "]"})
	}
	return out
}

// pyLiteral renders a value as a Python literal: None/True/False instead of
// JSON keywords, dicts multi-line with sorted keys.
func pyLiteral(v any, indent string) string {
	switch t := v.(type) {
	case nil:
		return "None"
	case bool:
		if t {
			return "True"
		}
		return "False"
	case string:
		return strconv.Quote(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case []any:
		items := make([]string, 0, len(t))
		for _, item := range t {
			items = append(items, pyLiteral(item, indent))
		}
		return "[" + strings.Join(items, ", ") + "]"
	case map[string]any:
		if len(t) == 0 {
			return "{}"
		}
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		b := &strings.Builder{}
		b.WriteString("{\n")
		for _, k := range keys {
			fmt.Fprintf(b, "%s    %q: %s,\n", indent, k, pyLiteral(t[k], indent+"    "))
		}
		fmt.Fprintf(b, "%s}", indent)
		return b.String()
	default:
		return strconv.Quote(fmt.Sprint(t))
	}
}
