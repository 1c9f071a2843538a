package filter

import (
	"testing"

	"github.com/yourorg/playground/internal/spec"
)

func endpoint(key, method, path string) spec.NamedEndpoint {
	return spec.NamedEndpoint{Key: key, Entry: &spec.EndpointEntry{Title: key, Method: method, Path: path}}
}

func TestApplyIgnorePaths(t *testing.T) {
	endpoints := []spec.NamedEndpoint{
		endpoint("list-users", "GET", "/users"),
		endpoint("health", "GET", "/internal/health"),
		endpoint("metrics", "GET", "/internal/metrics"),
	}
	cfg := FilterConfig{IgnorePaths: []string{"/internal/"}}
	got := Apply(endpoints, cfg)
	if len(got) != 1 || got[0].Key != "list-users" {
		t.Fatalf("got %+v", got)
	}
}

func TestApplyIgnoreMethods(t *testing.T) {
	endpoints := []spec.NamedEndpoint{
		endpoint("list-users", "GET", "/users"),
		endpoint("delete-user", "DELETE", "/users/{id}"),
	}
	cfg := FilterConfig{IgnoreMethods: []string{"delete"}}
	got := Apply(endpoints, cfg)
	if len(got) != 1 || got[0].Key != "list-users" {
		t.Fatalf("got %+v", got)
	}
}

func TestApplyDedupAndNilEntries(t *testing.T) {
	endpoints := []spec.NamedEndpoint{
		endpoint("a", "GET", "/a"),
		{Key: "broken"},
		endpoint("a", "GET", "/a"),
		endpoint("b", "GET", "/b"),
	}
	got := Apply(endpoints, FilterConfig{})
	if len(got) != 2 || got[0].Key != "a" || got[1].Key != "b" {
		t.Fatalf("got %+v", got)
	}
}

func TestApplyBlankRulesAreIgnored(t *testing.T) {
	endpoints := []spec.NamedEndpoint{endpoint("a", "GET", "/a")}
	cfg := FilterConfig{IgnorePaths: []string{"", "  "}, IgnoreMethods: []string{" "}}
	if got := Apply(endpoints, cfg); len(got) != 1 {
		t.Fatalf("blank rules must not match everything: %+v", got)
	}
}
