package filter

import (
	"strings"

	"github.com/yourorg/playground/internal/config"
	"github.com/yourorg/playground/internal/spec"
)

// FilterConfig is an alias of config.FilterConfig.
type FilterConfig = config.FilterConfig

// Apply drops endpoints matching the configured ignore rules and removes
// duplicate keys, keeping the first occurrence.
func Apply(endpoints []spec.NamedEndpoint, cfg FilterConfig) []spec.NamedEndpoint {
	out := make([]spec.NamedEndpoint, 0, len(endpoints))
	seen := make(map[string]bool, len(endpoints))
	for _, ne := range endpoints {
		if ne.Entry == nil {
			continue
		}
		if hasIgnoredPath(ne.Entry.Path, cfg.IgnorePaths) {
			continue
		}
		if matchesMethod(ne.Entry.Method, cfg.IgnoreMethods) {
			continue
		}
		if seen[ne.Key] {
			continue
		}
		seen[ne.Key] = true
		out = append(out, ne)
	}
	return out
}

func hasIgnoredPath(p string, prefixes []string) bool {
	for _, pref := range prefixes {
		pref = strings.TrimSpace(pref)
		if pref == "" {
			continue
		}
		if strings.HasPrefix(p, pref) {
			return true
		}
	}
	return false
}

func matchesMethod(method string, ignores []string) bool {
	for _, m := range ignores {
		if strings.EqualFold(strings.TrimSpace(m), method) {
			return true
		}
	}
	return false
}
