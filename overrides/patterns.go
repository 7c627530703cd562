package overrides

import (
	"net/url"
	"strings"
)

// DefaultPriority is the rule priority used when none is given.
const DefaultPriority = 500

// Patterns describes the URLs an override rule applies to. A pattern is a
// host with an optional path prefix, e.g. "example.com" or
// "example.com/reviews"; hosts also match their subdomains. An empty
// Include list matches every URL that is not excluded.
//
// Matching here is intentionally small. The original system delegates to a
// dedicated URL matching library; this covers the host/path subset the
// registry needs.
type Patterns struct {
	Include  []string
	Exclude  []string
	Priority int
}

// Match reports whether rawURL is covered: no exclude pattern matches and
// some include pattern does.
func (p Patterns) Match(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	for _, pat := range p.Exclude {
		if patternMatches(pat, u) {
			return false
		}
	}
	if len(p.Include) == 0 {
		return true
	}
	for _, pat := range p.Include {
		if patternMatches(pat, u) {
			return true
		}
	}
	return false
}

func patternMatches(pattern string, u *url.URL) bool {
	// Patterns may carry a scheme; ignore it.
	if i := strings.Index(pattern, "://"); i >= 0 {
		pattern = pattern[i+3:]
	}
	host, path, _ := strings.Cut(pattern, "/")
	if host != "" && !hostMatches(host, u.Hostname()) {
		return false
	}
	if path != "" && !strings.HasPrefix(strings.TrimPrefix(u.EscapedPath(), "/"), path) {
		return false
	}
	return true
}

// hostMatches reports whether host equals pat or is a subdomain of it.
func hostMatches(pat, host string) bool {
	return host == pat || strings.HasSuffix(host, "."+pat)
}
