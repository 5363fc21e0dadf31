// Package urlgen builds endpoint URLs for the subdomain-partitioned Roblox
// web API. The dispatcher itself accepts opaque URL strings; this package is
// a convenience for callers composing them.
package urlgen

import (
	"fmt"
	"net/url"
	"strings"
)

// DefaultBaseDomain is the production API domain.
const DefaultBaseDomain = "roblox.com"

// Generator builds URLs under a single base domain.
type Generator struct {
	baseDomain string
}

// New creates a Generator. An empty base domain falls back to
// DefaultBaseDomain.
func New(baseDomain string) *Generator {
	if baseDomain == "" {
		baseDomain = DefaultBaseDomain
	}
	return &Generator{baseDomain: baseDomain}
}

// BaseDomain returns the domain this generator builds under.
func (g *Generator) BaseDomain() string {
	return g.baseDomain
}

// Subdomain returns the https origin for an API subdomain, e.g.
// Subdomain("users") -> "https://users.roblox.com".
func (g *Generator) Subdomain(subdomain string) string {
	return fmt.Sprintf("https://%s.%s", subdomain, g.baseDomain)
}

// URL joins a path onto an API subdomain origin, e.g.
// URL("users", "v1/users/1") -> "https://users.roblox.com/v1/users/1".
func (g *Generator) URL(subdomain, path string) string {
	path = strings.TrimPrefix(path, "/")
	if path == "" {
		return g.Subdomain(subdomain)
	}
	return fmt.Sprintf("%s/%s", g.Subdomain(subdomain), path)
}

// WithQuery appends url-encoded query parameters to a URL built by this
// package.
func WithQuery(rawURL string, query url.Values) string {
	if len(query) == 0 {
		return rawURL
	}
	separator := "?"
	if strings.Contains(rawURL, "?") {
		separator = "&"
	}
	return rawURL + separator + query.Encode()
}
