package urlgen

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSubdomain(t *testing.T) {
	g := New("")
	assert.Equal(t, "https://users.roblox.com", g.Subdomain("users"))
	assert.Equal(t, "https://games.roblox.com", g.Subdomain("games"))
}

func TestCustomBaseDomain(t *testing.T) {
	g := New("sitetest.robloxlabs.com")
	assert.Equal(t, "sitetest.robloxlabs.com", g.BaseDomain())
	assert.Equal(t, "https://users.sitetest.robloxlabs.com", g.Subdomain("users"))
}

func TestURL(t *testing.T) {
	g := New("")

	tests := []struct {
		name      string
		subdomain string
		path      string
		expected  string
	}{
		{"plain path", "users", "v1/users/1", "https://users.roblox.com/v1/users/1"},
		{"leading slash stripped", "users", "/v1/users/1", "https://users.roblox.com/v1/users/1"},
		{"empty path", "www", "", "https://www.roblox.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, g.URL(tt.subdomain, tt.path))
		})
	}
}

func TestWithQuery(t *testing.T) {
	g := New("")
	base := g.URL("users", "v1/users/search")

	t.Run("appends query", func(t *testing.T) {
		got := WithQuery(base, url.Values{"keyword": {"builderman"}})
		assert.Equal(t, base+"?keyword=builderman", got)
	})

	t.Run("extends existing query", func(t *testing.T) {
		got := WithQuery(base+"?limit=10", url.Values{"keyword": {"builderman"}})
		assert.Equal(t, base+"?limit=10&keyword=builderman", got)
	})

	t.Run("empty values are a no-op", func(t *testing.T) {
		assert.Equal(t, base, WithQuery(base, nil))
	})
}
