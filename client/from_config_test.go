package client

import (
	"context"
	nethttp "net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaborage/go-rbxweb/config"
	"github.com/gaborage/go-rbxweb/logger"
	"github.com/gaborage/go-rbxweb/session"
)

func TestNewFromConfig(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)
	cfg.HTTP.Timeout = 2 * time.Second
	cfg.HTTP.Token.Header = "X-Config-Token"
	cfg.HTTP.UserAgent = "config-agent"

	c, err := NewFromConfig(cfg, logger.Nop())
	require.NoError(t, err)
	defer c.Close()

	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		assert.Equal(t, "config-agent", r.Header.Get("User-Agent"))
		w.Header().Set("X-Config-Token", "issued")
		w.WriteHeader(nethttp.StatusOK)
	}))
	defer server.Close()

	_, err = c.Post(context.Background(), &session.Request{URL: server.URL})
	require.NoError(t, err)

	token, ok := c.Session().Header("X-Config-Token")
	require.True(t, ok)
	assert.Equal(t, "issued", token)
}
