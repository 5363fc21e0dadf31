package client

import (
	"github.com/gaborage/go-rbxweb/config"
	"github.com/gaborage/go-rbxweb/logger"
)

// NewFromConfig builds a dispatcher from loaded configuration. A nil log
// constructs a logger from the config's log section.
func NewFromConfig(cfg *config.Config, log logger.Logger) (Client, error) {
	if log == nil {
		log = logger.New(cfg.Log.Level, cfg.Log.Pretty)
	}
	return NewBuilder(log).
		WithTimeout(cfg.HTTP.Timeout).
		WithUserAgent(cfg.HTTP.UserAgent).
		WithReferer(cfg.HTTP.Referer).
		WithTokenHeader(cfg.HTTP.Token.Header).
		WithRequestIDHeader(cfg.HTTP.RequestID.Header).
		Build()
}
