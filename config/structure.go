// Package config loads client configuration from defaults, an optional YAML
// file and environment variables, in increasing priority.
package config

import "time"

// Config is the root configuration structure.
type Config struct {
	Log  LogConfig  `koanf:"log"`
	HTTP HTTPConfig `koanf:"http"`
	API  APIConfig  `koanf:"api"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level  string `koanf:"level"`
	Pretty bool   `koanf:"pretty"`
}

// HTTPConfig contains transport and dispatcher settings.
type HTTPConfig struct {
	Timeout   time.Duration `koanf:"timeout"`
	UserAgent string        `koanf:"useragent"`
	Referer   string        `koanf:"referer"`
	Token     TokenConfig   `koanf:"token"`
	RequestID RequestID     `koanf:"requestid"`
}

// TokenConfig names the rotating anti-forgery token header.
type TokenConfig struct {
	Header string `koanf:"header"`
}

// RequestID names the correlation-ID header.
type RequestID struct {
	Header string `koanf:"header"`
}

// APIConfig contains endpoint settings.
type APIConfig struct {
	BaseDomain string `koanf:"basedomain"`
}
