package logger

import (
	"time"

	"github.com/rs/zerolog"
)

// zerologEvent adapts a *zerolog.Event to the LogEvent interface.
type zerologEvent struct {
	event *zerolog.Event
}

func (e *zerologEvent) Msg(msg string) {
	e.event.Msg(msg)
}

func (e *zerologEvent) Msgf(format string, args ...any) {
	e.event.Msgf(format, args...)
}

func (e *zerologEvent) Err(err error) LogEvent {
	return &zerologEvent{event: e.event.Err(err)}
}

func (e *zerologEvent) Str(key, value string) LogEvent {
	return &zerologEvent{event: e.event.Str(key, value)}
}

func (e *zerologEvent) Int(key string, value int) LogEvent {
	return &zerologEvent{event: e.event.Int(key, value)}
}

func (e *zerologEvent) Int64(key string, value int64) LogEvent {
	return &zerologEvent{event: e.event.Int64(key, value)}
}

func (e *zerologEvent) Dur(key string, d time.Duration) LogEvent {
	return &zerologEvent{event: e.event.Dur(key, d)}
}

func (e *zerologEvent) Interface(key string, i any) LogEvent {
	return &zerologEvent{event: e.event.Interface(key, i)}
}

func (e *zerologEvent) Bytes(key string, val []byte) LogEvent {
	return &zerologEvent{event: e.event.Bytes(key, val)}
}

// Info creates an info-level log event.
func (l *ZeroLogger) Info() LogEvent {
	return &zerologEvent{event: l.zlog.Info()}
}

// Error creates an error-level log event.
func (l *ZeroLogger) Error() LogEvent {
	return &zerologEvent{event: l.zlog.Error()}
}

// Debug creates a debug-level log event.
func (l *ZeroLogger) Debug() LogEvent {
	return &zerologEvent{event: l.zlog.Debug()}
}

// Warn creates a warn-level log event.
func (l *ZeroLogger) Warn() LogEvent {
	return &zerologEvent{event: l.zlog.Warn()}
}

// Fatal creates a fatal-level log event.
func (l *ZeroLogger) Fatal() LogEvent {
	return &zerologEvent{event: l.zlog.Fatal()}
}
