package ekf

import "log/slog"

// EventSink receives human-readable lifecycle notices from the channel
// supervisors (start, stop, fault, reset). Purely observational: nothing a
// sink does feeds back into control flow.
type EventSink interface {
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
}

type slogSink struct {
	l *slog.Logger
}

// NewSlogSink returns an EventSink writing to l, or to slog.Default when l
// is nil.
func NewSlogSink(l *slog.Logger) EventSink {
	if l == nil {
		l = slog.Default()
	}
	return slogSink{l: l}
}

func (s slogSink) Info(msg string, args ...any) { s.l.Info(msg, args...) }
func (s slogSink) Warn(msg string, args ...any) { s.l.Warn(msg, args...) }

// NopSink discards all notices.
type NopSink struct{}

func (NopSink) Info(string, ...any) {}
func (NopSink) Warn(string, ...any) {}
