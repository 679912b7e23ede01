package websocket

import "log"

// Logger is the structured log sink the reader and writer tasks report
// to. It is used for observability only and never influences control
// flow (spec.md §6).
type Logger interface {
	// Tracef logs a fine-grained diagnostic: frame-by-frame detail,
	// useful when debugging a single connection.
	Tracef(format string, args ...any)
	// Errorf logs a condition the application should be aware of: an
	// I/O failure, a protocol violation that closed the session.
	Errorf(format string, args ...any)
}

// NopLogger discards everything. It is the default when NewSession is
// given a nil Logger.
type NopLogger struct{}

func (NopLogger) Tracef(string, ...any) {}
func (NopLogger) Errorf(string, ...any) {}

// StdLogger adapts a *log.Logger to the Logger interface, prefixing
// trace lines so they can be grepped out or filtered by verbosity in
// downstream log processing.
type StdLogger struct {
	L *log.Logger
}

// NewStdLogger wraps l, or log.Default() if l is nil.
func NewStdLogger(l *log.Logger) *StdLogger {
	if l == nil {
		l = log.Default()
	}
	return &StdLogger{L: l}
}

func (s *StdLogger) Tracef(format string, args ...any) {
	s.L.Printf("TRACE websocket: "+format, args...)
}

func (s *StdLogger) Errorf(format string, args ...any) {
	s.L.Printf("ERROR websocket: "+format, args...)
}
