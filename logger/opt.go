package logger

import "log"

// An Option configures a StdLogger when constructing a new one.
type Option func(*StdLogger)

// WithEnv sets the environment StdLogger is operating in.
func WithEnv(env string) Option {
	return func(l *StdLogger) {
		l.env = env
	}
}

// WithLevel sets the log level StdLogger uses.
func WithLevel(level LogLevel) Option {
	return func(l *StdLogger) {
		l.ll = level
	}
}

// WithLogger sets the log.Logger StdLogger uses.
func WithLogger(log *log.Logger) Option {
	return func(l *StdLogger) {
		l.l = log
	}
}

// WithSkip sets the number of frames in the call stack
// to skip in order to log the desired file and line number
// of the calling code.
func WithSkip(skip int) Option {
	return func(l *StdLogger) {
		l.skip = skip
	}
}
