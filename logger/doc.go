/*
Package logger provides leveled logging to the storefront by defining the required behavior in [Logger]
and providing an implementation of it with [StdLogger].

# Overview

The Logger interface outputs messages at certain levels of importance.
LogLevel is the type to use to represent those levels.
[StdLogger] accepts a [LogLevel] and only emits messages at or above it.
For example, initialized with [LogLevelWarn],
only [*StdLogger.Warn], [*StdLogger.Error], and [*StdLogger.Fatal] produce messages.

Log messages emitted by [StdLogger] are composed of a few parts:
  - timestamp
  - log level
  - call site
  - message
  - log context

Here's an example:

	2026/04/28 15:55:21 [DEBUG] ssr/render.go:43 'resolved route' log_context: {"data":{"path":"/product/:id/"}}

The log context is a JSON-encoded [*LogContext].
It carries data inessential to the message proper,
but provides a fuller picture of the application state at the time of logging.

# SentryLogger

When SENTRY_DSN is set, [New] wraps the [StdLogger] in a [SentryLogger],
which forwards the errors carried by warn, error and fatal log contexts to Sentry.

# SkipLogger

Sometimes the file and line number in a log needs to be configurable.
[SkipLogger] sets the number of frames to skip back in order to reach the desired caller.
*/
package logger
