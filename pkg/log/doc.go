// Package log is the structured logging abstraction used by httpmethods
// collaborators and the CLI.
//
// Components accept a [Logger] and never reach for a global. Two
// implementations ship with the package: [ZerologAdapter], backed by
// github.com/rs/zerolog, and [NoopLogger], which discards everything.
//
//	logger := log.NewConsoleLogger(os.Stderr, zerolog.InfoLevel, false)
//	sender := transport.New(nil, transport.WithLogger(logger))
//
// Any other logging library can be plugged in by implementing the four
// level methods.
package log
