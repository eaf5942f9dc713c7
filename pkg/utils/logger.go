// Package utils holds small helpers shared across the rebalancer: component
// loggers and gRPC plumbing.
package utils

import (
	"io"
	"log"
)

// NamedLogger returns a logger that prefixes all messages with the given
// component name, writing to the standard logger's output.
func NamedLogger(name string) *log.Logger {
	return log.New(log.Writer(), "["+name+"] ", log.LstdFlags)
}

// DiscardLogger returns a logger that drops everything. Tests use it to keep
// their output quiet.
func DiscardLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}
