package renderer

import (
	"fmt"

	"github.com/df07/go-pathtracer/pkg/core"
)

// Logger is the logging interface accepted by the renderer
type Logger = core.Logger

// DefaultLogger implements core.Logger by writing to stdout
type DefaultLogger struct{}

func (dl *DefaultLogger) Printf(format string, args ...interface{}) {
	fmt.Printf(format, args...)
}

// NewDefaultLogger creates a new default logger
func NewDefaultLogger() core.Logger {
	return &DefaultLogger{}
}

// discardLogger drops every message
type discardLogger struct{}

func (discardLogger) Printf(format string, args ...interface{}) {}

// NewDiscardLogger returns a logger that drops every message
func NewDiscardLogger() core.Logger {
	return discardLogger{}
}
