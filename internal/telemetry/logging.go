package telemetry

import (
	"io"
	"log"

	"github.com/go-logr/logr"
	"github.com/go-logr/stdr"
	"go.opentelemetry.io/otel"
)

// NewLogger returns a logr.Logger writing to w through the standard library
// logger. Higher verbosity enables V(n) messages up to that level. The
// logger is also installed as OpenTelemetry's internal logger.
func NewLogger(w io.Writer, verbosity int) logr.Logger {
	stdr.SetVerbosity(verbosity)
	logger := stdr.NewWithOptions(log.New(w, "", log.LstdFlags), stdr.Options{
		LogCaller: stdr.Error,
	}).WithName("wayfarer")
	otel.SetLogger(logger)
	return logger
}
