// Package logging sets up the global logger. Import it with the blank
// identifier from main; level and format come from LOG_LEVEL and LOG_FORMAT.
package logging

import (
	"os"
	"strconv"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/trace"
)

// Log levels accepted in LOG_LEVEL.
const (
	Debug = "DEBUG"
	Info  = "INFO"
	Warn  = "WARN"
	Error = "ERROR"
)

func init() {
	log.AddHook(&logrusContextHook{})

	logLevel, ok := os.LookupEnv("LOG_LEVEL")
	if !ok {
		logLevel = "info"
	}

	level, err := log.ParseLevel(logLevel)
	if err != nil {
		log.Fatal(err)
	}

	log.SetLevel(level)
	log.SetFormatter(formatterFromEnv())

	// Debug runs also log the caller's filename and line number.
	if log.StandardLogger().GetLevel() == log.DebugLevel {
		log.SetReportCaller(true)
	}
}

// formatterFromEnv returns a new formatter based on LOG_FORMAT.
func formatterFromEnv() log.Formatter {
	logFormat := os.Getenv("LOG_FORMAT")

	if logFormat == "json" {
		return &log.JSONFormatter{}
	}

	return &log.TextFormatter{}
}

type logrusContextHook struct {
}

func (hook *logrusContextHook) Levels() []log.Level {
	return log.AllLevels
}

// Fire extracts the trace ID and span ID from the log entry's context and
// adds them as fields, named per the Datadog convention so logs and traces
// correlate.
func (hook *logrusContextHook) Fire(entry *log.Entry) error {
	span := trace.SpanFromContext(entry.Context).SpanContext()

	if span.IsValid() {
		traceID := span.TraceID().String()
		spanID := span.SpanID().String()

		entry.Data["dd.trace_id"] = convertTraceID(traceID)
		entry.Data["dd.span_id"] = convertTraceID(spanID)
	}

	return nil
}

// Took from DD https://docs.datadoghq.com/tracing/other_telemetry/connect_logs_and_traces/opentelemetry?tab=go
func convertTraceID(id string) string {
	if len(id) < 16 {
		return ""
	}
	if len(id) > 16 {
		id = id[16:]
	}
	intValue, err := strconv.ParseUint(id, 16, 64)
	if err != nil {
		return ""
	}

	return strconv.FormatUint(intValue, 10)
}
