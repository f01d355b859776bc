// Package logging constructs the slog loggers used across mediapress.
//
// Two output formats are supported: a compact console format intended for
// interactive runs (timestamp, level, component prefix, key=value attrs)
// and standard JSON for log files or machine consumption.
package logging
