// Package logs implements the logging half of the telemetry pipeline:
// LogRecord, LoggerProvider, and the Simple/Batch processors shared with
// package trace via package batchqueue.
package logs
