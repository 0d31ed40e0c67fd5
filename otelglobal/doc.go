// Package otelglobal holds process-wide singleton state: the default
// no-op TracerProvider/LoggerProvider handles used before an
// application installs real ones, and the diagnostic error hook (§7)
// that otherwise-swallowed pipeline failures are reported through.
package otelglobal
