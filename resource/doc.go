// Package resource describes the entity producing telemetry: an
// immutable Key/Value mapping owned by a Provider and shared by
// reference with every exported batch. It is never copied and never
// mutated after Build.
package resource
