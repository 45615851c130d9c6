// Package logging wraps log/slog with the attribute helpers, verbosity
// mapping, and colored console handler used across mvvideos.
package logging
