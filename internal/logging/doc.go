// Package logging provides the logging interface used across kerntune.
// Components log through Logger with typed fields; the zerolog adapter is the
// only backend, writing JSON lines or human-readable console output.
package logging
