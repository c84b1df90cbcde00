// Package logger provides structured logging setup and context propagation
// helpers for the application.
package logger
