// Package errors provides the classified error primitives used across jsdocmd.
//
// Every collaborator of the renderer (config loading, manifest handling,
// toolchain runs, output writing) reports failures as a ClassifiedError so
// the CLI can choose an exit code and a log level from the category and
// severity alone.
//
// Example usage:
//
//	err := errors.ToolchainError("jsdoc failed").
//		WithCause(cause).
//		WithContext("file", path).
//		Build()
package errors
