// Package cli is responsible for parsing command-line arguments, validating
// user input, and handling process-level concerns like exit codes. It
// translates CLI flags into the application's internal configuration.
//
// Exit code 2 means the invocation itself was wrong (unknown flag, invalid
// value). Runtime failures such as a cyclic schedule exit with 1.
package cli
