// Package cli is responsible for parsing command-line arguments, validating
// user input, and handling process-level concerns like exit codes. Flags that
// are set explicitly become overrides applied on top of the config file.
package cli
