// Package cli wires together the Cobra command tree for the sanibundle
// binary.
//
// It defines the root command and all subcommands (bundle, config,
// version), binds flags, builds the effective configuration, runs the
// sanitization pipeline, and returns deterministic exit codes: 0 on a
// produced archive, 1 on any unrecoverable failure, 2 on usage errors.
package cli
