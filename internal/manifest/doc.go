// Package manifest writes a YAML inventory of a staged tree into the
// bundle before archiving: tool version, creation time, every included
// file with its size, and per-rule redaction counts. The manifest lets
// the recipient of a bundle see what was shared without extracting and
// diffing it.
package manifest
