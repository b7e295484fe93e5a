// Package redact replaces sensitive values in a staged project copy
// with a fixed marker before the copy is archived.
//
// Redaction is organized as an ordered list of independent rules, each
// owning one file category: the primary environment file, dotted
// environment variants, and structured configuration files (YAML and
// JSON). Environment files get a blanket rewrite — every key=value
// assignment loses its value regardless of the key's name — while
// structured files are rewritten line by line and only lines whose key
// matches a sensitive-key pattern change; everything else stays
// byte-identical.
//
// Rules operate only on the staged tree, never on the source project.
// A missing target file is a no-op, and every rewrite replaces the file
// atomically so a reader never observes a half-written file. Redaction
// is idempotent: a second pass over already-redacted output produces
// identical bytes.
package redact
