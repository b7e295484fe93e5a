// Package staging materializes a filtered copy of a project tree into
// an isolated scratch directory.
//
// The scratch directory is owned by exactly one pipeline run: it is
// created fresh, populated here, mutated by redaction, consumed by the
// archiver, and removed when the run ends. Copying is best-effort per
// file — a file that cannot be read or vanishes mid-walk is skipped and
// counted, never aborting the run. Nothing under the source tree is
// ever written to.
package staging
