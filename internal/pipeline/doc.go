// Package pipeline sequences a sanitized-bundle run: stage a filtered
// copy of the project, redact secrets in the copy, archive it, report
// the artifact path.
//
// The stages are strictly sequential — each consumes the complete
// output of the previous one — and run synchronously on the caller's
// goroutine. The scratch directory is released on every exit path,
// success or failure, so no staged material survives a run. Per-file
// copy failures and absent redaction targets are absorbed inside their
// stage; structural failures (no project root, no scratch directory, no
// archive) terminate the run and surface to the caller.
package pipeline
