package output

import (
	"fmt"
	"io"

	"github.com/assistkit/sanibundle/internal/pipeline"
)

// TextWriter outputs a human-readable run summary.
type TextWriter struct{}

func (t *TextWriter) Write(w io.Writer, result pipeline.Result) error {
	ew := &errWriter{w: w}

	ew.printf("Bundle written to %s\n", result.ArchivePath)
	ew.printf("  files bundled:  %d\n", result.FilesBundled)
	if result.FilesSkipped > 0 {
		ew.printf("  files skipped:  %d\n", result.FilesSkipped)
	}
	ew.printf("  redacted lines: %d\n", result.RedactedLines)

	return ew.err
}

// errWriter wraps an io.Writer and captures the first error.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...interface{}) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}
