// Package terminal renders operation progress for interactive sessions.
package terminal

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/term"

	"themesmith/internal/domain"
)

// ProgressRenderer writes in-place progress lines to a terminal. On a
// non-interactive stream it stays silent so piped output is never polluted.
type ProgressRenderer struct {
	out         io.Writer
	interactive bool
}

// NewProgressRenderer creates a renderer for the given stream.
func NewProgressRenderer(out *os.File) *ProgressRenderer {
	return &ProgressRenderer{
		out:         out,
		interactive: term.IsTerminal(int(out.Fd())),
	}
}

// newRendererForTest lets tests inject a plain writer with forced interactivity.
func newRendererForTest(out io.Writer, interactive bool) *ProgressRenderer {
	return &ProgressRenderer{out: out, interactive: interactive}
}

// IsInteractive reports whether progress will actually be rendered.
func (r *ProgressRenderer) IsInteractive() bool {
	return r.interactive
}

// Handler returns a callback suitable for file operation options. The line is
// rewritten in place and terminated with a newline once the operation reaches
// 100%.
func (r *ProgressRenderer) Handler() domain.ProgressFunc {
	if !r.interactive {
		return nil
	}
	return func(event domain.ProgressEvent) {
		fmt.Fprintf(r.out, "\r%s %s: %5.1f%%", event.Operation, filepath.Base(event.CurrentFile), event.Percentage)
		if event.Percentage >= 100 {
			fmt.Fprintln(r.out)
		}
	}
}
