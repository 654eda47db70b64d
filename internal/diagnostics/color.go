package diagnostics

import (
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

// UseColor reports whether formatted errors written to f should carry
// ANSI escapes. Decided once per process at the CLI entry point and
// passed down; nothing below the driver consults the terminal itself.
func UseColor(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// FormatErrors renders a batch of errors, one Format block per error,
// separated by blank lines.
func FormatErrors(errs []*Error, color bool) string {
	var sb strings.Builder
	for i, e := range errs {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(e.Format(color))
		sb.WriteString("\n")
	}
	return sb.String()
}
