// Package diagnostics defines TreeP's typed pipeline errors and formats
// them with source context: a file:line:col header, the offending source
// line, and a caret under the failing column.
package diagnostics

import (
	"fmt"
	"strings"

	"github.com/treep-lang/treep/internal/element"
	"github.com/treep-lang/treep/internal/token"
)

// Kind tags which pipeline stage raised an error.
type Kind string

const (
	KindLex        Kind = "LexError"
	KindParse      Kind = "ParseError"
	KindNormalize  Kind = "NormalizeError"
	KindMacro      Kind = "MacroError"
	KindType       Kind = "TypeError"
	KindRuntime    Kind = "RuntimeError"
	KindTransducer Kind = "TransducerError"
)

// Error is TreeP's single error type across all pipeline stages. Callers
// distinguish failures by Kind, not by Go type.
type Error struct {
	Kind    Kind
	Message string
	Pos     token.Position
	File    string
	Source  string           // full source text, for rendering a context line
	Node    *element.Element // offending node, when the error is post-normalization
}

// New builds an Error with no source context attached; use WithSource to
// enable the caret-pointer rendering.
func New(kind Kind, pos token.Position, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Pos: pos}
}

// AtNode builds an Error referencing an offending Element, for stages that
// operate after normalization and no longer have raw tokens.
func AtNode(kind Kind, n *element.Element, format string, args ...any) *Error {
	e := &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Node: n}
	if n != nil && !n.Span.IsZero() {
		e.Pos = token.Position{Line: n.Span.StartLine, Column: n.Span.StartCol}
	}
	return e
}

// WithSource attaches the originating file name and full source text so
// Format can render a context line.
func (e *Error) WithSource(file, source string) *Error {
	e.File = file
	e.Source = source
	return e
}

func (e *Error) Error() string { return e.Format(false) }

// Format renders the error with a file:line:col header, the offending
// source line, and a caret. With color, the caret is ANSI-highlighted;
// the header and source line stay plain.
func (e *Error) Format(color bool) string {
	var sb strings.Builder

	if e.File != "" {
		fmt.Fprintf(&sb, "%s: %s in %s:%d:%d\n", e.Kind, e.Message, e.File, e.Pos.Line, e.Pos.Column)
	} else {
		fmt.Fprintf(&sb, "%s: %s at line %d:%d\n", e.Kind, e.Message, e.Pos.Line, e.Pos.Column)
	}

	line := sourceLine(e.Source, e.Pos.Line)
	if line == "" {
		return sb.String()
	}

	prefix := fmt.Sprintf("%4d | ", e.Pos.Line)
	sb.WriteString(prefix)
	sb.WriteString(line)
	sb.WriteString("\n")

	sb.WriteString(strings.Repeat(" ", len(prefix)+max0(e.Pos.Column-1)))
	if color {
		sb.WriteString("\033[1;31m")
	}
	sb.WriteString("^")
	if color {
		sb.WriteString("\033[0m")
	}
	return sb.String()
}

func sourceLine(source string, lineNum int) string {
	if source == "" || lineNum < 1 {
		return ""
	}
	lines := strings.Split(source, "\n")
	if lineNum > len(lines) {
		return ""
	}
	return lines[lineNum-1]
}

func max0(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
