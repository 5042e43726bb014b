package diag

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/xplshn/clex/pkg/token"
)

var ErrTooManyErrors = errors.New("too many errors")

type Severity int

const (
	Error Severity = iota
	Warning
	Note
)

func (s Severity) String() string {
	switch s {
	case Error:
		return "error"
	case Warning:
		return "warning"
	case Note:
		return "note"
	default:
		return "unknown"
	}
}

func (s Severity) color() string {
	switch s {
	case Error:
		return "\033[31m"
	case Warning:
		return "\033[33m"
	default:
		return "\033[36m"
	}
}

type Diagnostic struct {
	Severity Severity
	Pos      token.Position
	Span     int
	Message  string
}

// Reporter prints diagnostics as file:line:col: severity: message, optionally
// followed by the offending source line with a caret under it.
type Reporter struct {
	w       io.Writer
	color   bool
	caret   bool
	sources map[string][]byte

	diagnostics []Diagnostic
	errors      int
	warnings    int

	// MaxErrors stops reporting once reached; 0 means no limit.
	MaxErrors int
}

func NewReporter(w io.Writer, color bool) *Reporter {
	return &Reporter{w: w, color: color, caret: true, sources: make(map[string][]byte)}
}

// NewStderrReporter writes to stderr, colored when stderr is a terminal.
func NewStderrReporter() *Reporter {
	return NewReporter(os.Stderr, term.IsTerminal(int(os.Stderr.Fd())))
}

func (r *Reporter) Writer() io.Writer { return r.w }
func (r *Reporter) Color() bool        { return r.color }
func (r *Reporter) SetColor(on bool)   { r.color = on }
func (r *Reporter) SetCaret(on bool)   { r.caret = on }

// AddSource registers the text of a file so diagnostics can quote it.
func (r *Reporter) AddSource(name string, src []byte) { r.sources[name] = src }

// Error reports a lexical error. It has the shape of scanner.ErrorHandler.
func (r *Reporter) Error(pos token.Position, msg string) { r.ErrorSpan(pos, 1, msg) }

// ErrorSpan reports a lexical error whose caret covers span bytes.
func (r *Reporter) ErrorSpan(pos token.Position, span int, msg string) {
	r.report(Diagnostic{Severity: Error, Pos: pos, Span: max(span, 1), Message: msg})
}

// Warn reports a warning tagged with its -W flag name.
func (r *Reporter) Warn(name string, pos token.Position, span int, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if name != "" {
		msg += " [-W" + name + "]"
	}
	r.report(Diagnostic{Severity: Warning, Pos: pos, Span: span, Message: msg})
}

func (r *Reporter) Notef(pos token.Position, format string, args ...any) {
	r.report(Diagnostic{Severity: Note, Pos: pos, Message: fmt.Sprintf(format, args...)})
}

func (r *Reporter) report(d Diagnostic) {
	switch d.Severity {
	case Error:
		if r.Exhausted() {
			return
		}
		r.errors++
	case Warning:
		r.warnings++
	}
	r.diagnostics = append(r.diagnostics, d)

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s: ", d.Pos)
	if r.color {
		fmt.Fprintf(&sb, "%s%s:\033[0m ", d.Severity.color(), d.Severity)
	} else {
		fmt.Fprintf(&sb, "%s: ", d.Severity)
	}
	sb.WriteString(d.Message)
	sb.WriteByte('\n')
	if r.caret {
		r.writeSourceLine(&sb, d)
	}
	io.WriteString(r.w, sb.String())
}

// writeSourceLine prints the line holding d and a caret under its span.
func (r *Reporter) writeSourceLine(sb *strings.Builder, d Diagnostic) {
	src, ok := r.sources[d.Pos.Filename]
	if !ok || !d.Pos.IsValid() || d.Pos.Offset > len(src) {
		return
	}

	lineStart := d.Pos.Offset - (d.Pos.Column - 1)
	if lineStart < 0 {
		return
	}
	lineEnd := lineStart
	for lineEnd < len(src) && src[lineEnd] != '\n' {
		lineEnd++
	}
	line := strings.TrimRight(string(src[lineStart:lineEnd]), "\r")

	// Keep tabs so the caret lines up with the quoted text.
	var pad strings.Builder
	for i := 0; i < d.Pos.Column-1 && i < len(line); i++ {
		if line[i] == '\t' {
			pad.WriteByte('\t')
		} else {
			pad.WriteByte(' ')
		}
	}

	fmt.Fprintf(sb, "  %s\n", line)
	sb.WriteString("  " + pad.String())
	if r.color {
		sb.WriteString("\033[32m")
	}
	sb.WriteByte('^')
	if d.Span > 1 {
		sb.WriteString(strings.Repeat("~", d.Span-1))
	}
	if r.color {
		sb.WriteString("\033[0m")
	}
	sb.WriteByte('\n')
}

// Exhausted reports whether the error limit has been reached.
func (r *Reporter) Exhausted() bool { return r.MaxErrors > 0 && r.errors >= r.MaxErrors }

func (r *Reporter) ErrorCount() int   { return r.errors }
func (r *Reporter) WarningCount() int { return r.warnings }

func (r *Reporter) Diagnostics() []Diagnostic { return r.diagnostics }

// Summary returns a one-line count of errors and warnings, or "" if there
// were none.
func (r *Reporter) Summary() string {
	var parts []string
	if r.errors > 0 {
		parts = append(parts, plural(r.errors, "error"))
	}
	if r.warnings > 0 {
		parts = append(parts, plural(r.warnings, "warning"))
	}
	return strings.Join(parts, " and ")
}

func plural(n int, word string) string {
	if n == 1 {
		return "1 " + word
	}
	return fmt.Sprintf("%d %ss", n, word)
}
