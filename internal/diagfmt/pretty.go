package diagfmt

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"wu/internal/diag"
	"wu/internal/source"
)

var (
	sevErrorColor   = color.New(color.FgRed, color.Bold)
	sevWarningColor = color.New(color.FgYellow, color.Bold)
	sevInfoColor    = color.New(color.FgCyan, color.Bold)
	codeColor       = color.New(color.Bold)
	gutterColor     = color.New(color.FgBlue)
)

// Pretty renders diagnostics in a human-readable form, one entry per
// diagnostic:
//
//	<path>:<line>:<col>: <SEV> <CODE>: <message>
//	   N | <source line>
//	     | ^~~~
//
// Iterates bag.Items() as-is; callers wanting positional order run
// bag.Sort() first.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	for _, d := range bag.Items() {
		prettyOne(w, &d, fs, opts)
	}
}

func prettyOne(w io.Writer, d *diag.Diagnostic, fs *source.FileSet, opts PrettyOpts) {
	writeHeader(w, d.Severity, d.Code, d.Message, d.Primary, fs, opts)
	if !opts.NoPreview {
		writePreview(w, d.Primary, fs, opts)
	}
	if opts.ShowNotes {
		for _, n := range d.Notes {
			start, _ := fs.Resolve(n.Span)
			file := fs.Get(n.Span.File)
			path := "<unknown>"
			if file != nil {
				path = displayPath(file.Path, opts.PathMode)
			}
			fmt.Fprintf(w, "%s:%d:%d: note: %s\n", path, start.Line, start.Col, n.Msg)
		}
	}
}

func writeHeader(w io.Writer, sev diag.Severity, code diag.Code, msg string, sp source.Span, fs *source.FileSet, opts PrettyOpts) {
	file := fs.Get(sp.File)
	if file == nil {
		fmt.Fprintf(w, "<unknown>: %s %s: %s\n", sev.String(), code.ID(), msg)
		return
	}
	start, _ := fs.Resolve(sp)
	path := displayPath(file.Path, opts.PathMode)

	sevText := paint(opts.Color, sevColor(sev), sev.String())
	codeText := paint(opts.Color, codeColor, code.ID())
	fmt.Fprintf(w, "%s:%d:%d: %s %s: %s\n", path, start.Line, start.Col, sevText, codeText, msg)
}

// writePreview prints the first source line of the span with a caret
// underline. Multi-line spans are underlined up to the end of their first
// line.
func writePreview(w io.Writer, sp source.Span, fs *source.FileSet, opts PrettyOpts) {
	file := fs.Get(sp.File)
	if file == nil {
		return
	}
	start, end := fs.Resolve(sp)
	line := file.GetLine(start.Line)
	if line == "" && sp.Empty() {
		return
	}

	gutter := fmt.Sprintf("%4d | ", start.Line)
	pad := strings.Repeat(" ", len(gutter)-2) + "| "

	fmt.Fprintf(w, "%s%s\n", paint(opts.Color, gutterColor, gutter), line)

	startCol := int(start.Col)
	if startCol < 1 {
		startCol = 1
	}
	if startCol > len(line)+1 {
		startCol = len(line) + 1
	}
	endCol := len(line) + 1
	if end.Line == start.Line && int(end.Col) < endCol {
		endCol = int(end.Col)
	}

	// indent measured in display cells, not bytes
	indent := runewidth.StringWidth(line[:startCol-1])
	underline := endCol - startCol
	if underline < 1 {
		underline = 1
	}
	marker := "^" + strings.Repeat("~", underline-1)
	fmt.Fprintf(w, "%s%s%s\n",
		paint(opts.Color, gutterColor, pad),
		strings.Repeat(" ", indent),
		paint(opts.Color, sevErrorColor, marker))
}

func sevColor(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return sevErrorColor
	case diag.SevWarning:
		return sevWarningColor
	}
	return sevInfoColor
}

func paint(enabled bool, c *color.Color, s string) string {
	if !enabled {
		return s
	}
	return c.Sprint(s)
}

func displayPath(path string, mode PathMode) string {
	switch mode {
	case PathModeAbsolute:
		if abs, err := filepath.Abs(path); err == nil {
			return abs
		}
	case PathModeRelative:
		if wd, err := filepath.Abs("."); err == nil {
			if rel, err := filepath.Rel(wd, path); err == nil && !strings.HasPrefix(rel, "..") {
				return rel
			}
		}
	case PathModeBasename:
		return filepath.Base(path)
	}
	return path
}
