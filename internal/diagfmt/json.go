package diagfmt

import (
	"encoding/json"
	"io"

	"wu/internal/diag"
	"wu/internal/source"
)

// PosOutput is a resolved line/col pair.
type PosOutput struct {
	Line uint32 `json:"line"`
	Col  uint32 `json:"col"`
}

// NoteOutput is the JSON shape of one diagnostic note.
type NoteOutput struct {
	Span source.Span `json:"span"`
	Msg  string      `json:"msg"`
}

// DiagnosticOutput is the JSON shape of one diagnostic.
type DiagnosticOutput struct {
	Severity string       `json:"severity"`
	Code     string       `json:"code"`
	Message  string       `json:"message"`
	Path     string       `json:"path,omitempty"`
	Span     source.Span  `json:"span"`
	Start    *PosOutput   `json:"start,omitempty"`
	End      *PosOutput   `json:"end,omitempty"`
	Notes    []NoteOutput `json:"notes,omitempty"`
}

// JSON emits bag as a JSON array, in bag order.
func JSON(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts JSONOpts) error {
	items := bag.Items()
	if opts.Max > 0 && len(items) > opts.Max {
		items = items[:opts.Max]
	}

	output := make([]DiagnosticOutput, 0, len(items))
	for _, d := range items {
		out := DiagnosticOutput{
			Severity: d.Severity.String(),
			Code:     d.Code.ID(),
			Message:  d.Message,
			Span:     d.Primary,
		}
		if file := fs.Get(d.Primary.File); file != nil {
			out.Path = displayPath(file.Path, opts.PathMode)
		}
		if opts.IncludePositions {
			start, end := fs.Resolve(d.Primary)
			out.Start = &PosOutput{Line: start.Line, Col: start.Col}
			out.End = &PosOutput{Line: end.Line, Col: end.Col}
		}
		if opts.IncludeNotes {
			for _, n := range d.Notes {
				out.Notes = append(out.Notes, NoteOutput{Span: n.Span, Msg: n.Msg})
			}
		}
		output = append(output, out)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(output)
}
