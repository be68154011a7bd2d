package diagfmt

// PathMode specifies how file paths are displayed.
type PathMode uint8

const (
	// PathModeAuto shows paths exactly as recorded in the FileSet.
	PathModeAuto PathMode = iota
	// PathModeAbsolute resolves paths against the working directory.
	PathModeAbsolute
	PathModeRelative
	PathModeBasename
)

// PrettyOpts configures pretty-printing of diagnostics.
type PrettyOpts struct {
	Color     bool
	PathMode  PathMode
	ShowNotes bool
	// NoPreview suppresses the source line and caret underline.
	NoPreview bool
}

// JSONOpts configures JSON output of diagnostics.
type JSONOpts struct {
	IncludePositions bool // add line/col alongside byte offsets
	PathMode         PathMode
	IncludeNotes     bool
	// Max truncates the output, not the Bag. 0 means everything.
	Max int
}
