package source

type (
	// FileID uniquely identifies a source file within a FileSet.
	FileID uint32
	// FileFlags encodes metadata about how a source file was loaded.
	FileFlags uint8
)

const (
	// FileVirtual marks a file added from memory (test, stdin, fuzz input).
	FileVirtual FileFlags = 1 << iota
	FileHadBOM
	FileNormalizedCRLF
)

// File captures metadata and content for a single source file.
// Content is arbitrary bytes; no encoding is assumed.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	LineIdx []uint32
	Hash    [32]byte
	Flags   FileFlags
}

// LineCol is a human-readable position, both 1-based.
// Col counts bytes, not runes, so it stays meaningful on invalid UTF-8.
type LineCol struct {
	Line uint32
	Col  uint32
}
