package types

// Provenance tracks where a scanned buffer came from.
type Provenance interface {
	Kind() string
	// Path returns displayable path (if applicable)
	Path() string
}

// FileProvenance for filesystem files.
type FileProvenance struct {
	FilePath string
}

// Kind returns "file".
func (f FileProvenance) Kind() string {
	return "file"
}

// Path returns the file path.
func (f FileProvenance) Path() string {
	return f.FilePath
}

// BufferProvenance for caller-supplied in-memory buffers.
type BufferProvenance struct {
	Label string
}

// Kind returns "buffer".
func (b BufferProvenance) Kind() string {
	return "buffer"
}

// Path returns the label, or "<memory>" when none was given.
func (b BufferProvenance) Path() string {
	if b.Label == "" {
		return "<memory>"
	}
	return b.Label
}
