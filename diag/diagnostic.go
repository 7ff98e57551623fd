package diag

import (
	"fmt"
	"strconv"
)

// Location is a 1-based position in a named source buffer. Column 0 means the
// host did not report one.
type Location struct {
	File   string
	Line   int
	Column int
}

// IsValid reports whether the location points into a file.
func (l Location) IsValid() bool {
	return l.File != "" && l.Line > 0
}

// String renders the location the way the host prints it: file:line:col.
func (l Location) String() string {
	if !l.IsValid() {
		return "<invalid loc>"
	}
	if l.Column == 0 {
		return l.File + ":" + strconv.Itoa(l.Line)
	}
	return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Column)
}

// Range is a half-open character range inside a single file.
type Range struct {
	Begin Location
	End   Location
}

// IsValid reports whether both ends are valid and belong to the same file.
func (r Range) IsValid() bool {
	return r.Begin.IsValid() && r.End.IsValid() && r.Begin.File == r.End.File
}

// SourceManager resolves locations and ranges to text.
type SourceManager interface {
	// SpellingLoc resolves a location produced by macro expansion back to
	// where the token was written. Locations outside macros map to themselves.
	SpellingLoc(loc Location) Location
	// BufferData returns the full contents of a file, if it is available.
	BufferData(file string) (string, bool)
	// SourceText returns the text covered by r, or "" if r is invalid.
	SourceText(r Range) string
}

// Diagnostic is a single event emitted by the host. Consumers must treat it
// as read-only.
type Diagnostic struct {
	Level    Level
	Message  string
	Location Location
	// Text is the host's own rendering (header, snippet, include stack).
	// Empty when the host did not render the diagnostic.
	Text    string
	Sources SourceManager
}

// Format renders the diagnostic in file:line:col: level: message form.
func (d Diagnostic) Format() string {
	if !d.Location.IsValid() {
		return d.Level.String() + ": " + d.Message
	}
	return d.Location.String() + ": " + d.Level.String() + ": " + d.Message
}
