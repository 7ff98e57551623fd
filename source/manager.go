package source

import (
	"github.com/ChuanqiXu9/AIDiganosticConsumer/diag"
	"github.com/ChuanqiXu9/AIDiganosticConsumer/logger"
)

// Manager is a diag.SourceManager backed by a FileSet. Files are loaded from
// disk on first use; unreadable files are remembered and reported as missing.
type Manager struct {
	files     *FileSet
	missing   map[string]struct{}
	spellings map[diag.Location]diag.Location
}

var _ diag.SourceManager = (*Manager)(nil)

func NewManager(files *FileSet) *Manager {
	if files == nil {
		files = NewFileSet()
	}
	return &Manager{
		files:     files,
		missing:   make(map[string]struct{}),
		spellings: make(map[diag.Location]diag.Location),
	}
}

func (m *Manager) Files() *FileSet {
	return m.files
}

// File returns the buffer for path, loading it if needed.
func (m *Manager) File(path string) (*File, bool) {
	if f, ok := m.files.Lookup(path); ok {
		return f, true
	}
	if _, ok := m.missing[path]; ok {
		return nil, false
	}
	id, err := m.files.Load(path)
	if err != nil {
		logger.Debugf("Source buffer unavailable for %s: %v", path, err)
		m.missing[path] = struct{}{}
		return nil, false
	}
	return m.files.Get(id), true
}

// SetSpelling records that tokens reported at expansion were written at spelling.
func (m *Manager) SetSpelling(expansion, spelling diag.Location) {
	m.spellings[expansion] = spelling
}

func (m *Manager) SpellingLoc(loc diag.Location) diag.Location {
	if spelling, ok := m.spellings[loc]; ok {
		return spelling
	}
	return loc
}

func (m *Manager) BufferData(file string) (string, bool) {
	f, ok := m.File(file)
	if !ok {
		return "", false
	}
	return string(f.Content), true
}

func (m *Manager) SourceText(r diag.Range) string {
	if !r.IsValid() {
		return ""
	}
	f, ok := m.File(r.Begin.File)
	if !ok {
		return ""
	}
	start, ok := f.Offset(lineColOf(r.Begin))
	if !ok {
		return ""
	}
	end, ok := f.Offset(lineColOf(r.End))
	if !ok {
		return ""
	}
	return f.Slice(start, end)
}

// Location converts a byte offset in f into a diag.Location.
func (f *File) Location(off uint32) diag.Location {
	pos := f.Position(off)
	return diag.Location{File: f.Path, Line: int(pos.Line), Column: int(pos.Col)}
}

func lineColOf(loc diag.Location) LineCol {
	return LineCol{Line: uint32(max(loc.Line, 0)), Col: uint32(max(loc.Column, 0))}
}
