package source

import (
	"fmt"
	"os"
	"path/filepath"

	"fortio.org/safecast"
)

// FileID identifies a file within a FileSet.
type FileID uint32

// File holds the content of one source buffer and its line index.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	// LineIdx holds the byte offset of every '\n'.
	LineIdx []uint32
}

// LineCol is a 1-based position.
type LineCol struct {
	Line uint32
	Col  uint32
}

// FileSet keeps the buffers a diagnostic stream refers to.
type FileSet struct {
	files []File
	index map[string]FileID
}

func NewFileSet() *FileSet {
	return &FileSet{
		files: make([]File, 0),
		index: make(map[string]FileID),
	}
}

// Add stores content under path and returns its ID. A later Add with the same
// path shadows the earlier one.
func (fileSet *FileSet) Add(path string, content []byte) FileID {
	lenFiles, err := safecast.Conv[uint32](len(fileSet.files))
	if err != nil {
		panic(fmt.Errorf("len files overflow: %w", err))
	}
	id := FileID(lenFiles)
	normalizedPath := filepath.Clean(path)
	fileSet.files = append(fileSet.files, File{
		ID:      id,
		Path:    normalizedPath,
		Content: content,
		LineIdx: buildLineIndex(content),
	})
	fileSet.index[normalizedPath] = id
	return id
}

// Load reads path from disk, normalizing CRLF line endings.
func (fileSet *FileSet) Load(path string) (FileID, error) {
	// #nosec G304 -- paths come from the compiler's own diagnostics
	content, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	return fileSet.Add(path, normalizeCRLF(content)), nil
}

func (fileSet *FileSet) Get(id FileID) *File {
	return &fileSet.files[id]
}

// Lookup returns the latest file stored under path.
func (fileSet *FileSet) Lookup(path string) (*File, bool) {
	if id, ok := fileSet.index[filepath.Clean(path)]; ok {
		return &fileSet.files[id], true
	}
	return nil, false
}

// Offset converts a 1-based line/column into a byte offset. Column 0 is
// treated as the start of the line. ok is false when the line does not exist.
func (f *File) Offset(pos LineCol) (uint32, bool) {
	if pos.Line == 0 {
		return 0, false
	}
	lenContent := f.contentLen()

	var start uint32
	if pos.Line > 1 {
		if int(pos.Line-2) >= len(f.LineIdx) {
			return 0, false
		}
		start = f.LineIdx[pos.Line-2] + 1
	}

	col := pos.Col
	if col > 0 {
		col--
	}
	off := start + col
	if off > lenContent {
		off = lenContent
	}
	return off, true
}

// Position converts a byte offset into a 1-based line/column.
func (f *File) Position(off uint32) LineCol {
	return toLineCol(f.LineIdx, off)
}

// Slice returns content[start:end] clamped to the buffer, or "" for an
// inverted range.
func (f *File) Slice(start, end uint32) string {
	n := f.contentLen()
	if end > n {
		end = n
	}
	if start >= end {
		return ""
	}
	return string(f.Content[start:end])
}

func (f *File) contentLen() uint32 {
	n, err := safecast.Conv[uint32](len(f.Content))
	if err != nil {
		panic(fmt.Errorf("content length overflow: %w", err))
	}
	return n
}
