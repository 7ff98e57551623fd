package source

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ChuanqiXu9/AIDiganosticConsumer/diag"
)

const sample = "int main() {\n  return x;\n}\n"

func TestOffsetAndPosition(t *testing.T) {
	fs := NewFileSet()
	f := fs.Get(fs.Add("main.cpp", []byte(sample)))

	off, ok := f.Offset(LineCol{Line: 2, Col: 10})
	if !ok {
		t.Fatal("Expected line 2 to exist")
	}
	if sample[off] != 'x' {
		t.Errorf("Expected offset to point at 'x', got %q", sample[off])
	}

	pos := f.Position(off)
	if pos.Line != 2 || pos.Col != 10 {
		t.Errorf("Expected 2:10, got %d:%d", pos.Line, pos.Col)
	}

	if _, ok := f.Offset(LineCol{Line: 9, Col: 1}); ok {
		t.Error("Expected out of range line to be rejected")
	}
}

func TestSliceClamps(t *testing.T) {
	fs := NewFileSet()
	f := fs.Get(fs.Add("main.cpp", []byte(sample)))

	if got := f.Slice(0, 3); got != "int" {
		t.Errorf("Expected 'int', got %q", got)
	}
	if got := f.Slice(10, 5); got != "" {
		t.Errorf("Expected empty text for inverted range, got %q", got)
	}
	if got := f.Slice(uint32(len(sample))-2, 1000); got != "}\n" {
		t.Errorf("Expected clamped tail, got %q", got)
	}

	empty := fs.Get(fs.Add("empty.cpp", nil))
	if got := empty.Slice(0, 10); got != "" {
		t.Errorf("Expected empty text for empty buffer, got %q", got)
	}
	if off, ok := empty.Offset(LineCol{Line: 1, Col: 5}); !ok || off != 0 {
		t.Errorf("Expected offset clamped to 0, got %d (%v)", off, ok)
	}
}

func TestLoadNormalizesCRLF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "crlf.cpp")
	if err := os.WriteFile(path, []byte("a\r\nb\r\n"), 0644); err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}

	fs := NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		t.Fatalf("Failed to load file: %v", err)
	}
	if got := string(fs.Get(id).Content); got != "a\nb\n" {
		t.Errorf("Expected CRLF to be normalized, got %q", got)
	}
}

func TestManagerSourceText(t *testing.T) {
	fs := NewFileSet()
	fs.Add("main.cpp", []byte(sample))
	m := NewManager(fs)

	text := m.SourceText(diag.Range{
		Begin: diag.Location{File: "main.cpp", Line: 1, Column: 1},
		End:   diag.Location{File: "main.cpp", Line: 3, Column: 2},
	})
	if text != "int main() {\n  return x;\n}" {
		t.Errorf("Unexpected source text %q", text)
	}

	if got := m.SourceText(diag.Range{}); got != "" {
		t.Errorf("Expected empty text for invalid range, got %q", got)
	}

	data, ok := m.BufferData("./main.cpp")
	if !ok || data != sample {
		t.Errorf("Expected buffer data for main.cpp, got %q (%v)", data, ok)
	}

	if _, ok := m.BufferData(filepath.Join(t.TempDir(), "missing.cpp")); ok {
		t.Error("Expected missing file to be unavailable")
	}
}

func TestManagerSpellingLoc(t *testing.T) {
	m := NewManager(nil)
	expansion := diag.Location{File: "a.cpp", Line: 5, Column: 3}
	spelling := diag.Location{File: "a.cpp", Line: 1, Column: 11}

	if got := m.SpellingLoc(expansion); got != expansion {
		t.Errorf("Expected location without macro to map to itself, got %v", got)
	}

	m.SetSpelling(expansion, spelling)
	if got := m.SpellingLoc(expansion); got != spelling {
		t.Errorf("Expected spelling location %v, got %v", spelling, got)
	}
}
