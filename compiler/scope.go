package compiler

import (
	"context"

	"github.com/ChuanqiXu9/AIDiganosticConsumer/diag"
	"github.com/ChuanqiXu9/AIDiganosticConsumer/logger"
	"github.com/ChuanqiXu9/AIDiganosticConsumer/source"
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/cpp"
)

// Node types that open a declaration context.
var declarationTypes = map[string]bool{
	"function_definition":  true,
	"class_specifier":      true,
	"struct_specifier":     true,
	"union_specifier":      true,
	"enum_specifier":       true,
	"namespace_definition": true,
}

// ScopeFinder recovers enclosing declarations from C and C++ sources.
type ScopeFinder struct {
	sources *source.Manager
	parser  *sitter.Parser
	trees   map[string]*sitter.Tree
}

func NewScopeFinder(sources *source.Manager) *ScopeFinder {
	parser := sitter.NewParser()
	parser.SetLanguage(cpp.GetLanguage())
	return &ScopeFinder{
		sources: sources,
		parser:  parser,
		trees:   make(map[string]*sitter.Tree),
	}
}

// Enclosing returns the extent of the innermost declaration containing loc.
// ok is false when the file is unavailable or loc is at namespace scope.
func (f *ScopeFinder) Enclosing(loc diag.Location) (diag.Range, bool) {
	if !loc.IsValid() {
		return diag.Range{}, false
	}
	file, ok := f.sources.File(loc.File)
	if !ok {
		return diag.Range{}, false
	}
	off, ok := file.Offset(source.LineCol{Line: uint32(loc.Line), Col: uint32(max(loc.Column, 0))})
	if !ok {
		return diag.Range{}, false
	}
	tree := f.tree(file)
	if tree == nil {
		return diag.Range{}, false
	}

	point := sitter.Point{Row: uint32(loc.Line - 1), Column: uint32(max(loc.Column-1, 0))}
	node := tree.RootNode().NamedDescendantForPointRange(point, point)
	for ; node != nil; node = node.Parent() {
		if declarationTypes[node.Type()] && node.StartByte() <= off && off <= node.EndByte() {
			return diag.Range{
				Begin: file.Location(node.StartByte()),
				End:   file.Location(node.EndByte()),
			}, true
		}
	}
	return diag.Range{}, false
}

func (f *ScopeFinder) tree(file *source.File) *sitter.Tree {
	if tree, ok := f.trees[file.Path]; ok {
		return tree
	}
	tree, err := f.parser.ParseCtx(context.Background(), nil, file.Content)
	if err != nil {
		logger.Debugf("Failed to parse %s: %v", file.Path, err)
		tree = nil
	}
	f.trees[file.Path] = tree
	return tree
}

// Close releases the parsed trees.
func (f *ScopeFinder) Close() {
	for path, tree := range f.trees {
		if tree != nil {
			tree.Close()
		}
		delete(f.trees, path)
	}
	f.parser.Close()
}
