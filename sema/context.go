// Package sema describes the slice of the host's semantic-analysis state the
// assist pipeline reads when it builds context for a diagnostic.
package sema

import "github.com/ChuanqiXu9/AIDiganosticConsumer/diag"

// InstantiationFrame is one in-progress template instantiation: where it was
// requested and the source range of the entity being instantiated.
type InstantiationFrame struct {
	PointOfInstantiation diag.Location
	Entity               diag.Range
}

// Preprocessor resolves macro definitions by name.
type Preprocessor interface {
	// MacroLiteral returns the first replacement token of the macro if the
	// macro is defined and that token is a literal.
	MacroLiteral(name string) (string, bool)
}

// Context is the host's compilation state at the time a diagnostic is emitted.
type Context interface {
	// HasSema reports whether semantic analysis is active.
	HasSema() bool
	InInstantiation() bool
	// InstantiationFrames returns the active frames, outermost first.
	InstantiationFrames() []InstantiationFrame
	// LexicalContext returns the extent of the innermost enclosing declaration.
	LexicalContext() (diag.Range, bool)
	// Preprocessor returns nil when no preprocessor state is available.
	Preprocessor() Preprocessor
}

// Snapshot is a fixed Context value.
type Snapshot struct {
	Sema          bool
	Instantiating bool
	Frames        []InstantiationFrame
	Lexical       *diag.Range
	PP            Preprocessor
}

var _ Context = (*Snapshot)(nil)

func (s *Snapshot) HasSema() bool { return s.Sema }

func (s *Snapshot) InInstantiation() bool { return s.Instantiating }

func (s *Snapshot) InstantiationFrames() []InstantiationFrame { return s.Frames }

func (s *Snapshot) LexicalContext() (diag.Range, bool) {
	if s.Lexical == nil {
		return diag.Range{}, false
	}
	return *s.Lexical, true
}

func (s *Snapshot) Preprocessor() Preprocessor { return s.PP }
