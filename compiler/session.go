package compiler

import (
	"fmt"
	"io"
	"slices"

	"github.com/ChuanqiXu9/AIDiganosticConsumer/diag"
	"github.com/ChuanqiXu9/AIDiganosticConsumer/logger"
	"github.com/ChuanqiXu9/AIDiganosticConsumer/sema"
	"github.com/ChuanqiXu9/AIDiganosticConsumer/source"
)

// Session replays a parsed diagnostic stream into a consumer. While a
// diagnostic is being handled the session describes the compiler state at
// that diagnostic, so it doubles as the sema.Context of the consumers.
type Session struct {
	sources *source.Manager
	scopes  *ScopeFinder
	macros  *MacroLoader

	// Echo receives the lines of the stream that are not diagnostics.
	Echo io.Writer

	state sema.Snapshot
}

var _ sema.Context = (*Session)(nil)

// NewSession creates a session. macros may be nil.
func NewSession(sources *source.Manager, macros *MacroLoader) *Session {
	if sources == nil {
		sources = source.NewManager(nil)
	}
	return &Session{
		sources: sources,
		scopes:  NewScopeFinder(sources),
		macros:  macros,
	}
}

func (s *Session) Sources() *source.Manager {
	return s.sources
}

// Replay hands every record to consumer in order. Lines that belong to no
// diagnostic are copied to Echo, when set, at their original position.
func (s *Session) Replay(out Output, consumer diag.Consumer) {
	for i, rec := range out.Records {
		s.echo(rec.Leading)
		s.prepare(out, i)
		consumer.HandleDiagnostic(diag.Diagnostic{
			Level:    rec.Level,
			Message:  rec.Message,
			Location: rec.Location,
			Text:     rec.Text,
			Sources:  s.sources,
		})
	}
	s.state = sema.Snapshot{}
	s.echo(out.Trailing)
}

func (s *Session) echo(lines []string) {
	if s.Echo == nil {
		return
	}
	for _, line := range lines {
		_, _ = fmt.Fprintln(s.Echo, line)
	}
}

// prepare rebuilds the context for the record at i from the notes that
// follow it. Only errors get a context; nothing else is sent anywhere.
func (s *Session) prepare(out Output, i int) {
	s.state = sema.Snapshot{}
	rec := out.Records[i]
	if rec.Level <= diag.Warning || !rec.Location.IsValid() {
		return
	}
	s.state.Sema = true

	notes := out.notesAfter(i)
	// Only the macro notes right after the header describe this location;
	// later ones belong to sibling notes.
	for _, note := range notes {
		if !isMacroExpansionNote(note) {
			break
		}
		s.sources.SetSpelling(rec.Location, note.Location)
	}

	var instantiations []Record
	for _, note := range notes {
		if isInstantiationNote(note) {
			instantiations = append(instantiations, note)
		}
	}

	if len(instantiations) > 0 {
		s.state.Instantiating = true
		s.state.Frames = s.frames(rec.Location, instantiations)
		logger.Debugf("Diagnostic at %s has %d instantiation frame(s)", rec.Location, len(s.state.Frames))
		return
	}

	// The translation unit itself has no extent.
	lexical := diag.Range{}
	if r, ok := s.scopes.Enclosing(rec.Location); ok {
		lexical = r
	}
	s.state.Lexical = &lexical
}

// frames turns instantiation notes, printed innermost first, into frames
// ordered outermost first. The entity of a frame is the declaration that
// encloses the next inner location, down to the diagnostic itself.
func (s *Session) frames(errLoc diag.Location, notes []Record) []sema.InstantiationFrame {
	frames := make([]sema.InstantiationFrame, 0, len(notes))
	inner := errLoc
	for _, note := range notes {
		entity, _ := s.scopes.Enclosing(inner)
		frames = append(frames, sema.InstantiationFrame{
			PointOfInstantiation: note.Location,
			Entity:               entity,
		})
		inner = note.Location
	}
	slices.Reverse(frames)
	return frames
}

func (s *Session) HasSema() bool { return s.state.HasSema() }

func (s *Session) InInstantiation() bool { return s.state.InInstantiation() }

func (s *Session) InstantiationFrames() []sema.InstantiationFrame {
	return s.state.InstantiationFrames()
}

func (s *Session) LexicalContext() (diag.Range, bool) { return s.state.LexicalContext() }

// Preprocessor loads the macro table on first use.
func (s *Session) Preprocessor() sema.Preprocessor {
	table := s.macros.Table()
	if table == nil {
		return nil
	}
	return table
}

// Close releases parser resources.
func (s *Session) Close() {
	s.scopes.Close()
}
