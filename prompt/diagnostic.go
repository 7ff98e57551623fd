package prompt

import (
	"strings"

	"github.com/ChuanqiXu9/AIDiganosticConsumer/common"
	"github.com/ChuanqiXu9/AIDiganosticConsumer/diag"
	"github.com/ChuanqiXu9/AIDiganosticConsumer/sema"
)

// GetDiagnosticPrompt describes a diagnostic and the state the compiler was
// in when it emitted it: the message with its spelling location, the
// standard library, and either the instantiation stack or the enclosing
// declaration.
func GetDiagnosticPrompt(d diag.Diagnostic, ctx sema.Context, compilerName string) string {
	if compilerName == "" {
		compilerName = common.DefaultCompilerName
	}

	var b strings.Builder
	loc := d.Location
	if d.Sources != nil {
		loc = d.Sources.SpellingLoc(loc)
	}
	b.WriteString("Error Message: '" + loc.String() + "': " + d.Message + ". ")
	b.WriteString("The error message is produced by " + compilerName + ". ")

	if ctx == nil {
		return b.String()
	}
	if stdlib := StdlibVersion(ctx.Preprocessor()); stdlib != "" {
		b.WriteString("The used standard library is " + stdlib + ". ")
	}

	if !ctx.HasSema() {
		return b.String()
	}

	if ctx.InInstantiation() {
		frames := ctx.InstantiationFrames()
		if len(frames) == 0 {
			return b.String()
		}
		writeInstantiationStack(&b, d.Sources, frames)
		return b.String()
	}

	if r, ok := ctx.LexicalContext(); ok {
		b.WriteString("The current parsing context is: ")
		b.WriteString(sourceText(d.Sources, r))
	}
	return b.String()
}

func writeInstantiationStack(b *strings.Builder, sources diag.SourceManager, frames []sema.InstantiationFrame) {
	b.WriteString("We're in the process of a template instantiation. The following were the instantiation stack: \n")
	b.WriteString("The instantiation is triggered by: \n")
	poi := frames[0].PointOfInstantiation
	b.WriteString(poi.String())
	b.WriteString("\n")

	if sources != nil && poi.IsValid() {
		if buffer, ok := sources.BufferData(poi.File); ok {
			b.WriteString("The file containing the instantiation point: ")
			b.WriteString(buffer)
		}
	}

	for _, frame := range frames {
		b.WriteString("\n")
		b.WriteString(sourceText(sources, frame.Entity))
		b.WriteString("\n")
	}
}

func sourceText(sources diag.SourceManager, r diag.Range) string {
	if sources == nil {
		return ""
	}
	return sources.SourceText(r)
}
