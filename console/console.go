// Package console writes operator-facing advisory output.
package console

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
)

const SuggestionLabel = "AI Suggestion: "

// Console prints red status lines and AI suggestions. Both go to Err unless
// configured otherwise, matching where the compiler prints its diagnostics.
type Console struct {
	Out io.Writer
	Err io.Writer

	red   *color.Color
	label *color.Color
}

func New() *Console {
	return NewWithWriters(os.Stderr, os.Stderr)
}

func NewWithWriters(out, errOut io.Writer) *Console {
	return &Console{
		Out:   out,
		Err:   errOut,
		red:   color.New(color.FgRed),
		label: color.New(color.FgRed, color.Bold),
	}
}

// Errorf prints a red line to Err.
func (c *Console) Errorf(format string, args ...interface{}) {
	_, _ = c.red.Fprintln(c.Err, fmt.Sprintf(format, args...))
}

// Suggestion prints the colored label on its own line, then the content as is.
func (c *Console) Suggestion(content string) {
	_, _ = c.label.Fprintln(c.Out, SuggestionLabel)
	_, _ = fmt.Fprintln(c.Out, content)
}
