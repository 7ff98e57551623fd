package console

import (
	"bytes"
	"testing"

	"github.com/fatih/color"
)

func TestConsoleOutput(t *testing.T) {
	noColor := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = noColor }()

	var out, errOut bytes.Buffer
	c := NewWithWriters(&out, &errOut)

	c.Errorf("AI response error: %s", "unexpected EOF")
	c.Suggestion("Fix: add -std=c++17")

	if got := errOut.String(); got != "AI response error: unexpected EOF\n" {
		t.Errorf("Unexpected error output %q", got)
	}
	if got := out.String(); got != SuggestionLabel+"\nFix: add -std=c++17\n" {
		t.Errorf("Unexpected suggestion output %q", got)
	}
}
