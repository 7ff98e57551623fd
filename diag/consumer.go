package diag

import (
	"io"
	"strings"
)

// Consumer receives diagnostics in emission order.
type Consumer interface {
	HandleDiagnostic(d Diagnostic)
}

// ConsumerFunc adapts a plain function to Consumer.
type ConsumerFunc func(d Diagnostic)

func (f ConsumerFunc) HandleDiagnostic(d Diagnostic) {
	f(d)
}

// Chain forwards every diagnostic to each consumer in order. It decorates a
// pre-existing consumer instead of replacing it: put that one first.
type Chain []Consumer

// NewChain drops nil consumers.
func NewChain(consumers ...Consumer) Chain {
	chain := make(Chain, 0, len(consumers))
	for _, c := range consumers {
		if c != nil {
			chain = append(chain, c)
		}
	}
	return chain
}

func (c Chain) HandleDiagnostic(d Diagnostic) {
	for _, consumer := range c {
		consumer.HandleDiagnostic(d)
	}
}

// TextPrinter is the plain consumer: it writes each diagnostic back out as
// the host rendered it and keeps error/warning counts.
type TextPrinter struct {
	W io.Writer

	NumErrors   int
	NumWarnings int
}

// NewTextPrinter creates a printer writing to w.
func NewTextPrinter(w io.Writer) *TextPrinter {
	return &TextPrinter{W: w}
}

func (p *TextPrinter) HandleDiagnostic(d Diagnostic) {
	switch {
	case d.Level >= Error:
		p.NumErrors++
	case d.Level == Warning:
		p.NumWarnings++
	}

	text := d.Text
	if text == "" {
		text = d.Format()
	}
	if !strings.HasSuffix(text, "\n") {
		text += "\n"
	}
	_, _ = io.WriteString(p.W, text)
}
