package cmd

import (
	"os"
	"time"

	"github.com/ChuanqiXu9/AIDiganosticConsumer/assist"
	"github.com/ChuanqiXu9/AIDiganosticConsumer/common"
	"github.com/ChuanqiXu9/AIDiganosticConsumer/compiler"
	"github.com/ChuanqiXu9/AIDiganosticConsumer/console"
	"github.com/ChuanqiXu9/AIDiganosticConsumer/diag"
	"github.com/ChuanqiXu9/AIDiganosticConsumer/llm"
	"github.com/ChuanqiXu9/AIDiganosticConsumer/logger"
	"github.com/ChuanqiXu9/AIDiganosticConsumer/sema"
	"github.com/briandowns/spinner"
	"golang.org/x/term"
)

// spinnerLLM shows a spinner on the terminal while a request is in flight.
type spinnerLLM struct {
	llm.LLM
	spinner *spinner.Spinner
}

func (s *spinnerLLM) Prompt(req llm.Request) llm.Response {
	s.spinner.Start()
	defer s.spinner.Stop()
	return s.LLM.Prompt(req)
}

// withSpinner decorates client when out is a terminal.
func withSpinner(client llm.LLM, out *os.File) llm.LLM {
	if out == nil || !term.IsTerminal(int(out.Fd())) {
		return client
	}
	s := spinner.New(spinner.CharSets[11], 100*time.Millisecond, spinner.WithWriter(out))
	s.Suffix = " Asking AI..."
	return &spinnerLLM{LLM: client, spinner: s}
}

func newAssist(settings common.Settings, ctx sema.Context) *assist.Consumer {
	var client llm.LLM
	if settings.Enabled() {
		c, err := llm.NewLLM(settings)
		if err != nil {
			logger.Warnf("Failed to create client for LLM provider: %v", err)
		} else {
			client = withSpinner(c, os.Stderr)
		}
	}
	return assist.New(settings, ctx, client, console.New())
}

// replay prints compiler stderr back out diagnostic by diagnostic, with the
// AI consumer chained after the plain printer.
func replay(stderr string, settings common.Settings, macros *compiler.MacroLoader) {
	out := compiler.ParseOutput(stderr)
	logger.Debugf("Parsed %d diagnostic(s), %d error(s)", len(out.Records), out.Errors())

	session := compiler.NewSession(nil, macros)
	session.Echo = os.Stderr
	defer session.Close()

	printer := diag.NewTextPrinter(os.Stderr)
	session.Replay(out, diag.NewChain(printer, newAssist(settings, session)))
}
