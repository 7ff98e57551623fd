// Package assist asks an LLM to explain the diagnostics a compiler emits.
package assist

import (
	"github.com/ChuanqiXu9/AIDiganosticConsumer/common"
	"github.com/ChuanqiXu9/AIDiganosticConsumer/console"
	"github.com/ChuanqiXu9/AIDiganosticConsumer/diag"
	"github.com/ChuanqiXu9/AIDiganosticConsumer/llm"
	"github.com/ChuanqiXu9/AIDiganosticConsumer/logger"
	"github.com/ChuanqiXu9/AIDiganosticConsumer/prompt"
	"github.com/ChuanqiXu9/AIDiganosticConsumer/reply"
	"github.com/ChuanqiXu9/AIDiganosticConsumer/sema"
)

// MissingKeyMessage is printed once when no API key is configured.
const MissingKeyMessage = "FAILED to find API key for AI in clang. " +
	"Please set the API key in the environment variable " + common.EnvAPIKey + "."

// Consumer is a diag.Consumer that sends every error to the model and prints
// what comes back. It never changes what the host prints on its own.
type Consumer struct {
	settings     common.Settings
	systemPrompt string
	ctx          sema.Context
	client       llm.LLM
	replies      *reply.Handler
	enabled      bool
}

var _ diag.Consumer = (*Consumer)(nil)

// New creates the consumer. Without an API key it reports the problem on the
// console and returns an inert consumer. A nil client also leaves it inert.
func New(settings common.Settings, ctx sema.Context, client llm.LLM, con *console.Console) *Consumer {
	if con == nil {
		con = console.New()
	}
	c := &Consumer{
		settings: settings,
		ctx:      ctx,
		client:   client,
		replies:  reply.NewHandler(con),
	}

	if !settings.Enabled() {
		con.Errorf(MissingKeyMessage)
		return c
	}
	if client == nil {
		logger.Warn("No LLM client configured, AI assistance is disabled")
		return c
	}

	c.systemPrompt = prompt.GetSystemPrompt(settings)
	c.enabled = true
	return c
}

// Enabled reports whether diagnostics will be sent.
func (c *Consumer) Enabled() bool {
	return c.enabled
}

// HandleDiagnostic runs one synchronous round trip for errors and fatal
// errors. Warnings and below are ignored.
func (c *Consumer) HandleDiagnostic(d diag.Diagnostic) {
	if !c.enabled || d.Level <= diag.Warning {
		return
	}

	req := llm.Request{
		SystemPrompt: c.systemPrompt,
		UserPrompt:   prompt.GetDiagnosticPrompt(d, c.ctx, c.settings.CompilerName),
	}
	logger.Debugf("Asking AI about %s", d.Format())

	resp := c.client.Prompt(req)
	if resp.Error != nil {
		logger.Debugf("Dropping AI response for %s: %v", d.Location, resp.Error)
		return
	}

	n := c.replies.Handle(resp.Body)
	logger.Debugf("Printed %d AI suggestion(s)", n)
}
