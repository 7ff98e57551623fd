package compiler

import (
	"strings"

	"github.com/ChuanqiXu9/AIDiganosticConsumer/logger"
	"github.com/ChuanqiXu9/AIDiganosticConsumer/sema"
)

// Flags dropped from a compile command before asking for its macro table.
var (
	droppedFlags          = map[string]bool{"-c": true, "-S": true, "-E": true, "-MD": true, "-MMD": true, "-M": true, "-MM": true, "-MP": true}
	droppedFlagsWithValue = map[string]bool{"-o": true, "-MF": true, "-MT": true, "-MQ": true}
)

// MacroDumpArgs rewrites a compile command so that the compiler preprocesses
// the same inputs and prints its macro table instead of producing output.
func MacroDumpArgs(args []string) []string {
	out := make([]string, 0, len(args)+2)
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case droppedFlags[arg]:
		case droppedFlagsWithValue[arg]:
			i++
		case strings.HasPrefix(arg, "-o") && len(arg) > 2:
		case strings.HasPrefix(arg, "-MF") || strings.HasPrefix(arg, "-MT") || strings.HasPrefix(arg, "-MQ"):
		case strings.HasPrefix(arg, "-fplugin"):
		default:
			out = append(out, arg)
		}
	}
	return append(out, "-dM", "-E")
}

// MacroLoader fetches a macro table on first use and remembers the result,
// including failure.
type MacroLoader struct {
	load   func() (sema.MacroTable, error)
	loaded bool
	table  sema.MacroTable
}

func NewMacroLoader(load func() (sema.MacroTable, error)) *MacroLoader {
	return &MacroLoader{load: load}
}

// StaticMacros wraps an already parsed table.
func StaticMacros(table sema.MacroTable) *MacroLoader {
	return &MacroLoader{loaded: true, table: table}
}

// CommandMacros asks the compiler for the macro table of a compile command.
func CommandMacros(runner Runner, compiler string, args []string) *MacroLoader {
	return NewMacroLoader(func() (sema.MacroTable, error) {
		result, err := runner.Run(compiler, MacroDumpArgs(args)...)
		if err != nil {
			return nil, err
		}
		if result.ExitCode != 0 {
			logger.Debugf("Macro dump exited with %d: %s", result.ExitCode, result.Stderr)
		}
		return sema.ParseMacroDump(result.Stdout), nil
	})
}

// Table returns the macro table, or nil when it could not be obtained.
func (l *MacroLoader) Table() sema.MacroTable {
	if l == nil {
		return nil
	}
	if !l.loaded {
		l.loaded = true
		table, err := l.load()
		if err != nil {
			logger.Debugf("Macro table unavailable: %v", err)
		}
		l.table = table
	}
	return l.table
}
