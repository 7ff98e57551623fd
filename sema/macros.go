package sema

import (
	"bufio"
	"strings"
	"unicode"
)

// MacroTable maps macro names to their replacement lists.
type MacroTable map[string]string

var _ Preprocessor = MacroTable(nil)

// ParseMacroDump reads the "#define NAME VALUE" lines a preprocessor prints
// when asked to dump its macro table. Function-like macros are skipped.
func ParseMacroDump(dump string) MacroTable {
	table := MacroTable{}
	scanner := bufio.NewScanner(strings.NewReader(dump))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		rest, ok := strings.CutPrefix(line, "#define ")
		if !ok {
			continue
		}
		name, value, _ := strings.Cut(strings.TrimLeft(rest, " \t"), " ")
		if name == "" || strings.Contains(name, "(") {
			continue
		}
		table[name] = strings.TrimSpace(value)
	}
	return table
}

func (t MacroTable) MacroLiteral(name string) (string, bool) {
	value, ok := t[name]
	if !ok {
		return "", false
	}
	tok := firstToken(value)
	if tok == "" || !isLiteral(tok) {
		return "", false
	}
	return tok, true
}

func firstToken(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	if s[0] == '"' || s[0] == '\'' {
		quote := s[0]
		for i := 1; i < len(s); i++ {
			switch s[i] {
			case '\\':
				i++
			case quote:
				return s[:i+1]
			}
		}
		return s
	}
	end := strings.IndexFunc(s, func(r rune) bool {
		return !(unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '.' || r == '\'')
	})
	if end == 0 {
		return s[:1]
	}
	if end < 0 {
		return s
	}
	return s[:end]
}

// isLiteral accepts numeric, string and character literals.
func isLiteral(tok string) bool {
	switch c := tok[0]; {
	case c >= '0' && c <= '9':
		return true
	case c == '"' || c == '\'':
		return len(tok) >= 2 && tok[len(tok)-1] == c
	case c == '.' && len(tok) > 1:
		return tok[1] >= '0' && tok[1] <= '9'
	}
	return false
}
