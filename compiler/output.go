package compiler

import (
	"bufio"
	"regexp"
	"strconv"
	"strings"

	"github.com/ChuanqiXu9/AIDiganosticConsumer/diag"
)

var (
	ansiEscape = regexp.MustCompile(`\x1b\[[0-9;]*m`)

	// file:line[:col]: level: message
	locatedHeader = regexp.MustCompile(`^(.+?):(\d+):(?:(\d+):)? (fatal error|error|warning|note|remark): (.*)$`)
	// clang: error: message
	bareHeader = regexp.MustCompile(`^([^\s:]+): (fatal error|error|warning|note|remark): (.*)$`)

	includeLine = regexp.MustCompile(`^(In file included from |\s+from ).*[:,]$`)
	trailerLine = regexp.MustCompile(`^\d+ (warnings?|errors?)( and \d+ errors?)? generated\.$`)
)

// Record is one diagnostic as the compiler rendered it.
type Record struct {
	Level    diag.Level
	Message  string
	Location diag.Location
	// Text holds every rendered line of the diagnostic: include stack, header,
	// snippet and caret lines.
	Text string
	// Leading holds the lines printed before this diagnostic that belong to
	// no diagnostic, such as the trailer of a previous translation unit.
	Leading []string
}

// Output is a parsed diagnostic stream.
type Output struct {
	Records []Record
	// Trailing holds the unattached lines after the last diagnostic, such as
	// "1 error generated.".
	Trailing []string
}

// ParseOutput splits compiler stderr into diagnostics. Every input line ends
// up in exactly one place and their order is kept.
func ParseOutput(text string) Output {
	var out Output
	var raw, pending, lines []string
	var current *Record

	flush := func() {
		if current == nil {
			return
		}
		current.Text = strings.Join(lines, "\n") + "\n"
		out.Records = append(out.Records, *current)
		current = nil
		lines = nil
	}

	scanner := bufio.NewScanner(strings.NewReader(text))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := ansiEscape.ReplaceAllString(scanner.Text(), "")

		if rec, ok := parseHeader(line); ok {
			flush()
			rec.Leading = raw
			current = &rec
			lines = append(pending, line)
			raw, pending = nil, nil
			continue
		}

		switch {
		case trailerLine.MatchString(line):
			flush()
			raw = append(raw, pending...)
			raw = append(raw, line)
			pending = nil
		case includeLine.MatchString(line):
			pending = append(pending, line)
		case current != nil:
			lines = append(lines, line)
		default:
			raw = append(raw, line)
		}
	}
	flush()
	out.Trailing = append(raw, pending...)
	return out
}

func parseHeader(line string) (Record, bool) {
	if m := locatedHeader.FindStringSubmatch(line); m != nil {
		level, ok := diag.ParseLevel(m[4])
		if !ok {
			return Record{}, false
		}
		lineNo, _ := strconv.Atoi(m[2])
		col, _ := strconv.Atoi(m[3])
		return Record{
			Level:    level,
			Message:  m[5],
			Location: diag.Location{File: m[1], Line: lineNo, Column: col},
		}, true
	}
	if m := bareHeader.FindStringSubmatch(line); m != nil {
		level, ok := diag.ParseLevel(m[2])
		if !ok {
			return Record{}, false
		}
		return Record{Level: level, Message: m[3]}, true
	}
	return Record{}, false
}

// Errors counts records at error level or above.
func (o Output) Errors() int {
	n := 0
	for _, r := range o.Records {
		if r.Level >= diag.Error {
			n++
		}
	}
	return n
}

// notesAfter returns the notes attached to the record at i.
func (o Output) notesAfter(i int) []Record {
	j := i + 1
	for j < len(o.Records) && o.Records[j].Level == diag.Note {
		j++
	}
	return o.Records[i+1 : j]
}

func isInstantiationNote(r Record) bool {
	return r.Level == diag.Note &&
		strings.HasPrefix(r.Message, "in instantiation of ") &&
		strings.HasSuffix(r.Message, "requested here")
}

func isMacroExpansionNote(r Record) bool {
	return r.Level == diag.Note && strings.HasPrefix(r.Message, "expanded from macro ")
}
