package diag

// Level is the severity the host attached to a diagnostic. The ordering
// matches the host's: anything at or below Warning is advisory.
type Level uint8

const (
	Ignored Level = iota
	Note
	Remark
	Warning
	Error
	Fatal
)

func (l Level) String() string {
	switch l {
	case Ignored:
		return "ignored"
	case Note:
		return "note"
	case Remark:
		return "remark"
	case Warning:
		return "warning"
	case Error:
		return "error"
	case Fatal:
		return "fatal error"
	}
	return "unknown"
}

// ParseLevel maps the level word of a rendered diagnostic back to a Level.
func ParseLevel(s string) (Level, bool) {
	switch s {
	case "note":
		return Note, true
	case "remark":
		return Remark, true
	case "warning":
		return Warning, true
	case "error":
		return Error, true
	case "fatal error":
		return Fatal, true
	}
	return Ignored, false
}
