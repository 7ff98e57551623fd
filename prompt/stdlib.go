package prompt

import "github.com/ChuanqiXu9/AIDiganosticConsumer/sema"

// Macros identifying the C++ standard library in use, checked in order.
var stdlibMacros = []struct {
	macro   string
	library string
}{
	{"_GLIBCXX_RELEASE", "libstdc++"},
	{"_LIBCPP_VERSION", "libc++"},
}

// StdlibVersion names the standard library and its version, e.g.
// "libstdc++ 13", or returns "" when neither macro has a literal value.
func StdlibVersion(pp sema.Preprocessor) string {
	if pp == nil {
		return ""
	}
	for _, m := range stdlibMacros {
		if v, ok := pp.MacroLiteral(m.macro); ok {
			return m.library + " " + v
		}
	}
	return ""
}
