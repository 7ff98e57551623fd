package prompt

import (
	"strings"

	"github.com/ChuanqiXu9/AIDiganosticConsumer/common"
)

const translateInstruction = "Please translate the error message if you were asked to reply in language other than English. "

// GetSystemPrompt composes the role prompt with the reply-language rules.
func GetSystemPrompt(settings common.Settings) string {
	rolePrompt := settings.RolePrompt
	if rolePrompt == "" {
		rolePrompt = common.DefaultRolePrompt
	}
	language := settings.ReplyLanguage
	if language == "" {
		language = common.DefaultReplyLanguage
	}

	var b strings.Builder
	b.WriteString(rolePrompt)
	if !strings.HasSuffix(rolePrompt, " ") {
		b.WriteString(" ")
	}
	b.WriteString("Please reply in " + language + ". ")
	if !isEnglish(language) {
		b.WriteString(translateInstruction)
	}
	return b.String()
}

func isEnglish(language string) bool {
	l := strings.ToLower(strings.TrimSpace(language))
	return l == "english" || l == "en" || strings.HasPrefix(l, "en-") || strings.HasPrefix(l, "en_")
}
