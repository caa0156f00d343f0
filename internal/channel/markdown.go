package channel

import "strings"

// The transport's MarkdownV2 dialect reserves these characters for
// markup; unescaped occurrences in dynamic text make the whole message
// unparseable on send. The backslash is the escape character itself, so
// a literal one must be doubled too.
var markdownEscaper = strings.NewReplacer(
	"\\", "\\\\",
	"_", "\\_", "*", "\\*", "[", "\\[", "]", "\\]",
	"(", "\\(", ")", "\\)", "~", "\\~", "`", "\\`",
	">", "\\>", "#", "\\#", "+", "\\+", "-", "\\-",
	"=", "\\=", "|", "\\|", "{", "\\{", "}", "\\}",
	".", "\\.", "!", "\\!",
)

// Inside an inline code entity only the backslash and the backtick
// terminate or escape.
var markdownCodeEscaper = strings.NewReplacer(
	"\\", "\\\\", "`", "\\`",
)

// EscapeMarkdown makes arbitrary text safe to embed in markdown-format
// output body text.
func EscapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}

// EscapeMarkdownCode makes arbitrary text safe inside an inline code
// span of markdown-format output.
func EscapeMarkdownCode(s string) string {
	return markdownCodeEscaper.Replace(s)
}
