package booking

import (
	"html"
	"strings"
)

// Replacers make a single pass, so entities they emit are never re-escaped.
var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#039;",
)

var attrEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#039;",
	"`", "&#096;",
)

// EscapeHTML replaces the five characters with special meaning in HTML text
// with their entities.
func EscapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}

// EscapeAttr is EscapeHTML plus the backtick, for values placed inside
// unquoted or backtick-quoted attributes.
func EscapeAttr(s string) string {
	return attrEscaper.Replace(s)
}

// UnescapeHTML reverses EscapeHTML and EscapeAttr.
func UnescapeHTML(s string) string {
	return html.UnescapeString(s)
}

// sanitize escapes and trims a single field value.
func sanitize(s string) string {
	return trim(EscapeHTML(s))
}
