// Package deeplink builds the WhatsApp and mailto links a booking is handed
// off to.
package deeplink

import (
	"net/url"
	"strings"
)

// componentUnescaper undoes the escapes url.QueryEscape applies to the marks
// encodeURIComponent leaves alone, and turns "+" into %20.
var componentUnescaper = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// EncodeURIComponent percent-encodes s byte for byte like a browser's
// encodeURIComponent: A-Z a-z 0-9 and - _ . ! ~ * ' ( ) pass through and
// spaces become %20, since mail clients show a literal "+".
func EncodeURIComponent(s string) string {
	return componentUnescaper.Replace(url.QueryEscape(s))
}
