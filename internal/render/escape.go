package render

import "strings"

var escaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
)

// Escape replaces the five markup-significant characters. Templates escape
// automatically; this is for helpers that build markup by hand.
func Escape(s string) string {
	return escaper.Replace(s)
}
