package translate

import (
	"html"
	"strings"
)

// The provider returns HTML-escaped text. Non-breaking spaces become plain
// spaces and typographic quotes become ASCII quotes; everything else is left
// to the HTML unescaper.
var entityReplacer = strings.NewReplacer(
	"&nbsp;", " ", "&#160;", " ", "&#xa0;", " ", "&#xA0;", " ",
	"&#8216;", "'", "&#8217;", "'",
	"&#8220;", `"`, "&#8221;", `"`,
)

func DecodeHTMLEntities(s string) string {
	if !strings.Contains(s, "&") {
		return s
	}
	return html.UnescapeString(entityReplacer.Replace(s))
}
