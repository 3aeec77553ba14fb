package service

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// strictPolicy strips every tag. Policies are safe for concurrent use once
// built.
var strictPolicy = bluemonday.StrictPolicy()

var lineBreaks = strings.NewReplacer(
	"<br>", "\n", "<br/>", "\n", "<br />", "\n",
	"<BR>", "\n", "<BR/>", "\n", "<BR />", "\n",
	"</p>", "\n", "</P>", "\n",
)

// plainText converts homework HTML to terminal text: line breaks and
// paragraph ends become newlines, all other markup is dropped and entities
// are decoded.
func plainText(s string) string {
	if s == "" {
		return ""
	}
	s = lineBreaks.Replace(s)
	s = strictPolicy.Sanitize(s)
	return strings.TrimSpace(html.UnescapeString(s))
}
