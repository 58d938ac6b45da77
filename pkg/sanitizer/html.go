package sanitizer

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	strictOnce   sync.Once
	strictPolicy *bluemonday.Policy
)

// StripHTML removes markup, keeping the text between tags. Script and style
// contents are dropped. Entities are decoded, so "Maria &amp; Ana" and
// "Maria & Ana" both come back as "Maria & Ana".
func StripHTML(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return s
	}
	strictOnce.Do(func() {
		strictPolicy = bluemonday.StrictPolicy()
	})
	return html.UnescapeString(strictPolicy.Sanitize(s))
}
