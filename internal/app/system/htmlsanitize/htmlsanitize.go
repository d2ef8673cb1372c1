// Package htmlsanitize cleans user-supplied text before it is stored or
// forwarded to the model.
package htmlsanitize

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var strict = bluemonday.StrictPolicy()

// Plain strips all markup and returns plain text. Entities escaped by the
// policy are decoded again, so the result must be escaped when rendered.
func Plain(s string) string {
	if s == "" {
		return ""
	}
	return strings.TrimSpace(html.UnescapeString(strict.Sanitize(s)))
}
