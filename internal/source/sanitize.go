package source

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var sanitizePolicy = bluemonday.StrictPolicy()

// sanitizeText strips markup and decodes HTML entities. Provider summaries
// frequently embed tags and entities that would otherwise leak into the feed.
func sanitizeText(s string) string {
	cleaned := sanitizePolicy.Sanitize(s)
	cleaned = html.UnescapeString(cleaned)
	return strings.TrimSpace(cleaned)
}
