package docstore

import "strings"

// headingMarkers are removed longest-first so that "## " is not mangled by
// an earlier "# " pass.
var headingMarkers = []string{"### ", "## ", "# "}

// StripHeadings projects Markdown onto plain text by literal removal of
// heading markers. This is deliberately naive, not a Markdown parser: the
// markers are removed wherever they appear, and no other syntax is touched.
func StripHeadings(content string) string {
	for _, marker := range headingMarkers {
		content = strings.ReplaceAll(content, marker, "")
	}
	return content
}
